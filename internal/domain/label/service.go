package label

import (
	"context"

	corecontext "todoroki/internal/core/context"
	"todoroki/internal/core/entity"
	"todoroki/internal/core/id"
	"todoroki/internal/core/security"
	"todoroki/internal/domain/audit"
	"todoroki/pkg/logger"
)

// Service handles label use cases.
type Service struct {
	repo    Repository
	auditor audit.Recorder
}

// NewService creates a label service.
func NewService(repo Repository, auditor audit.Recorder) *Service {
	return &Service{repo: repo, auditor: auditor}
}

// Create stores a new label.
func (s *Service) Create(ctx context.Context, l entity.Label) (*entity.Label, error) {
	cc := corecontext.ClientOrAnonymous(ctx)
	if err := cc.Require(security.CreateLabel{}); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, l); err != nil {
		return nil, err
	}

	logger.Info(ctx, "label created", "label_id", l.ID.String(), "name", l.Name)
	s.auditor.Record(ctx, audit.Entry{
		EntityType: "label",
		EntityID:   l.ID,
		Action:     audit.ActionCreate,
		Changes:    audit.MarshalChanges(map[string]any{"name": l.Name}),
	})

	return &l, nil
}

// List returns all labels. Labels carry no private content, so there is no
// redaction step.
func (s *Service) List(ctx context.Context) ([]entity.Label, error) {
	cc := corecontext.ClientOrAnonymous(ctx)
	if err := cc.Require(security.ReadLabel{}); err != nil {
		return nil, err
	}
	return s.repo.List(ctx)
}

// Get returns one label.
func (s *Service) Get(ctx context.Context, labelID id.ID) (*entity.Label, error) {
	cc := corecontext.ClientOrAnonymous(ctx)
	if err := cc.Require(security.ReadLabel{}); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, labelID)
}

// Delete removes a label. Rows referencing it drop the association.
func (s *Service) Delete(ctx context.Context, labelID id.ID) error {
	cc := corecontext.ClientOrAnonymous(ctx)
	if err := cc.Require(security.DeleteLabel{}); err != nil {
		return err
	}

	if _, err := s.repo.GetByID(ctx, labelID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, labelID); err != nil {
		return err
	}

	logger.Info(ctx, "label deleted", "label_id", labelID.String())
	s.auditor.Record(ctx, audit.Entry{
		EntityType: "label",
		EntityID:   labelID,
		Action:     audit.ActionDelete,
	})
	return nil
}

// Resolve maps label ids to entities, failing with label/not-found on the
// first unknown id. Used when a todo or doit request references labels.
func (s *Service) Resolve(ctx context.Context, ids []id.ID) ([]entity.Label, error) {
	cc := corecontext.ClientOrAnonymous(ctx)
	if err := cc.Require(security.ReadLabel{}); err != nil {
		return nil, err
	}

	labels := make([]entity.Label, 0, len(ids))
	for _, labelID := range ids {
		l, err := s.repo.GetByID(ctx, labelID)
		if err != nil {
			return nil, err
		}
		labels = append(labels, *l)
	}
	return labels, nil
}
