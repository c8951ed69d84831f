package doit

import (
	"context"
	"time"

	"todoroki/internal/core/apperror"
	corecontext "todoroki/internal/core/context"
	"todoroki/internal/core/entity"
	"todoroki/internal/core/id"
	"todoroki/internal/core/security"
	"todoroki/internal/domain/audit"
	"todoroki/pkg/logger"
)

// CreateCommand holds the caller-supplied fields of a new doit. CreatedBy is
// never caller-supplied; it is stamped from the authenticated user.
type CreateCommand struct {
	Name        string
	Description string
	Publishment entity.Publishment
	Labels      []entity.Label
	DeadlinedAt *time.Time
}

// Service handles doit use cases.
type Service struct {
	repo    Repository
	auditor audit.Recorder
}

// NewService creates a doit service.
func NewService(repo Repository, auditor audit.Recorder) *Service {
	return &Service{repo: repo, auditor: auditor}
}

// Create stores a new doit authored by the calling user.
func (s *Service) Create(ctx context.Context, cmd CreateCommand) (*entity.Doit, error) {
	cc := corecontext.ClientOrAnonymous(ctx)
	if err := cc.Require(security.CreateDoit{}); err != nil {
		return nil, err
	}
	userID, ok := cc.UserID()
	if !ok {
		// Only registered users pass the permission check, so this is a
		// programming error rather than a reachable client state.
		return nil, apperror.NewNotVerified()
	}

	d := entity.NewDoit(cmd.Name, cmd.Description, cmd.Publishment, cmd.Labels, cmd.DeadlinedAt, userID)
	if err := s.repo.Create(ctx, d); err != nil {
		return nil, err
	}

	logger.Info(ctx, "doit created", "doit_id", d.ID.String(), "created_by", userID.String())
	s.auditor.Record(ctx, audit.Entry{
		EntityType: "doit",
		EntityID:   d.ID,
		Action:     audit.ActionCreate,
		Changes: audit.MarshalChanges(map[string]any{
			"name":   d.Name,
			"public": d.Publishment.Public,
		}),
	})

	return &d, nil
}

// List returns all doits, redacted per caller.
func (s *Service) List(ctx context.Context) ([]View, error) {
	cc := corecontext.ClientOrAnonymous(ctx)
	if err := cc.Require(security.ReadDoit{}); err != nil {
		return nil, err
	}

	doits, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]View, 0, len(doits))
	for _, d := range doits {
		v, err := NewView(d, cc)
		if err != nil {
			return nil, err
		}
		views = append(views, *v)
	}
	return views, nil
}

// Get returns one doit, redacted per caller.
func (s *Service) Get(ctx context.Context, doitID id.ID) (*View, error) {
	cc := corecontext.ClientOrAnonymous(ctx)
	if err := cc.Require(security.ReadDoit{}); err != nil {
		return nil, err
	}

	d, err := s.repo.GetByID(ctx, doitID)
	if err != nil {
		return nil, err
	}
	return NewView(*d, cc)
}

// Update applies a partial update. The stored doit is fetched first so the
// permission check runs against the current owner, not caller-supplied data.
func (s *Service) Update(ctx context.Context, cmd entity.UpdateDoitCommand) error {
	if cmd.IsEmpty() {
		return apperror.NewValidation("update command has no changes")
	}

	existing, err := s.repo.GetByID(ctx, cmd.ID)
	if err != nil {
		return err
	}

	cc := corecontext.ClientOrAnonymous(ctx)
	if err := cc.Require(security.UpdateDoit{Doit: *existing}); err != nil {
		return err
	}

	if err := s.repo.Update(ctx, cmd); err != nil {
		return err
	}

	logger.Info(ctx, "doit updated", "doit_id", cmd.ID.String())
	s.auditor.Record(ctx, audit.Entry{
		EntityType: "doit",
		EntityID:   cmd.ID,
		Action:     audit.ActionUpdate,
	})
	return nil
}

// Delete removes a doit. Fetch-then-check, same as Update.
func (s *Service) Delete(ctx context.Context, doitID id.ID) error {
	existing, err := s.repo.GetByID(ctx, doitID)
	if err != nil {
		return err
	}

	cc := corecontext.ClientOrAnonymous(ctx)
	if err := cc.Require(security.DeleteDoit{Doit: *existing}); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, doitID); err != nil {
		return err
	}

	logger.Info(ctx, "doit deleted", "doit_id", doitID.String())
	s.auditor.Record(ctx, audit.Entry{
		EntityType: "doit",
		EntityID:   doitID,
		Action:     audit.ActionDelete,
	})
	return nil
}
