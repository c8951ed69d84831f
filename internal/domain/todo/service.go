package todo

import (
	"context"

	"todoroki/internal/core/apperror"
	corecontext "todoroki/internal/core/context"
	"todoroki/internal/core/entity"
	"todoroki/internal/core/id"
	"todoroki/internal/core/security"
	"todoroki/internal/domain/audit"
	"todoroki/pkg/logger"
)

// Service handles todo use cases. Every operation consults the permission
// engine before touching the repository.
type Service struct {
	repo    Repository
	auditor audit.Recorder
}

// NewService creates a todo service.
func NewService(repo Repository, auditor audit.Recorder) *Service {
	return &Service{repo: repo, auditor: auditor}
}

// Create stores a new todo. Schedules are validated before the permission
// check so a caller gets the cheaper error first.
func (s *Service) Create(ctx context.Context, t entity.Todo) (*entity.Todo, error) {
	for _, sched := range t.Schedules {
		if err := sched.Validate(); err != nil {
			return nil, err
		}
	}

	cc := corecontext.ClientOrAnonymous(ctx)
	if err := cc.Require(security.CreateTodo{}); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}

	logger.Info(ctx, "todo created", "todo_id", t.ID.String())
	s.auditor.Record(ctx, audit.Entry{
		EntityType: "todo",
		EntityID:   t.ID,
		Action:     audit.ActionCreate,
		Changes: audit.MarshalChanges(map[string]any{
			"name":   t.Name,
			"public": t.Publishment.Public,
		}),
	})

	return &t, nil
}

// List returns all live todos, redacted per caller.
func (s *Service) List(ctx context.Context) ([]View, error) {
	cc := corecontext.ClientOrAnonymous(ctx)
	if err := cc.Require(security.ReadTodo{}); err != nil {
		return nil, err
	}

	todos, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]View, 0, len(todos))
	for _, t := range todos {
		v, err := NewView(t, cc)
		if err != nil {
			return nil, err
		}
		views = append(views, *v)
	}
	return views, nil
}

// Get returns one todo, redacted per caller.
func (s *Service) Get(ctx context.Context, todoID id.ID) (*View, error) {
	cc := corecontext.ClientOrAnonymous(ctx)
	if err := cc.Require(security.ReadTodo{}); err != nil {
		return nil, err
	}

	t, err := s.repo.GetByID(ctx, todoID)
	if err != nil {
		return nil, err
	}
	return NewView(*t, cc)
}

// Update applies a partial update. An empty command is a validation error,
// not a silent no-op.
func (s *Service) Update(ctx context.Context, cmd entity.UpdateTodoCommand) error {
	if cmd.IsEmpty() {
		return apperror.NewValidation("update command has no changes")
	}

	cc := corecontext.ClientOrAnonymous(ctx)
	if err := cc.Require(security.UpdateTodo{}); err != nil {
		return err
	}

	// Surfaces todo/not-found before the write.
	if _, err := s.repo.GetByID(ctx, cmd.ID); err != nil {
		return err
	}

	if err := s.repo.Update(ctx, cmd); err != nil {
		return err
	}

	logger.Info(ctx, "todo updated", "todo_id", cmd.ID.String())
	s.auditor.Record(ctx, audit.Entry{
		EntityType: "todo",
		EntityID:   cmd.ID,
		Action:     audit.ActionUpdate,
	})
	return nil
}

// Delete soft-deletes a todo.
func (s *Service) Delete(ctx context.Context, todoID id.ID) error {
	cc := corecontext.ClientOrAnonymous(ctx)
	if err := cc.Require(security.DeleteTodo{}); err != nil {
		return err
	}

	if _, err := s.repo.GetByID(ctx, todoID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, todoID); err != nil {
		return err
	}

	logger.Info(ctx, "todo deleted", "todo_id", todoID.String())
	s.auditor.Record(ctx, audit.Entry{
		EntityType: "todo",
		EntityID:   todoID,
		Action:     audit.ActionDelete,
	})
	return nil
}
