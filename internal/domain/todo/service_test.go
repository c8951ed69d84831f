package todo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todoroki/internal/core/apperror"
	corecontext "todoroki/internal/core/context"
	"todoroki/internal/core/entity"
	"todoroki/internal/core/id"
	"todoroki/internal/core/security"
	"todoroki/internal/domain/audit"
)

type memoryRepo struct {
	todos map[id.ID]entity.Todo
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{todos: map[id.ID]entity.Todo{}}
}

func (r *memoryRepo) Create(_ context.Context, t entity.Todo) error {
	r.todos[t.ID] = t
	return nil
}

func (r *memoryRepo) GetByID(_ context.Context, todoID id.ID) (*entity.Todo, error) {
	t, ok := r.todos[todoID]
	if !ok || t.DeletedAt != nil {
		return nil, apperror.NewNotFound("todo", todoID.String())
	}
	return &t, nil
}

func (r *memoryRepo) List(_ context.Context) ([]entity.Todo, error) {
	var out []entity.Todo
	for _, t := range r.todos {
		if t.DeletedAt == nil {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *memoryRepo) Update(_ context.Context, cmd entity.UpdateTodoCommand) error {
	t, ok := r.todos[cmd.ID]
	if !ok {
		return apperror.NewNotFound("todo", cmd.ID.String())
	}
	if cmd.Name != nil {
		t.Name = *cmd.Name
	}
	if cmd.Description != nil {
		t.Description = *cmd.Description
	}
	if cmd.Publishment != nil {
		t.Publishment = *cmd.Publishment
	}
	r.todos[cmd.ID] = t
	return nil
}

func (r *memoryRepo) Delete(_ context.Context, todoID id.ID) error {
	t, ok := r.todos[todoID]
	if !ok {
		return apperror.NewNotFound("todo", todoID.String())
	}
	now := t.CreatedAt
	t.DeletedAt = &now
	r.todos[todoID] = t
	return nil
}

func ctxFor(client entity.Client) context.Context {
	cc := security.NewContextedClient(client, "")
	return corecontext.WithClient(context.Background(), cc)
}

func ownerCtx() context.Context {
	u := entity.NewUser("alice", "alice@example.com", entity.RoleOwner)
	return ctxFor(entity.ClientUser{User: u})
}

func contributorCtx() context.Context {
	u := entity.NewUser("bob", "bob@example.com", entity.RoleContributor)
	return ctxFor(entity.ClientUser{User: u})
}

func TestCreateRequiresOwner(t *testing.T) {
	svc := NewService(newMemoryRepo(), audit.NopRecorder{})
	todo := entity.NewTodo("groceries", "", entity.PublicPublishment(), nil, nil, nil)

	_, err := svc.Create(contributorCtx(), todo)
	require.Error(t, err)
	assert.True(t, apperror.IsPermissionDenied(err))

	created, err := svc.Create(ownerCtx(), todo)
	require.NoError(t, err)
	assert.Equal(t, todo.ID, created.ID)
}

func TestCreateValidatesSchedules(t *testing.T) {
	svc := NewService(newMemoryRepo(), audit.NopRecorder{})

	bad := entity.Schedule{Kind: entity.ScheduleDaily} // missing times
	todo := entity.NewTodo("standup", "", entity.PublicPublishment(), nil, []entity.Schedule{bad}, nil)

	_, err := svc.Create(ownerCtx(), todo)
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation))
}

func TestListVisibleToAnonymous(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, audit.NopRecorder{})

	_, err := svc.Create(ownerCtx(), entity.NewTodo("public", "", entity.PublicPublishment(), nil, nil, nil))
	require.NoError(t, err)
	_, err = svc.Create(ownerCtx(), entity.NewTodo("private", "hush", entity.PrivatePublishment(nil), nil, nil, nil))
	require.NoError(t, err)

	// No auth middleware ran at all: reads still work, private is redacted.
	views, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, views, 2)

	names := map[string]bool{}
	for _, v := range views {
		names[v.Name] = true
	}
	assert.True(t, names["public"])
	assert.True(t, names[privatePlaceholder])
	assert.False(t, names["private"])
}

func TestGetNotFound(t *testing.T) {
	svc := NewService(newMemoryRepo(), audit.NopRecorder{})

	_, err := svc.Get(ownerCtx(), id.New())
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestUpdateEmptyCommand(t *testing.T) {
	svc := NewService(newMemoryRepo(), audit.NopRecorder{})

	err := svc.Update(ownerCtx(), entity.UpdateTodoCommand{ID: id.New()})
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation))
}

func TestUpdateRequiresOwner(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, audit.NopRecorder{})

	created, err := svc.Create(ownerCtx(), entity.NewTodo("groceries", "", entity.PublicPublishment(), nil, nil, nil))
	require.NoError(t, err)

	name := "errands"
	cmd := entity.UpdateTodoCommand{ID: created.ID, Name: &name}

	err = svc.Update(contributorCtx(), cmd)
	require.Error(t, err)
	assert.True(t, apperror.IsPermissionDenied(err))

	require.NoError(t, svc.Update(ownerCtx(), cmd))
	stored, err := repo.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "errands", stored.Name)
}

func TestDeleteHidesFromList(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, audit.NopRecorder{})

	created, err := svc.Create(ownerCtx(), entity.NewTodo("groceries", "", entity.PublicPublishment(), nil, nil, nil))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ownerCtx(), created.ID))

	views, err := svc.List(ownerCtx())
	require.NoError(t, err)
	assert.Empty(t, views)

	_, err = svc.Get(ownerCtx(), created.ID)
	assert.True(t, apperror.IsNotFound(err))
}
