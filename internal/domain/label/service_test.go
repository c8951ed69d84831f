package label

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
	labels map[id.ID]entity.Label
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{labels: map[id.ID]entity.Label{}}
}

func (r *memoryRepo) Create(_ context.Context, l entity.Label) error {
	r.labels[l.ID] = l
	return nil
}

func (r *memoryRepo) GetByID(_ context.Context, labelID id.ID) (*entity.Label, error) {
	l, ok := r.labels[labelID]
	if !ok {
		return nil, apperror.NewNotFound("label", labelID.String())
	}
	return &l, nil
}

func (r *memoryRepo) List(_ context.Context) ([]entity.Label, error) {
	var out []entity.Label
	for _, l := range r.labels {
		out = append(out, l)
	}
	return out, nil
}

func (r *memoryRepo) Delete(_ context.Context, labelID id.ID) error {
	delete(r.labels, labelID)
	return nil
}

func ownerCtx() context.Context {
	u := entity.NewUser("alice", "alice@example.com", entity.RoleOwner)
	cc := security.NewContextedClient(entity.ClientUser{User: u}, "")
	return corecontext.WithClient(context.Background(), cc)
}

func contributorCtx() context.Context {
	u := entity.NewUser("bob", "bob@example.com", entity.RoleContributor)
	cc := security.NewContextedClient(entity.ClientUser{User: u}, "")
	return corecontext.WithClient(context.Background(), cc)
}

func TestCreateRequiresOwner(t *testing.T) {
	svc := NewService(newMemoryRepo(), audit.NopRecorder{})

	color, err := entity.ParseColor("#ff8800")
	require.NoError(t, err)
	l := entity.NewLabel("work", "office tasks", &color)

	_, err = svc.Create(contributorCtx(), l)
	require.Error(t, err)
	assert.True(t, apperror.IsPermissionDenied(err))

	created, err := svc.Create(ownerCtx(), l)
	require.NoError(t, err)
	assert.Equal(t, "#ff8800", created.Color.Hex())
}

func TestListReadableByContributor(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, audit.NopRecorder{})

	_, err := svc.Create(ownerCtx(), entity.NewLabel("work", "", nil))
	require.NoError(t, err)

	labels, err := svc.List(contributorCtx())
	require.NoError(t, err)
	assert.Len(t, labels, 1)
}

func TestDeleteRequiresOwner(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, audit.NopRecorder{})

	created, err := svc.Create(ownerCtx(), entity.NewLabel("work", "", nil))
	require.NoError(t, err)

	err = svc.Delete(contributorCtx(), created.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsPermissionDenied(err))

	require.NoError(t, svc.Delete(ownerCtx(), created.ID))
	_, err = svc.Get(ownerCtx(), created.ID)
	assert.True(t, apperror.IsNotFound(err))
}

func TestResolveUnknownLabel(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, audit.NopRecorder{})

	created, err := svc.Create(ownerCtx(), entity.NewLabel("work", "", nil))
	require.NoError(t, err)

	labels, err := svc.Resolve(contributorCtx(), []id.ID{created.ID})
	require.NoError(t, err)
	assert.Len(t, labels, 1)

	_, err = svc.Resolve(contributorCtx(), []id.ID{created.ID, id.New()})
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, "label/not-found"))
}
