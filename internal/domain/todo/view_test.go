package todo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todoroki/internal/core/entity"
	"todoroki/internal/core/security"
)

func ownerClient() security.ContextedClient {
	u := entity.NewUser("alice", "alice@example.com", entity.RoleOwner)
	return security.NewContextedClient(entity.ClientUser{User: u}, "")
}

func contributorClient() security.ContextedClient {
	u := entity.NewUser("bob", "bob@example.com", entity.RoleContributor)
	return security.NewContextedClient(entity.ClientUser{User: u}, "")
}

func unverifiedClient() security.ContextedClient {
	return security.NewContextedClient(entity.ClientUnverified{}, "")
}

func TestViewPublicTodoUnredacted(t *testing.T) {
	todo := entity.NewTodo("groceries", "weekly shopping", entity.PublicPublishment(), nil, nil, nil)

	for _, cc := range []security.ContextedClient{ownerClient(), contributorClient(), unverifiedClient()} {
		v, err := NewView(todo, cc)
		require.NoError(t, err)
		assert.Equal(t, "groceries", v.Name)
		assert.Equal(t, "weekly shopping", v.Description)
		assert.True(t, v.IsPublic)
	}
}

func TestViewPrivateTodoRedactedWithAlternativeName(t *testing.T) {
	alt := "secret project"
	todo := entity.NewTodo("acquisition", "buy the competitor", entity.PrivatePublishment(&alt), nil, nil, nil)

	v, err := NewView(todo, contributorClient())
	require.NoError(t, err)
	assert.Equal(t, "secret project", v.Name)
	assert.Equal(t, privatePlaceholder, v.Description)
	assert.False(t, v.IsPublic)
}

func TestViewPrivateTodoRedactedWithPlaceholder(t *testing.T) {
	todo := entity.NewTodo("acquisition", "buy the competitor", entity.PrivatePublishment(nil), nil, nil, nil)

	v, err := NewView(todo, unverifiedClient())
	require.NoError(t, err)
	assert.Equal(t, privatePlaceholder, v.Name)
	assert.Equal(t, privatePlaceholder, v.Description)
}

func TestViewPrivateTodoVisibleToOwner(t *testing.T) {
	alt := "secret project"
	todo := entity.NewTodo("acquisition", "buy the competitor", entity.PrivatePublishment(&alt), nil, nil, nil)

	v, err := NewView(todo, ownerClient())
	require.NoError(t, err)
	assert.Equal(t, "acquisition", v.Name)
	assert.Equal(t, "buy the competitor", v.Description)
	assert.Equal(t, "secret project", *v.AlternativeName)
}

// Redaction hides content, not structure.
func TestViewRedactionKeepsLabelsAndSchedules(t *testing.T) {
	label := entity.NewLabel("work", "", nil)
	start, _ := entity.NewDayTime(9, 0, 0)
	end, _ := entity.NewDayTime(10, 0, 0)
	sched := entity.Schedule{Kind: entity.ScheduleDaily, StartTime: &start, EndTime: &end}

	todo := entity.NewTodo("standup", "daily sync", entity.PrivatePublishment(nil),
		[]entity.Label{label}, []entity.Schedule{sched}, nil)

	v, err := NewView(todo, unverifiedClient())
	require.NoError(t, err)
	assert.Equal(t, privatePlaceholder, v.Name)
	assert.Len(t, v.Labels, 1)
	assert.Len(t, v.Schedules, 1)
	assert.Equal(t, todo.CreatedAt, v.CreatedAt)
}
