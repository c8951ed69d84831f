package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todoroki/internal/core/apperror"
	"todoroki/internal/core/entity"
	"todoroki/internal/core/id"
)

const bootstrapEmail = "root@example.com"

func ownerClient() ContextedClient {
	return NewContextedClient(entity.ClientUser{
		User: entity.NewUser("boss", bootstrapEmail, entity.RoleOwner),
	}, bootstrapEmail)
}

func contributorClient(u entity.User) ContextedClient {
	return NewContextedClient(entity.ClientUser{User: u}, bootstrapEmail)
}

func doitBy(creator id.ID) entity.Doit {
	return entity.NewDoit("write tests", "cover the decision table", entity.PublicPublishment(), nil, nil, creator)
}

// every permission variant; ownership payloads belong to someone else
func allPermissions(stranger id.ID) []Permission {
	return []Permission{
		CreateTodo{}, ReadTodo{}, ReadPrivateTodo{}, UpdateTodo{}, DeleteTodo{},
		CreateDoit{}, ReadDoit{}, ReadPrivateDoit{Doit: doitBy(stranger)},
		UpdateDoit{Doit: doitBy(stranger)}, DeleteDoit{Doit: doitBy(stranger)},
		CreateLabel{}, ReadLabel{}, DeleteLabel{},
		CreateUser{Candidate: entity.NewUser("x", "x@example.com", entity.RoleContributor)},
	}
}

func TestOwnerAllowsEveryPermission(t *testing.T) {
	cc := ownerClient()
	for _, p := range allPermissions(id.New()) {
		assert.NoError(t, cc.Require(p), "owner should hold %s", p)
	}
}

func TestContributorBaseSet(t *testing.T) {
	me := entity.NewUser("contributor", "c@example.com", entity.RoleContributor)
	cc := contributorClient(me)

	allowed := []Permission{ReadTodo{}, ReadDoit{}, ReadLabel{}, CreateDoit{}}
	for _, p := range allowed {
		assert.NoError(t, cc.Require(p), "contributor should hold %s", p)
	}

	deniedPerms := []Permission{
		CreateTodo{}, ReadPrivateTodo{}, UpdateTodo{}, DeleteTodo{},
		CreateLabel{}, DeleteLabel{},
		CreateUser{Candidate: entity.NewUser("x", "c@example.com", entity.RoleContributor)},
	}
	for _, p := range deniedPerms {
		err := cc.Require(p)
		require.Error(t, err, "contributor should not hold %s", p)
		assert.True(t, apperror.IsPermissionDenied(err))
	}
}

func TestContributorOwnershipOverride(t *testing.T) {
	me := entity.NewUser("contributor", "c@example.com", entity.RoleContributor)
	cc := contributorClient(me)

	mine := doitBy(me.ID)
	theirs := doitBy(id.New())

	assert.NoError(t, cc.Require(UpdateDoit{Doit: mine}))
	assert.NoError(t, cc.Require(DeleteDoit{Doit: mine}))
	assert.NoError(t, cc.Require(ReadPrivateDoit{Doit: mine}))

	err := cc.Require(UpdateDoit{Doit: theirs})
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodePermissionDenied, appErr.Code)
	assert.Equal(t, "doit:update", appErr.Details["permission"])

	assert.Error(t, cc.Require(DeleteDoit{Doit: theirs}))
	assert.Error(t, cc.Require(ReadPrivateDoit{Doit: theirs}))
}

func TestOwnerOverridesForeignDoit(t *testing.T) {
	// Owner updating a doit created by someone else is allowed.
	cc := ownerClient()
	assert.NoError(t, cc.Require(UpdateDoit{Doit: doitBy(id.New())}))
}

func TestUnregisteredReadsAndBootstrap(t *testing.T) {
	email := "new@example.com"
	cc := NewContextedClient(entity.ClientUnregistered{Email: email}, bootstrapEmail)

	for _, p := range []Permission{ReadTodo{}, ReadDoit{}, ReadLabel{}} {
		assert.NoError(t, cc.Require(p))
	}
	for _, p := range []Permission{CreateTodo{}, CreateDoit{}, CreateLabel{}, UpdateTodo{}} {
		assert.Error(t, cc.Require(p))
	}

	// Self-registration as contributor is allowed.
	assert.NoError(t, cc.Require(CreateUser{
		Candidate: entity.NewUser("n", email, entity.RoleContributor),
	}))

	// Registering someone else's email is not.
	assert.Error(t, cc.Require(CreateUser{
		Candidate: entity.NewUser("n", "other@example.com", entity.RoleContributor),
	}))

	// Owner role requires the bootstrap email.
	assert.Error(t, cc.Require(CreateUser{
		Candidate: entity.NewUser("n", email, entity.RoleOwner),
	}))
}

func TestBootstrapOwnerException(t *testing.T) {
	cc := NewContextedClient(entity.ClientUnregistered{Email: bootstrapEmail}, bootstrapEmail)

	// Caller whose verified email matches the configured default owner may
	// register itself as Owner.
	assert.NoError(t, cc.Require(CreateUser{
		Candidate: entity.NewUser("root", bootstrapEmail, entity.RoleOwner),
	}))

	// Same caller smuggling a different email in the payload is refused.
	assert.Error(t, cc.Require(CreateUser{
		Candidate: entity.NewUser("root", "other@example.com", entity.RoleOwner),
	}))
}

func TestBootstrapDisabledWhenOwnerEmailUnset(t *testing.T) {
	cc := NewContextedClient(entity.ClientUnregistered{Email: ""}, "")
	assert.Error(t, cc.Require(CreateUser{
		Candidate: entity.NewUser("root", "", entity.RoleOwner),
	}))
}

func TestUnverifiedReadsOnly(t *testing.T) {
	cc := NewContextedClient(entity.ClientUnverified{}, bootstrapEmail)

	for _, p := range []Permission{ReadTodo{}, ReadDoit{}, ReadLabel{}} {
		assert.NoError(t, cc.Require(p))
	}

	// No bootstrap exception for unverified callers, even with a matching
	// candidate email.
	assert.Error(t, cc.Require(CreateUser{
		Candidate: entity.NewUser("root", bootstrapEmail, entity.RoleOwner),
	}))

	for _, p := range allPermissions(id.New()) {
		if isBaseRead(p) {
			continue
		}
		assert.Error(t, cc.Require(p), "unverified should not hold %s", p)
	}
}

func TestDeterministicDecisions(t *testing.T) {
	me := entity.NewUser("contributor", "c@example.com", entity.RoleContributor)
	cc := contributorClient(me)
	p := UpdateDoit{Doit: doitBy(id.New())}

	first := cc.Require(p)
	second := cc.Require(p)
	require.Error(t, first)
	require.Error(t, second)
	assert.Equal(t, first.Error(), second.Error())
}
