package security

import (
	"todoroki/internal/core/apperror"
	"todoroki/internal/core/entity"
	"todoroki/internal/core/id"
)

// ContextedClient pairs a resolved client with the configured default-owner
// email, the only configuration the permission engine needs. Constructed once
// per request and never mutated.
type ContextedClient struct {
	client            entity.Client
	defaultOwnerEmail string
}

// NewContextedClient builds the per-request authorization context.
func NewContextedClient(client entity.Client, defaultOwnerEmail string) ContextedClient {
	return ContextedClient{client: client, defaultOwnerEmail: defaultOwnerEmail}
}

// Client returns the resolved caller identity.
func (cc ContextedClient) Client() entity.Client {
	return cc.client
}

// UserID returns the caller's user id when the client is a registered user.
func (cc ContextedClient) UserID() (id.ID, bool) {
	if u, ok := cc.client.(entity.ClientUser); ok {
		return u.User.ID, true
	}
	return id.Nil(), false
}

// Email returns the caller's verified email when one is known.
func (cc ContextedClient) Email() (string, bool) {
	switch c := cc.client.(type) {
	case entity.ClientUser:
		return c.User.Email, true
	case entity.ClientUnregistered:
		return c.Email, true
	}
	return "", false
}

// Require evaluates the permission against the decision table and returns a
// permission/denied error carrying the refused permission, or nil.
//
// Decision table:
//   - registered Owner: everything
//   - registered Contributor: todo:read, doit:read, label:read, doit:create,
//     plus doit permissions carrying a doit the caller created
//   - unregistered: the three reads, plus user:create for a candidate that
//     registers the caller's own email (bootstrap-owner exception for the
//     configured default-owner email)
//   - unverified: the three reads only
func (cc ContextedClient) Require(p Permission) error {
	switch c := cc.client.(type) {
	case entity.ClientUser:
		if c.User.Role == entity.RoleOwner {
			return nil
		}
		return cc.requireContributor(c.User, p)
	case entity.ClientUnregistered:
		return cc.requireUnregistered(c.Email, p)
	case entity.ClientUnverified:
		if isBaseRead(p) {
			return nil
		}
	}
	return denied(p)
}

func (cc ContextedClient) requireContributor(u entity.User, p Permission) error {
	switch p := p.(type) {
	case ReadTodo, ReadDoit, ReadLabel, CreateDoit:
		return nil
	case ReadPrivateDoit:
		if p.Doit.CreatedBy == u.ID {
			return nil
		}
	case UpdateDoit:
		if p.Doit.CreatedBy == u.ID {
			return nil
		}
	case DeleteDoit:
		if p.Doit.CreatedBy == u.ID {
			return nil
		}
	}
	return denied(p)
}

func (cc ContextedClient) requireUnregistered(email string, p Permission) error {
	if isBaseRead(p) {
		return nil
	}
	create, ok := p.(CreateUser)
	if !ok {
		return denied(p)
	}
	// The caller may only register itself.
	if create.Candidate.Email != email {
		return denied(p)
	}
	switch create.Candidate.Role {
	case entity.RoleContributor:
		return nil
	case entity.RoleOwner:
		// Bootstrap-owner exception: the only path that ever creates an
		// Owner account.
		if create.Candidate.Email == cc.defaultOwnerEmail && cc.defaultOwnerEmail != "" {
			return nil
		}
	}
	return denied(p)
}

func isBaseRead(p Permission) bool {
	switch p.(type) {
	case ReadTodo, ReadDoit, ReadLabel:
		return true
	}
	return false
}

func denied(p Permission) error {
	return apperror.NewPermissionDenied(p.String())
}
