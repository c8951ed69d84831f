// Package entity defines the domain entities of the service.
package entity

import (
	"time"

	"todoroki/internal/core/id"
)

// Role is the privilege level attached to a User at creation. The engine
// treats it as immutable input; role transitions happen only through an
// administrative action outside this service.
type Role string

const (
	// RoleOwner is the single privileged role. It is granted only through the
	// bootstrap-owner exception (see security package).
	RoleOwner Role = "owner"

	// RoleContributor is the default role for registered users.
	RoleContributor Role = "contributor"
)

// Valid reports whether the role is one of the defined constants.
func (r Role) Valid() bool {
	return r == RoleOwner || r == RoleContributor
}

// User is a resolved, persisted account.
type User struct {
	ID        id.ID     `db:"id" json:"id"`
	Role      Role      `db:"role" json:"role"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// NewUser creates a user with a fresh id and timestamps.
func NewUser(name, email string, role Role) User {
	now := time.Now().UTC()
	return User{
		ID:        id.New(),
		Role:      role,
		Name:      name,
		Email:     email,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
