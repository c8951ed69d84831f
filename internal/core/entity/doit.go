package entity

import (
	"time"

	"todoroki/internal/core/id"
)

// Doit is a concrete unit of work, optionally linked to the todo it
// completes. CreatedBy records the authoring user and drives the per-resource
// ownership checks in the permission engine.
type Doit struct {
	ID          id.ID       `db:"id" json:"id"`
	Name        string      `db:"name" json:"name"`
	Description string      `db:"description" json:"description"`
	Publishment Publishment `db:"-" json:"publishment"`
	Labels      []Label     `db:"-" json:"labels"`
	AffectsTo   *id.ID      `db:"affects_to" json:"affectsTo,omitempty"`
	DeadlinedAt *time.Time  `db:"deadlined_at" json:"deadlinedAt,omitempty"`
	CreatedAt   time.Time   `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time   `db:"updated_at" json:"updatedAt"`
	CreatedBy   id.ID       `db:"created_by" json:"createdBy"`
}

// NewDoit creates a doit with a fresh id and timestamps.
func NewDoit(
	name, description string,
	publishment Publishment,
	labels []Label,
	deadlinedAt *time.Time,
	createdBy id.ID,
) Doit {
	now := time.Now().UTC()
	return Doit{
		ID:          id.New(),
		Name:        name,
		Description: description,
		Publishment: publishment,
		Labels:      labels,
		DeadlinedAt: deadlinedAt,
		CreatedAt:   now,
		UpdatedAt:   now,
		CreatedBy:   createdBy,
	}
}

// IsAlive reports whether the doit has not yet been applied to a todo.
func (d Doit) IsAlive() bool {
	return d.AffectsTo == nil
}

// UpdateDoitCommand is a partial update. Nil fields are left untouched.
type UpdateDoitCommand struct {
	ID            id.ID
	Name          *string
	Description   *string
	Publishment   *Publishment
	AffectsTo     *id.ID
	DeadlinedAt   *time.Time
	ClearDeadline bool
}

// IsEmpty reports whether the command would change nothing.
func (c UpdateDoitCommand) IsEmpty() bool {
	return c.Name == nil &&
		c.Description == nil &&
		c.Publishment == nil &&
		c.AffectsTo == nil &&
		c.DeadlinedAt == nil &&
		!c.ClearDeadline
}
