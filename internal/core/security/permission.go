// Package security provides the permission engine: the single authority that
// gates every protected operation. Decisions are pure functions of the
// resolved client, the requested permission and the configured bootstrap
// email; the engine never fetches state on its own.
package security

import (
	"todoroki/internal/core/entity"
)

// Permission is a fine-grained action a caller may request. Variants whose
// check depends on ownership carry an immutable snapshot of the target
// resource; that snapshot is the authoritative input for the decision.
type Permission interface {
	isPermission()

	// String returns the machine-readable permission name used in denial
	// diagnostics.
	String() string
}

// --- Todo permissions ---

// CreateTodo permits creating a todo.
type CreateTodo struct{}

// ReadTodo permits listing and reading todos.
type ReadTodo struct{}

// ReadPrivateTodo permits reading the real name and description of a private
// todo. Todos have no author, so this is a role-only check.
type ReadPrivateTodo struct{}

// UpdateTodo permits updating a todo.
type UpdateTodo struct{}

// DeleteTodo permits deleting a todo.
type DeleteTodo struct{}

// --- Doit permissions ---

// CreateDoit permits creating a doit.
type CreateDoit struct{}

// ReadDoit permits listing and reading doits.
type ReadDoit struct{}

// ReadPrivateDoit permits reading the real name and description of the
// carried private doit. The doit's creator may always read it.
type ReadPrivateDoit struct {
	Doit entity.Doit
}

// UpdateDoit permits updating the carried doit. The doit's creator may
// always update it.
type UpdateDoit struct {
	Doit entity.Doit
}

// DeleteDoit permits deleting the carried doit. The doit's creator may
// always delete it.
type DeleteDoit struct {
	Doit entity.Doit
}

// --- Label permissions ---

// CreateLabel permits creating a label.
type CreateLabel struct{}

// ReadLabel permits listing and reading labels.
type ReadLabel struct{}

// DeleteLabel permits deleting a label.
type DeleteLabel struct{}

// --- User permissions ---

// CreateUser permits registering the carried candidate account. Only an
// unregistered caller registering itself may hold it (see Require).
type CreateUser struct {
	Candidate entity.User
}

func (CreateTodo) isPermission()      {}
func (ReadTodo) isPermission()        {}
func (ReadPrivateTodo) isPermission() {}
func (UpdateTodo) isPermission()      {}
func (DeleteTodo) isPermission()      {}
func (CreateDoit) isPermission()      {}
func (ReadDoit) isPermission()        {}
func (ReadPrivateDoit) isPermission() {}
func (UpdateDoit) isPermission()      {}
func (DeleteDoit) isPermission()      {}
func (CreateLabel) isPermission()     {}
func (ReadLabel) isPermission()       {}
func (DeleteLabel) isPermission()     {}
func (CreateUser) isPermission()      {}

func (CreateTodo) String() string      { return "todo:create" }
func (ReadTodo) String() string        { return "todo:read" }
func (ReadPrivateTodo) String() string { return "todo:read-private" }
func (UpdateTodo) String() string      { return "todo:update" }
func (DeleteTodo) String() string      { return "todo:delete" }
func (CreateDoit) String() string      { return "doit:create" }
func (ReadDoit) String() string        { return "doit:read" }
func (ReadPrivateDoit) String() string { return "doit:read-private" }
func (UpdateDoit) String() string      { return "doit:update" }
func (DeleteDoit) String() string      { return "doit:delete" }
func (CreateLabel) String() string     { return "label:create" }
func (ReadLabel) String() string       { return "label:read" }
func (DeleteLabel) String() string     { return "label:delete" }
func (CreateUser) String() string      { return "user:create" }
