// Package todo provides the todo domain: repository contract, service and
// the redacting view builder.
package todo

import (
	"context"

	"todoroki/internal/core/entity"
	"todoroki/internal/core/id"
)

// Repository defines todo persistence. Reads exclude soft-deleted rows.
// GetByID and Update return a todo/not-found error for unknown or deleted
// ids.
type Repository interface {
	Create(ctx context.Context, t entity.Todo) error
	GetByID(ctx context.Context, todoID id.ID) (*entity.Todo, error)
	List(ctx context.Context) ([]entity.Todo, error)
	Update(ctx context.Context, cmd entity.UpdateTodoCommand) error
	Delete(ctx context.Context, todoID id.ID) error
}
