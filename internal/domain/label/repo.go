// Package label provides the label domain.
package label

import (
	"context"

	"todoroki/internal/core/entity"
	"todoroki/internal/core/id"
)

// Repository defines label persistence. GetByID returns a label/not-found
// error for unknown ids.
type Repository interface {
	Create(ctx context.Context, l entity.Label) error
	GetByID(ctx context.Context, labelID id.ID) (*entity.Label, error)
	List(ctx context.Context) ([]entity.Label, error)
	Delete(ctx context.Context, labelID id.ID) error
}
