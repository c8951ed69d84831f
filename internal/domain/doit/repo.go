// Package doit provides the doit domain: repository contract, service and
// the redacting view builder. A doit is a concrete unit of work authored by a
// registered user; most checks here are ownership-aware.
package doit

import (
	"context"

	"todoroki/internal/core/entity"
	"todoroki/internal/core/id"
)

// Repository defines doit persistence. GetByID and Update return a
// doit/not-found error for unknown ids.
type Repository interface {
	Create(ctx context.Context, d entity.Doit) error
	GetByID(ctx context.Context, doitID id.ID) (*entity.Doit, error)
	List(ctx context.Context) ([]entity.Doit, error)
	Update(ctx context.Context, cmd entity.UpdateDoitCommand) error
	Delete(ctx context.Context, doitID id.ID) error
}
