// Package user provides the user account domain: repository contract and the
// registration service with its bootstrap-owner gate.
package user

import (
	"context"

	"todoroki/internal/core/entity"
	"todoroki/internal/core/id"
)

// Repository defines the interface for user persistence. GetByEmail and
// GetByID return a user/not-found error when no account matches.
type Repository interface {
	Create(ctx context.Context, u entity.User) error
	GetByID(ctx context.Context, userID id.ID) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
}
