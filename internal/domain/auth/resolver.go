package auth

import (
	"context"

	"todoroki/internal/core/apperror"
	"todoroki/internal/core/entity"
	"todoroki/internal/domain/user"
)

// Resolver maps verified claims to one of the three client states.
type Resolver struct {
	users user.Repository
}

// NewResolver creates an identity resolver backed by the user repository.
func NewResolver(users user.Repository) *Resolver {
	return &Resolver{users: users}
}

// Resolve turns verified claims into a Client.
//
// Identity resolution proceeds only when email_verified is true; an
// unverified email resolves to ClientUnverified without any lookup. A
// verified email not associated with an account resolves to
// ClientUnregistered. Repository failures propagate as internal errors.
func (r *Resolver) Resolve(ctx context.Context, claims *VerifiedClaims) (entity.Client, error) {
	if !claims.EmailVerified {
		return entity.ClientUnverified{}, nil
	}

	u, err := r.users.GetByEmail(ctx, claims.Email)
	if err != nil {
		if apperror.IsNotFound(err) {
			return entity.ClientUnregistered{Email: claims.Email}, nil
		}
		return nil, apperror.NewInternal(err)
	}

	return entity.ClientUser{User: *u}, nil
}
