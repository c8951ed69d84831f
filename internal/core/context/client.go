// Package context provides request-scoped value extraction.
package context

import (
	"context"

	"todoroki/internal/core/entity"
	"todoroki/internal/core/security"
)

type clientContextKey struct{}

// WithClient adds the resolved authorization context to the request context.
func WithClient(ctx context.Context, cc security.ContextedClient) context.Context {
	return context.WithValue(ctx, clientContextKey{}, cc)
}

// GetClient returns the authorization context, if the auth middleware ran.
func GetClient(ctx context.Context) (security.ContextedClient, bool) {
	cc, ok := ctx.Value(clientContextKey{}).(security.ContextedClient)
	return cc, ok
}

// ClientOrAnonymous returns the authorization context, falling back to an
// unverified client when the auth middleware did not run. The fallback holds
// no bootstrap email, so it can never satisfy a write permission.
func ClientOrAnonymous(ctx context.Context) security.ContextedClient {
	if cc, ok := GetClient(ctx); ok {
		return cc
	}
	return security.NewContextedClient(entity.ClientUnverified{}, "")
}

// GetClientState returns the client state name for logging, or "" when no
// client was resolved.
func GetClientState(ctx context.Context) string {
	if cc, ok := GetClient(ctx); ok {
		return cc.Client().State()
	}
	return ""
}

// GetClientEmail returns the caller's email for logging, or "" when unknown.
func GetClientEmail(ctx context.Context) string {
	if cc, ok := GetClient(ctx); ok {
		if email, ok := cc.Email(); ok {
			return email
		}
	}
	return ""
}
