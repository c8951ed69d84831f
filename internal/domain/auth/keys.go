// Package auth provides token verification and identity resolution for
// externally issued identity tokens.
package auth

import (
	"context"
	"fmt"
)

// VerificationKey is an opaque public-key handle produced by a KeyProvider
// and consumed only by the Verifier.
type VerificationKey struct {
	key any
}

// NewVerificationKey wraps a public key (e.g. *rsa.PublicKey).
func NewVerificationKey(key any) VerificationKey {
	return VerificationKey{key: key}
}

// Value returns the wrapped public key.
func (k VerificationKey) Value() any {
	return k.key
}

// KeyProvider fetches a signing key from the identity provider's key set by
// key identifier. Calls are stateless and may fail transiently; concurrent
// calls need no coordination.
type KeyProvider interface {
	GetKeyByID(ctx context.Context, kid string) (VerificationKey, error)
}

// KeyNotFoundError reports that the key set holds no key for the requested
// identifier. This is a credential problem, not a provider outage.
type KeyNotFoundError struct {
	Kid string
}

func (e *KeyNotFoundError) Error() string {
	return fmt.Sprintf("signing key not found: kid=%s", e.Kid)
}

// KeyProviderUnavailableError reports a transport or internal failure while
// fetching the key set. It is potentially transient and not the caller's
// fault.
type KeyProviderUnavailableError struct {
	Err error
}

func (e *KeyProviderUnavailableError) Error() string {
	return fmt.Sprintf("key provider unavailable: %v", e.Err)
}

func (e *KeyProviderUnavailableError) Unwrap() error {
	return e.Err
}
