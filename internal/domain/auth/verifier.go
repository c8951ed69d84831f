package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"todoroki/internal/core/apperror"
)

// VerifiedClaims is the subset of token claims the rest of the service needs.
// An unverified email is not an error at this layer; the resolver decides
// what it means.
type VerifiedClaims struct {
	Subject       string
	Email         string
	EmailVerified bool
}

// firebaseClaims is the wire shape of an identity-provider token payload.
type firebaseClaims struct {
	jwt.RegisteredClaims
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
}

// Verifier validates externally issued identity tokens against the
// provider's rotating key set. One KeyProvider call per verification; no key
// caching at this layer.
type Verifier struct {
	keys      KeyProvider
	projectID string
}

// NewVerifier creates a verifier for tokens issued to the given project.
func NewVerifier(keys KeyProvider, projectID string) *Verifier {
	return &Verifier{keys: keys, projectID: projectID}
}

// Issuer returns the expected token issuer for the configured project.
func (v *Verifier) Issuer() string {
	return fmt.Sprintf("https://securetoken.google.com/%s", v.projectID)
}

// Verify checks the token signature and claims and extracts VerifiedClaims.
//
// The signature key is chosen by the kid token header. Expiry must be in the
// future; not-before is deliberately not enforced (the issuer does not set it
// reliably). Audience must equal the project id and issuer the URL derived
// from it.
func (v *Verifier) Verify(ctx context.Context, token string) (*VerifiedClaims, error) {
	kid, err := v.keyID(token)
	if err != nil {
		return nil, err
	}

	key, err := v.keys.GetKeyByID(ctx, kid)
	if err != nil {
		var notFound *KeyNotFoundError
		if errors.As(err, &notFound) {
			return nil, apperror.NewTokenVerification("unknown signing key").
				WithDetail("kid", notFound.Kid)
		}
		return nil, apperror.NewKeyProviderUnavailable(err)
	}

	claims := &firebaseClaims{}
	_, err = jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (any, error) { return key.Value(), nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithAudience(v.projectID),
		jwt.WithIssuer(v.Issuer()),
	)
	if err != nil {
		return nil, apperror.NewTokenVerification("signature or claims invalid").WithCause(err)
	}

	return &VerifiedClaims{
		Subject:       claims.Subject,
		Email:         claims.Email,
		EmailVerified: claims.EmailVerified,
	}, nil
}

// keyID decodes the token header without verifying the signature and returns
// the key identifier.
func (v *Verifier) keyID(token string) (string, error) {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return "", apperror.NewTokenVerification("malformed token").WithCause(err)
	}
	kid, ok := parsed.Header["kid"].(string)
	if !ok || kid == "" {
		return "", apperror.NewTokenVerification("token header has no kid")
	}
	return kid, nil
}
