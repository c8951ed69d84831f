package auth

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todoroki/internal/core/apperror"
)

const testProjectID = "todoroki-test"

type fakeKeyProvider struct {
	keys  map[string]VerificationKey
	err   error
	calls int
}

func (p *fakeKeyProvider) GetKeyByID(_ context.Context, kid string) (VerificationKey, error) {
	p.calls++
	if p.err != nil {
		return VerificationKey{}, p.err
	}
	key, ok := p.keys[kid]
	if !ok {
		return VerificationKey{}, &KeyNotFoundError{Kid: kid}
	}
	return key, nil
}

type tokenOverrides struct {
	kid      string
	audience string
	issuer   string
	expires  time.Time
}

func signToken(t *testing.T, priv *rsa.PrivateKey, email string, verified bool, o tokenOverrides) string {
	t.Helper()

	if o.audience == "" {
		o.audience = testProjectID
	}
	if o.issuer == "" {
		o.issuer = "https://securetoken.google.com/" + testProjectID
	}
	if o.expires.IsZero() {
		o.expires = time.Now().Add(time.Hour)
	}

	claims := firebaseClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "firebase-uid",
			Audience:  jwt.ClaimStrings{o.audience},
			Issuer:    o.issuer,
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			ExpiresAt: jwt.NewNumericDate(o.expires),
		},
		Email:         email,
		EmailVerified: verified,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	if o.kid != "" {
		token.Header["kid"] = o.kid
	}
	signed, err := token.SignedString(priv)
	require.NoError(t, err)
	return signed
}

func newTestVerifier(t *testing.T) (*Verifier, *rsa.PrivateKey, *fakeKeyProvider) {
	t.Helper()
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	provider := &fakeKeyProvider{keys: map[string]VerificationKey{
		"kid-1": NewVerificationKey(&priv.PublicKey),
	}}
	return NewVerifier(provider, testProjectID), priv, provider
}

func TestVerifyValidToken(t *testing.T) {
	v, priv, provider := newTestVerifier(t)

	raw := signToken(t, priv, "a@example.com", true, tokenOverrides{kid: "kid-1"})
	claims, err := v.Verify(context.Background(), raw)
	require.NoError(t, err)

	assert.Equal(t, "a@example.com", claims.Email)
	assert.True(t, claims.EmailVerified)
	assert.Equal(t, "firebase-uid", claims.Subject)
	assert.Equal(t, 1, provider.calls, "one provider call per verification")
}

func TestVerifyUnverifiedEmailIsNotAnError(t *testing.T) {
	v, priv, _ := newTestVerifier(t)

	raw := signToken(t, priv, "a@example.com", false, tokenOverrides{kid: "kid-1"})
	claims, err := v.Verify(context.Background(), raw)
	require.NoError(t, err)
	assert.False(t, claims.EmailVerified)
}

func TestVerifyMalformedToken(t *testing.T) {
	v, _, provider := newTestVerifier(t)

	_, err := v.Verify(context.Background(), "not-a-token")
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeTokenVerification))
	assert.Zero(t, provider.calls, "no key fetched for a token that cannot be decoded")
}

func TestVerifyMissingKid(t *testing.T) {
	v, priv, _ := newTestVerifier(t)

	raw := signToken(t, priv, "a@example.com", true, tokenOverrides{})
	_, err := v.Verify(context.Background(), raw)
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeTokenVerification))
}

func TestVerifyUnknownKey(t *testing.T) {
	v, priv, _ := newTestVerifier(t)

	raw := signToken(t, priv, "a@example.com", true, tokenOverrides{kid: "kid-rotated-away"})
	_, err := v.Verify(context.Background(), raw)
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeTokenVerification, appErr.Code)
	assert.Equal(t, "kid-rotated-away", appErr.Details["kid"])
}

func TestVerifyKeyProviderUnavailable(t *testing.T) {
	v, priv, provider := newTestVerifier(t)
	provider.err = &KeyProviderUnavailableError{Err: errors.New("connection refused")}

	raw := signToken(t, priv, "a@example.com", true, tokenOverrides{kid: "kid-1"})
	_, err := v.Verify(context.Background(), raw)
	require.Error(t, err)

	// Distinct from a bad token so operators can tell the two apart.
	assert.True(t, apperror.IsCode(err, apperror.CodeKeyProviderUnavailable))
	assert.False(t, apperror.IsCode(err, apperror.CodeTokenVerification))
}

func TestVerifyExpiredToken(t *testing.T) {
	v, priv, _ := newTestVerifier(t)

	raw := signToken(t, priv, "a@example.com", true, tokenOverrides{
		kid:     "kid-1",
		expires: time.Now().Add(-time.Hour),
	})
	_, err := v.Verify(context.Background(), raw)
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeTokenVerification))
}

func TestVerifyWrongAudience(t *testing.T) {
	v, priv, _ := newTestVerifier(t)

	raw := signToken(t, priv, "a@example.com", true, tokenOverrides{
		kid:      "kid-1",
		audience: "another-project",
	})
	_, err := v.Verify(context.Background(), raw)
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeTokenVerification))
}

func TestVerifyWrongIssuer(t *testing.T) {
	v, priv, _ := newTestVerifier(t)

	raw := signToken(t, priv, "a@example.com", true, tokenOverrides{
		kid:    "kid-1",
		issuer: "https://securetoken.google.com/another-project",
	})
	_, err := v.Verify(context.Background(), raw)
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeTokenVerification))
}

func TestVerifyWrongSigningKey(t *testing.T) {
	v, _, _ := newTestVerifier(t)

	otherKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	raw := signToken(t, otherKey, "a@example.com", true, tokenOverrides{kid: "kid-1"})
	_, verr := v.Verify(context.Background(), raw)
	require.Error(t, verr)
	assert.True(t, apperror.IsCode(verr, apperror.CodeTokenVerification))
}
