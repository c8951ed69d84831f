package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todoroki/internal/core/apperror"
	appctx "todoroki/internal/core/context"
	"todoroki/internal/core/entity"
	"todoroki/internal/domain/auth"
)

type fakeVerifier struct {
	claims map[string]*auth.VerifiedClaims
}

func (v *fakeVerifier) Verify(_ context.Context, token string) (*auth.VerifiedClaims, error) {
	claims, ok := v.claims[token]
	if !ok {
		return nil, apperror.NewTokenVerification("signature or claims invalid")
	}
	return claims, nil
}

type fakeResolver struct {
	users map[string]entity.User
}

func (r *fakeResolver) Resolve(_ context.Context, claims *auth.VerifiedClaims) (entity.Client, error) {
	if !claims.EmailVerified {
		return entity.ClientUnverified{}, nil
	}
	if u, ok := r.users[claims.Email]; ok {
		return entity.ClientUser{User: u}, nil
	}
	return entity.ClientUnregistered{Email: claims.Email}, nil
}

func testRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	bob := entity.NewUser("bob", "bob@example.com", entity.RoleContributor)
	a := NewAuthenticator(
		&fakeVerifier{claims: map[string]*auth.VerifiedClaims{
			"good":       {Subject: "uid", Email: "bob@example.com", EmailVerified: true},
			"unverified": {Subject: "uid", Email: "bob@example.com", EmailVerified: false},
			"unknown":    {Subject: "uid", Email: "new@example.com", EmailVerified: true},
		}},
		&fakeResolver{users: map[string]entity.User{"bob@example.com": bob}},
		"owner@example.com",
	)

	r := gin.New()
	r.Use(ErrorHandler())
	stateOf := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"state": appctx.GetClientState(c.Request.Context())})
	}
	r.GET("/required", a.Auth(), stateOf)
	r.GET("/optional", a.OptionalAuth(), stateOf)
	return r
}

func doRequest(r *gin.Engine, path, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthValidToken(t *testing.T) {
	r := testRouter(t)

	w := doRequest(r, "/required", "Bearer good")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"state":"user"`)
}

func TestAuthMissingHeader(t *testing.T) {
	r := testRouter(t)

	w := doRequest(r, "/required", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), apperror.CodeTokenVerification)
}

func TestAuthMalformedHeader(t *testing.T) {
	r := testRouter(t)

	for _, header := range []string{"good", "Basic good", "Bearer"} {
		w := doRequest(r, "/required", header)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "header %q", header)
	}
}

func TestAuthBadToken(t *testing.T) {
	r := testRouter(t)

	w := doRequest(r, "/required", "Bearer forged")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthUnverifiedEmailPassesMiddleware(t *testing.T) {
	r := testRouter(t)

	// The middleware installs the client; rejection is per-operation.
	w := doRequest(r, "/required", "Bearer unverified")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"state":"unverified"`)
}

func TestAuthUnregisteredEmail(t *testing.T) {
	r := testRouter(t)

	w := doRequest(r, "/required", "Bearer unknown")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"state":"unregistered"`)
}

func TestOptionalAuthNoHeader(t *testing.T) {
	r := testRouter(t)

	w := doRequest(r, "/optional", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"state":"unverified"`)
}

// A presented credential must be valid even on optional routes.
func TestOptionalAuthBadTokenIsHardError(t *testing.T) {
	r := testRouter(t)

	w := doRequest(r, "/optional", "Bearer forged")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestOptionalAuthValidToken(t *testing.T) {
	r := testRouter(t)

	w := doRequest(r, "/optional", "Bearer good")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"state":"user"`)
}
