// Package firebase fetches the identity provider's signing keys.
package firebase

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/MicahParks/keyfunc/v2"

	"todoroki/internal/domain/auth"
)

// DefaultJWKSURL is the key set endpoint for securetoken.google.com issuers.
const DefaultJWKSURL = "https://www.googleapis.com/service_accounts/v1/jwk/securetoken@system.gserviceaccount.com"

const defaultCacheTTL = 5 * time.Minute

// KeyProvider implements auth.KeyProvider over the provider's JWKS endpoint.
// The parsed key set is cached per the endpoint's Cache-Control max-age, so
// key rotation is picked up without a restart.
type KeyProvider struct {
	client  *http.Client
	jwksURL string

	mu        sync.Mutex
	keys      map[string]any
	expiresAt time.Time
}

// NewKeyProvider creates a JWKS-backed key provider. A nil client falls back
// to http.DefaultClient.
func NewKeyProvider(client *http.Client, jwksURL string) *KeyProvider {
	if client == nil {
		client = http.DefaultClient
	}
	if jwksURL == "" {
		jwksURL = DefaultJWKSURL
	}
	return &KeyProvider{client: client, jwksURL: jwksURL}
}

// GetKeyByID returns the public key for the given kid.
//
// An unknown kid on a fresh key set is a KeyNotFoundError; fetch and parse
// failures are KeyProviderUnavailableError. A stale cache entry never answers
// an unknown kid: the set is refetched first, so a just-rotated key is found.
func (p *KeyProvider) GetKeyByID(ctx context.Context, kid string) (auth.VerificationKey, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if key, ok := p.cachedKey(kid); ok {
		return auth.NewVerificationKey(key), nil
	}

	if err := p.refresh(ctx); err != nil {
		return auth.VerificationKey{}, err
	}

	key, ok := p.keys[kid]
	if !ok {
		return auth.VerificationKey{}, &auth.KeyNotFoundError{Kid: kid}
	}
	return auth.NewVerificationKey(key), nil
}

func (p *KeyProvider) cachedKey(kid string) (any, bool) {
	if time.Now().After(p.expiresAt) {
		return nil, false
	}
	key, ok := p.keys[kid]
	return key, ok
}

// refresh fetches and parses the key set. Caller holds the lock.
func (p *KeyProvider) refresh(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.jwksURL, nil)
	if err != nil {
		return &auth.KeyProviderUnavailableError{Err: err}
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return &auth.KeyProviderUnavailableError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &auth.KeyProviderUnavailableError{
			Err: &statusError{status: resp.StatusCode},
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &auth.KeyProviderUnavailableError{Err: err}
	}

	jwks, err := keyfunc.NewJSON(body)
	if err != nil {
		return &auth.KeyProviderUnavailableError{Err: err}
	}

	p.keys = jwks.ReadOnlyKeys()
	p.expiresAt = time.Now().Add(cacheTTL(resp.Header.Get("Cache-Control")))
	return nil
}

// cacheTTL extracts max-age from a Cache-Control header, defaulting when
// absent or unparsable.
func cacheTTL(cacheControl string) time.Duration {
	for _, directive := range strings.Split(cacheControl, ",") {
		directive = strings.TrimSpace(directive)
		value, found := strings.CutPrefix(directive, "max-age=")
		if !found {
			continue
		}
		seconds, err := strconv.Atoi(value)
		if err != nil || seconds <= 0 {
			break
		}
		return time.Duration(seconds) * time.Second
	}
	return defaultCacheTTL
}

type statusError struct {
	status int
}

func (e *statusError) Error() string {
	return "jwks endpoint returned status " + strconv.Itoa(e.status)
}
