// Package auth checks the tokens presented by spectators before they are
// allowed to watch a table.
package auth

import (
	"bytes"
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

var (
	// ErrInvalidToken indicates the token is definitively invalid.
	ErrInvalidToken = errors.New("auth: invalid token")

	// ErrUnavailable indicates the auth service is unreachable or unavailable.
	ErrUnavailable = errors.New("auth: unavailable")
)

// Identity is an authenticated viewer.
type Identity struct {
	ViewerID string `json:"viewer_id"`
	Name     string `json:"name"`
}

// Validator validates authentication tokens.
type Validator interface {
	// Validate returns the viewer for token, ErrInvalidToken when the token
	// is rejected, ErrUnavailable when no decision could be made, or
	// (nil, nil) when authentication is disabled.
	Validate(ctx context.Context, token string) (*Identity, error)
}

// TokenFromRequest reads a bearer token, falling back to the "token" query
// parameter since browsers cannot set headers on WebSocket requests.
func TokenFromRequest(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		if token, ok := strings.CutPrefix(h, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}
	return r.URL.Query().Get("token")
}

// StaticValidator accepts a fixed set of tokens.
type StaticValidator struct {
	tokens map[string]string // token to viewer name
}

// NewStaticValidator accepts each token, naming the viewer after its index.
func NewStaticValidator(tokens ...string) *StaticValidator {
	v := &StaticValidator{tokens: make(map[string]string, len(tokens))}
	for i, t := range tokens {
		if t != "" {
			v.tokens[t] = fmt.Sprintf("viewer-%d", i+1)
		}
	}
	return v
}

func (v *StaticValidator) Validate(_ context.Context, token string) (*Identity, error) {
	for t, name := range v.tokens {
		if subtle.ConstantTimeCompare([]byte(t), []byte(token)) == 1 {
			return &Identity{ViewerID: name, Name: name}, nil
		}
	}
	return nil, ErrInvalidToken
}

// HTTPValidator delegates viewer tokens to an external service. The service
// receives {"token": ..., "scope": "spectate"} and grants access with
// {"valid": true, "viewer_id": ...}; 401 and 403 reject the token outright.
type HTTPValidator struct {
	url    string
	secret string
	client *http.Client
}

// httpTimeout bounds one validation callback; a viewer waits on it while
// the WebSocket upgrade is pending.
const httpTimeout = 500 * time.Millisecond

// Scope is sent with every check so one service can guard several surfaces.
const Scope = "spectate"

// NewHTTPValidator checks tokens against url. A non-empty secret is sent in
// the X-Admin-Secret header.
func NewHTTPValidator(url, secret string) *HTTPValidator {
	return &HTTPValidator{url: url, secret: secret, client: &http.Client{Timeout: httpTimeout}}
}

type viewerCheck struct {
	Token string `json:"token"`
	Scope string `json:"scope"`
}

type viewerGrant struct {
	Valid    bool   `json:"valid"`
	ViewerID string `json:"viewer_id,omitempty"`
	Name     string `json:"name,omitempty"`
}

func (v *HTTPValidator) Validate(ctx context.Context, token string) (*Identity, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}
	ctx, cancel := context.WithTimeout(ctx, httpTimeout)
	defer cancel()

	body, err := json.Marshal(viewerCheck{Token: token, Scope: Scope})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("viewer check request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if v.secret != "" {
		req.Header.Set("X-Admin-Secret", v.secret)
	}

	resp, err := v.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, ErrInvalidToken
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: viewer check returned %d", ErrUnavailable, resp.StatusCode)
	}
	return decodeGrant(resp.Body)
}

func decodeGrant(r io.Reader) (*Identity, error) {
	var g viewerGrant
	if err := json.NewDecoder(io.LimitReader(r, 64<<10)).Decode(&g); err != nil {
		return nil, fmt.Errorf("%w: bad viewer grant: %v", ErrUnavailable, err)
	}
	if !g.Valid {
		return nil, ErrInvalidToken
	}
	if g.Name == "" {
		g.Name = g.ViewerID
	}
	return &Identity{ViewerID: g.ViewerID, Name: g.Name}, nil
}

// NoopValidator allows all connections without validation.
type NoopValidator struct{}

func (NoopValidator) Validate(context.Context, string) (*Identity, error) {
	return nil, nil
}
