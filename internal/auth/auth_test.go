package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestHTTPValidator_ValidToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req viewerCheck
		json.NewDecoder(r.Body).Decode(&req)

		if req.Token == "valid-token" && req.Scope == Scope {
			json.NewEncoder(w).Encode(viewerGrant{Valid: true, ViewerID: "v-123", Name: "coach"})
		} else {
			json.NewEncoder(w).Encode(viewerGrant{Valid: false})
		}
	}))
	defer server.Close()

	validator := NewHTTPValidator(server.URL, "")

	identity, err := validator.Validate(context.Background(), "valid-token")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if identity.ViewerID != "v-123" {
		t.Errorf("expected v-123, got %s", identity.ViewerID)
	}
	if identity.Name != "coach" {
		t.Errorf("expected coach, got %s", identity.Name)
	}

	if _, err := validator.Validate(context.Background(), "other"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestHTTPValidator_EmptyToken(t *testing.T) {
	validator := NewHTTPValidator("http://127.0.0.1:1", "")
	if _, err := validator.Validate(context.Background(), ""); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestHTTPValidator_StatusCodes(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusUnauthorized, ErrInvalidToken},
		{http.StatusForbidden, ErrInvalidToken},
		{http.StatusServiceUnavailable, ErrUnavailable},
		{http.StatusTeapot, ErrUnavailable},
	}
	for _, tt := range tests {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
		}))
		_, err := NewHTTPValidator(server.URL, "").Validate(context.Background(), "token")
		server.Close()
		if !errors.Is(err, tt.want) {
			t.Errorf("status %d: expected %v, got %v", tt.status, tt.want, err)
		}
	}
}

func TestHTTPValidator_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(2 * httpTimeout)
	}))
	defer server.Close()

	_, err := NewHTTPValidator(server.URL, "").Validate(context.Background(), "token")
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
}

func TestHTTPValidator_AdminSecret(t *testing.T) {
	var got string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("X-Admin-Secret")
		json.NewEncoder(w).Encode(viewerGrant{Valid: true, ViewerID: "v-7"})
	}))
	defer server.Close()

	identity, err := NewHTTPValidator(server.URL, "s3cret").Validate(context.Background(), "token")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got != "s3cret" {
		t.Errorf("expected admin secret header, got %q", got)
	}
	if identity.Name != "v-7" {
		t.Errorf("expected name to default to the viewer id, got %q", identity.Name)
	}
}

func TestStaticValidator(t *testing.T) {
	v := NewStaticValidator("alpha", "", "beta")

	id, err := v.Validate(context.Background(), "beta")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if id.Name != "viewer-3" {
		t.Errorf("expected viewer-3, got %s", id.Name)
	}
	if _, err := v.Validate(context.Background(), ""); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for empty token, got %v", err)
	}
}

func TestNoopValidator(t *testing.T) {
	id, err := NoopValidator{}.Validate(context.Background(), "")
	if id != nil || err != nil {
		t.Errorf("expected (nil, nil), got (%v, %v)", id, err)
	}
}

func TestTokenFromRequest(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/ws?token=query", nil)
	if got := TokenFromRequest(r); got != "query" {
		t.Errorf("expected query token, got %q", got)
	}
	r.Header.Set("Authorization", "Bearer header")
	if got := TokenFromRequest(r); got != "header" {
		t.Errorf("expected header token, got %q", got)
	}
}
