package zoho

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestTokenManager(t *testing.T, url string) *TokenManager {
	t.Helper()
	return &TokenManager{
		ClientID:     "client",
		ClientSecret: "secret",
		RefreshToken: "refresh",
		TokenURL:     url,
		HTTPClient:   &http.Client{},
		Now:          time.Now,
		log:          slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestAccessTokenCachesWithinWindow(t *testing.T) {
	exchanges := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		exchanges++
		if got := r.URL.Query().Get("grant_type"); got != "refresh_token" {
			t.Errorf("grant_type = %q, want refresh_token", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"tok-1","expires_in":3600,"token_type":"Bearer"}`))
	}))
	defer srv.Close()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tm := newTestTokenManager(t, srv.URL)
	tm.Now = func() time.Time { return now }

	for i := 0; i < 2; i++ {
		token, err := tm.AccessToken(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if token != "tok-1" {
			t.Fatalf("token = %q, want tok-1", token)
		}
	}
	if exchanges != 1 {
		t.Fatalf("expected exactly one exchange within the cache window, got %d", exchanges)
	}

	// 55 minutes later the cached token counts as expired.
	now = now.Add(55 * time.Minute)
	if _, err := tm.AccessToken(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if exchanges != 2 {
		t.Fatalf("expected a second exchange after expiry, got %d", exchanges)
	}
}

func TestAccessTokenFailureIsOpaque(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"invalid_client"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	tm := newTestTokenManager(t, srv.URL)
	if _, err := tm.AccessToken(context.Background()); !errors.Is(err, ErrTokenUnavailable) {
		t.Fatalf("expected ErrTokenUnavailable, got %v", err)
	}
}

func TestAccessTokenRejectsEmptyToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"access_token":"","expires_in":3600}`))
	}))
	defer srv.Close()

	tm := newTestTokenManager(t, srv.URL)
	if _, err := tm.AccessToken(context.Background()); !errors.Is(err, ErrTokenUnavailable) {
		t.Fatalf("expected ErrTokenUnavailable, got %v", err)
	}
}
