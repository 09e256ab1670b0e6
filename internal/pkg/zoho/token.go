package zoho

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sellerinteractive/attio-sync/internal/pkg/config"
)

const defaultTokenURL = "https://accounts.zoho.com/oauth/v2/token"

// Upstream access tokens live for 60 minutes; caching for 55 keeps a
// token from expiring mid-flight.
const tokenCacheLifetime = 55 * time.Minute

// ErrTokenUnavailable is the only failure callers of AccessToken see.
// The underlying cause is logged, not surfaced.
var ErrTokenUnavailable = errors.New("failed to obtain zoho access token")

// TokenManager exchanges the long-lived refresh credential for short-lived
// access tokens and caches the result in memory. Instances are independent,
// so tests can construct their own without touching shared state.
//
// The token/expiry cells are read then written without synchronization.
// Two callers racing past an expired token both refresh; the exchange is
// idempotent upstream, so the only cost is a redundant network call.
type TokenManager struct {
	ClientID     string
	ClientSecret string
	RefreshToken string
	TokenURL     string

	HTTPClient *http.Client
	Now        func() time.Time

	log *slog.Logger

	token  string
	expiry time.Time
}

func NewTokenManager(cfg config.ZohoConfig, log *slog.Logger) *TokenManager {
	return &TokenManager{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RefreshToken: cfg.RefreshToken,
		TokenURL:     defaultTokenURL,
		HTTPClient:   &http.Client{Timeout: 15 * time.Second},
		Now:          time.Now,
		log:          log,
	}
}

// AccessToken returns the cached token while it is fresh and performs a
// refresh-token exchange otherwise. It never retries; retrying, if wanted,
// is the caller's business.
func (m *TokenManager) AccessToken(ctx context.Context) (string, error) {
	now := m.Now()
	if m.token != "" && now.Before(m.expiry) {
		return m.token, nil
	}

	params := url.Values{}
	params.Set("refresh_token", m.RefreshToken)
	params.Set("client_id", m.ClientID)
	params.Set("client_secret", m.ClientSecret)
	params.Set("grant_type", "refresh_token")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.TokenURL+"?"+params.Encode(), nil)
	if err != nil {
		m.log.Error("error building zoho token request", "error", err)
		return "", ErrTokenUnavailable
	}
	req.Header.Set("Accept", "application/json")

	resp, err := m.HTTPClient.Do(req)
	if err != nil {
		m.log.Error("error refreshing zoho access token", "error", err)
		return "", ErrTokenUnavailable
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		m.log.Error("zoho token exchange rejected", "status", resp.StatusCode, "body", string(body))
		return "", ErrTokenUnavailable
	}

	var out tokenResponse
	if err := json.Unmarshal(body, &out); err != nil {
		m.log.Error("error decoding zoho token response", "error", err)
		return "", ErrTokenUnavailable
	}
	if strings.TrimSpace(out.AccessToken) == "" {
		m.log.Error("zoho token exchange returned empty access_token")
		return "", ErrTokenUnavailable
	}

	m.token = out.AccessToken
	m.expiry = now.Add(tokenCacheLifetime)
	m.log.Info("new zoho access token generated")
	return m.token, nil
}
