package zoho

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

type staticTokens string

func (s staticTokens) AccessToken(_ context.Context) (string, error) {
	return string(s), nil
}

type failingTokens struct{}

func (failingTokens) AccessToken(_ context.Context) (string, error) {
	return "", ErrTokenUnavailable
}

func TestEndpointURL(t *testing.T) {
	tests := []struct {
		name     string
		client   Client
		endpoint string
		want     string
	}{
		{
			name:     "new domain without scheme",
			client:   Client{DomainURL: "www.zohoapis.com/billing"},
			endpoint: "plans",
			want:     "https://www.zohoapis.com/billing/v1/plans",
		},
		{
			name:     "new domain with scheme kept",
			client:   Client{DomainURL: "https://www.zohoapis.eu/billing/"},
			endpoint: "plans",
			want:     "https://www.zohoapis.eu/billing/v1/plans",
		},
		{
			name:     "empty domain falls back to default",
			client:   Client{},
			endpoint: "addons",
			want:     "https://www.zohoapis.com/billing/v1/addons",
		},
		{
			name:     "legacy base url already versioned",
			client:   Client{UseLegacyDomain: true, BaseURL: "https://subscriptions.zoho.com/api/v1/"},
			endpoint: "plans",
			want:     "https://subscriptions.zoho.com/api/v1/plans",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.client.endpointURL(tt.endpoint); got != tt.want {
				t.Errorf("endpointURL(%q) = %q, want %q", tt.endpoint, got, tt.want)
			}
		})
	}
}

func TestPlansFollowsPagination(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Zoho-oauthtoken tok" {
			t.Errorf("Authorization = %q, want Zoho-oauthtoken tok", got)
		}
		if got := r.URL.Query().Get("organization_id"); got != "org-1" {
			t.Errorf("organization_id = %q, want org-1", got)
		}
		switch r.URL.Query().Get("page") {
		case "1":
			_, _ = w.Write([]byte(`{"plans":[{"plan_code":"P1"},{"plan_code":"P2"}],"page_context":{"has_more_page":true}}`))
		case "2":
			_, _ = w.Write([]byte(`{"plans":[{"plan_code":"P3"}],"page_context":{"has_more_page":false}}`))
		default:
			t.Errorf("unexpected page %q", r.URL.Query().Get("page"))
			http.Error(w, "bad page", http.StatusBadRequest)
		}
	}))
	defer srv.Close()

	c := &Client{
		OrganizationID:  "org-1",
		BaseURL:         srv.URL,
		UseLegacyDomain: true,
		Tokens:          staticTokens("tok"),
		HTTPClient:      srv.Client(),
		log:             slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	plans, err := c.Plans(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(plans) != 3 {
		t.Fatalf("got %d plans, want 3", len(plans))
	}
	if plans[2].PlanCode != "P3" {
		t.Errorf("plans[2].PlanCode = %q, want P3", plans[2].PlanCode)
	}
}

func TestPlansSurfacesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"rate limited"}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := &Client{
		OrganizationID:  "org-1",
		BaseURL:         srv.URL,
		UseLegacyDomain: true,
		Tokens:          staticTokens("tok"),
		HTTPClient:      srv.Client(),
		log:             slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	_, err := c.Plans(context.Background())
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.Status != http.StatusTooManyRequests {
		t.Errorf("Status = %d, want %d", apiErr.Status, http.StatusTooManyRequests)
	}
}

func TestPlansFailsWithoutToken(t *testing.T) {
	c := &Client{
		OrganizationID:  "org-1",
		BaseURL:         "http://127.0.0.1:0",
		UseLegacyDomain: true,
		Tokens:          failingTokens{},
		HTTPClient:      &http.Client{},
		log:             slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	if _, err := c.Plans(context.Background()); !errors.Is(err, ErrTokenUnavailable) {
		t.Fatalf("expected ErrTokenUnavailable, got %v", err)
	}
}
