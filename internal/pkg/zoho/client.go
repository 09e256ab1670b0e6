package zoho

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sellerinteractive/attio-sync/internal/pkg/config"
)

const plansPageSize = 200

// APIError is a non-2xx answer from the Zoho API with the upstream status
// and body preserved.
type APIError struct {
	Status int
	Body   []byte
}

func (e *APIError) Error() string {
	return fmt.Sprintf("zoho api error: status=%d body=%s", e.Status, string(e.Body))
}

// TokenSource yields a valid bearer credential for the billing API.
type TokenSource interface {
	AccessToken(ctx context.Context) (string, error)
}

// Client wraps the Zoho Billing REST API. Every request fetches a fresh
// access token from the token source and scopes the call to the
// configured organization.
type Client struct {
	OrganizationID  string
	BaseURL         string
	DomainURL       string
	UseLegacyDomain bool

	Tokens     TokenSource
	HTTPClient *http.Client

	log *slog.Logger
}

func NewClient(cfg config.ZohoConfig, tokens TokenSource, log *slog.Logger) *Client {
	return &Client{
		OrganizationID:  cfg.OrganizationID,
		BaseURL:         cfg.BaseURL,
		DomainURL:       cfg.DomainURL,
		UseLegacyDomain: cfg.UseLegacyDomain,
		Tokens:          tokens,
		HTTPClient:      &http.Client{Timeout: 30 * time.Second},
		log:             log,
	}
}

// endpointURL resolves an endpoint against the configured API domain. The
// new domain carries the version segment in the path, the legacy base URL
// already includes it.
func (c *Client) endpointURL(endpoint string) string {
	if c.UseLegacyDomain {
		return strings.TrimRight(c.BaseURL, "/") + "/" + endpoint
	}
	domain := c.DomainURL
	if domain == "" {
		domain = "www.zohoapis.com/billing"
	}
	if !strings.HasPrefix(domain, "http://") && !strings.HasPrefix(domain, "https://") {
		domain = "https://" + domain
	}
	return strings.TrimRight(domain, "/") + "/v1/" + endpoint
}

func (c *Client) do(ctx context.Context, method, endpoint string, query url.Values, body, out any) error {
	if query == nil {
		query = url.Values{}
	}
	query.Set("organization_id", c.OrganizationID)

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			c.log.Error("zoho api error", "error", err)
			return err
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpointURL(endpoint)+"?"+query.Encode(), reader)
	if err != nil {
		c.log.Error("zoho api error", "error", err)
		return err
	}

	token, err := c.Tokens.AccessToken(ctx)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Zoho-oauthtoken "+token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.log.Error("zoho api error: no response received", "error", err)
		return err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode, Body: respBody}
		c.log.Error("zoho api error", "status", resp.StatusCode, "body", string(respBody))
		return apiErr
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			c.log.Error("error decoding zoho response", "error", err)
			return err
		}
	}
	return nil
}

// Plans fetches every plan of the organization, following the upstream
// page cursor until exhausted.
func (c *Client) Plans(ctx context.Context) ([]Plan, error) {
	var all []Plan
	for page := 1; ; page++ {
		query := url.Values{}
		query.Set("page", strconv.Itoa(page))
		query.Set("per_page", strconv.Itoa(plansPageSize))

		var out plansResponse
		if err := c.do(ctx, http.MethodGet, "plans", query, nil, &out); err != nil {
			return nil, fmt.Errorf("failed to fetch plans from zoho: %w", err)
		}
		all = append(all, out.Plans...)
		if !out.PageContext.HasMorePage {
			break
		}
	}
	c.log.Info("retrieved plans from zoho", "count", len(all))
	return all, nil
}

// PlanDetails fetches a single plan by its plan code.
func (c *Client) PlanDetails(ctx context.Context, planCode string) (*Plan, error) {
	var out planResponse
	if err := c.do(ctx, http.MethodGet, "plans/"+url.PathEscape(planCode), nil, nil, &out); err != nil {
		return nil, fmt.Errorf("failed to fetch details for plan %s: %w", planCode, err)
	}
	c.log.Info("retrieved plan details", "plan_code", planCode)
	return &out.Plan, nil
}

// Addons fetches the addons that can be attached to plans.
func (c *Client) Addons(ctx context.Context) ([]Addon, error) {
	var all []Addon
	for page := 1; ; page++ {
		query := url.Values{}
		query.Set("page", strconv.Itoa(page))
		query.Set("per_page", strconv.Itoa(plansPageSize))

		var out addonsResponse
		if err := c.do(ctx, http.MethodGet, "addons", query, nil, &out); err != nil {
			return nil, fmt.Errorf("failed to fetch addons from zoho: %w", err)
		}
		all = append(all, out.Addons...)
		if !out.PageContext.HasMorePage {
			break
		}
	}
	c.log.Info("retrieved addons from zoho", "count", len(all))
	return all, nil
}

// CreateCustomer creates a customer in Zoho Billing.
func (c *Client) CreateCustomer(ctx context.Context, in CustomerInput) (*Customer, error) {
	payload := struct {
		Customer CustomerInput `json:"customer"`
	}{Customer: in}

	var out customerResponse
	if err := c.do(ctx, http.MethodPost, "customers", nil, payload, &out); err != nil {
		return nil, fmt.Errorf("failed to create customer in zoho: %w", err)
	}
	c.log.Info("customer created in zoho", "customer_id", out.Customer.CustomerID)
	return &out.Customer, nil
}

// CreateSubscription subscribes a customer to a plan.
func (c *Client) CreateSubscription(ctx context.Context, in SubscriptionInput) (*Subscription, error) {
	payload := struct {
		Subscription SubscriptionInput `json:"subscription"`
	}{Subscription: in}

	var out subscriptionResponse
	if err := c.do(ctx, http.MethodPost, "subscriptions", nil, payload, &out); err != nil {
		return nil, fmt.Errorf("failed to create subscription in zoho: %w", err)
	}
	c.log.Info("subscription created in zoho", "subscription_id", out.Subscription.SubscriptionID)
	return &out.Subscription, nil
}
