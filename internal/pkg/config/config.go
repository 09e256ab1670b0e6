package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/sellerinteractive/attio-sync/internal/pkg/env"
)

const (
	defaultAttioBaseURL  = "https://api.attio.com/v2"
	defaultZohoBaseURL   = "https://subscriptions.zoho.com/api/v1"
	defaultZohoDomainURL = "www.zohoapis.com/billing"
)

type ServerConfig struct {
	Port        string
	Environment string
}

type APIConfig struct {
	// AccessToken is the single shared bearer secret for API callers.
	AccessToken string `validate:"required"`
}

type AttioConfig struct {
	APIKey        string `validate:"required"`
	BaseURL       string
	WebhookSecret string
}

type ZohoConfig struct {
	ClientID       string `validate:"required"`
	ClientSecret   string `validate:"required"`
	RefreshToken   string `validate:"required"`
	OrganizationID string `validate:"required"`
	WebhookSecret  string

	// BaseURL is the legacy API domain, DomainURL the new one. The legacy
	// domain is deprecated upstream; USE_LEGACY_ZOHO_DOMAIN=true keeps it
	// selected during the transition period.
	BaseURL         string
	DomainURL       string
	UseLegacyDomain bool
}

type Config struct {
	Server ServerConfig
	API    APIConfig
	Attio  AttioConfig
	Zoho   ZohoConfig
}

// Load assembles the configuration from the environment. It never fails;
// Validate enforces required variables where the deployment demands it.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        env.GetEnv("PORT", "3000"),
			Environment: env.GetEnv("NODE_ENV", "development"),
		},
		API: APIConfig{
			AccessToken: env.GetEnv("API_ACCESS_TOKEN", ""),
		},
		Attio: AttioConfig{
			APIKey:        env.GetEnv("ATTIO_API_KEY", ""),
			BaseURL:       env.GetEnv("ATTIO_API_URL", defaultAttioBaseURL),
			WebhookSecret: env.GetEnv("ATTIO_WEBHOOK_SECRET", ""),
		},
		Zoho: ZohoConfig{
			ClientID:        env.GetEnv("ZOHO_CLIENT_ID", ""),
			ClientSecret:    env.GetEnv("ZOHO_CLIENT_SECRET", ""),
			RefreshToken:    env.GetEnv("ZOHO_REFRESH_TOKEN", ""),
			OrganizationID:  env.GetEnv("ZOHO_ORGANIZATION_ID", ""),
			WebhookSecret:   env.GetEnv("ZOHO_WEBHOOK_SECRET", ""),
			BaseURL:         env.GetEnv("ZOHO_API_URL", defaultZohoBaseURL),
			DomainURL:       env.GetEnv("ZOHO_DOMAIN_URL", defaultZohoDomainURL),
			UseLegacyDomain: env.GetEnv("USE_LEGACY_ZOHO_DOMAIN", "") == "true",
		},
	}
}

// envNames maps validated struct fields back to the environment variables
// an operator has to set.
var envNames = map[string]string{
	"Config.API.AccessToken":     "API_ACCESS_TOKEN",
	"Config.Attio.APIKey":        "ATTIO_API_KEY",
	"Config.Zoho.ClientID":       "ZOHO_CLIENT_ID",
	"Config.Zoho.ClientSecret":   "ZOHO_CLIENT_SECRET",
	"Config.Zoho.RefreshToken":   "ZOHO_REFRESH_TOKEN",
	"Config.Zoho.OrganizationID": "ZOHO_ORGANIZATION_ID",
}

// Validate checks that every required variable is present. Callers only
// invoke it in production so development works with a partial environment.
func (c *Config) Validate() error {
	err := validator.New().Struct(c)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	missing := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if name, ok := envNames[fe.Namespace()]; ok {
			missing = append(missing, name)
		} else {
			missing = append(missing, fe.Namespace())
		}
	}
	return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
}
