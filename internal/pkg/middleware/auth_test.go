package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthTestApp(accessToken string) *fiber.App {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	app := fiber.New()
	ok := func(c *fiber.Ctx) error { return c.SendString("ok") }

	app.Get("/read", RequireAPIKey(accessToken, log), ReadAccess(), ok)
	app.Post("/write", RequireAPIKey(accessToken, log), WriteAccess(), ok)
	app.Post("/admin", RequireAPIKey(accessToken, log), AdminAccess(), ok)
	return app
}

func TestRequireAPIKey(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{
			name:       "missing header",
			header:     "",
			wantStatus: http.StatusUnauthorized,
			wantBody:   "Authentication required",
		},
		{
			name:       "wrong scheme",
			header:     "Token secret-key",
			wantStatus: http.StatusUnauthorized,
			wantBody:   "Invalid authentication format",
		},
		{
			name:       "wrong key",
			header:     "Bearer not-the-key",
			wantStatus: http.StatusForbidden,
			wantBody:   "Invalid API key",
		},
		{
			name:       "valid key",
			header:     "Bearer secret-key",
			wantStatus: http.StatusOK,
			wantBody:   "ok",
		},
	}

	app := newAuthTestApp("secret-key")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/read", nil)
			if tt.header != "" {
				req.Header.Set(fiber.HeaderAuthorization, tt.header)
			}

			resp, err := app.Test(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			assert.Contains(t, string(body), tt.wantBody)
		})
	}
}

func TestRequireAPIKeyRejectsWhenUnconfigured(t *testing.T) {
	app := newAuthTestApp("")

	req := httptest.NewRequest(http.MethodGet, "/read", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer anything")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	// An empty configured secret must never match, not even an empty token.
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestWriteAccessGranted(t *testing.T) {
	app := newAuthTestApp("secret-key")

	req := httptest.NewRequest(http.MethodPost, "/write", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer secret-key")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAdminAccessAlwaysDenied(t *testing.T) {
	app := newAuthTestApp("secret-key")

	// Even a correctly authenticated caller holds only read and write.
	req := httptest.NewRequest(http.MethodPost, "/admin", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer secret-key")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Insufficient permissions")
}

func TestRequirePermissionWithoutIdentity(t *testing.T) {
	app := fiber.New()
	app.Get("/bare", ReadAccess(), func(c *fiber.Ctx) error { return c.SendString("ok") })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/bare", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
