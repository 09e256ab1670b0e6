package router

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/sellerinteractive/attio-sync/app/controllers"
	"github.com/sellerinteractive/attio-sync/internal/pkg/config"
	"github.com/sellerinteractive/attio-sync/internal/pkg/middleware"
)

// ApiRouter wires the JSON API: webhook receiver, object passthrough and
// the synchronization endpoints.
type ApiRouter struct {
	cfg   *config.Config
	attio *controllers.AttioController
	sync  *controllers.SyncController
	log   *slog.Logger
}

func NewApiRouter(cfg *config.Config, attioCtl *controllers.AttioController, syncCtl *controllers.SyncController, log *slog.Logger) *ApiRouter {
	return &ApiRouter{cfg: cfg, attio: attioCtl, sync: syncCtl, log: log}
}

func (r *ApiRouter) InstallRouter(app *fiber.App) {
	api := app.Group("/api", limiter.New())
	v1 := api.Group("/v1")

	requireKey := middleware.RequireAPIKey(r.cfg.API.AccessToken, r.log)

	attio := v1.Group("/attio")
	attio.Post("/webhook", middleware.ValidateAttioSignature(r.cfg.Attio.WebhookSecret, r.log), r.attio.HandleWebhookEvent)
	attio.Get("/objects/:id", requireKey, middleware.ReadAccess(), r.attio.GetObject)
	attio.Post("/objects", requireKey, middleware.WriteAccess(), r.attio.CreateObject)
	attio.Put("/objects/:id", requireKey, middleware.WriteAccess(), r.attio.UpdateObject)

	sync := v1.Group("/sync")
	// The admin gate rejects the fixed API identity; the trigger stays
	// unreachable until per-caller credentials exist.
	sync.Post("/zoho/services", requireKey, middleware.AdminAccess(), r.sync.SyncZohoServices)
	sync.Get("/zoho/services/status", requireKey, middleware.ReadAccess(), r.sync.GetServicesStatus)
}
