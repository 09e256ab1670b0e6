package router

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/sellerinteractive/attio-sync/app/controllers"
	"github.com/sellerinteractive/attio-sync/internal/pkg/middleware"
)

// HttpRouter wires the public routes: home, health and the token-gated
// client-facing document views.
type HttpRouter struct {
	views *controllers.ViewController
	log   *slog.Logger
}

func NewHttpRouter(views *controllers.ViewController, log *slog.Logger) *HttpRouter {
	return &HttpRouter{views: views, log: log}
}

func (r *HttpRouter) InstallRouter(app *fiber.App) {
	app.Get("/", r.views.ShowHome)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "OK"})
	})

	viewToken := middleware.RequireViewToken(r.log)
	app.Get("/proposals/:id", viewToken, r.views.ShowProposal)
	app.Get("/quotes/:id", viewToken, r.views.ShowQuote)
}
