package main

import (
	"log"
	"os"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/template/html/v2"

	"github.com/sellerinteractive/attio-sync/app/controllers"
	"github.com/sellerinteractive/attio-sync/internal/pkg/attio"
	"github.com/sellerinteractive/attio-sync/internal/pkg/config"
	"github.com/sellerinteractive/attio-sync/internal/pkg/env"
	"github.com/sellerinteractive/attio-sync/internal/pkg/logger"
	"github.com/sellerinteractive/attio-sync/internal/pkg/router"
	"github.com/sellerinteractive/attio-sync/internal/pkg/sync"
	"github.com/sellerinteractive/attio-sync/internal/pkg/zoho"
)

func main() {
	app, cfg := NewApplication()
	log.Fatal(app.Listen(":" + cfg.Server.Port))
}

func NewApplication() (*fiber.App, *config.Config) {
	env.SetupEnvFile()

	cfg := config.Load()
	if env.IsProd() {
		if err := cfg.Validate(); err != nil {
			log.Fatal(err)
		}
	}

	slogger := logger.Setup(cfg.Server.Environment)

	// Find the project root so views and docs resolve from cmd/ too.
	basePath := ""
	for _, path := range []string{"./", "../../", "../../../"} {
		if _, err := os.Stat(path + "views"); !os.IsNotExist(err) {
			basePath = path
			break
		}
	}
	if basePath == "" {
		log.Fatal("could not find project root directory")
	}

	app := fiber.New(fiber.Config{
		Views: html.New(basePath+"views", ".html"),
	})

	app.Use(recover.New(), fiberlogger.New())

	app.Static("/assets", basePath+"public/assets")

	// SWAGGER / OPENAPI
	app.Use(swagger.New(swagger.Config{
		BasePath: "/docs/api/",
		FilePath: basePath + "public/docs/v1/openapi.yml",
		Path:     "v1",
	}))

	attioClient := attio.NewClient(cfg.Attio, slogger)
	tokens := zoho.NewTokenManager(cfg.Zoho, slogger)
	zohoClient := zoho.NewClient(cfg.Zoho, tokens, slogger)
	syncService := sync.NewService(zohoClient, attioClient, slogger)

	httpRouter := router.NewHttpRouter(controllers.NewViewController(attioClient, slogger), slogger)
	apiRouter := router.NewApiRouter(cfg,
		controllers.NewAttioController(attioClient, slogger),
		controllers.NewSyncController(syncService, slogger),
		slogger,
	)
	router.InstallRouter(app, httpRouter, apiRouter)

	slogger.Info("application initialized", "environment", cfg.Server.Environment, "port", cfg.Server.Port)
	return app, cfg
}
