package controllers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/sellerinteractive/attio-sync/internal/pkg/sync"
)

// SyncController exposes the plan synchronization trigger and the
// destination collection status.
type SyncController struct {
	svc *sync.Service
	log *slog.Logger
}

func NewSyncController(svc *sync.Service, log *slog.Logger) *SyncController {
	return &SyncController{svc: svc, log: log}
}

// SyncZohoServices runs one full synchronization. Per-plan failures are
// reported inside the stats; only a failure before the plan loop turns
// the whole call into a 500.
func (ct *SyncController) SyncZohoServices(c *fiber.Ctx) error {
	ct.log.Info("received request to synchronize zoho services to attio")

	result := ct.svc.Synchronize(c.UserContext())
	if !result.Success {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Synchronization failed",
			"error":   result.Error,
		})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Synchronization completed successfully",
		"stats":   result.Stats,
	})
}

// GetServicesStatus ensures the destination collection exists and
// reports it.
func (ct *SyncController) GetServicesStatus(c *fiber.Ctx) error {
	ct.log.Info("received request to check zoho services collection status")

	collection, err := ct.svc.EnsureCollection(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to get services collection status",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":    "Services collection status retrieved",
		"collection": collection,
	})
}
