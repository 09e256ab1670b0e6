package controllers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/sellerinteractive/attio-sync/internal/pkg/attio"
)

// WebhookEvent is the envelope Attio posts to the webhook endpoint.
type WebhookEvent struct {
	Type string         `json:"type"`
	Data map[string]any `json:"data"`
}

// AttioController handles webhook events and object CRUD passthrough.
type AttioController struct {
	client *attio.Client
	log    *slog.Logger
}

func NewAttioController(client *attio.Client, log *slog.Logger) *AttioController {
	return &AttioController{client: client, log: log}
}

// HandleWebhookEvent dispatches an incoming webhook by event type. The
// per-type processors only log and echo for now; unknown types are
// logged and otherwise ignored, the endpoint still reports success.
func (ct *AttioController) HandleWebhookEvent(c *fiber.Ctx) error {
	var event WebhookEvent
	if err := c.BodyParser(&event); err != nil {
		ct.log.Warn("invalid webhook payload", "error", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid payload"})
	}

	ct.log.Info("received webhook event", "type", event.Type)

	switch event.Type {
	case "object.created":
		ct.processObjectCreated(event.Data)
	case "object.updated":
		ct.processObjectUpdated(event.Data)
	case "object.deleted":
		ct.processObjectDeleted(event.Data)
	default:
		ct.log.Warn("unhandled webhook event type", "type", event.Type)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Webhook processed successfully"})
}

func (ct *AttioController) processObjectCreated(data map[string]any) map[string]any {
	ct.log.Info("processing object created event", "object_id", data["id"])
	return data
}

func (ct *AttioController) processObjectUpdated(data map[string]any) map[string]any {
	ct.log.Info("processing object updated event", "object_id", data["id"])
	return data
}

func (ct *AttioController) processObjectDeleted(data map[string]any) map[string]any {
	ct.log.Info("processing object deleted event", "object_id", data["id"])
	return data
}

// GetObject proxies a single object read. Upstream failures surface as a
// missing object to the API caller.
func (ct *AttioController) GetObject(c *fiber.Ctx) error {
	id := c.Params("id")
	ct.log.Info("getting object", "object_id", id)

	object, err := ct.client.GetObject(c.UserContext(), id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Object not found"})
	}
	return c.Status(fiber.StatusOK).JSON(object)
}

// CreateObject proxies object creation.
func (ct *AttioController) CreateObject(c *fiber.Ctx) error {
	var data map[string]any
	if err := c.BodyParser(&data); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid payload"})
	}

	ct.log.Info("creating new object in attio")
	created, err := ct.client.CreateObject(c.UserContext(), data)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal server error"})
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// UpdateObject proxies object updates.
func (ct *AttioController) UpdateObject(c *fiber.Ctx) error {
	id := c.Params("id")

	var data map[string]any
	if err := c.BodyParser(&data); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid payload"})
	}

	ct.log.Info("updating object", "object_id", id)
	updated, err := ct.client.UpdateObject(c.UserContext(), id, data)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Object not found"})
	}
	return c.Status(fiber.StatusOK).JSON(updated)
}
