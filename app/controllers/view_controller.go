package controllers

import (
	"encoding/json"
	"html/template"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/sellerinteractive/attio-sync/internal/pkg/attio"
	"github.com/sellerinteractive/attio-sync/internal/pkg/markdown"
)

// ViewController renders the client-facing pages. Proposal and quote
// documents are read live from Attio deal records on every request;
// nothing is cached locally.
type ViewController struct {
	client *attio.Client
	log    *slog.Logger
}

func NewViewController(client *attio.Client, log *slog.Logger) *ViewController {
	return &ViewController{client: client, log: log}
}

func (ct *ViewController) ShowHome(c *fiber.Ctx) error {
	return c.Render("home", fiber.Map{
		"Title":   "Welcome",
		"Message": "Welcome to the Attio Integration Portal",
	})
}

// ShowProposal renders a proposal page from a live deal record. A
// markdown service agreement on the record is rendered to HTML.
func (ct *ViewController) ShowProposal(c *fiber.Ctx) error {
	id := c.Params("id")
	ct.log.Info("accessing proposal view", "record_id", id)

	record, err := ct.client.GetRecord(c.UserContext(), "deals", id)
	if err != nil {
		if attio.IsNotFound(err) {
			return c.Status(fiber.StatusNotFound).Render("errors/not-found", fiber.Map{
				"Title":   "Not Found",
				"Message": "Proposal not found",
			})
		}
		ct.log.Error("error fetching proposal record", "record_id", id, "error", err)
		return c.Status(fiber.StatusInternalServerError).Render("errors/error", fiber.Map{
			"Title":   "Error",
			"Message": "Error loading proposal data",
		})
	}

	var agreement template.HTML
	if md := stringField(record, "data", "values", "service_agreement"); md != "" {
		rendered, err := markdown.ToHTML(md)
		if err != nil {
			ct.log.Error("error rendering service agreement", "record_id", id, "error", err)
		} else {
			agreement = template.HTML(rendered)
		}
	}

	return c.Render("proposals/show", fiber.Map{
		"Title":      "Proposal #" + id,
		"ID":         id,
		"RecordJSON": prettyJSON(record),
		"Agreement":  agreement,
	})
}

// ShowQuote renders a quote page from a live deal record.
func (ct *ViewController) ShowQuote(c *fiber.Ctx) error {
	id := c.Params("id")
	ct.log.Info("accessing quote view", "record_id", id)

	record, err := ct.client.GetRecord(c.UserContext(), "deals", id)
	if err != nil {
		if attio.IsNotFound(err) {
			return c.Status(fiber.StatusNotFound).Render("errors/not-found", fiber.Map{
				"Title":   "Not Found",
				"Message": "Quote not found",
			})
		}
		ct.log.Error("error fetching quote record", "record_id", id, "error", err)
		return c.Status(fiber.StatusInternalServerError).Render("errors/error", fiber.Map{
			"Title":   "Error",
			"Message": "Error loading quote data",
		})
	}

	return c.Render("quotes/show", fiber.Map{
		"Title":      "Quote #" + id,
		"ID":         id,
		"RecordJSON": prettyJSON(record),
	})
}

// stringField walks nested maps and returns the string at the given path,
// or "" when any step is missing or not a string.
func stringField(m map[string]any, path ...string) string {
	current := any(m)
	for _, key := range path {
		node, ok := current.(map[string]any)
		if !ok {
			return ""
		}
		current = node[key]
	}
	s, _ := current.(string)
	return s
}

func prettyJSON(v any) string {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return ""
	}
	return string(out)
}
