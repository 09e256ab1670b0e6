// Package sync reconciles Zoho billing plans into the Attio
// "zoho-services" collection.
package sync

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/sellerinteractive/attio-sync/internal/pkg/attio"
	"github.com/sellerinteractive/attio-sync/internal/pkg/zoho"
)

const (
	// ServicesCollectionAPIID is the stable identifier of the destination
	// collection in Attio.
	ServicesCollectionAPIID = "zoho-services"

	servicesCollectionTitle = "Zoho Services"
)

// serviceAttributes is the fixed schema of a service record. Attributes
// are created one by one when the collection is first provisioned.
var serviceAttributes = []attio.AttributeInput{
	{APIID: "plan_code", Title: "Plan Code", DataType: "text", Description: "Unique identifier for the plan in Zoho"},
	{APIID: "plan_name", Title: "Plan Name", DataType: "text", Description: "Name of the service plan"},
	{APIID: "description", Title: "Description", DataType: "text", Description: "Detailed description of the service plan"},
	{APIID: "price", Title: "Price", DataType: "currency", Description: "Price of the service plan"},
	{APIID: "interval", Title: "Billing Interval", DataType: "text", Description: "Frequency of billing (monthly, yearly, etc.)"},
	{APIID: "status", Title: "Status", DataType: "text", Description: "Current status of the plan (active, inactive)"},
	{APIID: "zoho_plan_id", Title: "Zoho Plan ID", DataType: "text", Description: "Internal ID of the plan in Zoho"},
}

// PlanSource yields the full plan list of the billing platform.
type PlanSource interface {
	Plans(ctx context.Context) ([]zoho.Plan, error)
}

// Destination is the slice of the Attio client the synchronizer needs.
type Destination interface {
	GetCollection(ctx context.Context, apiID string) (*attio.Collection, error)
	CreateCollection(ctx context.Context, in attio.CollectionInput) (*attio.Collection, error)
	CreateAttribute(ctx context.Context, collectionAPIID string, in attio.AttributeInput) (*attio.Attribute, error)
	ListEntries(ctx context.Context, collectionAPIID string) ([]attio.Entry, error)
	CreateEntry(ctx context.Context, collectionAPIID string, values attio.EntryValues) (*attio.Entry, error)
	UpdateEntry(ctx context.Context, collectionAPIID, entryID string, values attio.EntryValues) (*attio.Entry, error)
}

// Stats counts the outcome of one synchronization run. Unchanged is
// reserved: update calls are currently issued unconditionally, whether
// skipping identical payloads should count here is an open product
// decision.
type Stats struct {
	Total     int `json:"total"`
	Created   int `json:"created"`
	Updated   int `json:"updated"`
	Unchanged int `json:"unchanged"`
	Failed    int `json:"failed"`
}

// Result is the outcome of Synchronize. Success is false only when the
// run failed before the per-plan loop; per-plan failures are absorbed
// into Stats.Failed.
type Result struct {
	Success bool   `json:"success"`
	Stats   *Stats `json:"stats,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Service synchronizes billing plans into the destination collection.
type Service struct {
	source PlanSource
	dest   Destination
	log    *slog.Logger
}

func NewService(source PlanSource, dest Destination, log *slog.Logger) *Service {
	return &Service{source: source, dest: dest, log: log}
}

// EnsureCollection makes sure the destination collection and its schema
// exist. An existing collection is returned as-is without diffing its
// attributes; if attribute creation fails midway the collection stays
// partially provisioned and a later run will not repair it.
func (s *Service) EnsureCollection(ctx context.Context) (*attio.Collection, error) {
	collection, err := s.dest.GetCollection(ctx, ServicesCollectionAPIID)
	if err == nil {
		s.log.Info("zoho services collection already exists, skipping creation")
		return collection, nil
	}
	if !attio.IsNotFound(err) {
		return nil, fmt.Errorf("failed to set up zoho services collection: %w", err)
	}

	s.log.Info("creating zoho services collection in attio")
	collection, err = s.dest.CreateCollection(ctx, attio.CollectionInput{
		APIID:        ServicesCollectionAPIID,
		SingularNoun: "Service",
		PluralNoun:   "Services",
		Title:        servicesCollectionTitle,
		Description:  "Service plans synchronized from Zoho Subscriptions",
		Icon:         "📝",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to set up zoho services collection: %w", err)
	}

	for _, attr := range serviceAttributes {
		if _, err := s.dest.CreateAttribute(ctx, ServicesCollectionAPIID, attr); err != nil {
			return nil, fmt.Errorf("failed to create service attributes: %w", err)
		}
	}

	s.log.Info("zoho services collection created successfully")
	return collection, nil
}

// Synchronize runs one full reconciliation: ensure the destination
// schema, fetch both sides, then create or update one record per plan,
// keyed by plan code. It never returns an error; all failure is captured
// in the Result.
func (s *Service) Synchronize(ctx context.Context) Result {
	log := s.log.With("run_id", uuid.NewString())
	log.Info("starting synchronization of zoho services to attio")

	if _, err := s.EnsureCollection(ctx); err != nil {
		log.Error("service synchronization failed", "error", err)
		return Result{Success: false, Error: err.Error()}
	}

	plans, err := s.source.Plans(ctx)
	if err != nil {
		log.Error("service synchronization failed", "error", err)
		return Result{Success: false, Error: err.Error()}
	}

	existing, err := s.dest.ListEntries(ctx, ServicesCollectionAPIID)
	if err != nil {
		log.Error("service synchronization failed", "error", err)
		return Result{Success: false, Error: err.Error()}
	}

	// Index existing records by plan code. Duplicates are not expected in
	// the destination; if they occur the last one wins.
	byPlanCode := make(map[string]attio.Entry, len(existing))
	for _, entry := range existing {
		if entry.Values.PlanCode != "" {
			byPlanCode[entry.Values.PlanCode] = entry
		}
	}

	stats := &Stats{Total: len(plans)}
	for _, plan := range plans {
		values := MapPlan(plan)

		if entry, ok := byPlanCode[plan.PlanCode]; ok {
			if _, err := s.dest.UpdateEntry(ctx, ServicesCollectionAPIID, entry.ID, values); err != nil {
				stats.Failed++
				log.Error("failed to sync plan", "plan_code", plan.PlanCode, "error", err)
				continue
			}
			stats.Updated++
			log.Info("updated service", "name", plan.Name, "plan_code", plan.PlanCode)
		} else {
			if _, err := s.dest.CreateEntry(ctx, ServicesCollectionAPIID, values); err != nil {
				stats.Failed++
				log.Error("failed to sync plan", "plan_code", plan.PlanCode, "error", err)
				continue
			}
			stats.Created++
			log.Info("created service", "name", plan.Name, "plan_code", plan.PlanCode)
		}
	}

	log.Info("service synchronization completed",
		"total", stats.Total, "created", stats.Created, "updated", stats.Updated, "failed", stats.Failed)
	return Result{Success: true, Stats: stats}
}
