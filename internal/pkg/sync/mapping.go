package sync

import (
	"github.com/sellerinteractive/attio-sync/internal/pkg/attio"
	"github.com/sellerinteractive/attio-sync/internal/pkg/zoho"
)

// MapPlan converts a Zoho plan into the destination record shape.
// Optional upstream fields get documented defaults: currency USD,
// interval "month", status "active", description empty.
func MapPlan(plan zoho.Plan) attio.EntryValues {
	currency := plan.CurrencyCode
	if currency == "" {
		currency = "USD"
	}
	interval := plan.Interval
	if interval == "" {
		interval = "month"
	}
	status := plan.Status
	if status == "" {
		status = "active"
	}

	return attio.EntryValues{
		PlanCode:    plan.PlanCode,
		PlanName:    plan.Name,
		Description: plan.Description,
		Price: attio.Price{
			Amount:   plan.Price,
			Currency: currency,
		},
		Interval:   interval,
		Status:     status,
		ZohoPlanID: plan.PlanID,
	}
}
