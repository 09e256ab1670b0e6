package sync

import (
	"testing"

	"github.com/sellerinteractive/attio-sync/internal/pkg/attio"
	"github.com/sellerinteractive/attio-sync/internal/pkg/zoho"
)

func TestMapPlan(t *testing.T) {
	tests := []struct {
		name string
		plan zoho.Plan
		want attio.EntryValues
	}{
		{
			name: "fully populated plan",
			plan: zoho.Plan{
				PlanCode:     "P1",
				Name:         "Pro",
				Price:        99,
				CurrencyCode: "USD",
				Interval:     "month",
				Status:       "active",
				PlanID:       "999",
			},
			want: attio.EntryValues{
				PlanCode:   "P1",
				PlanName:   "Pro",
				Price:      attio.Price{Amount: 99, Currency: "USD"},
				Interval:   "month",
				Status:     "active",
				ZohoPlanID: "999",
			},
		},
		{
			name: "missing optional fields get defaults",
			plan: zoho.Plan{PlanCode: "P2", Name: "Bare", Price: 5, PlanID: "1000"},
			want: attio.EntryValues{
				PlanCode:   "P2",
				PlanName:   "Bare",
				Price:      attio.Price{Amount: 5, Currency: "USD"},
				Interval:   "month",
				Status:     "active",
				ZohoPlanID: "1000",
			},
		},
		{
			name: "non-default currency preserved",
			plan: zoho.Plan{PlanCode: "P3", Name: "EU", Price: 49.5, CurrencyCode: "EUR", Interval: "year", Status: "inactive"},
			want: attio.EntryValues{
				PlanCode: "P3",
				PlanName: "EU",
				Price:    attio.Price{Amount: 49.5, Currency: "EUR"},
				Interval: "year",
				Status:   "inactive",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MapPlan(tt.plan); got != tt.want {
				t.Errorf("MapPlan() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
