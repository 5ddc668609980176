package calculator

import (
	"math"
	"testing"

	"github.com/mmynk/billsplitter/internal/models"
)

func approx(got, want float64) bool {
	return math.Abs(got-want) < 1e-9
}

func TestComputeBillTotals(t *testing.T) {
	tests := []struct {
		name        string
		items       []models.Item
		vat         float64
		service     float64
		wantItems   float64
		wantService float64
		wantVAT     float64
		wantTotal   float64
	}{
		{
			name:      "empty bill is all zero",
			vat:       14,
			service:   12,
			wantItems: 0, wantService: 0, wantVAT: 0, wantTotal: 0,
		},
		{
			name:        "VAT is charged on top of service",
			items:       []models.Item{{Price: 100, SharedBy: models.Everyone()}},
			vat:         10,
			service:     10,
			wantItems:   100,
			wantService: 10,
			wantVAT:     11,
			wantTotal:   121,
		},
		{
			name:        "default rates",
			items:       []models.Item{{Price: 60, SharedBy: models.Explicit("a", "b")}},
			vat:         14,
			service:     12,
			wantItems:   60,
			wantService: 7.2,
			wantVAT:     9.408,
			wantTotal:   76.608,
		},
		{
			name: "no surcharges",
			items: []models.Item{
				{Price: 12.5, SharedBy: models.Explicit("a")},
				{Price: 7.5, SharedBy: models.Explicit("b")},
			},
			wantItems: 20,
			wantTotal: 20,
		},
		{
			name:        "service only",
			items:       []models.Item{{Price: 50, SharedBy: models.Everyone()}},
			service:     10,
			wantItems:   50,
			wantService: 5,
			wantTotal:   55,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeBillTotals(tt.items, tt.vat, tt.service)
			if !approx(got.ItemsTotal, tt.wantItems) {
				t.Errorf("ItemsTotal = %v, want %v", got.ItemsTotal, tt.wantItems)
			}
			if !approx(got.ServiceChargeAmount, tt.wantService) {
				t.Errorf("ServiceChargeAmount = %v, want %v", got.ServiceChargeAmount, tt.wantService)
			}
			if !approx(got.VATAmount, tt.wantVAT) {
				t.Errorf("VATAmount = %v, want %v", got.VATAmount, tt.wantVAT)
			}
			if !approx(got.Total, tt.wantTotal) {
				t.Errorf("Total = %v, want %v", got.Total, tt.wantTotal)
			}
			if !approx(got.Total, got.ItemsTotal+got.ServiceChargeAmount+got.VATAmount) {
				t.Errorf("Total %v does not equal the sum of its parts", got.Total)
			}
		})
	}
}

func TestComputeBillTotals_OrderMatters(t *testing.T) {
	items := []models.Item{{Price: 100, SharedBy: models.Everyone()}}
	got := ComputeBillTotals(items, 10, 10)

	// VAT on the raw subtotal alone would give 120.
	if approx(got.Total, 120) {
		t.Fatalf("Total = %v, VAT was applied before service charge", got.Total)
	}
	if !approx(got.Total, 121) {
		t.Errorf("Total = %v, want 121", got.Total)
	}
}

func TestComputePersonShare(t *testing.T) {
	items := []models.Item{
		{ID: "i1", Name: "Pizza", Price: 20, SharedBy: models.Explicit("alice", "bob")},
		{ID: "i2", Name: "Salad", Price: 10, SharedBy: models.Explicit("alice")},
		{ID: "i3", Name: "Water", Price: 9, SharedBy: models.Everyone()},
	}

	tests := []struct {
		name        string
		participant string
		count       int
		vat         float64
		service     float64
		want        float64
	}{
		{name: "explicit and everyone items", participant: "alice", count: 3, want: 10 + 10 + 3},
		{name: "only shared items", participant: "bob", count: 3, want: 10 + 3},
		{name: "only everyone item", participant: "carol", count: 3, want: 3},
		{name: "everyone divisor follows count", participant: "carol", count: 9, want: 1},
		{name: "surcharges scoped to person", participant: "bob", count: 3, vat: 10, service: 10, want: 13 * 1.1 * 1.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputePersonShare(tt.participant, items, tt.vat, tt.service, tt.count)
			if !approx(got, tt.want) {
				t.Errorf("ComputePersonShare(%s) = %v, want %v", tt.participant, got, tt.want)
			}
		})
	}
}

func TestComputePersonShare_NoItems(t *testing.T) {
	items := []models.Item{
		{Price: 40, SharedBy: models.Explicit("alice")},
	}
	if got := ComputePersonShare("bob", items, 14, 12, 2); got != 0 {
		t.Errorf("share for participant without items = %v, want exactly 0", got)
	}
}

func TestComputePersonShare_ZeroParticipantsEveryone(t *testing.T) {
	items := []models.Item{{Price: 40, SharedBy: models.Everyone()}}
	if got := ComputePersonShare("ghost", items, 14, 12, 0); got != 0 {
		t.Errorf("share = %v, want 0 when nobody is in the bill", got)
	}
}

func TestCalculateSplit(t *testing.T) {
	participants := []models.Participant{
		{ID: "a", Name: "Alice"},
		{ID: "b", Name: "Bob"},
	}
	items := []models.Item{
		{ID: "i1", Name: "Platter", Price: 60, SharedBy: models.Explicit("a", "b")},
	}
	settings := models.Settings{VAT: 14, ServiceCharge: 12}

	splits := CalculateSplit(participants, items, settings)
	if len(splits) != 2 {
		t.Fatalf("expected 2 splits, got %d", len(splits))
	}

	var sum float64
	for i, split := range splits {
		if split.ParticipantID != participants[i].ID {
			t.Errorf("split %d participant = %s, want %s", i, split.ParticipantID, participants[i].ID)
		}
		if !approx(split.Subtotal, 30) {
			t.Errorf("%s subtotal = %v, want 30", split.Name, split.Subtotal)
		}
		if !approx(split.ServiceCharge, 3.6) {
			t.Errorf("%s service = %v, want 3.6", split.Name, split.ServiceCharge)
		}
		if !approx(split.VAT, 4.704) {
			t.Errorf("%s VAT = %v, want 4.704", split.Name, split.VAT)
		}
		if !approx(split.Total, 38.304) {
			t.Errorf("%s total = %v, want 38.304", split.Name, split.Total)
		}
		if len(split.Items) != 1 || split.Items[0].ItemID != "i1" || !approx(split.Items[0].Amount, 30) {
			t.Errorf("%s items = %+v, want one 30.00 share of i1", split.Name, split.Items)
		}
		sum += split.Total
	}

	totals := ComputeBillTotals(items, settings.VAT, settings.ServiceCharge)
	if !approx(sum, totals.Total) {
		t.Errorf("sum of person totals = %v, want %v", sum, totals.Total)
	}
	if !approx(totals.Total, 76.608) {
		t.Errorf("bill total = %v, want 76.608", totals.Total)
	}
}

func TestCalculateSplit_ReproducesTotal(t *testing.T) {
	participants := []models.Participant{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	items := []models.Item{
		{ID: "1", Price: 33.33, SharedBy: models.Explicit("a", "b")},
		{ID: "2", Price: 10, SharedBy: models.Everyone()},
		{ID: "3", Price: 7.77, SharedBy: models.Explicit("c")},
		{ID: "4", Price: 0.01, SharedBy: models.Explicit("a", "b", "c")},
	}
	settings := models.Settings{VAT: 14, ServiceCharge: 12}

	var sum float64
	for _, split := range CalculateSplit(participants, items, settings) {
		sum += split.Total
	}
	want := ComputeBillTotals(items, settings.VAT, settings.ServiceCharge).Total
	if math.Abs(sum-want) > 1e-6 {
		t.Errorf("sum of person totals = %v, want %v", sum, want)
	}
}

func TestCalculateSplit_EveryoneTracksParticipantCount(t *testing.T) {
	items := []models.Item{{ID: "water", Price: 12, SharedBy: models.Everyone()}}

	two := CalculateSplit([]models.Participant{{ID: "a"}, {ID: "b"}}, items, models.Settings{})
	if !approx(two[0].Subtotal, 6) {
		t.Fatalf("two-person share = %v, want 6", two[0].Subtotal)
	}

	three := CalculateSplit([]models.Participant{{ID: "a"}, {ID: "b"}, {ID: "c"}}, items, models.Settings{})
	for _, split := range three {
		if !approx(split.Subtotal, 4) {
			t.Errorf("%s share = %v, want 4", split.ParticipantID, split.Subtotal)
		}
	}
}

func TestCalculateSplit_NoParticipants(t *testing.T) {
	splits := CalculateSplit(nil, []models.Item{{Price: 5, SharedBy: models.Everyone()}}, models.Settings{})
	if len(splits) != 0 {
		t.Errorf("expected no splits, got %d", len(splits))
	}
}
