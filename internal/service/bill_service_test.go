package service

import (
	"context"
	"strings"
	"testing"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/mmynk/billsplitter/internal/api"
	"github.com/mmynk/billsplitter/internal/bill"
)

func TestStartBill_Defaults(t *testing.T) {
	env := setupTestServer(t)

	resp, err := env.bills.StartBill(context.Background(), connect.NewRequest(&api.StartBillRequest{}))
	if err != nil {
		t.Fatalf("StartBill failed: %v", err)
	}
	b := resp.Msg.Bill
	if b.ID == "" {
		t.Error("expected a bill ID")
	}
	if b.Settings.VAT != 14 || b.Settings.ServiceCharge != 12 {
		t.Errorf("settings = %+v, want 14/12", b.Settings)
	}
	if len(b.Participants) != 0 || len(b.Items) != 0 {
		t.Errorf("new bill should be empty: %+v", b)
	}
	if got := testutil.ToFloat64(env.metrics.ActiveSessions); got != 1 {
		t.Errorf("active sessions = %v, want 1", got)
	}
}

func TestBillService_EndToEnd(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()
	billID, people := env.startBill(t, "A", "B", "C")
	a, b := people[0], people[1]

	added, err := env.bills.AddItem(ctx, connect.NewRequest(&api.AddItemRequest{
		BillID:   billID,
		Name:     "Platter",
		Price:    60,
		SharedBy: api.SharedBy{ParticipantIDs: []string{a.ID, b.ID}},
	}))
	if err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	if !approx(added.Msg.Bill.Totals.Total, 76.608) {
		t.Errorf("total = %v, want 76.608", added.Msg.Bill.Totals.Total)
	}

	sum, err := env.bills.GetSummary(ctx, connect.NewRequest(&api.GetSummaryRequest{BillID: billID}))
	if err != nil {
		t.Fatalf("GetSummary failed: %v", err)
	}
	want := map[string]float64{"A": 38.304, "B": 38.304, "C": 0}
	for _, p := range sum.Msg.People {
		if !approx(p.Total, want[p.Name]) {
			t.Errorf("%s total = %v, want %v", p.Name, p.Total, want[p.Name])
		}
	}
	if !approx(sum.Msg.Allocated, 76.608) || !approx(sum.Msg.RoundingDiff, 0) {
		t.Errorf("allocated = %v, diff = %v", sum.Msg.Allocated, sum.Msg.RoundingDiff)
	}
	if !strings.Contains(sum.Msg.Text, "Platter") {
		t.Errorf("rendered summary should list items:\n%s", sum.Msg.Text)
	}
	if got := testutil.ToFloat64(env.metrics.ItemsAdded.WithLabelValues("manual")); got != 1 {
		t.Errorf("items_added_total{manual} = %v, want 1", got)
	}
}

func TestSummary_Locale(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()
	billID, _ := env.startBill(t, "A")

	_, err := env.bills.AddItem(ctx, connect.NewRequest(&api.AddItemRequest{
		BillID: billID, Name: "Soup", Price: 10.5, SharedBy: api.SharedBy{Everyone: true},
	}))
	if err != nil {
		t.Fatal(err)
	}

	de, err := env.bills.GetSummary(ctx, connect.NewRequest(&api.GetSummaryRequest{BillID: billID, Locale: "de"}))
	if err != nil {
		t.Fatalf("GetSummary(de) failed: %v", err)
	}
	if !strings.Contains(de.Msg.Text, "10,50") {
		t.Errorf("German summary should use a decimal comma:\n%s", de.Msg.Text)
	}

	_, err = env.bills.GetSummary(ctx, connect.NewRequest(&api.GetSummaryRequest{BillID: billID, Locale: "not a tag!"}))
	assertCode(t, err, connect.CodeInvalidArgument)
}

func TestGetSummary_EmptyBill(t *testing.T) {
	env := setupTestServer(t)
	billID, _ := env.startBill(t, "A")

	_, err := env.bills.GetSummary(context.Background(), connect.NewRequest(&api.GetSummaryRequest{BillID: billID}))
	assertCode(t, err, connect.CodeFailedPrecondition)
}

func TestRemoveParticipant_Cascade(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()
	billID, people := env.startBill(t, "A", "B")
	a, b := people[0], people[1]

	addItem := func(name string, sharedBy api.SharedBy) string {
		t.Helper()
		resp, err := env.bills.AddItem(ctx, connect.NewRequest(&api.AddItemRequest{
			BillID: billID, Name: name, Price: 10, SharedBy: sharedBy,
		}))
		if err != nil {
			t.Fatalf("AddItem(%s) failed: %v", name, err)
		}
		return resp.Msg.Item.ID
	}
	onlyA := addItem("Steak", api.SharedBy{ParticipantIDs: []string{a.ID}})
	addItem("Wine", api.SharedBy{ParticipantIDs: []string{a.ID, b.ID}})
	addItem("Bread", api.SharedBy{Everyone: true})

	resp, err := env.bills.RemoveParticipant(ctx, connect.NewRequest(&api.RemoveParticipantRequest{
		BillID: billID, ParticipantID: a.ID,
	}))
	if err != nil {
		t.Fatalf("RemoveParticipant failed: %v", err)
	}
	if len(resp.Msg.RemovedItemIDs) != 1 || resp.Msg.RemovedItemIDs[0] != onlyA {
		t.Errorf("removed items = %v, want [%s]", resp.Msg.RemovedItemIDs, onlyA)
	}
	items := resp.Msg.Bill.Items
	if len(items) != 2 {
		t.Fatalf("items = %+v, want Wine and Bread", items)
	}
	if ids := items[0].SharedBy.ParticipantIDs; len(ids) != 1 || ids[0] != b.ID {
		t.Errorf("Wine shared by %v, want only B", ids)
	}
	if !items[1].SharedBy.Everyone {
		t.Error("Bread should still be shared by everyone")
	}

	_, err = env.bills.RemoveParticipant(ctx, connect.NewRequest(&api.RemoveParticipantRequest{
		BillID: billID, ParticipantID: a.ID,
	}))
	assertCode(t, err, connect.CodeNotFound)
}

func TestAddItem_Validation(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()
	billID, people := env.startBill(t, "A")

	tests := []struct {
		name     string
		price    float64
		sharedBy api.SharedBy
	}{
		{"zero price", 0, api.SharedBy{Everyone: true}},
		{"negative price", -5, api.SharedBy{Everyone: true}},
		{"no sharers", 5, api.SharedBy{}},
		{"unknown sharer", 5, api.SharedBy{ParticipantIDs: []string{"ghost"}}},
		{"ambiguous sharers", 5, api.SharedBy{Everyone: true, ParticipantIDs: []string{people[0].ID}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.bills.AddItem(ctx, connect.NewRequest(&api.AddItemRequest{
				BillID: billID, Name: "Thing", Price: tt.price, SharedBy: tt.sharedBy,
			}))
			assertCode(t, err, connect.CodeInvalidArgument)
		})
	}

	got, err := env.bills.GetBill(ctx, connect.NewRequest(&api.GetBillRequest{BillID: billID}))
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Msg.Bill.Items) != 0 {
		t.Errorf("rejected items must not be added: %+v", got.Msg.Bill.Items)
	}
}

func TestUpdateAndRemoveItem(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()
	billID, people := env.startBill(t, "A", "B")

	added, err := env.bills.AddItem(ctx, connect.NewRequest(&api.AddItemRequest{
		BillID: billID, Name: "Tea", Price: 3, SharedBy: api.SharedBy{Everyone: true},
	}))
	if err != nil {
		t.Fatal(err)
	}
	itemID := added.Msg.Item.ID

	updated, err := env.bills.UpdateItem(ctx, connect.NewRequest(&api.UpdateItemRequest{
		BillID: billID, ItemID: itemID, Name: "Green tea", Price: 4,
		SharedBy: api.SharedBy{ParticipantIDs: []string{people[1].ID}},
	}))
	if err != nil {
		t.Fatalf("UpdateItem failed: %v", err)
	}
	if updated.Msg.Item.ID != itemID || updated.Msg.Item.Name != "Green tea" || updated.Msg.Item.Price != 4 {
		t.Errorf("updated item = %+v", updated.Msg.Item)
	}

	_, err = env.bills.UpdateItem(ctx, connect.NewRequest(&api.UpdateItemRequest{
		BillID: billID, ItemID: "missing", Name: "x", Price: 1, SharedBy: api.SharedBy{Everyone: true},
	}))
	assertCode(t, err, connect.CodeNotFound)

	removed, err := env.bills.RemoveItem(ctx, connect.NewRequest(&api.RemoveItemRequest{BillID: billID, ItemID: itemID}))
	if err != nil {
		t.Fatalf("RemoveItem failed: %v", err)
	}
	if !removed.Msg.Removed || len(removed.Msg.Bill.Items) != 0 {
		t.Errorf("remove response = %+v", removed.Msg)
	}

	again, err := env.bills.RemoveItem(ctx, connect.NewRequest(&api.RemoveItemRequest{BillID: billID, ItemID: itemID}))
	if err != nil {
		t.Fatalf("second RemoveItem should succeed: %v", err)
	}
	if again.Msg.Removed {
		t.Error("second RemoveItem should report nothing removed")
	}
}

func TestUpdateSettings_AndReset(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()
	billID, _ := env.startBill(t, "A")

	_, err := env.bills.AddItem(ctx, connect.NewRequest(&api.AddItemRequest{
		BillID: billID, Name: "Main", Price: 100, SharedBy: api.SharedBy{Everyone: true},
	}))
	if err != nil {
		t.Fatal(err)
	}

	resp, err := env.bills.UpdateSettings(ctx, connect.NewRequest(&api.UpdateSettingsRequest{
		BillID: billID, VAT: 10, ServiceCharge: 10,
	}))
	if err != nil {
		t.Fatalf("UpdateSettings failed: %v", err)
	}
	if !approx(resp.Msg.Bill.Totals.Total, 121) {
		t.Errorf("total = %v, want 121 (VAT on top of service)", resp.Msg.Bill.Totals.Total)
	}

	resp, err = env.bills.UpdateSettings(ctx, connect.NewRequest(&api.UpdateSettingsRequest{
		BillID: billID, VAT: -3, ServiceCharge: 5,
	}))
	if err != nil {
		t.Fatalf("UpdateSettings failed: %v", err)
	}
	if resp.Msg.Bill.Settings.VAT != 0 || resp.Msg.Bill.Settings.ServiceCharge != 5 {
		t.Errorf("settings = %+v, want negative VAT stored as 0", resp.Msg.Bill.Settings)
	}

	reset, err := env.bills.ResetBill(ctx, connect.NewRequest(&api.ResetBillRequest{BillID: billID}))
	if err != nil {
		t.Fatalf("ResetBill failed: %v", err)
	}
	b := reset.Msg.Bill
	if len(b.Participants) != 0 || len(b.Items) != 0 {
		t.Errorf("reset bill not empty: %+v", b)
	}
	if b.Settings.VAT != 14 || b.Settings.ServiceCharge != 12 {
		t.Errorf("reset settings = %+v, want 14/12", b.Settings)
	}
	if b.ID != billID {
		t.Error("reset should keep the bill ID")
	}
}

func TestAddParticipant_DuplicatePolicy(t *testing.T) {
	t.Run("allowed by default", func(t *testing.T) {
		env := setupTestServer(t)
		_, people := env.startBill(t, "Sam", "Sam")
		if people[0].ID == people[1].ID {
			t.Error("duplicate names must still get distinct IDs")
		}
	})

	t.Run("rejected when configured", func(t *testing.T) {
		env := setupTestServer(t, func(o *testOptions) {
			o.bill.DuplicateNames = bill.DuplicateNamesReject
		})
		billID, _ := env.startBill(t, "Sam")
		_, err := env.bills.AddParticipant(context.Background(), connect.NewRequest(&api.AddParticipantRequest{
			BillID: billID, Name: " Sam ",
		}))
		assertCode(t, err, connect.CodeInvalidArgument)
	})

	t.Run("blank name", func(t *testing.T) {
		env := setupTestServer(t)
		billID, _ := env.startBill(t)
		_, err := env.bills.AddParticipant(context.Background(), connect.NewRequest(&api.AddParticipantRequest{
			BillID: billID, Name: "   ",
		}))
		assertCode(t, err, connect.CodeInvalidArgument)
	})
}

func TestUnknownBill(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()

	_, err := env.bills.GetBill(ctx, connect.NewRequest(&api.GetBillRequest{BillID: "does-not-exist"}))
	assertCode(t, err, connect.CodeNotFound)

	_, err = env.bills.GetBill(ctx, connect.NewRequest(&api.GetBillRequest{}))
	assertCode(t, err, connect.CodeInvalidArgument)
}

func TestRPCMetrics(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()

	if _, err := env.bills.StartBill(ctx, connect.NewRequest(&api.StartBillRequest{})); err != nil {
		t.Fatal(err)
	}
	_, _ = env.bills.GetBill(ctx, connect.NewRequest(&api.GetBillRequest{BillID: "missing"}))

	ok := env.metrics.RPCRequests.WithLabelValues(api.BillServiceStartBillProcedure, "ok")
	if got := testutil.ToFloat64(ok); got != 1 {
		t.Errorf("StartBill ok count = %v, want 1", got)
	}
	notFound := env.metrics.RPCRequests.WithLabelValues(api.BillServiceGetBillProcedure, connect.CodeNotFound.String())
	if got := testutil.ToFloat64(notFound); got != 1 {
		t.Errorf("GetBill not_found count = %v, want 1", got)
	}
}
