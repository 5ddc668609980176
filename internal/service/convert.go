package service

import (
	"github.com/mmynk/billsplitter/internal/api"
	"github.com/mmynk/billsplitter/internal/bill"
	"github.com/mmynk/billsplitter/internal/calculator"
	"github.com/mmynk/billsplitter/internal/intake"
	"github.com/mmynk/billsplitter/internal/models"
)

func toAPIBill(id string, b *bill.State) *api.Bill {
	snap := b.Snapshot()
	out := &api.Bill{
		ID:           id,
		Participants: make([]api.Participant, len(snap.Participants)),
		Items:        make([]api.Item, len(snap.Items)),
		Settings:     toAPISettings(snap.Settings),
		Totals:       toAPITotals(b.Totals()),
	}
	for i, p := range snap.Participants {
		out.Participants[i] = toAPIParticipant(p)
	}
	for i, item := range snap.Items {
		out.Items[i] = toAPIItem(item)
	}
	return out
}

func toAPIParticipant(p models.Participant) api.Participant {
	return api.Participant{ID: p.ID, Name: p.Name}
}

func toAPIItem(item models.Item) api.Item {
	return api.Item{
		ID:       item.ID,
		Name:     item.Name,
		Price:    item.Price,
		SharedBy: toAPISharedBy(item.SharedBy),
	}
}

func toAPISharedBy(s models.SharedBy) api.SharedBy {
	if s.IsEveryone() {
		return api.SharedBy{Everyone: true}
	}
	return api.SharedBy{ParticipantIDs: s.IDs()}
}

func toAPISettings(s models.Settings) api.Settings {
	return api.Settings{VAT: s.VAT, ServiceCharge: s.ServiceCharge}
}

func toAPITotals(t calculator.Totals) api.Totals {
	return api.Totals{
		ItemsTotal:    t.ItemsTotal,
		ServiceCharge: t.ServiceChargeAmount,
		VAT:           t.VATAmount,
		Total:         t.Total,
	}
}

func toAPIPersonSplit(p calculator.PersonSplit) api.PersonSplit {
	out := api.PersonSplit{
		ParticipantID: p.ParticipantID,
		Name:          p.Name,
		Subtotal:      p.Subtotal,
		ServiceCharge: p.ServiceCharge,
		VAT:           p.VAT,
		Total:         p.Total,
		Items:         make([]api.PersonItem, len(p.Items)),
	}
	for i, item := range p.Items {
		out.Items[i] = api.PersonItem{ItemID: item.ItemID, Name: item.Name, Amount: item.Amount}
	}
	return out
}

func toAPIReview(r intake.Review) api.Review {
	out := api.Review{
		Phase:      r.Phase.String(),
		Processing: r.Phase == intake.PhaseUploading,
		Candidates: make([]api.Candidate, len(r.Candidates)),
		Cursor:     r.Cursor,
		Confirmed:  r.Confirmed,
		Skipped:    r.Skipped,
	}
	for i, c := range r.Candidates {
		out.Candidates[i] = api.Candidate{Name: c.Name, Price: c.Price}
	}
	if current, ok := r.Current(); ok {
		out.Current = &api.Candidate{Name: current.Name, Price: current.Price}
	}
	return out
}

// fromAPISharedBy converts the wire form. Setting both everyone and explicit
// IDs is ambiguous and rejected.
func fromAPISharedBy(s api.SharedBy) (models.SharedBy, error) {
	if s.Everyone {
		if len(s.ParticipantIDs) > 0 {
			return models.SharedBy{}, errAmbiguousSharers
		}
		return models.Everyone(), nil
	}
	return models.Explicit(s.ParticipantIDs...), nil
}
