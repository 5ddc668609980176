package calculator

import "github.com/mmynk/billsplitter/internal/models"

// Totals is the bill-level breakdown.
type Totals struct {
	ItemsTotal          float64
	ServiceChargeAmount float64
	VATAmount           float64
	Total               float64
}

// PersonItem is one participant's share of one item.
type PersonItem struct {
	ItemID string
	Name   string
	Amount float64
}

// PersonSplit represents the calculated split for one participant.
type PersonSplit struct {
	ParticipantID string
	Name          string
	Subtotal      float64
	ServiceCharge float64
	VAT           float64
	Total         float64
	Items         []PersonItem
}

// ComputeBillTotals sums the items and applies the surcharges.
// Service charge is applied to the item subtotal first, then VAT is applied to
// subtotal plus service charge:
//
//	service = items × serviceRate/100
//	vat     = (items + service) × vatRate/100
//	total   = items + service + vat
//
// Rates are not validated here.
func ComputeBillTotals(items []models.Item, vatRate, serviceRate float64) Totals {
	var itemsTotal float64
	for _, item := range items {
		itemsTotal += item.Price
	}
	service, vat := surcharges(itemsTotal, vatRate, serviceRate)
	return Totals{
		ItemsTotal:          itemsTotal,
		ServiceChargeAmount: service,
		VATAmount:           vat,
		Total:               itemsTotal + service + vat,
	}
}

// ComputePersonShare returns what one participant owes, with service charge and
// VAT computed on that participant's own subtotal.
//
// Each item the participant shares contributes price / sharers, where sharers is
// participantCount for items shared by everyone and the explicit set size otherwise.
func ComputePersonShare(participantID string, items []models.Item, vatRate, serviceRate float64, participantCount int) float64 {
	var subtotal float64
	for _, item := range items {
		if amount, ok := itemShare(participantID, item, participantCount); ok {
			subtotal += amount
		}
	}
	service, vat := surcharges(subtotal, vatRate, serviceRate)
	return subtotal + service + vat
}

// CalculateSplit computes every participant's breakdown, in participant order.
// Participants without items get a zero split.
func CalculateSplit(participants []models.Participant, items []models.Item, settings models.Settings) []PersonSplit {
	splits := make([]PersonSplit, len(participants))
	for i, p := range participants {
		split := PersonSplit{ParticipantID: p.ID, Name: p.Name}
		for _, item := range items {
			amount, ok := itemShare(p.ID, item, len(participants))
			if !ok {
				continue
			}
			split.Subtotal += amount
			split.Items = append(split.Items, PersonItem{
				ItemID: item.ID,
				Name:   item.Name,
				Amount: amount,
			})
		}
		split.ServiceCharge, split.VAT = surcharges(split.Subtotal, settings.VAT, settings.ServiceCharge)
		split.Total = split.Subtotal + split.ServiceCharge + split.VAT
		splits[i] = split
	}
	return splits
}

// itemShare returns the participant's share of one item, if they share it.
func itemShare(participantID string, item models.Item, participantCount int) (float64, bool) {
	if !item.SharedBy.Includes(participantID) {
		return 0, false
	}
	sharers := item.SharedBy.Count(participantCount)
	if sharers == 0 {
		return 0, false
	}
	return item.Price / float64(sharers), true
}

func surcharges(subtotal, vatRate, serviceRate float64) (service, vat float64) {
	service = subtotal * serviceRate / 100
	vat = (subtotal + service) * vatRate / 100
	return service, vat
}
