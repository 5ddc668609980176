// Package summary builds the read-only breakdowns shown at the end of a bill.
package summary

import (
	"errors"

	"github.com/mmynk/billsplitter/internal/bill"
	"github.com/mmynk/billsplitter/internal/calculator"
)

// ErrNothingToSummarize is returned for a bill without participants or items.
var ErrNothingToSummarize = errors.New("add participants and items before viewing the summary")

// PersonLine is one row of the overview.
type PersonLine struct {
	ParticipantID string
	Name          string
	Amount        float64
}

// Overview is the whole-bill view.
type Overview struct {
	Totals      calculator.Totals
	VATRate     float64
	ServiceRate float64
	People      []PersonLine

	// Allocated is the sum of everyone's totals; RoundingDiff is what is left
	// of the bill total after allocation.
	Allocated    float64
	RoundingDiff float64
}

// Summary combines the overview with each participant's breakdown.
type Summary struct {
	Overview  Overview
	PerPerson []calculator.PersonSplit
}

// Build computes the summary for a snapshot of the bill.
func Build(snap bill.Snapshot) (Summary, error) {
	if len(snap.Participants) == 0 || len(snap.Items) == 0 {
		return Summary{}, ErrNothingToSummarize
	}

	totals := calculator.ComputeBillTotals(snap.Items, snap.Settings.VAT, snap.Settings.ServiceCharge)
	splits := calculator.CalculateSplit(snap.Participants, snap.Items, snap.Settings)

	overview := Overview{
		Totals:      totals,
		VATRate:     snap.Settings.VAT,
		ServiceRate: snap.Settings.ServiceCharge,
		People:      make([]PersonLine, len(splits)),
	}
	for i, split := range splits {
		overview.People[i] = PersonLine{
			ParticipantID: split.ParticipantID,
			Name:          split.Name,
			Amount:        split.Total,
		}
		overview.Allocated += split.Total
	}
	overview.RoundingDiff = totals.Total - overview.Allocated

	return Summary{Overview: overview, PerPerson: splits}, nil
}
