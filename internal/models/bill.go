package models

import "slices"

// Participant is one person splitting the bill.
type Participant struct {
	// ID is the unique identifier for the participant (UUID format).
	ID string

	// Name is the display name. Names are not required to be unique; see
	// bill.DuplicateNamePolicy.
	Name string
}

// SharedBy describes who splits an item's cost.
//
// The zero value is an explicit, empty set, which is never valid on a stored item.
type SharedBy struct {
	everyone bool
	ids      []string
}

// Everyone returns the marker meaning "divide by the current participant count".
func Everyone() SharedBy {
	return SharedBy{everyone: true}
}

// Explicit returns a shared-by set listing the given participant IDs.
// Duplicate and empty IDs are dropped; order of first appearance is kept.
func Explicit(ids ...string) SharedBy {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return SharedBy{ids: out}
}

// IsEveryone reports whether this is the Everyone marker.
func (s SharedBy) IsEveryone() bool {
	return s.everyone
}

// IDs returns a copy of the explicit participant IDs. It is nil for Everyone.
func (s SharedBy) IDs() []string {
	if s.everyone {
		return nil
	}
	return slices.Clone(s.ids)
}

// Includes reports whether the participant shares the item.
// Everyone includes any participant that is present in the bill.
func (s SharedBy) Includes(participantID string) bool {
	if s.everyone {
		return true
	}
	return slices.Contains(s.ids, participantID)
}

// Count returns the number of sharers the item's price is divided by.
func (s SharedBy) Count(participantCount int) int {
	if s.everyone {
		return participantCount
	}
	return len(s.ids)
}

// Without returns a copy with the participant removed from an explicit set.
// Everyone is returned unchanged.
func (s SharedBy) Without(participantID string) SharedBy {
	if s.everyone {
		return s
	}
	out := make([]string, 0, len(s.ids))
	for _, id := range s.ids {
		if id != participantID {
			out = append(out, id)
		}
	}
	return SharedBy{ids: out}
}

// Item represents a single line item on a bill.
type Item struct {
	// ID is the unique identifier for the item (UUID format).
	ID string

	// Name is the optional description of the item (e.g., "Pizza", "Beer").
	Name string

	// Price is the pre-tax, pre-service price of the item.
	Price float64

	// SharedBy is who splits this item. The price is divided equally among them.
	SharedBy SharedBy
}

// Settings holds the session-wide surcharge rates, both as percentages.
type Settings struct {
	// VAT is applied to the item subtotal plus service charge.
	VAT float64

	// ServiceCharge is applied to the raw item subtotal, before VAT.
	ServiceCharge float64
}

// Candidate is an item extracted from a receipt that is awaiting review.
type Candidate struct {
	Name  string
	Price float64
}
