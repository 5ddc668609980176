// Package bill holds the in-memory state of one bill session.
//
// State is the single source of truth for participants, items and settings.
// It is not safe for concurrent use; callers that share a State across
// goroutines must serialise access themselves.
package bill

import (
	"math"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/mmynk/billsplitter/internal/calculator"
	"github.com/mmynk/billsplitter/internal/models"
)

// DefaultSettings are the rates a new bill starts with when no defaults are configured.
var DefaultSettings = models.Settings{VAT: 14, ServiceCharge: 12}

// DuplicateNamePolicy decides whether two participants may share a display name.
type DuplicateNamePolicy int

const (
	// DuplicateNamesAllow accepts repeated names; participants are keyed by ID.
	DuplicateNamesAllow DuplicateNamePolicy = iota
	// DuplicateNamesReject refuses a name already present (after trimming).
	DuplicateNamesReject
)

// Options configures a new State.
type Options struct {
	// Defaults are the settings applied on creation and on ResetAll.
	// Nil means DefaultSettings.
	Defaults *models.Settings

	DuplicateNames DuplicateNamePolicy

	// NewID generates participant and item IDs. Nil means random UUIDs.
	NewID func() string
}

// Snapshot is a copy of the bill at one point in time.
type Snapshot struct {
	Participants []models.Participant
	Items        []models.Item
	Settings     models.Settings
}

// State is the mutable bill. Use New to create one.
type State struct {
	defaults       models.Settings
	duplicateNames DuplicateNamePolicy
	newID          func() string

	participants []models.Participant
	items        []models.Item
	settings     models.Settings
}

// New creates an empty bill with the configured default settings.
func New(opts Options) *State {
	s := &State{
		defaults:       DefaultSettings,
		duplicateNames: opts.DuplicateNames,
		newID:          opts.NewID,
	}
	if opts.Defaults != nil {
		s.defaults = models.Settings{
			VAT:           sanitizeRate(opts.Defaults.VAT),
			ServiceCharge: sanitizeRate(opts.Defaults.ServiceCharge),
		}
	}
	if s.newID == nil {
		s.newID = func() string { return uuid.New().String() }
	}
	s.settings = s.defaults
	return s
}

// AddParticipant appends a participant with a trimmed name and a fresh ID.
func (s *State) AddParticipant(name string) (models.Participant, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Participant{}, ErrEmptyName
	}
	if s.duplicateNames == DuplicateNamesReject {
		for _, p := range s.participants {
			if p.Name == name {
				return models.Participant{}, ErrDuplicateName
			}
		}
	}

	p := models.Participant{ID: s.newID(), Name: name}
	s.participants = append(s.participants, p)
	return p, nil
}

// RemoveParticipant removes the participant and strips them from every item.
// Items left with nobody to share them are deleted; their IDs are returned.
func (s *State) RemoveParticipant(id string) ([]string, error) {
	idx := slices.IndexFunc(s.participants, func(p models.Participant) bool { return p.ID == id })
	if idx < 0 {
		return nil, ErrParticipantNotFound
	}
	s.participants = slices.Delete(s.participants, idx, idx+1)

	var removed []string
	kept := s.items[:0]
	for _, item := range s.items {
		item.SharedBy = item.SharedBy.Without(id)
		if item.SharedBy.Count(len(s.participants)) == 0 {
			removed = append(removed, item.ID)
			continue
		}
		kept = append(kept, item)
	}
	s.items = kept
	return removed, nil
}

// UpdateSettings replaces both rates at once. A rate that is negative or not a
// finite number is stored as 0.
func (s *State) UpdateSettings(vat, serviceCharge float64) models.Settings {
	s.settings = models.Settings{
		VAT:           sanitizeRate(vat),
		ServiceCharge: sanitizeRate(serviceCharge),
	}
	return s.settings
}

// AddItem validates and appends a new item with a fresh ID.
func (s *State) AddItem(name string, price float64, sharedBy models.SharedBy) (models.Item, error) {
	if err := s.ValidateItem(price, sharedBy); err != nil {
		return models.Item{}, err
	}
	item := models.Item{
		ID:       s.newID(),
		Name:     strings.TrimSpace(name),
		Price:    price,
		SharedBy: sharedBy,
	}
	s.items = append(s.items, item)
	return item, nil
}

// UpdateItem replaces an item's fields, keeping its ID and position.
func (s *State) UpdateItem(id, name string, price float64, sharedBy models.SharedBy) (models.Item, error) {
	idx := s.itemIndex(id)
	if idx < 0 {
		return models.Item{}, ErrItemNotFound
	}
	if err := s.ValidateItem(price, sharedBy); err != nil {
		return models.Item{}, err
	}
	s.items[idx] = models.Item{
		ID:       id,
		Name:     strings.TrimSpace(name),
		Price:    price,
		SharedBy: sharedBy,
	}
	return s.items[idx], nil
}

// RemoveItem deletes the item and reports whether it existed.
func (s *State) RemoveItem(id string) bool {
	idx := s.itemIndex(id)
	if idx < 0 {
		return false
	}
	s.items = slices.Delete(s.items, idx, idx+1)
	return true
}

// ResetAll clears participants and items and restores the default settings.
func (s *State) ResetAll() {
	s.participants = nil
	s.items = nil
	s.settings = s.defaults
}

// ValidateItem checks an item's price and sharers against the current bill
// without changing anything.
func (s *State) ValidateItem(price float64, sharedBy models.SharedBy) error {
	if math.IsNaN(price) || math.IsInf(price, 0) || price <= 0 {
		return ErrInvalidPrice
	}
	if sharedBy.Count(len(s.participants)) == 0 {
		return ErrNoSharers
	}
	for _, id := range sharedBy.IDs() {
		if _, ok := s.Participant(id); !ok {
			return ErrUnknownParticipant
		}
	}
	return nil
}

// Participants returns a copy of the participants in insertion order.
func (s *State) Participants() []models.Participant {
	return slices.Clone(s.participants)
}

// Items returns a copy of the items in insertion order.
func (s *State) Items() []models.Item {
	return slices.Clone(s.items)
}

func (s *State) Settings() models.Settings {
	return s.settings
}

func (s *State) ParticipantCount() int {
	return len(s.participants)
}

// AllParticipantIDs lists every current participant ID, for an explicit
// "select all" that, unlike models.Everyone, will not follow later changes.
func (s *State) AllParticipantIDs() []string {
	ids := make([]string, len(s.participants))
	for i, p := range s.participants {
		ids[i] = p.ID
	}
	return ids
}

// Participant looks up a participant by ID.
func (s *State) Participant(id string) (models.Participant, bool) {
	for _, p := range s.participants {
		if p.ID == id {
			return p, true
		}
	}
	return models.Participant{}, false
}

// Item looks up an item by ID.
func (s *State) Item(id string) (models.Item, bool) {
	if idx := s.itemIndex(id); idx >= 0 {
		return s.items[idx], true
	}
	return models.Item{}, false
}

// Snapshot copies the whole bill.
func (s *State) Snapshot() Snapshot {
	return Snapshot{
		Participants: s.Participants(),
		Items:        s.Items(),
		Settings:     s.settings,
	}
}

// Totals computes the bill-level breakdown from the current state.
func (s *State) Totals() calculator.Totals {
	return calculator.ComputeBillTotals(s.items, s.settings.VAT, s.settings.ServiceCharge)
}

// Split computes every participant's share from the current state.
func (s *State) Split() []calculator.PersonSplit {
	return calculator.CalculateSplit(s.participants, s.items, s.settings)
}

func (s *State) itemIndex(id string) int {
	return slices.IndexFunc(s.items, func(item models.Item) bool { return item.ID == id })
}

func sanitizeRate(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
