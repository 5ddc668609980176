package intake

import (
	"context"
	"math"
	"slices"
	"strings"

	"github.com/mmynk/billsplitter/internal/models"
)

// Phase is where the flow currently is.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseUploading
	PhaseReviewing
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseUploading:
		return "uploading"
	case PhaseReviewing:
		return "reviewing"
	default:
		return "unknown"
	}
}

// Ticket identifies one upload, so a result that arrives after the flow was
// closed (or restarted) can be recognised and dropped.
type Ticket uint64

// Review is a read-only view of the flow.
type Review struct {
	Phase      Phase
	Candidates []models.Candidate
	Cursor     int
	Confirmed  int
	Skipped    int
}

// Current returns the candidate under review.
func (r Review) Current() (models.Candidate, bool) {
	if r.Phase != PhaseReviewing || r.Cursor >= len(r.Candidates) {
		return models.Candidate{}, false
	}
	return r.Candidates[r.Cursor], true
}

// Flow is the receipt confirmation state machine for one bill.
// Like the bill itself, it is not safe for concurrent use.
type Flow struct {
	target ItemAdder

	ticket     Ticket
	phase      Phase
	candidates []models.Candidate
	cursor     int
	confirmed  int
	skipped    int
}

// NewFlow creates an idle flow that adds confirmed items to target.
func NewFlow(target ItemAdder) *Flow {
	return &Flow{target: target}
}

// Processing reports whether an extraction call is in flight.
func (f *Flow) Processing() bool {
	return f.phase == PhaseUploading
}

// Review returns a snapshot of the flow.
func (f *Flow) Review() Review {
	return Review{
		Phase:      f.phase,
		Candidates: slices.Clone(f.candidates),
		Cursor:     f.cursor,
		Confirmed:  f.confirmed,
		Skipped:    f.skipped,
	}
}

// BeginUpload marks an extraction as in flight. It fails while another
// extraction is running or a previous receipt is still under review.
func (f *Flow) BeginUpload() (Ticket, error) {
	if f.phase != PhaseIdle {
		return 0, ErrScanInProgress
	}
	f.ticket++
	f.phase = PhaseUploading
	return f.ticket, nil
}

// CompleteUpload records the extraction result for ticket. On failure the flow
// returns to idle and the error is returned wrapped in ErrExtractionFailed. A
// successful extraction with no candidates also returns to idle. Results for a
// ticket that is no longer current are dropped with ErrUploadDiscarded.
func (f *Flow) CompleteUpload(ticket Ticket, candidates []models.Candidate, err error) error {
	if f.phase != PhaseUploading || ticket != f.ticket {
		return ErrUploadDiscarded
	}
	if err != nil {
		f.reset()
		return extractionError(err)
	}
	f.reset()
	if len(candidates) == 0 {
		return nil
	}
	f.phase = PhaseReviewing
	f.candidates = slices.Clone(candidates)
	return nil
}

// Scan runs one extraction end to end. It is a convenience for callers that do
// not need to release a lock while the extractor runs.
func (f *Flow) Scan(ctx context.Context, extractor Extractor, img Image) error {
	if err := img.Validate(); err != nil {
		return err
	}
	ticket, err := f.BeginUpload()
	if err != nil {
		return err
	}
	candidates, err := extractor.Extract(ctx, img)
	return f.CompleteUpload(ticket, candidates, err)
}

// CanConfirm reports whether the edited candidate may be confirmed.
func CanConfirm(name string, price float64, sharedBy models.SharedBy) bool {
	if strings.TrimSpace(name) == "" {
		return false
	}
	if math.IsNaN(price) || math.IsInf(price, 0) || price <= 0 {
		return false
	}
	return sharedBy.IsEveryone() || len(sharedBy.IDs()) > 0
}

// Confirm adds the current candidate, with the user's edits, to the bill and
// moves to the next one. Nothing changes if the item is rejected.
func (f *Flow) Confirm(name string, price float64, sharedBy models.SharedBy) (models.Item, error) {
	if f.phase != PhaseReviewing {
		return models.Item{}, ErrNotReviewing
	}
	if !CanConfirm(name, price, sharedBy) {
		return models.Item{}, ErrConfirmDisabled
	}
	item, err := f.target.AddItem(name, price, sharedBy)
	if err != nil {
		return models.Item{}, err
	}
	f.confirmed++
	f.advance()
	return item, nil
}

// Skip moves past the current candidate without adding it.
func (f *Flow) Skip() error {
	if f.phase != PhaseReviewing {
		return ErrNotReviewing
	}
	f.skipped++
	f.advance()
	return nil
}

// Close abandons the review. Unreviewed candidates are discarded.
// Closing while an extraction is in flight is allowed; its result will be
// dropped by CompleteUpload.
func (f *Flow) Close() {
	f.reset()
}

func (f *Flow) advance() {
	f.cursor++
	if f.cursor >= len(f.candidates) {
		f.reset()
	}
}

func (f *Flow) reset() {
	f.phase = PhaseIdle
	f.candidates = nil
	f.cursor = 0
	f.confirmed = 0
	f.skipped = 0
}
