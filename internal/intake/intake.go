// Package intake turns receipt extraction results into bill items.
//
// A Flow walks the user through the extracted candidates one at a time:
//
//	Idle → Uploading → Reviewing(candidates, cursor) → Idle
//
// Each candidate is either confirmed (added to the bill with the chosen sharers)
// or skipped. Closing the flow discards whatever has not been reviewed yet;
// confirmed items stay in the bill.
package intake

import (
	"context"
	"errors"
	"fmt"

	"github.com/mmynk/billsplitter/internal/models"
)

var (
	ErrScanInProgress   = errors.New("a receipt is already being processed")
	ErrNotReviewing     = errors.New("no receipt items are awaiting review")
	ErrConfirmDisabled  = errors.New("item needs a name, a price above zero and at least one sharer")
	ErrExtractionFailed = errors.New("failed to extract items from receipt")
	ErrNoImage          = errors.New("receipt image is required")
	ErrUploadDiscarded  = errors.New("receipt review was closed before extraction finished")
)

// Image is a receipt image, given either by URL or inline bytes.
type Image struct {
	URL         string
	Data        []byte
	ContentType string
}

// Validate checks that exactly one image source is set.
func (img Image) Validate() error {
	if (img.URL == "") == (len(img.Data) == 0) {
		return ErrNoImage
	}
	return nil
}

// Extractor reads the line items off a receipt image.
type Extractor interface {
	Extract(ctx context.Context, img Image) ([]models.Candidate, error)
}

// ItemAdder is the part of the bill the flow writes confirmed items to.
type ItemAdder interface {
	AddItem(name string, price float64, sharedBy models.SharedBy) (models.Item, error)
}

// ExtractorFunc adapts a function to the Extractor interface.
type ExtractorFunc func(ctx context.Context, img Image) ([]models.Candidate, error)

func (f ExtractorFunc) Extract(ctx context.Context, img Image) ([]models.Candidate, error) {
	return f(ctx, img)
}

func extractionError(err error) error {
	if errors.Is(err, ErrExtractionFailed) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrExtractionFailed, err)
}
