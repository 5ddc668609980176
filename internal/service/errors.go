package service

import (
	"context"
	"errors"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/billsplitter/internal/auth"
	"github.com/mmynk/billsplitter/internal/bill"
	"github.com/mmynk/billsplitter/internal/intake"
	"github.com/mmynk/billsplitter/internal/summary"
)

var (
	errBillIDRequired   = errors.New("bill_id is required")
	errAmbiguousSharers = errors.New("shared_by must be either everyone or a list of participant IDs")
	errInvalidLocale    = errors.New("locale is not a valid language tag")
)

// connectError maps domain errors onto Connect status codes. Unrecognised
// errors are logged and reported as internal.
func connectError(logger *slog.Logger, err error) error {
	code := connect.CodeInternal
	switch {
	case errors.Is(err, bill.ErrValidation),
		errors.Is(err, intake.ErrConfirmDisabled),
		errors.Is(err, intake.ErrNoImage),
		errors.Is(err, errBillIDRequired),
		errors.Is(err, errAmbiguousSharers),
		errors.Is(err, errInvalidLocale),
		errors.Is(err, auth.ErrWeakPassword),
		errors.Is(err, auth.ErrInvalidEmail):
		code = connect.CodeInvalidArgument
	case errors.Is(err, ErrBillNotFound),
		errors.Is(err, bill.ErrParticipantNotFound),
		errors.Is(err, bill.ErrItemNotFound):
		code = connect.CodeNotFound
	case errors.Is(err, intake.ErrNotAuthenticated),
		errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrInvalidToken):
		code = connect.CodeUnauthenticated
	case errors.Is(err, intake.ErrNotApproved):
		code = connect.CodePermissionDenied
	case errors.Is(err, intake.ErrExtractionFailed):
		code = connect.CodeUnavailable
	case errors.Is(err, intake.ErrScanInProgress),
		errors.Is(err, intake.ErrNotReviewing),
		errors.Is(err, summary.ErrNothingToSummarize):
		code = connect.CodeFailedPrecondition
	case errors.Is(err, intake.ErrUploadDiscarded):
		code = connect.CodeAborted
	case errors.Is(err, auth.ErrEmailExists):
		code = connect.CodeAlreadyExists
	case errors.Is(err, context.DeadlineExceeded):
		code = connect.CodeDeadlineExceeded
	case errors.Is(err, context.Canceled):
		code = connect.CodeCanceled
	}

	if code == connect.CodeInternal {
		logger.Error("Unexpected error", "error", err)
	}
	return connect.NewError(code, err)
}
