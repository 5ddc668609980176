package intake

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// ErrScanningLocked is wrapped by both gating failures. Callers that only care
// whether scanning is available can check for it alone.
var ErrScanningLocked = errors.New("receipt scanning is locked")

var (
	ErrNotAuthenticated = fmt.Errorf("%w: sign in to scan receipts", ErrScanningLocked)
	ErrNotApproved      = fmt.Errorf("%w: your account is awaiting approval", ErrScanningLocked)
)

// ApprovalChecker reports whether a user may scan receipts.
type ApprovalChecker interface {
	IsApproved(ctx context.Context, userID string) (bool, error)
}

// Gate checks that the user is signed in and approved for scanning.
// A failing checker is treated as "not approved".
func Gate(ctx context.Context, checker ApprovalChecker, userID string) error {
	if userID == "" {
		return ErrNotAuthenticated
	}
	approved, err := checker.IsApproved(ctx, userID)
	if err != nil {
		slog.Warn("Approval check failed", "user_id", userID, "error", err)
		return ErrNotApproved
	}
	if !approved {
		return ErrNotApproved
	}
	return nil
}
