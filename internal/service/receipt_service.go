package service

import (
	"context"
	"log/slog"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/billsplitter/internal/api"
	"github.com/mmynk/billsplitter/internal/intake"
	"github.com/mmynk/billsplitter/internal/metrics"
	"github.com/mmynk/billsplitter/internal/middleware"
)

// ReceiptService implements api.ReceiptServiceHandler: scanning a receipt
// into candidates and confirming them one at a time into the bill.
type ReceiptService struct {
	sessions  *Sessions
	extractor intake.Extractor
	approvals intake.ApprovalChecker
	timeout   time.Duration
	metrics   *metrics.Metrics
	logger    *slog.Logger
}

var _ api.ReceiptServiceHandler = (*ReceiptService)(nil)

// NewReceiptService creates a ReceiptService. timeout bounds each extraction call.
func NewReceiptService(
	sessions *Sessions,
	extractor intake.Extractor,
	approvals intake.ApprovalChecker,
	timeout time.Duration,
	m *metrics.Metrics,
	logger *slog.Logger,
) *ReceiptService {
	return &ReceiptService{
		sessions:  sessions,
		extractor: extractor,
		approvals: approvals,
		timeout:   timeout,
		metrics:   m,
		logger:    logger,
	}
}

func (s *ReceiptService) withBill(billID string, fn func(*session) error) error {
	if billID == "" {
		return connectError(s.logger, errBillIDRequired)
	}
	if err := s.sessions.With(billID, fn); err != nil {
		return connectError(s.logger, err)
	}
	return nil
}

// ScanReceipt extracts candidate items from a receipt image. Only signed-in,
// approved users may scan. The bill stays usable while extraction runs; a
// second scan on the same bill is refused until this one finishes.
func (s *ReceiptService) ScanReceipt(ctx context.Context, req *connect.Request[api.ScanReceiptRequest]) (*connect.Response[api.ReviewResponse], error) {
	userID := middleware.GetUserID(ctx)
	if err := intake.Gate(ctx, s.approvals, userID); err != nil {
		s.metrics.ReceiptScans.WithLabelValues(metrics.ScanLocked).Inc()
		s.logger.Info("Receipt scan refused", "bill_id", req.Msg.BillID, "user_id", userID, "reason", err)
		return nil, connectError(s.logger, err)
	}

	img := intake.Image{
		URL:         req.Msg.ImageURL,
		Data:        req.Msg.ImageData,
		ContentType: req.Msg.ContentType,
	}
	if err := img.Validate(); err != nil {
		s.metrics.ReceiptScans.WithLabelValues(metrics.ScanRejected).Inc()
		return nil, connectError(s.logger, err)
	}

	var ticket intake.Ticket
	err := s.withBill(req.Msg.BillID, func(sess *session) error {
		var err error
		ticket, err = sess.flow.BeginUpload()
		return err
	})
	if err != nil {
		s.metrics.ReceiptScans.WithLabelValues(metrics.ScanRejected).Inc()
		return nil, err
	}

	start := time.Now()
	extractCtx, cancel := context.WithTimeout(ctx, s.timeout)
	candidates, extractErr := s.extractor.Extract(extractCtx, img)
	cancel()

	var review intake.Review
	err = s.withBill(req.Msg.BillID, func(sess *session) error {
		err := sess.flow.CompleteUpload(ticket, candidates, extractErr)
		review = sess.flow.Review()
		return err
	})

	duration := time.Since(start).Milliseconds()
	switch {
	case err != nil:
		s.metrics.ReceiptScans.WithLabelValues(metrics.ScanFailed).Inc()
		s.logger.Warn("Receipt extraction failed",
			"bill_id", req.Msg.BillID,
			"user_id", userID,
			"duration_ms", duration,
			"error", err,
		)
		return nil, err
	case len(candidates) == 0:
		s.metrics.ReceiptScans.WithLabelValues(metrics.ScanEmpty).Inc()
	default:
		s.metrics.ReceiptScans.WithLabelValues(metrics.ScanOK).Inc()
	}

	s.logger.Info("Receipt scanned",
		"bill_id", req.Msg.BillID,
		"user_id", userID,
		"candidates", len(candidates),
		"duration_ms", duration,
	)
	return connect.NewResponse(&api.ReviewResponse{Review: toAPIReview(review)}), nil
}

// GetReview returns the receipt intake state of a bill.
func (s *ReceiptService) GetReview(ctx context.Context, req *connect.Request[api.GetReviewRequest]) (*connect.Response[api.ReviewResponse], error) {
	var review intake.Review
	err := s.withBill(req.Msg.BillID, func(sess *session) error {
		review = sess.flow.Review()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&api.ReviewResponse{Review: toAPIReview(review)}), nil
}

// ConfirmItem adds the current candidate, as edited by the user, to the bill.
func (s *ReceiptService) ConfirmItem(ctx context.Context, req *connect.Request[api.ConfirmItemRequest]) (*connect.Response[api.ConfirmItemResponse], error) {
	sharedBy, err := fromAPISharedBy(req.Msg.SharedBy)
	if err != nil {
		return nil, connectError(s.logger, err)
	}

	resp := &api.ConfirmItemResponse{}
	err = s.withBill(req.Msg.BillID, func(sess *session) error {
		item, err := sess.flow.Confirm(req.Msg.Name, req.Msg.Price, sharedBy)
		if err != nil {
			return err
		}
		resp.Item = toAPIItem(item)
		resp.Review = toAPIReview(sess.flow.Review())
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.ItemsAdded.WithLabelValues("receipt").Inc()
	return connect.NewResponse(resp), nil
}

// SkipItem moves past the current candidate without adding it.
func (s *ReceiptService) SkipItem(ctx context.Context, req *connect.Request[api.SkipItemRequest]) (*connect.Response[api.ReviewResponse], error) {
	var review intake.Review
	err := s.withBill(req.Msg.BillID, func(sess *session) error {
		if err := sess.flow.Skip(); err != nil {
			return err
		}
		review = sess.flow.Review()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&api.ReviewResponse{Review: toAPIReview(review)}), nil
}

// CloseReview abandons the remaining candidates. Items already confirmed stay
// on the bill. Closing an idle review is a no-op.
func (s *ReceiptService) CloseReview(ctx context.Context, req *connect.Request[api.CloseReviewRequest]) (*connect.Response[api.ReviewResponse], error) {
	var review intake.Review
	err := s.withBill(req.Msg.BillID, func(sess *session) error {
		sess.flow.Close()
		review = sess.flow.Review()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&api.ReviewResponse{Review: toAPIReview(review)}), nil
}
