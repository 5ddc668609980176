package service

import (
	"context"
	"log/slog"
	"strings"

	"connectrpc.com/connect"
	"golang.org/x/text/language"

	"github.com/mmynk/billsplitter/internal/api"
	"github.com/mmynk/billsplitter/internal/metrics"
	"github.com/mmynk/billsplitter/internal/summary"
)

// BillService implements api.BillServiceHandler on top of the session registry.
// Bills are anonymous; knowing a bill's ID is enough to edit it.
type BillService struct {
	sessions *Sessions
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

var _ api.BillServiceHandler = (*BillService)(nil)

// NewBillService creates a BillService.
func NewBillService(sessions *Sessions, m *metrics.Metrics, logger *slog.Logger) *BillService {
	return &BillService{sessions: sessions, metrics: m, logger: logger}
}

// withBill looks up the bill and runs fn under its lock, mapping any error
// to a Connect error.
func (s *BillService) withBill(billID string, fn func(*session) error) error {
	if billID == "" {
		return connectError(s.logger, errBillIDRequired)
	}
	if err := s.sessions.With(billID, fn); err != nil {
		return connectError(s.logger, err)
	}
	return nil
}

// StartBill opens a new empty bill with the configured default rates.
func (s *BillService) StartBill(ctx context.Context, req *connect.Request[api.StartBillRequest]) (*connect.Response[api.BillResponse], error) {
	id := s.sessions.Start()

	var out *api.Bill
	err := s.withBill(id, func(sess *session) error {
		out = toAPIBill(sess.id, sess.bill)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&api.BillResponse{Bill: out}), nil
}

// GetBill returns the current state of a bill.
func (s *BillService) GetBill(ctx context.Context, req *connect.Request[api.GetBillRequest]) (*connect.Response[api.BillResponse], error) {
	var out *api.Bill
	err := s.withBill(req.Msg.BillID, func(sess *session) error {
		out = toAPIBill(sess.id, sess.bill)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&api.BillResponse{Bill: out}), nil
}

// AddParticipant adds a person to the bill.
func (s *BillService) AddParticipant(ctx context.Context, req *connect.Request[api.AddParticipantRequest]) (*connect.Response[api.AddParticipantResponse], error) {
	resp := &api.AddParticipantResponse{}
	err := s.withBill(req.Msg.BillID, func(sess *session) error {
		p, err := sess.bill.AddParticipant(req.Msg.Name)
		if err != nil {
			return err
		}
		resp.Participant = toAPIParticipant(p)
		resp.Bill = toAPIBill(sess.id, sess.bill)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("Participant added", "bill_id", req.Msg.BillID, "participant_id", resp.Participant.ID)
	return connect.NewResponse(resp), nil
}

// RemoveParticipant removes a person and any item nobody is left to share.
func (s *BillService) RemoveParticipant(ctx context.Context, req *connect.Request[api.RemoveParticipantRequest]) (*connect.Response[api.RemoveParticipantResponse], error) {
	resp := &api.RemoveParticipantResponse{}
	err := s.withBill(req.Msg.BillID, func(sess *session) error {
		removed, err := sess.bill.RemoveParticipant(req.Msg.ParticipantID)
		if err != nil {
			return err
		}
		resp.RemovedItemIDs = removed
		resp.Bill = toAPIBill(sess.id, sess.bill)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(resp.RemovedItemIDs) > 0 {
		s.logger.Debug("Removed items left without sharers",
			"bill_id", req.Msg.BillID,
			"participant_id", req.Msg.ParticipantID,
			"item_ids", resp.RemovedItemIDs,
		)
	}
	return connect.NewResponse(resp), nil
}

// UpdateSettings replaces the VAT and service charge rates. Invalid rates are
// stored as zero rather than rejected.
func (s *BillService) UpdateSettings(ctx context.Context, req *connect.Request[api.UpdateSettingsRequest]) (*connect.Response[api.BillResponse], error) {
	var out *api.Bill
	err := s.withBill(req.Msg.BillID, func(sess *session) error {
		sess.bill.UpdateSettings(req.Msg.VAT, req.Msg.ServiceCharge)
		out = toAPIBill(sess.id, sess.bill)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&api.BillResponse{Bill: out}), nil
}

// AddItem adds a manually entered item.
func (s *BillService) AddItem(ctx context.Context, req *connect.Request[api.AddItemRequest]) (*connect.Response[api.ItemResponse], error) {
	sharedBy, err := fromAPISharedBy(req.Msg.SharedBy)
	if err != nil {
		return nil, connectError(s.logger, err)
	}

	resp := &api.ItemResponse{}
	err = s.withBill(req.Msg.BillID, func(sess *session) error {
		item, err := sess.bill.AddItem(req.Msg.Name, req.Msg.Price, sharedBy)
		if err != nil {
			return err
		}
		resp.Item = toAPIItem(item)
		resp.Bill = toAPIBill(sess.id, sess.bill)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.ItemsAdded.WithLabelValues("manual").Inc()
	return connect.NewResponse(resp), nil
}

// UpdateItem edits an existing item in place.
func (s *BillService) UpdateItem(ctx context.Context, req *connect.Request[api.UpdateItemRequest]) (*connect.Response[api.ItemResponse], error) {
	sharedBy, err := fromAPISharedBy(req.Msg.SharedBy)
	if err != nil {
		return nil, connectError(s.logger, err)
	}

	resp := &api.ItemResponse{}
	err = s.withBill(req.Msg.BillID, func(sess *session) error {
		item, err := sess.bill.UpdateItem(req.Msg.ItemID, req.Msg.Name, req.Msg.Price, sharedBy)
		if err != nil {
			return err
		}
		resp.Item = toAPIItem(item)
		resp.Bill = toAPIBill(sess.id, sess.bill)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(resp), nil
}

// RemoveItem deletes an item. Removing an unknown item is not an error.
func (s *BillService) RemoveItem(ctx context.Context, req *connect.Request[api.RemoveItemRequest]) (*connect.Response[api.RemoveItemResponse], error) {
	resp := &api.RemoveItemResponse{}
	err := s.withBill(req.Msg.BillID, func(sess *session) error {
		resp.Removed = sess.bill.RemoveItem(req.Msg.ItemID)
		resp.Bill = toAPIBill(sess.id, sess.bill)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(resp), nil
}

// ResetBill clears everyone and everything and restores the default rates.
// A receipt review in progress is abandoned too.
func (s *BillService) ResetBill(ctx context.Context, req *connect.Request[api.ResetBillRequest]) (*connect.Response[api.BillResponse], error) {
	var out *api.Bill
	err := s.withBill(req.Msg.BillID, func(sess *session) error {
		sess.bill.ResetAll()
		sess.flow.Close()
		out = toAPIBill(sess.id, sess.bill)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Bill reset", "bill_id", req.Msg.BillID)
	return connect.NewResponse(&api.BillResponse{Bill: out}), nil
}

// GetSummary returns the overview and per-person breakdowns, plus a rendered
// text report in the requested locale.
func (s *BillService) GetSummary(ctx context.Context, req *connect.Request[api.GetSummaryRequest]) (*connect.Response[api.GetSummaryResponse], error) {
	lang := language.English
	if req.Msg.Locale != "" {
		tag, err := language.Parse(req.Msg.Locale)
		if err != nil {
			return nil, connectError(s.logger, errInvalidLocale)
		}
		lang = tag
	}

	var sum summary.Summary
	err := s.withBill(req.Msg.BillID, func(sess *session) error {
		var err error
		sum, err = summary.Build(sess.bill.Snapshot())
		return err
	})
	if err != nil {
		return nil, err
	}

	var text strings.Builder
	if err := summary.Render(&text, sum, lang); err != nil {
		return nil, connectError(s.logger, err)
	}

	resp := &api.GetSummaryResponse{
		Totals: toAPITotals(sum.Overview.Totals),
		Settings: api.Settings{
			VAT:           sum.Overview.VATRate,
			ServiceCharge: sum.Overview.ServiceRate,
		},
		People:       make([]api.PersonSplit, len(sum.PerPerson)),
		Allocated:    sum.Overview.Allocated,
		RoundingDiff: sum.Overview.RoundingDiff,
		Text:         text.String(),
	}
	for i, p := range sum.PerPerson {
		resp.People[i] = toAPIPersonSplit(p)
	}
	return connect.NewResponse(resp), nil
}
