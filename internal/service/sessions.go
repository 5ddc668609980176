package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/billsplitter/internal/bill"
	"github.com/mmynk/billsplitter/internal/intake"
	"github.com/mmynk/billsplitter/internal/metrics"
)

// ErrBillNotFound is returned for unknown or expired bill IDs.
var ErrBillNotFound = errors.New("bill not found")

// session is one bill and its receipt intake flow. Every access goes through
// Sessions.With, which holds mu.
type session struct {
	mu       sync.Mutex
	id       string
	bill     *bill.State
	flow     *intake.Flow
	lastUsed time.Time
	evicted  bool
}

// Sessions is the in-memory registry of open bills.
type Sessions struct {
	mu       sync.Mutex
	sessions map[string]*session

	opts    bill.Options
	idleTTL time.Duration
	now     func() time.Time
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewSessions creates an empty registry. Bills idle for longer than idleTTL
// are dropped by Sweep.
func NewSessions(opts bill.Options, idleTTL time.Duration, m *metrics.Metrics, logger *slog.Logger) *Sessions {
	return &Sessions{
		sessions: make(map[string]*session),
		opts:     opts,
		idleTTL:  idleTTL,
		now:      time.Now,
		metrics:  m,
		logger:   logger,
	}
}

// Start opens a new bill and returns its ID. Idle bills are swept first.
func (s *Sessions) Start() string {
	s.Sweep()

	b := bill.New(s.opts)
	sess := &session{
		id:       uuid.New().String(),
		bill:     b,
		flow:     intake.NewFlow(b),
		lastUsed: s.now(),
	}

	s.mu.Lock()
	s.sessions[sess.id] = sess
	count := len(s.sessions)
	s.mu.Unlock()

	s.metrics.ActiveSessions.Set(float64(count))
	s.logger.Info("Bill started", "bill_id", sess.id, "active_sessions", count)
	return sess.id
}

// With runs fn while holding the bill's lock.
func (s *Sessions) With(id string, fn func(*session) error) error {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	s.mu.Unlock()
	if !ok {
		return ErrBillNotFound
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.evicted {
		return ErrBillNotFound
	}
	sess.lastUsed = s.now()
	return fn(sess)
}

// Len returns the number of open bills.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep drops bills that have been idle longer than the TTL and returns how
// many were dropped. Bills that are busy right now are skipped.
func (s *Sessions) Sweep() int {
	cutoff := s.now().Add(-s.idleTTL)

	s.mu.Lock()
	removed := 0
	for id, sess := range s.sessions {
		if !sess.mu.TryLock() {
			continue
		}
		if sess.lastUsed.Before(cutoff) && !sess.flow.Processing() {
			sess.evicted = true
			delete(s.sessions, id)
			removed++
		}
		sess.mu.Unlock()
	}
	count := len(s.sessions)
	s.mu.Unlock()

	if removed > 0 {
		s.metrics.ActiveSessions.Set(float64(count))
		s.logger.Info("Swept idle bills", "removed", removed, "active_sessions", count)
	}
	return removed
}

// Run sweeps periodically until ctx is done.
func (s *Sessions) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			s.Sweep()
		}
	}
}
