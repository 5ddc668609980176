package service

import (
	"context"
	"log/slog"
	"math"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/billsplitter/internal/api"
	"github.com/mmynk/billsplitter/internal/auth"
	"github.com/mmynk/billsplitter/internal/bill"
	"github.com/mmynk/billsplitter/internal/intake"
	"github.com/mmynk/billsplitter/internal/metrics"
	"github.com/mmynk/billsplitter/internal/middleware"
	"github.com/mmynk/billsplitter/internal/models"
	"github.com/mmynk/billsplitter/internal/storage/sqlite"
)

// fakeExtractor stands in for the receipt model. Tests swap its behaviour with set.
type fakeExtractor struct {
	mu    sync.Mutex
	fn    func(ctx context.Context, img intake.Image) ([]models.Candidate, error)
	calls int
}

func (f *fakeExtractor) Extract(ctx context.Context, img intake.Image) ([]models.Candidate, error) {
	f.mu.Lock()
	f.calls++
	fn := f.fn
	f.mu.Unlock()
	if fn == nil {
		return nil, nil
	}
	return fn(ctx, img)
}

func (f *fakeExtractor) set(fn func(ctx context.Context, img intake.Image) ([]models.Candidate, error)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fn = fn
}

func (f *fakeExtractor) returns(candidates ...models.Candidate) {
	f.set(func(context.Context, intake.Image) ([]models.Candidate, error) {
		return candidates, nil
	})
}

func (f *fakeExtractor) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type testEnv struct {
	bills     api.BillServiceClient
	receipts  api.ReceiptServiceClient
	auth      api.AuthServiceClient
	store     *sqlite.SQLiteStore
	sessions  *Sessions
	metrics   *metrics.Metrics
	extractor *fakeExtractor
}

type testOptions struct {
	bill    bill.Options
	timeout time.Duration
}

// setupTestServer wires the three services the way the server does, on top
// of a temporary SQLite database.
func setupTestServer(t *testing.T, configure ...func(*testOptions)) *testEnv {
	t.Helper()

	opts := testOptions{timeout: 5 * time.Second}
	for _, fn := range configure {
		fn(&opts)
	}

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	logger := slog.New(slog.DiscardHandler)
	m := metrics.New(nil)
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	sessions := NewSessions(opts.bill, time.Hour, m, logger)
	extractor := &fakeExtractor{}

	common := connect.WithInterceptors(
		middleware.LoggingInterceptor(logger),
		middleware.MetricsInterceptor(m),
	)

	mux := http.NewServeMux()
	mux.Handle(api.NewBillServiceHandler(NewBillService(sessions, m, logger), common))
	mux.Handle(api.NewReceiptServiceHandler(
		NewReceiptService(sessions, extractor, store, opts.timeout, m, logger),
		connect.WithInterceptors(middleware.OptionalAuth(jwtManager)),
		common,
	))
	mux.Handle(api.NewAuthServiceHandler(
		NewAuthService(auth.NewPasswordAuthenticator(store), jwtManager, store, logger),
		connect.WithInterceptors(middleware.RequireAuth(jwtManager,
			api.AuthServiceRegisterProcedure,
			api.AuthServiceLoginProcedure,
		)),
		common,
	))

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return &testEnv{
		bills:     api.NewBillServiceClient(http.DefaultClient, server.URL),
		receipts:  api.NewReceiptServiceClient(http.DefaultClient, server.URL),
		auth:      api.NewAuthServiceClient(http.DefaultClient, server.URL),
		store:     store,
		sessions:  sessions,
		metrics:   m,
		extractor: extractor,
	}
}

// withToken wraps msg in a request carrying a bearer token, if one is given.
func withToken[T any](msg *T, token string) *connect.Request[T] {
	req := connect.NewRequest(msg)
	if token != "" {
		req.Header().Set("Authorization", "Bearer "+token)
	}
	return req
}

// signIn registers an account and returns its token, approving it for
// scanning when asked.
func (e *testEnv) signIn(t *testing.T, email string, approved bool) string {
	t.Helper()
	resp, err := e.auth.Register(context.Background(), connect.NewRequest(&api.RegisterRequest{
		Email:       email,
		DisplayName: "Tester",
		Password:    "password123",
	}))
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if approved {
		if err := e.store.SetApproval(context.Background(), resp.Msg.User.ID, true); err != nil {
			t.Fatalf("SetApproval failed: %v", err)
		}
	}
	return resp.Msg.Token
}

// startBill opens a bill with the named participants.
func (e *testEnv) startBill(t *testing.T, names ...string) (string, []api.Participant) {
	t.Helper()
	ctx := context.Background()
	resp, err := e.bills.StartBill(ctx, connect.NewRequest(&api.StartBillRequest{}))
	if err != nil {
		t.Fatalf("StartBill failed: %v", err)
	}
	billID := resp.Msg.Bill.ID

	var people []api.Participant
	for _, name := range names {
		added, err := e.bills.AddParticipant(ctx, connect.NewRequest(&api.AddParticipantRequest{BillID: billID, Name: name}))
		if err != nil {
			t.Fatalf("AddParticipant(%q) failed: %v", name, err)
		}
		people = append(people, added.Msg.Participant)
	}
	return billID, people
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func assertCode(t *testing.T, err error, want connect.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v error, got nil", want)
	}
	if got := connect.CodeOf(err); got != want {
		t.Fatalf("code = %v, want %v (error: %v)", got, want, err)
	}
}
