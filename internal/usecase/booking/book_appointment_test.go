package booking

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"testing"

	domain "github.com/BruksfildServices01/business-manager/internal/domain/booking"
	"github.com/BruksfildServices01/business-manager/internal/models"
	"github.com/BruksfildServices01/business-manager/internal/queue"
)

// ======================================================
// FAKE STORE (in-memory, transação serializada)
// ======================================================

type ledgerWrite struct {
	totalSpent  float64
	lastService string
}

// memStore serializes transactions with a mutex and stages every write
// until fn returns nil, so a failed transaction leaves no trace.
type memStore struct {
	mu           sync.Mutex
	clients      map[string]*models.Client
	appointments []models.Appointment
	seq          int

	failCreateAppointment error
	failLedgerUpdate      error
	failCommit            error
}

func newMemStore(clients ...*models.Client) *memStore {
	s := &memStore{clients: map[string]*models.Client{}}
	for _, c := range clients {
		s.clients[c.ID] = c
	}
	return s
}

type memTx struct {
	s      *memStore
	staged []models.Appointment
	ledger map[string]ledgerWrite
}

func (t *memTx) GetClient(_ context.Context, clientID string) (*models.Client, error) {
	c, ok := t.s.clients[clientID]
	if !ok {
		return nil, domain.ErrClientNotFound
	}
	cp := *c
	return &cp, nil
}

func (t *memTx) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	if err := t.s.failCreateAppointment; err != nil {
		return err
	}
	t.s.seq++
	ap.ID = fmt.Sprintf("ap-%d", t.s.seq)
	t.staged = append(t.staged, *ap)
	return nil
}

func (t *memTx) UpdateClientLedger(_ context.Context, clientID string, totalSpent float64, lastService string) error {
	if err := t.s.failLedgerUpdate; err != nil {
		return err
	}
	t.ledger[clientID] = ledgerWrite{totalSpent: totalSpent, lastService: lastService}
	return nil
}

func (s *memStore) RunTransaction(ctx context.Context, fn func(ctx context.Context, tx domain.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &memTx{s: s, ledger: map[string]ledgerWrite{}}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	if err := s.failCommit; err != nil {
		return err
	}

	s.appointments = append(s.appointments, tx.staged...)
	for id, w := range tx.ledger {
		s.clients[id].TotalSpent = w.totalSpent
		s.clients[id].LastService = w.lastService
	}
	return nil
}

// ======================================================
// FAKE PUBLISHER
// ======================================================

type fakePublisher struct {
	mu     sync.Mutex
	events []queue.AppointmentReminderEvent
	err    error
}

func (p *fakePublisher) PublishReminder(_ context.Context, ev queue.AppointmentReminderEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return p.err
}

// ======================================================
// HELPERS
// ======================================================

func baseClient() *models.Client {
	return &models.Client{
		ID:         "client-1",
		OwnerID:    "owner-1",
		Name:       "João da Silva",
		TotalSpent: 100,
	}
}

func baseRequest() domain.Request {
	return domain.Request{
		ClientID:     "client-1",
		OwnerID:      "owner-1",
		ClientName:   "João da Silva",
		ServiceID:    "svc-1",
		ServiceName:  "Corte Masculino",
		ServicePrice: 50,
		Date:         "2026-03-10",
		StartTime:    "14:00",
		EndTime:      "14:30",
	}
}

// ======================================================
// TESTS
// ======================================================

func TestExecute_ValidationErrors(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*domain.Request)
	}{
		{"missing client id", func(r *domain.Request) { r.ClientID = "" }},
		{"missing owner id", func(r *domain.Request) { r.OwnerID = "" }},
		{"bad date", func(r *domain.Request) { r.Date = "10/03/2026" }},
		{"negative price", func(r *domain.Request) { r.ServicePrice = -1 }},
		{"nan price", func(r *domain.Request) { r.ServicePrice = math.NaN() }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := newMemStore(baseClient())
			uc := NewBookAppointment(store, nil, nil)

			req := baseRequest()
			tc.mutate(&req)

			_, err := uc.Execute(context.Background(), req)
			if !errors.Is(err, domain.ErrInvalidRequest) {
				t.Fatalf("expected ErrInvalidRequest, got %v", err)
			}
			if len(store.appointments) != 0 {
				t.Fatalf("invalid request must not write, got %d appointments", len(store.appointments))
			}
		})
	}
}

func TestExecute_Success_UpdatesLedgerAtomically(t *testing.T) {
	client := baseClient()
	store := newMemStore(client)
	uc := NewBookAppointment(store, nil, nil)

	id, err := uc.Execute(context.Background(), baseRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id == "" {
		t.Fatal("expected a non-empty appointment id")
	}

	if len(store.appointments) != 1 {
		t.Fatalf("expected 1 appointment, got %d", len(store.appointments))
	}
	ap := store.appointments[0]
	if ap.ID != id {
		t.Fatalf("returned id %q does not match stored %q", id, ap.ID)
	}
	if ap.ServiceName != "Corte Masculino" || ap.ServicePrice != 50 {
		t.Fatalf("snapshot fields not persisted: %+v", ap)
	}

	if client.TotalSpent != 150 {
		t.Fatalf("total_spent: want 150, got %v", client.TotalSpent)
	}
	want := "Corte Masculino - 2026-03-10"
	if client.LastService != want {
		t.Fatalf("last_service: want %q, got %q", want, client.LastService)
	}
}

func TestExecute_ClientNotFound(t *testing.T) {
	store := newMemStore() // empty
	uc := NewBookAppointment(store, nil, nil)

	_, err := uc.Execute(context.Background(), baseRequest())
	if !errors.Is(err, domain.ErrClientNotFound) {
		t.Fatalf("expected ErrClientNotFound, got %v", err)
	}
	if len(store.appointments) != 0 {
		t.Fatal("not-found must leave zero side effects")
	}
}

func TestExecute_PermissionDenied_OtherOwnersClient(t *testing.T) {
	client := baseClient()
	client.OwnerID = "owner-2"
	store := newMemStore(client)
	uc := NewBookAppointment(store, nil, nil)

	_, err := uc.Execute(context.Background(), baseRequest())
	if !errors.Is(err, domain.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
	if len(store.appointments) != 0 {
		t.Fatal("denied booking must not create an appointment")
	}
	if client.TotalSpent != 100 {
		t.Fatalf("denied booking must not touch the ledger, got %v", client.TotalSpent)
	}
}

func TestExecute_LedgerFailureRollsBackAppointment(t *testing.T) {
	client := baseClient()
	store := newMemStore(client)
	store.failLedgerUpdate = errors.New("disk full")
	uc := NewBookAppointment(store, nil, nil)

	_, err := uc.Execute(context.Background(), baseRequest())
	if err == nil {
		t.Fatal("expected an error")
	}
	if len(store.appointments) != 0 {
		t.Fatal("failed transaction must not persist the appointment")
	}
	if client.TotalSpent != 100 || client.LastService != "" {
		t.Fatalf("failed transaction must not touch the ledger: %+v", client)
	}
}

func TestExecute_CommitFailureSurfacesStoreUnavailable(t *testing.T) {
	client := baseClient()
	store := newMemStore(client)
	store.failCommit = fmt.Errorf("%w: serialization conflict", domain.ErrStoreUnavailable)
	uc := NewBookAppointment(store, nil, nil)

	_, err := uc.Execute(context.Background(), baseRequest())
	if !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
	if len(store.appointments) != 0 || client.TotalSpent != 100 {
		t.Fatal("failed commit must leave zero side effects")
	}
}

// Two bookings raced against the same client must both land in the
// ledger; neither increment may be lost.
func TestExecute_ConcurrentBookingsDoNotLoseUpdates(t *testing.T) {
	client := baseClient()
	client.TotalSpent = 0
	store := newMemStore(client)
	uc := NewBookAppointment(store, nil, nil)

	prices := []float64{20, 30}
	var wg sync.WaitGroup
	errs := make([]error, len(prices))

	for i, p := range prices {
		wg.Add(1)
		go func(i int, price float64) {
			defer wg.Done()
			req := baseRequest()
			req.ServicePrice = price
			_, errs[i] = uc.Execute(context.Background(), req)
		}(i, p)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("booking %d failed: %v", i, err)
		}
	}
	if client.TotalSpent != 50 {
		t.Fatalf("lost update: want total_spent 50, got %v", client.TotalSpent)
	}
	if len(store.appointments) != 2 {
		t.Fatalf("expected 2 appointments, got %d", len(store.appointments))
	}
}

// The operation is not idempotent: the same request twice books two
// appointments and charges the ledger twice.
func TestExecute_DuplicateRequestsBookTwice(t *testing.T) {
	client := baseClient()
	store := newMemStore(client)
	uc := NewBookAppointment(store, nil, nil)

	id1, err := uc.Execute(context.Background(), baseRequest())
	if err != nil {
		t.Fatalf("first booking: %v", err)
	}
	id2, err := uc.Execute(context.Background(), baseRequest())
	if err != nil {
		t.Fatalf("second booking: %v", err)
	}

	if id1 == id2 {
		t.Fatalf("expected distinct ids, got %q twice", id1)
	}
	if client.TotalSpent != 200 {
		t.Fatalf("want total_spent 200 after double booking, got %v", client.TotalSpent)
	}
}

func TestExecute_ReminderPublishedAfterCommit(t *testing.T) {
	store := newMemStore(baseClient())
	pub := &fakePublisher{}
	uc := NewBookAppointment(store, nil, pub)

	req := baseRequest()
	req.SMSReminder = true
	req.Phone = "+5511999990000"

	id, err := uc.Execute(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pub.events) != 1 {
		t.Fatalf("expected 1 reminder event, got %d", len(pub.events))
	}
	if pub.events[0].AppointmentID != id || pub.events[0].Phone != "+5511999990000" {
		t.Fatalf("reminder event mismatch: %+v", pub.events[0])
	}
}

func TestExecute_NoReminderOnFailedTransaction(t *testing.T) {
	store := newMemStore(baseClient())
	store.failCommit = domain.ErrStoreUnavailable
	pub := &fakePublisher{}
	uc := NewBookAppointment(store, nil, pub)

	req := baseRequest()
	req.SMSReminder = true

	if _, err := uc.Execute(context.Background(), req); err == nil {
		t.Fatal("expected an error")
	}
	if len(pub.events) != 0 {
		t.Fatal("reminder must not be published for a failed booking")
	}
}

func TestExecute_PublisherErrorDoesNotFailBooking(t *testing.T) {
	store := newMemStore(baseClient())
	pub := &fakePublisher{err: errors.New("broker down")}
	uc := NewBookAppointment(store, nil, pub)

	req := baseRequest()
	req.SMSReminder = true

	if _, err := uc.Execute(context.Background(), req); err != nil {
		t.Fatalf("reminder failure must not fail the booking: %v", err)
	}
	if len(store.appointments) != 1 {
		t.Fatal("appointment should have been committed")
	}
}
