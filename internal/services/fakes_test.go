package services

import (
	"context"
	"sync"
	"time"

	"mobiletoilet/internal/domain/models"
)

// callLog records collaborator calls in order.
type callLog struct {
	mu    sync.Mutex
	calls []string
}

func (l *callLog) add(name string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, name)
}

func (l *callLog) count(name string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, c := range l.calls {
		if c == name {
			n++
		}
	}
	return n
}

// waitFor blocks until name was recorded n times or the deadline passes.
func (l *callLog) waitFor(name string, n int) bool {
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if l.count(name) >= n {
			return true
		}
		time.Sleep(time.Millisecond)
	}
	return false
}

func (l *callLog) list() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.calls...)
}

type fakeBookings struct {
	log      *callLog
	mu       sync.Mutex
	bookings []models.Booking
	err      error
	updates  []models.Booking
}

func (f *fakeBookings) Search(ctx context.Context, q models.BookingSearch) ([]models.Booking, error) {
	f.log.add("search")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return append([]models.Booking(nil), f.bookings...), nil
}

func (f *fakeBookings) Update(ctx context.Context, b models.Booking) error {
	f.log.add("update")
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates = append(f.updates, b)
	for i := range f.bookings {
		if f.bookings[i].BookingNo == b.BookingNo {
			f.bookings[i].PaymentReceiptFilestoreID = b.PaymentReceiptFilestoreID
		}
	}
	return nil
}

type fakePayments struct {
	log      *callLog
	mu       sync.Mutex
	payments []models.Payment
	err      error
	last     models.ReceiptSearch
}

func (f *fakePayments) Search(ctx context.Context, q models.ReceiptSearch) ([]models.Payment, error) {
	f.log.add("receipt_search")
	f.mu.Lock()
	defer f.mu.Unlock()
	f.last = q
	return f.payments, f.err
}

type fakePDF struct {
	log       *callLog
	mu        sync.Mutex
	generated int
	gate      chan struct{}
	lastKey   string
}

func (f *fakePDF) GeneratePDF(ctx context.Context, tenantID string, payload ReceiptPayload, key string) ([]string, error) {
	f.log.add("generate")
	if f.gate != nil {
		select {
		case <-f.gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.generated++
	f.lastKey = key
	return []string{"fs-new"}, nil
}

func (f *fakePDF) PrintReceipt(ctx context.Context, tenantID string, ids ...string) (map[string]string, error) {
	f.log.add("print")
	out := map[string]string{}
	for _, id := range ids {
		out[id] = "http://files/" + tenantID + "/" + id
	}
	return out, nil
}

type fakeTimeline struct {
	steps []models.WorkflowStep
	err   error
}

func (f fakeTimeline) History(ctx context.Context, tenantID, businessID string) ([]models.WorkflowStep, error) {
	return f.steps, f.err
}

type fakeSessions struct {
	exported map[string]models.Booking
}

func (f *fakeSessions) ExportBooking(ctx context.Context, sessionID string, b models.Booking) error {
	if f.exported == nil {
		f.exported = map[string]models.Booking{}
	}
	f.exported[sessionID] = b
	return nil
}
