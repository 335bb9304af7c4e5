package services

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"mobiletoilet/internal/domain"
	"mobiletoilet/internal/domain/models"
)

func receiptRequest(t *testing.T) DetailsRequest {
	t.Helper()
	return DetailsRequest{
		TenantID:           "pg.citya",
		AcknowledgementIDs: []string{"MT-001"},
		Requester:          domain.RequestContext{UserUUID: "u-1", Role: domain.RoleCitizen},
		Translator:         testTranslator(t),
	}
}

func TestDownloadReceiptExistingFileOnlyResolves(t *testing.T) {
	log := &callLog{}
	pdf := &fakePDF{log: log}
	svc := NewReceiptService(
		&fakeBookings{log: log, bookings: []models.Booking{{BookingNo: "MT-001", TenantID: "pg.citya", PaymentReceiptFilestoreID: "fs-old"}}},
		&fakePayments{log: log, payments: []models.Payment{{ID: "p-1", TenantID: "pg.citya"}}},
		pdf,
		nil,
	)

	u, err := svc.DownloadReceipt(context.Background(), receiptRequest(t))
	if err != nil {
		t.Fatalf("DownloadReceipt returned error: %v", err)
	}
	if u != "http://files/pg.citya/fs-old" {
		t.Fatalf("unexpected url %q", u)
	}
	if want := []string{"search", "print"}; !reflect.DeepEqual(log.list(), want) {
		t.Fatalf("calls = %v, want %v", log.list(), want)
	}
}

func TestDownloadReceiptGeneratesInOrder(t *testing.T) {
	log := &callLog{}
	bookings := &fakeBookings{log: log, bookings: []models.Booking{{BookingNo: "MT-001", TenantID: "pg.citya", BookingStatus: "BOOKED"}}}
	pdf := &fakePDF{log: log}
	svc := NewReceiptService(bookings, &fakePayments{log: log, payments: []models.Payment{{ID: "p-1", TenantID: "pg.citya"}}}, pdf, nil)
	svc.Now = func() time.Time { return time.UnixMilli(1700000000000) }

	u, err := svc.DownloadReceipt(context.Background(), receiptRequest(t))
	if err != nil {
		t.Fatalf("DownloadReceipt returned error: %v", err)
	}
	if u != "http://files/pg.citya/fs-new" {
		t.Fatalf("unexpected url %q", u)
	}
	want := []string{"search", "receipt_search", "generate", "update", "search", "print"}
	if !reflect.DeepEqual(log.list(), want) {
		t.Fatalf("calls = %v, want %v", log.list(), want)
	}
	if pdf.lastKey != domain.ReceiptTemplateMobileToilet {
		t.Fatalf("unexpected template %q", pdf.lastKey)
	}
	upd := bookings.updates[0]
	if upd.PaymentReceiptFilestoreID != "fs-new" || upd.AuditDetails.LastModifiedBy != "u-1" || upd.AuditDetails.LastModifiedTime != 1700000000000 {
		t.Fatalf("unexpected update %+v", upd)
	}
	if upd.BookingStatus != "BOOKED" {
		t.Fatalf("update must carry the rest of the booking, got %+v", upd)
	}
}

func TestDownloadReceiptWithoutPayments(t *testing.T) {
	log := &callLog{}
	svc := NewReceiptService(
		&fakeBookings{log: log, bookings: []models.Booking{{BookingNo: "MT-001", TenantID: "pg.citya"}}},
		&fakePayments{log: log},
		&fakePDF{log: log},
		nil,
	)
	if _, err := svc.DownloadReceipt(context.Background(), receiptRequest(t)); !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestDownloadReceiptUnknownBooking(t *testing.T) {
	log := &callLog{}
	svc := NewReceiptService(&fakeBookings{log: log}, &fakePayments{log: log}, &fakePDF{log: log}, nil)
	if _, err := svc.DownloadReceipt(context.Background(), receiptRequest(t)); !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestDownloadReceiptConcurrentClicksGenerateOnce(t *testing.T) {
	log := &callLog{}
	gate := make(chan struct{})
	pdf := &fakePDF{log: log, gate: gate}
	svc := NewReceiptService(
		&fakeBookings{log: log, bookings: []models.Booking{{BookingNo: "MT-001", TenantID: "pg.citya"}}},
		&fakePayments{log: log, payments: []models.Payment{{ID: "p-1", TenantID: "pg.citya"}}},
		pdf,
		nil,
	)

	req := receiptRequest(t)
	const clicks = 5
	var wg sync.WaitGroup
	urls := make([]string, clicks)
	errs := make([]error, clicks)
	for i := 0; i < clicks; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			urls[i], errs[i] = svc.DownloadReceipt(context.Background(), req)
		}(i)
	}
	// let every click reach the shared generation before it completes
	time.Sleep(100 * time.Millisecond)
	close(gate)
	wg.Wait()

	for i := range urls {
		if errs[i] != nil || urls[i] != "http://files/pg.citya/fs-new" {
			t.Fatalf("click %d: url=%q err=%v", i, urls[i], errs[i])
		}
	}
	if pdf.generated != 1 {
		t.Fatalf("expected one generation, got %d", pdf.generated)
	}
}

func TestDownloadReceiptCancelledClickDoesNotFailOthers(t *testing.T) {
	log := &callLog{}
	gate := make(chan struct{})
	bookings := &fakeBookings{log: log, bookings: []models.Booking{{BookingNo: "MT-001", TenantID: "pg.citya"}}}
	pdf := &fakePDF{log: log, gate: gate}
	svc := NewReceiptService(bookings, &fakePayments{log: log, payments: []models.Payment{{ID: "p-1", TenantID: "pg.citya"}}}, pdf, nil)
	req := receiptRequest(t)

	firstCtx, cancelFirst := context.WithCancel(context.Background())
	defer cancelFirst()
	firstErr := make(chan error, 1)
	go func() {
		_, err := svc.DownloadReceipt(firstCtx, req)
		firstErr <- err
	}()
	if !log.waitFor("generate", 1) {
		t.Fatalf("first click never started generating")
	}

	type result struct {
		url string
		err error
	}
	second := make(chan result, 1)
	go func() {
		u, err := svc.DownloadReceipt(context.Background(), req)
		second <- result{u, err}
	}()
	if !log.waitFor("receipt_search", 2) {
		t.Fatalf("second click never reached the receipt search")
	}
	// let the second click join the running generation
	time.Sleep(50 * time.Millisecond)

	cancelFirst()
	if err := <-firstErr; !errors.Is(err, context.Canceled) {
		t.Fatalf("first click: expected context.Canceled, got %v", err)
	}

	close(gate)
	res := <-second
	if res.err != nil || res.url != "http://files/pg.citya/fs-new" {
		t.Fatalf("second click: url=%q err=%v", res.url, res.err)
	}
	if pdf.generated != 1 {
		t.Fatalf("expected one generation, got %d", pdf.generated)
	}
	bookings.mu.Lock()
	defer bookings.mu.Unlock()
	if len(bookings.updates) != 1 || bookings.updates[0].PaymentReceiptFilestoreID != "fs-new" {
		t.Fatalf("generation must finish after the first click left, updates=%+v", bookings.updates)
	}
}

type busyLocker struct{}

func (busyLocker) Acquire(ctx context.Context, key string) (func(), bool, error) {
	return func() {}, false, nil
}

func TestDownloadReceiptWaitsForOtherInstance(t *testing.T) {
	log := &callLog{}
	bookings := &fakeBookings{log: log, bookings: []models.Booking{{BookingNo: "MT-001", TenantID: "pg.citya"}}}
	pdf := &fakePDF{log: log}
	svc := NewReceiptService(bookings, &fakePayments{log: log, payments: []models.Payment{{ID: "p-1", TenantID: "pg.citya"}}}, pdf, busyLocker{})
	svc.WaitInterval = 10 * time.Millisecond
	svc.WaitAttempts = 3

	go func() {
		time.Sleep(5 * time.Millisecond)
		bookings.mu.Lock()
		bookings.bookings[0].PaymentReceiptFilestoreID = "fs-other"
		bookings.mu.Unlock()
	}()

	u, err := svc.DownloadReceipt(context.Background(), receiptRequest(t))
	if err != nil {
		t.Fatalf("DownloadReceipt returned error: %v", err)
	}
	if u != "http://files/pg.citya/fs-other" {
		t.Fatalf("unexpected url %q", u)
	}
	if pdf.generated != 0 {
		t.Fatalf("losing instance must not generate, got %d", pdf.generated)
	}
}

func TestDownloadReceiptGivesUpWhileOtherInstanceBusy(t *testing.T) {
	log := &callLog{}
	svc := NewReceiptService(
		&fakeBookings{log: log, bookings: []models.Booking{{BookingNo: "MT-001", TenantID: "pg.citya"}}},
		&fakePayments{log: log, payments: []models.Payment{{ID: "p-1", TenantID: "pg.citya"}}},
		&fakePDF{log: log},
		busyLocker{},
	)
	svc.WaitInterval = time.Millisecond
	svc.WaitAttempts = 2

	if _, err := svc.DownloadReceipt(context.Background(), receiptRequest(t)); !domain.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
}
