package services

import (
	"context"
	"time"

	"mobiletoilet/internal/domain"
	"mobiletoilet/internal/domain/models"
	"mobiletoilet/internal/utils"

	"golang.org/x/sync/singleflight"
)

// ReceiptService resolves the fee receipt of a booking, generating it on first use.
type ReceiptService struct {
	Bookings  BookingStore
	Payments  PaymentSearcher
	PDF       PDFService
	Locker    Locker
	Flight    *singleflight.Group
	RequestID string
	Now       func() time.Time

	// cross-instance wait while another holder generates
	WaitAttempts int
	WaitInterval time.Duration

	// upper bound for one shared generation, detached from any single request
	GenerateTimeout time.Duration
}

// NewReceiptService wires a service with its own in-process de-duplication group.
func NewReceiptService(bookings BookingStore, payments PaymentSearcher, pdf PDFService, locker Locker) ReceiptService {
	return ReceiptService{
		Bookings:        bookings,
		Payments:        payments,
		PDF:             pdf,
		Locker:          locker,
		Flight:          &singleflight.Group{},
		WaitAttempts:    10,
		WaitInterval:    300 * time.Millisecond,
		GenerateTimeout: 30 * time.Second,
	}
}

func (s ReceiptService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// DownloadReceipt returns the URL of the booking's fee receipt.
// A stored receipt file is only resolved. Otherwise the receipt is generated
// from the first payment, persisted onto the booking, the booking refetched,
// and the new file resolved. Concurrent calls for one booking share one generation.
func (s ReceiptService) DownloadReceipt(ctx context.Context, req DetailsRequest) (string, error) {
	if err := req.validate(); err != nil {
		return "", err
	}
	booking, err := s.application(ctx, req)
	if err != nil {
		return "", err
	}
	if booking.IsZero() {
		return "", domain.NotFoundError{Resource: "booking"}
	}

	if booking.PaymentReceiptFilestoreID != "" {
		return s.resolve(ctx, booking.TenantID, booking.PaymentReceiptFilestoreID)
	}

	payments, err := s.Payments.Search(ctx, models.ReceiptSearch{
		TenantID:        req.TenantID,
		BusinessService: domain.BusinessServiceMobileToilet,
		ConsumerCodes:   req.AcknowledgementIDs,
		IsEmployee:      req.Requester.IsEmployee(),
	})
	if err != nil {
		return "", err
	}
	if len(payments) == 0 {
		return "", domain.NotFoundError{Resource: "payment for " + booking.BookingNo}
	}
	payment := payments[0]

	fileStoreID, err := s.shared(ctx, booking.TenantID+"|"+booking.BookingNo, func(gctx context.Context) (string, error) {
		return s.generate(gctx, req, booking, payment)
	})
	if err != nil {
		return "", err
	}
	return s.resolve(ctx, payment.TenantID, fileStoreID)
}

// shared runs fn once per key across concurrent callers. fn gets a context that
// outlives the caller who started it, so a cancelled click does not fail the others.
// Each caller still returns as soon as its own ctx is done.
func (s ReceiptService) shared(ctx context.Context, key string, fn func(context.Context) (string, error)) (string, error) {
	timeout := s.GenerateTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	run := func() (any, error) {
		gctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
		defer cancel()
		return fn(gctx)
	}
	if s.Flight == nil {
		v, err := run()
		if err != nil {
			return "", err
		}
		return v.(string), nil
	}

	select {
	case res := <-s.Flight.DoChan(key, run):
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (s ReceiptService) generate(ctx context.Context, req DetailsRequest, booking models.Booking, payment models.Payment) (string, error) {
	if s.Locker != nil {
		release, ok, err := s.Locker.Acquire(ctx, "receipt:"+booking.TenantID+":"+booking.BookingNo)
		if err != nil {
			return "", domain.UnavailableError{Dependency: "lock", Err: err}
		}
		if !ok {
			return s.waitForReceipt(ctx, req)
		}
		defer release()

		// another instance may have finished between our read and the lock
		current, err := s.application(ctx, req)
		if err != nil {
			return "", err
		}
		if current.PaymentReceiptFilestoreID != "" {
			return current.PaymentReceiptFilestoreID, nil
		}
	}

	ids, err := s.PDF.GeneratePDF(ctx, payment.TenantID, ReceiptPayload{Payments: []models.Payment{payment}}, domain.ReceiptTemplateMobileToilet)
	if err != nil {
		utils.LogError(s.RequestID, "receipt", "generate_pdf", err)
		return "", err
	}
	if len(ids) == 0 || ids[0] == "" {
		return "", domain.InternalError{Msg: "pdf service returned no file"}
	}
	fileStoreID := ids[0]

	updated := booking
	updated.PaymentReceiptFilestoreID = fileStoreID
	updated.AuditDetails.LastModifiedBy = req.Requester.UserUUID
	updated.AuditDetails.LastModifiedTime = s.now().UnixMilli()
	if err := s.Bookings.Update(ctx, updated); err != nil {
		utils.LogError(s.RequestID, "receipt", "update_booking", err)
		return "", err
	}

	// refetch so later readers see the stored reference
	if refreshed, err := s.application(ctx, req); err != nil {
		utils.LogError(s.RequestID, "receipt", "refetch_booking", err)
	} else if refreshed.PaymentReceiptFilestoreID != "" && refreshed.PaymentReceiptFilestoreID != fileStoreID {
		fileStoreID = refreshed.PaymentReceiptFilestoreID
	}

	utils.LogEvent(s.RequestID, "receipt", "generate", "booking_no="+booking.BookingNo+" filestore_id="+fileStoreID)
	return fileStoreID, nil
}

func (s ReceiptService) waitForReceipt(ctx context.Context, req DetailsRequest) (string, error) {
	interval := s.WaitInterval
	if interval <= 0 {
		interval = 300 * time.Millisecond
	}
	for i := 0; i < s.WaitAttempts; i++ {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(interval):
		}
		current, err := s.application(ctx, req)
		if err != nil {
			return "", err
		}
		if current.PaymentReceiptFilestoreID != "" {
			return current.PaymentReceiptFilestoreID, nil
		}
	}
	return "", domain.ConflictError{Resource: "receipt", Msg: "generation in progress, retry shortly"}
}

func (s ReceiptService) application(ctx context.Context, req DetailsRequest) (models.Booking, error) {
	list, err := s.Bookings.Search(ctx, models.BookingSearch{TenantID: req.TenantID, BookingNos: req.AcknowledgementIDs})
	if err != nil {
		return models.Booking{}, err
	}
	return FirstBooking(list), nil
}

func (s ReceiptService) resolve(ctx context.Context, tenantID, fileStoreID string) (string, error) {
	urls, err := s.PDF.PrintReceipt(ctx, tenantID, fileStoreID)
	if err != nil {
		return "", err
	}
	u, ok := urls[fileStoreID]
	if !ok || u == "" {
		return "", domain.NotFoundError{Resource: "receipt file " + fileStoreID}
	}
	return u, nil
}
