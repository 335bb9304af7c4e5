package services

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"mobiletoilet/internal/domain"
	"mobiletoilet/internal/domain/models"
	"mobiletoilet/internal/i18n"
	"mobiletoilet/internal/utils"

	"golang.org/x/sync/errgroup"
)

// DetailsRequest is what the route and the caller's session provide.
type DetailsRequest struct {
	TenantID           string
	AcknowledgementIDs []string
	SessionID          string
	Requester          domain.RequestContext
	Translator         i18n.Translator
}

func (r DetailsRequest) validate() error {
	if strings.TrimSpace(r.TenantID) == "" {
		return domain.ValidationError{Field: "tenantId", Msg: "tenant id is required"}
	}
	if len(r.AcknowledgementIDs) == 0 {
		return domain.ValidationError{Field: "acknowledgementIds", Msg: "at least one acknowledgement id is required"}
	}
	return nil
}

// DetailsService assembles the booking details page.
type DetailsService struct {
	Bookings   BookingStore
	Payments   PaymentSearcher
	Timeline   TimelineSource
	Sessions   SessionExporter
	LinkPrefix string
	RequestID  string
}

// Load runs the booking and receipt searches concurrently and derives the view.
// A failed booking search fails the request; a failed receipt search only
// hides the fee receipt option and raises a toast.
func (s DetailsService) Load(ctx context.Context, req DetailsRequest) (models.DetailsView, error) {
	if err := req.validate(); err != nil {
		return models.DetailsView{}, err
	}
	t := req.Translator
	if t == nil {
		t = i18n.TranslatorFunc(func(key string) string { return key })
	}

	var (
		bookings   []models.Booking
		payments   []models.Payment
		receiptErr error
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		list, err := s.Bookings.Search(gctx, models.BookingSearch{TenantID: req.TenantID, BookingNos: req.AcknowledgementIDs})
		if err != nil {
			return err
		}
		bookings = list
		return nil
	})
	g.Go(func() error {
		payments, receiptErr = s.Payments.Search(gctx, models.ReceiptSearch{
			TenantID:        req.TenantID,
			BusinessService: domain.BusinessServiceMobileToilet,
			ConsumerCodes:   req.AcknowledgementIDs,
			IsEmployee:      req.Requester.IsEmployee(),
		})
		return nil
	})
	if err := g.Wait(); err != nil {
		utils.LogError(s.RequestID, "details", "booking_search", err)
		return models.DetailsView{}, err
	}

	application := FirstBooking(bookings)
	view := models.DetailsView{
		Title:       t.T("MT_BOOKING_DETAILS"),
		TenantID:    req.TenantID,
		Application: application,
		Sections:    BuildSections(application, t),
		Payments:    payments,
		Timeline:    models.Timeline{BusinessID: application.BookingNo, UserType: domain.RoleCitizen, Steps: []models.WorkflowStep{}},
	}

	if receiptErr != nil {
		utils.LogError(s.RequestID, "details", "receipt_search", receiptErr)
		view.ReceiptLoading = true
		view.Payments = nil
		view.Toast = &models.Toast{Key: "error", Label: t.T("MT_RECEIPT_SEARCH_FAILED")}
	}
	view.DownloadOptions = BuildDownloadOptions(view.Payments, view.ReceiptLoading, t, s.hrefFor(req))

	if !application.IsZero() && s.Timeline != nil {
		steps, err := s.Timeline.History(ctx, application.TenantID, application.BookingNo)
		if err != nil {
			utils.LogError(s.RequestID, "details", "workflow_history", err)
			if view.Toast == nil {
				view.Toast = &models.Toast{Key: "error", Label: t.T("MT_TIMELINE_FAILED")}
			}
		} else {
			view.Timeline.Steps = steps
		}
	}

	if req.SessionID != "" && s.Sessions != nil {
		if err := s.Sessions.ExportBooking(ctx, req.SessionID, application); err != nil {
			utils.LogError(s.RequestID, "details", "session_export", err)
		}
	}

	utils.LogEvent(s.RequestID, "details", "load", "booking_no="+application.BookingNo+" payments="+strconv.Itoa(len(view.Payments)))
	return view, nil
}

// Application returns the first booking matching the request, or an empty record.
func (s DetailsService) Application(ctx context.Context, req DetailsRequest) (models.Booking, error) {
	if err := req.validate(); err != nil {
		return models.Booking{}, err
	}
	list, err := s.Bookings.Search(ctx, models.BookingSearch{TenantID: req.TenantID, BookingNos: req.AcknowledgementIDs})
	if err != nil {
		return models.Booking{}, err
	}
	return FirstBooking(list), nil
}

func (s DetailsService) hrefFor(req DetailsRequest) func(action string) string {
	prefix := strings.TrimRight(s.LinkPrefix, "/")
	if prefix == "" {
		prefix = "/api/mt"
	}
	ids := make([]string, 0, len(req.AcknowledgementIDs))
	for _, id := range req.AcknowledgementIDs {
		ids = append(ids, url.PathEscape(id))
	}
	base := prefix + "/" + url.PathEscape(req.TenantID) + "/bookings/" + strings.Join(ids, ",")
	return func(action string) string {
		return base + "/" + action
	}
}
