package services

import (
	"context"

	"mobiletoilet/internal/domain/models"
)

// BookingStore is the booking search + update pair.
type BookingStore interface {
	Search(ctx context.Context, f models.BookingSearch) ([]models.Booking, error)
	Update(ctx context.Context, b models.Booking) error
}

// PaymentSearcher is the receipt search.
type PaymentSearcher interface {
	Search(ctx context.Context, f models.ReceiptSearch) ([]models.Payment, error)
}

// TenantDirectory looks tenants up by code in cached metadata.
type TenantDirectory interface {
	Find(ctx context.Context, code string) (models.Tenant, bool, error)
}

// TimelineSource provides workflow history for a business id.
type TimelineSource interface {
	History(ctx context.Context, tenantID, businessID string) ([]models.WorkflowStep, error)
}

// SessionExporter stores the booking shown to a browser session.
type SessionExporter interface {
	ExportBooking(ctx context.Context, sessionID string, b models.Booking) error
}

// FileStore persists generated documents.
type FileStore interface {
	Save(ctx context.Context, f models.StoredFile) error
	Get(ctx context.Context, tenantID, id string) (models.StoredFile, error)
}

// Locker serializes work across service instances.
type Locker interface {
	Acquire(ctx context.Context, key string) (release func(), ok bool, err error)
}

// ReceiptPayload is what the PDF service renders a receipt from.
type ReceiptPayload struct {
	Payments []models.Payment `json:"Payments"`
}

// PDFService generates documents into the file store and resolves them to URLs.
type PDFService interface {
	GeneratePDF(ctx context.Context, tenantID string, payload ReceiptPayload, templateKey string) ([]string, error)
	PrintReceipt(ctx context.Context, tenantID string, fileStoreIDs ...string) (map[string]string, error)
}
