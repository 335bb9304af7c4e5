package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"mobiletoilet/internal/domain"
	"mobiletoilet/internal/domain/models"
	"mobiletoilet/internal/i18n"
	"mobiletoilet/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// AcknowledgementData is the printable form of a booking.
type AcknowledgementData struct {
	Title      string
	TenantName string
	TenantInfo []string
	BookingNo  string
	Sections   []models.Section
	PrintedAt  time.Time
}

// DocsService renders the acknowledgement and fee receipt PDFs.
type DocsService struct {
	Tenants   TenantDirectory
	RequestID string
	Now       func() time.Time
}

func (s DocsService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// TenantFor returns the tenant whose code equals the booking's tenant id.
// A tenant missing from metadata yields a bare tenant, not an error.
func (s DocsService) TenantFor(ctx context.Context, tenantID string) (models.Tenant, error) {
	if s.Tenants == nil {
		return models.Tenant{Code: tenantID}, nil
	}
	t, ok, err := s.Tenants.Find(ctx, tenantID)
	if err != nil {
		return models.Tenant{}, domain.UnavailableError{Dependency: "tenant metadata", Err: err}
	}
	if !ok {
		return models.Tenant{Code: tenantID}, nil
	}
	return t, nil
}

// BuildAcknowledgementData derives printable data from the booking and its tenant.
func BuildAcknowledgementData(b models.Booking, tenant models.Tenant, t i18n.Translator, printedAt time.Time) AcknowledgementData {
	info := []string{}
	if tenant.City.Name != "" {
		info = append(info, tenant.City.Name)
	}
	if tenant.Address != "" {
		info = append(info, tenant.Address)
	}
	if tenant.ContactNo != "" {
		info = append(info, tenant.ContactNo)
	}
	if tenant.EmailID != "" {
		info = append(info, tenant.EmailID)
	}
	return AcknowledgementData{
		Title:      t.T("MT_ACKNOWLEDGEMENT_TITLE"),
		TenantName: utils.FirstNonEmpty(tenant.Name, tenant.City.Name, tenant.Code, b.TenantID),
		TenantInfo: info,
		BookingNo:  b.BookingNo,
		Sections:   BuildSections(b, t),
		PrintedAt:  printedAt,
	}
}

// GenerateAcknowledgement renders the acknowledgement PDF for b.
func (s DocsService) GenerateAcknowledgement(ctx context.Context, b models.Booking, t i18n.Translator) ([]byte, string, error) {
	if b.IsZero() {
		return nil, "", domain.NotFoundError{Resource: "booking"}
	}
	tenant, err := s.TenantFor(ctx, b.TenantID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "generate_acknowledgement", "booking_no="+b.BookingNo)
	return buildAcknowledgementPDF(BuildAcknowledgementData(b, tenant, t, s.now()))
}

// RenderReceipt renders the fee receipt of the first payment in the payload.
func (s DocsService) RenderReceipt(ctx context.Context, payload ReceiptPayload, t i18n.Translator) ([]byte, string, error) {
	if len(payload.Payments) == 0 {
		return nil, "", domain.ValidationError{Field: "Payments", Msg: "at least one payment is required"}
	}
	p := payload.Payments[0]
	tenant, err := s.TenantFor(ctx, p.TenantID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "generate_receipt", "payment_id="+p.ID)
	return buildReceiptPDF(p, tenant, t)
}

func buildAcknowledgementPDF(d AcknowledgementData) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(d.Title, true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 9, tr(d.TenantName), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	for _, line := range d.TenantInfo {
		pdf.CellFormat(0, 5, tr(line), "", 1, "C", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, tr(d.Title), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	for _, sec := range d.Sections {
		if sec.Title != "" {
			pdf.SetFont("Helvetica", "B", 12)
			pdf.Cell(0, 8, tr(sec.Title))
			pdf.Ln(8)
		}
		pdf.SetFont("Helvetica", "", 11)
		for _, r := range sec.Rows {
			pdf.CellFormat(70, 7, tr(r.Label), "", 0, "", false, 0, "")
			pdf.MultiCell(0, 7, tr(r.Value), "", "", false)
		}
		pdf.Ln(2)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.Cell(0, 6, "Printed on "+d.PrintedAt.Format("02/01/2006 03:04 PM"))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("MT_ACKNOWLEDGEMENT_%s.pdf", safeFilenamePart(d.BookingNo))
	return buf.Bytes(), filename, nil
}

func buildReceiptPDF(p models.Payment, tenant models.Tenant, t i18n.Translator) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	title := t.T("MT_RECEIPT_TITLE")
	pdf.SetTitle(title, true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 9, tr(utils.FirstNonEmpty(tenant.Name, tenant.Code, p.TenantID)), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, tr(title), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	receiptNo, consumerCode := "", ""
	var receiptDate int64
	if len(p.PaymentDetails) > 0 {
		receiptNo = p.PaymentDetails[0].ReceiptNumber
		consumerCode = p.PaymentDetails[0].ConsumerCode
		receiptDate = p.PaymentDetails[0].ReceiptDate
	}
	na := t.T(notAvailableKey)
	lines := [][2]string{
		{t.T("MT_RECEIPT_NO"), safe(receiptNo, na)},
		{t.T("MT_RECEIPT_DATE"), safe(formatMillis(receiptDate), na)},
		{t.T("MT_BOOKING_NO"), safe(consumerCode, na)},
		{t.T("MT_PAYER_NAME"), safe(p.PayerName, na)},
		{t.T("MT_MOBILE_NUMBER"), safe(p.MobileNumber, na)},
		{t.T("MT_PAYMENT_MODE"), safe(p.PaymentMode, na)},
		{t.T("MT_TRANSACTION_NO"), safe(p.TransactionNumber, na)},
		{t.T("MT_AMOUNT_PAID"), formatAmount(p.TotalAmountPaid)},
	}
	pdf.SetFont("Helvetica", "", 12)
	for _, l := range lines {
		pdf.CellFormat(70, 8, tr(l[0]), "", 0, "", false, 0, "")
		pdf.CellFormat(0, 8, tr(l[1]), "", 1, "", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("MT_RECEIPT_%s.pdf", safeFilenamePart(utils.FirstNonEmpty(receiptNo, p.ID)))
	return buf.Bytes(), filename, nil
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}

func formatMillis(ms int64) string {
	if ms <= 0 {
		return ""
	}
	return time.UnixMilli(ms).In(time.Local).Format("02/01/2006")
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "NA"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_")
	s = replacer.Replace(s)
	if r := []rune(s); len(r) > 40 {
		s = string(r[:40])
	}
	return s
}

// formatAmount prints rupees with Indian digit grouping, e.g. Rs. 1,25,000.00.
func formatAmount(v float64) string {
	if v <= 0 {
		return "Rs. 0.00"
	}
	s := fmt.Sprintf("%.2f", v)
	intPart, frac := s[:len(s)-3], s[len(s)-3:]
	if len(intPart) <= 3 {
		return "Rs. " + intPart + frac
	}
	head, tail := intPart[:len(intPart)-3], intPart[len(intPart)-3:]
	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}
	return "Rs. " + strings.Join(groups, ",") + "," + tail + frac
}
