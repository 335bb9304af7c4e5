package handlers

import (
	"net/http"
	"strings"

	"mobiletoilet/internal/domain/models"
	"mobiletoilet/internal/http/middleware"
	"mobiletoilet/internal/i18n"
	"mobiletoilet/internal/services"
	"mobiletoilet/internal/utils"

	"github.com/gin-gonic/gin"
)

const sessionCookie = "mt_session"

// BookingHandlers serves the booking details page and its downloads.
type BookingHandlers struct {
	Details  services.DetailsService
	Receipts services.ReceiptService
	Docs     services.DocsService
	Catalog  *i18n.Catalog

	// PDFLocale is used for documents; core PDF fonts only cover latin scripts.
	PDFLocale string
}

func (h BookingHandlers) request(c *gin.Context) services.DetailsRequest {
	locale := h.Catalog.Match(utils.FirstNonEmpty(c.Query("locale"), c.GetHeader("Accept-Language")))
	sessionID := strings.TrimSpace(c.GetHeader("X-Session-ID"))
	if sessionID == "" {
		if v, err := c.Cookie(sessionCookie); err == nil {
			sessionID = strings.TrimSpace(v)
		}
	}
	return services.DetailsRequest{
		TenantID:           strings.TrimSpace(c.Param("tenantId")),
		AcknowledgementIDs: utils.SplitIDList(c.Param("acknowledgementIds")),
		SessionID:          sessionID,
		Requester:          middleware.GetRequestContext(c),
		Translator:         h.Catalog.For(locale),
	}
}

func (h BookingHandlers) load(c *gin.Context) (models.DetailsView, error) {
	svc := h.Details
	svc.RequestID = middleware.GetRequestID(c)
	return svc.Load(c.Request.Context(), h.request(c))
}

// GetBookingDetails returns the details view as JSON.
func (h BookingHandlers) GetBookingDetails(c *gin.Context) {
	view, err := h.load(c)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// GetBookingPage renders the citizen details page.
func (h BookingHandlers) GetBookingPage(c *gin.Context) {
	view, err := h.load(c)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.HTML(http.StatusOK, "details.html", view)
}

// GetAcknowledgementPDF streams the acknowledgement inline.
func (h BookingHandlers) GetAcknowledgementPDF(c *gin.Context) {
	req := h.request(c)
	req.SessionID = ""
	req.Translator = h.Catalog.For(h.pdfLocale())

	details := h.Details
	details.RequestID = middleware.GetRequestID(c)
	booking, err := details.Application(c.Request.Context(), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	docs := h.Docs
	docs.RequestID = middleware.GetRequestID(c)
	pdfBytes, filename, err := docs.GenerateAcknowledgement(c.Request.Context(), booking, req.Translator)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

// GetFeeReceipt redirects to the fee receipt, generating it on first use.
// ?format=json answers {"url": ...} instead.
func (h BookingHandlers) GetFeeReceipt(c *gin.Context) {
	req := h.request(c)

	svc := h.Receipts
	svc.RequestID = middleware.GetRequestID(c)
	u, err := svc.DownloadReceipt(c.Request.Context(), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if strings.EqualFold(c.Query("format"), "json") {
		c.JSON(http.StatusOK, gin.H{"url": u})
		return
	}
	c.Redirect(http.StatusSeeOther, u)
}

func (h BookingHandlers) pdfLocale() string {
	if h.PDFLocale != "" {
		return h.PDFLocale
	}
	return h.Catalog.Match("")
}
