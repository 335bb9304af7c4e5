package services

import (
	"context"
	"net/url"
	"strings"

	"mobiletoilet/internal/domain"
	"mobiletoilet/internal/domain/models"
	"mobiletoilet/internal/i18n"
	"mobiletoilet/internal/utils"
)

// ReceiptRenderer turns a payload into a PDF and its file name.
type ReceiptRenderer func(ctx context.Context, payload ReceiptPayload) ([]byte, string, error)

// FilestorePDFService renders PDFs by template key, keeps them in the file
// store and resolves file ids to download URLs under BaseURL.
type FilestorePDFService struct {
	Files     FileStore
	Templates map[string]ReceiptRenderer
	BaseURL   string
	RequestID string
}

// NewFilestorePDFService registers the mobile toilet receipt template.
func NewFilestorePDFService(files FileStore, docs DocsService, t i18n.Translator, baseURL string) FilestorePDFService {
	return FilestorePDFService{
		Files: files,
		Templates: map[string]ReceiptRenderer{
			domain.ReceiptTemplateMobileToilet: func(ctx context.Context, payload ReceiptPayload) ([]byte, string, error) {
				return docs.RenderReceipt(ctx, payload, t)
			},
		},
		BaseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (s FilestorePDFService) GeneratePDF(ctx context.Context, tenantID string, payload ReceiptPayload, templateKey string) ([]string, error) {
	if strings.TrimSpace(tenantID) == "" {
		return nil, domain.ValidationError{Field: "tenantId", Msg: "tenant id is required"}
	}
	render, ok := s.Templates[templateKey]
	if !ok {
		return nil, domain.ValidationError{Field: "key", Msg: "unknown pdf template " + templateKey}
	}
	content, filename, err := render(ctx, payload)
	if err != nil {
		return nil, err
	}

	id := utils.NewID()
	err = s.Files.Save(ctx, models.StoredFile{
		ID:          id,
		TenantID:    tenantID,
		Module:      templateKey,
		FileName:    filename,
		ContentType: "application/pdf",
		Content:     content,
		CreatedAt:   utils.NowUTC(),
	})
	if err != nil {
		return nil, domain.UnavailableError{Dependency: "file store", Err: err}
	}
	utils.LogEvent(s.RequestID, "pdf", "generate", "template="+templateKey+" filestore_id="+id)
	return []string{id}, nil
}

// PrintReceipt maps each file id to its download URL. Blank ids are skipped.
func (s FilestorePDFService) PrintReceipt(ctx context.Context, tenantID string, fileStoreIDs ...string) (map[string]string, error) {
	out := make(map[string]string, len(fileStoreIDs))
	for _, id := range fileStoreIDs {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		out[id] = s.BaseURL + "/filestore/" + url.PathEscape(tenantID) + "/" + url.PathEscape(id)
	}
	return out, nil
}
