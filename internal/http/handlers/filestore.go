package handlers

import (
	"net/http"
	"strings"

	"mobiletoilet/internal/services"

	"github.com/gin-gonic/gin"
)

// FileHandlers serves documents kept in the file store.
type FileHandlers struct {
	Files services.FileStore
}

// GetFile streams a stored file inline.
func (h FileHandlers) GetFile(c *gin.Context) {
	tenantID := strings.TrimSpace(c.Param("tenantId"))
	id := strings.TrimSpace(c.Param("fileStoreId"))
	if tenantID == "" || id == "" {
		respondError(c, http.StatusBadRequest, "invalid_file", "tenant id and file id are required", nil)
		return
	}

	f, err := h.Files.Get(c.Request.Context(), tenantID, id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	contentType := f.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Content-Disposition", `inline; filename="`+f.FileName+`"`)
	c.Header("Cache-Control", "private, max-age=3600")
	c.Data(http.StatusOK, contentType, f.Content)
}
