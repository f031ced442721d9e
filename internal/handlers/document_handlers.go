package handlers

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/tesseract-hub/property-service/internal/services"
)

// MaxPayloadSize bounds uploaded document payloads
const MaxPayloadSize = 20 << 20

// DocumentHandlers serves raw document payloads
type DocumentHandlers struct {
	service *services.DocumentService
	logger  *logrus.Logger
}

// NewDocumentHandlers creates a new document handlers instance
func NewDocumentHandlers(service *services.DocumentService, logger *logrus.Logger) *DocumentHandlers {
	return &DocumentHandlers{
		service: service,
		logger:  logger,
	}
}

// UploadPayload stores the multipart "file" field as the document payload
// POST /api/v1/documents/:id/payload
func (h *DocumentHandlers) UploadPayload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		badRequest(c, "file is required")
		return
	}
	if fileHeader.Size > MaxPayloadSize {
		badRequest(c, fmt.Sprintf("file exceeds %d bytes", MaxPayloadSize))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, h.logger, err, "Failed to read upload")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, MaxPayloadSize))
	if err != nil {
		respondError(c, h.logger, err, "Failed to read upload")
		return
	}

	doc, err := h.service.UploadPayload(c.Request.Context(), c.Param("id"), fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"), data)
	if err != nil {
		respondError(c, h.logger, err, "Failed to store document payload")
		return
	}
	respond(c, http.StatusOK, doc)
}

// GetPayload downloads the document payload
// GET /api/v1/documents/:id/payload
func (h *DocumentHandlers) GetPayload(c *gin.Context) {
	doc, data, err := h.service.GetPayload(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err, "Failed to load document payload")
		return
	}

	contentType := doc.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", doc.Name))
	c.Data(http.StatusOK, contentType, data)
}
