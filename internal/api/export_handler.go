package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"ngx/coaching/internal/export"
	"ngx/coaching/internal/service"
)

type ExportRequest struct {
	Formats []string `json:"formats" binding:"required,min=1"`
}

// bindFormats reads an ExportRequest and parses its formats, dropping
// duplicates.
func bindFormats(c *gin.Context, logger *slog.Logger) ([]export.Format, bool) {
	var req ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return nil, false
	}
	formats, err := export.ParseFormats(req.Formats)
	if err != nil {
		respondError(c, logger, err)
		return nil, false
	}
	return formats, true
}

// ExportHandler hands out fresh download links for stored exports.
type ExportHandler struct {
	exportService service.ExportService
	logger        *slog.Logger
}

func NewExportHandler(exportService service.ExportService, logger *slog.Logger) *ExportHandler {
	return &ExportHandler{exportService: exportService, logger: logger}
}

// Download godoc
// @Summary Get a presigned download URL for an export
// @Tags Exports
// @Produce json
// @Security BearerAuth
// @Success 200 {object} gin.H "url"
// @Failure 404 {object} gin.H "Export not found"
// @Router /exports/{id}/download [get]
func (h *ExportHandler) Download(c *gin.Context) {
	trainerID, ok := currentUserID(c)
	if !ok {
		return
	}
	exportID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}
	url, err := h.exportService.DownloadURL(c.Request.Context(), trainerID, exportID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}
