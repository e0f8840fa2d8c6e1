package handler

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"

	"billscan/internal/domain"
	"billscan/internal/export"
	"billscan/internal/service"
)

// ExportHandler handles batch extract-and-download endpoints.
type ExportHandler struct {
	svc service.ExtractionService
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(svc service.ExtractionService) *ExportHandler {
	return &ExportHandler{svc: svc}
}

// Export handles POST /api/v1/export?format=csv|xlsx: extracts the batch and
// streams the line items back as a spreadsheet download.
func (h *ExportHandler) Export(c *gin.Context) {
	var req BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", "request body must be JSON with a documents array")
		return
	}

	format := c.DefaultQuery("format", "csv")
	if format != "csv" && format != "xlsx" {
		HandleError(c, domain.ErrUnsupportedExportFormat)
		return
	}

	results, err := h.svc.ExtractBatch(c.Request.Context(), req.Documents)
	if err != nil {
		HandleError(c, err)
		return
	}

	entries := make([]export.Entry, 0, len(results))
	for _, r := range results {
		entries = append(entries, export.Entry{ID: r.ID, Document: r.Document})
	}

	var buf bytes.Buffer
	switch format {
	case "csv":
		buf.Write(export.BOM)
		w := export.NewWriter(&buf)
		if err := w.WriteHeader(); err != nil {
			HandleError(c, err)
			return
		}
		if err := w.WriteEntries(entries); err != nil {
			HandleError(c, err)
			return
		}
		w.Flush()
		if err := w.Error(); err != nil {
			HandleError(c, err)
			return
		}
		c.Header("Content-Disposition", "attachment; filename="+export.BuildFilename("extractions", "csv"))
		c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
	case "xlsx":
		if err := export.WriteXLSX(&buf, entries); err != nil {
			HandleError(c, err)
			return
		}
		c.Header("Content-Disposition", "attachment; filename="+export.BuildFilename("extractions", "xlsx"))
		c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
	}
}
