package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"billscan/internal/service"
)

// ExtractHandler handles document extraction endpoints.
type ExtractHandler struct {
	svc service.ExtractionService
}

// NewExtractHandler creates a new ExtractHandler.
func NewExtractHandler(svc service.ExtractionService) *ExtractHandler {
	return &ExtractHandler{svc: svc}
}

// ExtractRequest is the body for POST /api/v1/extract. ExistingItems carries
// previously captured item rows in whatever shape the form layer holds them;
// they merge into the extracted item list.
type ExtractRequest struct {
	Text          string           `json:"text"`
	ExistingItems []service.RawRow `json:"existing_items"`
}

// Extract handles POST /api/v1/extract. Empty text is not an error: the
// response is a complete record of defaults for the form layer to flag.
func (h *ExtractHandler) Extract(c *gin.Context) {
	var req ExtractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", "request body must be JSON with a text field")
		return
	}

	doc := h.svc.Extract(c.Request.Context(), req.Text, req.ExistingItems)
	RespondOK(c, doc)
}

// BatchRequest is the body for POST /api/v1/extract/batch.
type BatchRequest struct {
	Documents []service.BatchDocument `json:"documents"`
}

// ExtractBatch handles POST /api/v1/extract/batch.
func (h *ExtractHandler) ExtractBatch(c *gin.Context) {
	var req BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", "request body must be JSON with a documents array")
		return
	}

	results, err := h.svc.ExtractBatch(c.Request.Context(), req.Documents)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, results)
}
