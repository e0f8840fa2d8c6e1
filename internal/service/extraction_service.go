package service

import (
	"context"
	"fmt"
	"log"

	"billscan/internal/domain"
	"billscan/internal/extract"
)

// BatchDocument is one text to extract within a batch request.
type BatchDocument struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// BatchResult pairs a batch document ID with its extraction result.
type BatchResult struct {
	ID       string                `json:"id"`
	Document domain.ParsedDocument `json:"document"`
}

// ExtractionService exposes the extraction engine to the HTTP layer.
type ExtractionService interface {
	// Extract parses one raw OCR text, merging any resubmitted item rows
	// into the result. It never fails; absent fields keep their defaults.
	Extract(ctx context.Context, text string, existing []RawRow) domain.ParsedDocument

	// ExtractBatch parses a batch of texts with per-document isolation: an
	// empty text still yields a default record, never an error.
	ExtractBatch(ctx context.Context, docs []BatchDocument) ([]BatchResult, error)
}

type extractionService struct {
	engine   *extract.Engine
	maxBatch int
}

// NewExtractionService creates an ExtractionService backed by the given
// engine. maxBatch bounds ExtractBatch request size; non-positive values
// default to 100.
func NewExtractionService(engine *extract.Engine, maxBatch int) ExtractionService {
	if maxBatch <= 0 {
		maxBatch = 100
	}
	return &extractionService{engine: engine, maxBatch: maxBatch}
}

func (s *extractionService) Extract(ctx context.Context, text string, existing []RawRow) domain.ParsedDocument {
	doc := s.engine.Extract(text)
	if len(existing) > 0 {
		doc.Items = mergeItems(doc.Items, existing)
	}
	return doc
}

func (s *extractionService) ExtractBatch(ctx context.Context, docs []BatchDocument) ([]BatchResult, error) {
	if len(docs) == 0 {
		return nil, domain.ErrEmptyBatch
	}
	if len(docs) > s.maxBatch {
		return nil, fmt.Errorf("%w: %d documents (max %d)", domain.ErrBatchTooLarge, len(docs), s.maxBatch)
	}

	results := make([]BatchResult, 0, len(docs))
	for i, d := range docs {
		id := d.ID
		if id == "" {
			id = fmt.Sprintf("doc-%d", i+1)
		}
		results = append(results, BatchResult{ID: id, Document: s.engine.Extract(d.Text)})
	}

	log.Printf("service.ExtractionService: batch extracted %d documents", len(results))
	return results, nil
}
