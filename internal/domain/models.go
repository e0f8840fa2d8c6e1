package domain

// ParsedDocument is the structured record extracted from the raw OCR text of
// an invoice or purchase bill. Every field has a defined default: empty string
// for text fields, zero for numbers, empty slice for items. A ParsedDocument
// is always complete and best-effort; it never signals extraction failure.
type ParsedDocument struct {
	DocumentNumber string     `json:"document_number"`
	DocumentDate   string     `json:"document_date"`
	PartyName      string     `json:"party_name"`
	PartyPhone     string     `json:"party_phone"`
	PartyAddress   string     `json:"party_address"`
	Items          []LineItem `json:"items"`
	Subtotal       float64    `json:"subtotal"`
	TotalTax       float64    `json:"total_tax"`
	Total          float64    `json:"total"`
	Notes          string     `json:"notes"`
}

// LineItem is a single row of the document's item table.
// Invariant: an item only appears in ParsedDocument.Items when Quantity > 0,
// Rate > 0 and Description is non-trivial.
type LineItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Rate        float64 `json:"rate"`
	TaxPct      float64 `json:"tax_pct"`
	Amount      float64 `json:"amount"`
}
