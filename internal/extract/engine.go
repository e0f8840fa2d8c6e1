// Package extract turns raw, noisy OCR text from scanned invoices and
// purchase bills into a structured domain.ParsedDocument. It is a best-effort
// heuristic extractor: ordered pattern cascades per field, a three-tier
// waterfall for the item table, and a scoring pass for ambiguous document
// number candidates. A failed match never produces an error, only the field's
// default value.
package extract

import (
	"regexp"
	"strings"

	"billscan/internal/domain"
)

// Engine is the extraction pipeline. It is immutable after New and safe for
// concurrent use; every Extract call is a pure function of its input.
type Engine struct {
	opts        Options
	prefixRe    *regexp.Regexp
	fragmentRe  *regexp.Regexp
	catalog     []catalogMatcher
	artifactRes []*regexp.Regexp
}

// catalogMatcher holds the three anchored row-shape variants for one Tier-2
// catalog entry, ordered: GST label, bare percent, no tax.
type catalogMatcher struct {
	item     CatalogItem
	variants []*regexp.Regexp
}

// New compiles an Engine from the given options; zero-value fields fall back
// to the production defaults.
func New(opts Options) *Engine {
	opts = opts.withDefaults()
	prefix := regexp.QuoteMeta(opts.VendorPrefix)

	e := &Engine{
		opts:       opts,
		prefixRe:   regexp.MustCompile(`(?i)\b` + prefix + `[\s-]?(\d{3,6})\b`),
		fragmentRe: regexp.MustCompile(`(?i)` + prefix + `[^0-9]{0,3}(\d{3,6})`),
	}

	for _, item := range opts.Catalog {
		name := regexp.QuoteMeta(item.Name)
		e.catalog = append(e.catalog, catalogMatcher{
			item: item,
			variants: []*regexp.Regexp{
				regexp.MustCompile(`(?i)\b` + name + `\s+GST\s*(\d{1,2})\s*%\s+(\d+)\s+(\d+(?:\.\d+)?)\s+(\d+(?:\.\d+)?)`),
				regexp.MustCompile(`(?i)\b` + name + `\s+(\d{1,2})\s*%\s+(\d+)\s+(\d+(?:\.\d+)?)\s+(\d+(?:\.\d+)?)`),
				regexp.MustCompile(`(?i)\b` + name + `\s+(\d+)\s+(\d+(?:\.\d+)?)\s+(\d+(?:\.\d+)?)\b`),
			},
		})
	}

	for _, artifact := range opts.TrailingArtifacts {
		if artifact == "" {
			continue
		}
		e.artifactRes = append(e.artifactRes, regexp.MustCompile(`(?i)\s*\b`+regexp.QuoteMeta(artifact)+`\s*$`))
	}

	return e
}

// Extract converts raw OCR text into a complete ParsedDocument. The text is
// normalized once and every extractor runs against the shared normalized
// text; no extractor's result affects another's execution. Extract never
// fails: absent fields keep their defaults.
func (e *Engine) Extract(raw string) domain.ParsedDocument {
	doc := domain.ParsedDocument{Items: []domain.LineItem{}}

	text := Normalize(raw)
	if text == "" {
		return doc
	}

	doc.DocumentNumber = CanonicalizeDocumentNumber(e.extractDocumentNumber(text))
	doc.DocumentDate = extractDate(text)
	doc.PartyName = e.cleanField(e.extractPartyName(text))
	doc.PartyPhone = extractPhone(text)
	doc.PartyAddress = normalizeCommaSpacing(e.cleanField(e.extractAddress(text)))
	doc.Notes = e.cleanField(e.extractNotes(text))

	if items := e.extractItems(text); len(items) > 0 {
		doc.Items = items
	}

	doc.Subtotal, doc.TotalTax, doc.Total = e.extractTotals(text, doc.Items)
	return doc
}

// extractTotals reads labeled totals from the text and fills gaps by
// deriving from the item list: subtotal from quantity and rate, tax from the
// per-item rates, total from the two.
func (e *Engine) extractTotals(text string, items []domain.LineItem) (subtotal, tax, total float64) {
	subtotal, _ = matchAmount(subtotalRe, text)
	tax, _ = matchAmount(taxTotalRe, text)
	total, _ = matchAmount(grandTotalRe, text)

	if len(items) > 0 {
		var sumBase, sumTax float64
		for _, it := range items {
			sumBase += it.Quantity * it.Rate
			sumTax += it.Quantity * it.Rate * it.TaxPct / 100
		}
		if subtotal == 0 {
			subtotal = round2(sumBase)
		}
		if tax == 0 {
			tax = round2(sumTax)
		}
	}
	if total == 0 {
		total = round2(subtotal + tax)
	}
	return subtotal, tax, total
}

// Prefix returns the vendor document prefix the engine was compiled with.
func (e *Engine) Prefix() string {
	return strings.ToUpper(e.opts.VendorPrefix)
}
