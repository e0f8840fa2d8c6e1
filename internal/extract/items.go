package extract

import (
	"fmt"
	"regexp"
	"strings"

	"billscan/internal/domain"
)

// Tier-1 row shapes, tried in order of decreasing structure: with a GST
// label, with a bare percent, without tax. Later shapes skip text spans
// already consumed by earlier ones. The taxless plain shape demands a
// decimal amount: an integer-amount row carries no tax information at all,
// so it is routed to the catalog tier, which knows the right rate, or to
// the generic tier with the default rate.
var (
	rowShapeGST   = regexp.MustCompile(`(?i)([A-Za-z][A-Za-z ]{1,40}?)\s+GST\s*(\d{1,2})\s*%\s+(\d+)\s+(\d+(?:\.\d+)?)\s+(\d+(?:\.\d+)?)`)
	rowShapePct   = regexp.MustCompile(`(?i)([A-Za-z][A-Za-z ]{1,40}?)\s+(\d{1,2})\s*%\s+(\d+)\s+(\d+(?:\.\d+)?)\s+(\d+(?:\.\d+)?)`)
	rowShapePlain = regexp.MustCompile(`([A-Za-z][A-Za-z ]{1,40}?)\s+(\d+)\s+(\d+(?:\.\d+)?)\s+(\d+\.\d{1,2})\b`)

	// Tier-3 generic qty/rate/amount triple. The quantity is capped at four
	// digits so long bare digit runs (phone numbers, pincodes) never lead a
	// triple.
	genericTripleRe = regexp.MustCompile(`\b(\d{1,4})\s+(\d+(?:\.\d+)?)\s+(\d+(?:\.\d{1,2})?)\b`)

	descStripRe = regexp.MustCompile(`[^A-Za-z0-9 ]+`)
)

// itemKeywords are table header/footer words that disqualify a captured
// description.
var itemKeywords = map[string]bool{
	"INVOICE": true, "DESCRIPTION": true, "QUANTITY": true, "RATE": true,
	"AMOUNT": true, "NOTES": true, "THANK": true, "GST": true,
	"SUBTOTAL": true, "TOTAL": true, "CALCULATIONS": true, "ITEM": true,
}

// extractItems runs the three-tier waterfall: structured table rows, the
// known-item catalog, then generic numeric triples. Looser tiers run only
// when every stricter tier found nothing.
func (e *Engine) extractItems(text string) []domain.LineItem {
	if items := e.scanTableRows(text); len(items) > 0 {
		return items
	}
	if items := e.scanCatalogRows(text); len(items) > 0 {
		return items
	}
	return e.scanGenericTriples(text)
}

// span is a matched [start, end) interval used to suppress overlapping
// matches across row shapes.
type span struct{ start, end int }

func overlaps(spans []span, start, end int) bool {
	for _, s := range spans {
		if start < s.end && end > s.start {
			return true
		}
	}
	return false
}

// scanTableRows is Tier 1: all non-overlapping matches of the three row
// shapes, subject to the item quality checks.
func (e *Engine) scanTableRows(text string) []domain.LineItem {
	var items []domain.LineItem
	var taken []span

	type shape struct {
		re     *regexp.Regexp
		hasTax bool
	}
	shapes := []shape{
		{rowShapeGST, true},
		{rowShapePct, true},
		{rowShapePlain, false},
	}

	for _, sh := range shapes {
		for _, loc := range sh.re.FindAllStringSubmatchIndex(text, -1) {
			if overlaps(taken, loc[0], loc[1]) {
				continue
			}
			groups := groupValues(text, loc)

			desc := cleanDescription(groups[0])
			var taxPct, qty, rate, amount float64
			if sh.hasTax {
				taxPct = CoerceNumber(groups[1])
				qty = CoerceNumber(groups[2])
				rate = CoerceNumber(groups[3])
				amount = CoerceNumber(groups[4])
			} else {
				taxPct = 0
				qty = CoerceNumber(groups[1])
				rate = CoerceNumber(groups[2])
				amount = CoerceNumber(groups[3])
			}

			item, ok := buildItem(desc, qty, rate, taxPct, amount)
			if !ok {
				continue
			}
			items = append(items, item)
			taken = append(taken, span{loc[0], loc[1]})
		}
	}
	return items
}

// scanCatalogRows is Tier 2: for each known catalog item, try the three row
// shape variants anchored to that name; first variant to match wins.
func (e *Engine) scanCatalogRows(text string) []domain.LineItem {
	var items []domain.LineItem
	for _, cm := range e.catalog {
		for vi, re := range cm.variants {
			m := re.FindStringSubmatch(text)
			if m == nil {
				continue
			}

			var taxPct, qty, rate, amount float64
			if vi < 2 {
				// Variants with a captured tax percentage.
				taxPct = CoerceNumber(m[1])
				qty = CoerceNumber(m[2])
				rate = CoerceNumber(m[3])
				amount = CoerceNumber(m[4])
			} else {
				taxPct = cm.item.TaxPct
				qty = CoerceNumber(m[1])
				rate = CoerceNumber(m[2])
				amount = CoerceNumber(m[3])
			}

			item, ok := buildItem(cm.item.Name, qty, rate, taxPct, amount)
			if !ok {
				continue
			}
			items = append(items, item)
			break
		}
	}
	return items
}

// scanGenericTriples is Tier 3: bare qty/rate/amount numeric triples with
// synthesized descriptions, capped to keep pathological inputs bounded.
func (e *Engine) scanGenericTriples(text string) []domain.LineItem {
	var items []domain.LineItem
	for _, m := range genericTripleRe.FindAllStringSubmatch(text, -1) {
		if len(items) >= e.opts.GenericItemCap {
			break
		}
		qty := CoerceNumber(m[1])
		rate := CoerceNumber(m[2])
		amount := CoerceNumber(m[3])

		item, ok := buildItem(fmt.Sprintf("Item %d", len(items)+1), qty, rate, *e.opts.DefaultTaxPct, amount)
		if !ok {
			continue
		}
		items = append(items, item)
	}
	return items
}

// buildItem applies the item invariant: quantity and rate positive,
// description non-trivial and not a header keyword. A zero amount is derived
// from quantity, rate and tax.
func buildItem(desc string, qty, rate, taxPct, amount float64) (domain.LineItem, bool) {
	if qty <= 0 || rate <= 0 || len(desc) <= 2 {
		return domain.LineItem{}, false
	}
	if itemKeywords[strings.ToUpper(desc)] {
		return domain.LineItem{}, false
	}
	if amount == 0 {
		amount = round2(qty * rate * (1 + taxPct/100))
	}
	return domain.LineItem{
		Description: desc,
		Quantity:    qty,
		Rate:        rate,
		TaxPct:      taxPct,
		Amount:      amount,
	}, true
}

// cleanDescription strips non-alphanumeric characters and collapses
// whitespace in a captured row description.
func cleanDescription(s string) string {
	s = descStripRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(multiSpaceRe.ReplaceAllString(s, " "))
}

// groupValues extracts the capture group strings from a submatch index slice.
func groupValues(text string, loc []int) []string {
	groups := make([]string, 0, len(loc)/2-1)
	for i := 2; i < len(loc); i += 2 {
		if loc[i] < 0 {
			groups = append(groups, "")
			continue
		}
		groups = append(groups, text[loc[i]:loc[i+1]])
	}
	return groups
}
