package service

import (
	"encoding/json"
	"strings"

	"billscan/internal/domain"
	"billscan/internal/extract"
)

// RawRowKind discriminates the shapes item rows arrive in from upstream
// sources: positional value tuples, field maps, or nothing at all.
type RawRowKind int

const (
	RawRowEmpty RawRowKind = iota
	RawRowTuple
	RawRowFields
)

// RawRow is a tagged union over the heterogeneous item-row shapes the form
// layer resubmits: an array of values, an object of named fields, or an
// empty/null placeholder. Nested wrapping arrays ([[...]]) are unwrapped
// during decoding.
type RawRow struct {
	Kind   RawRowKind
	Tuple  []any
	Fields map[string]any
}

// UnmarshalJSON classifies the raw JSON into one of the three variants.
// Unrecognized shapes decode as Empty rather than failing the request.
func (r *RawRow) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		*r = RawRow{Kind: RawRowEmpty}
		return nil
	}

	switch trimmed[0] {
	case '[':
		var values []json.RawMessage
		if err := json.Unmarshal(data, &values); err != nil {
			return err
		}
		if len(values) == 0 {
			*r = RawRow{Kind: RawRowEmpty}
			return nil
		}
		// A single nested array is a wrapper; unwrap it.
		if len(values) == 1 && strings.HasPrefix(strings.TrimSpace(string(values[0])), "[") {
			return r.UnmarshalJSON(values[0])
		}
		tuple := make([]any, 0, len(values))
		for _, v := range values {
			var val any
			if err := json.Unmarshal(v, &val); err != nil {
				return err
			}
			tuple = append(tuple, val)
		}
		*r = RawRow{Kind: RawRowTuple, Tuple: tuple}
		return nil
	case '{':
		var fields map[string]any
		if err := json.Unmarshal(data, &fields); err != nil {
			return err
		}
		if len(fields) == 0 {
			*r = RawRow{Kind: RawRowEmpty}
			return nil
		}
		*r = RawRow{Kind: RawRowFields, Fields: fields}
		return nil
	default:
		*r = RawRow{Kind: RawRowEmpty}
		return nil
	}
}

// LineItem adapts the raw row into a domain.LineItem, one explicit adapter
// per variant. Rows that violate the item invariant are rejected.
func (r RawRow) LineItem() (domain.LineItem, bool) {
	switch r.Kind {
	case RawRowTuple:
		return tupleToItem(r.Tuple)
	case RawRowFields:
		return fieldsToItem(r.Fields)
	default:
		return domain.LineItem{}, false
	}
}

// tupleToItem reads a positional row: description, quantity, rate, then
// optionally tax percentage and amount.
func tupleToItem(values []any) (domain.LineItem, bool) {
	if len(values) < 3 {
		return domain.LineItem{}, false
	}
	item := domain.LineItem{
		Description: toText(values[0]),
		Quantity:    toNumber(values[1]),
		Rate:        toNumber(values[2]),
	}
	if len(values) > 3 {
		item.TaxPct = toNumber(values[3])
	}
	if len(values) > 4 {
		item.Amount = toNumber(values[4])
	}
	return finishItem(item)
}

// fieldsToItem reads a named-field row, accepting the key spellings seen
// across upstream sources.
func fieldsToItem(fields map[string]any) (domain.LineItem, bool) {
	item := domain.LineItem{
		Description: toText(firstField(fields, "description", "name", "item")),
		Quantity:    toNumber(firstField(fields, "quantity", "qty")),
		Rate:        toNumber(firstField(fields, "rate", "price", "unit_price")),
		TaxPct:      toNumber(firstField(fields, "tax_pct", "tax", "gst")),
		Amount:      toNumber(firstField(fields, "amount", "total")),
	}
	return finishItem(item)
}

func finishItem(item domain.LineItem) (domain.LineItem, bool) {
	item.Description = strings.TrimSpace(item.Description)
	if item.Quantity <= 0 || item.Rate <= 0 || len(item.Description) <= 2 {
		return domain.LineItem{}, false
	}
	if item.Amount == 0 {
		item.Amount = item.Quantity * item.Rate * (1 + item.TaxPct/100)
	}
	return item, true
}

func firstField(fields map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := fields[k]; ok {
			return v
		}
	}
	return nil
}

func toText(v any) string {
	s, _ := v.(string)
	return s
}

func toNumber(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case string:
		return extract.CoerceNumber(n)
	default:
		return 0
	}
}

// mergeItems keeps every freshly extracted item and appends adapted raw rows
// whose description is not already covered, so resubmitted form data fills
// gaps without overriding what the engine found.
func mergeItems(extracted []domain.LineItem, existing []RawRow) []domain.LineItem {
	seen := make(map[string]bool, len(extracted))
	for _, it := range extracted {
		seen[strings.ToLower(it.Description)] = true
	}

	merged := extracted
	for _, row := range existing {
		item, ok := row.LineItem()
		if !ok {
			continue
		}
		key := strings.ToLower(item.Description)
		if seen[key] {
			continue
		}
		seen[key] = true
		merged = append(merged, item)
	}
	return merged
}
