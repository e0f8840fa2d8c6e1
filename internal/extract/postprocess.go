package extract

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	currencyReplacer = strings.NewReplacer("₹", "", "$", "", ",", "", " ", "")
	commaSpacingRe   = regexp.MustCompile(`\s*,\s*`)
	docNumStripRe    = regexp.MustCompile(`[^A-Za-z0-9\-_/]+`)
)

// CoerceNumber parses a captured numeric string, tolerating currency symbols
// and thousands separators. Malformed input defaults to 0; coercion of an
// already-clean number is idempotent.
func CoerceNumber(s string) float64 {
	s = strings.TrimSpace(currencyReplacer.Replace(s))
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

// CanonicalizeDocumentNumber re-strips a document number to its allowed
// character set and trims stray separators from the ends. Short results are
// retained as-is; the caller decides whether they are worth flagging.
func CanonicalizeDocumentNumber(s string) string {
	s = docNumStripRe.ReplaceAllString(s, "")
	return strings.Trim(s, "-_/")
}

// cleanField trims known OCR trailing artifacts from a captured free-text
// field and collapses internal whitespace. Artifacts are removed repeatedly
// so stacked suffixes ("... Share Lens") fully disappear.
func (e *Engine) cleanField(s string) string {
	s = strings.TrimSpace(multiSpaceRe.ReplaceAllString(s, " "))
	for changed := true; changed; {
		changed = false
		for _, re := range e.artifactRes {
			trimmed := re.ReplaceAllString(s, "")
			if trimmed != s {
				s = trimmed
				changed = true
			}
		}
	}
	return strings.TrimSpace(s)
}

// normalizeCommaSpacing rewrites comma runs in addresses to a single
// ", " separator.
func normalizeCommaSpacing(s string) string {
	s = commaSpacingRe.ReplaceAllString(s, ", ")
	return strings.Trim(s, ", ")
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
