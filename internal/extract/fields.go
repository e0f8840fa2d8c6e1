package extract

import (
	"fmt"
	"regexp"
	"strconv"
)

// matcher tries one pattern against the text and reports whether it produced
// a value. Field extraction is an ordered list of matchers with early exit,
// so rule order stays independently testable and reorderable.
type matcher func(text string) (string, bool)

// firstMatch runs matchers in order and returns the first successful value,
// or "" when none match.
func firstMatch(text string, matchers ...matcher) string {
	for _, m := range matchers {
		if v, ok := m(text); ok {
			return v
		}
	}
	return ""
}

var (
	labeledISODateRe = regexp.MustCompile(`(?i)\bdate\s*[:.]?\s*(\d{4}-\d{2}-\d{2})\b`)
	bareISODateRe    = regexp.MustCompile(`\b(\d{4}-\d{2}-\d{2})\b`)
	usSlashDateRe    = regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})/(\d{4})\b`)
	usDashDateRe     = regexp.MustCompile(`\b(\d{1,2})-(\d{1,2})-(\d{4})\b`)

	labeledNameRe  = regexp.MustCompile(`(?i)\bcustomer\s+name\s*[:.]?\s*([A-Za-z][A-Za-z ]{1,48})`)
	customerRe     = regexp.MustCompile(`(?i)\bcustomer\s*[:.]?\s*([A-Za-z][A-Za-z ]{1,48})`)
	bareNameRe     = regexp.MustCompile(`\b([A-Z][a-z]+ [A-Z][a-z]+)\b`)
	labeledPhoneRe = regexp.MustCompile(`(?i)\b(?:phone|mobile|contact|ph)\.?\s*(?:no\.?|number)?\s*[:.]?\s*(\d{10,12})\b`)
	barePhoneRe    = regexp.MustCompile(`\b(\d{10,12})\b`)
	labeledAddrRe  = regexp.MustCompile(`(?i)\baddress\s*[:.]?\s*(.+)`)
	bareAddrRe     = regexp.MustCompile(`\b(\d{1,5}\s+[A-Za-z][A-Za-z ,.]{2,60}?\b(?:India|USA|UK|Canada|Australia))\b`)
	labeledNotesRe = regexp.MustCompile(`(?i)\bnotes?\s*[:.]?\s*(.+)`)
	timestampRe    = regexp.MustCompile(`\b\d{1,2}:\d{2}\b`)

	// nameBoundaries end a name capture at the next known label.
	nameBoundaries = []string{"Phone", "Mobile", "Address", "GST"}
)

// extractDate returns the document date as ISO YYYY-MM-DD. Labeled ISO wins
// over bare ISO; US-style MM/DD/YYYY and MM-DD-YYYY forms are converted.
func extractDate(text string) string {
	return firstMatch(text,
		regexMatcher(labeledISODateRe),
		regexMatcher(bareISODateRe),
		usDateMatcher(usSlashDateRe),
		usDateMatcher(usDashDateRe),
	)
}

// regexMatcher adapts a single-capture-group pattern into a matcher.
func regexMatcher(re *regexp.Regexp) matcher {
	return func(text string) (string, bool) {
		m := re.FindStringSubmatch(text)
		if m == nil {
			return "", false
		}
		return m[1], true
	}
}

// usDateMatcher converts an MM/DD/YYYY or MM-DD-YYYY match into ISO form.
func usDateMatcher(re *regexp.Regexp) matcher {
	return func(text string) (string, bool) {
		m := re.FindStringSubmatch(text)
		if m == nil {
			return "", false
		}
		month, _ := strconv.Atoi(m[1])
		day, _ := strconv.Atoi(m[2])
		return fmt.Sprintf("%s-%02d-%02d", m[3], month, day), true
	}
}

func (e *Engine) extractPartyName(text string) string {
	cut := func(s string) string { return captureUntil(s, nameBoundaries) }
	return firstMatch(text,
		func(t string) (string, bool) {
			if m := labeledNameRe.FindStringSubmatch(t); m != nil {
				return cut(m[1]), true
			}
			return "", false
		},
		func(t string) (string, bool) {
			if m := customerRe.FindStringSubmatch(t); m != nil {
				return cut(m[1]), true
			}
			return "", false
		},
		regexMatcher(bareNameRe),
	)
}

func extractPhone(text string) string {
	return firstMatch(text,
		regexMatcher(labeledPhoneRe),
		regexMatcher(barePhoneRe),
	)
}

func (e *Engine) extractAddress(text string) string {
	return firstMatch(text,
		func(t string) (string, bool) {
			if m := labeledAddrRe.FindStringSubmatch(t); m != nil {
				return captureUntil(m[1], e.opts.AddressBoundaries), true
			}
			return "", false
		},
		regexMatcher(bareAddrRe),
	)
}

// extractNotes captures the labeled notes block, running to end of text or to
// the first stop word or timestamp left behind by the OCR capture app.
func (e *Engine) extractNotes(text string) string {
	m := labeledNotesRe.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	notes := captureUntil(m[1], e.opts.NotesBoundaries)
	if loc := timestampRe.FindStringIndex(notes); loc != nil {
		notes = cutAtIndex(notes, loc[0])
	}
	return notes
}

var (
	subtotalRe   = regexp.MustCompile(`(?i)\bsub\s*total\s*[:.]?\s*₹?\s*([0-9][0-9,]*(?:\.[0-9]{1,2})?)`)
	taxTotalRe   = regexp.MustCompile(`(?i)\b(?:total\s*tax|tax|gst)\s*:\s*₹?\s*([0-9][0-9,]*(?:\.[0-9]{1,2})?)`)
	grandTotalRe = regexp.MustCompile(`(?i)\btotal\s*[:.]?\s*₹?\s*([0-9][0-9,]*(?:\.[0-9]{1,2})?)`)
)

// matchAmount finds the first capture of re whose number is not a percentage
// (a trailing % means the match is a tax rate, not an amount).
func matchAmount(re *regexp.Regexp, text string) (float64, bool) {
	for _, loc := range re.FindAllStringSubmatchIndex(text, -1) {
		end := loc[3]
		if end < len(text) && text[end] == '%' {
			continue
		}
		return CoerceNumber(text[loc[2]:loc[3]]), true
	}
	return 0, false
}
