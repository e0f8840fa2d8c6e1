package extract

import (
	"regexp"
	"strings"
)

var (
	labeledDocNumRe = regexp.MustCompile(`(?i)\b(?:document|invoice|bill|receipt)\s*(?:number|no\.?|#)\s*[:\-.]?\s*([A-Za-z0-9][A-Za-z0-9\-_/]{2,19})`)

	// Disambiguation exclusion filters: tokens that look like dates, phone
	// numbers, or bare years are never document number candidates.
	isoDateTokenRe    = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	usDateTokenRe     = regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{2,4}$`)
	dashedDateTokenRe = regexp.MustCompile(`^\d{1,2}-\d{1,2}-\d{2,4}$`)
	phoneTokenRe      = regexp.MustCompile(`^\d{10,12}$`)
	yearTokenRe       = regexp.MustCompile(`^(?:19|20)\d{2}$`)
	candidateTokenRe  = regexp.MustCompile(`^[A-Za-z0-9\-_/]+$`)
)

// docNumberKeywords are table-header words excluded from disambiguation.
var docNumberKeywords = map[string]bool{
	"INVOICE": true, "BILL": true, "RECEIPT": true, "TOTAL": true,
	"SUBTOTAL": true, "GST": true, "AMOUNT": true, "QUANTITY": true, "RATE": true,
}

// candidate is a provisional document number token under scoring. Candidates
// live only for the duration of one extraction call.
type candidate struct {
	token string
	score int
}

// extractDocumentNumber runs the document number cascade: vendor-prefixed
// form, labeled form, prefix fragment search, then scored disambiguation.
// First success wins; total absence yields "".
func (e *Engine) extractDocumentNumber(text string) string {
	return firstMatch(text,
		e.matchVendorPrefixed,
		matchLabeledDocNumber,
		e.matchPrefixFragment,
		e.matchScoredCandidate,
	)
}

// matchVendorPrefixed matches the vendor's prefixed numeric form and
// reconstructs it into canonical PREFIX-digits regardless of the separator
// found in the source.
func (e *Engine) matchVendorPrefixed(text string) (string, bool) {
	m := e.prefixRe.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return strings.ToUpper(e.opts.VendorPrefix) + "-" + m[1], true
}

func matchLabeledDocNumber(text string) (string, bool) {
	m := labeledDocNumRe.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// matchPrefixFragment scans for the vendor prefix anywhere in the text, not
// anchored to a label, tolerating up to a few OCR junk characters between
// prefix and digits.
func (e *Engine) matchPrefixFragment(text string) (string, bool) {
	m := e.fragmentRe.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return strings.ToUpper(e.opts.VendorPrefix) + "-" + m[1], true
}

// matchScoredCandidate enumerates alphanumeric tokens, filters out dates,
// phone numbers, bare years and header keywords, scores the survivors and
// picks the best. Ties break by scan order.
func (e *Engine) matchScoredCandidate(text string) (string, bool) {
	var best *candidate
	for _, raw := range strings.Fields(text) {
		token := strings.Trim(raw, ",.:%")
		if len(token) < 3 || !candidateTokenRe.MatchString(token) {
			continue
		}
		if isoDateTokenRe.MatchString(token) || usDateTokenRe.MatchString(token) || dashedDateTokenRe.MatchString(token) {
			continue
		}
		if phoneTokenRe.MatchString(token) || yearTokenRe.MatchString(token) {
			continue
		}
		if docNumberKeywords[strings.ToUpper(token)] {
			continue
		}
		score := scoreCandidate(token, *e.opts.Weights)
		if best == nil || score > best.score {
			best = &candidate{token: token, score: score}
		}
	}
	if best == nil {
		return "", false
	}
	return best.token, true
}

// scoreCandidate rates how much a token looks like a document number.
func scoreCandidate(token string, w ScoreWeights) int {
	var hasLetter, hasDigit bool
	for _, r := range token {
		switch {
		case r >= '0' && r <= '9':
			hasDigit = true
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
			hasLetter = true
		}
	}

	score := 0
	if hasLetter && hasDigit {
		score += w.LetterAndDigit
	}
	if strings.ContainsAny(token, "-_") {
		score += w.Separator
	}
	if n := len(token); n >= 5 && n <= 15 {
		score += w.PreferredLength
	} else if n > 20 {
		score += w.Overlong
	}
	if r := token[0]; (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
		score += w.LetterStart
	}
	return score
}
