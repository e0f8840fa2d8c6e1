package extract

import (
	"regexp"
	"strings"
)

var (
	multiSpaceRe = regexp.MustCompile(`\s{2,}`)
	// Characters outside the OCR allow-set are dropped. Dashes are kept on
	// purpose: vendor document numbers use them (SEL-00123).
	disallowedRe = regexp.MustCompile(`[^A-Za-z0-9 ,.\-:%₹]`)
)

// Normalize flattens raw OCR text into a single cleaned line: whitespace runs
// collapse to one space, newlines become spaces, and characters outside the
// allow-set are stripped. Empty input yields empty output.
func Normalize(raw string) string {
	s := multiSpaceRe.ReplaceAllString(raw, " ")
	s = strings.ReplaceAll(s, "\n", " ")
	s = disallowedRe.ReplaceAllString(s, "")
	s = multiSpaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
