package extract

import "strings"

// captureUntil truncates s at the earliest case-insensitive occurrence of any
// boundary token, so free-text captures (address, notes) stop at the next
// known label instead of swallowing the rest of the document.
func captureUntil(s string, boundaries []string) string {
	cut := len(s)
	lower := strings.ToLower(s)
	for _, b := range boundaries {
		if b == "" {
			continue
		}
		if i := strings.Index(lower, strings.ToLower(b)); i >= 0 && i < cut {
			cut = i
		}
	}
	return strings.TrimSpace(s[:cut])
}

// cutAtIndex truncates s at idx when idx is a valid position, otherwise
// returns s unchanged.
func cutAtIndex(s string, idx int) string {
	if idx >= 0 && idx < len(s) {
		return strings.TrimSpace(s[:idx])
	}
	return strings.TrimSpace(s)
}
