package util

import (
	"html"
	"strings"
)

// SanitizeInput trims surrounding whitespace and escapes HTML/script-like
// characters. Applied to free-text fields (display names) before storage.
func SanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return html.EscapeString(s)
}
