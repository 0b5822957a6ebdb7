package utils

import (
	"strings"
	"unicode"
)

// SanitizeString trims whitespace and drops control characters. HTML escaping
// is left to html/template at render time.
func SanitizeString(input string) string {
	return removeControlChars(strings.TrimSpace(input))
}

// SanitizeText sanitizes multi-line text input
func SanitizeText(input string) string {
	trimmed := strings.TrimSpace(input)

	var result strings.Builder
	for _, r := range trimmed {
		if unicode.IsPrint(r) || r == '\n' || r == '\t' || r == '\r' {
			result.WriteRune(r)
		}
	}

	return result.String()
}

// OptionalString returns nil for blank input so the column is stored as NULL.
func OptionalString(input string) *string {
	s := SanitizeString(input)
	if s == "" {
		return nil
	}
	return &s
}

// NormalizeMAC upper-cases a MAC address and uses ':' as separator.
func NormalizeMAC(mac string) string {
	mac = strings.ToUpper(SanitizeString(mac))
	return strings.ReplaceAll(mac, "-", ":")
}

// removeControlChars removes control characters from string
func removeControlChars(input string) string {
	var result strings.Builder
	for _, r := range input {
		if unicode.IsPrint(r) || unicode.IsSpace(r) {
			result.WriteRune(r)
		}
	}
	return result.String()
}
