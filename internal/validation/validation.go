package validation

import (
	"net/url"
	"strings"
	"unicode/utf8"
)

// MaxQueryLength bounds facet and search parameters taken from requests.
const MaxQueryLength = 100

// ValidateURL checks if a URL is valid and uses an allowed scheme (http/https only).
// This prevents javascript:, data:, vbscript:, and other dangerous URL schemes.
func ValidateURL(urlStr string) (bool, string) {
	if urlStr == "" {
		return false, "URL is required"
	}

	// Parse the URL
	u, err := url.Parse(urlStr)
	if err != nil {
		return false, "Invalid URL format"
	}

	// Check scheme - only allow http and https
	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return false, "URL must use http:// or https:// scheme"
	}

	// Ensure host is present
	if u.Host == "" {
		return false, "URL must have a valid host"
	}

	return true, ""
}

// ValidateSheetURL checks a configured dataset source. An empty URL is valid
// and means the dataset is not configured.
func ValidateSheetURL(urlStr string) (bool, string) {
	if urlStr == "" {
		return true, ""
	}
	return ValidateURL(urlStr)
}

// NormalizeQuery trims a facet or search parameter and caps its length.
// Invalid UTF-8 bytes are dropped first, and the cut lands on a rune boundary.
func NormalizeQuery(s string) string {
	s = strings.TrimSpace(strings.ToValidUTF8(s, ""))
	if len(s) <= MaxQueryLength {
		return s
	}
	cut := MaxQueryLength
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
