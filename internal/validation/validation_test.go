package validation

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		valid   bool
		wantMsg string
	}{
		{"valid https", "https://example.com", true, ""},
		{"valid http", "http://example.com", true, ""},
		{"valid with path", "https://example.com/path/to/page", true, ""},
		{"valid with query", "https://docs.google.com/spreadsheets/d/e/x/pub?output=csv", true, ""},
		{"valid with port", "https://example.com:8080", true, ""},
		{"empty string", "", false, "URL is required"},
		{"javascript scheme", "javascript:alert(1)", false, "URL must use http:// or https:// scheme"},
		{"data scheme", "data:text/html,<script>alert(1)</script>", false, "URL must use http:// or https:// scheme"},
		{"vbscript scheme", "vbscript:msgbox", false, "URL must use http:// or https:// scheme"},
		{"no scheme", "example.com/report.pdf", false, "URL must use http:// or https:// scheme"},
		{"no host", "https://", false, "URL must have a valid host"},
		{"bad escape", "http://%zz", false, "Invalid URL format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			valid, msg := ValidateURL(tt.url)
			if valid != tt.valid {
				t.Errorf("ValidateURL(%q) valid = %v, want %v", tt.url, valid, tt.valid)
			}
			if msg != tt.wantMsg {
				t.Errorf("ValidateURL(%q) msg = %q, want %q", tt.url, msg, tt.wantMsg)
			}
		})
	}
}

func TestValidateSheetURL(t *testing.T) {
	if ok, _ := ValidateSheetURL(""); !ok {
		t.Error("empty sheet URL should be valid (dataset not configured)")
	}
	if ok, _ := ValidateSheetURL("ftp://example.com/sheet.csv"); ok {
		t.Error("ftp sheet URL should be rejected")
	}
}

func TestNormalizeQuery(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"trims", "  2023 ", "2023"},
		{"empty", "", ""},
		{"max length kept", strings.Repeat("a", MaxQueryLength), strings.Repeat("a", MaxQueryLength)},
		{"too long cut", strings.Repeat("a", MaxQueryLength+5), strings.Repeat("a", MaxQueryLength)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeQuery(tt.in); got != tt.want {
				t.Errorf("NormalizeQuery(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeQuery_MultiByte(t *testing.T) {
	got := NormalizeQuery(strings.Repeat("é", MaxQueryLength))
	if !utf8.ValidString(got) {
		t.Errorf("NormalizeQuery() produced invalid UTF-8: %q", got)
	}
	if len(got) > MaxQueryLength {
		t.Errorf("len(NormalizeQuery()) = %d, want <= %d", len(got), MaxQueryLength)
	}
}

func TestNormalizeQuery_InvalidBytes(t *testing.T) {
	long := "x\xff" + strings.Repeat("b", MaxQueryLength+10)
	got := NormalizeQuery(long)
	want := "x" + strings.Repeat("b", MaxQueryLength-1)
	if got != want {
		t.Errorf("NormalizeQuery() = %q (len %d), want %q", got, len(got), want)
	}

	if got := NormalizeQuery("gold\xfe medal"); got != "gold medal" {
		t.Errorf("NormalizeQuery() = %q, want %q", got, "gold medal")
	}
}
