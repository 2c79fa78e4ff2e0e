package validate

import (
	"strings"
	"testing"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		maxLength int
		want      string
	}{
		{"empty", "", 100, ""},
		{"plain text", "hello world", 100, "hello world"},
		{"strips nul bytes", "he\x00llo", 100, "hello"},
		{"strips angle brackets", "<script>alert(1)</script>", 100, "scriptalert(1)/script"},
		{"trims whitespace", "  padded  ", 100, "padded"},
		{"caps length", "abcdef", 3, "abc"},
		{"caps by runes not bytes", "héllo wörld", 5, "héllo"},
		{"trim after cap", "ab  cdef", 4, "ab"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sanitize(tt.input, tt.maxLength); got != tt.want {
				t.Errorf("Sanitize(%q, %d) = %q, want %q", tt.input, tt.maxLength, got, tt.want)
			}
		})
	}
}

func TestSanitizeLongInput(t *testing.T) {
	long := strings.Repeat("a", 6000)
	got := Sanitize(long, 5000)
	if len(got) != 5000 {
		t.Errorf("got length %d, want 5000", len(got))
	}
}

func TestEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"user@example.com", true},
		{"first.last+tag@sub.example.co.in", true},
		{"USER@EXAMPLE.COM", true},
		{"", false},
		{"no-at-sign", false},
		{"user@", false},
		{"@example.com", false},
		{"user@example", false},
		{"user@example.c", false},
		{"user name@example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			if got := Email(tt.email); got != tt.want {
				t.Errorf("Email(%q) = %v, want %v", tt.email, got, tt.want)
			}
		})
	}
}
