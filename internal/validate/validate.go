// Package validate holds the input sanitization shared by every
// user-facing string field.
package validate

import (
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Sanitize strips NUL bytes and angle brackets, caps the length in
// runes, and trims surrounding whitespace.
func Sanitize(text string, maxLength int) string {
	if text == "" {
		return ""
	}
	text = strings.ReplaceAll(text, "\x00", "")
	text = strings.Map(func(r rune) rune {
		if r == '<' || r == '>' {
			return -1
		}
		return r
	}, text)
	if runes := []rune(text); len(runes) > maxLength {
		text = string(runes[:maxLength])
	}
	return strings.TrimSpace(text)
}

func Email(email string) bool {
	return emailPattern.MatchString(email)
}
