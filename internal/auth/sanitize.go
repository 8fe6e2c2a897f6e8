package auth

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	tagPattern       = regexp.MustCompile(`<[^>]*>`)
	injectionPattern = regexp.MustCompile(`[';"-]`)

	emailValidator = validator.New()
)

// Sanitize strips tag-like substrings and common injection characters and
// trims surrounding whitespace. Defense in depth only; parameterized queries
// and output encoding remain the real injection defenses.
func Sanitize(raw string) string {
	cleaned := tagPattern.ReplaceAllString(raw, "")
	cleaned = injectionPattern.ReplaceAllString(cleaned, "")
	return strings.TrimSpace(cleaned)
}

// ValidateEmailFormat reports whether s is a syntactically valid email
// address. Callers get a boolean only; which rule failed is not revealed.
func ValidateEmailFormat(s string) bool {
	return emailValidator.Var(s, "required,email") == nil
}
