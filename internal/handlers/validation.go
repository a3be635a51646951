package handlers

import (
	"regexp"
	"strings"
	"unicode"
)

// local@domain.tld shape; enforced once, at this boundary, before hashing.
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

func validEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// validatePassword checks complexity: min 8 chars, at least one uppercase,
// one lowercase, one digit. Returns the message for the first failing rule.
func validatePassword(password string) string {
	if len(password) < 8 {
		return msgPasswordShort
	}
	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasUpper {
		return msgPasswordUpper
	}
	if !hasLower {
		return msgPasswordLower
	}
	if !hasDigit {
		return msgPasswordDigit
	}
	return ""
}

// requireFields mirrors the generic body validation: every named field must
// be a non-empty string. Returns the message for the first violation.
func requireFields(fields map[string]string, names ...string) string {
	for _, n := range names {
		v, ok := fields[n]
		if !ok {
			return "Missing required field: '" + n + "'."
		}
		if strings.TrimSpace(v) == "" {
			return "Field '" + n + "' must be a non-empty string."
		}
	}
	return ""
}
