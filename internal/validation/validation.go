// Package validation holds the input rules for self-service registration.
package validation

import "regexp"

var (
	emailPattern  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	letterPattern = regexp.MustCompile(`[a-zA-Z]`)
	digitPattern  = regexp.MustCompile(`[0-9]`)
)

// ValidateEmail reports whether email has a plausible shape: a single @
// with a non-empty local part and a dotted, non-empty domain.
func ValidateEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidatePassword checks password strength: minimum 8 characters, at least
// one letter, at least one digit. Errors enumerates every violated rule so
// the caller can report them all at once.
func ValidatePassword(password string) (valid bool, errors []string) {
	if len(password) < 8 {
		errors = append(errors, "Password must be at least 8 characters")
	}
	if !letterPattern.MatchString(password) {
		errors = append(errors, "Password must contain at least one letter")
	}
	if !digitPattern.MatchString(password) {
		errors = append(errors, "Password must contain at least one number")
	}
	return len(errors) == 0, errors
}
