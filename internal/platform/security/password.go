package security

import (
	"strings"
	"unicode"
)

const specialChars = `!@#$%^&*(),.?":{}|<>`

// PasswordViolations checks a candidate password against every strength
// rule and returns one message per violated rule, not just the first.
func PasswordViolations(pw string) []string {
	var violations []string
	if len(pw) < 8 {
		violations = append(violations, "Password must be at least 8 characters long")
	}
	var upper, lower, digit, special bool
	for _, r := range pw {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune(specialChars, r):
			special = true
		}
	}
	if !upper {
		violations = append(violations, "Password must contain at least one uppercase letter")
	}
	if !lower {
		violations = append(violations, "Password must contain at least one lowercase letter")
	}
	if !digit {
		violations = append(violations, "Password must contain at least one number")
	}
	if !special {
		violations = append(violations, "Password must contain at least one special character")
	}
	return violations
}
