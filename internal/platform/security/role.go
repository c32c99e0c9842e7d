package security

import "strings"

var allowedRoles = []string{"qa", "qc", "production", "regulatory", "sales", "management", "admin"}

// NormalizeRole lowercases the role and reports whether it is one of the
// allowed values.
func NormalizeRole(role string) (string, bool) {
	r := strings.ToLower(strings.TrimSpace(role))
	for _, allowed := range allowedRoles {
		if r == allowed {
			return r, true
		}
	}
	return r, false
}

// AllowedRoles returns the closed role list, for validation messages.
func AllowedRoles() []string {
	out := make([]string, len(allowedRoles))
	copy(out, allowedRoles)
	return out
}
