package security

import (
	"strings"
	"testing"
)

func TestPasswordViolations(t *testing.T) {
	cases := []struct {
		name     string
		password string
		want     []string
	}{
		{"all rules satisfied", "Str0ng!pass", nil},
		{"missing special character only", "Weakpass1", []string{"special character"}},
		{"missing uppercase only", "weakpass1!", []string{"uppercase"}},
		{"missing digit only", "Weakpass!!", []string{"number"}},
		{"too short but otherwise fine", "Ab1!xyz", []string{"8 characters"}},
		{"empty lists every rule", "", []string{"8 characters", "uppercase", "lowercase", "number", "special character"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := PasswordViolations(tc.password)
			if len(got) != len(tc.want) {
				t.Fatalf("got %d violations %v, want %d", len(got), got, len(tc.want))
			}
			for i, fragment := range tc.want {
				if !strings.Contains(got[i], fragment) {
					t.Errorf("violation %d = %q, want mention of %q", i, got[i], fragment)
				}
			}
		})
	}
}

func TestNormalizeRole(t *testing.T) {
	for _, role := range AllowedRoles() {
		upper := strings.ToUpper(role)
		got, ok := NormalizeRole(upper)
		if !ok || got != role {
			t.Errorf("NormalizeRole(%q) = %q, %v; want %q, true", upper, got, ok, role)
		}
	}

	if _, ok := NormalizeRole("superuser"); ok {
		t.Error("NormalizeRole accepted a role outside the closed list")
	}
	if _, ok := NormalizeRole(""); ok {
		t.Error("NormalizeRole accepted an empty role")
	}
}
