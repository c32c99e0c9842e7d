package domain

// Profile is the application-owned user record. When present it takes
// precedence over provider metadata for session display fields.
type Profile struct {
	Email      string
	Name       string
	Role       string
	Department string
}
