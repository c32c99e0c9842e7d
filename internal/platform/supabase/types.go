package supabase

import (
	"encoding/json"
	"time"
)

// Metadata is the application-owned slice of the provider's user_metadata.
type Metadata struct {
	Name                  string `json:"name,omitempty"`
	Role                  string `json:"role,omitempty"`
	Department            string `json:"department,omitempty"`
	HasSelectedDataSource bool   `json:"has_selected_data_source,omitempty"`
}

// User is the one fixed record shape every provider response is normalized
// into. Callers never see the provider's raw payload variants.
type User struct {
	ID               string
	Email            string
	EmailConfirmedAt *time.Time
	Metadata         Metadata
}

func (u *User) EmailConfirmed() bool { return u.EmailConfirmedAt != nil }

// UserUpdate carries the writable admin fields. Zero-valued fields are
// omitted from the request body.
type UserUpdate struct {
	Password     *string        `json:"password,omitempty"`
	EmailConfirm *bool          `json:"email_confirm,omitempty"`
	UserMetadata map[string]any `json:"user_metadata,omitempty"`
}

// rawUser accepts the field spellings the provider uses across its
// endpoints. Admin list rows expose raw_user_meta_data where the auth
// endpoints expose user_metadata.
type rawUser struct {
	ID               string     `json:"id"`
	Email            string     `json:"email"`
	EmailConfirmedAt *time.Time `json:"email_confirmed_at"`
	UserMetadata     *Metadata  `json:"user_metadata"`
	RawUserMetaData  *Metadata  `json:"raw_user_meta_data"`
}

func (r rawUser) normalize() *User {
	u := &User{ID: r.ID, Email: r.Email, EmailConfirmedAt: r.EmailConfirmedAt}
	switch {
	case r.UserMetadata != nil:
		u.Metadata = *r.UserMetadata
	case r.RawUserMetaData != nil:
		u.Metadata = *r.RawUserMetaData
	}
	return u
}

// decodeUser accepts both {"user": {...}} envelopes and bare user objects.
// A record with missing fields is still returned as-is: whether an id-less
// user is a contract violation is the caller's call, and collapsing it to
// nil here would make it indistinguishable from "no user". Only a body with
// no user-shaped content at all yields (nil, nil).
func decodeUser(body []byte) (*User, error) {
	var envelope struct {
		User *rawUser `json:"user"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.User != nil {
		return envelope.User.normalize(), nil
	}
	var raw rawUser
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, err
	}
	if raw == (rawUser{}) {
		return nil, nil
	}
	return raw.normalize(), nil
}

// decodeUserList accepts both {"users": [...]} envelopes and bare arrays.
func decodeUserList(body []byte) ([]*User, error) {
	var envelope struct {
		Users []rawUser `json:"users"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Users != nil {
		out := make([]*User, 0, len(envelope.Users))
		for _, r := range envelope.Users {
			out = append(out, r.normalize())
		}
		return out, nil
	}
	var raws []rawUser
	if err := json.Unmarshal(body, &raws); err != nil {
		return nil, err
	}
	out := make([]*User, 0, len(raws))
	for _, r := range raws {
		out = append(out, r.normalize())
	}
	return out, nil
}
