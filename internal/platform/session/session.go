// Package session issues and reads the gateway's authenticated sessions.
// The session record travels in an HS256-signed cookie, so no server-side
// session storage is required; the signing key and max-age come from
// configuration.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"authgw/internal/modules/auth/domain"
)

const (
	cookieName = "authgw_session"
	localsKey  = "session"
)

var ErrNoSession = errors.New("no active session")

type Manager struct {
	secret []byte
	maxAge time.Duration
}

func NewManager(secret string, maxAge time.Duration) *Manager {
	return &Manager{secret: []byte(secret), maxAge: maxAge}
}

// Issue writes the session record into the response cookie, replacing any
// prior session.
func (m *Manager) Issue(c *fiber.Ctx, rec domain.Session) error {
	now := time.Now()
	exp := now.Add(m.maxAge)
	claims := jwt.MapClaims{
		"sub":        rec.UserID,
		"email":      rec.Email,
		"role":       rec.Role,
		"name":       rec.Name,
		"department": rec.Department,
		"dss":        rec.HasSelectedDataSource,
		"iat":        now.Unix(),
		"exp":        exp.Unix(),
		"jti":        uuid.NewString(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return err
	}
	c.Cookie(&fiber.Cookie{
		Name:     cookieName,
		Value:    signed,
		Expires:  exp,
		HTTPOnly: true,
		SameSite: "Lax",
		Path:     "/",
	})
	return nil
}

// Read returns the session bound to the request, if any. Absence is not an
// error at this layer; callers needing authentication translate it into a
// 401 themselves.
func (m *Manager) Read(c *fiber.Ctx) (*domain.Session, bool) {
	raw := c.Cookies(cookieName)
	if raw == "" {
		return nil, false
	}
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !tok.Valid {
		return nil, false
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return nil, false
	}
	rec := &domain.Session{}
	rec.UserID, _ = claims["sub"].(string)
	rec.Email, _ = claims["email"].(string)
	rec.Role, _ = claims["role"].(string)
	rec.Name, _ = claims["name"].(string)
	rec.Department, _ = claims["department"].(string)
	rec.HasSelectedDataSource, _ = claims["dss"].(bool)
	if rec.UserID == "" {
		return nil, false
	}
	return rec, true
}

// Clear expires the session cookie. Clearing an absent session is a no-op.
func (m *Manager) Clear(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     cookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
		Path:     "/",
	})
}

// Patch applies a narrow mutation to the existing record and re-issues it,
// so unrelated session fields are never dropped.
func (m *Manager) Patch(c *fiber.Ctx, mutate func(*domain.Session)) error {
	rec, ok := m.Read(c)
	if !ok {
		return ErrNoSession
	}
	mutate(rec)
	return m.Issue(c, *rec)
}
