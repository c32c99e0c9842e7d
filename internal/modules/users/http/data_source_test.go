package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"authgw/internal/modules/auth"
	"authgw/internal/modules/auth/domain"
	"authgw/internal/modules/auth/store"
	"authgw/internal/platform/session"
	"authgw/internal/platform/supabase"
)

type stubProvider struct {
	updateErr   error
	updateCalls int
	lastUserID  string
}

func (s *stubProvider) CreateUser(context.Context, string, string, supabase.Metadata) (*supabase.User, error) {
	return nil, nil
}
func (s *stubProvider) SignInWithPassword(context.Context, string, string) (*supabase.User, error) {
	return nil, nil
}
func (s *stubProvider) SendOTP(context.Context, string, string) error { return nil }
func (s *stubProvider) VerifyOTP(context.Context, string, string, string) (*supabase.User, error) {
	return nil, nil
}
func (s *stubProvider) UserByEmail(context.Context, string) (*supabase.User, error) {
	return nil, nil
}
func (s *stubProvider) UpdateUser(_ context.Context, userID string, _ supabase.UserUpdate) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	s.updateCalls++
	s.lastUserID = userID
	return nil
}

func newTestApp(p auth.Provider, sessions *session.Manager) *fiber.App {
	svc := auth.NewService(p, store.NewMemoryTracker(), store.NewMemoryResetCache(), nil, 10*time.Minute, zap.NewNop().Sugar())
	app := fiber.New()
	NewModule(svc, sessions).Register(app.Group("/api"))
	return app
}

func signedInCookie(t *testing.T, sessions *session.Manager) *http.Cookie {
	t.Helper()
	app := fiber.New()
	app.Post("/seed", func(c *fiber.Ctx) error {
		return sessions.Issue(c, domain.Session{UserID: "uid-1", Email: "a@x.com", Role: "qa"})
	})
	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/seed", nil))
	if err != nil {
		t.Fatal(err)
	}
	for _, ck := range resp.Cookies() {
		if ck.Name == "authgw_session" {
			return ck
		}
	}
	t.Fatal("no session cookie issued")
	return nil
}

func TestSelectDataSource(t *testing.T) {
	sessions := session.NewManager("test-secret", time.Hour)

	t.Run("requires a session", func(t *testing.T) {
		app := newTestApp(&stubProvider{}, sessions)
		resp, err := app.Test(httptest.NewRequest(http.MethodPut, "/api/users/data-source", nil))
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", resp.StatusCode)
		}
	})

	t.Run("records the selection and patches the session", func(t *testing.T) {
		p := &stubProvider{}
		app := newTestApp(p, sessions)

		req := httptest.NewRequest(http.MethodPut, "/api/users/data-source", nil)
		req.AddCookie(signedInCookie(t, sessions))
		resp, err := app.Test(req)
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d", resp.StatusCode)
		}
		if p.updateCalls != 1 || p.lastUserID != "uid-1" {
			t.Fatalf("updateCalls=%d userID=%q", p.updateCalls, p.lastUserID)
		}

		var refreshed *http.Cookie
		for _, ck := range resp.Cookies() {
			if ck.Name == "authgw_session" {
				refreshed = ck
			}
		}
		if refreshed == nil {
			t.Fatal("session not re-issued with the patched flag")
		}

		var payload map[string]any
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			t.Fatal(err)
		}
		if payload["has_selected_data_source"] != true {
			t.Fatalf("body = %v", payload)
		}
	})

	t.Run("provider failure surfaces through the taxonomy", func(t *testing.T) {
		p := &stubProvider{updateErr: &supabase.Error{Kind: supabase.KindUnavailable, Message: "connection refused"}}
		app := newTestApp(p, sessions)

		req := httptest.NewRequest(http.MethodPut, "/api/users/data-source", nil)
		req.AddCookie(signedInCookie(t, sessions))
		resp, err := app.Test(req)
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != http.StatusInternalServerError {
			t.Fatalf("status = %d, want 500", resp.StatusCode)
		}
	})
}
