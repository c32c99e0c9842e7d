package http

import (
	"github.com/gofiber/fiber/v2"

	"authgw/internal/modules/auth"
	"authgw/internal/platform/session"
)

// Module wires the auth endpoints onto the API router.
type Module struct {
	svc      *auth.Service
	sessions *session.Manager
}

func NewModule(svc *auth.Service, sessions *session.Manager) *Module {
	return &Module{svc: svc, sessions: sessions}
}

func (m *Module) Register(r fiber.Router) {
	grp := r.Group("/auth")

	grp.Post("/signup", SignUpHandler(m.svc))
	grp.Post("/verify-otp", VerifyOTPHandler(m.svc, m.sessions))
	grp.Post("/signin", SignInHandler(m.svc, m.sessions))
	grp.Post("/forgot-password", ForgotPasswordHandler(m.svc))
	grp.Post("/verify-reset-otp", VerifyResetOTPHandler(m.svc))
	grp.Post("/reset-password", ResetPasswordHandler(m.svc))
	grp.Post("/resend-otp", ResendOTPHandler(m.svc))

	protected := grp.Group("", m.sessions.RequireAuth())
	protected.Post("/signout", SignOutHandler(m.sessions))
	protected.Get("/me", MeHandler())
}
