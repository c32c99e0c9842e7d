package http

import (
	"github.com/gofiber/fiber/v2"

	"authgw/internal/modules/auth"
	"authgw/internal/platform/session"
)

type Module struct {
	svc      *auth.Service
	sessions *session.Manager
}

func NewModule(svc *auth.Service, sessions *session.Manager) *Module {
	return &Module{svc: svc, sessions: sessions}
}

func (m *Module) Register(r fiber.Router) {
	grp := r.Group("/users", m.sessions.RequireAuth())
	grp.Put("/data-source", SelectDataSourceHandler(m.svc, m.sessions))
}
