package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"authgw/internal/modules/auth"
	"authgw/internal/platform/security"
	"authgw/internal/platform/supabase"
)

type signUpReq struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required"`
	Name       string `json:"name" validate:"required,min=2,max=100"`
	Role       string `json:"role" validate:"required"`
	Department string `json:"department" validate:"required,min=2,max=100"`
}

func SignUpHandler(svc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req signUpReq
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Malformed request body.")
		}
		req.Email = normalizeEmail(req.Email)

		violations := collectViolations(validate.Struct(req))
		if req.Password != "" {
			violations = append(violations, security.PasswordViolations(req.Password)...)
		}
		role, roleOK := security.NormalizeRole(req.Role)
		if req.Role != "" && !roleOK {
			violations = append(violations, "Role must be one of: "+strings.Join(security.AllowedRoles(), ", "))
		}
		if len(violations) > 0 {
			return renderViolations(c, violations)
		}

		res, err := svc.SignUp(c.Context(), req.Email, req.Password, supabase.Metadata{
			Name:       req.Name,
			Role:       role,
			Department: req.Department,
		})
		if err != nil {
			return renderError(c, err)
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message":               "Registration successful. Please check your email for verification code.",
			"email":                 res.Email,
			"requires_verification": true,
			"already_registered":    res.AlreadyRegistered,
		})
	}
}
