package http

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"authgw/internal/modules/auth/domain"
)

var validate = validator.New()

func renderError(c *fiber.Ctx, err error) error {
	de := domain.AsError(err)
	return c.Status(de.Status).JSON(fiber.Map{
		"error_code": de.Code,
		"message":    de.Message,
	})
}

func renderViolations(c *fiber.Ctx, violations []string) error {
	return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
		"error_code": "VALIDATION_ERROR",
		"message":    "Validation failed.",
		"violations": violations,
	})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error_code": "INVALID_FIELDS",
		"message":    msg,
	})
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validEmail(email string) bool {
	_, err := mail.ParseAddress(email)
	return err == nil
}

// collectViolations flattens validator errors into one message per failed
// rule so a 422 can list everything at once.
func collectViolations(err error) []string {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{"Invalid request."}
	}
	out := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, fieldViolation(fe))
	}
	return out
}

func fieldViolation(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return "Email must be a valid email address"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "len":
		return fmt.Sprintf("%s must be exactly %s characters", fe.Field(), fe.Param())
	default:
		return fe.Field() + " is invalid"
	}
}
