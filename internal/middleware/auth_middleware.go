package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/sefazor/taskflow-client/internal/models"
)

// Sessions reports whether a user is logged in.
type Sessions interface {
	IsLoggedIn() bool
}

// RequireLogin sends anonymous visitors to the login page. Requests that
// cannot follow a redirect, such as event streams, get a 401 instead.
func RequireLogin(sessions Sessions) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if sessions.IsLoggedIn() {
			return c.Next()
		}

		if strings.Contains(c.Get(fiber.HeaderAccept), "text/event-stream") || strings.HasSuffix(c.Path(), "/events") {
			return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("Authentication required"))
		}
		return c.Redirect("/login", fiber.StatusSeeOther)
	}
}

// GuestOnly sends logged-in users straight to the dashboard.
func GuestOnly(sessions Sessions) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if sessions.IsLoggedIn() {
			return c.Redirect("/dashboard", fiber.StatusSeeOther)
		}
		return c.Next()
	}
}
