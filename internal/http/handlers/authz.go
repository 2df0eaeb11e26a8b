package handlers

import (
	"github.com/gofiber/fiber/v2"

	"carshop/internal/domain"
	applog "carshop/internal/log"
	"carshop/internal/services"
)

// WithUser attaches the signed-in user, if any, for templates, guards and logs.
func WithUser(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if sid := c.Cookies(sidCookie); sid != "" {
			if u, err := auth.CurrentUser(sid); err == nil && u != nil {
				c.Locals("user", u)
			}
		}
		return c.Next()
	}
}

func currentUser(c *fiber.Ctx) *domain.User {
	u, _ := c.Locals("user").(*domain.User)
	return u
}

func deny(c *fiber.Ctx, code int, msg string) error {
	if isAPI(c) {
		return c.Status(code).JSON(fiber.Map{"error": msg})
	}
	return c.Status(code).Render("notfound", fiber.Map{"Message": msg})
}

func RequireAdmin(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies(sidCookie)
		if sid == "" {
			applog.Security(c, "access.denied.admin", map[string]any{"reason": "no_session"})
			return deny(c, fiber.StatusUnauthorized, "Please sign in")
		}
		u, err := auth.CurrentUser(sid)
		if err != nil || u == nil {
			applog.Security(c, "access.denied.admin", map[string]any{"reason": "anonymous"})
			return deny(c, fiber.StatusUnauthorized, "Please sign in")
		}
		if !u.IsAdmin() {
			c.Locals("user", u)
			applog.Security(c, "access.denied.admin", map[string]any{"reason": "role"})
			return deny(c, fiber.StatusForbidden, "Access denied")
		}
		c.Locals("user", u)
		return c.Next()
	}
}

// RequireUser enforces that a user is signed in.
func RequireUser(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies(sidCookie)
		if sid == "" {
			return deny(c, fiber.StatusUnauthorized, "Please sign in")
		}
		u, err := auth.CurrentUser(sid)
		if err != nil || u == nil {
			return deny(c, fiber.StatusUnauthorized, "Please sign in")
		}
		c.Locals("user", u)
		return c.Next()
	}
}
