package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"carshop/internal/domain"
	applog "carshop/internal/log"
	"carshop/internal/services"
)

type AuthHandler struct {
	Auth    *services.AuthService
	Cookies SessionCookies
}

type loginForm struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// GET /api/v1/session
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	h.Cookies.SID(c)
	tok, _ := c.Locals("csrf").(string)
	var user *domain.PublicUser
	if u := currentUser(c); u != nil {
		pub := u.Public()
		user = &pub
	}
	return c.JSON(fiber.Map{"csrfToken": tok, "user": user})
}

// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	sid := h.Cookies.SID(c)
	var in loginForm
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "body", "could not read login form")
	}
	email := strings.TrimSpace(in.Email)
	if email == "" || in.Password == "" {
		applog.Security(c, "auth.login.fail", map[string]any{"email": email, "reason": "missing_fields"})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "email and password are required"})
	}

	u, err := h.Auth.Login(sid, email, in.Password)
	if errors.Is(err, services.ErrBadCreds) {
		applog.Security(c, "auth.login.fail", map[string]any{"email": email})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": services.ErrBadCreds.Error()})
	}
	if err != nil {
		return fail(c, "auth.login", err)
	}

	c.Locals("user", u)
	applog.Audit(c, "auth.login.success", map[string]any{"email": u.Email})
	return c.JSON(fiber.Map{"user": u.Public()})
}

// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sid := c.Cookies(sidCookie)
	if sid != "" {
		if err := h.Auth.Logout(sid); err != nil {
			return fail(c, "auth.logout", err)
		}
	}
	h.Cookies.Expire(c)
	applog.Audit(c, "auth.logout", nil)
	return c.JSON(fiber.Map{"ok": true})
}
