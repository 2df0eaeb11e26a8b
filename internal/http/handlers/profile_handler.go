package handlers

import (
	"github.com/gofiber/fiber/v2"

	"carshop/internal/domain"
	applog "carshop/internal/log"
	"carshop/internal/services"
)

type ProfileHandler struct {
	Users *services.UserService
}

// GET /api/v1/me
func (h *ProfileHandler) Me(c *fiber.Ctx) error {
	return c.JSON(currentUser(c).Public())
}

// PUT /api/v1/me
func (h *ProfileHandler) Update(c *fiber.Ctx) error {
	u := currentUser(c)
	var p domain.ProfilePatch
	if err := c.BodyParser(&p); err != nil {
		return badRequest(c, "body", "could not read profile")
	}
	updated, err := h.Users.UpdateProfile(u.ID, p)
	if err != nil {
		return fail(c, "profile.update", err)
	}
	c.Locals("user", updated)
	applog.Audit(c, "profile.update", nil)
	return c.JSON(updated.Public())
}
