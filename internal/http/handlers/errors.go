package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"carshop/internal/domain"
	applog "carshop/internal/log"
	"carshop/internal/repos"
	"carshop/internal/services"
	"carshop/internal/validate"
)

const friendlyError = "Something went wrong. Please try again."

func isAPI(c *fiber.Ctx) bool {
	return strings.HasPrefix(c.Path(), "/api/")
}

// ErrorHandler is the app-wide fallback: log the cause, show a friendly message.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := friendlyError
	var fe *fiber.Error
	if errors.As(err, &fe) && fe.Code < 500 {
		code, msg = fe.Code, fe.Message
	} else {
		applog.Error(c, "server.error", err, nil)
	}
	if isAPI(c) {
		return c.Status(code).JSON(fiber.Map{"error": msg})
	}
	if rerr := c.Status(code).Render("notfound", fiber.Map{"Message": msg}); rerr != nil {
		return c.Status(code).SendString(msg)
	}
	return nil
}

// fail maps service errors onto HTTP responses. Anything unrecognized is
// logged under action and answered with a generic 500.
func fail(c *fiber.Ctx, action string, err error) error {
	var verr validate.Errors
	switch {
	case errors.As(err, &verr):
		applog.Info(c, action+".invalid", map[string]any{"fields": verr})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": verr})
	case errors.Is(err, repos.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	case errors.Is(err, services.ErrBadCreds):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrEmptyCart):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrDuplicateName),
		errors.Is(err, services.ErrLastAdmin),
		errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrCarUnavailable),
		errors.Is(err, domain.ErrInvalidTransition):
		applog.Security(c, action+".conflict", map[string]any{"reason": err.Error()})
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	}
	applog.Error(c, action+".fail", err, nil)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": friendlyError})
}

func badRequest(c *fiber.Ctx, field, msg string) error {
	applog.Security(c, "validation.fail", map[string]any{"field": field})
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": validate.Errors{field: msg}})
}

func notFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
}
