package handlers

import (
	"github.com/gofiber/fiber/v2"
	html "github.com/gofiber/template/html/v2"

	"carshop/internal/format"
)

// NewViews builds the template engine with the formatting helpers pages use.
func NewViews(dir string) *html.Engine {
	engine := html.New(dir, ".html")
	engine.AddFunc("price", format.Price)
	engine.AddFunc("date", format.Date)
	return engine
}

func render(c *fiber.Ctx, tmpl string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	if u := currentUser(c); u != nil {
		data["User"] = u.Public()
	}
	if tok, ok := c.Locals("csrf").(string); ok && tok != "" {
		data["CSRFToken"] = tok
	}
	return c.Render(tmpl, data)
}
