package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	applog "carshop/internal/log"
)

// LoginLimiter throttles credential attempts per client IP.
func LoginLimiter() fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP() + "|login"
		},
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "Too many attempts. Please try again later."})
		},
	})
}

// Register mounts every page and API route on app. Global middleware
// (request ids, CSRF, rate limits) is the caller's job.
func Register(app *fiber.App, d *Deps) {
	app.Use(WithUser(d.Auth))

	// Pages
	app.Get("/", d.CarHandler.CatalogPage)
	app.Get("/cars/:id", d.CarHandler.CarPage)
	app.Get("/admin", RequireAdmin(d.Auth), d.AdminHandler.DashboardPage)

	api := app.Group("/api/v1")

	// Public catalog
	api.Get("/cars", d.CarHandler.List)
	api.Get("/cars/:id", d.CarHandler.Get)
	api.Get("/categories", d.CategoryHandler.List)
	api.Get("/categories/:id", d.CategoryHandler.Get)
	api.Get("/brands", d.BrandHandler.List)
	api.Get("/brands/:id", d.BrandHandler.Get)

	// Session & auth
	api.Get("/session", d.AuthHandler.Session)
	api.Post("/auth/login", LoginLimiter(), d.AuthHandler.Login)
	api.Post("/auth/logout", d.AuthHandler.Logout)

	// Cart & checkout
	api.Get("/cart", d.CartHandler.View)
	api.Post("/cart", d.CartHandler.Add)
	api.Post("/cart/checkout", RequireUser(d.Auth), d.OrderHandler.CartCheckout)
	api.Patch("/cart/:carId", d.CartHandler.UpdateQuantity)
	api.Delete("/cart/:carId", d.CartHandler.Remove)
	api.Delete("/cart", d.CartHandler.Clear)
	api.Post("/checkout", d.OrderHandler.Checkout)

	// Signed-in user
	me := api.Group("/me", RequireUser(d.Auth))
	me.Get("/", d.ProfileHandler.Me)
	me.Put("/", d.ProfileHandler.Update)
	me.Get("/orders", d.OrderHandler.Mine)
	me.Post("/orders/:id/cancel", d.OrderHandler.CancelMine)

	// Back office
	admin := api.Group("/admin", RequireAdmin(d.Auth))
	admin.Get("/stats", d.AdminHandler.Stats)

	admin.Get("/cars/export.xlsx", d.AdminHandler.ExportCars)
	admin.Post("/cars", d.CarHandler.Create)
	admin.Put("/cars/:id", d.CarHandler.Update)
	admin.Delete("/cars/:id", d.CarHandler.Delete)

	admin.Post("/categories", d.CategoryHandler.Create)
	admin.Put("/categories/:id", d.CategoryHandler.Update)
	admin.Delete("/categories/:id", d.CategoryHandler.Delete)

	admin.Post("/brands", d.BrandHandler.Create)
	admin.Put("/brands/:id", d.BrandHandler.Update)
	admin.Delete("/brands/:id", d.BrandHandler.Delete)

	admin.Get("/orders/export.xlsx", d.AdminHandler.ExportOrders)
	admin.Get("/orders", d.AdminHandler.ListOrders)
	admin.Get("/orders/:id", d.AdminHandler.GetOrder)
	admin.Put("/orders/:id", d.AdminHandler.UpdateOrder)
	admin.Delete("/orders/:id", d.AdminHandler.DeleteOrder)

	admin.Get("/users", d.AdminHandler.ListUsers)
	admin.Post("/users", d.AdminHandler.CreateUser)
	admin.Get("/users/:id", d.AdminHandler.GetUser)
	admin.Delete("/users/:id", d.AdminHandler.DeleteUser)

	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		if isAPI(c) {
			return notFound(c)
		}
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Page not found"})
	})
}
