package handlers

import (
	"github.com/gofiber/fiber/v2"

	"carshop/internal/domain"
	"carshop/internal/services"
)

type CartHandler struct {
	Cart    *services.CartService
	Cookies SessionCookies
}

func cartView(cart domain.Cart) fiber.Map {
	return fiber.Map{
		"items":       cart,
		"totalItems":  cart.TotalItems(),
		"totalAmount": cart.TotalAmount(),
	}
}

// GET /api/v1/cart
func (h *CartHandler) View(c *fiber.Ctx) error {
	cart, err := h.Cart.View(h.Cookies.SID(c))
	if err != nil {
		return fail(c, "cart.view", err)
	}
	return c.JSON(cartView(cart))
}

// POST /api/v1/cart {carId}
func (h *CartHandler) Add(c *fiber.Ctx) error {
	sid := h.Cookies.SID(c)
	var in struct {
		CarID string `json:"carId" form:"carId"`
	}
	if err := c.BodyParser(&in); err != nil || in.CarID == "" {
		return badRequest(c, "carId", "carId is required")
	}
	cart, added, err := h.Cart.Add(sid, in.CarID)
	if err != nil {
		return fail(c, "cart.add", err)
	}
	out := cartView(cart)
	out["added"] = added
	if !added {
		out["message"] = "this car is already in your cart"
		return c.JSON(out)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// PATCH /api/v1/cart/:carId {quantity}
func (h *CartHandler) UpdateQuantity(c *fiber.Ctx) error {
	sid := h.Cookies.SID(c)
	var in struct {
		Quantity *int `json:"quantity" form:"quantity"`
	}
	if err := c.BodyParser(&in); err != nil || in.Quantity == nil {
		return badRequest(c, "quantity", "quantity is required")
	}
	cart, err := h.Cart.UpdateQuantity(sid, c.Params("carId"), *in.Quantity)
	if err != nil {
		return fail(c, "cart.quantity", err)
	}
	return c.JSON(cartView(cart))
}

// DELETE /api/v1/cart/:carId
func (h *CartHandler) Remove(c *fiber.Ctx) error {
	cart, err := h.Cart.Remove(h.Cookies.SID(c), c.Params("carId"))
	if err != nil {
		return fail(c, "cart.remove", err)
	}
	return c.JSON(cartView(cart))
}

// DELETE /api/v1/cart
func (h *CartHandler) Clear(c *fiber.Ctx) error {
	if err := h.Cart.Clear(h.Cookies.SID(c)); err != nil {
		return fail(c, "cart.clear", err)
	}
	return c.JSON(cartView(domain.Cart{}))
}
