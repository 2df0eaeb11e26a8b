package handlers

import (
	"github.com/gofiber/fiber/v2"

	"carshop/internal/domain"
	applog "carshop/internal/log"
	"carshop/internal/services"
)

type OrderHandler struct {
	Order   *services.OrderService
	Cookies SessionCookies
}

type checkoutForm struct {
	CarID string `json:"carId" form:"carId"`
	services.Contact
}

// POST /api/v1/checkout places an order for a single car; guests are allowed.
func (h *OrderHandler) Checkout(c *fiber.Ctx) error {
	var in checkoutForm
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "body", "could not read checkout form")
	}
	if in.CarID == "" {
		return badRequest(c, "carId", "carId is required")
	}
	o, err := h.Order.Checkout(currentUser(c), in.CarID, in.Contact)
	if err != nil {
		return fail(c, "order.checkout", err)
	}
	applog.Audit(c, "order.checkout", map[string]any{
		"order_id": o.ID, "car_id": o.CarID, "total": o.TotalAmount.String(), "guest": o.UserID == domain.GuestUserID,
	})
	return c.Status(fiber.StatusCreated).JSON(o)
}

// POST /api/v1/cart/checkout turns the session cart into orders for the signed-in user.
func (h *OrderHandler) CartCheckout(c *fiber.Ctx) error {
	u := currentUser(c)
	orders, err := h.Order.PlaceCart(h.Cookies.SID(c), u)
	if err != nil {
		return fail(c, "order.cart_checkout", err)
	}
	ids := make([]string, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
	}
	applog.Audit(c, "order.cart_checkout", map[string]any{"order_ids": ids})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"orders": orders})
}

// GET /api/v1/me/orders
func (h *OrderHandler) Mine(c *fiber.Ctx) error {
	orders, err := h.Order.ListForUser(currentUser(c).ID)
	if err != nil {
		return fail(c, "orders.mine", err)
	}
	return c.JSON(orders)
}

// POST /api/v1/me/orders/:id/cancel
func (h *OrderHandler) CancelMine(c *fiber.Ctx) error {
	id := c.Params("id")
	ok, err := h.Order.CancelOwn(currentUser(c).ID, id)
	if err != nil {
		return fail(c, "orders.cancel", err)
	}
	if !ok {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "this order can no longer be cancelled"})
	}
	applog.Audit(c, "orders.cancel", map[string]any{"order_id": id})
	o, err := h.Order.Get(id)
	if err != nil {
		return fail(c, "orders.cancel", err)
	}
	return c.JSON(o)
}
