package handlers

import (
	"bytes"
	"io"

	"github.com/gofiber/fiber/v2"

	"carshop/internal/domain"
	applog "carshop/internal/log"
	"carshop/internal/services"
)

type AdminHandler struct {
	Orders    *services.OrderService
	Users     *services.UserService
	Dashboard *services.DashboardService
	Export    *services.ExportService
}

// GET /admin
func (h *AdminHandler) DashboardPage(c *fiber.Ctx) error {
	st, err := h.Dashboard.Stats()
	if err != nil {
		return err
	}
	return render(c, "admin_dashboard", fiber.Map{"Stats": st})
}

// GET /api/v1/admin/stats
func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	st, err := h.Dashboard.Stats()
	if err != nil {
		return fail(c, "admin.stats", err)
	}
	return c.JSON(st)
}

// ---------- orders ----------

// GET /api/v1/admin/orders?status=
func (h *AdminHandler) ListOrders(c *fiber.Ctx) error {
	status := domain.OrderStatus(c.Query("status"))
	if status != "" && !status.Valid() {
		return badRequest(c, "status", "unknown order status")
	}
	orders, err := h.Orders.List(status)
	if err != nil {
		return fail(c, "admin.orders.list", err)
	}
	return c.JSON(orders)
}

func (h *AdminHandler) GetOrder(c *fiber.Ctx) error {
	o, err := h.Orders.Get(c.Params("id"))
	if err != nil {
		return fail(c, "admin.orders.get", err)
	}
	return c.JSON(o)
}

// PUT /api/v1/admin/orders/:id
func (h *AdminHandler) UpdateOrder(c *fiber.Ctx) error {
	id := c.Params("id")
	var p domain.OrderPatch
	if err := c.BodyParser(&p); err != nil {
		return badRequest(c, "body", "could not read order")
	}
	if p.Status != nil && !p.Status.Valid() {
		return badRequest(c, "status", "unknown order status")
	}
	o, err := h.Orders.Update(id, p)
	if err != nil {
		return fail(c, "admin.orders.update", err)
	}
	applog.Audit(c, "admin.orders.update", map[string]any{"order_id": id, "status": o.Status})
	return c.JSON(o)
}

func (h *AdminHandler) DeleteOrder(c *fiber.Ctx) error {
	id := c.Params("id")
	ok, err := h.Orders.Delete(id)
	if err != nil {
		return fail(c, "admin.orders.delete", err)
	}
	if !ok {
		return notFound(c)
	}
	applog.Audit(c, "admin.orders.delete", map[string]any{"order_id": id})
	return c.SendStatus(fiber.StatusNoContent)
}

// ---------- users ----------

func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.Users.List()
	if err != nil {
		return fail(c, "admin.users.list", err)
	}
	out := make([]domain.PublicUser, 0, len(users))
	for _, u := range users {
		out = append(out, u.Public())
	}
	return c.JSON(out)
}

// GET /api/v1/admin/users/:id returns the user and their orders.
func (h *AdminHandler) GetUser(c *fiber.Ctx) error {
	u, orders, err := h.Users.Detail(c.Params("id"))
	if err != nil {
		return fail(c, "admin.users.get", err)
	}
	return c.JSON(fiber.Map{"user": u.Public(), "orders": orders})
}

func (h *AdminHandler) CreateUser(c *fiber.Ctx) error {
	var in services.NewUser
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "body", "could not read user")
	}
	u, err := h.Users.Create(in)
	if err != nil {
		return fail(c, "admin.users.create", err)
	}
	applog.Audit(c, "admin.users.create", map[string]any{"new_user_id": u.ID, "role": u.Role})
	return c.Status(fiber.StatusCreated).JSON(u.Public())
}

// DELETE /api/v1/admin/users/:id
func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	id := c.Params("id")
	ok, err := h.Users.Delete(id)
	if err != nil {
		return fail(c, "admin.users.delete", err)
	}
	if !ok {
		return notFound(c)
	}
	applog.Audit(c, "admin.users.delete", map[string]any{"deleted_user_id": id})
	return c.SendStatus(fiber.StatusNoContent)
}

// ---------- exports ----------

func (h *AdminHandler) ExportCars(c *fiber.Ctx) error {
	return h.sendXLSX(c, "cars.xlsx", h.Export.CarsXLSX)
}

func (h *AdminHandler) ExportOrders(c *fiber.Ctx) error {
	return h.sendXLSX(c, "orders.xlsx", h.Export.OrdersXLSX)
}

func (h *AdminHandler) sendXLSX(c *fiber.Ctx, name string, write func(io.Writer) error) error {
	var buf bytes.Buffer
	if err := write(&buf); err != nil {
		return fail(c, "admin.export", err)
	}
	applog.Audit(c, "admin.export", map[string]any{"file": name})
	c.Attachment(name)
	c.Set(fiber.HeaderContentType, services.XLSXContentType)
	return c.Send(buf.Bytes())
}
