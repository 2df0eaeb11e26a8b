package handlers

import (
	"github.com/gofiber/fiber/v2"

	"carshop/internal/domain"
	applog "carshop/internal/log"
	"carshop/internal/services"
)

type CategoryHandler struct {
	Catalog *services.CatalogService
}

type categoryForm struct {
	Name        string `json:"name" form:"name"`
	Description string `json:"description" form:"description"`
}

// GET /api/v1/categories
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	cats, err := h.Catalog.ListCategories()
	if err != nil {
		return fail(c, "categories.list", err)
	}
	return c.JSON(cats)
}

func (h *CategoryHandler) Get(c *fiber.Ctx) error {
	cat, err := h.Catalog.GetCategory(c.Params("id"))
	if err != nil {
		return fail(c, "categories.get", err)
	}
	return c.JSON(cat)
}

func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var in categoryForm
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "body", "could not read category")
	}
	cat, err := h.Catalog.CreateCategory(in.Name, in.Description)
	if err != nil {
		return fail(c, "admin.categories.create", err)
	}
	applog.Audit(c, "admin.categories.create", map[string]any{"category_id": cat.ID, "name": cat.Name})
	return c.Status(fiber.StatusCreated).JSON(cat)
}

// Update accepts name and description; the slug always follows the name.
func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	var p domain.CategoryPatch
	if err := c.BodyParser(&p); err != nil {
		return badRequest(c, "body", "could not read category")
	}
	p.Slug = nil
	cat, err := h.Catalog.UpdateCategory(id, p)
	if err != nil {
		return fail(c, "admin.categories.update", err)
	}
	applog.Audit(c, "admin.categories.update", map[string]any{"category_id": id})
	return c.JSON(cat)
}

func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	ok, err := h.Catalog.DeleteCategory(id)
	if err != nil {
		return fail(c, "admin.categories.delete", err)
	}
	if !ok {
		return notFound(c)
	}
	applog.Audit(c, "admin.categories.delete", map[string]any{"category_id": id})
	return c.SendStatus(fiber.StatusNoContent)
}
