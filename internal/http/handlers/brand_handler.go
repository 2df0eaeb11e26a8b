package handlers

import (
	"github.com/gofiber/fiber/v2"

	"carshop/internal/domain"
	applog "carshop/internal/log"
	"carshop/internal/services"
)

type BrandHandler struct {
	Catalog *services.CatalogService
}

func (h *BrandHandler) List(c *fiber.Ctx) error {
	brands, err := h.Catalog.ListBrands()
	if err != nil {
		return fail(c, "brands.list", err)
	}
	return c.JSON(brands)
}

func (h *BrandHandler) Get(c *fiber.Ctx) error {
	b, err := h.Catalog.GetBrand(c.Params("id"))
	if err != nil {
		return fail(c, "brands.get", err)
	}
	return c.JSON(b)
}

func (h *BrandHandler) Create(c *fiber.Ctx) error {
	var in domain.Brand
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "body", "could not read brand")
	}
	b, err := h.Catalog.CreateBrand(in)
	if err != nil {
		return fail(c, "admin.brands.create", err)
	}
	applog.Audit(c, "admin.brands.create", map[string]any{"brand_id": b.ID, "name": b.Name})
	return c.Status(fiber.StatusCreated).JSON(b)
}

func (h *BrandHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	var p domain.BrandPatch
	if err := c.BodyParser(&p); err != nil {
		return badRequest(c, "body", "could not read brand")
	}
	b, err := h.Catalog.UpdateBrand(id, p)
	if err != nil {
		return fail(c, "admin.brands.update", err)
	}
	applog.Audit(c, "admin.brands.update", map[string]any{"brand_id": id})
	return c.JSON(b)
}

func (h *BrandHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	ok, err := h.Catalog.DeleteBrand(id)
	if err != nil {
		return fail(c, "admin.brands.delete", err)
	}
	if !ok {
		return notFound(c)
	}
	applog.Audit(c, "admin.brands.delete", map[string]any{"brand_id": id})
	return c.SendStatus(fiber.StatusNoContent)
}
