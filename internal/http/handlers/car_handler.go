package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"carshop/internal/domain"
	applog "carshop/internal/log"
	"carshop/internal/repos"
	"carshop/internal/services"
	"carshop/internal/validate"
)

type CarHandler struct {
	Catalog *services.CatalogService
}

var carSorts = map[string]bool{"newest": true, "price_asc": true, "price_desc": true}

// filterFromQuery reads catalog filters; the returned field names a bad parameter.
func filterFromQuery(c *fiber.Ctx) (domain.CarFilter, string) {
	f := domain.CarFilter{
		Q:            validate.Q(c.Query("q")),
		Brand:        c.Query("brand"),
		Category:     c.Query("category"),
		Fuel:         domain.Fuel(c.Query("fuel")),
		Transmission: domain.Transmission(c.Query("transmission")),
		Status:       domain.CarStatus(c.Query("status")),
	}
	if f.Fuel != "" && !f.Fuel.Valid() {
		return f, "fuel"
	}
	if f.Transmission != "" && !f.Transmission.Valid() {
		return f, "transmission"
	}
	if f.Status != "" && !f.Status.Valid() {
		return f, "status"
	}
	for _, p := range []struct {
		key string
		dst **decimal.Decimal
	}{{"minPrice", &f.MinPrice}, {"maxPrice", &f.MaxPrice}} {
		if raw := c.Query(p.key); raw != "" {
			d, err := decimal.NewFromString(raw)
			if err != nil {
				return f, p.key
			}
			*p.dst = &d
		}
	}
	if s := c.Query("sort"); carSorts[s] {
		f.Sort = s
	}
	return f, ""
}

// GET /api/v1/cars
func (h *CarHandler) List(c *fiber.Ctx) error {
	f, bad := filterFromQuery(c)
	if bad != "" {
		return badRequest(c, bad, "invalid filter value")
	}
	cars, err := h.Catalog.ListCars(f)
	if err != nil {
		return fail(c, "cars.list", err)
	}
	return c.JSON(cars)
}

// GET /api/v1/cars/:id
func (h *CarHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return notFound(c)
	}
	car, err := h.Catalog.GetCar(id)
	if err != nil {
		return fail(c, "cars.get", err)
	}
	return sendWithETag(c, car)
}

// POST /api/v1/admin/cars
func (h *CarHandler) Create(c *fiber.Ctx) error {
	var in domain.Car
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "body", "could not read car")
	}
	car, err := h.Catalog.CreateCar(in)
	if err != nil {
		return fail(c, "admin.cars.create", err)
	}
	applog.Audit(c, "admin.cars.create", map[string]any{"car_id": car.ID, "name": car.Name})
	return c.Status(fiber.StatusCreated).JSON(car)
}

// PUT /api/v1/admin/cars/:id
func (h *CarHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	var p domain.CarPatch
	if err := c.BodyParser(&p); err != nil {
		return badRequest(c, "body", "could not read car")
	}
	car, err := h.Catalog.UpdateCar(id, p)
	if err != nil {
		return fail(c, "admin.cars.update", err)
	}
	applog.Audit(c, "admin.cars.update", map[string]any{"car_id": id})
	return c.JSON(car)
}

// DELETE /api/v1/admin/cars/:id
func (h *CarHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	ok, err := h.Catalog.DeleteCar(id)
	if err != nil {
		return fail(c, "admin.cars.delete", err)
	}
	if !ok {
		return notFound(c)
	}
	applog.Audit(c, "admin.cars.delete", map[string]any{"car_id": id})
	return c.SendStatus(fiber.StatusNoContent)
}

// GET /
func (h *CarHandler) CatalogPage(c *fiber.Ctx) error {
	f, bad := filterFromQuery(c)
	if bad != "" {
		applog.Security(c, "validation.fail", map[string]any{"field": bad})
		return c.Status(fiber.StatusBadRequest).Render("notfound", fiber.Map{"Message": "Invalid filter"})
	}
	cars, err := h.Catalog.ListCars(f)
	if err != nil {
		return err
	}
	cats, err := h.Catalog.ListCategories()
	if err != nil {
		return err
	}
	brands, err := h.Catalog.ListBrands()
	if err != nil {
		return err
	}
	return render(c, "catalog", fiber.Map{
		"Cars": cars, "Count": len(cars), "Categories": cats, "Brands": brands, "Filter": f,
	})
}

// GET /cars/:id
func (h *CarHandler) CarPage(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "This car is no longer available"})
	}
	car, err := h.Catalog.GetCar(id)
	if errors.Is(err, repos.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "This car is no longer available"})
	}
	if err != nil {
		return err
	}
	return render(c, "car", fiber.Map{"Car": car})
}
