package services

import (
	"errors"
	"strings"
	"time"

	"carshop/internal/domain"
	"carshop/internal/format"
	"carshop/internal/repos"
	"carshop/internal/validate"
)

var ErrDuplicateName = errors.New("name already in use")

type CatalogService struct {
	Cars   *repos.CarRepo
	Cats   *repos.CategoryRepo
	Brands *repos.BrandRepo
}

func NewCatalogService(cars *repos.CarRepo, cats *repos.CategoryRepo, brands *repos.BrandRepo) *CatalogService {
	return &CatalogService{Cars: cars, Cats: cats, Brands: brands}
}

// ---------- cars ----------

func (s *CatalogService) ListCars(f domain.CarFilter) ([]domain.Car, error) {
	return s.Cars.Search(f)
}

func (s *CatalogService) GetCar(id string) (domain.Car, error) {
	return s.Cars.Get(id)
}

func (s *CatalogService) CreateCar(c domain.Car) (domain.Car, error) {
	if c.Status == "" {
		c.Status = domain.CarAvailable
	}
	if err := validate.Car(c, time.Now()).Err(); err != nil {
		return domain.Car{}, err
	}
	return s.Cars.Add(c)
}

// UpdateCar validates the record as it would look after the patch.
func (s *CatalogService) UpdateCar(id string, p domain.CarPatch) (domain.Car, error) {
	cur, err := s.Cars.Get(id)
	if err != nil {
		return domain.Car{}, err
	}
	p.Apply(&cur)
	if err := validate.Car(cur, time.Now()).Err(); err != nil {
		return domain.Car{}, err
	}
	return s.Cars.Update(id, p)
}

func (s *CatalogService) DeleteCar(id string) (bool, error) {
	return s.Cars.Delete(id)
}

// ---------- categories ----------

func (s *CatalogService) ListCategories() ([]domain.Category, error) {
	return s.Cats.List()
}

func (s *CatalogService) GetCategory(id string) (domain.Category, error) {
	return s.Cats.Get(id)
}

func (s *CatalogService) CreateCategory(name, description string) (domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Category{}, validate.Errors{"name": "category name is required"}
	}
	if err := s.categoryNameFree(name, ""); err != nil {
		return domain.Category{}, err
	}
	return s.Cats.Add(domain.Category{
		Name:        name,
		Slug:        format.Slug(name),
		Description: strings.TrimSpace(description),
	})
}

// UpdateCategory re-derives the slug whenever the name changes.
func (s *CatalogService) UpdateCategory(id string, p domain.CategoryPatch) (domain.Category, error) {
	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		if name == "" {
			return domain.Category{}, validate.Errors{"name": "category name is required"}
		}
		if err := s.categoryNameFree(name, id); err != nil {
			return domain.Category{}, err
		}
		slug := format.Slug(name)
		p.Name, p.Slug = &name, &slug
	}
	return s.Cats.Update(id, p)
}

func (s *CatalogService) categoryNameFree(name, selfID string) error {
	cats, err := s.Cats.List()
	if err != nil {
		return err
	}
	for _, c := range cats {
		if c.ID != selfID && strings.EqualFold(c.Name, name) {
			return ErrDuplicateName
		}
	}
	return nil
}

func (s *CatalogService) DeleteCategory(id string) (bool, error) {
	return s.Cats.Delete(id)
}

// ---------- brands ----------

func (s *CatalogService) ListBrands() ([]domain.Brand, error) {
	return s.Brands.List()
}

func (s *CatalogService) GetBrand(id string) (domain.Brand, error) {
	return s.Brands.Get(id)
}

func (s *CatalogService) CreateBrand(b domain.Brand) (domain.Brand, error) {
	b.Name = strings.TrimSpace(b.Name)
	if b.Name == "" {
		return domain.Brand{}, validate.Errors{"name": "brand name is required"}
	}
	return s.Brands.Add(b)
}

func (s *CatalogService) UpdateBrand(id string, p domain.BrandPatch) (domain.Brand, error) {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return domain.Brand{}, validate.Errors{"name": "brand name is required"}
	}
	return s.Brands.Update(id, p)
}

func (s *CatalogService) DeleteBrand(id string) (bool, error) {
	return s.Brands.Delete(id)
}
