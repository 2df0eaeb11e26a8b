package repos

import (
	"sort"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"carshop/internal/domain"
)

const carCols = `id, name, brand, model, year, price, category, fuel, transmission, mileage,
  color, description, features, images, status, created_at, updated_at`

const insertCar = `INSERT INTO cars(` + carCols + `) VALUES(
  :id, :name, :brand, :model, :year, :price, :category, :fuel, :transmission, :mileage,
  :color, :description, :features, :images, :status, :created_at, :updated_at)`

type CarRepo struct{ db *sqlx.DB }

func NewCarRepo(db *sqlx.DB) *CarRepo { return &CarRepo{db: db} }

func (r *CarRepo) List() ([]domain.Car, error) {
	out := []domain.Car{}
	err := r.db.Select(&out, `SELECT `+carCols+` FROM cars ORDER BY CAST(id AS INTEGER)`)
	return out, err
}

func (r *CarRepo) Get(id string) (domain.Car, error) {
	var c domain.Car
	err := r.db.Get(&c, `SELECT `+carCols+` FROM cars WHERE id = ?`, id)
	return c, notFound(err)
}

// Add stores c under the next free id. Any id on c is ignored.
func (r *CarRepo) Add(c domain.Car) (domain.Car, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return domain.Car{}, err
	}
	defer func() { _ = tx.Rollback() }()

	if c.ID, err = nextID(tx, "cars"); err != nil {
		return domain.Car{}, err
	}
	now := time.Now().UTC()
	c.CreatedAt, c.UpdatedAt = now, now
	if c.Features == nil {
		c.Features = domain.StringList{}
	}
	if c.Images == nil {
		c.Images = domain.StringList{}
	}
	if _, err := tx.NamedExec(insertCar, c); err != nil {
		return domain.Car{}, err
	}
	return c, tx.Commit()
}

func (r *CarRepo) Update(id string, p domain.CarPatch) (domain.Car, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return domain.Car{}, err
	}
	defer func() { _ = tx.Rollback() }()

	var c domain.Car
	if err := tx.Get(&c, `SELECT `+carCols+` FROM cars WHERE id = ?`, id); err != nil {
		return domain.Car{}, notFound(err)
	}
	p.Apply(&c)
	c.UpdatedAt = time.Now().UTC()
	if _, err := tx.NamedExec(`
		UPDATE cars SET name=:name, brand=:brand, model=:model, year=:year, price=:price,
		  category=:category, fuel=:fuel, transmission=:transmission, mileage=:mileage,
		  color=:color, description=:description, features=:features, images=:images,
		  status=:status, updated_at=:updated_at
		WHERE id=:id`, c); err != nil {
		return domain.Car{}, err
	}
	return c, tx.Commit()
}

func (r *CarRepo) Delete(id string) (bool, error) {
	res, err := r.db.Exec(`DELETE FROM cars WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	return affected(res)
}

// Search applies the text filters in SQL; price bounds and ordering are done
// on the decoded decimals.
func (r *CarRepo) Search(f domain.CarFilter) ([]domain.Car, error) {
	where := []string{"1=1"}
	args := []any{}
	if q := strings.ToLower(strings.TrimSpace(f.Q)); q != "" {
		like := "%" + q + "%"
		where = append(where, `(LOWER(name) LIKE ? OR LOWER(brand) LIKE ? OR LOWER(model) LIKE ?)`)
		args = append(args, like, like, like)
	}
	if f.Brand != "" {
		where = append(where, `LOWER(brand) = LOWER(?)`)
		args = append(args, f.Brand)
	}
	if f.Category != "" {
		where = append(where, `LOWER(category) = LOWER(?)`)
		args = append(args, f.Category)
	}
	if f.Fuel != "" {
		where = append(where, `fuel = ?`)
		args = append(args, f.Fuel)
	}
	if f.Transmission != "" {
		where = append(where, `transmission = ?`)
		args = append(args, f.Transmission)
	}
	if f.Status != "" {
		where = append(where, `status = ?`)
		args = append(args, f.Status)
	}

	var rows []domain.Car
	if err := r.db.Select(&rows, `SELECT `+carCols+` FROM cars WHERE `+strings.Join(where, " AND ")+`
		ORDER BY CAST(id AS INTEGER)`, args...); err != nil {
		return nil, err
	}

	out := make([]domain.Car, 0, len(rows))
	for _, c := range rows {
		if f.MinPrice != nil && c.Price.LessThan(*f.MinPrice) {
			continue
		}
		if f.MaxPrice != nil && c.Price.GreaterThan(*f.MaxPrice) {
			continue
		}
		out = append(out, c)
	}

	switch f.Sort {
	case "newest":
		sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	case "price_asc":
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price.LessThan(out[j].Price) })
	case "price_desc":
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price.GreaterThan(out[j].Price) })
	}
	return out, nil
}
