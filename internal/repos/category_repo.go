package repos

import (
	"time"

	"github.com/jmoiron/sqlx"

	"carshop/internal/domain"
)

const categoryCols = `id, name, slug, description, created_at, updated_at`

const insertCategory = `INSERT INTO categories(` + categoryCols + `)
  VALUES(:id, :name, :slug, :description, :created_at, :updated_at)`

type CategoryRepo struct{ db *sqlx.DB }

func NewCategoryRepo(db *sqlx.DB) *CategoryRepo { return &CategoryRepo{db: db} }

func (r *CategoryRepo) List() ([]domain.Category, error) {
	out := []domain.Category{}
	err := r.db.Select(&out, `SELECT `+categoryCols+` FROM categories ORDER BY CAST(id AS INTEGER)`)
	return out, err
}

func (r *CategoryRepo) Get(id string) (domain.Category, error) {
	var c domain.Category
	err := r.db.Get(&c, `SELECT `+categoryCols+` FROM categories WHERE id = ?`, id)
	return c, notFound(err)
}

func (r *CategoryRepo) Add(c domain.Category) (domain.Category, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return domain.Category{}, err
	}
	defer func() { _ = tx.Rollback() }()

	if c.ID, err = nextID(tx, "categories"); err != nil {
		return domain.Category{}, err
	}
	now := time.Now().UTC()
	c.CreatedAt, c.UpdatedAt = now, now
	if _, err := tx.NamedExec(insertCategory, c); err != nil {
		return domain.Category{}, err
	}
	return c, tx.Commit()
}

func (r *CategoryRepo) Update(id string, p domain.CategoryPatch) (domain.Category, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return domain.Category{}, err
	}
	defer func() { _ = tx.Rollback() }()

	var c domain.Category
	if err := tx.Get(&c, `SELECT `+categoryCols+` FROM categories WHERE id = ?`, id); err != nil {
		return domain.Category{}, notFound(err)
	}
	p.Apply(&c)
	c.UpdatedAt = time.Now().UTC()
	if _, err := tx.NamedExec(`UPDATE categories SET name=:name, slug=:slug, description=:description,
		updated_at=:updated_at WHERE id=:id`, c); err != nil {
		return domain.Category{}, err
	}
	return c, tx.Commit()
}

// Delete leaves cars that name the category untouched.
func (r *CategoryRepo) Delete(id string) (bool, error) {
	res, err := r.db.Exec(`DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	return affected(res)
}
