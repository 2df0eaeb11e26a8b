package repos

import (
	"time"

	"github.com/jmoiron/sqlx"

	"carshop/internal/domain"
)

const brandCols = `id, name, logo, description, created_at, updated_at`

const insertBrand = `INSERT INTO brands(` + brandCols + `)
  VALUES(:id, :name, :logo, :description, :created_at, :updated_at)`

type BrandRepo struct{ db *sqlx.DB }

func NewBrandRepo(db *sqlx.DB) *BrandRepo { return &BrandRepo{db: db} }

func (r *BrandRepo) List() ([]domain.Brand, error) {
	out := []domain.Brand{}
	err := r.db.Select(&out, `SELECT `+brandCols+` FROM brands ORDER BY CAST(id AS INTEGER)`)
	return out, err
}

func (r *BrandRepo) Get(id string) (domain.Brand, error) {
	var b domain.Brand
	err := r.db.Get(&b, `SELECT `+brandCols+` FROM brands WHERE id = ?`, id)
	return b, notFound(err)
}

func (r *BrandRepo) Add(b domain.Brand) (domain.Brand, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return domain.Brand{}, err
	}
	defer func() { _ = tx.Rollback() }()

	if b.ID, err = nextID(tx, "brands"); err != nil {
		return domain.Brand{}, err
	}
	now := time.Now().UTC()
	b.CreatedAt, b.UpdatedAt = now, now
	if _, err := tx.NamedExec(insertBrand, b); err != nil {
		return domain.Brand{}, err
	}
	return b, tx.Commit()
}

func (r *BrandRepo) Update(id string, p domain.BrandPatch) (domain.Brand, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return domain.Brand{}, err
	}
	defer func() { _ = tx.Rollback() }()

	var b domain.Brand
	if err := tx.Get(&b, `SELECT `+brandCols+` FROM brands WHERE id = ?`, id); err != nil {
		return domain.Brand{}, notFound(err)
	}
	p.Apply(&b)
	b.UpdatedAt = time.Now().UTC()
	if _, err := tx.NamedExec(`UPDATE brands SET name=:name, logo=:logo, description=:description,
		updated_at=:updated_at WHERE id=:id`, b); err != nil {
		return domain.Brand{}, err
	}
	return b, tx.Commit()
}

func (r *BrandRepo) Delete(id string) (bool, error) {
	res, err := r.db.Exec(`DELETE FROM brands WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	return affected(res)
}
