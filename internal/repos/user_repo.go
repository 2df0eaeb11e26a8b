package repos

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"carshop/internal/domain"
)

var (
	ErrEmailTaken = errors.New("email already registered")
	ErrLastAdmin  = errors.New("cannot delete the only admin account")
)

const userCols = `id, email, password_hash, full_name, role, avatar, phone, address, created_at, updated_at`

const insertUser = `INSERT INTO users(` + userCols + `) VALUES(
  :id, :email, :password_hash, :full_name, :role, :avatar, :phone, :address, :created_at, :updated_at)`

type UserRepo struct{ DB *sqlx.DB }

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{DB: db} }

func (r *UserRepo) ByEmail(email string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `SELECT `+userCols+` FROM users WHERE LOWER(email)=LOWER(?)`, strings.TrimSpace(email))
	if err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (r *UserRepo) Get(id string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `SELECT `+userCols+` FROM users WHERE id=?`, id)
	if err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (r *UserRepo) List() ([]domain.User, error) {
	out := []domain.User{}
	err := r.DB.Select(&out, `SELECT `+userCols+` FROM users ORDER BY CAST(id AS INTEGER)`)
	return out, err
}

// Add hashes password and stores u under the next free id.
func (r *UserRepo) Add(u domain.User, password string) (*domain.User, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), HashCost)
	if err != nil {
		return nil, err
	}
	tx, err := r.DB.Beginx()
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	var n int
	if err := tx.Get(&n, `SELECT COUNT(*) FROM users WHERE LOWER(email)=LOWER(?)`, u.Email); err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, ErrEmailTaken
	}
	if u.ID, err = nextID(tx, "users"); err != nil {
		return nil, err
	}
	if u.Role == "" {
		u.Role = domain.RoleUser
	}
	u.Hash = string(h)
	now := time.Now().UTC()
	u.CreatedAt, u.UpdatedAt = now, now
	if _, err := tx.NamedExec(insertUser, u); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdateProfile writes the whitelisted profile fields. Email and role never change here.
func (r *UserRepo) UpdateProfile(id string, p domain.ProfilePatch) (*domain.User, error) {
	tx, err := r.DB.Beginx()
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	var u domain.User
	if err := tx.Get(&u, `SELECT `+userCols+` FROM users WHERE id=?`, id); err != nil {
		return nil, notFound(err)
	}
	p.Apply(&u)
	u.UpdatedAt = time.Now().UTC()
	if _, err := tx.NamedExec(`UPDATE users SET full_name=:full_name, phone=:phone, address=:address,
		avatar=:avatar, updated_at=:updated_at WHERE id=:id`, u); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &u, nil
}

// Delete removes the user and signs out their sessions. Orders are kept.
func (r *UserRepo) Delete(id string) (bool, error) {
	return r.deleteUser(id, false)
}

// DeleteKeepingAdmin deletes like Delete but refuses, with ErrLastAdmin, to
// remove the only remaining admin. The count is taken in the same transaction.
func (r *UserRepo) DeleteKeepingAdmin(id string) (bool, error) {
	return r.deleteUser(id, true)
}

func (r *UserRepo) deleteUser(id string, keepAdmin bool) (bool, error) {
	tx, err := r.DB.Beginx()
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback() }()

	if keepAdmin {
		var role domain.Role
		if err := tx.Get(&role, `SELECT role FROM users WHERE id = ?`, id); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return false, nil
			}
			return false, err
		}
		if role == domain.RoleAdmin {
			var n int
			if err := tx.Get(&n, `SELECT COUNT(*) FROM users WHERE role = ?`, domain.RoleAdmin); err != nil {
				return false, err
			}
			if n <= 1 {
				return false, ErrLastAdmin
			}
		}
	}
	if _, err := tx.Exec(`UPDATE sessions SET user_id = NULL WHERE user_id = ?`, id); err != nil {
		return false, err
	}
	res, err := tx.Exec(`DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	ok, err := affected(res)
	if err != nil {
		return false, err
	}
	return ok, tx.Commit()
}

func (r *UserRepo) CountAdmins() (int, error) {
	var n int
	err := r.DB.Get(&n, `SELECT COUNT(*) FROM users WHERE role = ?`, domain.RoleAdmin)
	return n, err
}

func (r *UserRepo) CountByRole(role domain.Role) (int, error) {
	var n int
	err := r.DB.Get(&n, `SELECT COUNT(*) FROM users WHERE role = ?`, role)
	return n, err
}

// ---------- sessions ----------

func (r *UserRepo) BindSession(sid, userID string) error {
	now := time.Now().UTC()
	_, err := r.DB.Exec(`
		INSERT INTO sessions(id, user_id, created_at, last_seen) VALUES(?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET user_id = excluded.user_id, last_seen = excluded.last_seen
	`, sid, userID, now, now)
	return err
}

func (r *UserRepo) UnbindSession(sid string) error {
	_, err := r.DB.Exec(`UPDATE sessions SET user_id = NULL, last_seen = ? WHERE id = ?`, time.Now().UTC(), sid)
	return err
}

// SessionUser returns the user bound to sid, or nil when the session is
// anonymous, unknown, or points at a deleted user.
func (r *UserRepo) SessionUser(sid string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `
		SELECT u.id, u.email, u.password_hash, u.full_name, u.role, u.avatar, u.phone, u.address,
		       u.created_at, u.updated_at
		FROM sessions s JOIN users u ON u.id = s.user_id
		WHERE s.id = ?`, sid)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
