package repos

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"carshop/internal/domain"
	applog "carshop/internal/log"
)

const orderCols = `id, user_id, car_id, customer_name, customer_email, customer_phone,
  customer_address, status, total_amount, notes, created_at, updated_at`

const insertOrder = `INSERT INTO orders(` + orderCols + `) VALUES(
  :id, :user_id, :car_id, :customer_name, :customer_email, :customer_phone,
  :customer_address, :status, :total_amount, :notes, :created_at, :updated_at)`

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

func (r *OrderRepo) List() ([]domain.Order, error) {
	return r.selectOrders(`SELECT ` + orderCols + ` FROM orders ORDER BY created_at, id`)
}

func (r *OrderRepo) ListByUser(userID string) ([]domain.Order, error) {
	return r.selectOrders(`SELECT `+orderCols+` FROM orders WHERE user_id = ? ORDER BY created_at, id`, userID)
}

func (r *OrderRepo) ListByStatus(status domain.OrderStatus) ([]domain.Order, error) {
	return r.selectOrders(`SELECT `+orderCols+` FROM orders WHERE status = ? ORDER BY created_at, id`, status)
}

func (r *OrderRepo) selectOrders(q string, args ...any) ([]domain.Order, error) {
	out := []domain.Order{}
	err := r.db.Select(&out, q, args...)
	return out, err
}

func (r *OrderRepo) Get(id string) (domain.Order, error) {
	var o domain.Order
	err := r.db.Get(&o, `SELECT `+orderCols+` FROM orders WHERE id = ?`, id)
	return o, notFound(err)
}

// Add stores o, filling in a UUID, pending status and timestamps where unset.
func (r *OrderRepo) Add(o domain.Order) (domain.Order, error) {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	if o.Status == "" {
		o.Status = domain.OrderPending
	}
	now := time.Now().UTC()
	o.CreatedAt, o.UpdatedAt = now, now
	if _, err := r.db.NamedExec(insertOrder, o); err != nil {
		return domain.Order{}, err
	}
	return o, nil
}

// AddAll inserts every order in one transaction, so a cart checkout lands whole or not at all.
func (r *OrderRepo) AddAll(orders []domain.Order) ([]domain.Order, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC()
	out := make([]domain.Order, 0, len(orders))
	for _, o := range orders {
		if o.ID == "" {
			o.ID = uuid.NewString()
		}
		if o.Status == "" {
			o.Status = domain.OrderPending
		}
		o.CreatedAt, o.UpdatedAt = now, now
		if _, err := tx.NamedExec(insertOrder, o); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, tx.Commit()
}

// Update merges p as given. Transition rules are enforced by the caller.
func (r *OrderRepo) Update(id string, p domain.OrderPatch) (domain.Order, error) {
	return r.UpdateIf(id, p, nil)
}

// UpdateIf runs check against the stored order inside the write transaction
// and applies the patch only when check returns nil.
func (r *OrderRepo) UpdateIf(id string, p domain.OrderPatch, check func(cur domain.Order) error) (domain.Order, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return domain.Order{}, err
	}
	defer func() { _ = tx.Rollback() }()

	var o domain.Order
	if err := tx.Get(&o, `SELECT `+orderCols+` FROM orders WHERE id = ?`, id); err != nil {
		return domain.Order{}, notFound(err)
	}
	if check != nil {
		if err := check(o); err != nil {
			return domain.Order{}, err
		}
	}
	p.Apply(&o)
	o.UpdatedAt = time.Now().UTC()
	if _, err := tx.NamedExec(`
		UPDATE orders SET customer_name=:customer_name, customer_email=:customer_email,
		  customer_phone=:customer_phone, customer_address=:customer_address, status=:status,
		  total_amount=:total_amount, notes=:notes, updated_at=:updated_at
		WHERE id=:id`, o); err != nil {
		return domain.Order{}, err
	}
	return o, tx.Commit()
}

func (r *OrderRepo) Delete(id string) (bool, error) {
	res, err := r.db.Exec(`DELETE FROM orders WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	return affected(res)
}

// Cancel moves a pending or confirmed order to cancelled. Any other state, or
// an unknown id, leaves storage untouched and reports false.
func (r *OrderRepo) Cancel(id string) (bool, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback() }()

	var status domain.OrderStatus
	if err := tx.Get(&status, `SELECT status FROM orders WHERE id = ?`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			applog.Warn("order.cancel.unknown", map[string]any{"order_id": id})
			return false, nil
		}
		return false, err
	}
	if !status.Cancellable() {
		applog.Warn("order.cancel.rejected", map[string]any{"order_id": id, "status": status})
		return false, nil
	}
	if _, err := tx.Exec(`UPDATE orders SET status = ?, updated_at = ? WHERE id = ?`,
		domain.OrderCancelled, time.Now().UTC(), id); err != nil {
		return false, err
	}
	return true, tx.Commit()
}

func (r *OrderRepo) Count() (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM orders`)
	return n, err
}

// Revenue sums total_amount over every order regardless of status.
func (r *OrderRepo) Revenue() (decimal.Decimal, error) {
	var amounts []decimal.Decimal
	if err := r.db.Select(&amounts, `SELECT total_amount FROM orders`); err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total, nil
}
