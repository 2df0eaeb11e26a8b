package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// GuestUserID marks orders placed without a session user.
const GuestUserID = "guest"

var ErrInvalidTransition = errors.New("order status transition not allowed")

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderConfirmed OrderStatus = "confirmed"
	OrderCompleted OrderStatus = "completed"
	OrderCancelled OrderStatus = "cancelled"
)

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderPending:   {OrderConfirmed, OrderCancelled},
	OrderConfirmed: {OrderCompleted, OrderCancelled},
	OrderCompleted: nil,
	OrderCancelled: nil,
}

func (s OrderStatus) Valid() bool {
	_, ok := orderTransitions[s]
	return ok
}

// CanTransition reports whether an order in status s may move to next.
// Re-applying the current status is allowed and changes nothing.
func (s OrderStatus) CanTransition(next OrderStatus) bool {
	if !next.Valid() {
		return false
	}
	if s == next {
		return true
	}
	for _, to := range orderTransitions[s] {
		if to == next {
			return true
		}
	}
	return false
}

func (s OrderStatus) Cancellable() bool {
	return s != OrderCancelled && s.CanTransition(OrderCancelled)
}

type Order struct {
	ID              string          `db:"id" json:"id"`
	UserID          string          `db:"user_id" json:"userId"`
	CarID           string          `db:"car_id" json:"carId"`
	CustomerName    string          `db:"customer_name" json:"customerName"`
	CustomerEmail   string          `db:"customer_email" json:"customerEmail"`
	CustomerPhone   string          `db:"customer_phone" json:"customerPhone"`
	CustomerAddress string          `db:"customer_address" json:"customerAddress,omitempty"`
	Status          OrderStatus     `db:"status" json:"status"`
	TotalAmount     decimal.Decimal `db:"total_amount" json:"totalAmount"`
	Notes           string          `db:"notes" json:"notes,omitempty"`
	CreatedAt       time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt       time.Time       `db:"updated_at" json:"updatedAt"`
}

// OrderPatch is the admin edit shape. Status changes are checked against the
// transition table by the order service before the patch reaches storage.
type OrderPatch struct {
	Status          *OrderStatus     `json:"status,omitempty"`
	CustomerName    *string          `json:"customerName,omitempty"`
	CustomerEmail   *string          `json:"customerEmail,omitempty"`
	CustomerPhone   *string          `json:"customerPhone,omitempty"`
	CustomerAddress *string          `json:"customerAddress,omitempty"`
	TotalAmount     *decimal.Decimal `json:"totalAmount,omitempty"`
	Notes           *string          `json:"notes,omitempty"`
}

func (p OrderPatch) Apply(o *Order) {
	if p.Status != nil {
		o.Status = *p.Status
	}
	if p.CustomerName != nil {
		o.CustomerName = *p.CustomerName
	}
	if p.CustomerEmail != nil {
		o.CustomerEmail = *p.CustomerEmail
	}
	if p.CustomerPhone != nil {
		o.CustomerPhone = *p.CustomerPhone
	}
	if p.CustomerAddress != nil {
		o.CustomerAddress = *p.CustomerAddress
	}
	if p.TotalAmount != nil {
		o.TotalAmount = *p.TotalAmount
	}
	if p.Notes != nil {
		o.Notes = *p.Notes
	}
}
