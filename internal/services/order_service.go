package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"carshop/internal/domain"
	applog "carshop/internal/log"
	"carshop/internal/repos"
	"carshop/internal/validate"
)

var ErrEmptyCart = errors.New("cart is empty")

// Contact is the delivery block of the checkout form.
type Contact struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
}

type OrderService struct {
	Orders *repos.OrderRepo
	Cars   *repos.CarRepo
	Cart   *CartService
}

func NewOrderService(orders *repos.OrderRepo, cars *repos.CarRepo, cart *CartService) *OrderService {
	return &OrderService{Orders: orders, Cars: cars, Cart: cart}
}

// Checkout places a pending order for one car. A nil user checks out as guest.
func (s *OrderService) Checkout(u *domain.User, carID string, ct Contact) (domain.Order, error) {
	if err := validate.Checkout(ct.Name, ct.Email, ct.Phone, ct.Address).Err(); err != nil {
		return domain.Order{}, err
	}
	car, err := s.Cars.Get(carID)
	if err != nil {
		return domain.Order{}, err
	}
	if err := available(car); err != nil {
		return domain.Order{}, err
	}
	userID := domain.GuestUserID
	if u != nil {
		userID = u.ID
	}
	return s.Orders.Add(domain.Order{
		UserID:          userID,
		CarID:           car.ID,
		CustomerName:    strings.TrimSpace(ct.Name),
		CustomerEmail:   strings.TrimSpace(ct.Email),
		CustomerPhone:   strings.TrimSpace(ct.Phone),
		CustomerAddress: strings.TrimSpace(ct.Address),
		TotalAmount:     car.Price,
		Notes:           strings.TrimSpace(ct.Notes),
	})
}

// PlaceCart turns every cart line into its own pending order, priced at
// price x quantity, then empties the cart. Each car is re-read so a car sold
// since it was added fails the whole checkout.
func (s *OrderService) PlaceCart(sid string, u *domain.User) ([]domain.Order, error) {
	cart, err := s.Cart.View(sid)
	if err != nil {
		return nil, err
	}
	if len(cart) == 0 {
		return nil, ErrEmptyCart
	}
	orders := make([]domain.Order, 0, len(cart))
	for _, it := range cart {
		car, err := s.Cars.Get(it.Car.ID)
		if err != nil {
			return nil, err
		}
		if err := available(car); err != nil {
			return nil, err
		}
		orders = append(orders, domain.Order{
			UserID:          u.ID,
			CarID:           car.ID,
			CustomerName:    u.FullName,
			CustomerEmail:   u.Email,
			CustomerPhone:   u.Phone,
			CustomerAddress: u.Address,
			TotalAmount:     car.Price.Mul(decimal.NewFromInt(int64(it.Quantity))),
		})
	}
	placed, err := s.Orders.AddAll(orders)
	if err != nil {
		return nil, err
	}
	if err := s.Cart.Clear(sid); err != nil {
		return placed, err
	}
	return placed, nil
}

// ListForUser returns the user's orders, newest first.
func (s *OrderService) ListForUser(userID string) ([]domain.Order, error) {
	out, err := s.Orders.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	newestFirst(out)
	return out, nil
}

// CancelOwn cancels an order that belongs to userID. Someone else's order is
// reported as not found.
func (s *OrderService) CancelOwn(userID, orderID string) (bool, error) {
	o, err := s.Orders.Get(orderID)
	if err != nil {
		return false, err
	}
	if o.UserID != userID {
		applog.Warn("order.cancel.not_owner", map[string]any{"order_id": orderID, "user_id": userID})
		return false, repos.ErrNotFound
	}
	return s.Orders.Cancel(orderID)
}

// List returns every order, or only those in status when it is set; newest first.
func (s *OrderService) List(status domain.OrderStatus) ([]domain.Order, error) {
	var (
		out []domain.Order
		err error
	)
	if status == "" {
		out, err = s.Orders.List()
	} else {
		out, err = s.Orders.ListByStatus(status)
	}
	if err != nil {
		return nil, err
	}
	newestFirst(out)
	return out, nil
}

func (s *OrderService) Get(id string) (domain.Order, error) {
	return s.Orders.Get(id)
}

// Update applies an admin edit. A status change must follow the transition table.
func (s *OrderService) Update(id string, p domain.OrderPatch) (domain.Order, error) {
	if p.TotalAmount != nil && p.TotalAmount.IsNegative() {
		return domain.Order{}, validate.Errors{"totalAmount": "total cannot be negative"}
	}
	return s.Orders.UpdateIf(id, p, func(cur domain.Order) error {
		if p.Status != nil && !cur.Status.CanTransition(*p.Status) {
			return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, cur.Status, *p.Status)
		}
		return nil
	})
}

func (s *OrderService) Delete(id string) (bool, error) {
	return s.Orders.Delete(id)
}

func newestFirst(orders []domain.Order) {
	sort.SliceStable(orders, func(i, j int) bool { return orders[i].CreatedAt.After(orders[j].CreatedAt) })
}
