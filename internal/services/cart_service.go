package services

import (
	"errors"

	"carshop/internal/domain"
	applog "carshop/internal/log"
	"carshop/internal/repos"
)

// ErrCarUnavailable is returned for cars that are sold or reserved.
var ErrCarUnavailable = errors.New("this car is no longer available")

func available(car domain.Car) error {
	if car.Status != domain.CarAvailable {
		applog.Warn("car.unavailable", map[string]any{"car_id": car.ID, "status": car.Status})
		return ErrCarUnavailable
	}
	return nil
}

type CartService struct {
	Carts *repos.CartRepo
	Cars  *repos.CarRepo
}

func NewCartService(carts *repos.CartRepo, cars *repos.CarRepo) *CartService {
	return &CartService{Carts: carts, Cars: cars}
}

func (s *CartService) View(sid string) (domain.Cart, error) {
	return s.Carts.Load(sid)
}

// Add puts one unit of the car in the cart. A car already in the cart is left
// alone and Add reports false. Only available cars can be added.
func (s *CartService) Add(sid, carID string) (domain.Cart, bool, error) {
	car, err := s.Cars.Get(carID)
	if err != nil {
		return nil, false, err
	}
	if err := available(car); err != nil {
		return nil, false, err
	}
	cart, err := s.Carts.Load(sid)
	if err != nil {
		return nil, false, err
	}
	if cart.Index(carID) >= 0 {
		applog.Warn("cart.add.duplicate", map[string]any{"sid": sid, "car_id": carID})
		return cart, false, nil
	}
	cart = append(cart, domain.CartItem{Car: car, Quantity: 1})
	if err := s.Carts.Save(sid, cart); err != nil {
		return nil, false, err
	}
	return cart, true, nil
}

// UpdateQuantity removes the item when q <= 0. Unknown cars are ignored.
func (s *CartService) UpdateQuantity(sid, carID string, q int) (domain.Cart, error) {
	if q <= 0 {
		return s.Remove(sid, carID)
	}
	cart, err := s.Carts.Load(sid)
	if err != nil {
		return nil, err
	}
	i := cart.Index(carID)
	if i < 0 {
		return cart, nil
	}
	cart[i].Quantity = max(1, q)
	return cart, s.Carts.Save(sid, cart)
}

func (s *CartService) Remove(sid, carID string) (domain.Cart, error) {
	cart, err := s.Carts.Load(sid)
	if err != nil {
		return nil, err
	}
	i := cart.Index(carID)
	if i < 0 {
		return cart, nil
	}
	cart = append(cart[:i], cart[i+1:]...)
	return cart, s.Carts.Save(sid, cart)
}

func (s *CartService) Clear(sid string) error {
	return s.Carts.Clear(sid)
}
