package services

import (
	"errors"
	"strings"

	"carshop/internal/domain"
	applog "carshop/internal/log"
	"carshop/internal/repos"
	"carshop/internal/validate"
)

var (
	ErrLastAdmin  = repos.ErrLastAdmin
	ErrEmailTaken = repos.ErrEmailTaken
)

type UserService struct {
	Users  *repos.UserRepo
	Orders *repos.OrderRepo
}

func NewUserService(users *repos.UserRepo, orders *repos.OrderRepo) *UserService {
	return &UserService{Users: users, Orders: orders}
}

func (s *UserService) List() ([]domain.User, error) {
	return s.Users.List()
}

// Detail returns the user together with every order they placed.
func (s *UserService) Detail(id string) (*domain.User, []domain.Order, error) {
	u, err := s.Users.Get(id)
	if err != nil {
		return nil, nil, err
	}
	orders, err := s.Orders.ListByUser(id)
	if err != nil {
		return nil, nil, err
	}
	newestFirst(orders)
	return u, orders, nil
}

type NewUser struct {
	Email    string      `json:"email"`
	Password string      `json:"password"`
	FullName string      `json:"fullName"`
	Role     domain.Role `json:"role"`
	Phone    string      `json:"phone"`
	Address  string      `json:"address"`
	Avatar   string      `json:"avatar"`
}

func (s *UserService) Create(in NewUser) (*domain.User, error) {
	if err := validate.NewUser(in.Email, in.Password, in.FullName, in.Role).Err(); err != nil {
		return nil, err
	}
	return s.Users.Add(domain.User{
		Email:    strings.TrimSpace(in.Email),
		FullName: strings.TrimSpace(in.FullName),
		Role:     in.Role,
		Phone:    strings.TrimSpace(in.Phone),
		Address:  strings.TrimSpace(in.Address),
		Avatar:   in.Avatar,
	}, in.Password)
}

// Delete refuses to remove the last remaining admin. Unknown ids report false.
func (s *UserService) Delete(id string) (bool, error) {
	ok, err := s.Users.DeleteKeepingAdmin(id)
	if errors.Is(err, ErrLastAdmin) {
		applog.Warn("user.delete.last_admin", map[string]any{"user_id": id})
	}
	return ok, err
}

// UpdateProfile is the single write path for profile edits.
func (s *UserService) UpdateProfile(id string, p domain.ProfilePatch) (*domain.User, error) {
	if err := validate.Profile(p).Err(); err != nil {
		return nil, err
	}
	return s.Users.UpdateProfile(id, p)
}
