package services

import (
	"sort"

	"github.com/shopspring/decimal"

	"carshop/internal/domain"
	"carshop/internal/repos"
)

const recentLimit = 5

type Stats struct {
	TotalCars      int                 `json:"totalCars"`
	AvailableCars  int                 `json:"availableCars"`
	TotalOrders    int                 `json:"totalOrders"`
	TotalCustomers int                 `json:"totalCustomers"`
	TotalRevenue   decimal.Decimal     `json:"totalRevenue"`
	RecentOrders   []domain.Order      `json:"recentOrders"`
	RecentUsers    []domain.PublicUser `json:"recentUsers"`
}

type DashboardService struct {
	Cars   *repos.CarRepo
	Orders *repos.OrderRepo
	Users  *repos.UserRepo
}

func NewDashboardService(cars *repos.CarRepo, orders *repos.OrderRepo, users *repos.UserRepo) *DashboardService {
	return &DashboardService{Cars: cars, Orders: orders, Users: users}
}

// Stats computes the back-office summary. Revenue counts every order, whatever its status.
// Recent users lists customers only.
func (s *DashboardService) Stats() (Stats, error) {
	var st Stats

	cars, err := s.Cars.List()
	if err != nil {
		return st, err
	}
	st.TotalCars = len(cars)
	for _, c := range cars {
		if c.Status == domain.CarAvailable {
			st.AvailableCars++
		}
	}

	orders, err := s.Orders.List()
	if err != nil {
		return st, err
	}
	st.TotalOrders = len(orders)
	if st.TotalRevenue, err = s.Orders.Revenue(); err != nil {
		return st, err
	}
	newestFirst(orders)
	st.RecentOrders = orders[:min(recentLimit, len(orders))]

	if st.TotalCustomers, err = s.Users.CountByRole(domain.RoleUser); err != nil {
		return st, err
	}
	users, err := s.Users.List()
	if err != nil {
		return st, err
	}
	sort.SliceStable(users, func(i, j int) bool { return users[i].CreatedAt.After(users[j].CreatedAt) })
	st.RecentUsers = make([]domain.PublicUser, 0, recentLimit)
	for _, u := range users {
		if len(st.RecentUsers) == recentLimit {
			break
		}
		if u.Role == domain.RoleUser {
			st.RecentUsers = append(st.RecentUsers, u.Public())
		}
	}
	return st, nil
}
