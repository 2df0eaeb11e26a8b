package services_test

import (
	"bytes"
	"errors"
	"os"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx"
	"golang.org/x/crypto/bcrypt"

	"carshop/internal/domain"
	"carshop/internal/repos"
	"carshop/internal/services"
	"carshop/internal/storage"
	"carshop/internal/validate"
)

func TestMain(m *testing.M) {
	repos.HashCost = bcrypt.MinCost
	os.Exit(m.Run())
}

type stack struct {
	db        *sqlx.DB
	users     *repos.UserRepo
	orders    *repos.OrderRepo
	auth      *services.AuthService
	catalog   *services.CatalogService
	cart      *services.CartService
	order     *services.OrderService
	user      *services.UserService
	dashboard *services.DashboardService
	export    *services.ExportService
}

func newStack(t *testing.T) stack {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	cars := repos.NewCarRepo(db)
	users := repos.NewUserRepo(db)
	orders := repos.NewOrderRepo(db)
	cart := services.NewCartService(repos.NewCartRepo(storage.NewKV(db)), cars)
	return stack{
		db:        db,
		users:     users,
		orders:    orders,
		auth:      &services.AuthService{Users: users},
		catalog:   services.NewCatalogService(cars, repos.NewCategoryRepo(db), repos.NewBrandRepo(db)),
		cart:      cart,
		order:     services.NewOrderService(orders, cars, cart),
		user:      services.NewUserService(users, orders),
		dashboard: services.NewDashboardService(cars, orders, users),
		export:    services.NewExportService(cars, orders),
	}
}

func ptr[T any](v T) *T { return &v }

func TestLoginBindsSession(t *testing.T) {
	s := newStack(t)

	_, err := s.auth.Login("sid-1", "admin@carshop.com", "wrong")
	assert.ErrorIs(t, err, services.ErrBadCreds)
	_, err = s.auth.Login("sid-1", "nobody@carshop.com", "admin123")
	assert.ErrorIs(t, err, services.ErrBadCreds)

	u, err := s.auth.Login("sid-1", "ADMIN@carshop.com", "admin123")
	require.NoError(t, err)
	assert.True(t, u.IsAdmin())

	cur, err := s.auth.CurrentUser("sid-1")
	require.NoError(t, err)
	require.NotNil(t, cur)
	assert.Equal(t, "1", cur.ID)

	require.NoError(t, s.auth.Logout("sid-1"))
	cur, err = s.auth.CurrentUser("sid-1")
	require.NoError(t, err)
	assert.Nil(t, cur)
}

func TestProfileUpdateVisibleThroughSession(t *testing.T) {
	s := newStack(t)
	_, err := s.auth.Login("sid-2", "user@gmail.com", "user123")
	require.NoError(t, err)

	_, err = s.user.UpdateProfile("2", domain.ProfilePatch{FullName: ptr("Nguyễn Văn B")})
	require.NoError(t, err)

	cur, err := s.auth.CurrentUser("sid-2")
	require.NoError(t, err)
	assert.Equal(t, "Nguyễn Văn B", cur.FullName)

	_, err = s.user.UpdateProfile("2", domain.ProfilePatch{Phone: ptr("12345")})
	var verr validate.Errors
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr, "phone")
}

func TestCartDoubleAddAndQuantity(t *testing.T) {
	s := newStack(t)

	cart, added, err := s.cart.Add("sid", "1")
	require.NoError(t, err)
	assert.True(t, added)
	assert.Len(t, cart, 1)

	cart, added, err = s.cart.Add("sid", "1")
	require.NoError(t, err)
	assert.False(t, added)
	assert.Len(t, cart, 1)
	assert.Equal(t, 1, cart[0].Quantity)

	_, _, err = s.cart.Add("sid", "2")
	require.NoError(t, err)
	cart, err = s.cart.UpdateQuantity("sid", "2", 3)
	require.NoError(t, err)
	assert.Equal(t, 4, cart.TotalItems())
	assert.True(t, cart.TotalAmount().Equal(decimal.NewFromInt(1250000000+3*950000000)))

	cart, err = s.cart.UpdateQuantity("sid", "1", 0)
	require.NoError(t, err)
	require.Len(t, cart, 1)
	assert.Equal(t, "2", cart[0].Car.ID)

	// rehydrated from storage, not from the returned slice
	cart, err = s.cart.View("sid")
	require.NoError(t, err)
	require.Len(t, cart, 1)
	assert.Equal(t, 3, cart[0].Quantity)

	other, err := s.cart.View("another-sid")
	require.NoError(t, err)
	assert.Empty(t, other)

	_, _, err = s.cart.Add("sid", "404")
	assert.ErrorIs(t, err, repos.ErrNotFound)
}

func TestCheckoutValidatesAndAllowsGuest(t *testing.T) {
	s := newStack(t)

	_, err := s.order.Checkout(nil, "1", services.Contact{Name: "An", Email: "bad", Phone: "1", Address: ""})
	var verr validate.Errors
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr, 3)

	o, err := s.order.Checkout(nil, "3", services.Contact{
		Name: "An", Email: "an@email.com", Phone: "0901234567", Address: "Quận 1",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.GuestUserID, o.UserID)
	assert.Equal(t, domain.OrderPending, o.Status)
	assert.True(t, o.TotalAmount.Equal(decimal.NewFromInt(1100000000)))
	assert.Equal(t, "Quận 1", o.CustomerAddress)
}

func TestPlaceCartOneOrderPerLine(t *testing.T) {
	s := newStack(t)
	u, err := s.users.Get("4")
	require.NoError(t, err)

	_, err = s.order.PlaceCart("sid", u)
	assert.ErrorIs(t, err, services.ErrEmptyCart)

	_, _, err = s.cart.Add("sid", "5")
	require.NoError(t, err)
	_, _, err = s.cart.Add("sid", "6")
	require.NoError(t, err)
	_, err = s.cart.UpdateQuantity("sid", "5", 2)
	require.NoError(t, err)

	placed, err := s.order.PlaceCart("sid", u)
	require.NoError(t, err)
	require.Len(t, placed, 2)
	assert.Equal(t, "5", placed[0].CarID)
	assert.True(t, placed[0].TotalAmount.Equal(decimal.NewFromInt(1500000000)))
	assert.Equal(t, "Lê Thành", placed[1].CustomerName)
	assert.Equal(t, "lethanh@email.com", placed[1].CustomerEmail)

	cart, err := s.cart.View("sid")
	require.NoError(t, err)
	assert.Empty(t, cart)

	mine, err := s.order.ListForUser("4")
	require.NoError(t, err)
	assert.Len(t, mine, 4)
}

func TestCancelOwnOrderOnly(t *testing.T) {
	s := newStack(t)

	_, err := s.order.CancelOwn("3", "1") // order 1 belongs to user 2
	assert.ErrorIs(t, err, repos.ErrNotFound)

	ok, err := s.order.CancelOwn("2", "1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.order.CancelOwn("2", "4") // completed
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAdminStatusEditFollowsTransitions(t *testing.T) {
	s := newStack(t)

	o, err := s.order.Update("1", domain.OrderPatch{Status: ptr(domain.OrderConfirmed)})
	require.NoError(t, err)
	assert.Equal(t, domain.OrderConfirmed, o.Status)

	o, err = s.order.Update("1", domain.OrderPatch{Status: ptr(domain.OrderCompleted)})
	require.NoError(t, err)
	assert.Equal(t, domain.OrderCompleted, o.Status)

	_, err = s.order.Update("1", domain.OrderPatch{Status: ptr(domain.OrderPending)})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = s.order.Update("5", domain.OrderPatch{Status: ptr(domain.OrderConfirmed)})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	got, err := s.order.Get("5")
	require.NoError(t, err)
	assert.Equal(t, domain.OrderCancelled, got.Status)

	pending, err := s.order.List(domain.OrderPending)
	require.NoError(t, err)
	for _, o := range pending {
		assert.Equal(t, domain.OrderPending, o.Status)
	}
}

func TestDeleteLastAdmin(t *testing.T) {
	s := newStack(t)

	_, err := s.user.Delete("1")
	assert.ErrorIs(t, err, services.ErrLastAdmin)

	second, err := s.user.Create(services.NewUser{
		Email: "admin2@carshop.com", Password: "admin2pass", FullName: "Admin Hai", Role: domain.RoleAdmin,
	})
	require.NoError(t, err)

	ok, err := s.user.Delete("1")
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = s.user.Delete(second.ID)
	assert.ErrorIs(t, err, services.ErrLastAdmin)

	ok, err = s.user.Delete("999")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUnavailableCarCannotBeBought(t *testing.T) {
	s := newStack(t)
	contact := services.Contact{Name: "An", Email: "an@email.com", Phone: "0901234567", Address: "Q1"}

	_, err := s.catalog.UpdateCar("1", domain.CarPatch{Status: ptr(domain.CarSold)})
	require.NoError(t, err)

	_, added, err := s.cart.Add("sid-1", "1")
	assert.ErrorIs(t, err, services.ErrCarUnavailable)
	assert.False(t, added)
	cart, err := s.cart.View("sid-1")
	require.NoError(t, err)
	assert.Empty(t, cart)

	_, err = s.order.Checkout(nil, "1", contact)
	assert.ErrorIs(t, err, services.ErrCarUnavailable)

	// reserved after it went into the cart
	_, _, err = s.cart.Add("sid-1", "2")
	require.NoError(t, err)
	_, err = s.catalog.UpdateCar("2", domain.CarPatch{Status: ptr(domain.CarReserved)})
	require.NoError(t, err)

	u, err := s.users.Get("2")
	require.NoError(t, err)
	before, err := s.orders.Count()
	require.NoError(t, err)
	_, err = s.order.PlaceCart("sid-1", u)
	assert.ErrorIs(t, err, services.ErrCarUnavailable)

	after, err := s.orders.Count()
	require.NoError(t, err)
	assert.Equal(t, before, after, "no order is placed")
	cart, err = s.cart.View("sid-1")
	require.NoError(t, err)
	assert.Len(t, cart, 1, "cart is kept")
}

func TestCreateUserRejectsDuplicateEmail(t *testing.T) {
	s := newStack(t)
	_, err := s.user.Create(services.NewUser{Email: "user@gmail.com", Password: "whatever1", FullName: "Dup"})
	assert.ErrorIs(t, err, services.ErrEmailTaken)

	_, err = s.user.Create(services.NewUser{Email: "x@y.z", Password: "short", FullName: ""})
	var verr validate.Errors
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr, "password")
	assert.Contains(t, verr, "fullName")
}

func TestUserDetailIncludesOrders(t *testing.T) {
	s := newStack(t)
	u, orders, err := s.user.Detail("7")
	require.NoError(t, err)
	assert.Equal(t, "Trần Mai", u.FullName)
	require.Len(t, orders, 2)
	assert.Equal(t, "15", orders[0].ID)
}

func TestCategoryNamesUnique(t *testing.T) {
	s := newStack(t)

	_, err := s.catalog.CreateCategory("suv", "")
	assert.ErrorIs(t, err, services.ErrDuplicateName)

	c, err := s.catalog.CreateCategory("Xe thể thao", "Coupe, mui trần")
	require.NoError(t, err)
	assert.Equal(t, "xe-the-thao", c.Slug)

	// renaming to its own name is fine
	c, err = s.catalog.UpdateCategory(c.ID, domain.CategoryPatch{Name: ptr("Xe Thể Thao")})
	require.NoError(t, err)
	assert.Equal(t, "xe-the-thao", c.Slug)

	_, err = s.catalog.UpdateCategory(c.ID, domain.CategoryPatch{Name: ptr("Sedan")})
	assert.ErrorIs(t, err, services.ErrDuplicateName)

	_, err = s.catalog.CreateCategory("  ", "")
	var verr validate.Errors
	assert.True(t, errors.As(err, &verr))
}

func TestCarCreateAndPatchValidated(t *testing.T) {
	s := newStack(t)

	_, err := s.catalog.CreateCar(domain.Car{Name: "Thiếu dữ liệu"})
	var verr validate.Errors
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr, "images")

	car, err := s.catalog.CreateCar(domain.Car{
		Name: "Hyundai Accent 2024", Brand: "Hyundai", Model: "Accent", Year: 2024,
		Price: decimal.NewFromInt(569000000), Category: "Sedan",
		Fuel: domain.FuelGasoline, Transmission: domain.TransmissionAutomatic,
		Color: "Trắng", Description: "Sedan cỡ B", Images: domain.StringList{"/images/cars/accent.jpg"},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.CarAvailable, car.Status)

	_, err = s.catalog.UpdateCar(car.ID, domain.CarPatch{Price: ptr(decimal.NewFromInt(-1))})
	require.ErrorAs(t, err, &verr)

	car, err = s.catalog.UpdateCar(car.ID, domain.CarPatch{Status: ptr(domain.CarReserved)})
	require.NoError(t, err)
	assert.Equal(t, domain.CarReserved, car.Status)
}

func TestDashboardStats(t *testing.T) {
	s := newStack(t)
	st, err := s.dashboard.Stats()
	require.NoError(t, err)

	assert.Equal(t, 10, st.TotalCars)
	assert.Equal(t, 10, st.AvailableCars)
	assert.Equal(t, 17, st.TotalOrders)
	assert.Equal(t, 7, st.TotalCustomers)
	assert.True(t, st.TotalRevenue.Equal(decimal.NewFromInt(55350000000)))
	require.Len(t, st.RecentOrders, 5)
	assert.Equal(t, "17", st.RecentOrders[0].ID)
	require.Len(t, st.RecentUsers, 5)
	assert.Equal(t, "8", st.RecentUsers[0].ID)

	_, err = s.user.Create(services.NewUser{
		Email: "admin2@carshop.com", Password: "admin2pass", FullName: "Admin Hai", Role: domain.RoleAdmin,
	})
	require.NoError(t, err)
	st, err = s.dashboard.Stats()
	require.NoError(t, err)
	require.Len(t, st.RecentUsers, 5)
	assert.Equal(t, "8", st.RecentUsers[0].ID)
	for _, u := range st.RecentUsers {
		assert.Equal(t, domain.RoleUser, u.Role)
	}
}

func TestExportCarsSpreadsheet(t *testing.T) {
	s := newStack(t)
	var buf bytes.Buffer
	require.NoError(t, s.export.CarsXLSX(&buf))

	f, err := xlsx.OpenReaderAt(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	require.Len(t, f.Sheets, 1)
	sheet := f.Sheets[0]
	assert.Equal(t, "Cars", sheet.Name)
	require.Len(t, sheet.Rows, 11)
	assert.Equal(t, "Name", sheet.Rows[0].Cells[1].Value)
	assert.Equal(t, "Toyota Camry 2024", sheet.Rows[1].Cells[1].Value)
	assert.Equal(t, "1250000000", sheet.Rows[1].Cells[5].Value)
}

func TestExportOrdersSpreadsheet(t *testing.T) {
	s := newStack(t)
	var buf bytes.Buffer
	require.NoError(t, s.export.OrdersXLSX(&buf))

	f, err := xlsx.OpenReaderAt(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	rows := f.Sheets[0].Rows
	require.Len(t, rows, 18)
	assert.Equal(t, "1.250.000.000\u00a0₫", rows[1].Cells[8].Value)
}
