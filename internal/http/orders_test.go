package handlers_test

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type orderBody struct {
	ID          string  `json:"id"`
	UserID      string  `json:"userId"`
	CarID       string  `json:"carId"`
	Status      string  `json:"status"`
	TotalAmount float64 `json:"totalAmount"`
}

func TestGuestCheckout(t *testing.T) {
	app, _ := newApp(t)

	form := `{"carId":"2","name":"Trần Văn Khách","email":"khach@example.com","phone":"0912345678","address":"12 Lê Lợi, Q1"}`
	resp, body := do(t, app, request("POST", "/api/v1/checkout", form, ""))
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(body))
	o := decode[orderBody](t, body)
	assert.Equal(t, "guest", o.UserID)
	assert.Equal(t, "pending", o.Status)
	assert.EqualValues(t, 950000000, o.TotalAmount)
	assert.NotEmpty(t, o.ID)
}

func TestSignedInCheckoutIsOwned(t *testing.T) {
	app, db := newApp(t)
	signIn(t, db, "sid-user", "3")

	form := `{"carId":"5","name":"John Doe","email":"john.doe@email.com","phone":"0909876543","address":"1 Main St"}`
	resp, body := do(t, app, request("POST", "/api/v1/checkout", form, "sid-user"))
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(body))
	placed := decode[orderBody](t, body)
	assert.Equal(t, "3", placed.UserID)

	resp, body = do(t, app, request("GET", "/api/v1/me/orders", "", "sid-user"))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	mine := decode[[]orderBody](t, body)
	require.NotEmpty(t, mine)
	assert.Equal(t, placed.ID, mine[0].ID, "newest first")
	for _, o := range mine {
		assert.Equal(t, "3", o.UserID)
	}
}

func TestCheckoutValidation(t *testing.T) {
	app, _ := newApp(t)

	resp, body := do(t, app, request("POST", "/api/v1/checkout", `{"carId":"2","name":"A","email":"not-an-email","phone":"12"}`, ""))
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	errs := decode[struct {
		Errors map[string]string `json:"errors"`
	}](t, body).Errors
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "phone")
	assert.Contains(t, errs, "address")

	resp, _ = do(t, app, request("POST", "/api/v1/checkout", `{"name":"A"}`, ""))
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	form := `{"carId":"999","name":"A","email":"a@b.vn","phone":"0901234567","address":"x"}`
	resp, _ = do(t, app, request("POST", "/api/v1/checkout", form, ""))
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestCancelOwnOrder(t *testing.T) {
	app, db := newApp(t)
	signIn(t, db, "sid-user", "2")

	resp, body := do(t, app, request("POST", "/api/v1/me/orders/1/cancel", "", "sid-user"))
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(body))
	assert.Equal(t, "cancelled", decode[orderBody](t, body).Status)

	// completed orders stay put
	resp, _ = do(t, app, request("POST", "/api/v1/me/orders/4/cancel", "", "sid-user"))
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	// order 2 belongs to user 3
	resp, _ = do(t, app, request("POST", "/api/v1/me/orders/2/cancel", "", "sid-user"))
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestAdminOrderTransitions(t *testing.T) {
	app, db := newApp(t)
	signIn(t, db, "sid-admin", "1")

	resp, body := do(t, app, request("PUT", "/api/v1/admin/orders/1", `{"status":"confirmed"}`, "sid-admin"))
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(body))
	assert.Equal(t, "confirmed", decode[orderBody](t, body).Status)

	var code int
	entries := captureLogs(t, func() {
		resp, _ := do(t, app, request("PUT", "/api/v1/admin/orders/3", `{"status":"pending"}`, "sid-admin"))
		code = resp.StatusCode
	})
	assert.Equal(t, fiber.StatusConflict, code)
	_, ok := findLog(entries, "admin.orders.update.conflict")
	assert.True(t, ok, "expected conflict log, got %+v", entries)

	resp, _ = do(t, app, request("PUT", "/api/v1/admin/orders/1", `{"status":"shipped"}`, "sid-admin"))
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, body = do(t, app, request("GET", "/api/v1/admin/orders?status=pending", "", "sid-admin"))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	for _, o := range decode[[]orderBody](t, body) {
		assert.Equal(t, "pending", o.Status)
	}
}

func TestSoldCarCannotBeBought(t *testing.T) {
	app, db := newApp(t)
	signIn(t, db, "sid-admin", "1")

	resp, body := do(t, app, request("PUT", "/api/v1/admin/cars/1", `{"status":"sold"}`, "sid-admin"))
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(body))

	resp, body = do(t, app, request("POST", "/api/v1/cart", `{"carId":"1"}`, "sid-guest"))
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Contains(t, string(body), "no longer available")

	form := `{"carId":"1","name":"Khách","email":"khach@example.com","phone":"0912345678","address":"Q1"}`
	resp, _ = do(t, app, request("POST", "/api/v1/checkout", form, ""))
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	// reserved while sitting in a signed-in cart
	signIn(t, db, "sid-user", "2")
	resp, _ = do(t, app, request("POST", "/api/v1/cart", `{"carId":"2"}`, "sid-user"))
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	resp, _ = do(t, app, request("PUT", "/api/v1/admin/cars/2", `{"status":"reserved"}`, "sid-admin"))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp, _ = do(t, app, request("POST", "/api/v1/cart/checkout", "", "sid-user"))
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}
