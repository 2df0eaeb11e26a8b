package handlers_test

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginSetsSessionAndLogoutClearsIt(t *testing.T) {
	app, _ := newApp(t)

	var sid string
	entries := captureLogs(t, func() {
		resp, body := do(t, app, request("POST", "/api/v1/auth/login", `{"email":"user@gmail.com","password":"user123"}`, ""))
		require.Equal(t, fiber.StatusOK, resp.StatusCode, string(body))
		sid = cookieValue(resp, "sid")
		out := decode[struct {
			User map[string]any `json:"user"`
		}](t, body)
		assert.Equal(t, "user@gmail.com", out.User["email"])
		assert.NotContains(t, out.User, "passwordHash")
	})
	require.NotEmpty(t, sid, "login should mint a sid cookie")
	e, ok := findLog(entries, "auth.login.success")
	require.True(t, ok, "expected auth.login.success, got %+v", entries)
	assert.Equal(t, "2", e.UserID)

	resp, body := do(t, app, request("GET", "/api/v1/me", "", sid))
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(body))
	assert.Equal(t, "Nguyễn Văn A", decode[map[string]any](t, body)["fullName"])

	resp, _ = do(t, app, request("POST", "/api/v1/auth/logout", "", sid))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, _ = do(t, app, request("GET", "/api/v1/me", "", sid))
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestLoginFailureIsLoggedWithoutPassword(t *testing.T) {
	app, _ := newApp(t)

	var code int
	entries := captureLogs(t, func() {
		resp, _ := do(t, app, request("POST", "/api/v1/auth/login", `{"email":"user@gmail.com","password":"wrong-pass"}`, ""))
		code = resp.StatusCode
	})
	require.Equal(t, fiber.StatusUnauthorized, code)
	e, ok := findLog(entries, "auth.login.fail")
	require.True(t, ok, "expected auth.login.fail, got %+v", entries)
	assert.Equal(t, "warn", e.Level)
	assert.Equal(t, "user@gmail.com", e.Fields["email"])
	assert.NotContains(t, e.Fields, "password")
}

func TestLoginMissingFields(t *testing.T) {
	app, _ := newApp(t)
	resp, _ := do(t, app, request("POST", "/api/v1/auth/login", `{"email":"user@gmail.com"}`, ""))
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestLoginIsThrottled(t *testing.T) {
	app, _ := newApp(t)

	codes := make([]int, 0, 6)
	entries := captureLogs(t, func() {
		for i := 0; i < 6; i++ {
			resp, _ := do(t, app, request("POST", "/api/v1/auth/login", `{"email":"user@gmail.com","password":"nope-nope"}`, ""))
			codes = append(codes, resp.StatusCode)
		}
	})
	for i, code := range codes[:5] {
		assert.Equal(t, fiber.StatusUnauthorized, code, "attempt %d", i+1)
	}
	assert.Equal(t, fiber.StatusTooManyRequests, codes[5])
	_, ok := findLog(entries, "rate.login.hit")
	assert.True(t, ok, "expected rate.login.hit")
}

func TestProfileUpdate(t *testing.T) {
	app, db := newApp(t)
	signIn(t, db, "sid-user", "2")

	resp, body := do(t, app, request("PUT", "/api/v1/me", `{"fullName":"Nguyễn Văn B","phone":"0901 234 567"}`, "sid-user"))
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(body))

	resp, body = do(t, app, request("GET", "/api/v1/me", "", "sid-user"))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Nguyễn Văn B", decode[map[string]any](t, body)["fullName"])

	resp, body = do(t, app, request("PUT", "/api/v1/me", `{"phone":"12"}`, "sid-user"))
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(body), `"phone"`)
}
