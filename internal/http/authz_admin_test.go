package handlers_test

import (
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestAdminGuard(t *testing.T) {
	app, db := newApp(t)
	signIn(t, db, "sid-user", "2")
	signIn(t, db, "sid-admin", "1")

	cases := []struct {
		name string
		sid  string
		want int
	}{
		{"anonymous", "", fiber.StatusUnauthorized},
		{"unknown session", "sid-ghost", fiber.StatusUnauthorized},
		{"customer", "sid-user", fiber.StatusForbidden},
		{"admin", "sid-admin", fiber.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, body := do(t, app, request("GET", "/api/v1/admin/stats", "", tc.sid))
			if resp.StatusCode != tc.want {
				t.Fatalf("expected %d, got %d body=%s", tc.want, resp.StatusCode, body)
			}
		})
	}
}

func TestAdminDeniedIsLogged(t *testing.T) {
	app, db := newApp(t)
	signIn(t, db, "sid-user", "2")

	entries := captureLogs(t, func() {
		resp, _ := do(t, app, request("GET", "/api/v1/admin/orders", "", "sid-user"))
		if resp.StatusCode != fiber.StatusForbidden {
			t.Fatalf("expected 403, got %d", resp.StatusCode)
		}
	})
	e, ok := findLog(entries, "access.denied.admin")
	if !ok {
		t.Fatalf("expected access.denied.admin log, got %+v", entries)
	}
	if e.UserID != "2" || e.Fields["reason"] != "role" {
		t.Fatalf("unexpected denial entry: %+v", e)
	}
}

func TestAdminDashboardPage(t *testing.T) {
	app, db := newApp(t)
	signIn(t, db, "sid-admin", "1")
	signIn(t, db, "sid-user", "2")

	resp, body := do(t, app, request("GET", "/admin", "", "sid-admin"))
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if !strings.Contains(string(body), "Nguyễn Văn Admin") {
		t.Fatalf("dashboard should greet the admin; body=%s", body)
	}

	resp, body = do(t, app, request("GET", "/admin", "", "sid-user"))
	if resp.StatusCode != fiber.StatusForbidden || !strings.Contains(string(body), "Access denied") {
		t.Fatalf("expected rendered 403, got %d body=%s", resp.StatusCode, body)
	}
}

func TestLastAdminCannotBeDeleted(t *testing.T) {
	app, db := newApp(t)
	signIn(t, db, "sid-admin", "1")

	resp, body := do(t, app, request("DELETE", "/api/v1/admin/users/1", "", "sid-admin"))
	if resp.StatusCode != fiber.StatusConflict {
		t.Fatalf("expected 409, got %d body=%s", resp.StatusCode, body)
	}
	resp, _ = do(t, app, request("DELETE", "/api/v1/admin/users/3", "", "sid-admin"))
	if resp.StatusCode != fiber.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.StatusCode)
	}
	resp, _ = do(t, app, request("DELETE", "/api/v1/admin/users/3", "", "sid-admin"))
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("second delete should be 404, got %d", resp.StatusCode)
	}
}

func TestAdminCreateUserRejectsDuplicateEmail(t *testing.T) {
	app, db := newApp(t)
	signIn(t, db, "sid-admin", "1")

	body := `{"email":"user@gmail.com","password":"longenough","fullName":"Dup"}`
	resp, out := do(t, app, request("POST", "/api/v1/admin/users", body, "sid-admin"))
	if resp.StatusCode != fiber.StatusConflict {
		t.Fatalf("expected 409, got %d body=%s", resp.StatusCode, out)
	}
}

func TestExportsAreSpreadsheets(t *testing.T) {
	app, db := newApp(t)
	signIn(t, db, "sid-admin", "1")

	for _, path := range []string{"/api/v1/admin/cars/export.xlsx", "/api/v1/admin/orders/export.xlsx"} {
		resp, body := do(t, app, request("GET", path, "", "sid-admin"))
		if resp.StatusCode != fiber.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, resp.StatusCode)
		}
		if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "spreadsheetml") {
			t.Fatalf("%s: content type %q", path, ct)
		}
		if cd := resp.Header.Get("Content-Disposition"); !strings.Contains(cd, "attachment") {
			t.Fatalf("%s: content disposition %q", path, cd)
		}
		// xlsx is a zip container
		if len(body) < 4 || string(body[:2]) != "PK" {
			t.Fatalf("%s: body is not a zip archive", path)
		}
	}
}
