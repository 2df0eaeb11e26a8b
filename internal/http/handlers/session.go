package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const sidCookie = "sid"

// SessionCookies issues and expires the browser session cookie.
type SessionCookies struct {
	Secure bool
}

// SID returns the session id, minting a new cookie when the browser has none.
func (s SessionCookies) SID(c *fiber.Ctx) string {
	sid := c.Cookies(sidCookie)
	if sid == "" {
		sid = uuid.NewString()
		c.Cookie(s.cookie(sid, time.Time{}))
	}
	return sid
}

func (s SessionCookies) Expire(c *fiber.Ctx) {
	c.Cookie(s.cookie("", time.Now().Add(-1*time.Hour)))
}

func (s SessionCookies) cookie(value string, expires time.Time) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     sidCookie,
		Value:    value,
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   s.Secure,
		Expires:  expires,
	}
}
