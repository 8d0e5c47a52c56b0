package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	applog "weblarek/internal/log"
	"weblarek/internal/storefront"
	"weblarek/internal/validate"
)

const sessionCookie = "sid"

// ensureSID returns the session id from the cookie, issuing a new one when
// the cookie is missing or malformed.
func ensureSID(c *fiber.Ctx) string {
	sid := c.Cookies(sessionCookie)
	if sid != "" {
		if _, err := uuid.Parse(sid); err == nil {
			return sid
		}
		applog.Security(c, "session.invalid", map[string]any{"sid": validate.Limit(sid, 64)})
	}
	sid = uuid.NewString()
	c.Cookie(&fiber.Cookie{
		Name:     sessionCookie,
		Value:    sid,
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   false, // enable true behind TLS
	})
	return sid
}

// Session attaches the caller's storefront to the request.
func Session(reg *storefront.Registry) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("store", reg.Get(ensureSID(c)))
		return c.Next()
	}
}

func store(c *fiber.Ctx) *storefront.Storefront {
	sf, _ := c.Locals("store").(*storefront.Storefront)
	return sf
}
