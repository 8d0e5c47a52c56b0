package handlers

import (
	"github.com/gofiber/fiber/v2"

	"weblarek/internal/view"
)

func render(c *fiber.Ctx, tmpl string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	data["CSRFToken"] = csrfToken(c)
	return c.Render(tmpl, data)
}

// csrfToken picks up the token the CSRF middleware put into Locals, falling
// back to the cookie when Locals was not populated.
func csrfToken(c *fiber.Ctx) string {
	if tok, _ := c.Locals("CSRFToken").(string); tok != "" {
		return tok
	}
	return c.Cookies("csrf_")
}

func frame(c *fiber.Ctx) view.Frame {
	return view.Frame{CSRF: csrfToken(c)}
}

// notFound renders the friendly error page with status.
func notFound(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).Render("notfound", fiber.Map{"Message": msg})
}
