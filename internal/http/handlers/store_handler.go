package handlers

import (
	"errors"
	"net/url"

	"github.com/gofiber/fiber/v2"

	applog "weblarek/internal/log"
	"weblarek/internal/storefront"
	"weblarek/internal/validate"
)

// StoreHandler serves the storefront page and the event forms it posts.
type StoreHandler struct{}

func (h *StoreHandler) Page(c *fiber.Ctx) error {
	sf := store(c)
	if sf == nil {
		return fiber.ErrInternalServerError
	}
	p, err := sf.Page(frame(c))
	if err != nil {
		return err
	}
	return render(c, "index", fiber.Map{
		"Frame":       p.Frame,
		"Opt":         p.Opt,
		"Counter":     p.Counter,
		"Gallery":     p.Gallery,
		"Modal":       p.Modal,
		"ModalActive": p.ModalActive,
	})
}

// Event decodes the posted form for /events/:name, sends it to the session's
// storefront and redirects back to the page.
func (h *StoreHandler) Event(c *fiber.Ctx) error {
	sf := store(c)
	if sf == nil {
		return fiber.ErrInternalServerError
	}
	name := c.Params("name")
	msg, err := storefront.Decode(name, postForm(c))
	if err != nil {
		applog.Security(c, "event.reject", map[string]any{"event": validate.Limit(name, 64), "error": err.Error()})
		return notFound(c, fiber.StatusBadRequest, "Некорректный запрос. Обновите страницу и попробуйте снова.")
	}
	if err := sf.Send(msg); err != nil {
		switch {
		case errors.Is(err, storefront.ErrUnknownProduct):
			applog.Security(c, "event.product.unknown", map[string]any{"event": name})
			return notFound(c, fiber.StatusNotFound, "Товар больше недоступен")
		case errors.Is(err, storefront.ErrNotForSale):
			applog.Security(c, "event.product.unpriced", map[string]any{"event": name})
			return notFound(c, fiber.StatusBadRequest, "Этот товар нельзя купить")
		}
		return err
	}
	applog.Info(c, "event."+name, nil)
	return c.Redirect("/", fiber.StatusSeeOther)
}

func postForm(c *fiber.Ctx) url.Values {
	form := url.Values{}
	c.Request().PostArgs().VisitAll(func(k, v []byte) {
		form.Add(string(k), string(v))
	})
	return form
}
