package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/jmoiron/sqlx"

	"weblarek/internal/domain"
	applog "weblarek/internal/log"
	"weblarek/internal/notify"
	"weblarek/internal/repos"
	"weblarek/internal/services"
	"weblarek/internal/storefront"
)

// Deps wires the storefront's page and event handlers.
type Deps struct {
	Registry     *storefront.Registry
	StoreHandler *StoreHandler
}

func NewDeps(reg *storefront.Registry) *Deps {
	return &Deps{Registry: reg, StoreHandler: &StoreHandler{}}
}

// Mount registers the storefront routes on r.
func (d *Deps) Mount(r fiber.Router) {
	sess := Session(d.Registry)
	r.Get("/", sess, d.StoreHandler.Page)
	r.Post("/events/:name", sess, d.StoreHandler.Event)
}

// APIDeps wires the REST API the storefront talks to.
type APIDeps struct {
	ProductHandler *ProductHandler
	OrderHandler   *OrderHandler
	MediaHandler   *MediaHandler
}

func NewAPIDeps(db *sqlx.DB, pub notify.Publisher, mediaDir string) *APIDeps {
	prodRepo := repos.NewProductRepo(db)
	orderRepo := repos.NewOrderRepo(db)

	catalogSvc := services.NewCatalogService(prodRepo)
	orderSvc := services.NewOrderService(prodRepo, orderRepo, pub)

	return &APIDeps{
		ProductHandler: &ProductHandler{Catalog: catalogSvc},
		OrderHandler:   &OrderHandler{Order: orderSvc},
		MediaHandler:   NewMediaHandler(mediaDir),
	}
}

// Mount registers the API under api and the media files under media.
func (d *APIDeps) Mount(api, media fiber.Router) {
	api.Get("/product", d.ProductHandler.List)
	api.Get("/product/:id", d.ProductHandler.Detail)
	api.Post("/order", limiter.New(limiter.Config{
		Max:        30,
		Expiration: time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.order.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "rate limit exceeded, retry soon"})
		},
	}), d.OrderHandler.Create)
	media.Get("/*", d.MediaHandler.Serve)
}

// ErrorHandler logs unexpected errors and renders a friendly page without
// leaking internals.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	applog.Error(c, "server.error", err, map[string]any{"status": code})
	msg := "Что-то пошло не так. Попробуйте ещё раз."
	if code == fiber.StatusNotFound {
		msg = "Страница не найдена"
	}
	if rerr := c.Status(code).Render("notfound", fiber.Map{"Message": msg}); rerr != nil {
		return c.Status(code).SendString(msg)
	}
	return nil
}

// APIErrorHandler is ErrorHandler for the JSON API.
func APIErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	applog.Error(c, "server.error", err, map[string]any{"status": code})
	msg := "Internal Server Error"
	if code == fiber.StatusNotFound {
		msg = "NotFound"
	}
	return c.Status(code).JSON(domain.APIError{Error: msg})
}
