package main

import (
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"weblarek/internal/api"
	"weblarek/internal/config"
	"weblarek/internal/http/handlers"
	applog "weblarek/internal/log"
	"weblarek/internal/storefront"
	"weblarek/internal/view"
	"weblarek/web"
)

const (
	sessionIdle  = 30 * time.Minute
	sweepEvery   = 5 * time.Minute
	maxBodyBytes = 64 << 10
	maxSessions  = 10000
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
			applog.SetOutput(mw)
		}
	}
	defer applog.Sync()

	opt, err := view.LoadOptions(cfg.UIFile)
	if err != nil {
		log.Fatal(err)
	}
	opt.CDNURL = cfg.CDNURL

	// API clients
	client := api.NewClient(cfg.APIURL, cfg.APITimeout)
	products := api.NewProductClient(client)
	orders := api.NewOrderClient(client)

	// Templates & app
	engine := view.NewEngine(web.Templates())
	reg := storefront.NewRegistry(func() *storefront.Storefront {
		return storefront.New(engine, opt, products, orders)
	}, maxSessions)

	app := fiber.New(fiber.Config{
		Views:        engine,
		BodyLimit:    maxBodyBytes,
		ErrorHandler: handlers.ErrorHandler,
	})

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(string(c.Request().URI().Path()), "/static/")
		},
	}))
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "form:csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		CookieSecure:   false, // set true behind HTTPS
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Security(c, "csrf.fail", map[string]any{"form": c.FormValue("csrf")})
			return c.Status(fiber.StatusForbidden).Render("notfound", fiber.Map{"Message": "Проверка безопасности не пройдена. Обновите страницу."})
		},
	}))
	app.Use(func(c *fiber.Ctx) error {
		if tok, ok := c.Locals("csrf").(string); ok {
			c.Locals("CSRFToken", tok)
		}
		return c.Next()
	})

	// ---------- Static assets ----------
	app.Use("/static", filesystem.New(filesystem.Config{Root: http.FS(web.Static())}))

	// ---------- App handlers ----------
	deps := handlers.NewDeps(reg)
	deps.Mount(app)

	// Idle sessions
	go func() {
		t := time.NewTicker(sweepEvery)
		defer t.Stop()
		for range t.C {
			if n := reg.Sweep(sessionIdle); n > 0 {
				applog.Info(nil, "session.sweep", map[string]any{"dropped": n, "live": reg.Len()})
			}
		}
	}()

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Страница не найдена"})
	})

	applog.Info(nil, "server.start", map[string]any{"port": cfg.Port, "api": client.BaseURL()})
	log.Fatal(app.Listen(":" + cfg.Port))
}
