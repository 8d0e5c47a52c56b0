package main

import (
	"io"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"weblarek/internal/config"
	"weblarek/internal/http/handlers"
	applog "weblarek/internal/log"
	"weblarek/internal/notify"
	"weblarek/internal/repos"
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

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	pub := notify.New(cfg.NATSURL)
	defer pub.Close()

	app := fiber.New(fiber.Config{ErrorHandler: handlers.APIErrorHandler})
	// Global body size guard
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New(helmet.Config{CrossOriginResourcePolicy: "cross-origin"}))
	app.Use(limiter.New(limiter.Config{Max: 300, Expiration: time.Minute}))

	deps := handlers.NewAPIDeps(db, pub, cfg.MediaDir)
	deps.Mount(app.Group("/api/weblarek"), app.Group("/content/weblarek"))
	log.Printf("[static] /content/weblarek -> %s", deps.MediaHandler.Dir)

	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "NotFound"})
	})

	orders, err := repos.NewOrderRepo(db).Count()
	if err != nil {
		log.Fatal(err)
	}
	applog.Info(nil, "api.start", map[string]any{"port": cfg.APIPort, "db": cfg.DBDSN, "orders": orders})
	log.Fatal(app.Listen(":" + cfg.APIPort))
}
