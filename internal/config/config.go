package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"

	applog "weblarek/internal/log"
)

type Config struct {
	// storefront
	Port       string
	APIURL     string
	CDNURL     string
	APITimeout time.Duration
	UIFile     string
	LogFile    string

	// stand-in API
	APIPort  string
	DBDSN    string
	MediaDir string
	NATSURL  string
}

func Load() Config {
	// .env is optional
	_ = godotenv.Load()

	cfg := Config{
		Port:       getEnv("PORT", "8080"),
		APIURL:     getEnv("API_URL", "http://localhost:3000/api/weblarek"),
		CDNURL:     getEnv("CDN_URL", "http://localhost:3000/content/weblarek"),
		APITimeout: getDuration("API_TIMEOUT", 0),
		UIFile:     os.Getenv("UI_FILE"),
		LogFile:    getEnv("LOG_FILE", "./weblarek.log"),
		APIPort:    getEnv("API_PORT", "3000"),
		DBDSN:      getEnv("DB_DSN", "larek.db"),
		MediaDir:   getEnv("MEDIA_DIR", "./web/media"),
		NATSURL:    os.Getenv("NATS_URL"),
	}
	applog.Info(nil, "config.load", map[string]any{
		"port":        cfg.Port,
		"api_url":     cfg.APIURL,
		"cdn_url":     cfg.CDNURL,
		"api_timeout": cfg.APITimeout.String(),
		"ui_file":     cfg.UIFile,
		"log_file":    cfg.LogFile,
		"api_port":    cfg.APIPort,
		"db_dsn":      cfg.DBDSN,
		"media_dir":   cfg.MediaDir,
		"nats":        cfg.NATSURL != "",
	})
	return cfg
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

// getDuration falls back to def when the value is missing or unparsable.
func getDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		applog.Security(nil, "config.invalid", map[string]any{"key": key, "value": v})
		return def
	}
	return d
}
