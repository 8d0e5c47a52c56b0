package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"

	"weblarek/internal/http/handlers"
)

// security-relevant rejections are logged with kind=security
func TestSecurityLogs(t *testing.T) {
	s := newStack(t)
	b := newBrowser(s.store)
	b.get(t, "/")

	entries := captureLogs(t, func() {
		b.post(t, "addToBasket", url.Values{"id": {hourID}, "csrf": {"forged"}})
	})
	if !hasEntry(entries, "csrf.fail", "security") {
		t.Fatalf("expected csrf.fail log, got %+v", entries)
	}

	entries = captureLogs(t, func() {
		b.post(t, "dropTables", nil)
	})
	if !hasEntry(entries, "event.reject", "security") {
		t.Fatalf("expected event.reject log, got %+v", entries)
	}

	entries = captureLogs(t, func() {
		b.post(t, "openCardPreview", url.Values{"id": {"00000000-0000-0000-0000-000000000000"}})
	})
	if !hasEntry(entries, "event.product.unknown", "security") {
		t.Fatalf("expected event.product.unknown log, got %+v", entries)
	}
}

// accepted orders leave an audit trail on both sides
func TestOrderAuditLogs(t *testing.T) {
	s := newStack(t)
	b := newBrowser(s.store)
	b.get(t, "/")

	entries := captureLogs(t, func() {
		b.post(t, "addToBasket", url.Values{"id": {hourID}})
		b.post(t, "makeOrder", nil)
		b.post(t, "nextFormStep", url.Values{"payment": {"card"}, "address": {"A"}})
		b.post(t, "formSubmit", url.Values{"email": {"e@x.com"}, "phone": {"1"}})
	})
	if !hasEntry(entries, "order.place", "audit") {
		t.Fatalf("expected API order.place audit log")
	}
	if !hasEntry(entries, "api.order.create", "audit") {
		t.Fatalf("expected client api.order.create audit log")
	}
}

func TestMediaTraversalBlocked(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "Shell.svg"), []byte("<svg/>"), 0o644); err != nil {
		t.Fatal(err)
	}
	app := fiber.New()
	media := handlers.NewMediaHandler(dir)
	app.Get("/content/weblarek/*", media.Serve)

	resp, err := app.Test(httptest.NewRequest("GET", "/content/weblarek/Shell.svg", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 for media file, got %d", resp.StatusCode)
	}

	for _, p := range []string{"/content/weblarek/..%2f..%2fetc/passwd", "/content/weblarek/%2e%2e/secret"} {
		var status int
		entries := captureLogs(t, func() {
			resp, err := app.Test(httptest.NewRequest("GET", p, nil))
			if err != nil {
				t.Fatal(err)
			}
			status = resp.StatusCode
		})
		if status != http.StatusNotFound {
			t.Fatalf("%s: expected 404, got %d", p, status)
		}
		if !hasEntry(entries, "media.traversal.block", "security") {
			t.Fatalf("%s: expected media.traversal.block log", p)
		}
	}
}
