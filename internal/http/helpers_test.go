package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/jmoiron/sqlx"

	"weblarek/internal/api"
	"weblarek/internal/http/handlers"
	applog "weblarek/internal/log"
	"weblarek/internal/notify"
	"weblarek/internal/repos"
	"weblarek/internal/storefront"
	"weblarek/internal/view"
	"weblarek/web"
)

const (
	hourID  = "854cef69-976d-4c2a-a18c-2aa45046c390"
	candyID = "c101ab44-ed99-4a54-990d-47aa2bb4e7d9"
	timerID = "b06cde61-912f-4663-9751-09956c0eed67"
)

// Minimal stand-in API app over an in-memory catalog
func newAPIApp(t *testing.T) (*fiber.App, *sqlx.DB, *notify.Recorder) {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	rec := &notify.Recorder{}

	app := fiber.New(fiber.Config{ErrorHandler: handlers.APIErrorHandler})
	app.Server().MaxRequestBodySize = 1 << 20
	app.Use(requestid.New())
	deps := handlers.NewAPIDeps(db, rec, t.TempDir())
	deps.Mount(app.Group("/api/weblarek"), app.Group("/content/weblarek"))
	return app, db, rec
}

// Storefront app wired like cmd/weblarek, talking to the API at apiURL
func newStoreApp(t *testing.T, apiURL string) *fiber.App {
	t.Helper()
	engine := view.NewEngine(web.Templates())
	opt := view.DefaultOptions()
	opt.CDNURL = "http://cdn.test"
	client := api.NewClient(apiURL, 5*time.Second)
	products, orders := api.NewProductClient(client), api.NewOrderClient(client)
	reg := storefront.NewRegistry(func() *storefront.Storefront {
		return storefront.New(engine, opt, products, orders)
	}, 0)

	app := fiber.New(fiber.Config{
		Views:        engine,
		BodyLimit:    64 << 10,
		ErrorHandler: handlers.ErrorHandler,
	})
	app.Use(requestid.New())
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "form:csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
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
	handlers.NewDeps(reg).Mount(app)
	return app
}

type stack struct {
	store *fiber.App
	db    *sqlx.DB
	rec   *notify.Recorder
}

func newStack(t *testing.T) stack {
	t.Helper()
	apiApp, db, rec := newAPIApp(t)
	srv := httptest.NewServer(adaptor.FiberApp(apiApp))
	t.Cleanup(srv.Close)
	return stack{store: newStoreApp(t, srv.URL+"/api/weblarek"), db: db, rec: rec}
}

// browser keeps cookies between requests like a real client would.
type browser struct {
	app     *fiber.App
	cookies map[string]string
}

func newBrowser(app *fiber.App) *browser {
	return &browser{app: app, cookies: map[string]string{}}
}

func (b *browser) do(t *testing.T, req *http.Request) (*http.Response, string) {
	t.Helper()
	for k, v := range b.cookies {
		req.AddCookie(&http.Cookie{Name: k, Value: v})
	}
	resp, err := b.app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", req.Method, req.URL.Path, err)
	}
	for _, c := range resp.Cookies() {
		b.cookies[c.Name] = c.Value
	}
	body, _ := io.ReadAll(resp.Body)
	return resp, string(body)
}

func (b *browser) get(t *testing.T, path string) (*http.Response, string) {
	t.Helper()
	return b.do(t, httptest.NewRequest("GET", path, nil))
}

// post submits form to /events/<event> with the current CSRF token.
func (b *browser) post(t *testing.T, event string, form url.Values) (*http.Response, string) {
	t.Helper()
	if form == nil {
		form = url.Values{}
	}
	if _, ok := form["csrf"]; !ok {
		form.Set("csrf", b.cookies["csrf_"])
	}
	req := httptest.NewRequest("POST", "/events/"+event, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return b.do(t, req)
}

type logEntry struct {
	Action string         `json:"action"`
	Kind   string         `json:"kind"`
	Fields map[string]any `json:"fields"`
}

type lockedBuf struct {
	b  *bytes.Buffer
	mu *sync.Mutex
}

func (l *lockedBuf) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.b.Write(p)
}

func captureLogs(t *testing.T, fn func()) []logEntry {
	t.Helper()
	var buf bytes.Buffer
	var mu sync.Mutex
	applog.SetOutput(&lockedBuf{b: &buf, mu: &mu})
	defer applog.SetOutput(os.Stdout)

	fn()

	var entries []logEntry
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var e logEntry
		if err := json.Unmarshal([]byte(line), &e); err == nil {
			entries = append(entries, e)
		}
	}
	return entries
}

func hasEntry(entries []logEntry, action, kind string) bool {
	for _, e := range entries {
		if e.Action == action && (kind == "" || e.Kind == kind) {
			return true
		}
	}
	return false
}
