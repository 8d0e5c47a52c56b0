package api_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weblarek/internal/api"
	"weblarek/internal/domain"
	"weblarek/internal/http/handlers"
	"weblarek/internal/notify"
	"weblarek/internal/repos"
)

const (
	hourID  = "854cef69-976d-4c2a-a18c-2aa45046c390"
	candyID = "c101ab44-ed99-4a54-990d-47aa2bb4e7d9"
	timerID = "b06cde61-912f-4663-9751-09956c0eed67"
)

func newServer(t *testing.T) (*api.Client, *notify.Recorder) {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	rec := &notify.Recorder{}
	app := fiber.New(fiber.Config{ErrorHandler: handlers.APIErrorHandler})
	deps := handlers.NewAPIDeps(db, rec, t.TempDir())
	deps.Mount(app.Group("/api/weblarek"), app.Group("/content/weblarek"))

	srv := httptest.NewServer(adaptor.FiberApp(app))
	t.Cleanup(srv.Close)
	return api.NewClient(srv.URL+"/api/weblarek/", 5*time.Second), rec
}

func TestProductList(t *testing.T) {
	c, _ := newServer(t)
	items, err := api.NewProductClient(c).ProductList()
	require.NoError(t, err)
	require.Len(t, items, 10)
	assert.Equal(t, hourID, items[0].ID)
	assert.Equal(t, int64(750), *items[0].Price)

	var timer domain.Product
	for _, p := range items {
		if p.ID == timerID {
			timer = p
		}
	}
	assert.Nil(t, timer.Price, "null price decodes as nil")
}

func TestProductDetailAndNotFound(t *testing.T) {
	c, _ := newServer(t)
	pc := api.NewProductClient(c)

	p, err := pc.Product(candyID)
	require.NoError(t, err)
	assert.Equal(t, "HEX-леденец", p.Title)
	assert.Equal(t, int64(1450), p.Amount())

	_, err = pc.Product("00000000-0000-0000-0000-000000000000")
	require.Error(t, err)
	assert.True(t, api.IsNotFound(err))
	var ae *api.Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, "NotFound", ae.Message)
}

func TestMakeOrder(t *testing.T) {
	c, rec := newServer(t)
	oc := api.NewOrderClient(c)

	info := domain.OrderInfo{
		Order:   domain.OrderData{Payment: "card", Address: "Москва"},
		Contact: domain.ContactData{Email: "e@x.com", Phone: "123"},
		Total:   2200,
		Items:   []string{hourID, candyID},
	}
	order, err := oc.MakeOrder(info)
	require.NoError(t, err)
	assert.NotEmpty(t, order.ID)
	assert.Equal(t, int64(2200), order.Total)
	require.Len(t, rec.Events(), 1)
	assert.Equal(t, order.ID, rec.Events()[0].OrderID)

	info.Total = 1
	_, err = oc.MakeOrder(info)
	var ae *api.Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, fiber.StatusBadRequest, ae.Status)
	assert.NotEmpty(t, ae.Message)
	assert.False(t, api.IsNotFound(err))
}

func TestConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(nil)
	url := srv.URL
	srv.Close()

	c := api.NewClient(url, time.Second)
	_, err := api.NewProductClient(c).ProductList()
	require.Error(t, err)
	assert.False(t, api.IsNotFound(err))
	assert.Contains(t, err.Error(), "GET /product")
}
