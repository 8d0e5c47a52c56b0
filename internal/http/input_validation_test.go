package handlers_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"weblarek/internal/domain"
)

func TestEventValidation(t *testing.T) {
	s := newStack(t)
	b := newBrowser(s.store)
	b.get(t, "/")

	cases := []struct {
		name   string
		event  string
		form   url.Values
		status int
	}{
		{"unknown event", "dropTables", nil, http.StatusBadRequest},
		{"internal event", "orderSuccess", nil, http.StatusBadRequest},
		{"missing id", "addToBasket", nil, http.StatusBadRequest},
		{"traversal id", "openCardPreview", url.Values{"id": {"../../etc/passwd"}}, http.StatusBadRequest},
		{"unknown product", "openCardPreview", url.Values{"id": {"00000000-0000-0000-0000-000000000000"}}, http.StatusNotFound},
		{"unpriced product", "addToBasket", url.Values{"id": {timerID}}, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, body := b.post(t, tc.event, tc.form)
			if resp.StatusCode != tc.status {
				t.Fatalf("expected %d, got %d body=%s", tc.status, resp.StatusCode, body)
			}
			if strings.Contains(body, "storefront:") {
				t.Fatalf("internal error text leaked: %s", body)
			}
		})
	}

	_, page := b.get(t, "/")
	if !strings.Contains(page, `<span class="header__basket-counter">0</span>`) {
		t.Fatalf("rejected events must not change the basket")
	}
}

func TestEventRequiresCSRF(t *testing.T) {
	s := newStack(t)
	b := newBrowser(s.store)
	b.get(t, "/")

	resp, _ := b.post(t, "addToBasket", url.Values{"id": {hourID}, "csrf": {"forged"}})
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 for bad csrf, got %d", resp.StatusCode)
	}
}

func TestAPIValidation(t *testing.T) {
	app, _, rec := newAPIApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/weblarek/product/bad%20id", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for bad id, got %d", resp.StatusCode)
	}

	post := func(body string) (int, domain.APIError) {
		req := httptest.NewRequest("POST", "/api/weblarek/order", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		if err != nil {
			t.Fatal(err)
		}
		raw, _ := io.ReadAll(resp.Body)
		var ae domain.APIError
		_ = json.Unmarshal(raw, &ae)
		return resp.StatusCode, ae
	}

	cases := map[string]string{
		"malformed":      `{"payment":`,
		"bad payment":    `{"payment":"crypto","address":"A","email":"e","phone":"1","total":750,"items":["` + hourID + `"]}`,
		"no address":     `{"payment":"card","address":"","email":"e","phone":"1","total":750,"items":["` + hourID + `"]}`,
		"no items":       `{"payment":"card","address":"A","email":"e","phone":"1","total":0,"items":[]}`,
		"unpriced item":  `{"payment":"card","address":"A","email":"e","phone":"1","total":0,"items":["` + timerID + `"]}`,
		"total mismatch": `{"payment":"card","address":"A","email":"e","phone":"1","total":1,"items":["` + hourID + `"]}`,
		"duplicate item": `{"payment":"card","address":"A","email":"e","phone":"1","total":1500,"items":["` + hourID + `","` + hourID + `"]}`,
	}
	for name, body := range cases {
		status, ae := post(body)
		if status != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", name, status)
		}
		if ae.Error == "" {
			t.Fatalf("%s: expected an error message", name)
		}
	}
	if len(rec.Events()) != 0 {
		t.Fatalf("rejected orders must not be announced")
	}

	status, _ := post(`{"payment":"cash","address":"A","email":"e","phone":"1","total":750,"items":["` + hourID + `"]}`)
	if status != http.StatusOK {
		t.Fatalf("expected 200 for a valid order, got %d", status)
	}
}
