package handlers_test

import (
	"net/http"
	"net/url"
	"strings"
	"testing"

	"weblarek/internal/repos"
)

func expectRedirect(t *testing.T, resp *http.Response, body string) {
	t.Helper()
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d body=%s", resp.StatusCode, body)
	}
	if loc := resp.Header.Get("Location"); loc != "/" {
		t.Fatalf("expected redirect to /, got %q", loc)
	}
}

func TestPageRendersCatalogAndIssuesCookies(t *testing.T) {
	s := newStack(t)
	b := newBrowser(s.store)

	resp, body := b.get(t, "/")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if b.cookies["sid"] == "" || b.cookies["csrf_"] == "" {
		t.Fatalf("expected sid and csrf cookies, got %v", b.cookies)
	}
	if strings.Count(body, `action="/events/openCardPreview"`) != 10 {
		t.Fatalf("expected 10 gallery cards; body=%s", body)
	}
	// html/template writes the leading "+" of the first title as &#43;
	if !strings.Contains(body, "HEX-леденец") || !strings.Contains(body, "1 час в сутках") || !strings.Contains(body, "Бесценно") {
		t.Fatalf("expected seeded titles and price placeholder")
	}
	if !strings.Contains(body, `src="http://cdn.test/5_Dots.svg"`) {
		t.Fatalf("expected CDN image url")
	}
	if !strings.Contains(body, `name="csrf" value="`+b.cookies["csrf_"]+`"`) {
		t.Fatalf("forms must carry the csrf token")
	}
}

func TestSessionsAreIsolated(t *testing.T) {
	s := newStack(t)
	alice, bob := newBrowser(s.store), newBrowser(s.store)
	alice.get(t, "/")
	bob.get(t, "/")

	resp, body := alice.post(t, "addToBasket", url.Values{"id": {hourID}})
	expectRedirect(t, resp, body)

	_, page := alice.get(t, "/")
	if !strings.Contains(page, `<span class="header__basket-counter">1</span>`) {
		t.Fatalf("alice should see one item")
	}
	_, page = bob.get(t, "/")
	if !strings.Contains(page, `<span class="header__basket-counter">0</span>`) {
		t.Fatalf("bob's basket must stay empty")
	}
}

func TestCheckoutEndToEnd(t *testing.T) {
	s := newStack(t)
	b := newBrowser(s.store)
	b.get(t, "/")

	steps := []struct {
		event string
		form  url.Values
	}{
		{"openCardPreview", url.Values{"id": {hourID}}},
		{"addToBasket", url.Values{"id": {hourID}}},
		{"addToBasket", url.Values{"id": {candyID}}},
		{"openBasketModal", nil},
		{"makeOrder", nil},
		{"orderFormUpdate", url.Values{"payment": {"card"}, "address": {"Москва"}}},
		{"nextFormStep", url.Values{"address": {"Москва"}}},
		{"contactFormUpdate", url.Values{"email": {"e@x.com"}, "phone": {""}}},
	}
	for _, st := range steps {
		resp, body := b.post(t, st.event, st.form)
		expectRedirect(t, resp, body)
	}

	_, page := b.get(t, "/")
	if !strings.Contains(page, "Необходимо указать телефон") {
		t.Fatalf("expected phone error on contact step")
	}
	if !strings.Contains(page, "disabled") {
		t.Fatalf("submit must be disabled while phone is empty")
	}

	resp, body := b.post(t, "formSubmit", url.Values{"email": {"e@x.com"}, "phone": {"+7 900 000-00-00"}})
	expectRedirect(t, resp, body)

	_, page = b.get(t, "/")
	if !strings.Contains(page, "Списано 2200 синапсов") {
		t.Fatalf("expected success view; body=%s", page)
	}
	if !strings.Contains(page, `<span class="header__basket-counter">0</span>`) {
		t.Fatalf("counter should reset after order")
	}

	n, err := repos.NewOrderRepo(s.db).Count()
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("expected one stored order, got %d", n)
	}
	evs := s.rec.Events()
	if len(evs) != 1 || evs[0].Total != 2200 || len(evs[0].Items) != 2 {
		t.Fatalf("unexpected order.created events: %+v", evs)
	}
	if evs[0].Items[0] != hourID || evs[0].Items[1] != candyID {
		t.Fatalf("items must keep basket order: %v", evs[0].Items)
	}

	resp, body = b.post(t, "closeModal", nil)
	expectRedirect(t, resp, body)
	_, page = b.get(t, "/")
	if strings.Contains(page, "modal_active") {
		t.Fatalf("modal should be closed")
	}
}

func TestEmptyBasketModalDisablesCheckout(t *testing.T) {
	s := newStack(t)
	b := newBrowser(s.store)
	b.get(t, "/")

	resp, body := b.post(t, "openBasketModal", nil)
	expectRedirect(t, resp, body)
	_, page := b.get(t, "/")
	if !strings.Contains(page, "Корзина пуста") {
		t.Fatalf("expected empty basket text")
	}
	if !strings.Contains(page, `class="button basket__button" disabled`) {
		t.Fatalf("checkout button must be disabled for an empty basket")
	}
}
