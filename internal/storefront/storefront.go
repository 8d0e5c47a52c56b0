// Package storefront is the composition root of one shopping session. It owns
// the bus, the basket, the checkout session and the modal, and wires the bus
// events to exactly one state transition each. User actions arrive as typed
// messages through Send; the page is rendered from the resulting state by Page.
package storefront

import (
	"errors"
	"html/template"
	"sync"

	"weblarek/internal/api"
	"weblarek/internal/basket"
	"weblarek/internal/checkout"
	"weblarek/internal/domain"
	"weblarek/internal/events"
	applog "weblarek/internal/log"
	"weblarek/internal/view"
)

// Modal content names, as reported by ModalCurrent.
const (
	ModalPreview  = "preview"
	ModalBasket   = "basket"
	ModalOrder    = "order"
	ModalContacts = "contacts"
	ModalSuccess  = "success"
)

type views struct {
	card     *view.CardView
	preview  *view.PreviewView
	basket   *view.BasketView
	order    *view.OrderFormView
	contacts *view.ContactFormView
	success  *view.SuccessView
}

type Storefront struct {
	mu sync.Mutex

	bus      *events.Bus
	products api.ProductAPI
	orders   api.OrderAPI
	opt      view.Options

	basket   *basket.Basket
	checkout *checkout.Session
	modal    *view.Modal
	views    views

	catalog []domain.Product
	counter int
}

// New builds a storefront rendering with r. The payment methods offered at
// checkout are the ones configured in opt.
func New(r view.Renderer, opt view.Options, products api.ProductAPI, orders api.OrderAPI) *Storefront {
	s := &Storefront{
		bus:      events.New(),
		products: products,
		orders:   orders,
		opt:      opt,
		basket:   basket.New(),
		checkout: checkout.NewSession(opt.Form.PaymentNames()),
		modal:    view.NewModal(r, opt),
		views: views{
			card:     view.NewCardView(r, opt),
			preview:  view.NewPreviewView(r, opt),
			basket:   view.NewBasketView(r, opt),
			order:    view.NewOrderFormView(r, opt),
			contacts: view.NewContactFormView(r, opt),
			success:  view.NewSuccessView(r, opt),
		},
	}
	s.subscribe()
	return s
}

func (s *Storefront) subscribe() {
	events.Subscribe(s.bus, events.OpenCardPreview, s.onOpenPreview)
	events.Subscribe(s.bus, events.CloseModal, func(CloseModal) error {
		s.modal.Close()
		return nil
	})
	events.Subscribe(s.bus, events.AddToBasket, s.onAddToBasket)
	events.Subscribe(s.bus, events.RemoveFromBasket, s.onRemoveFromBasket)
	events.Subscribe(s.bus, events.OpenBasketModal, func(OpenBasket) error {
		s.modal.Open(ModalBasket, view.Bind[[]domain.Product](s.views.basket, s.basket.Items))
		return nil
	})
	events.Subscribe(s.bus, events.MakeOrder, s.onMakeOrder)
	events.Subscribe(s.bus, events.OrderFormUpdate, func(m OrderFormUpdate) error {
		return s.checkout.UpdateOrder(m.Patch)
	})
	events.Subscribe(s.bus, events.NextFormStep, s.onNextStep)
	events.Subscribe(s.bus, events.PrevFormStep, s.onPrevStep)
	events.Subscribe(s.bus, events.ContactFormUpdate, func(m ContactFormUpdate) error {
		return s.checkout.UpdateContact(m.Patch)
	})
	events.Subscribe(s.bus, events.FormSubmit, s.onSubmit)
	events.Subscribe(s.bus, events.OrderSuccess, func(m orderSuccess) error {
		s.modal.Open(ModalSuccess, view.Fixed[domain.Order](s.views.success, m.Order))
		return nil
	})
	events.Subscribe(s.bus, events.BasketChanged, s.onBasketChanged)
}

// Send handles one user action. Validation failures and actions that no
// longer match the checkout step are not errors: the page simply re-renders.
func (s *Storefront) Send(m Msg) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.bus.Emit(m.Event(), m)
	switch {
	case errors.Is(err, checkout.ErrIncomplete):
		return nil
	case errors.Is(err, checkout.ErrStep), errors.Is(err, checkout.ErrEmptyBasket):
		applog.Info(nil, "storefront.step.stale", map[string]any{"event": m.Event(), "err": err.Error()})
		return nil
	}
	return err
}

func (s *Storefront) emit(m Msg) error { return s.bus.Emit(m.Event(), m) }

// product finds id in the loaded catalog, falling back to the API.
func (s *Storefront) product(id string) (domain.Product, error) {
	for _, p := range s.catalog {
		if p.ID == id {
			return p, nil
		}
	}
	p, err := s.products.Product(id)
	if api.IsNotFound(err) {
		return domain.Product{}, ErrUnknownProduct
	}
	return p, err
}

func (s *Storefront) onOpenPreview(m OpenPreview) error {
	p, err := s.product(m.ID)
	if errors.Is(err, ErrUnknownProduct) {
		return err
	}
	if err != nil {
		// The modal stays as it was; the next click retries.
		applog.Error(nil, "storefront.preview.fail", err, map[string]any{"id": m.ID})
		return nil
	}
	s.modal.Open(ModalPreview, view.Bind[view.PreviewData](s.views.preview, func() view.PreviewData {
		return view.PreviewData{Product: p, Available: p.ForSale(), InBasket: s.basket.Has(p.ID)}
	}))
	return nil
}

func (s *Storefront) onAddToBasket(m AddToBasket) error {
	p, err := s.product(m.ID)
	if err != nil {
		return err
	}
	if !p.ForSale() {
		return ErrNotForSale
	}
	s.basket.Add(p)
	if err := s.emit(basketChanged{Count: s.basket.Len()}); err != nil {
		return err
	}
	return s.emit(CloseModal{})
}

func (s *Storefront) onRemoveFromBasket(m RemoveFromBasket) error {
	s.basket.Remove(m.ID)
	if err := s.emit(basketChanged{Count: s.basket.Len()}); err != nil {
		return err
	}
	if m.Close {
		return s.emit(CloseModal{})
	}
	return nil
}

func (s *Storefront) onMakeOrder(MakeOrder) error {
	if err := s.checkout.Begin(s.basket.Items()); err != nil {
		return err
	}
	s.modal.Open(ModalOrder, view.Bind[view.OrderFormData](s.views.order, s.orderForm))
	return nil
}

func (s *Storefront) onNextStep(m NextStep) error {
	if err := s.checkout.UpdateOrder(m.Patch); err != nil {
		return err
	}
	if err := s.checkout.Next(); err != nil {
		return err
	}
	s.modal.Open(ModalContacts, view.Bind[view.ContactFormData](s.views.contacts, s.contactForm))
	return nil
}

func (s *Storefront) onPrevStep(m PrevStep) error {
	if err := s.checkout.UpdateContact(m.Patch); err != nil {
		return err
	}
	if err := s.checkout.Back(); err != nil {
		return err
	}
	s.modal.Open(ModalOrder, view.Bind[view.OrderFormData](s.views.order, s.orderForm))
	return nil
}

// onBasketChanged keeps the header counter and an open checkout in step with
// the basket. Emptying the basket mid-checkout closes the checkout form.
func (s *Storefront) onBasketChanged(m basketChanged) error {
	s.counter = m.Count
	s.checkout.Sync(s.basket.Items())
	if s.checkout.Step() == checkout.StepIdle {
		if cur := s.modal.Current(); cur == ModalOrder || cur == ModalContacts {
			s.modal.Close()
		}
	}
	return nil
}

func (s *Storefront) onSubmit(m SubmitOrder) error {
	if err := s.checkout.UpdateContact(m.Patch); err != nil {
		return err
	}
	order, err := s.checkout.Submit(s.orders)
	if errors.Is(err, checkout.ErrIncomplete) || errors.Is(err, checkout.ErrStep) {
		return err
	}
	if err != nil {
		// The contact form stays open and shows the failure; the basket is kept.
		applog.Error(nil, "storefront.order.fail", err, map[string]any{"items": s.basket.Len()})
		return nil
	}
	if err := s.emit(orderSuccess{Order: order}); err != nil {
		return err
	}
	s.basket.Clear()
	return s.emit(basketChanged{Count: 0})
}

func (s *Storefront) orderForm() view.OrderFormData {
	return view.OrderFormData{
		Order:   s.checkout.Order(),
		Problem: s.checkout.OrderProblem(),
		Touched: s.checkout.OrderTouched(),
	}
}

func (s *Storefront) contactForm() view.ContactFormData {
	return view.ContactFormData{
		Contact: s.checkout.Contact(),
		Problem: s.checkout.ContactProblem(),
		Touched: s.checkout.ContactTouched(),
		Failed:  s.checkout.SubmitErr() != nil,
	}
}

// loadCatalog fetches the product list once. A failed load leaves the
// catalog empty and is retried on the next page render.
func (s *Storefront) loadCatalog() {
	if len(s.catalog) > 0 {
		return
	}
	items, err := s.products.ProductList()
	if err != nil {
		applog.Error(nil, "storefront.catalog.fail", err, nil)
		return
	}
	s.catalog = items
}

// PageData is everything the index template needs.
type PageData struct {
	Frame       view.Frame
	Opt         view.Options
	Counter     int
	Gallery     []template.HTML
	Modal       template.HTML
	ModalActive bool
}

// Page renders the current state: header counter, gallery cards and modal.
func (s *Storefront) Page(f view.Frame) (PageData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadCatalog()

	gallery := make([]template.HTML, 0, len(s.catalog))
	for _, p := range s.catalog {
		card, err := s.views.card.Render(f, p)
		if err != nil {
			return PageData{}, err
		}
		gallery = append(gallery, card)
	}
	modal, err := s.modal.Render(f)
	if err != nil {
		return PageData{}, err
	}
	return PageData{
		Frame:       f,
		Opt:         s.opt,
		Counter:     s.counter,
		Gallery:     gallery,
		Modal:       modal,
		ModalActive: s.modal.Active(),
	}, nil
}

func (s *Storefront) Counter() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counter
}

func (s *Storefront) BasketIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.basket.IDs()
}

func (s *Storefront) BasketTotal() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.basket.Total()
}

// ModalCurrent names the open modal content, "" when closed.
func (s *Storefront) ModalCurrent() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.modal.Current()
}

func (s *Storefront) Step() checkout.Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.checkout.Step()
}
