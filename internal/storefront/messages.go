package storefront

import (
	"errors"
	"fmt"
	"net/url"

	"weblarek/internal/checkout"
	"weblarek/internal/domain"
	"weblarek/internal/events"
	"weblarek/internal/validate"
)

var (
	ErrUnknownEvent   = errors.New("storefront: unknown event")
	ErrBadMessage     = errors.New("storefront: malformed message")
	ErrUnknownProduct = errors.New("storefront: unknown product")
	ErrNotForSale     = errors.New("storefront: product is not for sale")
)

// Msg is one user action. Event names the bus event it is emitted as.
type Msg interface {
	Event() string
}

type OpenPreview struct{ ID string }

type CloseModal struct{}

type AddToBasket struct{ ID string }

// RemoveFromBasket drops a product; Close also closes the modal, as the
// preview's remove button does.
type RemoveFromBasket struct {
	ID    string
	Close bool
}

type OpenBasket struct{}

type MakeOrder struct{}

// OrderFormUpdate carries only the fields that were posted.
type OrderFormUpdate struct{ Patch checkout.OrderPatch }

// NextStep applies the posted order fields, then leaves the order step.
type NextStep struct{ Patch checkout.OrderPatch }

type ContactFormUpdate struct{ Patch checkout.ContactPatch }

// PrevStep keeps the posted contact fields and returns to the order step.
type PrevStep struct{ Patch checkout.ContactPatch }

// SubmitOrder applies the posted contact fields, then places the order.
type SubmitOrder struct{ Patch checkout.ContactPatch }

// orderSuccess is emitted internally once the API accepted the order.
type orderSuccess struct{ Order domain.Order }

// basketChanged is emitted internally with the new item count.
type basketChanged struct{ Count int }

func (OpenPreview) Event() string       { return events.OpenCardPreview }
func (CloseModal) Event() string        { return events.CloseModal }
func (AddToBasket) Event() string       { return events.AddToBasket }
func (RemoveFromBasket) Event() string  { return events.RemoveFromBasket }
func (OpenBasket) Event() string        { return events.OpenBasketModal }
func (MakeOrder) Event() string         { return events.MakeOrder }
func (OrderFormUpdate) Event() string   { return events.OrderFormUpdate }
func (NextStep) Event() string          { return events.NextFormStep }
func (PrevStep) Event() string          { return events.PrevFormStep }
func (ContactFormUpdate) Event() string { return events.ContactFormUpdate }
func (SubmitOrder) Event() string       { return events.FormSubmit }
func (orderSuccess) Event() string      { return events.OrderSuccess }
func (basketChanged) Event() string     { return events.BasketChanged }

// maxField bounds free-text form values.
const maxField = 512

// Decode builds the message for a posted event form. Internal events cannot
// be posted.
func Decode(event string, form url.Values) (Msg, error) {
	switch event {
	case events.OpenCardPreview:
		id, err := productID(form)
		return OpenPreview{ID: id}, err
	case events.CloseModal:
		return CloseModal{}, nil
	case events.AddToBasket:
		id, err := productID(form)
		return AddToBasket{ID: id}, err
	case events.RemoveFromBasket:
		id, err := productID(form)
		return RemoveFromBasket{ID: id, Close: form.Get("close") != ""}, err
	case events.OpenBasketModal:
		return OpenBasket{}, nil
	case events.MakeOrder:
		return MakeOrder{}, nil
	case events.OrderFormUpdate:
		return OrderFormUpdate{Patch: orderPatch(form)}, nil
	case events.NextFormStep:
		return NextStep{Patch: orderPatch(form)}, nil
	case events.PrevFormStep:
		return PrevStep{Patch: contactPatch(form)}, nil
	case events.ContactFormUpdate:
		return ContactFormUpdate{Patch: contactPatch(form)}, nil
	case events.FormSubmit:
		return SubmitOrder{Patch: contactPatch(form)}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownEvent, event)
}

func productID(form url.Values) (string, error) {
	raw := form.Get("id")
	id, ok := validate.ID(raw)
	if !ok {
		return "", fmt.Errorf("%w: bad product id %q", ErrBadMessage, validate.Limit(raw, 64))
	}
	return id, nil
}

func field(form url.Values, key string) *string {
	if !form.Has(key) {
		return nil
	}
	v := validate.Limit(form.Get(key), maxField)
	return &v
}

func orderPatch(form url.Values) checkout.OrderPatch {
	return checkout.OrderPatch{Payment: field(form, "payment"), Address: field(form, "address")}
}

func contactPatch(form url.Values) checkout.ContactPatch {
	return checkout.ContactPatch{Email: field(form, "email"), Phone: field(form, "phone")}
}
