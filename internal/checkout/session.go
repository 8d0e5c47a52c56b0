// Package checkout holds the state of one checkout attempt: the order step
// (payment + address), the contact step (email + phone) and the basket
// snapshot the order is placed for.
package checkout

import (
	"errors"
	"fmt"

	"weblarek/internal/basket"
	"weblarek/internal/domain"
	"weblarek/internal/validate"
)

type Step int

const (
	StepIdle Step = iota
	StepOrder
	StepContact
	StepSuccess
)

func (s Step) String() string {
	switch s {
	case StepOrder:
		return "order"
	case StepContact:
		return "contact"
	case StepSuccess:
		return "success"
	}
	return "idle"
}

var (
	// ErrStep is returned for an operation that does not belong to the current step.
	ErrStep = errors.New("checkout: operation not allowed in current step")
	// ErrIncomplete means the current step's fields do not validate yet.
	ErrIncomplete = errors.New("checkout: form incomplete")

	ErrEmptyBasket = errors.New("checkout: basket is empty")
)

// Problem names the field that keeps a step from validating.
type Problem int

const (
	ProblemNone Problem = iota
	ProblemPayment
	ProblemAddress
	ProblemEmail
	ProblemPhone
)

type OrderPatch struct {
	Payment *string
	Address *string
}

type ContactPatch struct {
	Email *string
	Phone *string
}

// OrderPlacer is the part of the order API a session needs.
type OrderPlacer interface {
	MakeOrder(info domain.OrderInfo) (domain.Order, error)
}

type Session struct {
	payments []string

	step    Step
	order   domain.OrderData
	contact domain.ContactData
	items   []domain.Product
	total   int64

	orderTouched   bool
	contactTouched bool

	submitErr error
}

// NewSession creates an idle session accepting the given payment methods.
func NewSession(payments []string) *Session {
	p := make([]string, len(payments))
	copy(p, payments)
	return &Session{payments: p}
}

// Begin (re)enters checkout for items. Fields typed during an abandoned
// attempt are kept; a session that already placed an order starts clean.
func (s *Session) Begin(items []domain.Product) error {
	if len(items) == 0 {
		return ErrEmptyBasket
	}
	if s.step == StepSuccess {
		s.Reset()
	}
	s.items = append(s.items[:0:0], items...)
	s.total = basket.Sum(items)
	s.step = StepOrder
	s.submitErr = nil
	s.orderTouched = s.order.Payment != "" || s.order.Address != ""
	s.contactTouched = s.contact.Email != "" || s.contact.Phone != ""
	return nil
}

// Sync follows the basket while checkout is open. An emptied basket ends the
// attempt; typed fields are kept for the next Begin.
func (s *Session) Sync(items []domain.Product) {
	if s.step != StepOrder && s.step != StepContact {
		return
	}
	if len(items) == 0 {
		s.step = StepIdle
		s.items = nil
		s.total = 0
		s.submitErr = nil
		return
	}
	s.items = append(s.items[:0:0], items...)
	s.total = basket.Sum(items)
}

func (s *Session) Reset() {
	payments := s.payments
	*s = Session{payments: payments}
}

func (s *Session) UpdateOrder(p OrderPatch) error {
	if s.step != StepOrder {
		return fmt.Errorf("%w: update order in %s", ErrStep, s.step)
	}
	if p.Payment != nil {
		s.order.Payment = *p.Payment
	}
	if p.Address != nil {
		s.order.Address = *p.Address
	}
	s.orderTouched = true
	return nil
}

func (s *Session) OrderProblem() Problem {
	switch {
	case !validate.Present(s.order.Address):
		return ProblemAddress
	case !validate.OneOf(s.order.Payment, s.payments):
		return ProblemPayment
	}
	return ProblemNone
}

func (s *Session) OrderValid() bool { return s.OrderProblem() == ProblemNone }

// Next moves from the order step to the contact step.
func (s *Session) Next() error {
	if s.step != StepOrder {
		return fmt.Errorf("%w: next from %s", ErrStep, s.step)
	}
	if !s.OrderValid() {
		s.orderTouched = true
		return ErrIncomplete
	}
	s.step = StepContact
	return nil
}

// Back returns from the contact step to the order step.
func (s *Session) Back() error {
	if s.step != StepContact {
		return fmt.Errorf("%w: back from %s", ErrStep, s.step)
	}
	s.step = StepOrder
	return nil
}

func (s *Session) UpdateContact(p ContactPatch) error {
	if s.step != StepContact {
		return fmt.Errorf("%w: update contact in %s", ErrStep, s.step)
	}
	if p.Email != nil {
		s.contact.Email = *p.Email
	}
	if p.Phone != nil {
		s.contact.Phone = *p.Phone
	}
	s.contactTouched = true
	s.submitErr = nil
	return nil
}

func (s *Session) ContactProblem() Problem {
	switch {
	case !validate.Present(s.contact.Email):
		return ProblemEmail
	case !validate.Present(s.contact.Phone):
		return ProblemPhone
	}
	return ProblemNone
}

func (s *Session) ContactValid() bool { return s.ContactProblem() == ProblemNone }

// Info assembles the order payload from the session state.
func (s *Session) Info() (domain.OrderInfo, error) {
	if s.step != StepContact {
		return domain.OrderInfo{}, fmt.Errorf("%w: submit in %s", ErrStep, s.step)
	}
	if !s.OrderValid() || !s.ContactValid() {
		s.contactTouched = true
		return domain.OrderInfo{}, ErrIncomplete
	}
	ids := make([]string, len(s.items))
	for i, p := range s.items {
		ids[i] = p.ID
	}
	return domain.OrderInfo{
		Order:   s.order,
		Contact: s.contact,
		Total:   s.total,
		Items:   ids,
	}, nil
}

// Submit places the order. On failure the session stays on the contact step
// and remembers the error for display.
func (s *Session) Submit(api OrderPlacer) (domain.Order, error) {
	info, err := s.Info()
	if err != nil {
		return domain.Order{}, err
	}
	order, err := api.MakeOrder(info)
	if err != nil {
		s.submitErr = err
		return domain.Order{}, err
	}
	s.step = StepSuccess
	return order, nil
}

func (s *Session) Step() Step                  { return s.step }
func (s *Session) Order() domain.OrderData     { return s.order }
func (s *Session) Contact() domain.ContactData { return s.contact }
func (s *Session) Total() int64                { return s.total }
func (s *Session) OrderTouched() bool          { return s.orderTouched }
func (s *Session) ContactTouched() bool        { return s.contactTouched }
func (s *Session) SubmitErr() error            { return s.submitErr }

func (s *Session) Items() []domain.Product {
	return append([]domain.Product(nil), s.items...)
}
