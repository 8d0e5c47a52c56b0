package view

import (
	"fmt"
	"html/template"

	"weblarek/internal/checkout"
	"weblarek/internal/domain"
	"weblarek/internal/events"
)

type OrderFormData struct {
	Order   domain.OrderData
	Problem checkout.Problem
	// Touched gates the inline error, like a form the user has not typed in yet.
	Touched bool
}

type ContactFormData struct {
	Contact domain.ContactData
	Problem checkout.Problem
	Touched bool
	Failed  bool
}

// OrderFormView renders the first checkout step: payment buttons and address.
type OrderFormView struct {
	r   Renderer
	opt Options
}

func NewOrderFormView(r Renderer, opt Options) *OrderFormView {
	return &OrderFormView{r: r, opt: opt}
}

type paymentButton struct {
	Name   string
	Label  string
	Active bool
}

func (v *OrderFormView) Render(f Frame, d OrderFormData) (template.HTML, error) {
	buttons := make([]paymentButton, len(v.opt.Form.PaymentMethods))
	for i, m := range v.opt.Form.PaymentMethods {
		buttons[i] = paymentButton{Name: m.Name, Label: m.Label, Active: m.Name == d.Order.Payment}
	}
	return render(v.r, "views/order", map[string]any{
		"Frame":   f,
		"Opt":     v.opt,
		"Order":   d.Order,
		"Buttons": buttons,
		"Valid":   d.Problem == checkout.ProblemNone,
		"Error":   v.opt.message(d.Problem, d.Touched),
		"Update":  ActionURL(events.OrderFormUpdate),
		"Submit":  ActionURL(events.NextFormStep),
	})
}

// ContactFormView renders the second checkout step: email and phone.
type ContactFormView struct {
	r   Renderer
	opt Options
}

func NewContactFormView(r Renderer, opt Options) *ContactFormView {
	return &ContactFormView{r: r, opt: opt}
}

func (v *ContactFormView) Render(f Frame, d ContactFormData) (template.HTML, error) {
	msg := v.opt.message(d.Problem, d.Touched)
	if msg == "" && d.Failed {
		msg = v.opt.Form.SubmitFailedText
	}
	return render(v.r, "views/contacts", map[string]any{
		"Frame":   f,
		"Opt":     v.opt,
		"Contact": d.Contact,
		"Valid":   d.Problem == checkout.ProblemNone,
		"Error":   msg,
		"Update":  ActionURL(events.ContactFormUpdate),
		"Back":    ActionURL(events.PrevFormStep),
		"Submit":  ActionURL(events.FormSubmit),
	})
}

func (o Options) message(p checkout.Problem, touched bool) string {
	if !touched {
		return ""
	}
	switch p {
	case checkout.ProblemPayment:
		return o.Form.EmptyPaymentText
	case checkout.ProblemAddress:
		return o.Form.EmptyAddressText
	case checkout.ProblemEmail:
		return o.Form.EmptyEmailText
	case checkout.ProblemPhone:
		return o.Form.EmptyPhoneText
	}
	return ""
}

// SuccessView renders the confirmation after the API accepted the order.
type SuccessView struct {
	r   Renderer
	opt Options
}

func NewSuccessView(r Renderer, opt Options) *SuccessView { return &SuccessView{r: r, opt: opt} }

func (v *SuccessView) Render(f Frame, o domain.Order) (template.HTML, error) {
	return render(v.r, "views/success", map[string]any{
		"Frame":       f,
		"Opt":         v.opt,
		"Order":       o,
		"Description": fmt.Sprintf(v.opt.Success.DescriptionFormat, o.Total),
		"Action":      ActionURL(events.CloseModal),
	})
}
