package view

import (
	"html/template"

	"weblarek/internal/domain"
	"weblarek/internal/events"
)

// CardView renders a catalog card; clicking it asks for the preview.
type CardView struct {
	r   Renderer
	opt Options
}

func NewCardView(r Renderer, opt Options) *CardView { return &CardView{r: r, opt: opt} }

func (v *CardView) Render(f Frame, p domain.Product) (template.HTML, error) {
	return render(v.r, "views/card", map[string]any{
		"Frame":         f,
		"Opt":           v.opt,
		"Product":       p,
		"CategoryClass": v.opt.CategoryClass(p.Category),
		"Image":         v.opt.ImageURL(p.Image),
		"Alt":           v.opt.ImageAlt(p),
		"Price":         v.opt.PriceText(p),
		"Action":        ActionURL(events.OpenCardPreview),
	})
}

type PreviewData struct {
	Product   domain.Product
	Available bool
	InBasket  bool
}

// PreviewView renders the product detail shown in the modal.
type PreviewView struct {
	r   Renderer
	opt Options
}

func NewPreviewView(r Renderer, opt Options) *PreviewView { return &PreviewView{r: r, opt: opt} }

func (v *PreviewView) Render(f Frame, d PreviewData) (template.HTML, error) {
	a := v.opt.Card.Availability
	button, action := a.Available, ActionURL(events.AddToBasket)
	switch {
	case !d.Available:
		button, action = a.NotAvailable, ""
	case d.InBasket:
		button, action = a.InBasket, ActionURL(events.RemoveFromBasket)
	}
	return render(v.r, "views/preview", map[string]any{
		"Frame":         f,
		"Opt":           v.opt,
		"Product":       d.Product,
		"CategoryClass": v.opt.CategoryClass(d.Product.Category),
		"Image":         v.opt.ImageURL(d.Product.Image),
		"Alt":           v.opt.ImageAlt(d.Product),
		"Price":         v.opt.PriceText(d.Product),
		"Available":     d.Available,
		"InBasket":      d.InBasket,
		"ButtonText":    button,
		"Action":        action,
	})
}

type CompactCardData struct {
	Index   int
	Product domain.Product
}

// CompactCardView renders one basket row with its remove button.
type CompactCardView struct {
	r   Renderer
	opt Options
}

func NewCompactCardView(r Renderer, opt Options) *CompactCardView {
	return &CompactCardView{r: r, opt: opt}
}

func (v *CompactCardView) Render(f Frame, d CompactCardData) (template.HTML, error) {
	return render(v.r, "views/card_compact", map[string]any{
		"Frame":   f,
		"Opt":     v.opt,
		"Index":   d.Index,
		"Product": d.Product,
		"Price":   v.opt.PriceText(d.Product),
		"Action":  ActionURL(events.RemoveFromBasket),
	})
}
