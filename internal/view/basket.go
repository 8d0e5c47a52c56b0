package view

import (
	"html/template"

	"weblarek/internal/domain"
	"weblarek/internal/events"
)

// BasketView renders the basket modal: rows numbered from 1, the total and
// the checkout button, or the empty message with the button disabled.
type BasketView struct {
	r    Renderer
	opt  Options
	rows *CompactCardView
}

func NewBasketView(r Renderer, opt Options) *BasketView {
	return &BasketView{r: r, opt: opt, rows: NewCompactCardView(r, opt)}
}

func (v *BasketView) Render(f Frame, items []domain.Product) (template.HTML, error) {
	rows := make([]template.HTML, 0, len(items))
	var total int64
	for i, p := range items {
		row, err := v.rows.Render(f, CompactCardData{Index: i + 1, Product: p})
		if err != nil {
			return "", err
		}
		rows = append(rows, row)
		total += p.Amount()
	}
	return render(v.r, "views/basket", map[string]any{
		"Frame":  f,
		"Opt":    v.opt,
		"Rows":   rows,
		"Empty":  len(items) == 0,
		"Total":  v.opt.AmountText(total),
		"Action": ActionURL(events.MakeOrder),
	})
}
