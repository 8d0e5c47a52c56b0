// Package view renders the storefront's HTML fragments. Every view fills a
// named template with one data value; user interactions are rendered as forms
// posting to the event that should be emitted. Views never change state.
package view

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"strings"

	html "github.com/gofiber/template/html/v2"

	"weblarek/internal/domain"
)

// ActionPrefix is the path every rendered form posts to, followed by the event name.
const ActionPrefix = "/events/"

func ActionURL(event string) string { return ActionPrefix + event }

// Renderer is satisfied by the gofiber template engines.
type Renderer interface {
	Render(out io.Writer, name string, binding interface{}, layout ...string) error
}

// Frame carries per-request values every fragment needs.
type Frame struct {
	CSRF string
}

type View[T any] interface {
	Render(f Frame, data T) (template.HTML, error)
}

// NewEngine builds the template engine over fsys with the view helpers registered.
func NewEngine(fsys fs.FS) *html.Engine {
	e := html.NewFileSystem(http.FS(fsys), ".html")
	e.AddFunc("bem", BEM)
	e.AddFunc("action", ActionURL)
	return e
}

// BEM builds a block__element_modifier class name. Empty parts are skipped.
func BEM(block string, parts ...string) string {
	var b strings.Builder
	b.WriteString(block)
	if len(parts) > 0 && parts[0] != "" {
		b.WriteString("__")
		b.WriteString(parts[0])
	}
	if len(parts) > 1 && parts[1] != "" {
		b.WriteString("_")
		b.WriteString(parts[1])
	}
	return b.String()
}

func render(r Renderer, name string, binding map[string]any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.Render(&buf, name, binding); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return template.HTML(buf.String()), nil
}

// PriceText is the price label; unpriced and zero-priced products get the placeholder.
func (o Options) PriceText(p domain.Product) string {
	if !p.ForSale() {
		return o.Card.NullPricePlaceholder
	}
	return o.AmountText(*p.Price)
}

func (o Options) AmountText(v int64) string {
	return fmt.Sprintf("%d %s", v, o.Currency)
}

func (o Options) ImageURL(image string) string { return o.CDNURL + image }

func (o Options) ImageAlt(p domain.Product) string {
	return strings.TrimSpace(p.Title + " " + o.Card.ImageAltSuffix)
}

// CategoryClass is the modifier class for c, or "" for an unmapped category.
func (o Options) CategoryClass(c domain.Category) string {
	mod, ok := o.Card.CategoryModifiers[string(c)]
	if !ok || mod == "" {
		return ""
	}
	return BEM(o.Card.Block, o.Card.Elements.Category, mod)
}
