package view

import (
	"html/template"

	"weblarek/internal/events"
)

// Component is content that can be rendered into the modal slot.
type Component interface {
	Render(f Frame) (template.HTML, error)
}

type ComponentFunc func(f Frame) (template.HTML, error)

func (fn ComponentFunc) Render(f Frame) (template.HTML, error) { return fn(f) }

// Bind renders v with whatever data returns at render time, so the modal
// follows state changes made while it is open.
func Bind[T any](v View[T], data func() T) Component {
	return ComponentFunc(func(f Frame) (template.HTML, error) { return v.Render(f, data()) })
}

// Fixed renders v with data captured now.
func Fixed[T any](v View[T], data T) Component {
	return ComponentFunc(func(f Frame) (template.HTML, error) { return v.Render(f, data) })
}

// Modal is a single-slot overlay: opening replaces whatever was shown.
type Modal struct {
	r       Renderer
	opt     Options
	name    string
	content Component
}

func NewModal(r Renderer, opt Options) *Modal { return &Modal{r: r, opt: opt} }

func (m *Modal) Open(name string, c Component) {
	m.name = name
	m.content = c
}

func (m *Modal) Close() {
	m.name = ""
	m.content = nil
}

func (m *Modal) Active() bool { return m.content != nil }

// Current names the open content, "" when closed.
func (m *Modal) Current() string { return m.name }

func (m *Modal) Render(f Frame) (template.HTML, error) {
	var content template.HTML
	if m.content != nil {
		var err error
		if content, err = m.content.Render(f); err != nil {
			return "", err
		}
	}
	return render(m.r, "views/modal", map[string]any{
		"Frame":   f,
		"Opt":     m.opt,
		"Active":  m.Active(),
		"Content": content,
		"Action":  ActionURL(events.CloseModal),
	})
}
