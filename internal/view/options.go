package view

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed options.yaml
var defaultOptions []byte

// Options is the literal UI configuration: class names, copy and currency.
type Options struct {
	CDNURL   string `yaml:"cdn_url"`
	Currency string `yaml:"currency"`

	Card    CardOptions    `yaml:"card"`
	Basket  BasketOptions  `yaml:"basket"`
	Form    FormOptions    `yaml:"form"`
	Success SuccessOptions `yaml:"success"`
	Modal   ModalOptions   `yaml:"modal"`
	Header  HeaderOptions  `yaml:"header"`
}

type CardElements struct {
	Category string `yaml:"category"`
	Title    string `yaml:"title"`
	Image    string `yaml:"image"`
	Text     string `yaml:"text"`
	Price    string `yaml:"price"`
	Button   string `yaml:"button"`
}

type Availability struct {
	Available    string `yaml:"available"`
	NotAvailable string `yaml:"not_available"`
	InBasket     string `yaml:"in_basket"`
}

type CardOptions struct {
	Block                string            `yaml:"block"`
	Elements             CardElements      `yaml:"elements"`
	CategoryModifiers    map[string]string `yaml:"category_modifiers"`
	NullPricePlaceholder string            `yaml:"null_price_placeholder"`
	ImageAltSuffix       string            `yaml:"image_alt_suffix"`
	Availability         Availability      `yaml:"availability"`
}

type BasketElements struct {
	Title  string `yaml:"title"`
	List   string `yaml:"list"`
	Index  string `yaml:"index"`
	Button string `yaml:"button"`
	Price  string `yaml:"price"`
	Delete string `yaml:"delete"`
}

type BasketOptions struct {
	Block      string         `yaml:"block"`
	Elements   BasketElements `yaml:"elements"`
	Title      string         `yaml:"title"`
	EmptyText  string         `yaml:"empty_text"`
	ButtonText string         `yaml:"button_text"`
}

type PaymentMethod struct {
	Name  string `yaml:"name"`
	Label string `yaml:"label"`
}

type FormOptions struct {
	Block            string          `yaml:"block"`
	OrderBlock       string          `yaml:"order_block"`
	ErrorsElement    string          `yaml:"errors_element"`
	ButtonsElement   string          `yaml:"buttons_element"`
	ActiveButton     string          `yaml:"active_button"`
	PaymentMethods   []PaymentMethod `yaml:"payment_methods"`
	PaymentTitle     string          `yaml:"payment_title"`
	AddressTitle     string          `yaml:"address_title"`
	AddressHint      string          `yaml:"address_hint"`
	EmailTitle       string          `yaml:"email_title"`
	EmailHint        string          `yaml:"email_hint"`
	PhoneTitle       string          `yaml:"phone_title"`
	PhoneHint        string          `yaml:"phone_hint"`
	NextText         string          `yaml:"next_text"`
	BackText         string          `yaml:"back_text"`
	SubmitText       string          `yaml:"submit_text"`
	ApplyText        string          `yaml:"apply_text"`
	EmptyPaymentText string          `yaml:"empty_payment_text"`
	EmptyAddressText string          `yaml:"empty_address_text"`
	EmptyEmailText   string          `yaml:"empty_email_text"`
	EmptyPhoneText   string          `yaml:"empty_phone_text"`
	SubmitFailedText string          `yaml:"submit_failed_text"`
}

// PaymentNames lists the configured payment method names in order.
func (f FormOptions) PaymentNames() []string {
	out := make([]string, len(f.PaymentMethods))
	for i, m := range f.PaymentMethods {
		out[i] = m.Name
	}
	return out
}

type SuccessOptions struct {
	Block             string `yaml:"block"`
	TitleElement      string `yaml:"title_element"`
	DescriptionElem   string `yaml:"description_element"`
	CloseElement      string `yaml:"close_element"`
	Title             string `yaml:"title"`
	DescriptionFormat string `yaml:"description_format"`
	CloseText         string `yaml:"close_text"`
}

type ModalOptions struct {
	Block          string `yaml:"block"`
	ContentElement string `yaml:"content_element"`
	CloseElement   string `yaml:"close_element"`
	ActiveModifier string `yaml:"active_modifier"`
	CloseLabel     string `yaml:"close_label"`
}

type HeaderOptions struct {
	Block          string `yaml:"block"`
	BasketElement  string `yaml:"basket_element"`
	CounterElement string `yaml:"counter_element"`
	GalleryBlock   string `yaml:"gallery_block"`
	GalleryItem    string `yaml:"gallery_item"`
}

// DefaultOptions returns the built-in configuration.
func DefaultOptions() Options {
	var o Options
	if err := yaml.Unmarshal(defaultOptions, &o); err != nil {
		panic(fmt.Sprintf("view: embedded options: %v", err))
	}
	return o
}

// LoadOptions overlays the YAML file at path, if any, on the defaults.
func LoadOptions(path string) (Options, error) {
	o := DefaultOptions()
	if path == "" {
		return o, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("read ui options: %w", err)
	}
	if err := yaml.Unmarshal(b, &o); err != nil {
		return Options{}, fmt.Errorf("parse ui options %s: %w", path, err)
	}
	if len(o.Form.PaymentMethods) == 0 {
		return Options{}, fmt.Errorf("ui options %s: no payment methods", path)
	}
	return o, nil
}
