// Package api talks to the shop's REST API: GET /product, GET /product/{id}
// and POST /order.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"weblarek/internal/domain"
)

// Error is a non-2xx answer from the API.
type Error struct {
	Method  string
	Path    string
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.Status)
	}
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.Status, e.Message)
}

// IsNotFound reports whether err is an API 404.
func IsNotFound(err error) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Status == fiber.StatusNotFound
}

// Client is the shared transport for the entity clients. No retries, and no
// timeout unless one is configured.
type Client struct {
	baseURL string
	timeout time.Duration
	http    *fiber.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		http:    &fiber.Client{UserAgent: "weblarek"},
	}
}

func (c *Client) BaseURL() string { return c.baseURL }

func (c *Client) get(path string, out any) error {
	return c.do(fiber.MethodGet, path, c.http.Get(c.baseURL+path), out)
}

func (c *Client) post(path string, body, out any) error {
	return c.do(fiber.MethodPost, path, c.http.Post(c.baseURL+path).JSON(body), out)
}

func (c *Client) do(method, path string, a *fiber.Agent, out any) error {
	if c.timeout > 0 {
		a.Timeout(c.timeout)
	}
	code, body, errs := a.Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("%s %s: %w", method, path, errors.Join(errs...))
	}
	if code < 200 || code >= 300 {
		e := &Error{Method: method, Path: path, Status: code}
		var ae domain.APIError
		if json.Unmarshal(body, &ae) == nil {
			e.Message = ae.Error
		}
		return e
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%s %s: decode: %w", method, path, err)
	}
	return nil
}
