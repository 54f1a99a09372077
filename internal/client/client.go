// Package client talks to the calendr API and unwraps its response
// envelope.
package client

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const fallbackMessage = "API request failed"

// APIError is a non-success envelope or status from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

type envelope[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Message string `json:"message"`
	Error   string `json:"error"`
	Details string `json:"details"`
}

// message picks what a user sees: details first, then error.
func (e envelope[T]) message() string {
	switch {
	case e.Details != "":
		return e.Details
	case e.Error != "":
		return e.Error
	}
	return fallbackMessage
}

type Client struct {
	http    *resty.Client
	baseURL string
}

// New returns a client for the API rooted at baseURL, e.g.
// http://127.0.0.1:5000/api.
func New(baseURL string, timeout time.Duration) *Client {
	baseURL = strings.TrimRight(baseURL, "/")
	r := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
	return &Client{http: r, baseURL: baseURL}
}

// BaseURL is the API root the client was built with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// do runs one request and decodes the envelope's data into T.
func do[T any](ctx context.Context, c *Client, method, path string, opts ...func(*resty.Request)) (T, error) {
	var env envelope[T]
	req := c.http.R().
		SetContext(ctx).
		SetResult(&env).
		SetError(&env)
	for _, opt := range opts {
		opt(req)
	}

	res, err := req.Execute(method, path)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("%s %s: %w", method, path, err)
	}
	if res.IsError() || !env.Success {
		var zero T
		return zero, &APIError{Status: res.StatusCode(), Message: env.message()}
	}
	return env.Data, nil
}

func withID(id string) func(*resty.Request) {
	return func(r *resty.Request) { r.SetPathParam("id", id) }
}

func withBody(body any) func(*resty.Request) {
	return func(r *resty.Request) {
		r.SetHeader("Content-Type", "application/json").SetBody(body)
	}
}

// withQuery sets each non-nil parameter.
func withQuery(params map[string]*string) func(*resty.Request) {
	return func(r *resty.Request) {
		for k, v := range params {
			if v != nil && *v != "" {
				r.SetQueryParam(k, *v)
			}
		}
	}
}

// Health is the server's root status document.
type Health struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Version   string `json:"version"`
	Timestamp string `json:"timestamp"`
}

// Health calls the server root, which lives outside the /api prefix.
func (c *Client) Health(ctx context.Context) (Health, error) {
	var h Health
	url := strings.TrimSuffix(c.baseURL, "/api") + "/"
	res, err := c.http.R().SetContext(ctx).SetResult(&h).Get(url)
	if err != nil {
		return Health{}, fmt.Errorf("health check: %w", err)
	}
	if res.StatusCode() != http.StatusOK || !h.Success {
		return Health{}, &APIError{Status: res.StatusCode(), Message: fallbackMessage}
	}
	return h, nil
}
