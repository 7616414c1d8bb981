// Package transport performs the single HTTP GET every other component is built on.
//
// A call only succeeds when the request completes and the server answers with
// exactly 200 OK. Anything else comes back as an *Error.
package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// DefaultMaxBytes caps how much of a response body is read.
const DefaultMaxBytes = 10 * 1024 * 1024

// Error describes a failed GET. StatusCode is zero when no response was received.
type Error struct {
	URL        string
	Reason     string
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("GET %s: %s", e.URL, e.Reason)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (status %d)", e.StatusCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Config configures a Client.
type Config struct {
	// HTTPClient used for requests. Default: a client with no timeout.
	HTTPClient *http.Client
	MaxBytes   int64 // Max response body size. Default: 10MB.
	UserAgent  string
}

func (c *Config) defaults() {
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{}
	}
	if c.MaxBytes <= 0 {
		c.MaxBytes = DefaultMaxBytes
	}
	if c.UserAgent == "" {
		c.UserAgent = "deckview/1.0"
	}
}

// Client issues GET requests.
type Client struct {
	http   *http.Client
	config Config
}

// New creates a Client.
func New(cfg Config) *Client {
	cfg.defaults()
	return &Client{http: cfg.HTTPClient, config: cfg}
}

// Get fetches url and returns the response body.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	if url == "" {
		return nil, &Error{Reason: "empty url"}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &Error{URL: url, Reason: "new request", Err: err}
	}
	req.Header.Set("User-Agent", c.config.UserAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		reason := "network error"
		if errors.Is(err, context.Canceled) {
			reason = "canceled"
		}
		return nil, &Error{URL: url, Reason: reason, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain a little so the connection can be reused.
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, &Error{URL: url, Reason: "unexpected status", StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.config.MaxBytes))
	if err != nil {
		return nil, &Error{URL: url, Reason: "read body", StatusCode: resp.StatusCode, Err: err}
	}
	return body, nil
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var te *Error
	if errors.As(err, &te) {
		return te.StatusCode
	}
	return 0
}
