// Package api talks to the auth/user service and the scooter/ride/IoT
// service on behalf of the signed-in operator.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/ukydev/scooter-console/internal/auth"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
)

// APIError is a non-2xx answer from a service.
type APIError struct {
	StatusCode int
	Method     string
	Path       string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.StatusCode, e.Message)
}

// Is lets callers match on ErrUnauthorized and ErrNotFound.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	}
	return false
}

// TokenSource supplies the bearer token for each request.
type TokenSource interface {
	Token() string
}

// Client is a JSON client for one service.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	tokens         TokenSource
	onUnauthorized func()
	headers        http.Header
	service        string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithUnauthorizedHook registers fn to run whenever a service answers 401.
func WithUnauthorizedHook(fn func()) Option {
	return func(c *Client) { c.onUnauthorized = fn }
}

// WithHeader adds a header sent on every authenticated request.
func WithHeader(key, value string) Option {
	return func(c *Client) { c.headers.Set(key, value) }
}

// NewClient creates a client for the service rooted at baseURL.
func NewClient(service, baseURL string, tokens TokenSource, timeout time.Duration, opts ...Option) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		tokens:     tokens,
		headers:    http.Header{},
		service:    service,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body any) (*http.Request, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	if c.tokens != nil {
		if token := strings.TrimSpace(c.tokens.Token()); token != "" {
			req.Header.Set("Authorization", auth.BearerHeader(token))
			req.Header.Set("X-Admin-Token", "true")
			for k, v := range c.headers {
				req.Header[k] = v
			}
		}
	}
	return req, nil
}

// do sends a request and decodes a 2xx body into out. A nil out discards the
// body. A 401 fires the unauthorized hook.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	err := c.send(ctx, method, path, query, body, out)
	if errors.Is(err, ErrUnauthorized) && c.onUnauthorized != nil {
		c.onUnauthorized()
	}
	return err
}

// send is do without the unauthorized hook. Credential exchanges use it: a
// rejected password says nothing about the session already held.
func (c *Client) send(ctx context.Context, method, path string, query url.Values, body, out any) error {
	req, err := c.newRequest(ctx, method, path, query, body)
	if err != nil {
		return err
	}

	fields := log.Fields{
		"service":    c.service,
		"method":     method,
		"path":       path,
		"request_id": req.Header.Get("X-Request-ID"),
	}
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.WithFields(fields).WithError(err).Error("Request failed")
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	fields["status"] = resp.StatusCode
	fields["duration"] = time.Since(start)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{
			StatusCode: resp.StatusCode,
			Method:     method,
			Path:       path,
			Message:    errorMessage(data, resp.StatusCode),
		}
		log.WithFields(fields).WithField("error", apiErr.Message).Warn("Service returned an error")
		return apiErr
	}
	log.WithFields(fields).Debug("Service call completed")

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(unwrap(data), out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", path, err)
	}
	return nil
}

// errorMessage picks "message" or "error" out of an error body.
func errorMessage(data []byte, status int) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err == nil {
		if body.Message != "" {
			return body.Message
		}
		if body.Error != "" {
			return body.Error
		}
	}
	return http.StatusText(status)
}

// unwrap strips a {"data": ...} envelope when it is the only key.
func unwrap(data []byte) []byte {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return trimmed
	}
	var env map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &env); err != nil || len(env) != 1 {
		return trimmed
	}
	if inner, ok := env["data"]; ok {
		return inner
	}
	return trimmed
}

// decodeList accepts a bare array or an enveloped one. A null or empty body is
// an empty list.
func decodeList[T any](raw json.RawMessage) ([]T, error) {
	raw = unwrap(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return []T{}, nil
	}
	if raw[0] == '{' {
		var env struct {
			Data []T `json:"data"`
		}
		if err := json.Unmarshal(raw, &env); err != nil {
			return nil, fmt.Errorf("failed to decode list: %w", err)
		}
		if env.Data == nil {
			return []T{}, nil
		}
		return env.Data, nil
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("failed to decode list: %w", err)
	}
	return items, nil
}

func getList[T any](ctx context.Context, c *Client, path string, query url.Values) ([]T, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, path, query, nil, &raw); err != nil {
		return nil, err
	}
	return decodeList[T](raw)
}
