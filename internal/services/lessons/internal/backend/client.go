// Package backend is the REST client for the SpeakLexi API.
package backend

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

	"github.com/gamma-omg/speaklexi/internal/pkg/serr"
)

// TokenSource supplies the bearer token for each request. An empty token
// sends the request unauthenticated.
type TokenSource interface {
	Token() string
}

type staticToken string

func (t staticToken) Token() string { return string(t) }

type ClientOption func(*Client) *Client

func WithTokenSource(ts TokenSource) ClientOption {
	return func(c *Client) *Client {
		c.tokens = ts
		return c
	}
}

func WithToken(token string) ClientOption {
	return WithTokenSource(staticToken(token))
}

func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) *Client {
		c.client = hc
		return c
	}
}

func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) *Client {
		c.client.Timeout = d
		return c
	}
}

type Client struct {
	baseURL *url.URL
	tokens  TokenSource
	client  *http.Client
}

func NewClient(baseURL string, opts ...ClientOption) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", baseURL)
	}

	c := &Client{
		baseURL: u,
		tokens:  staticToken(""),
		client:  &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		c = opt(c)
	}
	return c, nil
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"mensaje"`
}

// endpoint resolves path against the base URL. A query after "?" is kept.
func (c *Client) endpoint(path string) string {
	p, query, _ := strings.Cut(path, "?")
	u := c.baseURL.JoinPath(p)
	u.RawQuery = query
	return u.String()
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path), body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if tok := c.tokens.Token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	return req, nil
}

// doJSON sends in as a JSON body (when not nil) and decodes the response
// into out (when not nil).
func (c *Client) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("serialize request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return responseError(req, resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response of %s %s: %w", req.Method, req.URL.Path, err)
	}
	return nil
}

// responseError turns a non-2xx response into a ServiceError carrying the
// backend's message and status code.
func responseError(req *http.Request, resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	var er errorResponse
	msg := ""
	if json.Unmarshal(data, &er) == nil {
		msg = er.Error
		if msg == "" {
			msg = er.Message
		}
	}
	if msg == "" {
		msg = strings.TrimSpace(string(data))
	}
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}

	se := serr.NewServiceError(
		fmt.Errorf("%s %s: unexpected status code: %d", req.Method, req.URL.Path, resp.StatusCode),
		resp.StatusCode, "%s", msg)
	se.Env["method"] = req.Method
	se.Env["path"] = req.URL.Path
	return se
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var se *serr.ServiceError
	if errors.As(err, &se) {
		return se.StatusCode
	}
	return 0
}
