// Package api is the HTTP client of the Starose REST API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	apperrors "github.com/jrsteele09/starose-admin/internal/errors"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
)

const (
	requestIDHeader = "X-Request-ID"
	defaultTimeout  = 15 * time.Second
)

// Client talks to the API. Every call except Authenticate carries the bearer token
// of the current session.
type Client struct {
	baseURL      string
	authed       *http.Client
	anon         *http.Client
	log          zerolog.Logger
	newRequestID func() string
}

type clientSettings struct {
	timeout   time.Duration
	transport http.RoundTripper
}

// ClientOption defines a function type to modify the Client instance.
type ClientOption func(*Client, *clientSettings)

// WithLogger sets the request logger
func WithLogger(logger zerolog.Logger) ClientOption {
	return func(c *Client, _ *clientSettings) {
		c.log = logger
	}
}

// WithTimeout sets the per-request timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(_ *Client, s *clientSettings) {
		s.timeout = timeout
	}
}

// WithTransport sets the base transport underneath the bearer transport
func WithTransport(rt http.RoundTripper) ClientOption {
	return func(_ *Client, s *clientSettings) {
		s.transport = rt
	}
}

// WithRequestIDFunc overrides request id generation (primarily for testing)
func WithRequestIDFunc(f func() string) ClientOption {
	return func(c *Client, _ *clientSettings) {
		c.newRequestID = f
	}
}

// New creates a client for baseURL (for example "http://localhost:5000/api").
// tokens supplies the bearer credential, usually session.Store.TokenSource().
func New(baseURL string, tokens oauth2.TokenSource, options ...ClientOption) (*Client, error) {
	if tokens == nil {
		return nil, fmt.Errorf("[api.New] token source is required: %w", apperrors.ErrMissingDependency)
	}
	u, err := url.Parse(baseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("[api.New] invalid base URL %q", baseURL)
	}

	c := &Client{
		baseURL:      strings.TrimRight(u.String(), "/"),
		log:          zerolog.Nop(),
		newRequestID: uuid.NewString,
	}
	settings := &clientSettings{timeout: defaultTimeout, transport: http.DefaultTransport}
	for _, opt := range options {
		opt(c, settings)
	}

	c.anon = &http.Client{Timeout: settings.timeout, Transport: settings.transport}
	c.authed = &http.Client{
		Timeout:   settings.timeout,
		Transport: &oauth2.Transport{Source: tokens, Base: settings.transport},
	}
	return c, nil
}

type request struct {
	method string
	path   string
	query  url.Values
	body   any
	anon   bool
	accept string
}

// do sends the request and decodes a JSON response into out when out is non-nil.
func (c *Client) do(ctx context.Context, r request, out any) error {
	resp, err := c.send(ctx, r)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s %s: read response: %w", r.method, r.path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%s %s: decode response: %w", r.method, r.path, err)
	}
	return nil
}

// send performs the request and converts non-2xx responses into *APIError. On success
// the caller owns the response body.
func (c *Client) send(ctx context.Context, r request) (*http.Response, error) {
	var body io.Reader
	if r.body != nil {
		data, err := json.Marshal(r.body)
		if err != nil {
			return nil, fmt.Errorf("%s %s: encode body: %w", r.method, r.path, err)
		}
		body = bytes.NewReader(data)
	}

	target := c.baseURL + r.path
	if len(r.query) > 0 {
		target += "?" + r.query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, r.method, target, body)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", r.method, r.path, err)
	}
	requestID := c.newRequestID()
	req.Header.Set(requestIDHeader, requestID)
	accept := r.accept
	if accept == "" {
		accept = "application/json"
	}
	req.Header.Set("Accept", accept)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	client := c.authed
	if r.anon {
		client = c.anon
	}

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		c.log.Debug().Err(err).Str("method", r.method).Str("path", r.path).Str("request_id", requestID).Msg("API request failed")
		return nil, fmt.Errorf("%s %s: %w", r.method, r.path, err)
	}
	c.log.Debug().
		Str("method", r.method).
		Str("path", r.path).
		Int("status", resp.StatusCode).
		Str("request_id", requestID).
		Dur("duration", time.Since(start)).
		Msg("API request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		return nil, newAPIError(resp, requestID)
	}
	return resp, nil
}

func pageQuery(page int) url.Values {
	q := url.Values{}
	if page < 1 {
		page = 1
	}
	q.Set("page", fmt.Sprint(page))
	return q
}
