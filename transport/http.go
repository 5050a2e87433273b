package transport

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/brendoncarroll/stdctx/logctx"
	"golang.org/x/oauth2"
)

// maxBodyBytes bounds how much of a response body we will buffer.
const maxBodyBytes = 64 << 20

// HTTP is a Transport backed by net/http against a single Redfish service
// root. Credential plumbing beyond an optional bearer token is the caller's
// concern: HTTP only knows how to attach whatever TokenSource it was given.
type HTTP struct {
	base   *url.URL
	client *http.Client

	// tokenSource, if non-nil, supplies a bearer token attached to every
	// request. The planner never constructs tokens itself.
	tokenSource oauth2.TokenSource
}

// Option configures a HTTP transport.
type Option func(*HTTP)

// WithTokenSource attaches a bearer-token credential source to the
// transport.
func WithTokenSource(ts oauth2.TokenSource) Option {
	return func(h *HTTP) { h.tokenSource = ts }
}

// WithHTTPClient overrides the underlying http.Client, e.g. for TLS options.
func WithHTTPClient(c *http.Client) Option {
	return func(h *HTTP) { h.client = c }
}

// NewHTTP creates a Transport rooted at base, e.g. "https://mgmt.example:443".
func NewHTTP(base string, opts ...Option) (*HTTP, error) {
	u, err := url.Parse(base)
	if err != nil {
		return nil, err
	}
	h := &HTTP{base: u, client: http.DefaultClient}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

func (h *HTTP) httpClient(ctx context.Context) *http.Client {
	if h.tokenSource == nil {
		return h.client
	}
	return oauth2.NewClient(context.WithValue(ctx, oauth2.HTTPClient, h.client), h.tokenSource)
}

func (h *HTTP) resolve(p string) string {
	u := *h.base
	u.Path = p
	return u.String()
}

func (h *HTTP) do(ctx context.Context, method, path string, body []byte) (*Response, error) {
	var reader *bytes.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequestWithContext(ctx, method, h.resolve(path), reader)
	if err != nil {
		return nil, fail(err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	logctx.Debugf(ctx, "%s %s", method, path)
	resp, err := h.httpClient(ctx).Do(req)
	if err != nil {
		return nil, fail(err)
	}
	data, err := drain(resp.Body, maxBodyBytes)
	if err != nil {
		return nil, fail(err)
	}
	return &Response{Code: resp.StatusCode, Body: data, Header: resp.Header}, nil
}

func (h *HTTP) Get(ctx context.Context, path string) (*Response, error) {
	return h.do(ctx, http.MethodGet, path, nil)
}

func (h *HTTP) Post(ctx context.Context, path string, body []byte) (*Response, error) {
	return h.do(ctx, http.MethodPost, path, body)
}

func (h *HTTP) Patch(ctx context.Context, path string, body []byte) (*Response, error) {
	return h.do(ctx, http.MethodPatch, path, body)
}

func (h *HTTP) Delete(ctx context.Context, path string) (*Response, error) {
	return h.do(ctx, http.MethodDelete, path, nil)
}

var _ Transport = (*HTTP)(nil)

func (r *Response) String() string {
	return fmt.Sprintf("%d (%d bytes)", r.Code, len(r.Body))
}
