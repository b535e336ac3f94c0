package infobip

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"
)

// DefaultHost serves both sandbox and live traffic.
const DefaultHost = "api.infobip.com"

// Config holds construction parameters of a Client.
type Config struct {
	APIKey string

	// Production selects the live host. Both hosts are currently the same.
	Production bool

	// AuthType is AuthKey (default) or AuthBasic.
	AuthType AuthType
	Username string
	Password string

	// BaseHost overrides DefaultHost, e.g. "xxxxx.api.infobip.com" or
	// "127.0.0.1:8080". May include a scheme.
	BaseHost string

	// Encrypted selects https for BaseHost. DefaultHost always uses https.
	Encrypted bool
}

// BaseURL returns scheme and host of the API without trailing slash.
func (c *Config) BaseURL() string {
	host := c.BaseHost
	if host == "" {
		return "https://" + DefaultHost
	}
	if u, err := url.Parse(host); err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != "" {
		return u.Scheme + "://" + u.Host
	}
	if c.Encrypted {
		return "https://" + host
	}
	return "http://" + host
}

// Client calls Infobip API methods. It is safe for concurrent use:
// each call builds its own Request.
type Client struct {
	baseURL       string
	authorization string
	userAgent     string
	lenient       bool
	mockDelay     time.Duration

	live Transport

	mu   sync.Mutex
	mock *Mock
}

// NewClient creates new instance of client.
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	authorization, err := cfg.authorization()
	if err != nil {
		return nil, err
	}

	o := newDefaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	live := o.transport
	if live == nil {
		client := o.client
		if client == nil {
			client = defaultHTTPClient()
		}
		live = NewHTTPTransport(client, o.maxBody, o.errorf)
	}

	return &Client{
		baseURL:       cfg.BaseURL(),
		authorization: authorization,
		userAgent:     o.userAgent,
		lenient:       o.lenient,
		mockDelay:     o.mockDelay,
		live:          live,
	}, nil
}

// Methods returns names of operations of the client.
func (c *Client) Methods() []string {
	descriptors := Descriptors()
	names := make([]string, 0, len(descriptors))
	for _, d := range descriptors {
		names = append(names, d.Name)
	}
	return names
}

// EngageMock switches the client to canned responses.
func (c *Client) EngageMock() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mock = NewMock(c.Methods(), c.mockDelay)
}

// DisengageMock switches the client back to live dispatch.
func (c *Client) DisengageMock() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mock = nil
}

// Mock returns the engaged mock or nil.
func (c *Client) Mock() *Mock {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mock
}

// RespondWithError makes the engaged mock fail subsequent calls.
func (c *Client) RespondWithError() error {
	return c.setMockError(true)
}

// RespondWithoutError makes the engaged mock succeed subsequent calls.
func (c *Client) RespondWithoutError() error {
	return c.setMockError(false)
}

func (c *Client) setMockError(fail bool) error {
	m := c.Mock()
	if m == nil {
		return ErrMockNotEngaged
	}
	m.RespondWithError(fail)
	return nil
}

// MockMacro replaces the mock stub of the named method.
func (c *Client) MockMacro(method string, stub Stub) error {
	m := c.Mock()
	if m == nil {
		return ErrMockNotEngaged
	}
	return m.SetStub(method, stub)
}

func (c *Client) transport() Transport {
	if m := c.Mock(); m != nil {
		return m
	}
	return c.live
}

// Close cancels in-flight requests of the live transport.
func (c *Client) Close() error {
	if closer, ok := c.live.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// newRequest validates in and builds the request for d. route supplies
// values of path placeholders.
func (c *Client) newRequest(d *Descriptor, route, in Values) (*Request, error) {
	if d.NeedsInput() && len(in) == 0 {
		return nil, &MissingInputError{Method: d.Name, What: "parameters"}
	}

	payload, err := Serialize(d, in)
	if err != nil {
		return nil, err
	}

	fill := FillPath
	if c.lenient {
		fill = FillPathLenient
	}
	path, err := fill(d, route)
	if err != nil {
		return nil, err
	}

	u := c.baseURL + path
	if payload.Query != "" {
		u += "?" + payload.Query
	}

	header := make(http.Header)
	header.Set("Accept", "application/json")
	header.Set("Authorization", c.authorization)
	if c.userAgent != "" {
		header.Set("User-Agent", c.userAgent)
	}
	if payload.Body != nil {
		header.Set("Content-Type", d.BodyMode.ContentType())
	}

	return &Request{
		Operation: d.Name,
		Method:    d.Method,
		URL:       u,
		Header:    header,
		Body:      payload.Body,
		Params:    in,
	}, nil
}

func (c *Client) do(ctx context.Context, req *Request) (*Response, error) {
	res, err := c.transport().Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%s failed: %w", req.Operation, err)
	}
	return res, nil
}
