package infobip

import (
	"log"
	"net/http"
	"time"
)

const (
	// DefaultMockDelay is how long mock stubs wait before answering.
	DefaultMockDelay = 750 * time.Millisecond

	defaultMaxBody   = 10 << 20
	defaultUserAgent = "infobip-go"
)

type options struct {
	client    HttpClient
	transport Transport
	errorf    func(format string, args ...interface{})
	maxBody   int64
	userAgent string
	lenient   bool
	mockDelay time.Duration
}

func newDefaultOptions() *options {
	return &options{
		errorf:    log.Printf,
		maxBody:   defaultMaxBody,
		userAgent: defaultUserAgent,
		mockDelay: DefaultMockDelay,
	}
}

// Option configures a Client.
type Option func(*options)

// ErrorLogger sets the function used to report non-fatal errors.
func ErrorLogger(logger func(format string, args ...interface{})) Option {
	return func(o *options) {
		o.errorf = logger
	}
}

// CustomClient replaces the default HTTP client. It is ignored if
// WithTransport is used.
func CustomClient(client HttpClient) Option {
	return func(o *options) {
		o.client = client
	}
}

// WithTransport replaces live HTTP dispatch, e.g. with a *Mock.
func WithTransport(t Transport) Option {
	return func(o *options) {
		o.transport = t
	}
}

// MaxBody limits the size of response bodies.
func MaxBody(maxBody int64) Option {
	return func(o *options) {
		o.maxBody = maxBody
	}
}

// UserAgent sets User-Agent header of requests.
func UserAgent(userAgent string) Option {
	return func(o *options) {
		o.userAgent = userAgent
	}
}

// LenientPaths makes bad route parameters render as "null" path segments
// instead of failing the call.
func LenientPaths() Option {
	return func(o *options) {
		o.lenient = true
	}
}

// MockDelay sets the delay of mocks created by EngageMock.
func MockDelay(delay time.Duration) Option {
	return func(o *options) {
		o.mockDelay = delay
	}
}

func defaultHTTPClient() *http.Client {
	return &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}
