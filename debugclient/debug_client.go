package debugclient

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httputil"
	"strings"
	"sync"
	"sync/atomic"

	"moul.io/http2curl"
)

type HttpClient interface {
	Do(req *http.Request) (*http.Response, error)
	CloseIdleConnections()
}

// DebugClient logs each request as a curl command and each response as a
// dump. Credentials in Authorization header are masked.
type DebugClient struct {
	impl HttpClient
	log  io.Writer
	n    uint64

	// Serializes writes of request and response blocks.
	mu sync.Mutex
}

func New(impl HttpClient, log io.Writer) (*DebugClient, error) {
	if impl == nil {
		return nil, fmt.Errorf("debugclient: nil HttpClient")
	}
	return &DebugClient{
		impl: impl,
		log:  log,
	}, nil
}

// maskAuthorization keeps the scheme and hides the credentials:
// "App abc" becomes "App ***".
func maskAuthorization(value string) string {
	if value == "" {
		return ""
	}
	scheme, _, found := strings.Cut(value, " ")
	if !found {
		return "***"
	}
	return scheme + " ***"
}

func (c *DebugClient) curl(req *http.Request) (string, error) {
	clone := req.Clone(req.Context())
	if req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return "", err
		}
		clone.Body = body
	}
	if auth := clone.Header.Get("Authorization"); auth != "" {
		clone.Header.Set("Authorization", maskAuthorization(auth))
	}
	command, err := http2curl.GetCurlCommand(clone)
	if err != nil {
		return "", err
	}
	return command.String(), nil
}

func (c *DebugClient) Do(req *http.Request) (*http.Response, error) {
	n := atomic.AddUint64(&c.n, 1)

	curl, err := c.curl(req)
	if err != nil {
		return nil, fmt.Errorf("http2curl.GetCurlCommand failed for %d: %w", n, err)
	}
	c.mu.Lock()
	_, err = fmt.Fprintf(c.log, "=== client request %d ===\n$ %s\n=== end of client request %d ===\n", n, curl, n)
	c.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("fmt.Fprintf(request) failed for %d: %w", n, err)
	}

	res, err := c.impl.Do(req)
	if err != nil {
		return nil, err
	}

	resDump, err := httputil.DumpResponse(res, true)
	if err != nil {
		return nil, fmt.Errorf("httputil.DumpResponse failed for %d: %w", n, err)
	}
	c.mu.Lock()
	_, err = fmt.Fprintf(c.log, "=== server response %d ===\n%s\n=== end of server response %d ===\n", n, string(resDump), n)
	c.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("fmt.Fprintf(response) failed for %d: %w", n, err)
	}

	return res, nil
}

func (c *DebugClient) CloseIdleConnections() {
	c.impl.CloseIdleConnections()
}
