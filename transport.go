package infobip

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/starius/infobip/internal/shared"
)

// HttpClient is the part of *http.Client used by HTTPTransport.
type HttpClient interface {
	Do(req *http.Request) (*http.Response, error)
	CloseIdleConnections()
}

// Request is built by the client for each call and is not modified after
// it is passed to a Transport.
type Request struct {
	// Operation is the name of the client method, e.g. "SendSMS".
	Operation string

	Method string
	URL    string
	Header http.Header
	Body   []byte

	// Params are the caller's values as passed to the client method.
	Params Values
}

// Response is the raw response of the API.
type Response struct {
	StatusCode int

	// Status is the status text, e.g. "OK".
	Status string

	Header http.Header
	Body   []byte
}

// Transport dispatches requests built by the client.
type Transport interface {
	Do(ctx context.Context, req *Request) (*Response, error)
}

// HTTPTransport sends requests over HTTP.
type HTTPTransport struct {
	client  HttpClient
	maxBody int64
	errorf  func(format string, args ...interface{})

	inflight *inflight
}

// NewHTTPTransport creates a transport using client. Response bodies larger
// than maxBody are rejected.
func NewHTTPTransport(client HttpClient, maxBody int64, errorf func(format string, args ...interface{})) *HTTPTransport {
	return &HTTPTransport{
		client:   client,
		maxBody:  maxBody,
		errorf:   errorf,
		inflight: newInflight(),
	}
}

func (t *HTTPTransport) Do(ctx context.Context, req *Request) (*Response, error) {
	ctx, done, err := t.inflight.start(ctx)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer done()

	var body io.Reader
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	httpReq.Header = req.Header.Clone()

	res, err := t.client.Do(httpReq)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	res.Body = http.MaxBytesReader(nil, res.Body, t.maxBody)
	defer func() {
		if err := res.Body.Close(); err != nil {
			t.errorf("failed to close resource: %v", err)
		}
	}()

	buf, err := io.ReadAll(res.Body)
	status := statusText(res)
	if err != nil {
		return nil, &TransportError{
			StatusCode: res.StatusCode,
			Status:     status,
			Err:        err,
		}
	}

	// Handle all 2xx responses as success.
	if 200 <= res.StatusCode && res.StatusCode < 300 {
		return &Response{
			StatusCode: res.StatusCode,
			Status:     status,
			Header:     res.Header,
			Body:       buf,
		}, nil
	}

	return nil, &TransportError{
		StatusCode:       res.StatusCode,
		Status:           status,
		Body:             buf,
		ServiceException: shared.ParseRequestError(buf),
		Err:              errors.New(res.Status),
	}
}

// Close cancels in-flight requests, waits for them to return and closes
// idle connections.
func (t *HTTPTransport) Close() error {
	t.inflight.close()
	t.client.CloseIdleConnections()

	if closer, ok := t.client.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			return err
		}
	}
	return nil
}

// statusText returns "OK" for Status "200 OK".
func statusText(res *http.Response) string {
	text := strings.TrimPrefix(res.Status, strconv.Itoa(res.StatusCode)+" ")
	if text != "" && text != res.Status {
		return text
	}
	return http.StatusText(res.StatusCode)
}
