package infobip

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/starius/infobip/internal/shared"
)

const (
	mockBulkID    = "2034072219640523072"
	mockMessageID = "2250be2d4219-3af1-78856-aabe-1362af1edfd2"
)

// Stub answers calls of one operation while the mock is engaged.
type Stub func(ctx context.Context, params Values) (*Response, error)

// MockCall records a call observed by a Mock.
type MockCall struct {
	Operation string
	Method    string
	URL       string
	Body      []byte
	Params    Values
}

// Mock is a Transport answering with canned responses after a delay.
// It never performs network I/O.
type Mock struct {
	delay time.Duration

	mu               sync.Mutex
	stubs            map[string]Stub // nil means the canned answer
	respondWithError bool
	calls            []MockCall
}

var _ Transport = (*Mock)(nil)

// NewMock creates a mock with the canned stub for each operation name.
func NewMock(names []string, delay time.Duration) *Mock {
	m := &Mock{
		delay: delay,
		stubs: make(map[string]Stub, len(names)),
	}
	for _, name := range names {
		m.stubs[name] = nil
	}
	return m
}

// RespondWithError selects whether canned answers fail. The flag is sampled
// when a call is recorded, calls already waiting are not affected.
func (m *Mock) RespondWithError(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.respondWithError = fail
}

// SetStub replaces the stub of an operation.
func (m *Mock) SetStub(name string, stub Stub) error {
	if stub == nil {
		return fmt.Errorf("mock method for %s is nil", name)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, has := m.stubs[name]; !has {
		return fmt.Errorf("%w: %s", ErrUnknownMethod, name)
	}
	m.stubs[name] = stub
	return nil
}

// Calls returns calls recorded so far.
func (m *Mock) Calls() []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]MockCall(nil), m.calls...)
}

func (m *Mock) Do(ctx context.Context, req *Request) (*Response, error) {
	m.mu.Lock()
	stub, has := m.stubs[req.Operation]
	fail := m.respondWithError
	m.calls = append(m.calls, MockCall{
		Operation: req.Operation,
		Method:    req.Method,
		URL:       req.URL,
		Body:      req.Body,
		Params:    req.Params,
	})
	m.mu.Unlock()

	if !has {
		return nil, fmt.Errorf("%w: %s", ErrUnknownMethod, req.Operation)
	}
	if stub != nil {
		return stub(ctx, req.Params)
	}
	return m.canned(ctx, req.Params, fail)
}

type mockStatus struct {
	Echo Values `json:"_"`
}

type mockMessage struct {
	To        string     `json:"to"`
	Status    mockStatus `json:"status"`
	MessageID string     `json:"messageId"`
}

type mockSuccess struct {
	BulkID   string        `json:"bulkId"`
	Messages []mockMessage `json:"messages"`
}

func (m *Mock) canned(ctx context.Context, params Values, fail bool) (*Response, error) {
	timer := time.NewTimer(m.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timer.C:
	}

	if fail {
		return nil, &MockError{Response: mockErrorResponse()}
	}

	body, err := json.Marshal(mockSuccess{
		BulkID: mockBulkID,
		Messages: []mockMessage{{
			Status:    mockStatus{Echo: params},
			MessageID: mockMessageID,
		}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode mock response: %w", err)
	}
	return &Response{
		StatusCode: http.StatusOK,
		Status:     "OK",
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       body,
	}, nil
}

func mockErrorResponse() *Response {
	var msg shared.RequestError
	msg.RequestError.ServiceException = &shared.ServiceException{
		MessageID: mockMessageID,
		Text:      "",
	}
	body, err := json.Marshal(msg)
	if err != nil {
		panic(err)
	}
	return &Response{
		StatusCode: http.StatusBadRequest,
		Status:     "Bad request",
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       body,
	}
}
