package infobip

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"google.golang.org/grpc/codes"

	"github.com/starius/infobip/internal/shared"
)

var (
	// ErrMockNotEngaged is returned by mock controls while the client is live.
	ErrMockNotEngaged = errors.New("call EngageMock() first")

	// ErrUnknownMethod is returned by MockMacro for a name which is not
	// an operation of the client.
	ErrUnknownMethod = errors.New("cannot monkey-patch non-existing method on mock object")

	// ErrClientClosing is returned for requests issued after Close.
	ErrClientClosing = errors.New("infobip client is closing")
)

// MissingInputError means a required top-level argument is absent.
type MissingInputError struct {
	Method string
	What   string
}

func (e *MissingInputError) Error() string {
	return fmt.Sprintf("%s: %s required", e.Method, e.What)
}

func (e *MissingInputError) Code() codes.Code { return codes.InvalidArgument }
func (e *MissingInputError) HttpCode() int    { return httpCode(e) }

// MissingRequiredParameterError means a required parameter is blank after
// merging defaults.
type MissingRequiredParameterError struct {
	Param string
}

func (e *MissingRequiredParameterError) Error() string {
	return fmt.Sprintf("missing required parameter %q", e.Param)
}

func (e *MissingRequiredParameterError) Code() codes.Code { return codes.InvalidArgument }
func (e *MissingRequiredParameterError) HttpCode() int    { return httpCode(e) }

// InvalidParameterTypeError means a value does not match declared types.
type InvalidParameterTypeError struct {
	Param    string
	Expected Types
	Got      Type
}

func (e *InvalidParameterTypeError) Error() string {
	return fmt.Sprintf("wrong type of parameter %q: want %s, got %s", e.Param, e.Expected, e.Got)
}

func (e *InvalidParameterTypeError) Code() codes.Code { return codes.InvalidArgument }
func (e *InvalidParameterTypeError) HttpCode() int    { return httpCode(e) }

// PayloadShapeError means nested payload validation failed, e.g. a message
// without destinations.
type PayloadShapeError struct {
	Field  string
	Reason string
	Err    error
}

func (e *PayloadShapeError) Error() string {
	return fmt.Sprintf("bad payload field %s: %s", e.Field, e.Reason)
}

func (e *PayloadShapeError) Unwrap() error    { return e.Err }
func (e *PayloadShapeError) Code() codes.Code { return codes.InvalidArgument }
func (e *PayloadShapeError) HttpCode() int    { return httpCode(e) }

// TransportError is returned when the request failed on the wire or the API
// answered with a non-2xx status.
type TransportError struct {
	// StatusCode is 0 if no response was received.
	StatusCode int
	Status     string
	Body       []byte

	// ServiceException is decoded from the body if the API sent one.
	ServiceException *shared.ServiceException

	Err error
}

func (e *TransportError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("request failed: %v", e.Err)
	}
	if e.ServiceException != nil && e.ServiceException.Text != "" {
		return fmt.Sprintf("API returned error with HTTP status %d %s: %s", e.StatusCode, e.Status, e.ServiceException.Text)
	}
	return fmt.Sprintf("API returned error with HTTP status %d %s", e.StatusCode, e.Status)
}

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) Code() codes.Code {
	if e.StatusCode == 0 {
		return codes.Unavailable
	}
	return codeFromHTTP(e.StatusCode)
}

func (e *TransportError) HttpCode() int {
	if e.StatusCode != 0 {
		return e.StatusCode
	}
	return httpCode(e)
}

// MockError is the simulated failure of an engaged mock.
type MockError struct {
	Response *Response
}

func (e *MockError) Error() string {
	return "[Infobip] : something unexpected happened"
}

func (e *MockError) Code() codes.Code { return codeFromHTTP(e.Response.StatusCode) }
func (e *MockError) HttpCode() int    { return e.Response.StatusCode }

type coder interface {
	Code() codes.Code
}

func httpCode(c coder) int {
	return runtime.HTTPStatusFromCode(c.Code())
}

// Code returns gRPC code of errors of this package, codes.Unknown otherwise.
func Code(err error) codes.Code {
	var c coder
	if errors.As(err, &c) {
		return c.Code()
	}
	return codes.Unknown
}

func codeFromHTTP(status int) codes.Code {
	switch status {
	case http.StatusBadRequest:
		return codes.InvalidArgument
	case http.StatusUnauthorized:
		return codes.Unauthenticated
	case http.StatusForbidden:
		return codes.PermissionDenied
	case http.StatusNotFound:
		return codes.NotFound
	case http.StatusConflict:
		return codes.AlreadyExists
	case http.StatusTooManyRequests:
		return codes.ResourceExhausted
	case http.StatusNotImplemented:
		return codes.Unimplemented
	case http.StatusServiceUnavailable:
		return codes.Unavailable
	case http.StatusGatewayTimeout:
		return codes.DeadlineExceeded
	}
	if status >= 500 {
		return codes.Internal
	}
	return codes.Unknown
}
