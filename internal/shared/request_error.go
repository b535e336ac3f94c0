package shared

import "encoding/json"

// RequestError is the error body sent by the API.
type RequestError struct {
	RequestError struct {
		ServiceException *ServiceException `json:"serviceException,omitempty"`
		PolicyException  *ServiceException `json:"policyException,omitempty"`
	} `json:"requestError"`
}

// ServiceException describes why the API rejected a request.
type ServiceException struct {
	MessageID        string          `json:"messageId"`
	Text             string          `json:"text"`
	ValidationErrors json.RawMessage `json:"validationErrors,omitempty"`
}

// Exception returns the service or policy exception, whichever is set.
func (e *RequestError) Exception() *ServiceException {
	if e.RequestError.ServiceException != nil {
		return e.RequestError.ServiceException
	}
	return e.RequestError.PolicyException
}

// ParseRequestError decodes an error body. It returns nil if the body is not
// an API error.
func ParseRequestError(body []byte) *ServiceException {
	var msg RequestError
	if err := json.Unmarshal(body, &msg); err != nil {
		return nil
	}
	return msg.Exception()
}
