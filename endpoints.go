package infobip

import (
	"context"
	"net/http"
)

var (
	numbersDescriptor = &Descriptor{
		Name:   "Numbers",
		Method: http.MethodGet,
		Path:   "/numbers/1/numbers/available",
		Params: []Param{
			P("limit*", Number),
			P("country", String),
			P("number", String),
			P("capabilities", Array, String),
			P("page", Number),
		},
		Defaults: Values{"country": "NG"},
	}

	getNumberDescriptor = &Descriptor{
		Name:        "GetNumber",
		Method:      http.MethodGet,
		Path:        "/numbers/1/numbers/{:numberKey}",
		RouteParams: map[string]Types{"numberKey": {String}},
	}

	purchaseNumberDescriptor = &Descriptor{
		Name:   "PurchaseNumber",
		Method: http.MethodPost,
		Path:   "/numbers/1/numbers",
		Params: []Param{
			P("numberKey*", String),
		},
	}

	sendVoiceBulkDescriptor = &Descriptor{
		Name:   "SendVoiceBulk",
		Method: http.MethodPost,
		Path:   "/tts/3/multi",
		Params: []Param{
			P("bulkId", String),
			P("messages*", Array),
		},
	}

	sendVoiceDescriptor = &Descriptor{
		Name:   "SendVoice",
		Method: http.MethodPost,
		Path:   "/tts/3/single",
		Params: []Param{
			P("from", String),
			P("to*", String, Array),
			P("text*", String),
			P("language", String),
			P("voice*", Object),
		},
		Defaults: Values{"language": "en"},
	}

	sendSMSBulkDescriptor = &Descriptor{
		Name:   "SendSMSBulk",
		Method: http.MethodPost,
		Path:   "/sms/1/text/multi",
		Params: []Param{
			P("bulkId", String),
			P("messages*", Array),
		},
	}

	// Required params depend on the path, see SendSMS.
	sendSMSDescriptor = &Descriptor{
		Name:        "SendSMS",
		Method:      http.MethodPost,
		Path:        "/sms/2/text/{:type}",
		RouteParams: map[string]Types{"type": {String}},
		Params: []Param{
			P("bulkId", String),
			P("from", String),
			P("to", String, Array),
			P("text", String),
			P("messages", Array),
			P("tracking", Object),
		},
	}

	sendSMSBinaryDescriptor = &Descriptor{
		Name:   "SendSMSBinary",
		Method: http.MethodPost,
		Path:   "/sms/2/binary/advanced",
		Params: []Param{
			P("bulkId", String),
			P("messages*", Array),
		},
	}

	getSMSDeliveryReportsDescriptor = &Descriptor{
		Name:   "GetSMSDeliveryReports",
		Method: http.MethodGet,
		Path:   "/sms/1/reports",
		Params: []Param{
			P("bulkId", String),
			P("messageId", String),
			P("limit", Number),
		},
	}

	sendDescriptor = &Descriptor{
		Name:        "Send",
		Method:      http.MethodPost,
		Path:        "/sms/1/text/{:type}",
		RouteParams: map[string]Types{"type": {String}},
		Params: []Param{
			P("from", String),
			P("to*", String, Array),
			P("text*", String),
		},
	}
)

// Descriptors returns descriptors of all operations of Client.
func Descriptors() []*Descriptor {
	return []*Descriptor{
		numbersDescriptor,
		getNumberDescriptor,
		purchaseNumberDescriptor,
		sendVoiceBulkDescriptor,
		sendVoiceDescriptor,
		sendSMSBulkDescriptor,
		sendSMSDescriptor,
		sendSMSBinaryDescriptor,
		getSMSDeliveryReportsDescriptor,
		sendDescriptor,
	}
}

// Numbers lists numbers available for purchase. limit is required,
// country defaults to "NG".
func (c *Client) Numbers(ctx context.Context, params Values) (*Response, error) {
	req, err := c.newRequest(numbersDescriptor, nil, params)
	if err != nil {
		return nil, err
	}
	return c.do(ctx, req)
}

// GetNumber returns the purchased number by numberKey.
func (c *Client) GetNumber(ctx context.Context, params Values) (*Response, error) {
	req, err := c.newRequest(getNumberDescriptor, params, params)
	if err != nil {
		return nil, err
	}
	return c.do(ctx, req)
}

// PurchaseNumber buys the number identified by numberKey.
func (c *Client) PurchaseNumber(ctx context.Context, params Values) (*Response, error) {
	req, err := c.newRequest(purchaseNumberDescriptor, nil, params)
	if err != nil {
		return nil, err
	}
	return c.do(ctx, req)
}

// SendVoiceBulk sends text-to-speech messages to many destinations.
func (c *Client) SendVoiceBulk(ctx context.Context, params Values) (*Response, error) {
	req, err := c.newRequest(sendVoiceBulkDescriptor, nil, params)
	if err != nil {
		return nil, err
	}
	if err := checkShape[voiceMessages](params, "messages"); err != nil {
		return nil, err
	}
	return c.do(ctx, req)
}

// SendVoice sends one text-to-speech message. voice must have name and
// gender.
func (c *Client) SendVoice(ctx context.Context, params Values) (*Response, error) {
	req, err := c.newRequest(sendVoiceDescriptor, nil, params)
	if err != nil {
		return nil, err
	}
	if err := checkShape[singleVoice](params, "voice"); err != nil {
		return nil, err
	}
	return c.do(ctx, req)
}

// SendSMSBulk sends many text messages, each with from, to and text.
func (c *Client) SendSMSBulk(ctx context.Context, params Values) (*Response, error) {
	req, err := c.newRequest(sendSMSBulkDescriptor, nil, params)
	if err != nil {
		return nil, err
	}
	if err := checkShape[textMessages](params, "messages"); err != nil {
		return nil, err
	}
	return c.do(ctx, req)
}

// SendSMS sends a text message. If params contain "messages", the advanced
// method is used and each message must have from, destinations and text.
// Otherwise "to" and "text" are required.
func (c *Client) SendSMS(ctx context.Context, params Values) (*Response, error) {
	kind := "single"
	if _, has := params["messages"]; has {
		kind = "advanced"
	}
	req, err := c.newRequest(sendSMSDescriptor, Values{"type": kind}, params)
	if err != nil {
		return nil, err
	}
	if kind == "advanced" {
		err = checkShape[advancedMessages](params, "messages")
	} else {
		err = requireParams(params, "to", "text")
	}
	if err != nil {
		return nil, err
	}
	return c.do(ctx, req)
}

// SendSMSBinary sends binary messages. Each message needs
// binary{hex, dataCoding, esmClass}.
func (c *Client) SendSMSBinary(ctx context.Context, params Values) (*Response, error) {
	req, err := c.newRequest(sendSMSBinaryDescriptor, nil, params)
	if err != nil {
		return nil, err
	}
	if err := checkShape[binaryMessages](params, "messages"); err != nil {
		return nil, err
	}
	return c.do(ctx, req)
}

// GetSMSDeliveryReports returns delivery reports not fetched yet.
// params may be nil.
func (c *Client) GetSMSDeliveryReports(ctx context.Context, params Values) (*Response, error) {
	req, err := c.newRequest(getSMSDeliveryReportsDescriptor, nil, params)
	if err != nil {
		return nil, err
	}
	return c.do(ctx, req)
}

// Send sends text to params["to"], which is a phone number or a list of
// them. A list uses the multi method.
func (c *Client) Send(ctx context.Context, params Values, text string) (*Response, error) {
	to, has := params["to"]
	if !has || isBlank(to) {
		return nil, &MissingInputError{Method: sendDescriptor.Name, What: "phone number(s)"}
	}
	kind := "single"
	if Matches(to, Array) {
		kind = "multi"
	}
	in := make(Values, len(params)+1)
	for k, v := range params {
		in[k] = v
	}
	in["text"] = text
	req, err := c.newRequest(sendDescriptor, Values{"type": kind}, in)
	if err != nil {
		return nil, err
	}
	return c.do(ctx, req)
}

// requireParams fails for the first blank value among names.
func requireParams(in Values, names ...string) error {
	for _, name := range names {
		if isBlank(in[name]) {
			return &MissingRequiredParameterError{Param: name}
		}
	}
	return nil
}
