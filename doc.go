/*
Package infobip is a client of Infobip SMS and voice API: phone numbers,
text and binary SMS, text-to-speech calls and delivery reports.

Every API method is declared by a Descriptor: HTTP method, path template,
parameters with their types and defaults.

	var purchase = &infobip.Descriptor{
		Name:   "PurchaseNumber",
		Method: http.MethodPost,
		Path:   "/numbers/1/numbers",
		Params: []infobip.Param{
			// "*" marks a required parameter.
			infobip.P("numberKey*", infobip.String),
		},
	}

Path templates contain placeholders of form {:name}. Their types are listed
in RouteParams. Params of GET and HEAD requests are put into the query
string, params of other methods into the body (JSON or form encoded,
depending on BodyMode). Params are written in declaration order.

Values passed by the caller are checked against the declared types, which
form a closed set: String, Number, Boolean, Array, Object and Date.
Defaults are merged under caller values. A required parameter which is
nil, an empty string, an empty slice or an empty map is reported with
*MissingRequiredParameterError, a value of wrong type with
*InvalidParameterTypeError. These errors are returned before any request
is sent.

Create the client:

	client, err := infobip.NewClient(infobip.Config{
		APIKey: "...",
	})
	if err != nil {
		panic(err)
	}
	defer client.Close()

	res, err := client.SendSMS(ctx, infobip.Values{
		"from": "InfoSMS",
		"to":   "41793026727",
		"text": "Hello!",
	})

Responses are returned raw: status, headers and body. Non-2xx responses are
returned as *TransportError which contains the decoded service exception.

Basic authentication is selected with AuthType: AuthBasic and Username,
Password fields of Config. Otherwise the API key is sent as "App <key>".

For tests the client can answer without network. After EngageMock every
method waits DefaultMockDelay (see MockDelay option) and returns a canned
success response. RespondWithError switches to the canned *MockError.
MockMacro replaces the answer of one method. DisengageMock returns to live
dispatch. Alternatively pass a *Mock or any other Transport with
WithTransport option.
*/
package infobip
