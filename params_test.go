package infobip

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/timestamppb"
)

func TestSerializeQuery(t *testing.T) {
	cases := []struct {
		name      string
		in        Values
		wantQuery string
	}{
		{
			name:      "default is merged",
			in:        Values{"limit": 10},
			wantQuery: "limit=10&country=NG",
		},
		{
			name:      "caller overrides default",
			in:        Values{"country": "US", "limit": 5},
			wantQuery: "limit=5&country=US",
		},
		{
			name:      "nil does not override default",
			in:        Values{"limit": 5, "country": nil},
			wantQuery: "limit=5&country=NG",
		},
		{
			name:      "declaration order",
			in:        Values{"page": 2, "number": "234", "limit": 1},
			wantQuery: "limit=1&country=NG&number=234&page=2",
		},
		{
			name:      "array is JSON encoded",
			in:        Values{"limit": 1, "capabilities": []string{"SMS", "VOICE"}},
			wantQuery: "limit=1&country=NG&capabilities=%5B%22SMS%22%2C%22VOICE%22%5D",
		},
		{
			name:      "escaping",
			in:        Values{"limit": 1, "number": "a b&c"},
			wantQuery: "limit=1&country=NG&number=a+b%26c",
		},
		{
			name:      "unknown params are dropped",
			in:        Values{"limit": 1, "foo": "bar"},
			wantQuery: "limit=1&country=NG",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			payload, err := Serialize(numbersDescriptor, tc.in)
			require.NoError(t, err)
			require.Equal(t, tc.wantQuery, payload.Query)
			require.Nil(t, payload.Body)
		})
	}
}

func TestSerializeIsIdempotent(t *testing.T) {
	in := Values{"limit": 10}
	first, err := Serialize(numbersDescriptor, in)
	require.NoError(t, err)
	second, err := Serialize(numbersDescriptor, in)
	require.NoError(t, err)
	require.Equal(t, first, second)

	// Defaults are not written into caller's values.
	require.Equal(t, Values{"limit": 10}, in)
}

func TestSerializeErrors(t *testing.T) {
	cases := []struct {
		name        string
		d           *Descriptor
		in          Values
		wantMissing string
		wantInvalid string
	}{
		{
			name:        "required is absent",
			d:           numbersDescriptor,
			in:          Values{"country": "US"},
			wantMissing: "limit",
		},
		{
			name:        "required is nil",
			d:           numbersDescriptor,
			in:          Values{"limit": nil},
			wantMissing: "limit",
		},
		{
			name:        "required is empty string",
			d:           sendVoiceDescriptor,
			in:          Values{"to": "41793026727", "text": "", "voice": Values{"name": "Joanna"}},
			wantMissing: "text",
		},
		{
			name:        "required is empty array",
			d:           sendSMSBulkDescriptor,
			in:          Values{"messages": []interface{}{}},
			wantMissing: "messages",
		},
		{
			name:        "required is empty object",
			d:           sendVoiceDescriptor,
			in:          Values{"to": "41793026727", "text": "hi", "voice": map[string]interface{}{}},
			wantMissing: "voice",
		},
		{
			name:        "wrong type",
			d:           numbersDescriptor,
			in:          Values{"limit": "ten"},
			wantInvalid: "limit",
		},
		{
			name:        "wrong type of optional",
			d:           getSMSDeliveryReportsDescriptor,
			in:          Values{"bulkId": 123},
			wantInvalid: "bulkId",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Serialize(tc.d, tc.in)
			require.Error(t, err)
			if tc.wantMissing != "" {
				var missing *MissingRequiredParameterError
				require.ErrorAs(t, err, &missing)
				require.Equal(t, tc.wantMissing, missing.Param)
			}
			if tc.wantInvalid != "" {
				var invalid *InvalidParameterTypeError
				require.ErrorAs(t, err, &invalid)
				require.Equal(t, tc.wantInvalid, invalid.Param)
			}
		})
	}
}

func TestSerializeZeroIsPresent(t *testing.T) {
	payload, err := Serialize(numbersDescriptor, Values{"limit": 0})
	require.NoError(t, err)
	require.Equal(t, "limit=0&country=NG", payload.Query)

	d := &Descriptor{
		Name:   "Flag",
		Method: http.MethodPost,
		Path:   "/flag",
		Params: []Param{P("enabled*", Boolean)},
	}
	payload, err = Serialize(d, Values{"enabled": false})
	require.NoError(t, err)
	require.Equal(t, `{"enabled":false}`, string(payload.Body))
}

func TestSerializeJSONBody(t *testing.T) {
	payload, err := Serialize(sendVoiceDescriptor, Values{
		"voice": map[string]interface{}{"name": "Joanna", "gender": "female"},
		"text":  "Hello",
		"to":    "41793026727",
	})
	require.NoError(t, err)
	require.Empty(t, payload.Query)
	require.Equal(t,
		`{"to":"41793026727","text":"Hello","language":"en","voice":{"gender":"female","name":"Joanna"}}`,
		string(payload.Body),
	)
	require.Len(t, payload.Fields, 4)
	require.Equal(t, "to", payload.Fields[0].Name)
}

func TestSerializeFormBody(t *testing.T) {
	d := &Descriptor{
		Name:     "Form",
		Method:   http.MethodPost,
		Path:     "/form",
		Params:   []Param{P("to*", String), P("count", Number), P("flash", Boolean)},
		BodyMode: BodyForm,
	}
	payload, err := Serialize(d, Values{"flash": true, "count": 2, "to": "+41 79"})
	require.NoError(t, err)
	require.Equal(t, "to=%2B41+79&count=2&flash=true", string(payload.Body))
	require.Equal(t, "application/x-www-form-urlencoded", d.BodyMode.ContentType())
}

func TestSerializeDates(t *testing.T) {
	d := &Descriptor{
		Name:   "Dates",
		Method: http.MethodGet,
		Path:   "/dates",
		Params: []Param{P("at", Date), P("stamp", Date)},
	}
	at := time.Date(2020, time.January, 2, 3, 4, 5, 0, time.UTC)
	payload, err := Serialize(d, Values{"at": at, "stamp": timestamppb.New(at)})
	require.NoError(t, err)
	require.Equal(t, []Field{
		{Name: "at", Value: "Thu Jan 02 2020 03:04:05 GMT+0000"},
		{Name: "stamp", Value: "2020-01-02 03:04:05"},
	}, payload.Fields)

	d.Method = http.MethodPost
	payload, err = Serialize(d, Values{"stamp": timestamppb.New(at)})
	require.NoError(t, err)
	require.Equal(t, `{"stamp":"2020-01-02 03:04:05"}`, string(payload.Body))
}

func TestSerializeNoParams(t *testing.T) {
	payload, err := Serialize(getNumberDescriptor, Values{"numberKey": "abc"})
	require.NoError(t, err)
	require.Empty(t, payload.Query)
	require.Nil(t, payload.Body)
	require.Empty(t, payload.Fields)
}

func TestIsBlank(t *testing.T) {
	var nilPtr *int
	require.True(t, isBlank(nil))
	require.True(t, isBlank(""))
	require.True(t, isBlank([]string{}))
	require.True(t, isBlank(map[string]int{}))
	require.True(t, isBlank(nilPtr))
	require.False(t, isBlank(0))
	require.False(t, isBlank(false))
	require.False(t, isBlank("a"))
}
