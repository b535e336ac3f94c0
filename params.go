package infobip

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// HumanDate is the layout used to render time.Time parameters.
const HumanDate = "Mon Jan 02 2006 15:04:05 GMT-0700"

// Field is one serialized parameter.
type Field struct {
	Name string

	// Value is the string form for query and form targets and the raw value
	// (dates already rendered) for JSON bodies.
	Value interface{}
}

// Payload is the result of Serialize. Exactly one of Query and Body is set
// for a descriptor with params.
type Payload struct {
	// Query is percent-encoded, without leading "?".
	Query string

	// Body is the encoded body, JSON or form depending on BodyMode.
	Body []byte

	// Fields in declaration order.
	Fields []Field
}

// Serialize validates caller values against the descriptor and renders them
// into the query string (GET, HEAD) or the body (other methods).
func Serialize(d *Descriptor, in Values) (*Payload, error) {
	merged := d.merge(in)
	query := d.InQuery()

	fields := make([]Field, 0, len(d.Params))
	for _, p := range d.Params {
		name, required := p.Key()
		value := merged[name]
		if isBlank(value) {
			if required {
				return nil, &MissingRequiredParameterError{Param: name}
			}
			continue
		}
		if !Matches(value, p.Types...) {
			return nil, &InvalidParameterTypeError{Param: name, Expected: p.Types, Got: TypeOf(value)}
		}
		var (
			rendered interface{}
			err      error
		)
		if query || d.BodyMode == BodyForm {
			rendered, err = render(value)
		} else {
			rendered, err = raw(value)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to serialize parameter %q: %w", name, err)
		}
		fields = append(fields, Field{Name: name, Value: rendered})
	}

	payload := &Payload{Fields: fields}
	if len(d.Params) == 0 {
		return payload, nil
	}
	switch {
	case query:
		payload.Query = encodeForm(fields)
	case d.BodyMode == BodyForm:
		payload.Body = []byte(encodeForm(fields))
	default:
		body, err := encodeJSON(fields)
		if err != nil {
			return nil, err
		}
		payload.Body = body
	}
	return payload, nil
}

// isBlank reports whether a value counts as absent.
// Zero numbers and false are present.
func isBlank(value interface{}) bool {
	if value == nil {
		return true
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		return v.IsNil()
	case reflect.String, reflect.Slice, reflect.Map, reflect.Array:
		return v.Len() == 0
	}
	return false
}

// render returns the string form of a value.
func render(value interface{}) (string, error) {
	if d, ok := value.(dateLike); ok {
		return dateText(d.AsTime()), nil
	}
	v := reflect.ValueOf(value)
	for v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	if v.Type() == timeType {
		return v.Interface().(time.Time).Format(HumanDate), nil
	}
	if n, ok := v.Interface().(json.Number); ok {
		return n.String(), nil
	}
	switch v.Kind() {
	case reflect.String:
		return v.String(), nil
	case reflect.Bool:
		return strconv.FormatBool(v.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(v.Uint(), 10), nil
	case reflect.Float32:
		return strconv.FormatFloat(v.Float(), 'f', -1, 32), nil
	case reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'f', -1, 64), nil
	}
	buf, err := json.Marshal(v.Interface())
	if err != nil {
		return "", err
	}
	return string(buf), nil
}

// raw returns the value to embed into a JSON body. Dates become strings.
func raw(value interface{}) (interface{}, error) {
	if Matches(value, Date) {
		return render(value)
	}
	return value, nil
}

// dateText renders a date-like object: RFC 3339 with T and Z replaced.
func dateText(t time.Time) string {
	s := t.UTC().Format(time.RFC3339Nano)
	s = strings.NewReplacer("T", " ", "Z", " ").Replace(s)
	return strings.TrimSpace(s)
}

func encodeForm(fields []Field) string {
	var b strings.Builder
	for i, f := range fields {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(f.Name))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(f.Value.(string)))
	}
	return b.String()
}

// encodeJSON writes an object keeping declaration order of fields.
func encodeJSON(fields []Field) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Name)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(f.Value)
		if err != nil {
			return nil, fmt.Errorf("failed to encode parameter %q: %w", f.Name, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
