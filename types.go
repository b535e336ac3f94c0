package infobip

import (
	"encoding/json"
	"reflect"
	"strings"
	"time"
)

// Type is a tag of the closed set of value kinds accepted by descriptors.
type Type int

const (
	// Invalid is returned by TypeOf for nil and for values of kinds
	// like channels and functions. It never matches.
	Invalid Type = iota
	String
	Number
	Boolean
	Array
	Object
	Date
)

var typeNames = [...]string{
	Invalid: "invalid",
	String:  "string",
	Number:  "number",
	Boolean: "boolean",
	Array:   "array",
	Object:  "object",
	Date:    "date",
}

func (t Type) valid() bool {
	return t > Invalid && int(t) < len(typeNames)
}

func (t Type) String() string {
	if t < Invalid || int(t) >= len(typeNames) {
		return "unknown"
	}
	return typeNames[t]
}

// Types is an ordered list of alternative types.
type Types []Type

func (ts Types) String() string {
	names := make([]string, 0, len(ts))
	for _, t := range ts {
		names = append(names, t.String())
	}
	return strings.Join(names, "|")
}

var (
	timeType    = reflect.TypeOf(time.Time{})
	jsonNumType = reflect.TypeOf(json.Number(""))
)

// dateLike is implemented by *timestamppb.Timestamp and similar types.
type dateLike interface {
	AsTime() time.Time
}

// TypeOf classifies a runtime value.
func TypeOf(value interface{}) Type {
	if value == nil {
		return Invalid
	}
	v := reflect.ValueOf(value)
	if _, ok := value.(dateLike); ok && !(v.Kind() == reflect.Pointer && v.IsNil()) {
		return Date
	}
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return Invalid
		}
		v = v.Elem()
	}

	switch v.Type() {
	case timeType:
		return Date
	case jsonNumType:
		return Number
	}

	switch v.Kind() {
	case reflect.String:
		return String
	case reflect.Bool:
		return Boolean
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return Number
	case reflect.Slice, reflect.Array:
		return Array
	case reflect.Map, reflect.Struct:
		return Object
	}
	return Invalid
}

// Matches reports whether value is of any of the given types.
// An empty list or a list of unknown tags never matches.
func Matches(value interface{}, types ...Type) bool {
	got := TypeOf(value)
	if got == Invalid {
		return false
	}
	for _, t := range types {
		if t.valid() && t == got {
			return true
		}
	}
	return false
}
