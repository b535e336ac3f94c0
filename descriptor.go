package infobip

import (
	"net/http"
	"strings"
)

// RequiredMarker suffixes the name of a parameter that must be present.
const RequiredMarker = "*"

// BodyMode selects how a request body is encoded.
type BodyMode int

const (
	BodyJSON BodyMode = iota
	BodyForm
)

// ContentType returns the value of Content-Type header for the mode.
func (m BodyMode) ContentType() string {
	if m == BodyForm {
		return "application/x-www-form-urlencoded"
	}
	return "application/json"
}

// Param declares one body or query parameter.
type Param struct {
	// Name of the parameter, optionally suffixed with RequiredMarker.
	Name string

	// Types accepted for the value.
	Types Types
}

// P is a shorthand for building a Param.
func P(name string, types ...Type) Param {
	return Param{Name: name, Types: types}
}

// Key returns the name without the required marker and whether the
// parameter is required.
func (p Param) Key() (name string, required bool) {
	name = strings.TrimSuffix(p.Name, RequiredMarker)
	return name, name != p.Name
}

// Descriptor is the static declaration of one API operation.
type Descriptor struct {
	// Name of the operation. Used by the mock to find the stub.
	Name string

	// HTTP method.
	Method string

	// Path template with {:name} placeholders.
	Path string

	// RouteParams maps placeholder names to allowed types.
	RouteParams map[string]Types

	// Params are serialized into the query string (GET, HEAD)
	// or the body (other methods) in declaration order.
	Params []Param

	// Defaults are merged under caller values.
	Defaults Values

	BodyMode BodyMode
}

// Values is the caller's parameter object.
type Values map[string]interface{}

// NeedsInput reports whether a call must pass some values: the descriptor
// declares a route parameter or a required parameter.
func (d *Descriptor) NeedsInput() bool {
	if len(d.RouteParams) != 0 {
		return true
	}
	for _, p := range d.Params {
		if _, required := p.Key(); required {
			return true
		}
	}
	return false
}

// InQuery reports whether params go to the query string.
func (d *Descriptor) InQuery() bool {
	return d.Method == http.MethodGet || d.Method == http.MethodHead
}

// merge returns defaults overridden by the caller's non-nil values.
func (d *Descriptor) merge(in Values) Values {
	merged := make(Values, len(d.Defaults)+len(in))
	for k, v := range d.Defaults {
		merged[k] = v
	}
	for k, v := range in {
		if v == nil {
			continue
		}
		merged[k] = v
	}
	return merged
}
