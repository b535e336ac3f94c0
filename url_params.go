package infobip

import (
	"fmt"
	"net/url"
	"regexp"
)

// NullSegment is substituted by FillPathLenient for bad route parameters.
const NullSegment = "null"

var placeholderRe = regexp.MustCompile(`\{:(\w+)\}`)

// findUrlKeys returns names of placeholders in order of appearance.
func findUrlKeys(mask string) []string {
	matches := placeholderRe.FindAllStringSubmatch(mask, -1)
	result := make([]string, 0, len(matches))
	for _, m := range matches {
		result = append(result, m[1])
	}
	return result
}

// FillPath substitutes {:name} placeholders of d.Path with route values.
// A missing or mistyped value is an error.
func FillPath(d *Descriptor, values Values) (string, error) {
	return buildUrl(d, values, false)
}

// FillPathLenient is like FillPath, but puts NullSegment in place of values
// which are missing or of a wrong type.
func FillPathLenient(d *Descriptor, values Values) (string, error) {
	return buildUrl(d, values, true)
}

func buildUrl(d *Descriptor, values Values, lenient bool) (string, error) {
	var err error
	path := placeholderRe.ReplaceAllStringFunc(d.Path, func(match string) string {
		if err != nil {
			return match
		}
		name := placeholderRe.FindStringSubmatch(match)[1]
		types, has := d.RouteParams[name]
		if !has {
			err = fmt.Errorf("unknown parameter: %s", name)
			return match
		}
		value := values[name]
		if isBlank(value) || !Matches(value, types...) {
			switch {
			case lenient:
				return NullSegment
			case isBlank(value):
				err = &MissingRequiredParameterError{Param: name}
			default:
				err = &InvalidParameterTypeError{Param: name, Expected: types, Got: TypeOf(value)}
			}
			return match
		}
		s, renderErr := render(value)
		if renderErr != nil {
			err = fmt.Errorf("failed to render route parameter %q: %w", name, renderErr)
			return match
		}
		return url.PathEscape(s)
	})
	if err != nil {
		return "", err
	}
	return path, nil
}
