package form

import (
	"maps"
	"net/url"
	"slices"
)

// FieldAction is the field that names the action a payload invokes.
const FieldAction = "Action"

// Fields is a flat set of form fields keyed by dot-joined path.
type Fields map[string]string

// Action returns the action named by the fields, if any.
func (f Fields) Action() string {
	return f[FieldAction]
}

// Keys returns the field keys in sorted order.
func (f Fields) Keys() []string {
	return slices.Sorted(maps.Keys(f))
}

// Values returns the fields as [url.Values].
func (f Fields) Values() url.Values {
	output := make(url.Values, len(f))
	for key, value := range f {
		output.Set(key, value)
	}
	return output
}

// Encode returns the fields url-encoded, sorted by key.
func (f Fields) Encode() string {
	return f.Values().Encode()
}

// Parse reads fields back out of a url-encoded form body.
//
// Repeated keys keep their first value.
func Parse(body string) (Fields, error) {
	values, err := url.ParseQuery(body)
	if err != nil {
		return nil, err
	}
	output := make(Fields, len(values))
	for key, value := range values {
		if len(value) > 0 {
			output[key] = value[0]
		}
	}
	return output, nil
}
