package form

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Marshaler is implemented by action payloads.
type Marshaler interface {
	// Action returns the name of the remote action, e.g. "CreateQueue".
	Action() string
	// MarshalFields writes the action specific fields to the encoder.
	MarshalFields(*Encoder)
}

// Marshal flattens a payload into fields, starting with its [FieldAction].
func Marshal(m Marshaler) Fields {
	enc := NewEncoder()
	enc.String(FieldAction, m.Action())
	m.MarshalFields(enc)
	return enc.Fields()
}

// Flatten flattens an untyped nested document.
//
// Nested maps extend the key path with ".<key>", lists are comma joined, and
// every other leaf is stringified. A nil leaf becomes the literal "null".
func Flatten(values map[string]any) Fields {
	enc := NewEncoder()
	for key, value := range values {
		enc.Value(key, value)
	}
	return enc.Fields()
}

// NewEncoder returns a new encoder with an empty field set.
func NewEncoder() *Encoder {
	return &Encoder{
		fields: make(Fields),
	}
}

// Encoder writes leaf values under a key prefix.
//
// Encoders returned to [Encoder.Object] callbacks share the parent's fields.
type Encoder struct {
	prefix string
	fields Fields
}

// Fields returns the fields written so far.
func (e *Encoder) Fields() Fields {
	return e.fields
}

// String writes a string field.
func (e *Encoder) String(name, value string) {
	e.fields[e.key(name)] = value
}

// OptionalString writes a string field if the value is set.
func (e *Encoder) OptionalString(name string, value *string) {
	if value != nil {
		e.String(name, *value)
	}
}

// Int writes an integer field.
func (e *Encoder) Int(name string, value int32) {
	e.String(name, strconv.FormatInt(int64(value), 10))
}

// OptionalInt writes an integer field if the value is set.
func (e *Encoder) OptionalInt(name string, value *int32) {
	if value != nil {
		e.Int(name, *value)
	}
}

// Strings writes a list as a single comma joined field.
func (e *Encoder) Strings(name string, values []string) {
	e.Value(name, values)
}

// Map writes each entry of a map as "<name>.<key>".
func (e *Encoder) Map(name string, values map[string]string) {
	e.Value(name, values)
}

// Object writes nested fields under "<name>.".
func (e *Encoder) Object(name string, fn func(*Encoder)) {
	fn(&Encoder{
		prefix: e.key(name),
		fields: e.fields,
	})
}

// List writes each item as an object under "<name>.<n>", with n starting at 1.
func List[T any](e *Encoder, name string, items []T, fn func(*Encoder, T)) {
	for index, item := range items {
		e.Object(name+"."+strconv.Itoa(index+1), func(child *Encoder) {
			fn(child, item)
		})
	}
}

// Value writes an untyped value.
func (e *Encoder) Value(name string, value any) {
	switch typed := value.(type) {
	case map[string]any:
		e.Object(name, func(child *Encoder) {
			for key, value := range typed {
				child.Value(key, value)
			}
		})
	case map[string]string:
		e.Object(name, func(child *Encoder) {
			for key, value := range typed {
				child.String(key, value)
			}
		})
	case []string:
		e.String(name, strings.Join(typed, ","))
	case []any:
		parts := make([]string, 0, len(typed))
		for _, element := range typed {
			parts = append(parts, stringify(element))
		}
		e.String(name, strings.Join(parts, ","))
	default:
		e.reflectValue(name, typed)
	}
}

// reflectValue writes maps and lists of any element type, e.g. map[string]int or []int32.
func (e *Encoder) reflectValue(name string, value any) {
	if _, ok := value.(fmt.Stringer); ok || value == nil {
		e.String(name, stringify(value))
		return
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Map:
		e.Object(name, func(child *Encoder) {
			iter := rv.MapRange()
			for iter.Next() {
				child.Value(fmt.Sprint(iter.Key().Interface()), iter.Value().Interface())
			}
		})
	case reflect.Slice, reflect.Array:
		parts := make([]string, 0, rv.Len())
		for index := range rv.Len() {
			parts = append(parts, stringify(rv.Index(index).Interface()))
		}
		e.String(name, strings.Join(parts, ","))
	default:
		e.String(name, stringify(value))
	}
}

func (e *Encoder) key(name string) string {
	if e.prefix == "" {
		return name
	}
	return e.prefix + "." + name
}

func stringify(value any) string {
	switch typed := value.(type) {
	case nil:
		return "null"
	case string:
		return typed
	case fmt.Stringer:
		return typed.String()
	default:
		return fmt.Sprint(typed)
	}
}
