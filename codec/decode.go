package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
)

// Option tunes decoding.
type Option func(*options)

type options struct {
	lenient bool
}

// Lenient lets absent required fields decode to their zero value instead of
// failing with a ValidationError.
func Lenient() Option {
	return func(o *options) { o.lenient = true }
}

func newOptions(opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	return o
}

// Unmarshal parses a JSON object into the model v points to. Nested models
// are decoded recursively with the same options. A malformed date-time fails
// with *FormatError; a value of the wrong JSON kind or a missing required
// field fails with *ValidationError.
func Unmarshal(data []byte, v any, opts ...Option) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("codec: Unmarshal needs a non-nil pointer, got %T", v)
	}
	return decodeModel(data, rv.Elem(), newOptions(opts))
}

// Decode is Unmarshal for a value that was already decoded into generic Go
// values (map[string]any, []any, string, float64, bool, nil).
func Decode(value any, v any, opts ...Option) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("codec: re-encoding generic value: %w", err)
	}
	return Unmarshal(data, v, opts...)
}

func decodeModel(data []byte, rv reflect.Value, o *options) error {
	s, err := schemaFor(rv.Type())
	if err != nil {
		return err
	}
	switch got := jsonKind(data); got {
	case "object":
	case "null":
		return nil
	default:
		return &ValidationError{Model: s.name, Expected: "object", Got: got}
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("codec: %s: %w", s.name, err)
	}

	rv.SetZero()
	var times map[string]string
	for i := range s.fields {
		f := &s.fields[i]
		msg, ok := raw[f.name]
		if !ok {
			if f.required && !o.lenient {
				return &ValidationError{Model: s.name, Field: f.name, Expected: "required"}
			}
			continue
		}
		if err := decodeField(f, msg, rv.FieldByIndex(f.index), o); err != nil {
			return nest(err, s.name, f.name)
		}
		if f.kind == kindTime && jsonKind(msg) == "string" {
			var wire string
			if err := json.Unmarshal(msg, &wire); err == nil {
				if times == nil {
					times = map[string]string{}
				}
				times[f.name] = wire
			}
		}
	}
	x := newExtras(raw, s.known)
	x.times = times
	rv.FieldByIndex(s.extras).Set(reflect.ValueOf(x))
	return nil
}

func decodeField(f *field, msg json.RawMessage, fv reflect.Value, o *options) error {
	if jsonKind(msg) == "null" {
		// Only tri-state fields remember an explicit null. Pointers, lists
		// and expandables stay unset; plain required values keep zero when
		// lenient.
		if !acceptsNull(f) && !o.lenient {
			return &ValidationError{Expected: f.expected, Got: "null"}
		}
		if f.nullable {
			setNull(fv)
		}
		return nil
	}
	if !f.nullable && !f.pointer {
		return decodeValue(f, msg, fv, o)
	}

	target := reflect.New(f.value).Elem()
	if err := decodeValue(f, msg, target, o); err != nil {
		return err
	}
	if f.nullable {
		setValue(fv, target)
	} else {
		fv.Set(target.Addr())
	}
	return nil
}

func decodeValue(f *field, msg json.RawMessage, target reflect.Value, o *options) error {
	switch f.kind {
	case kindTime:
		var s string
		if err := json.Unmarshal(msg, &s); err != nil {
			return &ValidationError{Expected: f.expected, Got: jsonKind(msg)}
		}
		t, err := ParseTime(s)
		if err != nil {
			return &FormatError{Value: s, Err: err}
		}
		target.Set(reflect.ValueOf(t))
		return nil
	case kindModel:
		return decodeModel(msg, target, o)
	case kindList:
		return decodeList(f, msg, target, o)
	case kindExpandable:
		return target.Addr().Interface().(expandableDecoder).decodeExpandable(msg, o)
	}

	if err := json.Unmarshal(msg, target.Addr().Interface()); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return &ValidationError{Expected: f.expected, Got: jsonKind(msg)}
		}
		return err
	}
	return nil
}

func decodeList(f *field, msg json.RawMessage, target reflect.Value, o *options) error {
	if got := jsonKind(msg); got != "array" {
		return &ValidationError{Expected: f.expected, Got: got}
	}
	var items []json.RawMessage
	if err := json.Unmarshal(msg, &items); err != nil {
		return err
	}
	list := reflect.MakeSlice(target.Type(), len(items), len(items))
	for i, item := range items {
		if err := decodeField(f.elem, item, list.Index(i), o); err != nil {
			return nest(err, "", fmt.Sprintf("[%d]", i))
		}
	}
	target.Set(list)
	return nil
}

// nullable.Nullable[T] is map[bool]T: key true holds a value, key false
// marks an explicit null, an empty map is unspecified.
func setNull(fv reflect.Value) {
	m := reflect.MakeMapWithSize(fv.Type(), 1)
	m.SetMapIndex(reflect.ValueOf(false), reflect.Zero(fv.Type().Elem()))
	fv.Set(m)
}

func setValue(fv, v reflect.Value) {
	m := reflect.MakeMapWithSize(fv.Type(), 1)
	m.SetMapIndex(reflect.ValueOf(true), v)
	fv.Set(m)
}

// jsonKind names the JSON kind of an encoded value.
func jsonKind(data []byte) string {
	data = bytes.TrimLeft(data, " \t\r\n")
	if len(data) == 0 {
		return "nothing"
	}
	switch data[0] {
	case '{':
		return "object"
	case '[':
		return "array"
	case '"':
		return "string"
	case 't', 'f':
		return "boolean"
	case 'n':
		return "null"
	default:
		return "number"
	}
}
