package codec

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Validate checks a model instance against its declared field types and
// returns the first violation as *ValidationError. Required fields must be
// set, enum values must be known members, and nested models are checked
// recursively. Lists are checked element by element, but models inside a
// list are not descended into.
func Validate(v any) error {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	s, err := schemaFor(rv.Type())
	if err != nil {
		return err
	}
	return validateModel(s, rv)
}

func validateModel(s *schema, rv reflect.Value) error {
	for i := range s.fields {
		f := &s.fields[i]
		if err := validateField(f, rv.FieldByIndex(f.index)); err != nil {
			return nest(err, s.name, f.name)
		}
	}
	return nil
}

func validateField(f *field, fv reflect.Value) error {
	if !f.required && !isSet(f, fv) {
		return nil
	}
	switch {
	case f.nullable:
		t := fv.Interface().(tristate)
		if !t.IsSpecified() {
			if f.required {
				return &ValidationError{Expected: "required"}
			}
			return nil
		}
		if t.IsNull() {
			return nil
		}
		fv = fv.MapIndex(reflect.ValueOf(true))
	case f.pointer:
		if fv.IsNil() {
			if f.required {
				return &ValidationError{Expected: "required"}
			}
			return nil
		}
		fv = fv.Elem()
	}

	switch f.kind {
	case kindEnum:
		return checkEnum(fv)
	case kindModel:
		s, err := schemaFor(fv.Type())
		if err != nil {
			return err
		}
		return validateModel(s, fv)
	case kindExpandable:
		return fv.Interface().(expandable).validateExpanded()
	case kindList:
		for i := range fv.Len() {
			if err := validateElement(f.elem, fv.Index(i)); err != nil {
				return nest(err, "", fmt.Sprintf("[%d]", i))
			}
		}
	}
	return nil
}

func validateElement(f *field, ev reflect.Value) error {
	switch {
	case f.pointer:
		if ev.IsNil() {
			return &ValidationError{Expected: f.expected, Got: "null"}
		}
		ev = ev.Elem()
	case f.nullable:
		t := ev.Interface().(tristate)
		if !t.IsSpecified() || t.IsNull() {
			return &ValidationError{Expected: f.expected, Got: "null"}
		}
		ev = ev.MapIndex(reflect.ValueOf(true))
	}
	if f.kind == kindEnum {
		return checkEnum(ev)
	}
	return nil
}

func checkEnum(v reflect.Value) error {
	e := v.Interface().(Enum)
	if e.IsKnown() {
		return nil
	}
	return &ValidationError{Expected: oneOf(e.Known()), Got: strconv.Quote(v.String())}
}

// oneOf renders the member list of an enum, shortened for long vocabularies
// like currency codes.
func oneOf(members []string) string {
	const limit = 8
	if len(members) > limit {
		return fmt.Sprintf("one of %s, ... (%d members)", strings.Join(members[:limit], ", "), len(members))
	}
	return "one of " + strings.Join(members, ", ")
}

// ValidateRaw checks a generically decoded JSON object against the declared
// shape of T without building a T. It reports the first missing required
// field or the first present field whose JSON kind does not match. Enum
// fields must hold known members and nested objects are checked recursively.
func ValidateRaw[T any](raw map[string]any) error {
	s, err := schemaFor(reflect.TypeFor[T]())
	if err != nil {
		return err
	}
	return validateRaw(s, raw)
}

func validateRaw(s *schema, raw map[string]any) error {
	for i := range s.fields {
		f := &s.fields[i]
		v, ok := raw[f.name]
		if !ok {
			if f.required {
				return &ValidationError{Model: s.name, Field: f.name, Expected: "required"}
			}
			continue
		}
		if err := checkRaw(f, v); err != nil {
			return nest(err, s.name, f.name)
		}
	}
	return nil
}

func checkRaw(f *field, v any) error {
	if v == nil {
		if !acceptsNull(f) {
			return &ValidationError{Expected: f.expected, Got: "null"}
		}
		return nil
	}

	got := rawKind(v)
	mismatch := &ValidationError{Expected: f.expected, Got: got}
	switch f.kind {
	case kindRaw:
		return nil
	case kindExpandable:
		return reflect.New(f.value).Interface().(expandable).checkRaw(v)
	case kindTime:
		str, ok := v.(string)
		if !ok {
			return mismatch
		}
		if _, err := ParseTime(str); err != nil {
			return &ValidationError{Expected: f.expected, Got: strconv.Quote(str)}
		}
	case kindModel:
		obj, ok := v.(map[string]any)
		if !ok {
			return mismatch
		}
		s, err := schemaFor(f.value)
		if err != nil {
			return err
		}
		return validateRaw(s, obj)
	case kindList:
		if _, ok := v.([]any); !ok {
			return mismatch
		}
	case kindMap:
		if _, ok := v.(map[string]any); !ok {
			return mismatch
		}
	case kindEnum:
		str, ok := v.(string)
		if !ok {
			return mismatch
		}
		e := reflect.New(f.value).Elem()
		e.SetString(str)
		return checkEnum(e)
	default:
		if got != f.expected {
			return mismatch
		}
	}
	return nil
}

// rawKind names the JSON kind of a generically decoded value.
func rawKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64, float32, int, int64, int32, json.Number:
		return "number"
	default:
		return fmt.Sprintf("%T", v)
	}
}
