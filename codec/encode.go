package codec

import (
	"encoding/json"
	"fmt"
	"reflect"
	"time"
)

var jsonNull = json.RawMessage("null")

// Marshal encodes a model as a JSON object. Required fields are always
// emitted; optional fields are emitted only when set, an explicit null
// included. Extras are not emitted.
func Marshal(v any) ([]byte, error) {
	return marshal(v, false)
}

// MarshalLossless is Marshal with the extras captured on decode merged back
// in, at every nesting level. Declared fields win over extras with the same
// key.
func MarshalLossless(v any) ([]byte, error) {
	return marshal(v, true)
}

func marshal(v any, lossless bool) ([]byte, error) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return jsonNull, nil
		}
		rv = rv.Elem()
	}
	return encodeModel(rv, lossless)
}

func encodeModel(rv reflect.Value, lossless bool) ([]byte, error) {
	s, err := schemaFor(rv.Type())
	if err != nil {
		return nil, err
	}

	out := make(map[string]json.RawMessage, len(s.fields))
	x := rv.FieldByIndex(s.extras).Interface().(Extras)
	if lossless {
		for k, v := range x.extra {
			out[k] = v
		}
	}
	for i := range s.fields {
		f := &s.fields[i]
		fv := rv.FieldByIndex(f.index)
		if !f.required && !isSet(f, fv) {
			continue
		}
		b, err := encodeField(f, fv, lossless)
		if err != nil {
			return nil, fmt.Errorf("codec: encoding %s.%s: %w", s.name, f.name, err)
		}
		if wire, ok := x.times[f.name]; ok && f.kind == kindTime {
			if t, ok := timeValue(f, fv); ok && sameInstant(t, wire) {
				b, _ = json.Marshal(wire)
			}
		}
		out[f.name] = b
	}
	return json.Marshal(out)
}

func isSet(f *field, fv reflect.Value) bool {
	switch {
	case f.nullable:
		return fv.Interface().(tristate).IsSpecified()
	case f.pointer:
		return !fv.IsNil()
	case f.kind == kindExpandable:
		return fv.Interface().(expandable).isSet()
	case f.kind == kindList, f.kind == kindMap, f.kind == kindRaw:
		return !fv.IsNil()
	default:
		return true
	}
}

// timeValue unwraps a set date-time field.
func timeValue(f *field, fv reflect.Value) (time.Time, bool) {
	switch {
	case f.nullable:
		t := fv.Interface().(tristate)
		if !t.IsSpecified() || t.IsNull() {
			return time.Time{}, false
		}
		fv = fv.MapIndex(reflect.ValueOf(true))
	case f.pointer:
		if fv.IsNil() {
			return time.Time{}, false
		}
		fv = fv.Elem()
	}
	t, ok := fv.Interface().(time.Time)
	return t, ok
}

func encodeField(f *field, fv reflect.Value, lossless bool) ([]byte, error) {
	switch {
	case f.nullable:
		t := fv.Interface().(tristate)
		if !t.IsSpecified() || t.IsNull() {
			return jsonNull, nil
		}
		fv = fv.MapIndex(reflect.ValueOf(true))
	case f.pointer:
		if fv.IsNil() {
			return jsonNull, nil
		}
		fv = fv.Elem()
	}
	return encodeValue(f, fv, lossless)
}

func encodeValue(f *field, fv reflect.Value, lossless bool) ([]byte, error) {
	switch f.kind {
	case kindTime:
		return json.Marshal(FormatTime(fv.Interface().(time.Time)))
	case kindModel:
		return encodeModel(fv, lossless)
	case kindExpandable:
		return fv.Interface().(expandable).encodeExpandable(lossless)
	case kindList:
		if fv.IsNil() {
			return jsonNull, nil
		}
		items := make([]json.RawMessage, fv.Len())
		for i := range items {
			b, err := encodeField(f.elem, fv.Index(i), lossless)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			items[i] = b
		}
		return json.Marshal(items)
	}
	return json.Marshal(fv.Interface())
}
