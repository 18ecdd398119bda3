package codec

import (
	"encoding/json"
	"reflect"
)

// expandable is implemented by Expandable[T]; the codec dispatches on it.
type expandable interface {
	isSet() bool
	encodeExpandable(lossless bool) ([]byte, error)
	validateExpanded() error
	checkRaw(v any) error
}

// expandableDecoder is implemented by *Expandable[T].
type expandableDecoder interface {
	decodeExpandable(msg json.RawMessage, o *options) error
}

// Expandable is a reference to a related object. The API sends the related
// object's ID, or the whole object when the request named the field in its
// expand parameter. The zero value is unset and is not emitted.
type Expandable[T any] struct {
	id     string
	hasID  bool
	object *T
}

// ExpandableID references a related object by ID. An empty id is still a
// reference and is emitted as "".
func ExpandableID[T any](id string) Expandable[T] {
	return Expandable[T]{id: id, hasID: true}
}

// ExpandedObject wraps an expanded related object.
func ExpandedObject[T any](v *T) Expandable[T] {
	return Expandable[T]{object: v}
}

// ID returns the reference when the API sent the ID form.
func (e Expandable[T]) ID() (string, bool) {
	return e.id, e.hasID && e.object == nil
}

// Object returns the related object when the API sent it expanded.
func (e Expandable[T]) Object() (*T, bool) {
	return e.object, e.object != nil
}

// IsExpanded reports whether the related object was sent in full.
func (e Expandable[T]) IsExpanded() bool {
	return e.object != nil
}

func (e Expandable[T]) MarshalJSON() ([]byte, error) {
	if !e.isSet() {
		return jsonNull, nil
	}
	return e.encodeExpandable(false)
}

func (e *Expandable[T]) UnmarshalJSON(data []byte) error {
	if jsonKind(data) == "null" {
		*e = Expandable[T]{}
		return nil
	}
	return e.decodeExpandable(data, &options{})
}

func (e Expandable[T]) isSet() bool {
	return e.hasID || e.object != nil
}

func (e *Expandable[T]) decodeExpandable(msg json.RawMessage, o *options) error {
	switch got := jsonKind(msg); got {
	case "string":
		var id string
		if err := json.Unmarshal(msg, &id); err != nil {
			return err
		}
		*e = Expandable[T]{id: id, hasID: true}
	case "object":
		obj := new(T)
		if err := decodeModel(msg, reflect.ValueOf(obj).Elem(), o); err != nil {
			return err
		}
		*e = Expandable[T]{object: obj}
	default:
		return &ValidationError{Expected: "id string or object", Got: got}
	}
	return nil
}

func (e Expandable[T]) encodeExpandable(lossless bool) ([]byte, error) {
	if e.object != nil {
		return encodeModel(reflect.ValueOf(e.object).Elem(), lossless)
	}
	return json.Marshal(e.id)
}

func (e Expandable[T]) validateExpanded() error {
	if e.object == nil {
		return nil
	}
	return Validate(e.object)
}

func (e Expandable[T]) checkRaw(v any) error {
	switch x := v.(type) {
	case string:
		return nil
	case map[string]any:
		return ValidateRaw[T](x)
	default:
		return &ValidationError{Expected: "id string or object", Got: rawKind(v)}
	}
}
