package codec

import (
	"encoding/json"
	"fmt"
	"reflect"
	"slices"
	"strings"
	"sync"
	"time"
)

// kind is the declared semantic type of a model field.
type kind uint8

const (
	kindScalar kind = iota
	kindEnum
	kindTime
	kindModel
	kindList
	kindMap
	kindRaw
	kindExpandable
)

// field describes one declared model field. The same shape describes list
// elements, in which case name and index are empty.
type field struct {
	name     string
	index    []int
	required bool

	kind     kind
	nullable bool // nullable.Nullable[T]; value is T
	pointer  bool // *T; value is T
	value    reflect.Type
	elem     *field
	expected string
}

type schema struct {
	name   string
	fields []field
	known  map[string]struct{}
	extras []int
}

// tristate is satisfied by nullable.Nullable[T].
type tristate interface {
	IsSpecified() bool
	IsNull() bool
}

var (
	extrasType     = reflect.TypeFor[Extras]()
	timeType       = reflect.TypeFor[time.Time]()
	rawMessageType = reflect.TypeFor[json.RawMessage]()
	tristateType   = reflect.TypeFor[tristate]()
	enumType       = reflect.TypeFor[Enum]()
	expandableType = reflect.TypeFor[expandable]()
)

var schemas sync.Map // reflect.Type -> *schema

func schemaFor(t reflect.Type) (*schema, error) {
	if s, ok := schemas.Load(t); ok {
		return s.(*schema), nil
	}
	s, err := buildSchema(t)
	if err != nil {
		return nil, err
	}
	actual, _ := schemas.LoadOrStore(t, s)
	return actual.(*schema), nil
}

func buildSchema(t reflect.Type) (*schema, error) {
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("codec: %s is not a struct", t)
	}
	s := &schema{name: modelName(t), known: map[string]struct{}{}}
	if err := s.collect(t, nil); err != nil {
		return nil, err
	}
	if s.extras == nil {
		return nil, fmt.Errorf("codec: %s does not embed codec.Extras", t)
	}
	return s, nil
}

func (s *schema) collect(t reflect.Type, parent []int) error {
	for i := range t.NumField() {
		sf := t.Field(i)
		idx := append(slices.Clone(parent), i)

		if sf.Anonymous && sf.Type == extrasType {
			s.extras = idx
			continue
		}
		tag := sf.Tag.Get("json")
		if tag == "-" {
			continue
		}
		name, opts, _ := strings.Cut(tag, ",")
		if sf.Anonymous && name == "" && sf.Type.Kind() == reflect.Struct {
			// Embedded header structs are flattened like encoding/json does.
			if err := s.collect(sf.Type, idx); err != nil {
				return err
			}
			continue
		}
		if !sf.IsExported() {
			continue
		}
		if name == "" {
			name = sf.Name
		}

		f, err := describe(sf.Type)
		if err != nil {
			return fmt.Errorf("codec: %s.%s: %w", s.name, sf.Name, err)
		}
		f.name = name
		f.index = idx
		f.required = !hasOption(opts, "omitempty")
		if !f.required && !f.tracksPresence() {
			return fmt.Errorf("codec: %s.%s: optional %s must be a nullable.Nullable or a pointer", s.name, sf.Name, f.value)
		}

		if _, dup := s.known[name]; dup {
			return fmt.Errorf("codec: %s declares %q twice", s.name, name)
		}
		s.known[name] = struct{}{}
		s.fields = append(s.fields, f)
	}
	return nil
}

func describe(t reflect.Type) (field, error) {
	var f field
	switch {
	case isNullable(t):
		f.nullable = true
		t = t.Elem()
	case t.Kind() == reflect.Pointer:
		f.pointer = true
		t = t.Elem()
	}
	f.value = t

	switch {
	case t.Implements(expandableType):
		f.kind, f.expected = kindExpandable, "id string or object"
	case t == timeType:
		f.kind, f.expected = kindTime, "date-time string"
	case t == rawMessageType || t.Kind() == reflect.Interface:
		f.kind, f.expected = kindRaw, "any JSON value"
	case isModel(t):
		f.kind, f.expected = kindModel, "object"
	case t.Implements(enumType):
		if t.Kind() != reflect.String {
			return f, fmt.Errorf("enum %s must have a string underlying type", t)
		}
		f.kind, f.expected = kindEnum, "string"
	case t.Kind() == reflect.Slice:
		elem, err := describe(t.Elem())
		if err != nil {
			return f, err
		}
		f.kind, f.expected, f.elem = kindList, "array", &elem
	case t.Kind() == reflect.Map:
		if t.Key().Kind() != reflect.String {
			return f, fmt.Errorf("map %s must have string keys", t)
		}
		f.kind, f.expected = kindMap, "object"
	default:
		expected, ok := scalarExpectation(t.Kind())
		if !ok {
			return f, fmt.Errorf("unsupported type %s", t)
		}
		f.kind, f.expected = kindScalar, expected
	}
	return f, nil
}

// tracksPresence reports whether an unset value can be told apart from a
// sent zero value.
func (f *field) tracksPresence() bool {
	if f.nullable || f.pointer {
		return true
	}
	switch f.kind {
	case kindList, kindMap, kindRaw, kindExpandable:
		return true
	}
	return false
}

// acceptsNull reports whether null is a valid wire value for f. Fields that
// track presence read null as unset; only plain required values reject it.
func acceptsNull(f *field) bool {
	return !f.required || f.tracksPresence()
}

func scalarExpectation(k reflect.Kind) (string, bool) {
	switch k {
	case reflect.String:
		return "string", true
	case reflect.Bool:
		return "boolean", true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "number", true
	}
	return "", false
}

func isNullable(t reflect.Type) bool {
	return t.Kind() == reflect.Map && t.Key().Kind() == reflect.Bool && t.Implements(tristateType)
}

func isModel(t reflect.Type) bool {
	if t.Kind() != reflect.Struct {
		return false
	}
	for i := range t.NumField() {
		if sf := t.Field(i); sf.Anonymous && sf.Type == extrasType {
			return true
		}
	}
	return false
}

// modelName strips the package-qualified type arguments from generic names.
func modelName(t reflect.Type) string {
	name := t.Name()
	if i := strings.IndexByte(name, '['); i >= 0 {
		name = name[:i]
	}
	return name
}

func hasOption(opts, want string) bool {
	for opts != "" {
		var o string
		o, opts, _ = strings.Cut(opts, ",")
		if o == want {
			return true
		}
	}
	return false
}
