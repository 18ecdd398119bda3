package codec

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
)

// DecodeOneOf decodes a JSON object into the first candidate whose declared
// shape it matches. Candidates are non-nil pointers to models and are tried
// in order: each is checked with the same rules as ValidateRaw and, when the
// object fits, decoded. It returns the candidate that was filled in. When no
// candidate matches, the error joins every candidate's rejection.
func DecodeOneOf(data []byte, candidates ...any) (any, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil || raw == nil {
		return nil, &ValidationError{Expected: "object", Got: jsonKind(data)}
	}

	errs := make([]error, 0, len(candidates))
	for _, c := range candidates {
		rv := reflect.ValueOf(c)
		if rv.Kind() != reflect.Pointer || rv.IsNil() {
			return nil, fmt.Errorf("codec: DecodeOneOf candidate %T is not a non-nil pointer", c)
		}
		s, err := schemaFor(rv.Elem().Type())
		if err != nil {
			return nil, err
		}
		if err := validateRaw(s, raw); err != nil {
			errs = append(errs, err)
			continue
		}
		if err := decodeModel(data, rv.Elem(), &options{}); err != nil {
			errs = append(errs, err)
			continue
		}
		return c, nil
	}
	return nil, fmt.Errorf("codec: no candidate matched: %w", errors.Join(errs...))
}
