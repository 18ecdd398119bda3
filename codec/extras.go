package codec

import (
	"encoding/json"
	"maps"
	"slices"
)

// Extras is embedded in every model to keep the JSON keys the model does not
// declare. It is filled by Unmarshal and read by MarshalLossless; Marshal
// ignores it.
//
// Extras deliberately implements neither json.Marshaler nor
// json.Unmarshaler, since those methods would be promoted to the model.
type Extras struct {
	extra map[string]json.RawMessage
	// times holds the wire text of decoded date-time fields by key.
	times map[string]string
}

// Extra returns the raw JSON captured for an undeclared key.
func (x Extras) Extra(key string) (json.RawMessage, bool) {
	v, ok := x.extra[key]
	return v, ok
}

// ExtraKeys returns the captured undeclared keys in sorted order.
func (x Extras) ExtraKeys() []string {
	return slices.Sorted(maps.Keys(x.extra))
}

// ExtraFields returns a copy of every captured undeclared key.
func (x Extras) ExtraFields() map[string]json.RawMessage {
	if len(x.extra) == 0 {
		return nil
	}
	return maps.Clone(x.extra)
}

// SetExtra records an undeclared key, e.g. to send a field this client does
// not model yet. The value must be valid JSON; it is emitted by
// MarshalLossless only.
func (x *Extras) SetExtra(key string, value json.RawMessage) {
	if x.extra == nil {
		x.extra = map[string]json.RawMessage{}
	}
	x.extra[key] = value
}

func newExtras(raw map[string]json.RawMessage, known map[string]struct{}) Extras {
	var extra map[string]json.RawMessage
	for k, v := range raw {
		if _, ok := known[k]; ok {
			continue
		}
		if extra == nil {
			extra = map[string]json.RawMessage{}
		}
		extra[k] = v
	}
	return Extras{extra: extra}
}
