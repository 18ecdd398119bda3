package codec

import "slices"

// Enum is implemented by controlled-vocabulary string types. Values outside
// the known set still decode and encode unchanged; only Validate and
// ValidateRaw reject them.
type Enum interface {
	IsKnown() bool
	Known() []string
}

// EnumSet is the closed list of members backing an Enum implementation.
type EnumSet[E ~string] struct {
	members []E
	index   map[E]struct{}
}

// NewEnumSet returns a set holding members in declaration order.
func NewEnumSet[E ~string](members ...E) EnumSet[E] {
	index := make(map[E]struct{}, len(members))
	for _, m := range members {
		index[m] = struct{}{}
	}
	return EnumSet[E]{members: members, index: index}
}

// Contains reports whether v is a known member.
func (s EnumSet[E]) Contains(v E) bool {
	_, ok := s.index[v]
	return ok
}

// Members returns the known members in declaration order.
func (s EnumSet[E]) Members() []E {
	return slices.Clone(s.members)
}

// Strings returns the known members as wire strings.
func (s EnumSet[E]) Strings() []string {
	out := make([]string, len(s.members))
	for i, m := range s.members {
		out[i] = string(m)
	}
	return out
}
