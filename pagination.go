package accounting

import (
	"github.com/oapi-codegen/nullable"

	"github.com/florianilch/merge-accounting/codec"
)

// Paginated is one page of a list endpoint. Next and Previous are opaque
// cursors for ListParams.Cursor.
type Paginated[T any] struct {
	codec.Extras
	Next     nullable.Nullable[string] `json:"next,omitempty"`
	Previous nullable.Nullable[string] `json:"previous,omitempty"`
	Results  []T                       `json:"results,omitempty"`
}

func (r Paginated[T]) MarshalJSON() ([]byte, error)     { return codec.Marshal(r) }
func (r *Paginated[T]) UnmarshalJSON(data []byte) error { return codec.Unmarshal(data, r) }

// NextCursor returns the cursor of the following page, if there is one.
func (r *Paginated[T]) NextCursor() (string, bool) {
	next, err := r.Next.Get()
	if err != nil || next == "" {
		return "", false
	}
	return next, true
}
