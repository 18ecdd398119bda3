package accounting

import (
	"context"
	"errors"
	"iter"
	"net/http"
	"net/url"
	"slices"

	"github.com/florianilch/merge-accounting/internal/requestconfig"
)

// readService implements the list and retrieve endpoints every common model
// has. P is the endpoint's list parameter type.
type readService[T any, P requestconfig.Querier] struct {
	Options []RequestOption
	path    string
}

// List returns one page of objects.
func (r *readService[T, P]) List(ctx context.Context, params P, opts ...RequestOption) (res *Paginated[T], err error) {
	opts = slices.Concat(r.Options, opts)
	err = requestconfig.ExecuteNewRequest(ctx, http.MethodGet, r.path, params, &res, opts...)
	return
}

// ListAutoPaging iterates over every object, following next cursors from the
// page params.Cursor points at. Iteration stops at the first error, which is
// yielded with a zero T.
func (r *readService[T, P]) ListAutoPaging(ctx context.Context, params P, opts ...RequestOption) iter.Seq2[T, error] {
	return autoPaging[T](ctx, r.path, params, slices.Concat(r.Options, opts))
}

func autoPaging[T any](ctx context.Context, path string, params requestconfig.Querier, opts []RequestOption) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		var zero T
		q, err := params.URLQuery()
		if err != nil {
			yield(zero, err)
			return
		}
		if q == nil {
			q = url.Values{}
		}
		for {
			var page *Paginated[T]
			if err := requestconfig.ExecuteNewRequest(ctx, http.MethodGet, path, q, &page, opts...); err != nil {
				yield(zero, err)
				return
			}
			if page == nil {
				return
			}
			for _, item := range page.Results {
				if !yield(item, nil) {
					return
				}
			}
			next, ok := page.NextCursor()
			if !ok {
				return
			}
			q.Set("cursor", next)
		}
	}
}

// Get returns a single object.
func (r *readService[T, P]) Get(ctx context.Context, id string, params GetParams, opts ...RequestOption) (res *T, err error) {
	opts = slices.Concat(r.Options, opts)
	if id == "" {
		err = errors.New("missing required id parameter")
		return
	}
	path := r.path + "/" + url.PathEscape(id)
	err = requestconfig.ExecuteNewRequest(ctx, http.MethodGet, path, params, &res, opts...)
	return
}
