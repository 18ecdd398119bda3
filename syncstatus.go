package accounting

import (
	"context"
	"iter"
	"net/http"
	"net/url"
	"slices"
	"time"

	"github.com/oapi-codegen/nullable"

	"github.com/florianilch/merge-accounting/codec"
	"github.com/florianilch/merge-accounting/internal/requestconfig"
)

// SyncStatusService reports how far Merge got syncing each common model.
type SyncStatusService struct {
	Options []RequestOption
}

// NewSyncStatusService applies opts to each request, after the client's.
func NewSyncStatusService(opts ...RequestOption) SyncStatusService {
	return SyncStatusService{Options: opts}
}

// SyncStatusListParams page through sync statuses.
type SyncStatusListParams struct {
	Cursor   string
	PageSize int `validate:"omitempty,min=1,max=100"`
}

func (p SyncStatusListParams) URLQuery() (url.Values, error) {
	if err := validateParams(p); err != nil {
		return nil, err
	}
	var q query
	q.add("cursor", p.Cursor)
	q.add("page_size", p.PageSize)
	return q.values, q.err
}

// List returns one page of sync statuses.
func (r *SyncStatusService) List(ctx context.Context, params SyncStatusListParams, opts ...RequestOption) (res *Paginated[SyncStatus], err error) {
	opts = slices.Concat(r.Options, opts)
	err = requestconfig.ExecuteNewRequest(ctx, http.MethodGet, "sync-status", params, &res, opts...)
	return
}

// ListAutoPaging iterates over the sync status of every model.
func (r *SyncStatusService) ListAutoPaging(ctx context.Context, params SyncStatusListParams, opts ...RequestOption) iter.Seq2[SyncStatus, error] {
	return autoPaging[SyncStatus](ctx, "sync-status", params, slices.Concat(r.Options, opts))
}

// SyncStatus is the sync state of one common model.
type SyncStatus struct {
	codec.Extras
	ModelName      string                    `json:"model_name"`
	ModelID        string                    `json:"model_id"`
	LastSyncStart  *time.Time                `json:"last_sync_start,omitempty"`
	NextSyncStart  *time.Time                `json:"next_sync_start,omitempty"`
	LastSyncResult nullable.Nullable[string] `json:"last_sync_result,omitempty"`
	Status         SyncStatusStatusEnum      `json:"status"`
	IsInitialSync  bool                      `json:"is_initial_sync"`
}

func (r SyncStatus) MarshalJSON() ([]byte, error)     { return codec.Marshal(r) }
func (r *SyncStatus) UnmarshalJSON(data []byte) error { return codec.Unmarshal(data, r) }
