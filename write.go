package accounting

import (
	"github.com/florianilch/merge-accounting/codec"
	"github.com/florianilch/merge-accounting/internal/requestconfig"
)

// WriteParams are the query parameters of create and update endpoints.
type WriteParams struct {
	// IsDebugMode makes the response carry DebugModeLog entries.
	IsDebugMode bool
	// RunAsync queues the write instead of waiting for the platform.
	RunAsync bool
}

func (p WriteParams) options() []RequestOption {
	var opts []RequestOption
	if p.IsDebugMode {
		opts = append(opts, requestconfig.WithQuery("is_debug_mode", "true"))
	}
	if p.RunAsync {
		opts = append(opts, requestconfig.WithQuery("run_async", "true"))
	}
	return opts
}

// writeRequest wraps a write body the way Merge expects it.
type writeRequest[T any] struct {
	codec.Extras
	Model *T `json:"model"`
}

func (r writeRequest[T]) MarshalJSON() ([]byte, error) { return codec.Marshal(r) }
