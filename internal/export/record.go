// Package export copies common model objects into a database or file sink.
// Each object is stored as its lossless JSON, so fields the client does not
// declare survive the copy.
package export

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	accounting "github.com/florianilch/merge-accounting"
	"github.com/florianilch/merge-accounting/codec"
)

// Record is one stored object.
type Record struct {
	Model      string
	ID         string
	RemoteID   string
	ModifiedAt *time.Time
	// Deleted marks objects removed in the third-party platform.
	Deleted bool
	Data    json.RawMessage
}

// NewRecord captures obj, extras included.
func NewRecord(model string, obj accounting.Object) (Record, error) {
	h := obj.Header()
	id := h.GetID()
	if id == "" {
		return Record{}, fmt.Errorf("%s without id", model)
	}
	data, err := codec.MarshalLossless(obj)
	if err != nil {
		return Record{}, fmt.Errorf("encoding %s %s: %w", model, id, err)
	}
	remoteID, _ := h.RemoteID.Get()
	return Record{
		Model:      model,
		ID:         id,
		RemoteID:   remoteID,
		ModifiedAt: h.ModifiedAt,
		Deleted:    h.IsRemoteDeleted(),
		Data:       data,
	}, nil
}

// Sink stores records. Writing a record whose model and ID are already
// stored replaces it. Sinks are safe for concurrent use.
type Sink interface {
	Write(ctx context.Context, records []Record) error
	Close() error
}

// Open opens the sink named by target:
//
//	sqlite:<path>             SQLite database file
//	postgres://... or postgresql://...   PostgreSQL connection URL
//	jsonl:<dir>               one JSON lines file per model in dir
func Open(ctx context.Context, target string) (Sink, error) {
	scheme, rest, ok := strings.Cut(target, ":")
	if !ok || rest == "" {
		return nil, fmt.Errorf("invalid sink %q (expected sqlite:<path>, postgres://<dsn> or jsonl:<dir>)", target)
	}
	switch scheme {
	case "sqlite":
		return NewSQLiteSink(ctx, rest)
	case "postgres", "postgresql":
		return NewPostgresSink(ctx, target)
	case "jsonl":
		return NewJSONLSink(rest)
	default:
		return nil, fmt.Errorf("unknown sink type %q", scheme)
	}
}

func formatTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return codec.FormatTime(*t)
}
