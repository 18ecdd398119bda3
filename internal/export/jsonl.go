package export

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// JSONLSink appends records to <dir>/<model>.jsonl. Replaced records are
// appended again; readers keep the last line per id.
type JSONLSink struct {
	dir   string
	mu    sync.Mutex
	files map[string]*os.File
}

type jsonlRecord struct {
	Model      string          `json:"model"`
	ID         string          `json:"id"`
	RemoteID   string          `json:"remote_id,omitempty"`
	ModifiedAt any             `json:"modified_at,omitempty"`
	Deleted    bool            `json:"deleted,omitempty"`
	Data       json.RawMessage `json:"data"`
}

// NewJSONLSink creates dir if needed.
func NewJSONLSink(dir string) (*JSONLSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating export directory: %w", err)
	}
	return &JSONLSink{dir: dir, files: make(map[string]*os.File)}, nil
}

func (s *JSONLSink) Write(ctx context.Context, records []Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range records {
		if err := ctx.Err(); err != nil {
			return err
		}
		f, err := s.file(r.Model)
		if err != nil {
			return err
		}
		line, err := json.Marshal(jsonlRecord{
			Model:      r.Model,
			ID:         r.ID,
			RemoteID:   r.RemoteID,
			ModifiedAt: formatTime(r.ModifiedAt),
			Deleted:    r.Deleted,
			Data:       r.Data,
		})
		if err != nil {
			return fmt.Errorf("encoding %s %s: %w", r.Model, r.ID, err)
		}
		if _, err := f.Write(append(line, '\n')); err != nil {
			return fmt.Errorf("writing %s: %w", f.Name(), err)
		}
	}
	return nil
}

func (s *JSONLSink) file(model string) (*os.File, error) {
	if f, ok := s.files[model]; ok {
		return f, nil
	}
	name := strings.ToLower(model) + ".jsonl"
	f, err := os.OpenFile(filepath.Join(s.dir, name), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", name, err)
	}
	s.files[model] = f
	return f, nil
}

func (s *JSONLSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var errs []error
	for model, f := range s.files {
		errs = append(errs, f.Close())
		delete(s.files, model)
	}
	return errors.Join(errs...)
}
