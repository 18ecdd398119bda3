package export

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"maps"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	accounting "github.com/florianilch/merge-accounting"
)

type source func(ctx context.Context, c *accounting.Client, p accounting.ListParams) iter.Seq2[accounting.Object, error]

var sources = map[string]source{
	"Account": func(ctx context.Context, c *accounting.Client, p accounting.ListParams) iter.Seq2[accounting.Object, error] {
		return objects(c.Accounts.ListAutoPaging(ctx, p))
	},
	"CompanyInfo": func(ctx context.Context, c *accounting.Client, p accounting.ListParams) iter.Seq2[accounting.Object, error] {
		return objects(c.CompanyInfo.ListAutoPaging(ctx, p))
	},
	"Contact": func(ctx context.Context, c *accounting.Client, p accounting.ListParams) iter.Seq2[accounting.Object, error] {
		return objects(c.Contacts.ListAutoPaging(ctx, accounting.ContactListParams{ListParams: p}))
	},
	"Employee": func(ctx context.Context, c *accounting.Client, p accounting.ListParams) iter.Seq2[accounting.Object, error] {
		return objects(c.Employees.ListAutoPaging(ctx, p))
	},
	"Invoice": func(ctx context.Context, c *accounting.Client, p accounting.ListParams) iter.Seq2[accounting.Object, error] {
		return objects(c.Invoices.ListAutoPaging(ctx, accounting.InvoiceListParams{ListParams: p}))
	},
	"Payment": func(ctx context.Context, c *accounting.Client, p accounting.ListParams) iter.Seq2[accounting.Object, error] {
		return objects(c.Payments.ListAutoPaging(ctx, accounting.PaymentListParams{ListParams: p}))
	},
	"PaymentMethod": func(ctx context.Context, c *accounting.Client, p accounting.ListParams) iter.Seq2[accounting.Object, error] {
		return objects(c.PaymentMethods.ListAutoPaging(ctx, p))
	},
	"TrackingCategory": func(ctx context.Context, c *accounting.Client, p accounting.ListParams) iter.Seq2[accounting.Object, error] {
		return objects(c.TrackingCategories.ListAutoPaging(ctx, p))
	},
}

func objects[T accounting.Object](seq iter.Seq2[T, error]) iter.Seq2[accounting.Object, error] {
	return func(yield func(accounting.Object, error) bool) {
		for v, err := range seq {
			if err != nil {
				yield(nil, err)
				return
			}
			if !yield(v, nil) {
				return
			}
		}
	}
}

// Models lists the models Run can export, sorted.
func Models() []string {
	return slices.Sorted(maps.Keys(sources))
}

// Exporter pages through common models and writes them to a sink.
type Exporter struct {
	Client *accounting.Client
	Sink   Sink
	// Concurrency is how many models are exported at once. Default 4.
	Concurrency int
	// PageSize is the list page size. Default 100.
	PageSize int
	// BatchSize is how many records go to the sink per write. Default 100.
	BatchSize int
	// ModifiedAfter limits the export to objects changed since then.
	ModifiedAfter *time.Time
	// IncludeDeleted also exports objects deleted in the third-party
	// platform.
	IncludeDeleted bool
}

// Result counts what was exported for one model.
type Result struct {
	Model   string
	Records int
}

// Run exports the given models, or every model when none are given. The first
// failure cancels the remaining exports.
func (e *Exporter) Run(ctx context.Context, models ...string) ([]Result, error) {
	if len(models) == 0 {
		models = Models()
	}
	for _, m := range models {
		if _, ok := sources[m]; !ok {
			return nil, fmt.Errorf("unknown model %q (expected one of %v)", m, Models())
		}
	}

	params := accounting.ListParams{
		PageSize:           withDefault(e.PageSize, 100),
		ModifiedAfter:      e.ModifiedAfter,
		IncludeDeletedData: e.IncludeDeleted,
	}

	results := make([]Result, len(models))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(withDefault(e.Concurrency, 4))
	for i, model := range models {
		g.Go(func() error {
			n, err := e.exportModel(gCtx, model, params)
			results[i] = Result{Model: model, Records: n}
			if err != nil {
				return fmt.Errorf("exporting %s: %w", model, err)
			}
			return nil
		})
	}
	err := g.Wait()
	return results, err
}

func (e *Exporter) exportModel(ctx context.Context, model string, params accounting.ListParams) (int, error) {
	start := time.Now()
	size := withDefault(e.BatchSize, 100)
	batch := make([]Record, 0, size)
	written := 0

	flush := func() error {
		if err := e.Sink.Write(ctx, batch); err != nil {
			return err
		}
		written += len(batch)
		batch = batch[:0]
		return nil
	}

	for obj, err := range sources[model](ctx, e.Client, params) {
		if err != nil {
			return written, err
		}
		rec, err := NewRecord(model, obj)
		if err != nil {
			return written, err
		}
		batch = append(batch, rec)
		if len(batch) == size {
			if err := flush(); err != nil {
				return written, err
			}
		}
	}
	if err := flush(); err != nil {
		return written, err
	}

	slog.InfoContext(ctx, "exported model", "model", model, "records", written, "duration", time.Since(start))
	return written, nil
}

func withDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
