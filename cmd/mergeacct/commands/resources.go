package commands

import (
	"context"
	"fmt"
	"iter"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	accounting "github.com/florianilch/merge-accounting"
)

// resource binds a command line name to a common model endpoint.
type resource struct {
	get  func(ctx context.Context, c *accounting.Client, id string, p accounting.GetParams) (any, error)
	list func(ctx context.Context, c *accounting.Client, p accounting.ListParams, all bool) (any, error)
}

var resources = map[string]resource{
	"accounts": {
		get: func(ctx context.Context, c *accounting.Client, id string, p accounting.GetParams) (any, error) {
			return c.Accounts.Get(ctx, id, p)
		},
		list: func(ctx context.Context, c *accounting.Client, p accounting.ListParams, all bool) (any, error) {
			return collect(ctx, c.Accounts.List, c.Accounts.ListAutoPaging, p, all)
		},
	},
	"company-info": {
		get: func(ctx context.Context, c *accounting.Client, id string, p accounting.GetParams) (any, error) {
			return c.CompanyInfo.Get(ctx, id, p)
		},
		list: func(ctx context.Context, c *accounting.Client, p accounting.ListParams, all bool) (any, error) {
			return collect(ctx, c.CompanyInfo.List, c.CompanyInfo.ListAutoPaging, p, all)
		},
	},
	"contacts": {
		get: func(ctx context.Context, c *accounting.Client, id string, p accounting.GetParams) (any, error) {
			return c.Contacts.Get(ctx, id, p)
		},
		list: func(ctx context.Context, c *accounting.Client, p accounting.ListParams, all bool) (any, error) {
			return collect(ctx, c.Contacts.List, c.Contacts.ListAutoPaging, accounting.ContactListParams{ListParams: p}, all)
		},
	},
	"employees": {
		get: func(ctx context.Context, c *accounting.Client, id string, p accounting.GetParams) (any, error) {
			return c.Employees.Get(ctx, id, p)
		},
		list: func(ctx context.Context, c *accounting.Client, p accounting.ListParams, all bool) (any, error) {
			return collect(ctx, c.Employees.List, c.Employees.ListAutoPaging, p, all)
		},
	},
	"invoices": {
		get: func(ctx context.Context, c *accounting.Client, id string, p accounting.GetParams) (any, error) {
			return c.Invoices.Get(ctx, id, p)
		},
		list: func(ctx context.Context, c *accounting.Client, p accounting.ListParams, all bool) (any, error) {
			return collect(ctx, c.Invoices.List, c.Invoices.ListAutoPaging, accounting.InvoiceListParams{ListParams: p}, all)
		},
	},
	"payments": {
		get: func(ctx context.Context, c *accounting.Client, id string, p accounting.GetParams) (any, error) {
			return c.Payments.Get(ctx, id, p)
		},
		list: func(ctx context.Context, c *accounting.Client, p accounting.ListParams, all bool) (any, error) {
			return collect(ctx, c.Payments.List, c.Payments.ListAutoPaging, accounting.PaymentListParams{ListParams: p}, all)
		},
	},
	"payment-methods": {
		get: func(ctx context.Context, c *accounting.Client, id string, p accounting.GetParams) (any, error) {
			return c.PaymentMethods.Get(ctx, id, p)
		},
		list: func(ctx context.Context, c *accounting.Client, p accounting.ListParams, all bool) (any, error) {
			return collect(ctx, c.PaymentMethods.List, c.PaymentMethods.ListAutoPaging, p, all)
		},
	},
	"tracking-categories": {
		get: func(ctx context.Context, c *accounting.Client, id string, p accounting.GetParams) (any, error) {
			return c.TrackingCategories.Get(ctx, id, p)
		},
		list: func(ctx context.Context, c *accounting.Client, p accounting.ListParams, all bool) (any, error) {
			return collect(ctx, c.TrackingCategories.List, c.TrackingCategories.ListAutoPaging, p, all)
		},
	},
}

// collect returns one page, or with all set, every object following cursors.
func collect[T any, P any](
	ctx context.Context,
	list func(context.Context, P, ...accounting.RequestOption) (*accounting.Paginated[T], error),
	autoPaging func(context.Context, P, ...accounting.RequestOption) iter.Seq2[T, error],
	params P,
	all bool,
) (any, error) {
	if !all {
		return list(ctx, params)
	}
	items := []T{}
	for item, err := range autoPaging(ctx, params) {
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func resourceNames() string {
	return strings.Join(slices.Sorted(maps.Keys(resources)), ", ")
}

func lookupResource(name string) (resource, error) {
	r, ok := resources[name]
	if !ok {
		return resource{}, fmt.Errorf("unknown resource %q (expected one of: %s)", name, resourceNames())
	}
	return r, nil
}

func expandFlag() cli.Flag {
	return &cli.StringSliceFlag{
		Name:  "expand",
		Usage: "related objects to return in full",
	}
}

func getCommand() *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "Retrieve one object",
		ArgsUsage: "<resource> <id>",
		Flags: []cli.Flag{
			outputFlag(),
			expandFlag(),
			&cli.BoolFlag{Name: "remote-data", Usage: "include the raw third-party data"},
		},
		Action: getAction,
	}
}

func getAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() != 2 {
		return fmt.Errorf("expected <resource> <id>, resources: %s", resourceNames())
	}
	r, err := lookupResource(cmd.Args().Get(0))
	if err != nil {
		return err
	}

	cfg, done, err := setup(ctx, cmd, nil)
	if err != nil {
		return err
	}
	defer done()
	client, err := newClient(ctx, cfg)
	if err != nil {
		return err
	}

	res, err := r.get(ctx, client, cmd.Args().Get(1), accounting.GetParams{
		Expand:            cmd.StringSlice("expand"),
		IncludeRemoteData: cmd.Bool("remote-data"),
	})
	if err != nil {
		return err
	}
	return render(cmd, res)
}

func listCommand() *cli.Command {
	return &cli.Command{
		Name:      "list",
		Usage:     "List objects",
		ArgsUsage: "<resource>",
		Flags: []cli.Flag{
			outputFlag(),
			expandFlag(),
			&cli.IntFlag{Name: "page-size", Usage: "results per page (1-100)"},
			&cli.StringFlag{Name: "cursor", Usage: "page to fetch"},
			&cli.TimestampFlag{
				Name:   "modified-after",
				Usage:  "only objects modified after this time (RFC 3339)",
				Config: cli.TimestampConfig{Layouts: []string{time.RFC3339}},
			},
			&cli.BoolFlag{Name: "include-deleted", Usage: "include objects deleted in the third-party platform"},
			&cli.BoolFlag{Name: "all", Usage: "follow cursors and return every object"},
		},
		Action: listAction,
	}
}

func listAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() != 1 {
		return fmt.Errorf("expected <resource>, one of: %s", resourceNames())
	}
	r, err := lookupResource(cmd.Args().First())
	if err != nil {
		return err
	}

	cfg, done, err := setup(ctx, cmd, nil)
	if err != nil {
		return err
	}
	defer done()
	client, err := newClient(ctx, cfg)
	if err != nil {
		return err
	}

	params := accounting.ListParams{
		Cursor:             cmd.String("cursor"),
		PageSize:           int(cmd.Int("page-size")),
		Expand:             cmd.StringSlice("expand"),
		IncludeDeletedData: cmd.Bool("include-deleted"),
	}
	if cmd.IsSet("modified-after") {
		t := cmd.Timestamp("modified-after")
		params.ModifiedAfter = &t
	}

	res, err := r.list(ctx, client, params, cmd.Bool("all"))
	if err != nil {
		return err
	}
	return render(cmd, res)
}

func accountCommand() *cli.Command {
	return &cli.Command{
		Name:  "account",
		Usage: "Show the linked account",
		Flags: []cli.Flag{outputFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, done, err := setup(ctx, cmd, nil)
			if err != nil {
				return err
			}
			defer done()
			client, err := newClient(ctx, cfg)
			if err != nil {
				return err
			}
			details, err := client.AccountDetails.Get(ctx)
			if err != nil {
				return err
			}
			return render(cmd, details)
		},
	}
}

func syncStatusCommand() *cli.Command {
	return &cli.Command{
		Name:  "sync-status",
		Usage: "Show the sync status of each model",
		Flags: []cli.Flag{outputFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, done, err := setup(ctx, cmd, nil)
			if err != nil {
				return err
			}
			defer done()
			client, err := newClient(ctx, cfg)
			if err != nil {
				return err
			}
			statuses := []accounting.SyncStatus{}
			for s, err := range client.SyncStatus.ListAutoPaging(ctx, accounting.SyncStatusListParams{}) {
				if err != nil {
					return err
				}
				statuses = append(statuses, s)
			}
			return render(cmd, statuses)
		},
	}
}
