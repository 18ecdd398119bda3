package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	accounting "github.com/florianilch/merge-accounting"
)

func metaCommand() *cli.Command {
	return &cli.Command{
		Name:      "meta",
		Usage:     "Show the fields a create request accepts",
		ArgsUsage: "<invoices|payments|contacts>",
		Flags:     []cli.Flag{outputFlag()},
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

			var res *accounting.MetaResponse
			switch name := cmd.Args().First(); name {
			case "invoices":
				res, err = client.Invoices.Meta(ctx)
			case "payments":
				res, err = client.Payments.Meta(ctx)
			case "contacts":
				res, err = client.Contacts.Meta(ctx)
			default:
				return fmt.Errorf("unknown resource %q (expected one of: invoices, payments, contacts)", name)
			}
			if err != nil {
				return err
			}
			return render(cmd, res)
		},
	}
}

func writeFlags() []cli.Flag {
	return []cli.Flag{
		outputFlag(),
		&cli.StringFlag{
			Name:     "file",
			Aliases:  []string{"f"},
			Usage:    "request body as JSON or YAML, - for stdin",
			Required: true,
		},
		&cli.BoolFlag{Name: "debug", Usage: "return debug logs of the write"},
		&cli.BoolFlag{Name: "async", Usage: "queue the write instead of waiting for the platform"},
	}
}

func writeParams(cmd *cli.Command) accounting.WriteParams {
	return accounting.WriteParams{IsDebugMode: cmd.Bool("debug"), RunAsync: cmd.Bool("async")}
}

func createCommand() *cli.Command {
	return &cli.Command{
		Name:      "create",
		Usage:     "Create an object in the third-party platform",
		ArgsUsage: "<invoice|payment|contact>",
		Flags:     writeFlags(),
		Action:    createAction,
	}
}

func createAction(ctx context.Context, cmd *cli.Command) error {
	kind := cmd.Args().First()
	if kind != "invoice" && kind != "payment" && kind != "contact" {
		return fmt.Errorf("unknown resource %q (expected one of: invoice, payment, contact)", kind)
	}
	body, err := readBody(cmd.String("file"))
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

	var res any
	switch kind {
	case "invoice":
		var req accounting.InvoiceRequest
		if err := decodeBody(body, &req); err != nil {
			return err
		}
		res, err = client.Invoices.New(ctx, req, writeParams(cmd))
	case "payment":
		var req accounting.PaymentRequest
		if err := decodeBody(body, &req); err != nil {
			return err
		}
		res, err = client.Payments.New(ctx, req, writeParams(cmd))
	case "contact":
		var req accounting.ContactRequest
		if err := decodeBody(body, &req); err != nil {
			return err
		}
		res, err = client.Contacts.New(ctx, req, writeParams(cmd))
	}
	if err != nil {
		return err
	}
	return render(cmd, res)
}

func updateCommand() *cli.Command {
	return &cli.Command{
		Name:      "update",
		Usage:     "Update a payment; fields set to null are cleared",
		ArgsUsage: "payment <id>",
		Flags:     writeFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.NArg() != 2 || cmd.Args().First() != "payment" {
				return fmt.Errorf("expected payment <id>")
			}
			body, err := readBody(cmd.String("file"))
			if err != nil {
				return err
			}
			var req accounting.PatchedPaymentRequest
			if err := decodeBody(body, &req); err != nil {
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

			res, err := client.Payments.Update(ctx, cmd.Args().Get(1), req, writeParams(cmd))
			if err != nil {
				return err
			}
			return render(cmd, res)
		},
	}
}

func readBody(path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("reading request body from stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading request body: %w", err)
	}
	return data, nil
}

// decodeBody decodes a JSON or YAML request body into a model. YAML is
// converted to JSON first so model decoding and validation apply unchanged.
func decodeBody(data []byte, v any) error {
	if !json.Valid(data) {
		var doc any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("request body is neither JSON nor YAML: %w", err)
		}
		converted, err := json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("converting YAML request body: %w", err)
		}
		data = converted
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}
