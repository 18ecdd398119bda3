package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

func outputFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "output format (json|yaml)",
		Value:   "json",
		Validator: func(s string) error {
			if s != "json" && s != "yaml" {
				return fmt.Errorf("unsupported output format %q (expected: json, yaml)", s)
			}
			return nil
		},
	}
}

// render writes v in the command's output format. Models are encoded through
// their JSON form, so YAML output keeps wire names, field order and extras.
func render(cmd *cli.Command, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	return writeFormatted(cmd.Root().Writer, cmd.String("output"), data)
}

func writeFormatted(w io.Writer, format string, data []byte) error {
	switch format {
	case "yaml":
		var node yaml.Node
		if err := yaml.Unmarshal(data, &node); err != nil {
			return fmt.Errorf("converting output to yaml: %w", err)
		}
		blockStyle(&node)
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(&node); err != nil {
			return err
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(json.RawMessage(data))
	}
}

// blockStyle drops the flow and quoting styles JSON input parses with, so
// the encoder picks plain YAML where it can.
func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		blockStyle(c)
	}
}
