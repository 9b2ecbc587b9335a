package cmd

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"packaging-quote/core/output"
	"packaging-quote/internal/config"
	"packaging-quote/internal/errors"
)

var familiesFormat string

// familiesCmd lists the registered product families
var familiesCmd = &cobra.Command{
	Use:   "families",
	Short: "List product families and the product types they accept",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format := familiesFormat
		if format == "" {
			format = config.Get().Output.DefaultFormat
		}

		infos := newEngine(config.Get()).Strategies()
		out := cmd.OutOrStdout()
		switch format {
		case "json":
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(infos)
		case "cli":
			t := output.NewTable("FAMILY", "MIN ORDER", "PRODUCT TYPES")
			for _, info := range infos {
				t.AddRow(info.ID, strconv.Itoa(info.MinOrderQuantity), strings.Join(info.SupportedTypes, ", "))
			}
			return t.Render(out)
		default:
			return errors.NotSupported("output format " + format)
		}
	},
}

func init() {
	familiesCmd.Flags().StringVarP(&familiesFormat, "format", "f", "", "output format (cli, json)")
}
