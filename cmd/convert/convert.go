// Package convert handles the CSV to JSON conversion command
package convert

import (
	"fmt"
	"io"

	"fjacquet/statement-analyzer/cmd/common"
	"fjacquet/statement-analyzer/cmd/root"
	"fjacquet/statement-analyzer/internal/container"
	"fjacquet/statement-analyzer/internal/fileutils"

	"github.com/spf13/cobra"
)

// Options holds the convert flags.
type Options struct {
	ASCII bool
	// Indent overrides the configured indentation when non-negative.
	Indent int
}

var flags = Options{Indent: -1}

// Cmd represents the convert command
var Cmd = &cobra.Command{
	Use:   "convert <input-csv> [output-json]",
	Short: "Convert a bank statement CSV export to JSON",
	Long: `Convert a bank statement CSV export to a JSON array of records.

The header row is located by scanning for the first row that contains every
column of the active profile; preamble lines above it are skipped. The output
defaults to the input path with a .json extension.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return Run(cmd.OutOrStdout(), root.GetContainer(), args, flags)
	},
}

func init() {
	Cmd.Flags().BoolVar(&flags.ASCII, "ascii", false, "Escape non-ASCII characters in the JSON output")
	Cmd.Flags().IntVar(&flags.Indent, "indent", -1, "Indentation width of the JSON output (default from config)")
}

// Run converts args[0] to JSON and reports the outcome on out.
func Run(out io.Writer, c *container.Container, args []string, opts Options) error {
	input := args[0]
	output := fileutils.DeriveOutputPath(input, ".json")
	if len(args) > 1 {
		output = args[1]
	}

	jsonOpts := c.GetConfig().JSONOptions()
	if opts.ASCII {
		jsonOpts.ASCII = true
	}
	if opts.Indent >= 0 {
		jsonOpts.Indent = opts.Indent
	}

	if _, err := common.ConvertFile(c.GetNormalizer(), input, output, jsonOpts, c.GetLogger()); err != nil {
		return common.Fail(out, err)
	}
	_, _ = fmt.Fprintf(out, "✅ JSON file created successfully: %s\n", output)
	return nil
}
