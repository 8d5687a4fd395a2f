// Package export handles the JSON to CSV export command
package export

import (
	"fmt"
	"io"

	"fjacquet/statement-analyzer/cmd/common"
	"fjacquet/statement-analyzer/cmd/root"
	internalcommon "fjacquet/statement-analyzer/internal/common"
	"fjacquet/statement-analyzer/internal/container"
	"fjacquet/statement-analyzer/internal/fileutils"
	"fjacquet/statement-analyzer/internal/logging"
	"fjacquet/statement-analyzer/internal/models"

	"github.com/spf13/cobra"
)

// Cmd represents the export command
var Cmd = &cobra.Command{
	Use:   "export <input-json> [output-csv]",
	Short: "Write converted records back to a header and rows CSV",
	Long: `Write the records of a converted JSON file back to CSV, one header row
followed by one row per record in the original column order. The derived
withdrawal_or_deposit flag is not exported. The output defaults to the input
path with a .csv extension.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return Run(cmd.OutOrStdout(), root.GetContainer(), args)
	},
}

// Run exports args[0] and reports the outcome on out.
func Run(out io.Writer, c *container.Container, args []string) error {
	input := args[0]
	output := fileutils.DeriveOutputPath(input, ".csv")
	if len(args) > 1 {
		output = args[1]
	}
	if output == input {
		output = fileutils.DeriveOutputPath(input, ".export.csv")
	}

	if err := common.CheckInput(input); err != nil {
		return common.Fail(out, err)
	}
	records, err := internalcommon.ReadRecordsJSONFile(input)
	if err != nil {
		return common.Fail(out, err)
	}

	file, err := fileutils.CreateFile(output)
	if err != nil {
		return common.Fail(out, err)
	}
	defer func() { _ = file.Close() }()

	header, rows := models.ToRows(records)
	if err := internalcommon.WriteRows(file, header, rows, c.GetCSVOptions()); err != nil {
		return common.Fail(out, err)
	}

	c.GetLogger().Info("Exported records",
		logging.F(logging.FieldFile, output),
		logging.F(logging.FieldCount, len(records)))
	_, _ = fmt.Fprintf(out, "✅ CSV file created successfully: %s\n", output)
	return nil
}
