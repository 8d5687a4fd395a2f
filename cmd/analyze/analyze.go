// Package analyze handles the statement analysis command
package analyze

import (
	"fmt"
	"io"
	"strings"

	"fjacquet/statement-analyzer/cmd/common"
	"fjacquet/statement-analyzer/cmd/root"
	"fjacquet/statement-analyzer/internal/analysis"
	"fjacquet/statement-analyzer/internal/container"
	"fjacquet/statement-analyzer/internal/logging"
	"fjacquet/statement-analyzer/internal/report"
	"fjacquet/statement-analyzer/internal/validation"

	"github.com/spf13/cobra"
)

// Options holds the analyze flags.
type Options struct {
	// TopN overrides analysis.top_n when positive.
	TopN   int
	Format string
}

var flags = Options{Format: report.FormatText}

// Cmd represents the analyze command
var Cmd = &cobra.Command{
	Use:   "analyze <input-json> [month-year]",
	Short: "Report totals, extremes, top transactions and monthly sums",
	Long: `Analyze a converted statement and print spending totals, the largest debit
and credit, the top debit and credit transactions and the totals of one month.

The month accepts MM-YYYY, M/YYYY, Mon-YYYY, Month-YYYY or YYYY-MM. Without a
month the grand totals are shown. A CSV statement is normalized first.`,
	Example: `  statement-analyzer analyze statement.json
  statement-analyzer analyze statement.json Aug-2025 --top 5
  statement-analyzer analyze statement.json 08-2025 --format json`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return Run(cmd.OutOrStdout(), cmd.ErrOrStderr(), root.GetContainer(), args, flags)
	},
}

func init() {
	Cmd.Flags().IntVarP(&flags.TopN, "top", "n", 0, "Number of top transactions to list (default from config)")
	Cmd.Flags().StringVarP(&flags.Format, "format", "f", report.FormatText, "Output format (text, json, csv)")
}

// Run analyzes args[0], restricted to the month in args[1] when given, and
// writes the report to out. The invalid month notice goes to errOut for the
// machine-readable formats.
func Run(out, errOut io.Writer, c *container.Container, args []string, opts Options) error {
	input := args[0]
	month := ""
	if len(args) > 1 {
		month = args[1]
	}

	if err := validation.ReportFormat(opts.Format); err != nil {
		return common.Fail(out, err)
	}

	records, err := common.LoadRecords(c.GetNormalizer(), input)
	if err != nil {
		return common.Fail(out, err)
	}

	topN := opts.TopN
	if topN <= 0 {
		topN = c.GetConfig().Analysis.TopN
	}

	summary := analysis.Summarize(records, c.GetColumns(), topN, month)
	if summary.InvalidMonth() {
		c.GetLogger().Warn("Ignoring invalid month", logging.F(logging.FieldMonth, month))
		if format := strings.ToLower(opts.Format); format != "" && format != report.FormatText {
			_, _ = fmt.Fprintln(errOut, report.InvalidMonthMessage)
		}
	}

	if err := c.GetReportGenerator().GenerateReport(out, input, summary, opts.Format); err != nil {
		return common.Fail(out, err)
	}
	return nil
}
