// Package report renders an analysis.Summary for the analyze command and
// the HTTP API. The text layout mirrors the console report of the original
// statement tooling; JSON and CSV are provided for scripting.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"fjacquet/statement-analyzer/internal/analysis"
	"fjacquet/statement-analyzer/internal/currencyutils"
	"fjacquet/statement-analyzer/internal/logging"
	"fjacquet/statement-analyzer/internal/models"

	"github.com/gocarina/gocsv"
)

// Supported output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatCSV  = "csv"
)

// InvalidMonthMessage is printed in place of the monthly section when the
// month argument could not be parsed.
const InvalidMonthMessage = "❌ Invalid month format! Use 'MM-YYYY' or 'Aug-YYYY'."

const rule = "--------------------------------------------------"

// Row is one line of the CSV rendering.
type Row struct {
	Section     string `csv:"section"`
	Rank        int    `csv:"rank"`
	Date        string `csv:"date"`
	Amount      string `csv:"amount"`
	Description string `csv:"description"`
}

// ReportGenerator provides functionality to render analysis summaries in
// various formats.
type ReportGenerator struct {
	logger  logging.Logger
	columns models.Columns
}

// NewReportGenerator creates a new instance of ReportGenerator. The columns
// name the description field in the text report.
func NewReportGenerator(columns models.Columns, logger logging.Logger) *ReportGenerator {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &ReportGenerator{logger: logger, columns: columns.WithDefaults()}
}

// GenerateReport writes the summary of source in the given format.
func (g *ReportGenerator) GenerateReport(w io.Writer, source string, summary analysis.Summary, format string) error {
	var err error
	switch strings.ToLower(format) {
	case "", FormatText:
		err = g.writeText(w, source, summary)
	case FormatJSON:
		err = g.writeJSON(w, summary)
	case FormatCSV:
		err = g.writeCSV(w, summary)
	default:
		return fmt.Errorf("unsupported report format: %s", format)
	}
	if err != nil {
		g.logger.WithError(err).Error("Failed to write report", logging.F("format", format))
		return fmt.Errorf("failed to write %s report: %w", format, err)
	}
	return nil
}

func (g *ReportGenerator) writeText(w io.Writer, source string, s analysis.Summary) error {
	label := g.columns.Description
	var b strings.Builder

	fmt.Fprintln(&b, rule)
	fmt.Fprintf(&b, "📄 File: %s\n", source)
	fmt.Fprintln(&b, rule)
	fmt.Fprintf(&b, "Total amount spent (DR): %s\n", currencyutils.FormatAmount(s.Spent))
	fmt.Fprintf(&b, "Total amount received (CR): %s\n", currencyutils.FormatAmount(s.Received))
	fmt.Fprintf(&b, "Net balance (CR - DR): %s\n", currencyutils.FormatAmount(s.Net))

	writeExtreme(&b, "\n💸 Max DR Transaction:", label, s.MaxDebit)
	writeExtreme(&b, "\n💰 Max CR Transaction:", label, s.MaxCredit)
	fmt.Fprintln(&b, rule)

	fmt.Fprintln(&b, "\n🏆 Top DR Transactions:")
	writeRanked(&b, s.TopDebits)
	fmt.Fprintln(&b, "\n💎 Top CR Transactions:")
	writeRanked(&b, s.TopCredits)
	fmt.Fprintln(&b, rule)

	switch {
	case s.Monthly != nil:
		fmt.Fprintf(&b, "\n📅 Totals for %s:\n", s.Monthly.Month)
		fmt.Fprintf(&b, "   Total DR: %s\n", currencyutils.FormatAmount(s.Monthly.TotalDebit))
		fmt.Fprintf(&b, "   Total CR: %s\n", currencyutils.FormatAmount(s.Monthly.TotalCredit))
	case s.MonthErr != nil:
		fmt.Fprintln(&b, InvalidMonthMessage)
	}
	fmt.Fprintln(&b, rule)

	_, err := io.WriteString(w, b.String())
	return err
}

func writeExtreme(b *strings.Builder, title, label string, e *analysis.Extreme) {
	fmt.Fprintln(b, title)
	if e == nil {
		fmt.Fprintln(b, "  (no transactions)")
		return
	}
	fmt.Fprintf(b, "  Amount: %s\n", currencyutils.FormatAmount(e.Amount))
	fmt.Fprintf(b, "  %s: %s\n", label, e.Description)
}

func writeRanked(b *strings.Builder, ranked []analysis.Ranked) {
	for _, r := range ranked {
		fmt.Fprintf(b, "  %d. %s | Amount: %s | %s\n", r.Rank, r.Date, currencyutils.FormatAmount(r.Amount), r.Description)
	}
}

func (g *ReportGenerator) writeJSON(w io.Writer, s analysis.Summary) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

// Rows flattens a summary into CSV rows: totals first, then the extremes,
// the top listings and the monthly totals.
func Rows(s analysis.Summary) []Row {
	rows := []Row{
		{Section: "spent", Amount: s.Spent.StringFixed(2)},
		{Section: "received", Amount: s.Received.StringFixed(2)},
		{Section: "net", Amount: s.Net.StringFixed(2)},
	}
	if s.MaxDebit != nil {
		rows = append(rows, Row{Section: "max_DR", Amount: s.MaxDebit.Amount.StringFixed(2), Description: s.MaxDebit.Description})
	}
	if s.MaxCredit != nil {
		rows = append(rows, Row{Section: "max_CR", Amount: s.MaxCredit.Amount.StringFixed(2), Description: s.MaxCredit.Description})
	}
	for _, r := range s.TopDebits {
		rows = append(rows, Row{Section: "top_DR", Rank: r.Rank, Date: r.Date, Amount: r.Amount.StringFixed(2), Description: r.Description})
	}
	for _, r := range s.TopCredits {
		rows = append(rows, Row{Section: "top_CR", Rank: r.Rank, Date: r.Date, Amount: r.Amount.StringFixed(2), Description: r.Description})
	}
	if s.Monthly != nil {
		rows = append(rows,
			Row{Section: "monthly_DR", Date: s.Monthly.Month, Amount: s.Monthly.TotalDebit.StringFixed(2)},
			Row{Section: "monthly_CR", Date: s.Monthly.Month, Amount: s.Monthly.TotalCredit.StringFixed(2)})
	}
	return rows
}

func (g *ReportGenerator) writeCSV(w io.Writer, s analysis.Summary) error {
	rows := Rows(s)
	return gocsv.MarshalCSV(&rows, gocsv.NewSafeCSVWriter(csv.NewWriter(w)))
}
