package analyze

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"fjacquet/statement-analyzer/cmd/common"
	"fjacquet/statement-analyzer/internal/config"
	"fjacquet/statement-analyzer/internal/container"
	"fjacquet/statement-analyzer/internal/logging"
	"fjacquet/statement-analyzer/internal/report"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const recordsJSON = `[
    {"Tran Date": "01-08-2025", "CHQNO": "", "PARTICULARS": "RENT", "DR": "15,000.00", "CR": "", "BAL": "85,000.00", "SOL": "0123", "withdrawal_or_deposit": true},
    {"Tran Date": "02-08-2025", "CHQNO": "", "PARTICULARS": "SALARY", "DR": "", "CR": "80,000.00", "BAL": "1,65,000.00", "SOL": "0123", "withdrawal_or_deposit": false},
    {"Tran Date": "03-09-2025", "CHQNO": "", "PARTICULARS": "GROCERY", "DR": "500.00", "CR": "", "BAL": "1,64,500.00", "SOL": "0123", "withdrawal_or_deposit": true}
]`

func newContainer(t *testing.T) *container.Container {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Profiles.File = filepath.Join(t.TempDir(), "profiles.yaml")
	c, err := container.NewContainerWithLogger(cfg, logging.NewMockLogger())
	require.NoError(t, err)
	return c
}

func writeRecords(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "statement.json")
	require.NoError(t, os.WriteFile(path, []byte(recordsJSON), 0o600))
	return path
}

func TestAnalyzeCommand_Metadata(t *testing.T) {
	assert.Equal(t, "analyze <input-json> [month-year]", Cmd.Use)
	assert.NotNil(t, Cmd.Flags().Lookup("top"))
	assert.Equal(t, report.FormatText, Cmd.Flags().Lookup("format").DefValue)
	assert.Error(t, Cmd.Args(Cmd, nil))
	assert.NoError(t, Cmd.Args(Cmd, []string{"a.json", "08-2025"}))
}

func TestRun_TextReport(t *testing.T) {
	input := writeRecords(t)

	var out, errOut bytes.Buffer
	require.NoError(t, Run(&out, &errOut, newContainer(t), []string{input}, Options{Format: report.FormatText}))

	text := out.String()
	assert.Contains(t, text, "📄 File: "+input)
	assert.Contains(t, text, "Total amount spent (DR): 15,500.00")
	assert.Contains(t, text, "Total amount received (CR): 80,000.00")
	assert.Contains(t, text, "Net balance (CR - DR): 64,500.00")
	assert.Contains(t, text, "  1. 01-08-2025 | Amount: 15,000.00 | RENT")
	assert.Contains(t, text, "  2. 03-09-2025 | Amount: 500.00 | GROCERY")
	assert.Contains(t, text, "📅 Totals for ALL:")
	assert.Empty(t, errOut.String())
}

func TestRun_MonthAndTop(t *testing.T) {
	input := writeRecords(t)

	var out, errOut bytes.Buffer
	require.NoError(t, Run(&out, &errOut, newContainer(t), []string{input, "Aug-2025"}, Options{TopN: 1, Format: report.FormatText}))

	text := out.String()
	assert.Contains(t, text, "📅 Totals for 08-2025:\n   Total DR: 15,000.00\n   Total CR: 80,000.00\n")
	assert.NotContains(t, text, "2. 03-09-2025")
}

func TestRun_InvalidMonth(t *testing.T) {
	input := writeRecords(t)

	var out, errOut bytes.Buffer
	require.NoError(t, Run(&out, &errOut, newContainer(t), []string{input, "13-2025"}, Options{Format: report.FormatText}))
	assert.Contains(t, out.String(), report.InvalidMonthMessage)
	assert.NotContains(t, out.String(), "📅 Totals")

	out.Reset()
	require.NoError(t, Run(&out, &errOut, newContainer(t), []string{input, "13-2025"}, Options{Format: report.FormatJSON}))
	assert.Equal(t, report.InvalidMonthMessage+"\n", errOut.String())

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	assert.NotContains(t, decoded, "monthly")
	assert.EqualValues(t, 3, decoded["count"])
}

func TestRun_MissingInput(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.json")

	var out, errOut bytes.Buffer
	err := Run(&out, &errOut, newContainer(t), []string{missing}, Options{Format: report.FormatText})

	assert.ErrorIs(t, err, common.ErrCommandFailed)
	assert.Equal(t, "❌ Error: File not found -> "+missing+"\n", out.String())
}

func TestRun_UnsupportedFormat(t *testing.T) {
	var out, errOut bytes.Buffer
	err := Run(&out, &errOut, newContainer(t), []string{writeRecords(t)}, Options{Format: "xml"})

	assert.ErrorIs(t, err, common.ErrCommandFailed)
	assert.Contains(t, out.String(), "unsupported output format: xml")
}
