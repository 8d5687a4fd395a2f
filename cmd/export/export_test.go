package export

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"fjacquet/statement-analyzer/cmd/common"
	"fjacquet/statement-analyzer/internal/config"
	"fjacquet/statement-analyzer/internal/container"
	"fjacquet/statement-analyzer/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const recordsJSON = `[
    {"Tran Date": "01-08-2025", "PARTICULARS": "RENT, AUG", "DR": "15,000.00", "CR": "", "withdrawal_or_deposit": true},
    {"Tran Date": "02-08-2025", "PARTICULARS": "SALARY", "DR": "", "CR": "80,000.00", "withdrawal_or_deposit": false}
]`

func newContainer(t *testing.T) *container.Container {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Profiles.File = filepath.Join(t.TempDir(), "profiles.yaml")
	c, err := container.NewContainerWithLogger(cfg, logging.NewMockLogger())
	require.NoError(t, err)
	return c
}

func TestExportCommand_Metadata(t *testing.T) {
	assert.Equal(t, "export <input-json> [output-csv]", Cmd.Use)
	assert.Error(t, Cmd.Args(Cmd, nil))
}

func TestRun_WritesHeaderAndRows(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "statement.json")
	require.NoError(t, os.WriteFile(input, []byte(recordsJSON), 0o600))

	var out bytes.Buffer
	require.NoError(t, Run(&out, newContainer(t), []string{input}))

	output := filepath.Join(dir, "statement.csv")
	assert.Equal(t, "✅ CSV file created successfully: "+output+"\n", out.String())

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	expected := "Tran Date,PARTICULARS,DR,CR\n" +
		"01-08-2025,\"RENT, AUG\",\"15,000.00\",\n" +
		"02-08-2025,SALARY,,\"80,000.00\"\n"
	assert.Equal(t, expected, string(data))
}

func TestRun_MissingInput(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.json")

	var out bytes.Buffer
	err := Run(&out, newContainer(t), []string{missing})
	assert.ErrorIs(t, err, common.ErrCommandFailed)
	assert.Equal(t, "❌ Error: File not found -> "+missing+"\n", out.String())
}

func TestRun_InvalidJSON(t *testing.T) {
	input := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(input, []byte("{not json"), 0o600))

	var out bytes.Buffer
	err := Run(&out, newContainer(t), []string{input})
	assert.ErrorIs(t, err, common.ErrCommandFailed)
	assert.Contains(t, out.String(), "❌ Error: ")
}
