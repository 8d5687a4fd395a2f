package common

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fjacquet/statement-analyzer/internal/parsererror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const statementCSV = `Account Statement,,,
Name: A. Customer,,,
Tran Date,CHQNO,PARTICULARS,DR,CR,BAL,SOL
01-08-2025,,UPI/RENT,"15,000.00",,"85,000.00",0123
02-08-2025,,SALARY,-,"80,000.00","1,65,000.00",0123
`

func TestReadRows_KeepsRaggedRowsAndCells(t *testing.T) {
	rows, err := ReadRows(strings.NewReader(statementCSV), DefaultCSVOptions())
	require.NoError(t, err)

	require.Len(t, rows, 5)
	assert.Len(t, rows[0], 4)
	assert.Len(t, rows[2], 7)
	assert.Equal(t, "15,000.00", rows[3][3])
	assert.Equal(t, "0123", rows[3][6])
}

func TestReadRows_PreservesLeadingSpaces(t *testing.T) {
	rows, err := ReadRows(strings.NewReader("DR,CR\n     36.00, -\n"), DefaultCSVOptions())
	require.NoError(t, err)
	assert.Equal(t, []string{"     36.00", " -"}, rows[1])
}

func TestReadRows_Semicolon(t *testing.T) {
	rows, err := ReadRows(strings.NewReader("a;b\n1;2\n"), CSVOptions{Delimiter: ';'})
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"a", "b"}, {"1", "2"}}, rows)
}

func TestReadRows_StripsBOM(t *testing.T) {
	rows, err := ReadRows(strings.NewReader("\uFEFFTran Date,DR\n"), DefaultCSVOptions())
	require.NoError(t, err)
	assert.Equal(t, "Tran Date", rows[0][0])
}

func TestReadRows_Windows1252(t *testing.T) {
	// "CAFÉ" with É as 0xC9 in Windows-1252.
	input := []byte("PARTICULARS\nCAF\xC9\n")

	rows, err := ReadRows(bytes.NewReader(input), CSVOptions{Delimiter: ',', Encoding: EncodingWindows1252})
	require.NoError(t, err)
	assert.Equal(t, "CAFÉ", rows[1][0])
}

func TestReadRows_UnknownEncoding(t *testing.T) {
	_, err := ReadRows(strings.NewReader("a"), CSVOptions{Encoding: "ebcdic"})
	assert.Error(t, err)
	assert.Error(t, ValidateEncoding("ebcdic"))
	assert.NoError(t, ValidateEncoding("Latin1"))
}

func TestReadRowsFile_Missing(t *testing.T) {
	_, err := ReadRowsFile(filepath.Join(t.TempDir(), "missing.csv"), DefaultCSVOptions())

	require.Error(t, err)
	assert.True(t, errors.Is(err, parsererror.ErrInputNotFound))
}

func TestWriteRows_RoundTrip(t *testing.T) {
	header := []string{"Tran Date", "PARTICULARS", "DR"}
	rows := [][]string{
		{"01-08-2025", "RENT, AUGUST", "15,000.00"},
		{"02-08-2025", `QUOTE "X"`, "  -"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteRows(&buf, header, rows, DefaultCSVOptions()))

	readBack, err := ReadRows(&buf, DefaultCSVOptions())
	require.NoError(t, err)
	assert.Equal(t, append([][]string{header}, rows...), readBack)
}

func TestWriteRows_ToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, WriteRows(f, []string{"a"}, [][]string{{"1"}}, CSVOptions{Delimiter: ';'}))
	require.NoError(t, f.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a\n1\n", string(data))
}
