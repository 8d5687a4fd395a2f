// Package common holds the file-format plumbing shared by the commands and
// the HTTP API: raw CSV rows in, CSV rows out, and the JSON record format.
package common

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"fjacquet/statement-analyzer/internal/parsererror"

	"github.com/gocarina/gocsv"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Supported input encodings.
const (
	EncodingUTF8        = "utf-8"
	EncodingWindows1252 = "windows-1252"
	EncodingLatin1      = "iso-8859-1"
)

// CSVOptions controls how raw statement files are read and written.
type CSVOptions struct {
	Delimiter rune
	Encoding  string
}

// DefaultCSVOptions returns comma-delimited UTF-8.
func DefaultCSVOptions() CSVOptions {
	return CSVOptions{Delimiter: ',', Encoding: EncodingUTF8}
}

func lookupEncoding(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", EncodingUTF8, "utf8":
		return unicode.UTF8BOM, nil
	case EncodingWindows1252, "cp1252":
		return charmap.Windows1252, nil
	case EncodingLatin1, "latin1", "latin-1":
		return charmap.ISO8859_1, nil
	default:
		return nil, fmt.Errorf("unsupported input encoding: %s", name)
	}
}

// ValidateEncoding reports whether name is a supported input encoding.
func ValidateEncoding(name string) error {
	_, err := lookupEncoding(name)
	return err
}

// DecodeReader wraps r so that it yields UTF-8. A leading UTF-8 byte order
// mark is dropped.
func DecodeReader(r io.Reader, encodingName string) (io.Reader, error) {
	enc, err := lookupEncoding(encodingName)
	if err != nil {
		return nil, err
	}
	return transform.NewReader(r, enc.NewDecoder()), nil
}

// ReadRows reads every row of a delimited file. Rows may have any number of
// cells; cell content is kept verbatim, including surrounding spaces.
func ReadRows(r io.Reader, opts CSVOptions) ([][]string, error) {
	decoded, err := DecodeReader(r, opts.Encoding)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(decoded)
	if opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("error reading CSV data: %w", err)
	}
	return rows, nil
}

// ReadRowsFile opens path and reads it with ReadRows. A missing file yields
// a *parsererror.InputNotFoundError.
func ReadRowsFile(path string, opts CSVOptions) ([][]string, error) {
	file, err := os.Open(path) // #nosec G304 -- path is supplied by the operator
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &parsererror.InputNotFoundError{FilePath: path}
		}
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return ReadRows(file, opts)
}

// WriteRows writes a header followed by rows to w, separated by
// opts.Delimiter or a comma when unset. An empty header is skipped.
func WriteRows(w io.Writer, header []string, rows [][]string, opts CSVOptions) error {
	csvWriter := csv.NewWriter(w)
	if opts.Delimiter != 0 {
		csvWriter.Comma = opts.Delimiter
	}
	safe := gocsv.NewSafeCSVWriter(csvWriter)

	if len(header) > 0 {
		if err := safe.Write(header); err != nil {
			return fmt.Errorf("error writing CSV header: %w", err)
		}
	}
	for _, row := range rows {
		if err := safe.Write(row); err != nil {
			return fmt.Errorf("error writing CSV row: %w", err)
		}
	}
	safe.Flush()
	if err := safe.Error(); err != nil {
		return fmt.Errorf("error flushing CSV data: %w", err)
	}
	return nil
}
