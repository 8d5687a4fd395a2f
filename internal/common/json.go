package common

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf16"

	"fjacquet/statement-analyzer/internal/models"
	"fjacquet/statement-analyzer/internal/parsererror"
)

// JSONOptions controls the record file layout.
type JSONOptions struct {
	Indent int
	// ASCII escapes every non-ASCII character as \uXXXX.
	ASCII bool
}

// DefaultJSONOptions returns 4-space indentation with UTF-8 output.
func DefaultJSONOptions() JSONOptions {
	return JSONOptions{Indent: 4}
}

// WriteRecordsJSON writes records as a pretty-printed JSON array.
func WriteRecordsJSON(w io.Writer, records []models.Record, opts JSONOptions) error {
	if records == nil {
		records = []models.Record{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if opts.Indent > 0 {
		enc.SetIndent("", strings.Repeat(" ", opts.Indent))
	}
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("error encoding records: %w", err)
	}

	out := bytes.TrimRight(buf.Bytes(), "\n")
	if opts.ASCII {
		out = EscapeNonASCII(out)
	}
	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("error writing records: %w", err)
	}
	return nil
}

// ReadRecordsJSON decodes a JSON array of records.
func ReadRecordsJSON(r io.Reader) ([]models.Record, error) {
	var records []models.Record
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("error decoding records: %w", err)
	}
	return records, nil
}

// ReadRecordsJSONFile reads a record file. A missing file yields a
// *parsererror.InputNotFoundError.
func ReadRecordsJSONFile(path string) ([]models.Record, error) {
	file, err := os.Open(path) // #nosec G304 -- path is supplied by the operator
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &parsererror.InputNotFoundError{FilePath: path}
		}
		return nil, fmt.Errorf("error opening JSON file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return ReadRecordsJSON(file)
}

// EscapeNonASCII rewrites every rune above 0x7F as a JSON \u escape, using
// surrogate pairs outside the basic multilingual plane. Input must be valid
// JSON text; escaping is only correct inside string literals, which is the
// only place non-ASCII can appear.
func EscapeNonASCII(data []byte) []byte {
	var out bytes.Buffer
	out.Grow(len(data))
	for _, r := range string(data) {
		switch {
		case r < 0x80:
			out.WriteRune(r)
		case r > 0xFFFF:
			r1, r2 := utf16.EncodeRune(r)
			fmt.Fprintf(&out, "\\u%04x\\u%04x", r1, r2)
		default:
			fmt.Fprintf(&out, "\\u%04x", r)
		}
	}
	return out.Bytes()
}
