// Package common contains the helpers shared by the statement-analyzer
// subcommands.
package common

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"fjacquet/statement-analyzer/internal/common"
	"fjacquet/statement-analyzer/internal/fileutils"
	"fjacquet/statement-analyzer/internal/logging"
	"fjacquet/statement-analyzer/internal/models"
	"fjacquet/statement-analyzer/internal/normalizer"
	"fjacquet/statement-analyzer/internal/parsererror"
	"fjacquet/statement-analyzer/internal/session"
	"fjacquet/statement-analyzer/internal/validation"
)

// ErrCommandFailed is returned after a command has already printed its
// failure message. main exits with status 1 without printing it again.
var ErrCommandFailed = errors.New("command failed")

// FailureMessage renders err as the one-line message shown to the user.
func FailureMessage(err error) string {
	var notFound *parsererror.InputNotFoundError
	switch {
	case errors.As(err, &notFound):
		return fmt.Sprintf("❌ Error: File not found -> %s", notFound.FilePath)
	case errors.Is(err, parsererror.ErrHeaderNotFound):
		return fmt.Sprintf("❌ Error while parsing CSV: %v", err)
	default:
		return fmt.Sprintf("❌ Error: %v", err)
	}
}

// Fail prints the failure message for err to w and returns ErrCommandFailed.
func Fail(w io.Writer, err error) error {
	_, _ = fmt.Fprintln(w, FailureMessage(err))
	return ErrCommandFailed
}

// CheckInput reports a missing or unreadable input path.
func CheckInput(path string) error {
	return validation.InputFile(path)
}

// ConvertFile normalizes the CSV statement at inputFile and writes the
// records as JSON to outputFile. Nothing is written when normalization
// fails. It returns the number of records written.
func ConvertFile(n *normalizer.Normalizer, inputFile, outputFile string, opts common.JSONOptions, logger logging.Logger) (int, error) {
	if err := CheckInput(inputFile); err != nil {
		return 0, err
	}

	records, err := n.NormalizeFile(inputFile)
	if err != nil {
		return 0, err
	}

	var buf bytes.Buffer
	if err := common.WriteRecordsJSON(&buf, records, opts); err != nil {
		return 0, err
	}
	if err := fileutils.WriteFile(outputFile, buf.Bytes(), 0o600); err != nil {
		return 0, err
	}

	logger.Info("Wrote JSON records",
		logging.F(logging.FieldFile, outputFile),
		logging.F(logging.FieldCount, len(records)))
	return len(records), nil
}

// LoadRecords reads records from a converted JSON file, or normalizes a CSV
// statement when the path does not end in .json.
func LoadRecords(n *normalizer.Normalizer, path string) ([]models.Record, error) {
	if err := CheckInput(path); err != nil {
		return nil, err
	}
	if session.DetectFormat(path) == session.FormatJSON {
		return common.ReadRecordsJSONFile(path)
	}
	return n.NormalizeFile(path)
}
