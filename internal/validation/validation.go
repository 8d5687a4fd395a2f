// Package validation checks command inputs before any work is done.
package validation

import (
	"fmt"
	"os"
	"strings"

	"fjacquet/statement-analyzer/internal/parsererror"
)

// InputFile checks that path names an existing regular file. A missing path
// yields a *parsererror.InputNotFoundError.
func InputFile(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return &parsererror.InputNotFoundError{FilePath: path}
	}
	if err != nil {
		return fmt.Errorf("error checking path %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("path %s is not a regular file", path)
	}
	return nil
}

// ReportFormat checks if the given analysis report format is supported.
func ReportFormat(format string) error {
	switch strings.ToLower(format) {
	case "", "text", "json", "csv":
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s. Supported formats are 'text', 'json', 'csv'", format)
	}
}
