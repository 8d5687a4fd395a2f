// Package normalizer turns the raw rows of a bank statement export into
// transaction records. Exports usually start with a few rows of account
// metadata; the header row is located by searching for a known set of
// column names and every row after it becomes one record.
package normalizer

import (
	"errors"
	"io"

	"fjacquet/statement-analyzer/internal/common"
	"fjacquet/statement-analyzer/internal/logging"
	"fjacquet/statement-analyzer/internal/models"
	"fjacquet/statement-analyzer/internal/parsererror"
)

// Normalize locates the first row containing every required column name and
// zips each following row against it. Rows shorter than the header are
// dropped, extra trailing cells are ignored and the debit flag is set when
// the debitColumn cell is non-blank. Records keep input order.
//
// A nil logger discards the per-row diagnostics.
func Normalize(rows [][]string, required models.HeaderSet, debitColumn string, logger logging.Logger) ([]models.Record, error) {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}

	headerIdx := -1
	for i, row := range rows {
		if required.Matches(row) {
			headerIdx = i
			break
		}
	}
	if headerIdx < 0 {
		return nil, &parsererror.HeaderNotFoundError{Required: required, Scanned: len(rows)}
	}

	header := rows[headerIdx]
	records := make([]models.Record, 0, len(rows)-headerIdx-1)
	for i := headerIdx + 1; i < len(rows); i++ {
		row := rows[i]
		if len(row) < len(header) {
			logger.Debug("Dropping short row",
				logging.F(logging.FieldRow, i+1),
				logging.F("cells", len(row)),
				logging.F("expected", len(header)))
			continue
		}
		records = append(records, models.NewRecord(header, row, debitColumn))
	}

	logger.Debug("Normalized statement rows",
		logging.F(logging.FieldHeaders, header),
		logging.F(logging.FieldCount, len(records)))
	return records, nil
}

// Normalizer reads statement exports with a fixed column layout and input
// dialect.
type Normalizer struct {
	columns models.Columns
	csv     common.CSVOptions
	logger  logging.Logger
}

// New creates a Normalizer. Empty column roles fall back to the default
// export layout and a zero delimiter falls back to a comma.
func New(columns models.Columns, opts common.CSVOptions, logger logging.Logger) *Normalizer {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	if opts.Delimiter == 0 {
		opts.Delimiter = common.DefaultCSVOptions().Delimiter
	}
	return &Normalizer{
		columns: columns.WithDefaults(),
		csv:     opts,
		logger:  logger,
	}
}

// SetLogger replaces the logger used for diagnostics.
func (n *Normalizer) SetLogger(logger logging.Logger) {
	if logger != nil {
		n.logger = logger
	}
}

// Columns returns the column layout records are matched against.
func (n *Normalizer) Columns() models.Columns {
	return n.columns
}

// NormalizeReader decodes and normalizes a statement read from r.
func (n *Normalizer) NormalizeReader(r io.Reader) ([]models.Record, error) {
	rows, err := common.ReadRows(r, n.csv)
	if err != nil {
		return nil, err
	}
	return Normalize(rows, n.columns.HeaderSet(), n.columns.Debit, n.logger)
}

// NormalizeFile reads the statement at filePath. A missing file yields a
// *parsererror.InputNotFoundError and a missing header a
// *parsererror.HeaderNotFoundError naming the file.
func (n *Normalizer) NormalizeFile(filePath string) ([]models.Record, error) {
	n.logger.Info("Normalizing statement",
		logging.F(logging.FieldFile, filePath),
		logging.F(logging.FieldDelimiter, string(n.csv.Delimiter)),
		logging.F(logging.FieldEncoding, n.csv.Encoding))

	rows, err := common.ReadRowsFile(filePath, n.csv)
	if err != nil {
		return nil, err
	}

	records, err := Normalize(rows, n.columns.HeaderSet(), n.columns.Debit, n.logger)
	if err != nil {
		var headerErr *parsererror.HeaderNotFoundError
		if errors.As(err, &headerErr) {
			headerErr.FilePath = filePath
		}
		n.logger.WithError(err).Warn("Header row not found", logging.F(logging.FieldFile, filePath))
		return nil, err
	}

	n.logger.Info("Normalized statement",
		logging.F(logging.FieldFile, filePath),
		logging.F(logging.FieldCount, len(records)))
	return records, nil
}
