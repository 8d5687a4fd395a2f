// Package batch merges several statement exports of one account, typically
// consecutive monthly downloads, into a single chronological record set.
package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"fjacquet/statement-analyzer/internal/dateutils"
	"fjacquet/statement-analyzer/internal/logging"
	"fjacquet/statement-analyzer/internal/models"
	"fjacquet/statement-analyzer/internal/normalizer"
)

// DateRange represents a date range with start and end dates
type DateRange struct {
	Start time.Time
	End   time.Time
}

// String returns the date range in the format "YYYY-MM-DD_YYYY-MM-DD"
func (dr DateRange) String() string {
	if dr.Start.IsZero() || dr.End.IsZero() {
		return ""
	}
	return fmt.Sprintf("%s_%s",
		dr.Start.Format("2006-01-02"),
		dr.End.Format("2006-01-02"))
}

// Merge combines this date range with another, returning the overall range
func (dr DateRange) Merge(other DateRange) DateRange {
	start := dr.Start
	end := dr.End

	if dr.Start.IsZero() {
		start = other.Start
	} else if !other.Start.IsZero() && other.Start.Before(start) {
		start = other.Start
	}

	if dr.End.IsZero() {
		end = other.End
	} else if !other.End.IsZero() && other.End.After(end) {
		end = other.End
	}

	return DateRange{Start: start, End: end}
}

// Result is the outcome of merging a set of statements.
type Result struct {
	Records []models.Record
	// Files lists the statements that were merged, Skipped those that
	// failed to normalize.
	Files      []string
	Skipped    []string
	DateRange  DateRange
	Duplicates int
}

// Aggregator normalizes and merges statement files.
type Aggregator struct {
	normalizer *normalizer.Normalizer
	logger     logging.Logger
}

// NewAggregator creates an Aggregator reading files with n.
func NewAggregator(n *normalizer.Normalizer, logger logging.Logger) *Aggregator {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Aggregator{normalizer: n, logger: logger}
}

// FindStatements returns the CSV files directly inside dir, sorted by name.
func FindStatements(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".csv") {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// Aggregate normalizes every file and merges the records in date order.
// Files that fail are skipped with a warning; it is an error only when no
// file could be read.
func (a *Aggregator) Aggregate(files []string) (Result, error) {
	var res Result
	for _, file := range files {
		records, err := a.normalizer.NormalizeFile(file)
		if err != nil {
			a.logger.WithError(err).Warn("Skipping statement", logging.F(logging.FieldFile, file))
			res.Skipped = append(res.Skipped, file)
			continue
		}
		res.Files = append(res.Files, file)
		res.Records = append(res.Records, records...)
	}
	if len(files) > 0 && len(res.Files) == 0 {
		return res, fmt.Errorf("none of the %d statements could be read", len(files))
	}

	cols := a.normalizer.Columns()
	sortChronologically(res.Records, cols.Date)
	res.Duplicates = a.countDuplicates(res.Records, cols)
	res.DateRange = CalculateDateRange(res.Records, cols.Date)

	a.logger.Info("Merged statements",
		logging.F(logging.FieldCount, len(res.Records)),
		logging.F("files", len(res.Files)),
		logging.F("skipped", len(res.Skipped)),
		logging.F("duplicates", res.Duplicates))
	return res, nil
}

// sortChronologically orders dated records by date, keeping the input order
// among equal dates. Undated records go last.
func sortChronologically(records []models.Record, dateColumn string) {
	type keyed struct {
		date time.Time
		ok   bool
	}
	keys := make([]keyed, len(records))
	idx := make([]int, len(records))
	for i, r := range records {
		t, ok := dateutils.ParseTransactionDate(r.Get(dateColumn))
		keys[i] = keyed{date: t, ok: ok}
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool {
		ki, kj := keys[idx[i]], keys[idx[j]]
		if ki.ok && kj.ok {
			return ki.date.Before(kj.date)
		}
		return ki.ok && !kj.ok
	})

	sorted := make([]models.Record, len(records))
	for i, from := range idx {
		sorted[i] = records[from]
	}
	copy(records, sorted)
}

// countDuplicates logs records repeated across overlapping exports. They are
// kept, since two identical transactions on one day are legitimate.
func (a *Aggregator) countDuplicates(records []models.Record, cols models.Columns) int {
	seen := make(map[string]bool, len(records))
	count := 0
	for _, r := range records {
		key := strings.Join([]string{
			r.Get(cols.Date), r.Get(cols.Description), r.Get(cols.Debit), r.Get(cols.Credit), r.Get(cols.Balance),
		}, "\x1f")
		if seen[key] {
			count++
			a.logger.Warn("Potential duplicate transaction",
				logging.F("date", r.Get(cols.Date)),
				logging.F("description", r.Get(cols.Description)))
			continue
		}
		seen[key] = true
	}
	return count
}

// CalculateDateRange returns the earliest and latest parseable dates.
func CalculateDateRange(records []models.Record, dateColumn string) DateRange {
	var dr DateRange
	for _, r := range records {
		t, ok := dateutils.ParseTransactionDate(r.Get(dateColumn))
		if !ok {
			continue
		}
		dr = dr.Merge(DateRange{Start: t, End: t})
	}
	return dr
}

// OutputFilename names a merged file: {prefix}_{start}_{end}.json, or
// {prefix}.json when no record carried a date.
func OutputFilename(prefix string, dateRange DateRange) string {
	if prefix == "" {
		prefix = "statements"
	}
	if r := dateRange.String(); r != "" {
		return fmt.Sprintf("%s_%s.json", prefix, r)
	}
	return prefix + ".json"
}
