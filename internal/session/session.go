// Package session holds the record set the chat and HTTP layers work on.
// The set is replaced as a whole on every upload; readers always see a
// complete snapshot.
package session

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"fjacquet/statement-analyzer/internal/common"
	"fjacquet/statement-analyzer/internal/logging"
	"fjacquet/statement-analyzer/internal/models"
	"fjacquet/statement-analyzer/internal/normalizer"

	"github.com/google/uuid"
)

// Format is the encoding of an uploaded statement.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// DetectFormat infers the format from a file name: ".json" is JSON,
// anything else is read as CSV.
func DetectFormat(name string) Format {
	if strings.EqualFold(filepath.Ext(name), ".json") {
		return FormatJSON
	}
	return FormatCSV
}

// Dataset describes the currently loaded record set.
type Dataset struct {
	ID       string    `json:"datasetId"`
	Source   string    `json:"source"`
	Count    int       `json:"count"`
	LoadedAt time.Time `json:"loadedAt"`
}

// Session is safe for concurrent use.
type Session struct {
	normalizer *normalizer.Normalizer
	logger     logging.Logger

	mu      sync.RWMutex
	records []models.Record
	dataset Dataset
}

// New creates an empty session that reads CSV uploads with n. A nil n uses
// the default column layout and a comma delimiter.
func New(n *normalizer.Normalizer, logger logging.Logger) *Session {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	if n == nil {
		n = normalizer.New(models.Columns{}, common.DefaultCSVOptions(), logger)
	}
	return &Session{normalizer: n, logger: logger}
}

// Replace swaps in a new record set and returns its dataset description.
func (s *Session) Replace(records []models.Record, source string) Dataset {
	snapshot := make([]models.Record, len(records))
	copy(snapshot, records)

	ds := Dataset{
		ID:       uuid.NewString(),
		Source:   source,
		Count:    len(snapshot),
		LoadedAt: time.Now(),
	}

	s.mu.Lock()
	s.records = snapshot
	s.dataset = ds
	s.mu.Unlock()

	s.logger.Info("Replaced session records",
		logging.F(logging.FieldDatasetID, ds.ID),
		logging.F(logging.FieldFile, source),
		logging.F(logging.FieldCount, ds.Count))
	return ds
}

// Records returns the current snapshot. Callers must not modify it.
func (s *Session) Records() []models.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.records
}

// Dataset returns the description of the current record set.
func (s *Session) Dataset() Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dataset
}

// Empty reports whether no records are loaded.
func (s *Session) Empty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records) == 0
}

// Columns returns the column layout uploads are normalized with.
func (s *Session) Columns() models.Columns {
	return s.normalizer.Columns()
}

// Load reads a CSV or JSON statement from disk and replaces the session.
func (s *Session) Load(path string) (Dataset, error) {
	var (
		records []models.Record
		err     error
	)
	switch DetectFormat(path) {
	case FormatJSON:
		records, err = common.ReadRecordsJSONFile(path)
	default:
		records, err = s.normalizer.NormalizeFile(path)
	}
	if err != nil {
		return Dataset{}, err
	}
	return s.Replace(records, path), nil
}

// LoadReader reads an uploaded statement named name from r and replaces the
// session. On error the previous record set is kept.
func (s *Session) LoadReader(r io.Reader, name string) (Dataset, error) {
	var (
		records []models.Record
		err     error
	)
	switch DetectFormat(name) {
	case FormatJSON:
		records, err = common.ReadRecordsJSON(r)
	default:
		records, err = s.normalizer.NormalizeReader(r)
	}
	if err != nil {
		s.logger.WithError(err).Warn("Upload rejected", logging.F(logging.FieldFile, name))
		return Dataset{}, err
	}
	return s.Replace(records, name), nil
}

// StatusMessage renders the confirmation shown after a successful load.
func StatusMessage(ds Dataset) string {
	return fmt.Sprintf("✅ Loaded %d transactions successfully!", ds.Count)
}
