// Package dateutils parses the month specifiers accepted by the monthly
// aggregation and the transaction dates found in statement exports.
package dateutils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"fjacquet/statement-analyzer/internal/parsererror"
)

// MonthLayouts are tried in order against a normalized month specifier.
// Single-digit months are accepted.
var MonthLayouts = []string{
	"1-2006",       // 08-2025, 8-2025
	"Jan-2006",     // Aug-2025
	"January-2006", // August-2025
	"2006-1",       // 2025-08
}

// TransactionDateLayouts are tried in order before the regex fallback.
var TransactionDateLayouts = []string{
	"2-1-2006", // DD-MM-YYYY
	"2/1/2006", // DD/MM/YYYY
	"2006-1-2", // YYYY-MM-DD
}

var (
	dashVariants   = regexp.MustCompile(`[\x{2010}-\x{2015}]`)
	spacedHyphen   = regexp.MustCompile(`\s*-\s*`)
	whitespaceRuns = regexp.MustCompile(`\s+`)
	dayMonthYear   = regexp.MustCompile(`(\d{1,2})\D+(\d{1,2})\D+(\d{4})`)
)

// MonthKey identifies a calendar month.
type MonthKey struct {
	Year  int
	Month time.Month
}

// String renders the canonical "MM-YYYY" form.
func (k MonthKey) String() string {
	return fmt.Sprintf("%02d-%04d", int(k.Month), k.Year)
}

// Contains reports whether t falls inside the month.
func (k MonthKey) Contains(t time.Time) bool {
	return t.Year() == k.Year && t.Month() == k.Month
}

// MonthOf returns the key of the month t falls in.
func MonthOf(t time.Time) MonthKey {
	return MonthKey{Year: t.Year(), Month: t.Month()}
}

// NormalizeMonthValue trims the specifier and turns slashes and the Unicode
// dash variants into plain hyphens with no surrounding spaces.
func NormalizeMonthValue(value string) string {
	s := strings.TrimSpace(value)
	s = strings.ReplaceAll(s, "/", "-")
	s = dashVariants.ReplaceAllString(s, "-")
	return spacedHyphen.ReplaceAllString(s, "-")
}

// ParseMonth accepts "08-2025", "8/2025", "Aug-2025", "August-2025" or
// "2025-08" and returns the month they name. Anything else yields a
// *parsererror.InvalidMonthError.
func ParseMonth(value string) (MonthKey, error) {
	s := NormalizeMonthValue(value)
	for _, layout := range MonthLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return MonthOf(t), nil
		}
	}
	return MonthKey{}, &parsererror.InvalidMonthError{Value: value}
}

// CleanDateString trims a date cell and collapses inner whitespace.
func CleanDateString(dateStr string) string {
	return whitespaceRuns.ReplaceAllString(strings.TrimSpace(dateStr), " ")
}

// ParseTransactionDate parses a transaction date cell. The fixed layouts are
// tried first; failing those, the first "day sep month sep year" group in
// the string is used. ok is false when nothing yields a valid date.
func ParseTransactionDate(dateStr string) (time.Time, bool) {
	s := CleanDateString(dateStr)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range TransactionDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	m := dayMonthYear.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, false
	}
	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])
	return buildDate(year, month, day)
}

// buildDate rejects dates time.Date would silently normalize, such as 31-02.
func buildDate(year, month, day int) (time.Time, bool) {
	if year < 1 || month < 1 || month > 12 || day < 1 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day || int(t.Month()) != month || t.Year() != year {
		return time.Time{}, false
	}
	return t, true
}
