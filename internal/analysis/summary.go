package analysis

import (
	"errors"

	"fjacquet/statement-analyzer/internal/models"
	"fjacquet/statement-analyzer/internal/parsererror"

	"github.com/shopspring/decimal"
)

// Summary is the full statistical picture of a record set, as printed by the
// analyze command and served by the HTTP API.
type Summary struct {
	Count      int             `json:"count"`
	Spent      decimal.Decimal `json:"spent"`
	Received   decimal.Decimal `json:"received"`
	Net        decimal.Decimal `json:"net"`
	MaxDebit   *Extreme        `json:"max_DR,omitempty"`
	MaxCredit  *Extreme        `json:"max_CR,omitempty"`
	TopDebits  []Ranked        `json:"top_DR"`
	TopCredits []Ranked        `json:"top_CR"`
	Monthly    *MonthlyTotal   `json:"monthly,omitempty"`
	Months     []MonthlyTotal  `json:"months"`

	// MonthErr is set when the requested month could not be parsed; Monthly
	// is nil in that case.
	MonthErr error `json:"-"`
}

// Summarize computes every statistic in one call. The top listings hold at
// most topN entries each, none when topN is not positive. An invalid month
// does not fail the summary; it is reported through MonthErr.
func Summarize(records []models.Record, cols models.Columns, topN int, month string) Summary {
	s := Summary{
		Count:      len(records),
		Spent:      Spent(records, cols),
		Received:   Received(records, cols),
		TopDebits:  TopDebits(records, topN, cols),
		TopCredits: TopCredits(records, topN, cols),
		Months:     MonthlyBreakdown(records, cols),
	}
	s.Net = s.Received.Sub(s.Spent)

	if maxDR, err := MaxDebit(records, cols); err == nil {
		s.MaxDebit = &maxDR
	}
	if maxCR, err := MaxCredit(records, cols); err == nil {
		s.MaxCredit = &maxCR
	}

	monthly, err := MonthlyTotals(records, cols, month)
	if err != nil {
		s.MonthErr = err
	} else {
		s.Monthly = &monthly
	}
	return s
}

// InvalidMonth reports whether the summary was asked for an unparseable month.
func (s Summary) InvalidMonth() bool {
	return errors.Is(s.MonthErr, parsererror.ErrInvalidMonth)
}
