// Package matcher selects the transactions whose description mentions a
// keyword and computes how much was spent on (or received from) them.
package matcher

import (
	"strings"

	"fjacquet/statement-analyzer/internal/currencyutils"
	"fjacquet/statement-analyzer/internal/models"

	"github.com/shopspring/decimal"
)

// Kind tells which side of the ledger a matched transaction was counted on.
type Kind string

const (
	KindDebit  Kind = "DR"
	KindCredit Kind = "CR"
)

// Hit is one matched transaction.
type Hit struct {
	Date        string          `json:"date"`
	Description string          `json:"description"`
	Kind        Kind            `json:"kind"`
	Amount      decimal.Decimal `json:"amount"`
	Record      models.Record   `json:"-"`
}

// Result aggregates the matches of a keyword. Net is the debit total minus
// the credit total: positive means money went out.
type Result struct {
	Keyword     string          `json:"keyword"`
	Net         decimal.Decimal `json:"net"`
	TotalDebit  decimal.Decimal `json:"total_DR"`
	TotalCredit decimal.Decimal `json:"total_CR"`
	Matches     []Hit           `json:"matches"`
}

// Found reports whether any transaction contributed to the result.
func (r Result) Found() bool {
	return len(r.Matches) > 0
}

// Match scans records for a case-insensitive substring match of keyword in
// the description column. A record with a debit value counts as a debit even
// when its credit cell is also filled; otherwise a credit value makes it a
// credit. Records with neither are not listed. Matches keep input order.
func Match(records []models.Record, keyword string, cols models.Columns) Result {
	res := Result{
		Keyword:     keyword,
		Net:         decimal.Zero,
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
		Matches:     []Hit{},
	}
	needle := strings.ToLower(keyword)

	for _, r := range records {
		description := r.Get(cols.Description)
		if !strings.Contains(strings.ToLower(description), needle) {
			continue
		}

		m := Hit{
			Date:        r.Get(cols.Date),
			Description: description,
			Record:      r,
		}
		switch debit, credit := r.Get(cols.Debit), r.Get(cols.Credit); {
		case !currencyutils.IsPlaceholder(debit):
			m.Kind = KindDebit
			m.Amount = currencyutils.ParseAmount(debit)
			res.TotalDebit = res.TotalDebit.Add(m.Amount)
		case !currencyutils.IsPlaceholder(credit):
			m.Kind = KindCredit
			m.Amount = currencyutils.ParseAmount(credit)
			res.TotalCredit = res.TotalCredit.Add(m.Amount)
		default:
			continue
		}
		res.Matches = append(res.Matches, m)
	}

	res.Net = res.TotalDebit.Sub(res.TotalCredit)
	return res
}
