// Package analysis computes the aggregate statistics of a statement: totals,
// the largest transactions and per-month sums. Every function is a pure scan
// over the records; amounts are read with the lenient parser so blank and
// malformed cells count as zero.
package analysis

import (
	"sort"

	"fjacquet/statement-analyzer/internal/currencyutils"
	"fjacquet/statement-analyzer/internal/models"
	"fjacquet/statement-analyzer/internal/parsererror"

	"github.com/shopspring/decimal"
)

// Extreme is the largest transaction on one side of the ledger.
type Extreme struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Record      models.Record   `json:"record"`
}

// Ranked is one entry of a top-N listing.
type Ranked struct {
	Rank        int             `json:"rank"`
	Date        string          `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Record      models.Record   `json:"-"`
}

func sumColumn(records []models.Record, column string) decimal.Decimal {
	total := decimal.Zero
	for _, r := range records {
		total = total.Add(currencyutils.ParseAmount(r.Get(column)))
	}
	return total
}

// Spent sums the debit column.
func Spent(records []models.Record, cols models.Columns) decimal.Decimal {
	return sumColumn(records, cols.Debit)
}

// Received sums the credit column.
func Received(records []models.Record, cols models.Columns) decimal.Decimal {
	return sumColumn(records, cols.Credit)
}

// Net returns received minus spent.
func Net(records []models.Record, cols models.Columns) decimal.Decimal {
	return Received(records, cols).Sub(Spent(records, cols))
}

func maxBy(records []models.Record, column, description string) (Extreme, error) {
	if len(records) == 0 {
		return Extreme{}, parsererror.ErrEmptyInput
	}
	best := 0
	bestAmount := currencyutils.ParseAmount(records[0].Get(column))
	for i := 1; i < len(records); i++ {
		amount := currencyutils.ParseAmount(records[i].Get(column))
		if amount.GreaterThan(bestAmount) {
			best, bestAmount = i, amount
		}
	}
	return Extreme{
		Amount:      bestAmount,
		Description: records[best].Get(description),
		Record:      records[best],
	}, nil
}

// MaxDebit returns the record with the largest debit amount. On ties the
// earliest record wins. An empty slice yields parsererror.ErrEmptyInput.
func MaxDebit(records []models.Record, cols models.Columns) (Extreme, error) {
	return maxBy(records, cols.Debit, cols.Description)
}

// MaxCredit is MaxDebit for the credit column.
func MaxCredit(records []models.Record, cols models.Columns) (Extreme, error) {
	return maxBy(records, cols.Credit, cols.Description)
}

func topBy(records []models.Record, n int, column string, cols models.Columns) []Ranked {
	type candidate struct {
		record models.Record
		amount decimal.Decimal
	}
	candidates := make([]candidate, 0, len(records))
	for _, r := range records {
		amount := currencyutils.ParseAmount(r.Get(column))
		if amount.IsPositive() {
			candidates = append(candidates, candidate{record: r, amount: amount})
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].amount.GreaterThan(candidates[j].amount)
	})

	if n < 0 {
		n = 0
	}
	if n > len(candidates) {
		n = len(candidates)
	}
	ranked := make([]Ranked, 0, n)
	for i, c := range candidates[:n] {
		ranked = append(ranked, Ranked{
			Rank:        i + 1,
			Date:        c.record.Get(cols.Date),
			Amount:      c.amount,
			Description: c.record.Get(cols.Description),
			Record:      c.record,
		})
	}
	return ranked
}

// TopDebits returns up to n records with a strictly positive debit, largest
// first. Equal amounts keep their input order.
func TopDebits(records []models.Record, n int, cols models.Columns) []Ranked {
	return topBy(records, n, cols.Debit, cols)
}

// TopCredits is TopDebits for the credit column.
func TopCredits(records []models.Record, n int, cols models.Columns) []Ranked {
	return topBy(records, n, cols.Credit, cols)
}
