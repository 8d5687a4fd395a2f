package analysis

import (
	"sort"
	"strings"

	"fjacquet/statement-analyzer/internal/currencyutils"
	"fjacquet/statement-analyzer/internal/dateutils"
	"fjacquet/statement-analyzer/internal/models"

	"github.com/shopspring/decimal"
)

// MonthlyTotal holds the debit and credit sums of one month, or of the whole
// record set when Month is models.MonthAll.
type MonthlyTotal struct {
	Month       string          `json:"month"`
	TotalDebit  decimal.Decimal `json:"total_DR"`
	TotalCredit decimal.Decimal `json:"total_CR"`
}

// MonthlyTotals sums debits and credits of the records dated within the
// month named by value. An empty value returns the grand totals under the
// month "ALL"; whitespace alone is not a month. Records whose date is missing or unreadable are skipped. An
// unrecognised month returns a *parsererror.InvalidMonthError.
func MonthlyTotals(records []models.Record, cols models.Columns, value string) (MonthlyTotal, error) {
	if value == "" {
		return MonthlyTotal{
			Month:       models.MonthAll,
			TotalDebit:  Spent(records, cols),
			TotalCredit: Received(records, cols),
		}, nil
	}

	month, err := dateutils.ParseMonth(value)
	if err != nil {
		return MonthlyTotal{}, err
	}

	total := MonthlyTotal{
		Month:       month.String(),
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
	}
	for _, r := range records {
		raw := strings.TrimSpace(r.Get(cols.Date))
		if raw == "" {
			continue
		}
		date, ok := dateutils.ParseTransactionDate(raw)
		if !ok || !month.Contains(date) {
			continue
		}
		total.TotalDebit = total.TotalDebit.Add(currencyutils.ParseAmount(r.Get(cols.Debit)))
		total.TotalCredit = total.TotalCredit.Add(currencyutils.ParseAmount(r.Get(cols.Credit)))
	}
	return total, nil
}

// MonthlyBreakdown groups every dated record by calendar month and returns
// one total per month in chronological order.
func MonthlyBreakdown(records []models.Record, cols models.Columns) []MonthlyTotal {
	byMonth := make(map[dateutils.MonthKey]*MonthlyTotal)
	var order []dateutils.MonthKey
	for _, r := range records {
		date, ok := dateutils.ParseTransactionDate(r.Get(cols.Date))
		if !ok {
			continue
		}
		key := dateutils.MonthOf(date)
		total, seen := byMonth[key]
		if !seen {
			total = &MonthlyTotal{Month: key.String(), TotalDebit: decimal.Zero, TotalCredit: decimal.Zero}
			byMonth[key] = total
			order = append(order, key)
		}
		total.TotalDebit = total.TotalDebit.Add(currencyutils.ParseAmount(r.Get(cols.Debit)))
		total.TotalCredit = total.TotalCredit.Add(currencyutils.ParseAmount(r.Get(cols.Credit)))
	}

	sortMonthKeys(order)
	out := make([]MonthlyTotal, 0, len(order))
	for _, k := range order {
		out = append(out, *byMonth[k])
	}
	return out
}

func sortMonthKeys(keys []dateutils.MonthKey) {
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Year != keys[j].Year {
			return keys[i].Year < keys[j].Year
		}
		return keys[i].Month < keys[j].Month
	})
}
