package analysis

import (
	"errors"
	"testing"

	"fjacquet/statement-analyzer/internal/models"
	"fjacquet/statement-analyzer/internal/parsererror"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	cols   = models.DefaultColumns()
	header = []string{"Tran Date", "CHQNO", "PARTICULARS", "DR", "CR", "BAL", "SOL"}
)

func rec(date, desc, dr, cr string) models.Record {
	return models.NewRecord(header, []string{date, "", desc, dr, cr, "", ""}, cols.Debit)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func statement() []models.Record {
	return []models.Record{
		rec("01-08-2025", "RENT", "15,000.00", ""),
		rec("02-08-2025", "SALARY", "", "80,000.00"),
		rec("05-08-2025", "SWIGGY", "  450.50", "-"),
		rec("03/09/2025", "REFUND", "-", "450.50"),
		rec("2025-09-10", "GROCERY", "1,200.00", ""),
		rec("", "INTEREST", "", "12.00"),
		rec("bad date", "FEE", "n/a", ""),
	}
}

func TestTotals_DebitAndCreditPlaceholders(t *testing.T) {
	records := []models.Record{rec("01-08-2025", "A", "100", ""), rec("02-08-2025", "B", "", "50")}

	assert.True(t, Spent(records, cols).Equal(dec("100")))
	assert.True(t, Received(records, cols).Equal(dec("50")))
	assert.True(t, Net(records, cols).Equal(dec("-50")))
}

func TestTotals_Statement(t *testing.T) {
	records := statement()

	assert.Equal(t, "16650.5", Spent(records, cols).String())
	assert.Equal(t, "80462.5", Received(records, cols).String())
	assert.True(t, Net(records, cols).Equal(Received(records, cols).Sub(Spent(records, cols))))
}

func TestTotals_OutOfRangeExponentCountsAsZero(t *testing.T) {
	records := []models.Record{
		rec("01-08-2025", "HUGE", "1e900000000", ""),
		rec("02-08-2025", "TINY", "", "1e-900000000"),
		rec("03-08-2025", "FEE", "5.00", ""),
	}

	assert.Equal(t, "5", Spent(records, cols).String())
	assert.True(t, Received(records, cols).IsZero())
	assert.Equal(t, "-5", Net(records, cols).String())

	maxDR, err := MaxDebit(records, cols)
	require.NoError(t, err)
	assert.Equal(t, "FEE", maxDR.Description)

	top := TopDebits(records, 5, cols)
	require.Len(t, top, 1)
	assert.Equal(t, "FEE", top[0].Description)

	total, err := MonthlyTotals(records, cols, "08-2025")
	require.NoError(t, err)
	assert.Equal(t, "5", total.TotalDebit.String())
}

func TestNet_Additive(t *testing.T) {
	records := statement()
	a, b := records[:3], records[3:]

	assert.True(t, Net(records, cols).Equal(Net(a, cols).Add(Net(b, cols))))
}

func TestTotals_Empty(t *testing.T) {
	assert.True(t, Spent(nil, cols).IsZero())
	assert.True(t, Received(nil, cols).IsZero())
	assert.True(t, Net(nil, cols).IsZero())
}

func TestMaxDebitAndCredit(t *testing.T) {
	maxDR, err := MaxDebit(statement(), cols)
	require.NoError(t, err)
	assert.Equal(t, "RENT", maxDR.Description)
	assert.True(t, maxDR.Amount.Equal(dec("15000")))

	maxCR, err := MaxCredit(statement(), cols)
	require.NoError(t, err)
	assert.Equal(t, "SALARY", maxCR.Description)
}

func TestMax_FirstOccurrenceWinsTies(t *testing.T) {
	records := []models.Record{
		rec("01-08-2025", "FIRST", "10", ""),
		rec("02-08-2025", "SECOND", "10", ""),
	}

	maxDR, err := MaxDebit(records, cols)
	require.NoError(t, err)
	assert.Equal(t, "FIRST", maxDR.Description)

	// All credits are zero: the first record is still returned.
	maxCR, err := MaxCredit(records, cols)
	require.NoError(t, err)
	assert.Equal(t, "FIRST", maxCR.Description)
	assert.True(t, maxCR.Amount.IsZero())
}

func TestMax_EmptyInput(t *testing.T) {
	_, err := MaxDebit(nil, cols)
	assert.True(t, errors.Is(err, parsererror.ErrEmptyInput))

	_, err = MaxCredit([]models.Record{}, cols)
	assert.True(t, errors.Is(err, parsererror.ErrEmptyInput))
}

func TestTopDebits(t *testing.T) {
	tests := []struct {
		name     string
		n        int
		expected []string
	}{
		{name: "fewer than available", n: 2, expected: []string{"RENT", "GROCERY"}},
		{name: "more than available", n: 20, expected: []string{"RENT", "GROCERY", "SWIGGY"}},
		{name: "zero", n: 0, expected: []string{}},
		{name: "negative", n: -1, expected: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			top := TopDebits(statement(), tt.n, cols)
			got := make([]string, 0, len(top))
			for i, r := range top {
				got = append(got, r.Description)
				assert.Equal(t, i+1, r.Rank)
				assert.True(t, r.Amount.IsPositive())
			}
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestTopCredits_StableOnTies(t *testing.T) {
	records := []models.Record{
		rec("01-08-2025", "A", "", "5"),
		rec("02-08-2025", "B", "", "9"),
		rec("03-08-2025", "C", "", "5"),
		rec("04-08-2025", "D", "", "0"),
	}

	top := TopCredits(records, 10, cols)
	require.Len(t, top, 3)
	assert.Equal(t, "B", top[0].Description)
	assert.Equal(t, "A", top[1].Description)
	assert.Equal(t, "C", top[2].Description)
	assert.Equal(t, "03-08-2025", top[2].Date)
}
