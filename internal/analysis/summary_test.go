package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	s := Summarize(statement(), cols, 2, "Aug-2025")

	assert.Equal(t, 7, s.Count)
	assert.True(t, s.Net.Equal(s.Received.Sub(s.Spent)))
	require.NotNil(t, s.MaxDebit)
	assert.Equal(t, "RENT", s.MaxDebit.Description)
	require.NotNil(t, s.MaxCredit)
	assert.Equal(t, "SALARY", s.MaxCredit.Description)
	assert.Len(t, s.TopDebits, 2)
	assert.Len(t, s.TopCredits, 2)
	require.NotNil(t, s.Monthly)
	assert.Equal(t, "08-2025", s.Monthly.Month)
	assert.NoError(t, s.MonthErr)
	assert.False(t, s.InvalidMonth())
}

func TestSummarize_NonPositiveTopNListsNothing(t *testing.T) {
	for _, topN := range []int{0, -3} {
		s := Summarize(statement(), cols, topN, "")

		assert.Empty(t, s.TopDebits)
		assert.Empty(t, s.TopCredits)
		require.NotNil(t, s.MaxDebit)
		assert.Equal(t, "RENT", s.MaxDebit.Description)
	}
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil, cols, 0, "")

	assert.Equal(t, 0, s.Count)
	assert.Nil(t, s.MaxDebit)
	assert.Nil(t, s.MaxCredit)
	assert.Empty(t, s.TopDebits)
	require.NotNil(t, s.Monthly)
	assert.Equal(t, "ALL", s.Monthly.Month)
}

func TestSummarize_InvalidMonthOmitsMonthly(t *testing.T) {
	s := Summarize(statement(), cols, 20, "13-2025")

	assert.Nil(t, s.Monthly)
	assert.True(t, s.InvalidMonth())
	assert.Len(t, s.TopDebits, 3)
}
