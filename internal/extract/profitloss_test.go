package extract

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProfitLoss(t *testing.T) {
	text := `Profit & Loss Statement FY24
Allowable Business Expenses
Office Supplies $1,234.56
Travel $890.00
Rent and Utilities $12,000
No amount on this line
Software sub 49.99
TOTAL BUSINESS EXPENSES $14,124.56
Net Profit $80,000.00`

	entries, err := ParseProfitLoss(text)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "Office Supplies", entries[0].Category)
	assert.True(t, entries[0].Amount.Equal(decimal.RequireFromString("1234.56")))

	assert.Equal(t, "Travel", entries[1].Category)
	assert.True(t, entries[1].Amount.Equal(decimal.RequireFromString("890.00")))

	assert.Equal(t, "Rent and Utilities", entries[2].Category)
	assert.True(t, entries[2].Amount.Equal(decimal.NewFromInt(12000)))
}

func TestParseProfitLossOrderPreserved(t *testing.T) {
	text := `Allowable Business Expenses
Zebra Costs $3.00
Alpha Costs $1.00
TOTAL BUSINESS EXPENSES`

	entries, err := ParseProfitLoss(text)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Zebra Costs", entries[0].Category)
	assert.Equal(t, "Alpha Costs", entries[1].Category)
}

func TestParseProfitLossOutsideSectionIgnored(t *testing.T) {
	text := `Revenue $99,999.00
Allowable Business Expenses
Travel $10.00
TOTAL BUSINESS EXPENSES
Misc $5.00`

	entries, err := ParseProfitLoss(text)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Travel", entries[0].Category)
}

func TestParseProfitLossDropsUnmatchedLines(t *testing.T) {
	// A line without a $-prefixed amount is dropped, not kept as zero.
	text := `Allowable Business Expenses
Consulting Fees 500.00
TOTAL BUSINESS EXPENSES`

	_, err := ParseProfitLoss(text)
	assert.ErrorIs(t, err, ErrNoRecords)
}

func TestParseProfitLossEmpty(t *testing.T) {
	_, err := ParseProfitLoss("")
	assert.ErrorIs(t, err, ErrNoRecords)
}
