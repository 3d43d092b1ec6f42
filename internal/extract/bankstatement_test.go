package extract

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/findoc-insights/internal/categorize"
)

func statementRows() [][]string {
	return [][]string{
		{"", "", "", ""}, // padding row from table detection
		{"Date", "Description", "DR", "CR"},
		{"01/03", "UPI/SWIGGY/ORDER-99", "450.00", ""},
		{"02/03", "SALARY CREDIT MARCH", "", "52,000.00"},
		{"03/03", "ATM WDL BRANCH 402", "2000", ""},
		{"", "", "", ""},
		{"04/03", "CHQ DEP MR RAO", "", "not-a-number"},
	}
}

func TestParseBankStatement(t *testing.T) {
	txs, err := ParseBankStatement(statementRows(), categorize.Default())
	require.NoError(t, err)
	require.Len(t, txs, 4)

	swiggy := txs[0]
	assert.Equal(t, "UPI/SWIGGY/ORDER-99", swiggy.Description)
	assert.Equal(t, "upiswiggyorder99", swiggy.CleanedDescription)
	assert.Equal(t, "Food", swiggy.Category)
	assert.True(t, swiggy.Debit.Equal(decimal.RequireFromString("450.00")))
	assert.True(t, swiggy.Credit.IsZero())

	salary := txs[1]
	assert.Equal(t, "Salary", salary.Category)
	assert.True(t, salary.Credit.Equal(decimal.RequireFromString("52000.00")))
	assert.True(t, salary.Net().Equal(decimal.RequireFromString("-52000.00")))

	atm := txs[2]
	assert.Equal(t, "ATM Withdrawals", atm.Category)
	assert.True(t, atm.Net().Equal(decimal.NewFromInt(2000)))

	// Non-numeric credit coerces to zero, the row itself survives.
	cheque := txs[3]
	assert.True(t, cheque.Credit.IsZero())
	assert.Equal(t, "not-a-number", cheque.CreditRaw)
}

func TestParseBankStatementDropsEmptyRowsAndColumns(t *testing.T) {
	rows := [][]string{
		{"Description", "", "DR"},
		{"fuel station hp", "", "300.00"},
		{"", "", ""},
	}

	txs, err := ParseBankStatement(rows, categorize.Default())
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, "Transport", txs[0].Category)
}

func TestParseBankStatementMissingDescriptionColumn(t *testing.T) {
	rows := [][]string{
		{"Date", "DR", "CR"},
		{"01/03", "10.00", ""},
	}

	_, err := ParseBankStatement(rows, categorize.Default())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingColumns)
}

func TestParseBankStatementNoRecords(t *testing.T) {
	t.Run("no rows", func(t *testing.T) {
		_, err := ParseBankStatement(nil, categorize.Default())
		assert.ErrorIs(t, err, ErrNoRecords)
	})

	t.Run("header only", func(t *testing.T) {
		_, err := ParseBankStatement([][]string{{"Description", "DR", "CR"}}, categorize.Default())
		assert.ErrorIs(t, err, ErrNoRecords)
	})

	t.Run("all descriptions empty", func(t *testing.T) {
		rows := [][]string{
			{"Description", "DR"},
			{"!!!", "10.00"}, // cleans to the empty string
		}
		_, err := ParseBankStatement(rows, categorize.Default())
		assert.ErrorIs(t, err, ErrNoRecords)
	})
}

func TestParseBankStatementUncategorizedKept(t *testing.T) {
	rows := [][]string{
		{"Description", "DR"},
		{"zzqx mystery", "10.00"},
	}

	txs, err := ParseBankStatement(rows, categorize.Default())
	require.NoError(t, err)
	require.Len(t, txs, 1)
	// "other" rows stay in the base table; exclusion happens in the
	// spending summarizer, not here.
	assert.Equal(t, categorize.Uncategorized, txs[0].Category)
}
