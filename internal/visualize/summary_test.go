package visualize

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/findoc-insights/internal/cluster"
	"github.com/FACorreiaa/findoc-insights/internal/extract"
	"github.com/FACorreiaa/findoc-insights/internal/paymentsfeed"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestEarningsDistribution(t *testing.T) {
	earnings := map[string]decimal.Decimal{
		"Basic Salary":       dec("500.00"),
		"Medical Allowances": dec("300.00"),
		"Broken OCR Row":     dec("0"),
	}

	series := EarningsDistribution(earnings)
	require.Len(t, series, 2)
	assert.Equal(t, "Basic Salary", series[0].Category)
	assert.Equal(t, "Medical Allowances", series[1].Category)
}

func TestExpenseDistributionGroupsInOrder(t *testing.T) {
	entries := []extract.ExpenseEntry{
		{Category: "Travel", Amount: dec("100")},
		{Category: "Office Supplies", Amount: dec("50")},
		{Category: "Travel", Amount: dec("25")},
	}

	series := ExpenseDistribution(entries)
	require.Len(t, series, 2)
	assert.Equal(t, "Travel", series[0].Category)
	assert.True(t, series[0].Total.Equal(dec("125")))
	assert.Equal(t, "Office Supplies", series[1].Category)
}

func TestInvoiceTotalsCoercion(t *testing.T) {
	items := []extract.InvoiceLineItem{
		{Description: "Widget A", Quantity: "10", UnitPrice: "5.00", Total: "50.00"},
		{Description: "Bad Row", Quantity: "ten", UnitPrice: "?", Total: "fifty"},
		{Description: "Widget A", Quantity: "2", UnitPrice: "5.00", Total: "10.00"},
	}

	series := InvoiceTotals(items)
	require.Len(t, series, 1)
	assert.Equal(t, "Widget A", series[0].Category)
	assert.True(t, series[0].Total.Equal(dec("60.00")))
}

func TestSpendingByCategory(t *testing.T) {
	txs := []extract.BankTransaction{
		{Category: "Food", Debit: dec("450")},
		{Category: "Food", Debit: dec("150")},
		{Category: "Salary", Credit: dec("52000")}, // net negative, excluded
		{Category: "other", Debit: dec("999")},     // uncategorized, excluded
		{Category: "Transport", Debit: dec("300"), Credit: dec("100")},
	}

	series := SpendingByCategory(txs)
	require.Len(t, series, 2)
	assert.Equal(t, "Food", series[0].Category)
	assert.True(t, series[0].Total.Equal(dec("600")))
	assert.Equal(t, "Transport", series[1].Category)
	assert.True(t, series[1].Total.Equal(dec("200")))
}

// Conservation: included plus excluded aggregates equal the total net of
// all categorized transactions.
func TestSpendingByCategoryConservation(t *testing.T) {
	txs := []extract.BankTransaction{
		{Category: "Food", Debit: dec("450")},
		{Category: "Salary", Credit: dec("52000")},
		{Category: "Transport", Debit: dec("120")},
		{Category: "other", Debit: dec("77")},
		{Category: "Loan Payments", Debit: dec("100"), Credit: dec("100")},
	}

	included := SpendingByCategory(txs)

	includedSum := decimal.Zero
	includedSet := map[string]bool{}
	for _, ct := range included {
		includedSum = includedSum.Add(ct.Total)
		includedSet[ct.Category] = true
	}

	// Reconstruct the excluded aggregates (categorized, non-positive).
	excludedSum := decimal.Zero
	totalSum := decimal.Zero
	perCategory := map[string]decimal.Decimal{}
	for _, tx := range txs {
		if tx.Category == "other" {
			continue
		}
		totalSum = totalSum.Add(tx.Net())
		cur, ok := perCategory[tx.Category]
		if !ok {
			cur = decimal.Zero
		}
		perCategory[tx.Category] = cur.Add(tx.Net())
	}
	for category, total := range perCategory {
		if !includedSet[category] {
			excludedSum = excludedSum.Add(total)
		}
	}

	assert.True(t, includedSum.Add(excludedSum).Equal(totalSum),
		"included %s + excluded %s != total %s", includedSum, excludedSum, totalSum)
}

func TestTierCounts(t *testing.T) {
	assignments := []cluster.Assignment{
		{Tier: 0}, {Tier: 0}, {Tier: 2}, {Tier: 1}, {Tier: 0},
	}

	counts := TierCounts(assignments)
	require.Len(t, counts, 3)
	assert.Equal(t, TierCount{Tier: 0, Label: "Cluster 0: Low Amount", Count: 3}, counts[0])
	assert.Equal(t, TierCount{Tier: 1, Label: "Cluster 1: Medium Amount", Count: 1}, counts[1])
	assert.Equal(t, TierCount{Tier: 2, Label: "Cluster 2: High Amount", Count: 1}, counts[2])
}

func TestTierCountsOmitsEmptyTiers(t *testing.T) {
	counts := TierCounts([]cluster.Assignment{{Tier: 2}})
	require.Len(t, counts, 1)
	assert.Equal(t, 2, counts[0].Tier)
}

func TestPaymentModeTotals(t *testing.T) {
	date := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	records := []paymentsfeed.Record{
		{TransactionDate: date, PaymentMode: "UPI", Amount: dec("450")},
		{TransactionDate: date, PaymentMode: "NEFT", Amount: dec("12000")},
		{TransactionDate: date, PaymentMode: "UPI", Amount: dec("50")},
	}

	series := PaymentModeTotals(records)
	require.Len(t, series, 2)
	assert.Equal(t, "NEFT", series[0].Category)
	assert.Equal(t, "UPI", series[1].Category)
	assert.True(t, series[1].Total.Equal(dec("500")))
}

func TestEmptyInputs(t *testing.T) {
	assert.Empty(t, EarningsDistribution(nil))
	assert.Empty(t, ExpenseDistribution(nil))
	assert.Empty(t, InvoiceTotals(nil))
	assert.Empty(t, SpendingByCategory(nil))
	assert.Empty(t, TierCounts(nil))
	assert.Empty(t, PaymentModeTotals(nil))
}
