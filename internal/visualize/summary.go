// Package visualize aggregates categorized and clustered records into the
// numeric series charts are built from. It performs no rendering; an
// external renderer consumes the series this package returns.
//
// One documented filter applies throughout: categories or tiers whose
// aggregate amount is zero or negative are excluded from pie/bar series.
package visualize

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/FACorreiaa/findoc-insights/internal/categorize"
	"github.com/FACorreiaa/findoc-insights/internal/cluster"
	"github.com/FACorreiaa/findoc-insights/internal/extract"
	"github.com/FACorreiaa/findoc-insights/internal/paymentsfeed"
)

// CategoryTotal is one labeled slice of a pie/bar series.
type CategoryTotal struct {
	Category string
	Total    decimal.Decimal
}

// TierCount is the transaction count for one magnitude tier.
type TierCount struct {
	Tier  int
	Label string
	Count int
}

// tierLabels are the descriptive cluster labels, indexed by tier.
var tierLabels = []string{
	"Cluster 0: Low Amount",
	"Cluster 1: Medium Amount",
	"Cluster 2: High Amount",
}

// EarningsDistribution turns payslip earnings into a chart series sorted
// descending by amount. Non-positive entries are excluded.
func EarningsDistribution(earnings map[string]decimal.Decimal) []CategoryTotal {
	totals := make([]CategoryTotal, 0, len(earnings))
	for category, amount := range earnings {
		totals = append(totals, CategoryTotal{Category: category, Total: amount})
	}
	sort.Slice(totals, func(a, b int) bool {
		if !totals[a].Total.Equal(totals[b].Total) {
			return totals[a].Total.GreaterThan(totals[b].Total)
		}
		return totals[a].Category < totals[b].Category
	})
	return filterPositive(totals)
}

// ExpenseDistribution sums profit & loss entries per category, keeping
// first-occurrence order, and excludes non-positive totals.
func ExpenseDistribution(entries []extract.ExpenseEntry) []CategoryTotal {
	return filterPositive(groupInOrder(entries, func(e extract.ExpenseEntry) (string, decimal.Decimal) {
		return e.Category, e.Amount
	}))
}

// InvoiceTotals coerces quantity and total for each line item, drops rows
// where either is non-numeric, and sums totals per description. This is
// where the invoice parser's deferred validation happens.
func InvoiceTotals(items []extract.InvoiceLineItem) []CategoryTotal {
	valid := make([]extract.InvoiceLineItem, 0, len(items))
	for _, li := range items {
		if _, _, ok := li.QuantityTotal(); ok {
			valid = append(valid, li)
		}
	}
	return filterPositive(groupInOrder(valid, func(li extract.InvoiceLineItem) (string, decimal.Decimal) {
		_, total, _ := li.QuantityTotal()
		return li.Description, total
	}))
}

// SpendingByCategory aggregates bank transactions into net spending per
// category (debit minus credit). Uncategorized transactions are excluded
// from spending analysis entirely; categories netting zero or negative
// (income-dominated) are excluded from the series.
func SpendingByCategory(txs []extract.BankTransaction) []CategoryTotal {
	spending := make([]extract.BankTransaction, 0, len(txs))
	for _, tx := range txs {
		if tx.Category == categorize.Uncategorized {
			continue
		}
		spending = append(spending, tx)
	}

	totals := groupInOrder(spending, func(tx extract.BankTransaction) (string, decimal.Decimal) {
		return tx.Category, tx.Net()
	})
	sort.Slice(totals, func(a, b int) bool {
		if !totals[a].Total.Equal(totals[b].Total) {
			return totals[a].Total.GreaterThan(totals[b].Total)
		}
		return totals[a].Category < totals[b].Category
	})
	return filterPositive(totals)
}

// TierCounts counts transactions per magnitude tier, in tier order.
// Tiers with no transactions are omitted.
func TierCounts(assignments []cluster.Assignment) []TierCount {
	counts := make(map[int]int)
	for _, a := range assignments {
		counts[a.Tier]++
	}

	tiers := make([]int, 0, len(counts))
	for tier := range counts {
		tiers = append(tiers, tier)
	}
	sort.Ints(tiers)

	out := make([]TierCount, 0, len(tiers))
	for _, tier := range tiers {
		out = append(out, TierCount{
			Tier:  tier,
			Label: TierLabel(tier),
			Count: counts[tier],
		})
	}
	return out
}

// TierLabel returns the descriptive label for a tier.
func TierLabel(tier int) string {
	if tier >= 0 && tier < len(tierLabels) {
		return tierLabels[tier]
	}
	return fmt.Sprintf("Cluster %d", tier)
}

// PaymentModeTotals sums feed payments per payment mode, sorted descending
// by amount. Non-positive modes are excluded like every other series.
func PaymentModeTotals(records []paymentsfeed.Record) []CategoryTotal {
	totals := groupInOrder(records, func(r paymentsfeed.Record) (string, decimal.Decimal) {
		return r.PaymentMode, r.Amount
	})
	sort.Slice(totals, func(a, b int) bool {
		if !totals[a].Total.Equal(totals[b].Total) {
			return totals[a].Total.GreaterThan(totals[b].Total)
		}
		return totals[a].Category < totals[b].Category
	})
	return filterPositive(totals)
}

// groupInOrder sums values per key, keeping the order keys first appear.
func groupInOrder[T any](items []T, keyValue func(T) (string, decimal.Decimal)) []CategoryTotal {
	index := make(map[string]int)
	var totals []CategoryTotal
	for _, item := range items {
		key, value := keyValue(item)
		if i, ok := index[key]; ok {
			totals[i].Total = totals[i].Total.Add(value)
			continue
		}
		index[key] = len(totals)
		totals = append(totals, CategoryTotal{Category: key, Total: value})
	}
	return totals
}

func filterPositive(totals []CategoryTotal) []CategoryTotal {
	out := totals[:0:0]
	for _, t := range totals {
		if t.Total.IsPositive() {
			out = append(out, t)
		}
	}
	return out
}
