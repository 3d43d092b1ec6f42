package extract

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	expensesSectionStart = "Allowable Business Expenses"
	expensesSectionEnd   = "TOTAL BUSINESS EXPENSES"
)

// expenseLine requires a description followed by a currency-prefixed
// amount with optional thousands separators. Lines without a $-amount
// are dropped entirely, never retained as zero.
var expenseLine = regexp.MustCompile(`^(.+?)\s+\$(\d{1,3}(?:,\d{3})*(?:\.\d{2})?)`)

// ParseProfitLoss extracts the allowable-business-expenses section of a
// profit & loss statement from OCR text, returning the (category, amount)
// pairs in document order.
func ParseProfitLoss(text string) ([]ExpenseEntry, error) {
	var entries []ExpenseEntry
	inExpenses := false

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)

		if strings.Contains(line, expensesSectionStart) {
			inExpenses = true
			continue
		}
		if strings.Contains(line, expensesSectionEnd) {
			inExpenses = false
			continue
		}
		if !inExpenses || line == "" {
			continue
		}

		m := expenseLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		raw := strings.ReplaceAll(m[2], ",", "")
		amount, err := decimal.NewFromString(raw)
		if err != nil {
			continue
		}

		entries = append(entries, ExpenseEntry{
			Category: strings.TrimSpace(m[1]),
			Amount:   amount,
		})
	}

	if len(entries) == 0 {
		return nil, ErrNoRecords
	}
	return entries, nil
}
