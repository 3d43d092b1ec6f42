package extract

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// payslipAmount matches an amount token: digits with an optional
// two-decimal fraction.
var payslipAmount = regexp.MustCompile(`\b(\d+(?:\.\d{2})?)\b`)

// earningsCategories is the whitelist of recognized earnings-category
// substrings. Lines whose cleaned label contains none of these are OCR
// noise and are discarded.
var earningsCategories = []string{
	"Basic Salary",
	"House Rent Allowances",
	"Medical Allowances",
	"Conveyance Allowances",
	"Special Allowances",
	"Other Allowances",
}

// ParsePayslip extracts the earnings section of a payslip from OCR text,
// returning a mapping from earnings category to amount.
//
// Lines are scanned sequentially with an "inside earnings section" flag,
// set by a line containing "Earnings" and cleared by one containing
// "Deductions". Inside the section, the last amount-shaped token on each
// line is the amount and the text before it is the category label. Later
// lines overwrite earlier ones sharing a cleaned label. A section
// delimiter resets the flag but keeps entries already collected.
func ParsePayslip(text string) (map[string]decimal.Decimal, error) {
	earnings := make(map[string]decimal.Decimal)
	inEarnings := false

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.Contains(line, "Earnings") {
			inEarnings = true
			continue
		}
		if strings.Contains(line, "Deductions") {
			inEarnings = false
			continue
		}
		if !inEarnings {
			continue
		}

		matches := payslipAmount.FindAllStringIndex(line, -1)
		if len(matches) == 0 {
			continue // no numeric token on this line
		}
		last := matches[len(matches)-1]

		amount, err := decimal.NewFromString(line[last[0]:last[1]])
		if err != nil {
			continue
		}

		category := cleanCategory(line[:last[0]])
		if !isRecognizedEarning(category) {
			continue
		}
		earnings[category] = amount
	}

	if len(earnings) == 0 {
		return nil, ErrNoRecords
	}
	return earnings, nil
}

// cleanCategory strips pipe characters left over from table rulings and
// collapses runs of whitespace.
func cleanCategory(category string) string {
	category = strings.ReplaceAll(category, "|", "")
	return strings.Join(strings.Fields(category), " ")
}

func isRecognizedEarning(category string) bool {
	for _, keyword := range earningsCategories {
		if strings.Contains(category, keyword) {
			return true
		}
	}
	return false
}
