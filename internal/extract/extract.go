// Package extract converts raw OCR text and PDF table rows into typed
// financial records. Each supported document family (payslip, profit &
// loss, invoice, bank statement) has its own line parser built on
// section-delimiter detection and regular-expression field extraction.
//
// Per-line failures (unmatched pattern, non-numeric amount) are recovered
// by dropping the offending line; only a parse that yields zero records
// surfaces an error.
package extract

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ErrNoRecords indicates the input text or table produced no records at all.
var ErrNoRecords = errors.New("extract: no records found")

// ErrMissingColumns indicates a required column is absent from tabular input.
var ErrMissingColumns = errors.New("extract: required columns missing")

// ExpenseEntry is one allowable-business-expense row from a profit & loss
// statement.
type ExpenseEntry struct {
	Category string
	Amount   decimal.Decimal
}

// InvoiceLineItem is one parsed invoice row. The three numeric fields are
// kept as raw tokens at parse time; coercion and row-dropping happen in the
// visualization step, matching where the validation responsibility sits.
type InvoiceLineItem struct {
	Description string
	Quantity    string
	UnitPrice   string
	Total       string
}

// QuantityTotal coerces the quantity and total tokens to decimals.
// ok is false when either token is non-numeric; such rows are dropped
// downstream rather than retained as zero.
func (li InvoiceLineItem) QuantityTotal() (quantity, total decimal.Decimal, ok bool) {
	quantity, err := decimal.NewFromString(li.Quantity)
	if err != nil {
		return decimal.Zero, decimal.Zero, false
	}
	total, err = decimal.NewFromString(li.Total)
	if err != nil {
		return decimal.Zero, decimal.Zero, false
	}
	return quantity, total, true
}

// BankTransaction is one cleaned, categorized bank statement row.
// Debit and Credit hold the coerced amounts with non-numeric cells
// forced to zero; the raw cell text is preserved alongside.
type BankTransaction struct {
	Description        string
	CleanedDescription string
	Category           string
	DebitRaw           string
	CreditRaw          string
	Debit              decimal.Decimal
	Credit             decimal.Decimal
}

// Net returns debit minus credit: positive for money out.
func (t BankTransaction) Net() decimal.Decimal {
	return t.Debit.Sub(t.Credit)
}
