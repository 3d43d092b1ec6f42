// Package projection converts extracted records into a uniform tabular
// structure for display and for downstream persistence. The CSV bytes are
// produced in memory; writing them anywhere durable is the caller's job.
package projection

import (
	"fmt"
	"sort"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"

	"github.com/FACorreiaa/findoc-insights/internal/cluster"
	"github.com/FACorreiaa/findoc-insights/internal/extract"
)

// Table is the uniform row-oriented projection of one document's records.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Projection bundles the display table with its CSV rendering.
type Projection struct {
	Table Table
	CSV   []byte
}

type payslipRow struct {
	Category string `csv:"Category"`
	Amount   string `csv:"Amount"`
}

// Payslip projects extracted earnings sorted by category name so the
// output is deterministic despite the map input.
func Payslip(earnings map[string]decimal.Decimal) (*Projection, error) {
	categories := make([]string, 0, len(earnings))
	for c := range earnings {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	rows := make([]payslipRow, 0, len(categories))
	for _, c := range categories {
		rows = append(rows, payslipRow{Category: c, Amount: earnings[c].String()})
	}
	return project(rows, []string{"Category", "Amount"}, func(r payslipRow) []string {
		return []string{r.Category, r.Amount}
	})
}

type expenseRow struct {
	Category string `csv:"Allowable Business Expenses"`
	Amount   string `csv:"Amount"`
}

// ProfitLoss projects expense entries in document order.
func ProfitLoss(entries []extract.ExpenseEntry) (*Projection, error) {
	rows := make([]expenseRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, expenseRow{Category: e.Category, Amount: e.Amount.String()})
	}
	return project(rows, []string{"Allowable Business Expenses", "Amount"}, func(r expenseRow) []string {
		return []string{r.Category, r.Amount}
	})
}

type invoiceRow struct {
	Description string `csv:"Description"`
	Qty         string `csv:"Qty"`
	Price       string `csv:"Price"`
	Total       string `csv:"Total"`
}

// Invoice projects invoice line items with their raw numeric tokens; the
// visualization step owns coercion.
func Invoice(items []extract.InvoiceLineItem) (*Projection, error) {
	rows := make([]invoiceRow, 0, len(items))
	for _, li := range items {
		rows = append(rows, invoiceRow{
			Description: li.Description,
			Qty:         li.Quantity,
			Price:       li.UnitPrice,
			Total:       li.Total,
		})
	}
	return project(rows, []string{"Description", "Qty", "Price", "Total"}, func(r invoiceRow) []string {
		return []string{r.Description, r.Qty, r.Price, r.Total}
	})
}

type bankRow struct {
	Description        string `csv:"Description"`
	Debit              string `csv:"DR"`
	Credit             string `csv:"CR"`
	CleanedDescription string `csv:"Cleaned_Description"`
	Category           string `csv:"Category"`
}

// BankStatement projects the categorized transaction table, uncategorized
// rows included.
func BankStatement(txs []extract.BankTransaction) (*Projection, error) {
	rows := make([]bankRow, 0, len(txs))
	for _, tx := range txs {
		rows = append(rows, bankRow{
			Description:        tx.Description,
			Debit:              tx.DebitRaw,
			Credit:             tx.CreditRaw,
			CleanedDescription: tx.CleanedDescription,
			Category:           tx.Category,
		})
	}
	return project(rows, []string{"Description", "DR", "CR", "Cleaned_Description", "Category"}, func(r bankRow) []string {
		return []string{r.Description, r.Debit, r.Credit, r.CleanedDescription, r.Category}
	})
}

type clusteredRow struct {
	TransactionID string `csv:"Transaction ID"`
	Description   string `csv:"Description"`
	Amount        string `csv:"Amount"`
	Tier          string `csv:"Cluster"`
}

// Clustered projects tier assignments in input order.
func Clustered(assignments []cluster.Assignment) (*Projection, error) {
	rows := make([]clusteredRow, 0, len(assignments))
	for _, a := range assignments {
		rows = append(rows, clusteredRow{
			TransactionID: a.TransactionID,
			Description:   a.Description,
			Amount:        a.Amount.String(),
			Tier:          fmt.Sprintf("%d", a.Tier),
		})
	}
	return project(rows, []string{"Transaction ID", "Description", "Amount", "Cluster"}, func(r clusteredRow) []string {
		return []string{r.TransactionID, r.Description, r.Amount, r.Tier}
	})
}

// project marshals the typed rows to CSV and mirrors them into a Table.
func project[T any](rows []T, headers []string, cells func(T) []string) (*Projection, error) {
	csvBytes, err := gocsv.MarshalBytes(&rows)
	if err != nil {
		return nil, fmt.Errorf("projection: marshal csv: %w", err)
	}

	table := Table{Headers: headers, Rows: make([][]string, 0, len(rows))}
	for _, r := range rows {
		table.Rows = append(table.Rows, cells(r))
	}
	return &Projection{Table: table, CSV: csvBytes}, nil
}
