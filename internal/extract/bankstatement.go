package extract

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/FACorreiaa/findoc-insights/internal/categorize"
)

// Bank statement column headers. The first non-empty row of the extracted
// table is treated as the header row.
const (
	colDescription = "description"
	colDebit       = "dr"
	colCredit      = "cr"
)

// ParseBankStatement turns flattened PDF table rows into cleaned,
// categorized transactions. Rows and columns that are entirely empty are
// dropped first; the first surviving row must be a header naming a
// Description column (DR/CR columns are optional and default to zero).
// Each description is cleaned and run through the category table; rows
// with an empty cleaned description are dropped rather than kept as
// null-filled records.
func ParseBankStatement(rows [][]string, table *categorize.Table) ([]BankTransaction, error) {
	rows = dropEmpty(rows)
	if len(rows) < 2 {
		return nil, ErrNoRecords
	}

	header := rows[0]
	descIdx, debitIdx, creditIdx := -1, -1, -1
	for i, cell := range header {
		switch strings.ToLower(strings.TrimSpace(cell)) {
		case colDescription:
			descIdx = i
		case colDebit, "debit":
			debitIdx = i
		case colCredit, "credit":
			creditIdx = i
		}
	}
	if descIdx == -1 {
		return nil, fmt.Errorf("%w: no Description column in header %v", ErrMissingColumns, header)
	}

	var txs []BankTransaction
	for _, row := range rows[1:] {
		description := cell(row, descIdx)
		cleaned := categorize.CleanDescription(description)
		if cleaned == "" {
			continue
		}

		debitRaw := cell(row, debitIdx)
		creditRaw := cell(row, creditIdx)
		txs = append(txs, BankTransaction{
			Description:        description,
			CleanedDescription: cleaned,
			Category:           table.Categorize(cleaned),
			DebitRaw:           debitRaw,
			CreditRaw:          creditRaw,
			Debit:              coerceAmount(debitRaw),
			Credit:             coerceAmount(creditRaw),
		})
	}

	if len(txs) == 0 {
		return nil, ErrNoRecords
	}
	return txs, nil
}

// dropEmpty removes rows whose cells are all blank, then columns that are
// blank in every remaining row.
func dropEmpty(rows [][]string) [][]string {
	kept := rows[:0:0]
	width := 0
	for _, row := range rows {
		if !rowEmpty(row) {
			kept = append(kept, row)
			if len(row) > width {
				width = len(row)
			}
		}
	}
	if len(kept) == 0 {
		return nil
	}

	keepCol := make([]bool, width)
	for _, row := range kept {
		for i, c := range row {
			if strings.TrimSpace(c) != "" {
				keepCol[i] = true
			}
		}
	}

	out := make([][]string, 0, len(kept))
	for _, row := range kept {
		cells := make([]string, 0, width)
		for i := 0; i < width; i++ {
			if !keepCol[i] {
				continue
			}
			cells = append(cells, cell(row, i))
		}
		out = append(out, cells)
	}
	return out
}

func rowEmpty(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// coerceAmount converts a debit/credit cell to a decimal, treating
// thousands separators as noise and anything non-numeric as zero.
func coerceAmount(raw string) decimal.Decimal {
	raw = strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if raw == "" {
		return decimal.Zero
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero
	}
	return amount
}
