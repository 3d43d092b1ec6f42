package ingest

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/FACorreiaa/findoc-insights/internal/cluster"
)

// ReadXLSX parses XLSX clustering input from the first sheet. The first
// non-empty row is the header; column matching is case-insensitive, same
// rules as ReadCSV.
func ReadXLSX(r io.Reader) ([]cluster.Transaction, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("ingest: open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrMissingColumns
	}

	sheetRows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("ingest: read sheet %q: %w", sheets[0], err)
	}

	headerIdx := -1
	for i, cells := range sheetRows {
		for _, c := range cells {
			if strings.TrimSpace(c) != "" {
				headerIdx = i
				break
			}
		}
		if headerIdx >= 0 {
			break
		}
	}
	if headerIdx == -1 {
		return nil, ErrMissingColumns
	}

	idCol, descCol, amountCol := -1, -1, -1
	for i, cell := range sheetRows[headerIdx] {
		switch strings.ToLower(strings.TrimSpace(cell)) {
		case strings.ToLower(headerID):
			idCol = i
		case strings.ToLower(headerDescription):
			descCol = i
		case strings.ToLower(headerAmount):
			amountCol = i
		}
	}
	if amountCol == -1 || descCol == -1 {
		return nil, ErrMissingColumns
	}

	rows := make([]row, 0, len(sheetRows)-headerIdx-1)
	for _, cells := range sheetRows[headerIdx+1:] {
		rows = append(rows, row{
			ID:          cellAt(cells, idCol),
			Description: cellAt(cells, descCol),
			Amount:      cellAt(cells, amountCol),
		})
	}
	return toTransactions(rows), nil
}

func cellAt(cells []string, idx int) string {
	if idx < 0 || idx >= len(cells) {
		return ""
	}
	return cells[idx]
}
