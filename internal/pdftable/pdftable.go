// Package pdftable extracts row-oriented tabular data from PDF documents.
// Bank statements arrive as PDFs whose transaction tables must be flattened
// into rows of cells before the line parser can work on them.
package pdftable

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ErrNoTables indicates the PDF contained no extractable rows.
var ErrNoTables = errors.New("pdftable: no table rows found")

// cellGap is the horizontal distance (in PDF points) between two text
// fragments that marks a column boundary rather than a word break.
const cellGap = 15.0

// ExtractRows reads a PDF and returns every detected table row across every
// page, flattened into one row-oriented structure. Each row is a slice of
// cell strings ordered left to right.
func ExtractRows(path string) (rows [][]string, err error) {
	// The pdf library can panic on malformed files.
	defer func() {
		if r := recover(); r != nil {
			rows = nil
			err = fmt.Errorf("pdftable: reader crashed: %v", r)
		}
	}()

	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("pdftable: open %q: %w", path, err)
	}
	defer f.Close()

	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageRows, err := page.GetTextByRow()
		if err != nil {
			continue
		}
		for _, row := range pageRows {
			cells := splitCells(row.Content)
			if len(cells) > 0 {
				rows = append(rows, cells)
			}
		}
	}

	if len(rows) == 0 {
		return nil, ErrNoTables
	}
	return rows, nil
}

// splitCells orders a row's text fragments left to right and groups them
// into cells, starting a new cell whenever the horizontal gap between
// fragments exceeds cellGap.
func splitCells(content pdf.TextHorizontal) []string {
	fragments := make([]pdf.Text, 0, len(content))
	for _, t := range content {
		if strings.TrimSpace(t.S) != "" {
			fragments = append(fragments, t)
		}
	}
	if len(fragments) == 0 {
		return nil
	}

	sort.Slice(fragments, func(a, b int) bool {
		return fragments[a].X < fragments[b].X
	})

	var (
		cells   []string
		current strings.Builder
		prevEnd float64
	)
	for i, frag := range fragments {
		if i > 0 && frag.X-prevEnd > cellGap {
			cells = append(cells, strings.TrimSpace(current.String()))
			current.Reset()
		} else if i > 0 {
			current.WriteByte(' ')
		}
		current.WriteString(frag.S)
		prevEnd = frag.X + frag.W
	}
	cells = append(cells, strings.TrimSpace(current.String()))
	return cells
}
