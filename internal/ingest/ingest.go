// Package ingest reads user-supplied tabular transaction data (CSV or
// XLSX) into clustering input. Files must carry Amount and Description
// columns; a Transaction ID column is optional and generated when absent.
package ingest

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"

	"github.com/FACorreiaa/findoc-insights/internal/cluster"
)

// ErrMissingColumns indicates the required Amount/Description headers are
// absent from the uploaded file.
var ErrMissingColumns = errors.New("ingest: file must contain Amount and Description columns")

// Canonical column names. Header matching is case-insensitive; these are
// the forms the CSV row struct binds to.
const (
	headerID          = "Transaction ID"
	headerDescription = "Description"
	headerAmount      = "Amount"
)

// row is the gocsv binding for one transaction line.
type row struct {
	ID          string `csv:"Transaction ID"`
	Description string `csv:"Description"`
	Amount      string `csv:"Amount"`
}

// ReadCSV parses CSV clustering input. Rows with a non-numeric amount are
// dropped rather than propagated as failures; a missing required header is
// a schema error.
func ReadCSV(r io.Reader) ([]cluster.Transaction, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("ingest: read input: %w", err)
	}

	normalized, err := canonicalizeHeader(data)
	if err != nil {
		return nil, err
	}

	var rows []row
	if err := gocsv.UnmarshalBytes(normalized, &rows); err != nil {
		return nil, fmt.Errorf("ingest: parse csv: %w", err)
	}
	return toTransactions(rows), nil
}

// canonicalizeHeader validates that the required columns exist (any case)
// and rewrites the header line into canonical form so the row struct tags
// bind regardless of the file's capitalization.
func canonicalizeHeader(data []byte) ([]byte, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("ingest: read header: %w", err)
	}

	canonical := map[string]string{
		strings.ToLower(headerID):          headerID,
		strings.ToLower(headerDescription): headerDescription,
		strings.ToLower(headerAmount):      headerAmount,
	}

	found := map[string]bool{}
	for i, cell := range header {
		key := strings.ToLower(strings.TrimSpace(cell))
		if name, ok := canonical[key]; ok {
			header[i] = name
			found[name] = true
		}
	}
	if !found[headerAmount] || !found[headerDescription] {
		return nil, ErrMissingColumns
	}

	var out bytes.Buffer
	w := csv.NewWriter(&out)
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("ingest: rewrite header: %w", err)
	}
	w.Flush()

	rest := data
	if idx := bytes.IndexByte(data, '\n'); idx >= 0 {
		rest = data[idx+1:]
	} else {
		rest = nil
	}
	out.Write(rest)
	return out.Bytes(), nil
}

func toTransactions(rows []row) []cluster.Transaction {
	txs := make([]cluster.Transaction, 0, len(rows))
	for i, r := range rows {
		amount, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(r.Amount), ",", ""))
		if err != nil {
			continue // non-numeric amount, drop the row
		}

		description := strings.TrimSpace(r.Description)
		if description == "" {
			continue
		}

		id := strings.TrimSpace(r.ID)
		if id == "" {
			id = strconv.Itoa(i + 1)
		}

		txs = append(txs, cluster.Transaction{
			ID:          id,
			Description: description,
			Amount:      amount,
		})
	}
	return txs
}
