// Package paymentsfeed parses the third-party account-statement feed into
// payment records. Fetching the feed over HTTP is an external collaborator;
// this package only understands the response body's shape.
package paymentsfeed

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ErrNoPayments indicates the feed body held no payment records.
var ErrNoPayments = errors.New("paymentsfeed: no payment records in statement")

// feedDateLayout is the transaction date format the feed emits.
const feedDateLayout = "02-01-2006"

// Record is one payment from the statement feed.
type Record struct {
	TransactionDate time.Time
	PaymentMode     string
	Amount          decimal.Decimal
}

// statement mirrors the nested envelope the account-statement API returns.
type statement struct {
	Response struct {
		Data struct {
			Body struct {
				Data []feedEntry `json:"data"`
			} `json:"AccountStatementReportResponseBody"`
		} `json:"Data"`
	} `json:"AccountStatementOverAPIResponse"`
}

type feedEntry struct {
	TransactionDate string          `json:"transactionDate"`
	PaymentMode     string          `json:"paymentMode"`
	Amount          json.RawMessage `json:"amount"`
}

// Parse reads a statement JSON body and returns its payment records.
// Entries with an unparseable date or amount are dropped; an empty result
// is surfaced as ErrNoPayments.
func Parse(r io.Reader) ([]Record, error) {
	var stmt statement
	if err := json.NewDecoder(r).Decode(&stmt); err != nil {
		return nil, fmt.Errorf("paymentsfeed: decode statement: %w", err)
	}

	entries := stmt.Response.Data.Body.Data
	records := make([]Record, 0, len(entries))
	for _, e := range entries {
		date, err := time.Parse(feedDateLayout, strings.TrimSpace(e.TransactionDate))
		if err != nil {
			continue
		}

		amount, ok := parseAmount(e.Amount)
		if !ok {
			continue
		}

		mode := strings.TrimSpace(e.PaymentMode)
		if mode == "" {
			continue
		}

		records = append(records, Record{
			TransactionDate: date,
			PaymentMode:     mode,
			Amount:          amount,
		})
	}

	if len(records) == 0 {
		return nil, ErrNoPayments
	}
	return records, nil
}

// parseAmount accepts both JSON numbers and quoted numeric strings; the
// feed is not consistent about which it sends.
func parseAmount(raw json.RawMessage) (decimal.Decimal, bool) {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return decimal.Zero, false
	}
	s = strings.Trim(s, `"`)
	s = strings.ReplaceAll(s, ",", "")

	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return amount, true
}
