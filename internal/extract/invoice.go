package extract

import "strings"

// ParseInvoice extracts line items from invoice OCR text.
//
// A line qualifies when it splits into at least four whitespace tokens:
// the last three are quantity, unit price and total, everything before
// them is the description. Rows whose description starts with "GRAND"
// (any case) are the trailing grand-total row and are skipped. No numeric
// validation happens here; coercion and row-dropping are the visualization
// step's job.
//
// Known fragility, kept deliberately: the layout assumption is exactly one
// variable-length description followed by exactly three numeric tokens, so
// wrapped OCR lines or multi-word trailing fields misparse silently.
func ParseInvoice(text string) ([]InvoiceLineItem, error) {
	var items []InvoiceLineItem

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		tokens := strings.Fields(line)
		if len(tokens) < 4 {
			continue
		}

		description := strings.Join(tokens[:len(tokens)-3], " ")
		if strings.EqualFold(tokens[0], "GRAND") {
			continue
		}

		items = append(items, InvoiceLineItem{
			Description: description,
			Quantity:    tokens[len(tokens)-3],
			UnitPrice:   tokens[len(tokens)-2],
			Total:       tokens[len(tokens)-1],
		})
	}

	if len(items) == 0 {
		return nil, ErrNoRecords
	}
	return items, nil
}
