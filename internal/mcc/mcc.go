// Package mcc extracts merchant category code tables from documents and
// answers lookups against them. Queries that are all digits match codes
// exactly; anything else is matched against descriptions by fuzzy rank.
package mcc

import (
	"errors"
	"regexp"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// ErrNoEntries is returned when a document yields no code/description pairs.
var ErrNoEntries = errors.New("mcc: no entries found")

// ErrNotFound is returned when a lookup matches no entry.
var ErrNotFound = errors.New("mcc: no matching entry")

// entryLine matches a four digit code followed by its description.
var entryLine = regexp.MustCompile(`^(\d{4})\s+(.+)$`)

// Entry is one merchant category code and its description.
type Entry struct {
	Code        string
	Description string
}

// Directory is an immutable set of entries supporting code and
// description lookups.
type Directory struct {
	entries      []Entry
	byCode       map[string]int
	descriptions []string
}

// ParseRows builds a directory from table rows. The first cell of each row
// must carry the code line, or the code and description may arrive in
// separate cells.
func ParseRows(rows [][]string) (*Directory, error) {
	var entries []Entry
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		line := strings.TrimSpace(strings.Join(row, " "))
		if e, ok := parseLine(line); ok {
			entries = append(entries, e)
		}
	}
	return newDirectory(entries)
}

// ParseText builds a directory from raw recognized text, one entry per line.
func ParseText(text string) (*Directory, error) {
	var entries []Entry
	for _, line := range strings.Split(text, "\n") {
		if e, ok := parseLine(strings.TrimSpace(line)); ok {
			entries = append(entries, e)
		}
	}
	return newDirectory(entries)
}

func parseLine(line string) (Entry, bool) {
	m := entryLine.FindStringSubmatch(line)
	if m == nil {
		return Entry{}, false
	}
	return Entry{Code: m[1], Description: strings.TrimSpace(m[2])}, true
}

func newDirectory(entries []Entry) (*Directory, error) {
	if len(entries) == 0 {
		return nil, ErrNoEntries
	}
	d := &Directory{
		entries:      entries,
		byCode:       make(map[string]int, len(entries)),
		descriptions: make([]string, len(entries)),
	}
	for i, e := range entries {
		// First occurrence wins on duplicate codes.
		if _, ok := d.byCode[e.Code]; !ok {
			d.byCode[e.Code] = i
		}
		d.descriptions[i] = e.Description
	}
	return d, nil
}

// Entries returns the directory contents in document order.
func (d *Directory) Entries() []Entry {
	out := make([]Entry, len(d.entries))
	copy(out, d.entries)
	return out
}

// Lookup resolves a query to an entry. All-digit queries are exact code
// lookups; other queries return the entry whose description ranks closest
// to the query.
func (d *Directory) Lookup(query string) (Entry, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Entry{}, ErrNotFound
	}

	if isDigits(query) {
		i, ok := d.byCode[query]
		if !ok {
			return Entry{}, ErrNotFound
		}
		return d.entries[i], nil
	}

	ranks := fuzzy.RankFindNormalizedFold(query, d.descriptions)
	if len(ranks) == 0 {
		return Entry{}, ErrNotFound
	}
	sort.Sort(ranks)
	return d.entries[ranks[0].OriginalIndex], nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
