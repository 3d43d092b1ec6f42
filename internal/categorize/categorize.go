// Package categorize maps cleaned transaction descriptions to a fixed set
// of spending categories. The category table is a hand-authored, ordered
// decision table: each category carries a set of keyword substrings and the
// earliest-declared category with any matching keyword wins.
package categorize

import (
	"strings"

	"github.com/cloudflare/ahocorasick"
)

// Uncategorized is returned when no keyword matches a description.
const Uncategorized = "other"

// Rule pairs a category name with the keyword substrings that select it.
// Declaration order is significant: earlier rules take precedence when a
// description matches keywords from more than one category.
type Rule struct {
	Category string
	Keywords []string
}

// DefaultRules is the normative category table. Keyword sets and ordering
// are load-bearing: a description matching keywords from two categories
// resolves to the one declared first. The generic tokens "to" and "by"
// under Peer To Peer match many unrelated descriptions by substring
// containment; the table reproduces the deployed behavior as-is.
var DefaultRules = []Rule{
	{Category: "Food", Keywords: []string{"swiggy", "zomato", "faasos", "ovenstory", "restaurant", "pizza", "mcdonald"}},
	{Category: "Transport", Keywords: []string{"metro", "uber", "ola", "fuel", "petrol", "bus", "train", "olacabs"}},
	{Category: "Shopping", Keywords: []string{"amazon", "flipkart", "myntra", "ebay", "paytm", "snapdeal"}},
	{Category: "Utilities", Keywords: []string{"electricity", "water bill", "internet", "phone recharge", "vodafone", "jio", "billdesk"}},
	{Category: "Entertainment", Keywords: []string{"netflix", "prime", "spotify", "hotstar", "movie"}},
	{Category: "Salary", Keywords: []string{"salary", "payout", "income", "credit interest"}},
	{Category: "Health", Keywords: []string{"pharmacy", "medical", "hospital", "larimedicals", "medicine", "doctor"}},
	{Category: "ATM Withdrawals", Keywords: []string{"atm wdl", "cash withdrawal", "atm"}},
	{Category: "Bank_fees", Keywords: []string{"sms charges", "account charges", "service fee", "penalty"}},
	{Category: "Peer To Peer", Keywords: []string{"upi", "imps", "transfer", "to", "by", "neft", "rtgs"}},
	{Category: "Loan Payments", Keywords: []string{"emi", "loan", "repayment"}},
}

// Table is a compiled category decision table. It pre-computes an
// Aho-Corasick state machine over every keyword so categorizing a
// description is a single pass through the text regardless of how many
// keywords the table holds.
type Table struct {
	matcher *ahocorasick.Matcher
	// keywordRank[i] is the declaration index of the rule owning pattern i.
	keywordRank     []int
	keywordCategory []string
	categories      []string
}

// NewTable compiles a rule list into a Table. Rules are evaluated in the
// order given; extending the table means appending a Rule, not touching
// control flow.
func NewTable(rules []Rule) *Table {
	t := &Table{categories: make([]string, 0, len(rules))}

	var patterns [][]byte
	for rank, rule := range rules {
		t.categories = append(t.categories, rule.Category)
		for _, keyword := range rule.Keywords {
			keyword = strings.ToLower(strings.TrimSpace(keyword))
			if keyword == "" {
				continue
			}
			patterns = append(patterns, []byte(keyword))
			t.keywordRank = append(t.keywordRank, rank)
			t.keywordCategory = append(t.keywordCategory, rule.Category)
		}
	}
	if len(patterns) > 0 {
		t.matcher = ahocorasick.NewMatcher(patterns)
	}
	return t
}

// Default returns a Table compiled from DefaultRules.
func Default() *Table {
	return NewTable(DefaultRules)
}

// Categorize returns the category for a cleaned description. It is a pure
// total function: every input resolves to exactly one category, falling
// back to Uncategorized when nothing matches.
func (t *Table) Categorize(description string) string {
	if t.matcher == nil {
		return Uncategorized
	}

	hits := t.matcher.Match([]byte(strings.ToLower(description)))
	if len(hits) == 0 {
		return Uncategorized
	}

	best := -1
	for _, idx := range hits {
		if idx < 0 || idx >= len(t.keywordRank) {
			continue
		}
		if best == -1 || t.keywordRank[idx] < t.keywordRank[best] {
			best = idx
		}
	}
	if best == -1 {
		return Uncategorized
	}
	return t.keywordCategory[best]
}

// Categories returns the category names in declaration order, without the
// Uncategorized fallback.
func (t *Table) Categories() []string {
	out := make([]string, len(t.categories))
	copy(out, t.categories)
	return out
}

// CleanDescription normalizes a raw transaction description before
// categorization: lowercase, strip everything but letters, digits,
// whitespace and '@', then collapse runs of whitespace.
func CleanDescription(description string) string {
	lower := strings.ToLower(description)

	var b strings.Builder
	b.Grow(len(lower))
	for _, r := range lower {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '@':
			b.WriteRune(r)
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
