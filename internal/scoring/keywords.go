package scoring

import (
	"sort"
	"strings"
)

// KeywordEntry is a single weighted phrase in a keyword table. A negative
// weight suppresses relevance instead of boosting it.
type KeywordEntry struct {
	Phrase   string
	Category string
	Weight   float64
}

// KeywordTable holds the phrase -> (category, weight) mapping for one domain.
// It is immutable once constructed and safe for concurrent use.
type KeywordTable struct {
	entries []KeywordEntry
}

// NewKeywordTable builds a table from the given entries. Phrases are
// normalized (lower-cased, whitespace collapsed); a duplicate normalized
// phrase keeps the first occurrence so re-seeding is idempotent. An empty
// phrase or a zero weight is a *ConfigError.
func NewKeywordTable(entries []KeywordEntry) (*KeywordTable, error) {
	seen := make(map[string]bool, len(entries))
	normalized := make([]KeywordEntry, 0, len(entries))

	for _, e := range entries {
		phrase := normalizePhrase(e.Phrase)
		if phrase == "" {
			return nil, &ConfigError{Phrase: e.Phrase, Reason: "empty phrase"}
		}
		if e.Weight == 0 {
			return nil, &ConfigError{Phrase: e.Phrase, Reason: "weight must be non-zero"}
		}
		if seen[phrase] {
			continue
		}
		seen[phrase] = true
		normalized = append(normalized, KeywordEntry{
			Phrase:   phrase,
			Category: e.Category,
			Weight:   e.Weight,
		})
	}

	// Descending absolute weight, ties broken by insertion order. This order
	// decides which category wins when contributions tie during inference.
	sort.SliceStable(normalized, func(i, j int) bool {
		return abs(normalized[i].Weight) > abs(normalized[j].Weight)
	})

	return &KeywordTable{entries: normalized}, nil
}

// MustKeywordTable is NewKeywordTable for the built-in seed lists, which are
// known-valid at compile time.
func MustKeywordTable(entries []KeywordEntry) *KeywordTable {
	t, err := NewKeywordTable(entries)
	if err != nil {
		panic(err)
	}
	return t
}

// Entries returns the table contents in scoring order.
func (t *KeywordTable) Entries() []KeywordEntry {
	return t.entries
}

// Len returns the number of distinct phrases in the table.
func (t *KeywordTable) Len() int {
	return len(t.entries)
}

func normalizePhrase(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
