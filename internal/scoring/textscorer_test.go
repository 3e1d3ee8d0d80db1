package scoring

import (
	"math"
	"testing"
)

func testTable(t *testing.T, entries ...KeywordEntry) *KeywordTable {
	t.Helper()
	table, err := NewKeywordTable(entries)
	if err != nil {
		t.Fatalf("NewKeywordTable: %v", err)
	}
	return table
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestScore_EmptyText(t *testing.T) {
	s := NewTextScorer(NewsKeywords(), ScorerOptions{DiminishingReturns: true})

	for _, text := range []string{"", "   ", "\n\t"} {
		b := s.Score(text)
		if b.Total != 0 || len(b.Matches) != 0 || b.Category != "" {
			t.Errorf("Score(%q) = %+v, want zero breakdown", text, b)
		}
	}
}

func TestScore_DiminishingReturns(t *testing.T) {
	table := testTable(t, KeywordEntry{"bid rigging", CategoryProcurement, 2.0})
	s := NewTextScorer(table, ScorerOptions{DiminishingReturns: true})

	tests := []struct {
		count int
		want  float64
	}{
		{1, 2.0},
		{2, 2.4},
		{3, 2.8},
		{5, 3.6},
	}

	for _, tt := range tests {
		text := ""
		for i := 0; i < tt.count; i++ {
			text += "bid rigging alleged. "
		}
		b := s.Score(text)
		if !almostEqual(b.Total, tt.want) {
			t.Errorf("count %d: Total = %v, want %v", tt.count, b.Total, tt.want)
		}
		if len(b.Matches) != 1 || b.Matches[0].Count != tt.count {
			t.Errorf("count %d: Matches = %+v", tt.count, b.Matches)
		}
	}
}

func TestScore_PresenceMode(t *testing.T) {
	table := testTable(t, KeywordEntry{"bid rigging", CategoryProcurement, 2.0})
	s := NewTextScorer(table, ScorerOptions{DiminishingReturns: false})

	b := s.Score("bid rigging, more bid rigging, and again bid rigging")
	if !almostEqual(b.Total, 2.0) {
		t.Errorf("Total = %v, want 2.0 regardless of repeats", b.Total)
	}
	if b.Matches[0].Count != 3 {
		t.Errorf("Count = %d, want 3", b.Matches[0].Count)
	}
}

func TestScore_CaseInsensitive(t *testing.T) {
	table := testTable(t, KeywordEntry{"bid rigging", CategoryProcurement, 2.0})
	s := NewTextScorer(table, ScorerOptions{DiminishingReturns: true})

	b := s.Score("County accused of BID RIGGING scheme")
	if b.Total != 2.0 {
		t.Errorf("Total = %v, want 2.0", b.Total)
	}
}

func TestScore_NegativeWeights(t *testing.T) {
	table := testTable(t,
		KeywordEntry{"IT assessment", "it_consulting", 2.0},
		KeywordEntry{"mowing", "excluded", -5.0},
	)
	s := NewTextScorer(table, ScorerOptions{DiminishingReturns: false})

	b := s.Score("IT assessment of mowing operations")
	if !almostEqual(b.Total, -3.0) {
		t.Errorf("Total = %v, want -3.0", b.Total)
	}
}

func TestScore_CategoryInference(t *testing.T) {
	table := testTable(t,
		KeywordEntry{"kickback", CategoryProcurement, 2.5},
		KeywordEntry{"audit finding", CategoryAudit, 1.5},
		KeywordEntry{"audit report", CategoryAudit, 1.0},
	)
	s := NewTextScorer(table, ScorerOptions{DiminishingReturns: false})

	// audit total 2.5 ties procurement 2.5; procurement comes first in
	// table order (higher single weight) and wins the tie.
	b := s.Score("kickback alleged in audit finding and audit report")
	if b.Category != CategoryProcurement {
		t.Errorf("Category = %q, want %q", b.Category, CategoryProcurement)
	}

	// A second audit keyword occurrence breaks the tie the other way.
	s2 := NewTextScorer(table, ScorerOptions{DiminishingReturns: true})
	b = s2.Score("audit finding, audit report, another audit finding, kickback")
	if b.Category != CategoryAudit {
		t.Errorf("Category = %q, want %q", b.Category, CategoryAudit)
	}
}

func TestScore_MatchesSortedByImpact(t *testing.T) {
	table := testTable(t,
		KeywordEntry{"sole source", CategoryProcurement, 1.0},
		KeywordEntry{"kickback", CategoryProcurement, 2.5},
		KeywordEntry{"mowing", "excluded", -5.0},
	)
	s := NewTextScorer(table, ScorerOptions{DiminishingReturns: false})

	b := s.Score("sole source kickback mowing")
	want := []string{"mowing", "kickback", "sole source"}
	for i, m := range b.Matches {
		if m.Keyword != want[i] {
			t.Errorf("match %d = %q, want %q", i, m.Keyword, want[i])
		}
	}
}

func TestScore_Deterministic(t *testing.T) {
	s := NewTextScorer(NewsKeywords(), ScorerOptions{DiminishingReturns: true})
	text := "Grand jury probes bid rigging and kickback scheme; audit finding cites missing funds"

	first := s.Score(text)
	for i := 0; i < 10; i++ {
		b := s.Score(text)
		if b.Total != first.Total || b.Category != first.Category || len(b.Matches) != len(first.Matches) {
			t.Fatalf("run %d differs: %+v vs %+v", i, b, first)
		}
	}
}

func TestNormalized(t *testing.T) {
	s := NewTextScorer(NewsKeywords(), ScorerOptions{})

	tests := []struct {
		total float64
		want  float64
	}{
		{0, 0},
		{12.5, 50},
		{25, 100},
		{50, 100},
		{-3, 0},
	}
	for _, tt := range tests {
		if got := s.Normalized(tt.total); got != tt.want {
			t.Errorf("Normalized(%v) = %v, want %v", tt.total, got, tt.want)
		}
	}
}

func TestNormalized_CustomDivisor(t *testing.T) {
	s := NewTextScorer(NewsKeywords(), ScorerOptions{NormalizeDivisor: 50})
	if got := s.Normalized(25); got != 50 {
		t.Errorf("Normalized(25) with divisor 50 = %v, want 50", got)
	}
}
