package scoring

import (
	"context"
	"errors"
	"testing"
)

type fakeMethod struct {
	name  string
	score float64
	label string
	err   error
}

func (f *fakeMethod) Name() string { return f.name }

func (f *fakeMethod) Score(ctx context.Context, text string) (float64, string, error) {
	return f.score, f.label, f.err
}

func blendTable(t *testing.T) *KeywordTable {
	t.Helper()
	return testTable(t, KeywordEntry{"needs assessment", "study", 2.0})
}

func TestBlendedScorer_KeywordOnly(t *testing.T) {
	b := NewBlendedScorer(blendTable(t), 0)

	r := b.Score(context.Background(), "Needs assessment services", "")
	if !almostEqual(r.FinalScore, 8.0) { // 2.0/25*100
		t.Errorf("FinalScore = %v, want 8.0", r.FinalScore)
	}
	if r.Relevant {
		t.Error("Relevant = true, want false")
	}
	if len(r.Methods) != 1 || r.Methods[0].Method != "keyword" {
		t.Errorf("Methods = %+v", r.Methods)
	}
}

func TestBlendedScorer_CustomDivisor(t *testing.T) {
	b := NewBlendedScorer(blendTable(t), 50)

	r := b.Score(context.Background(), "Needs assessment services", "")
	if !almostEqual(r.FinalScore, 4.0) { // 2.0/50*100
		t.Errorf("FinalScore = %v, want 4.0", r.FinalScore)
	}
}

func TestBlendedScorer_TwoMethods(t *testing.T) {
	b := NewBlendedScorer(blendTable(t), 0, &fakeMethod{name: "semantic", score: 90, label: "it assessment"})

	r := b.Score(context.Background(), "Needs assessment services", "")
	want := 8.0*0.4 + 90*0.6
	if !almostEqual(r.FinalScore, want) {
		t.Errorf("FinalScore = %v, want %v", r.FinalScore, want)
	}
	if !r.Relevant {
		t.Error("Relevant = false, want true")
	}
}

func TestBlendedScorer_ThreeMethods(t *testing.T) {
	b := NewBlendedScorer(blendTable(t), 0,
		&fakeMethod{name: "semantic", score: 90},
		&fakeMethod{name: "llm", score: 50},
	)

	r := b.Score(context.Background(), "Needs assessment services", "")
	want := 8.0*0.3 + 90*0.35 + 50*0.35
	if !almostEqual(r.FinalScore, want) {
		t.Errorf("FinalScore = %v, want %v", r.FinalScore, want)
	}
	if len(r.Methods) != 3 {
		t.Errorf("Methods = %d, want 3", len(r.Methods))
	}
}

// A method that errors narrows the blend instead of failing the call.
func TestBlendedScorer_FailedMethodSkipped(t *testing.T) {
	b := NewBlendedScorer(blendTable(t), 0,
		&fakeMethod{name: "semantic", err: errors.New("connection refused")},
		&fakeMethod{name: "llm", score: 90},
	)

	r := b.Score(context.Background(), "Needs assessment services", "")
	want := 8.0*0.4 + 90*0.6
	if !almostEqual(r.FinalScore, want) {
		t.Errorf("FinalScore = %v, want %v", r.FinalScore, want)
	}
	if len(r.Methods) != 2 {
		t.Errorf("Methods = %d, want 2", len(r.Methods))
	}
}

func TestBlendedScorer_RelevanceCutoff(t *testing.T) {
	b := NewBlendedScorer(blendTable(t), 0, &fakeMethod{name: "semantic", score: 61.34})

	// 8*0.4 + 61.34*0.6 = 40.004, just over the line
	r := b.Score(context.Background(), "Needs assessment services", "")
	if !r.Relevant {
		t.Errorf("FinalScore = %v, want relevant", r.FinalScore)
	}

	below := NewBlendedScorer(blendTable(t), 0, &fakeMethod{name: "semantic", score: 61.3})
	r = below.Score(context.Background(), "Needs assessment services", "")
	if r.Relevant {
		t.Errorf("FinalScore = %v, want not relevant", r.FinalScore)
	}
}
