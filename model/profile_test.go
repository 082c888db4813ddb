package model

import "testing"

func TestProfileSizes(t *testing.T) {
	p := FontProfile{
		Tolerance:  0.05,
		Clusters:   []float64{24, 18, 12},
		LevelSizes: map[float64]Level{24: H1, 18: H2},
	}

	if got := p.Canonical(23.5); got != 24 {
		t.Errorf("Canonical(23.5) = %v", got)
	}
	if got := p.Canonical(15); got != 15 {
		t.Errorf("Canonical(15) = %v, want unchanged", got)
	}
	if lvl, ok := p.LevelFor(17.4); !ok || lvl != H2 {
		t.Errorf("LevelFor(17.4) = %v, %v", lvl, ok)
	}
	if _, ok := p.LevelFor(12); ok {
		t.Error("body size should have no level")
	}
	if p.Ambiguous(24) {
		t.Error("24 is not ambiguous")
	}

	near := FontProfile{Tolerance: 0.05, LevelSizes: map[float64]Level{20: H1, 19.5: H2}}
	if !near.Ambiguous(19.8) {
		t.Error("19.8 sits within tolerance of both 20 and 19.5")
	}
	if !SizesEqual(0, 0, 0.05) || SizesEqual(10, 12, 0.05) {
		t.Error("SizesEqual")
	}
}
