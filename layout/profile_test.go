package layout

import (
	"testing"

	"github.com/tsawler/pdfoutline/model"
)

func spansWithSizes(sizes map[float64]int) []model.Span {
	var spans []model.Span
	for size, n := range sizes {
		for i := 0; i < n; i++ {
			spans = append(spans, makeSpan("text", size, 1, float64(i)*20))
		}
	}
	return spans
}

func TestBuildProfileEmpty(t *testing.T) {
	p := BuildProfile(nil, DefaultConfig())
	if p.BodySize != 0 || p.Distinct != 0 || p.Structured {
		t.Errorf("empty profile = %+v", p)
	}
	if len(p.LevelSizes) != 0 {
		t.Errorf("empty profile has levels: %v", p.LevelSizes)
	}
}

func TestBuildProfileUniform(t *testing.T) {
	p := BuildProfile(spansWithSizes(map[float64]int{12: 10}), DefaultConfig())
	if p.BodySize != 12 {
		t.Errorf("BodySize = %v, want 12", p.BodySize)
	}
	if p.Distinct != 1 || p.Structured {
		t.Errorf("Distinct = %d, Structured = %v; want 1, false", p.Distinct, p.Structured)
	}
	if len(p.CandidateSizes) != 0 || len(p.LevelSizes) != 0 {
		t.Errorf("uniform document has candidates %v / levels %v", p.CandidateSizes, p.LevelSizes)
	}
}

func TestBuildProfileTolerance(t *testing.T) {
	p := BuildProfile(spansWithSizes(map[float64]int{12: 8, 12.3: 2, 18: 1}), DefaultConfig())
	if p.Distinct != 2 {
		t.Fatalf("Distinct = %d, want 2 (12 and 12.3 cluster): %v", p.Distinct, p.Clusters)
	}
	if p.BodySize != 12 {
		t.Errorf("BodySize = %v, want 12", p.BodySize)
	}
	if got := p.Canonical(12.3); got != 12 {
		t.Errorf("Canonical(12.3) = %v, want 12", got)
	}
}

func TestBuildProfileBodyTie(t *testing.T) {
	p := BuildProfile(spansWithSizes(map[float64]int{12: 3, 14: 3}), DefaultConfig())
	if p.BodySize != 12 {
		t.Errorf("BodySize = %v, want smaller size 12 on tie", p.BodySize)
	}
}

func TestBuildProfileStructured(t *testing.T) {
	p := BuildProfile(spansWithSizes(map[float64]int{24: 1, 18: 2, 12: 10}), DefaultConfig())
	if !p.Structured || p.Distinct != 3 {
		t.Fatalf("Structured = %v, Distinct = %d; want true, 3", p.Structured, p.Distinct)
	}
	want := map[float64]model.Level{24: model.H1, 18: model.H2, 12: model.H3}
	for size, lvl := range want {
		if got := p.LevelSizes[size]; got != lvl {
			t.Errorf("LevelSizes[%v] = %v, want %v", size, got, lvl)
		}
	}
}

func TestBuildProfileStandard(t *testing.T) {
	p := BuildProfile(spansWithSizes(map[float64]int{30: 1, 24: 2, 20: 3, 16: 3, 12: 40, 10: 5}), DefaultConfig())
	if p.Structured {
		t.Fatal("six sizes should use the standard strategy")
	}
	if p.BodySize != 12 {
		t.Errorf("BodySize = %v, want 12", p.BodySize)
	}

	wantCandidates := []float64{30, 24, 20, 16}
	if len(p.CandidateSizes) != len(wantCandidates) {
		t.Fatalf("CandidateSizes = %v, want %v", p.CandidateSizes, wantCandidates)
	}
	for i, s := range wantCandidates {
		if p.CandidateSizes[i] != s {
			t.Errorf("CandidateSizes[%d] = %v, want %v", i, p.CandidateSizes[i], s)
		}
	}

	want := map[float64]model.Level{30: model.H1, 24: model.H2, 20: model.H3}
	if len(p.LevelSizes) != len(want) {
		t.Errorf("LevelSizes = %v, want %v", p.LevelSizes, want)
	}
	for size, lvl := range want {
		if got := p.LevelSizes[size]; got != lvl {
			t.Errorf("LevelSizes[%v] = %v, want %v", size, got, lvl)
		}
	}
}

func TestBuildProfileMinHeadingRatio(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinHeadingRatio = 1.5
	p := BuildProfile(spansWithSizes(map[float64]int{30: 1, 16: 2, 14: 2, 13: 2, 12: 40, 10: 5}), cfg)
	if len(p.LevelSizes) != 1 || p.LevelSizes[30] != model.H1 {
		t.Errorf("LevelSizes = %v, want only 30 -> H1", p.LevelSizes)
	}
}

func TestIsHeadingSized(t *testing.T) {
	cfg := DefaultConfig()
	p := BuildProfile(spansWithSizes(map[float64]int{12: 20, 18: 2, 30: 1, 24: 1, 20: 1}), cfg)
	tests := []struct {
		size float64
		want bool
	}{
		{18, true},
		{12, false},
		{12.4, false},
		{10, false},
	}
	for _, tt := range tests {
		if got := IsHeadingSized(tt.size, p, cfg); got != tt.want {
			t.Errorf("IsHeadingSized(%v) = %v, want %v", tt.size, got, tt.want)
		}
	}
	if IsHeadingSized(20, model.FontProfile{}, cfg) {
		t.Error("zero profile should have no heading sizes")
	}
}

func TestBuildDocumentProfile(t *testing.T) {
	spans := spansWithSizes(map[float64]int{18: 2, 15: 2, 13.5: 2, 10: 20})
	titleSpan := makeSpan("Annual Field Report", 24, 1, 10)
	spans = append(spans, titleSpan)
	title := Title{Text: titleSpan.Text, Parts: []model.Span{titleSpan}}

	tests := []struct {
		name  string
		title Title
		want  map[float64]model.Level
	}{
		{"no title", Title{}, map[float64]model.Level{24: model.H1, 18: model.H2, 15: model.H3}},
		{"page title", title, map[float64]model.Level{18: model.H1, 15: model.H2, 13.5: model.H3}},
		{"metadata title", Title{Text: "annual  field report"}, map[float64]model.Level{18: model.H1, 15: model.H2, 13.5: model.H3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := BuildDocumentProfile(spans, tt.title, DefaultConfig())
			if p.BodySize != 10 {
				t.Errorf("BodySize = %v, want 10", p.BodySize)
			}
			if len(p.LevelSizes) != len(tt.want) {
				t.Fatalf("LevelSizes = %v, want %v", p.LevelSizes, tt.want)
			}
			for size, lvl := range tt.want {
				if got := p.LevelSizes[size]; got != lvl {
					t.Errorf("LevelSizes[%v] = %v, want %v", size, got, lvl)
				}
			}
		})
	}
}

func TestBuildDocumentProfileStructuredKeepsTitleSize(t *testing.T) {
	titleSpan := makeSpan("Jane Doe", 28, 1, 10)
	spans := append(spansWithSizes(map[float64]int{18: 2, 12: 10}), titleSpan)

	p := BuildDocumentProfile(spans, Title{Text: "Jane Doe", Parts: []model.Span{titleSpan}}, DefaultConfig())
	if !p.Structured {
		t.Fatalf("expected structured profile: %+v", p)
	}
	if p.LevelSizes[28] != model.H1 || p.LevelSizes[18] != model.H2 {
		t.Errorf("LevelSizes = %v", p.LevelSizes)
	}
}
