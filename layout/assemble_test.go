package layout

import (
	"testing"

	"github.com/tsawler/pdfoutline/model"
)

func cand(text string, lvl model.Level, page int) model.HeadingCandidate {
	return model.HeadingCandidate{Text: text, Level: lvl, Page: page}
}

func TestAssemble(t *testing.T) {
	perPage := [][]model.HeadingCandidate{
		{cand("Introduction", model.H1, 1), cand("Background", model.H2, 1)},
		nil,
		{cand("Zeta first on page", model.H2, 3), cand("Alpha later", model.H1, 3)},
	}

	o := Assemble(" My  Title ", perPage)
	if o.Title != "My Title" {
		t.Errorf("Title = %q, want %q", o.Title, "My Title")
	}

	want := []string{"Introduction", "Background", "Zeta first on page", "Alpha later"}
	if len(o.Entries) != len(want) {
		t.Fatalf("got %d entries, want %d", len(o.Entries), len(want))
	}
	for i, w := range want {
		if o.Entries[i].Text != w {
			t.Errorf("entry %d = %q, want %q", i, o.Entries[i].Text, w)
		}
	}
	for i := 1; i < len(o.Entries); i++ {
		if o.Entries[i].Page < o.Entries[i-1].Page {
			t.Errorf("entries out of page order at %d", i)
		}
	}
}

func TestAssembleDedupe(t *testing.T) {
	perPage := [][]model.HeadingCandidate{
		{cand("Summary", model.H1, 1), cand("Summary", model.H2, 1)},
		{cand("Summary", model.H1, 2)},
	}
	o := Assemble("", perPage)
	if len(o.Entries) != 2 {
		t.Fatalf("got %d entries, want 2 (same text on different pages is kept)", len(o.Entries))
	}
	if o.Entries[0].Level != model.H1 {
		t.Errorf("first occurrence should win, got %v", o.Entries[0].Level)
	}
}

func TestAssembleContinuation(t *testing.T) {
	tests := []struct {
		name string
		in   []model.HeadingCandidate
		want []string
	}{
		{
			"merged",
			[]model.HeadingCandidate{cand("Research", model.H1, 2), cand("& Development", model.H1, 2)},
			[]string{"Research & Development"},
		},
		{
			"different level",
			[]model.HeadingCandidate{cand("Research", model.H1, 2), cand("& Development", model.H2, 2)},
			[]string{"Research", "& Development"},
		},
		{
			"first entry",
			[]model.HeadingCandidate{cand("& Orphan", model.H1, 1)},
			[]string{"& Orphan"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := Assemble("", [][]model.HeadingCandidate{tt.in})
			if len(o.Entries) != len(tt.want) {
				t.Fatalf("got %d entries, want %d", len(o.Entries), len(tt.want))
			}
			for i, w := range tt.want {
				if o.Entries[i].Text != w {
					t.Errorf("entry %d = %q, want %q", i, o.Entries[i].Text, w)
				}
			}
		})
	}
}

func TestAssembleContinuationAcrossPages(t *testing.T) {
	perPage := [][]model.HeadingCandidate{
		{cand("Research", model.H1, 1)},
		{cand("& Development", model.H1, 2)},
	}
	if o := Assemble("", perPage); len(o.Entries) != 2 {
		t.Errorf("continuation merged across pages: %+v", o.Entries)
	}
}

func TestAssembleEmpty(t *testing.T) {
	o := Assemble("", nil)
	if o.Entries == nil {
		t.Error("Entries should be empty, not nil")
	}
}
