package layout

import (
	"fmt"
	"testing"

	"github.com/tsawler/pdfoutline/model"
)

func classifyAll(an *Analysis) model.Outline {
	perPage := make([][]model.HeadingCandidate, len(an.Pages))
	for i := range an.Pages {
		perPage[i] = an.ClassifyPage(i)
	}
	return an.Outline(perPage)
}

// reportPages is a standard document: many sizes, numbered sections, a
// running header and a running footer.
func reportPages() []model.Page {
	var pages []model.Page
	for i := 1; i <= 4; i++ {
		letter := string(rune('A' + i - 1))
		var spans []model.Span
		if i == 1 {
			spans = append(spans, makeSpan("Design of Things", 32, 1, 60))
		}
		spans = append(spans,
			makeSpan("Quarterly Review", 14, i, 20),
			makeSpan("Section "+letter+" Overview", 24, i, 120),
			makeSpan(fmt.Sprintf("%d.1 Numbered Part", i), 16, i, 160),
			makeSpan("Detail "+letter, 20, i, 200),
			makeSpan("Caption "+letter, 10, i, 700),
			makeSpan(fmt.Sprintf("Page %d", i), 10, i, 760),
		)
		for j, b := range bodyLines(8, i, 240) {
			b.Text = fmt.Sprintf("%s %s%c", b.Text, letter, 'a'+j)
			spans = append(spans, b)
		}
		pages = append(pages, makePage(i, spans...))
	}
	return pages
}

func TestAnalyzerStandardDocument(t *testing.T) {
	an := NewAnalyzer().Analyze("", reportPages())
	if an.Profile.Structured {
		t.Fatalf("expected standard strategy, profile = %+v", an.Profile)
	}
	if an.Title.Text != "Design of Things" {
		t.Errorf("Title = %q", an.Title.Text)
	}

	o := classifyAll(an)
	if o.Title != "Design of Things" {
		t.Errorf("outline title = %q", o.Title)
	}
	for _, e := range o.Entries {
		if e.Text == o.Title {
			t.Errorf("title appears in entries on page %d", e.Page)
		}
		if e.Text == "Page 1" || e.Text == "Quarterly Review" {
			t.Errorf("furniture %q classified as heading", e.Text)
		}
	}
	for i := 1; i < len(o.Entries); i++ {
		if o.Entries[i].Page < o.Entries[i-1].Page {
			t.Fatalf("entries out of page order: %+v", o.Entries)
		}
	}
}

func TestAnalyzerStandardLevels(t *testing.T) {
	o := classifyAll(NewAnalyzer().Analyze("", reportPages()))

	want := map[string]model.Level{
		"Section A Overview": model.H1,
		"1.1 Numbered Part":  model.H2,
		"Detail A":           model.H2,
		"Section D Overview": model.H1,
		"4.1 Numbered Part":  model.H2,
	}
	got := make(map[string]model.Level)
	for _, e := range o.Entries {
		got[e.Text] = e.Level
	}
	for text, lvl := range want {
		if got[text] != lvl {
			t.Errorf("%q level = %v, want %v", text, got[text], lvl)
		}
	}
	if _, ok := got["Caption A"]; ok {
		t.Error("caption below body size classified as heading")
	}
}

func TestAnalyzerStandardTitleSizeNotLevel(t *testing.T) {
	an := NewAnalyzer().Analyze("", reportPages())
	if _, ok := an.Profile.LevelSizes[32]; ok {
		t.Errorf("title size mapped to a level: %v", an.Profile.LevelSizes)
	}
	if lvl := an.Profile.LevelSizes[24]; lvl != model.H1 {
		t.Errorf("largest non-title size = %v, want H1", lvl)
	}
}

// unnumberedPages is a standard document whose headings carry no numbering:
// a 24pt title, headings at 18, 15 and 13.5, and 10pt body text.
func unnumberedPages() []model.Page {
	heads := [][3]string{
		{"Overview", "Background", "Details"},
		{"Findings", "Method", "Samples"},
	}
	var pages []model.Page
	for i, h := range heads {
		num := i + 1
		var spans []model.Span
		if num == 1 {
			spans = append(spans, makeSpan("Annual Field Report", 24, num, 40))
		}
		spans = append(spans,
			makeSpan(h[0], 18, num, 100),
			makeSpan(h[1], 15, num, 140),
			makeSpan(h[2], 13.5, num, 180),
		)
		for j := 0; j < 8; j++ {
			spans = append(spans, makeSpan(fmt.Sprintf("Paragraph %d on page %d of the report body.", j, num), 10, num, 220+float64(j)*14))
		}
		pages = append(pages, makePage(num, spans...))
	}
	return pages
}

func TestAnalyzerUnnumberedHierarchy(t *testing.T) {
	an := NewAnalyzer().Analyze("", unnumberedPages())
	if an.Profile.Structured {
		t.Fatalf("expected standard strategy, profile = %+v", an.Profile)
	}

	o := classifyAll(an)
	if o.Title != "Annual Field Report" {
		t.Errorf("Title = %q", o.Title)
	}

	want := []struct {
		text string
		lvl  model.Level
		page int
	}{
		{"Overview", model.H1, 1},
		{"Background", model.H2, 1},
		{"Details", model.H3, 1},
		{"Findings", model.H1, 2},
		{"Method", model.H2, 2},
		{"Samples", model.H3, 2},
	}
	if len(o.Entries) != len(want) {
		t.Fatalf("got %d entries, want %d: %+v", len(o.Entries), len(want), o.Entries)
	}
	for i, w := range want {
		e := o.Entries[i]
		if e.Text != w.text || e.Level != w.lvl || e.Page != w.page {
			t.Errorf("entry %d = %q %v p%d, want %q %v p%d", i, e.Text, e.Level, e.Page, w.text, w.lvl, w.page)
		}
	}
}

func TestAnalyzerMetadataTitleNotLevel(t *testing.T) {
	pages := unnumberedPages()
	an := NewAnalyzer().Analyze("Annual Field Report", pages)

	o := classifyAll(an)
	if len(o.Entries) == 0 || o.Entries[0].Text != "Overview" || o.Entries[0].Level != model.H1 {
		t.Errorf("entries = %+v, want Overview as H1 first", o.Entries)
	}
}

func TestAnalyzerUniformDocument(t *testing.T) {
	var pages []model.Page
	for i := 1; i <= 3; i++ {
		spans := bodyLines(10, i, 72)
		for j := range spans {
			spans[j].Text = spans[j].Text + " " + string(rune('a'+i)) + string(rune('a'+j))
		}
		pages = append(pages, makePage(i, spans...))
	}

	o := classifyAll(NewAnalyzer().Analyze("", pages))
	if len(o.Entries) != 0 {
		t.Errorf("uniform document produced %d entries: %+v", len(o.Entries), o.Entries)
	}
	if o.Title != "" {
		t.Errorf("uniform document title = %q, want empty", o.Title)
	}
}

func TestAnalyzerStructuredShortHeadings(t *testing.T) {
	page := makePage(1,
		makeSpan("Jane Doe", 28, 1, 50),
		makeSpan("CV", 18, 1, 100),
		makeSpan("Staff engineer at Example", 12, 1, 130),
		makeSpan("Mix", 18, 1, 160),
		makeSpan("Audio and video production", 12, 1, 190),
		makeSpan("Skills", 18, 1, 220),
		makeSpan("Go, Kubernetes, Postgres", 12, 1, 250),
	)

	o := classifyAll(NewAnalyzer().Analyze("", []model.Page{page}))
	got := make(map[string]model.Level)
	for _, e := range o.Entries {
		got[e.Text] = e.Level
	}
	for _, h := range []string{"CV", "Mix", "Skills"} {
		if got[h] != model.H2 {
			t.Errorf("%q level = %v, want H2 (entries %+v)", h, got[h], o.Entries)
		}
	}
}

func TestAnalyzerStructuredDocument(t *testing.T) {
	page := makePage(1,
		makeSpan("Jane Doe", 28, 1, 50),
		makeSpan("Experience", 18, 1, 120),
		makeSpan("Staff engineer at Example", 12, 1, 150),
		makeSpan("Skills", 18, 1, 200),
		makeSpan("Go, Kubernetes, Postgres", 12, 1, 230),
	)

	an := NewAnalyzer().Analyze("", []model.Page{page})
	if !an.Profile.Structured {
		t.Fatalf("expected structured strategy, profile = %+v", an.Profile)
	}
	o := classifyAll(an)
	if o.Title != "Jane Doe" {
		t.Errorf("Title = %q, want Jane Doe", o.Title)
	}

	// Every span at a mapped size is an entry, numbered or not.
	want := []struct {
		text string
		lvl  model.Level
	}{
		{"Experience", model.H2},
		{"Staff engineer at Example", model.H3},
		{"Skills", model.H2},
		{"Go, Kubernetes, Postgres", model.H3},
	}
	if len(o.Entries) != len(want) {
		t.Fatalf("got %d entries, want %d: %+v", len(o.Entries), len(want), o.Entries)
	}
	for i, w := range want {
		if o.Entries[i].Text != w.text || o.Entries[i].Level != w.lvl {
			t.Errorf("entry %d = %q %v, want %q %v", i, o.Entries[i].Text, o.Entries[i].Level, w.text, w.lvl)
		}
	}
}

func TestAnalyzerMetadataTitleExcluded(t *testing.T) {
	page := makePage(1,
		makeSpan("Handbook", 28, 1, 50),
		makeSpan("Getting Started", 20, 1, 120),
		makeSpan("Usage", 20, 1, 300),
	)
	page.Spans = append(page.Spans, bodyLines(10, 1, 150)...)

	o := classifyAll(NewAnalyzer().Analyze("Handbook", []model.Page{page}))
	if o.Title != "Handbook" {
		t.Errorf("Title = %q", o.Title)
	}
	for _, e := range o.Entries {
		if e.Text == "Handbook" {
			t.Error("metadata title appears in entries")
		}
	}
}

func TestAnalyzerPosterMode(t *testing.T) {
	page := makePage(1,
		makeSpan("Join us", 20, 1, 400),
		makeSpan("HOPE TO SEE YOU THERE", 36, 1, 600),
		makeSpan("Saturday at noon", 14, 1, 100),
	)

	cfg := DefaultConfig()
	cfg.PosterMode = true
	an := NewAnalyzerWithConfig(cfg).Analyze("Flyer", []model.Page{page})
	if an.Poster == nil {
		t.Fatal("expected poster shortcut")
	}
	o := classifyAll(an)
	if o.Title != "" {
		t.Errorf("poster title = %q, want empty", o.Title)
	}
	if len(o.Entries) != 1 || o.Entries[0].Text != "HOPE TO SEE YOU THERE" || o.Entries[0].Level != model.H1 {
		t.Errorf("poster entries = %+v", o.Entries)
	}

	if NewAnalyzer().Analyze("", []model.Page{page}).Poster != nil {
		t.Error("poster shortcut must be opt-in")
	}
}
