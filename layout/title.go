package layout

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/tsawler/pdfoutline/model"
	"github.com/tsawler/pdfoutline/text"
)

// Title is the selected document title and the page-1 lines it was built
// from. Parts is empty when the title came from metadata.
type Title struct {
	Text  string
	Parts []model.Span
}

// placeholderTitles are metadata titles left behind by authoring tools.
var placeholderTitles = map[string]bool{
	"untitled":          true,
	"untitled document": true,
	"title":             true,
	"document":          true,
	"microsoft word":    true,
	"slide 1":           true,
}

// SelectTitle picks the document title. A usable metadata title wins;
// otherwise the largest heading-sized line on page 1 is used, extended by
// directly following lines of the same size.
func SelectTitle(meta string, page1 []model.Span, profile model.FontProfile, cfg Config) Title {
	if t := text.Clean(meta); usableMetadataTitle(t) {
		return Title{Text: t}
	}

	spans := make([]model.Span, 0, len(page1))
	for _, s := range page1 {
		if text.Clean(s.Text) != "" {
			spans = append(spans, s)
		}
	}
	sort.SliceStable(spans, func(i, j int) bool { return spans[i].BBox.Y0 < spans[j].BBox.Y0 })

	first := -1
	var best float64
	for i, s := range spans {
		if !IsHeadingSized(s.FontSize, profile, cfg) || text.IsNumeric(s.Text) {
			continue
		}
		c := profile.Canonical(s.FontSize)
		if first < 0 || c > best {
			first, best = i, c
		}
	}
	if first < 0 {
		return Title{}
	}

	parts := []model.Span{spans[first]}
	for _, s := range spans[first+1:] {
		prev := parts[len(parts)-1]
		if !profile.SameSize(profile.Canonical(s.FontSize), best) {
			break
		}
		if s.BBox.Y0-prev.BBox.Y1 > prev.FontSize {
			break
		}
		parts = append(parts, s)
	}

	words := make([]string, len(parts))
	for i, p := range parts {
		words[i] = text.Clean(p.Text)
	}
	return Title{Text: strings.Join(words, " "), Parts: parts}
}

func usableMetadataTitle(t string) bool {
	if t == "" {
		return false
	}
	lower := strings.ToLower(t)
	if placeholderTitles[lower] {
		return false
	}
	// "report_final.docx", "scan0001.pdf"
	if ext := filepath.Ext(lower); ext != "" && len(ext) <= 5 && !strings.Contains(lower, " ") {
		return false
	}
	return true
}

// Matches reports whether span is the title or one of its component lines.
func (t Title) Matches(span model.Span) bool {
	if t.Text == "" {
		return false
	}
	for _, p := range t.Parts {
		if p.Page == span.Page && p.BBox == span.BBox && p.Text == span.Text {
			return true
		}
	}
	return text.Normalize(span.Text) == text.Normalize(t.Text)
}
