package layout

import (
	"sort"
	"strings"

	"github.com/tsawler/pdfoutline/model"
	"github.com/tsawler/pdfoutline/text"
)

// Assemble builds the outline from per-page candidates. perPage[i] holds the
// candidates of one page in top-to-bottom order; pages are concatenated in
// page order and never re-sorted by level or text. Exact (text, page)
// duplicates are dropped and a candidate starting with "&" is appended to
// the previous one on the same page and level.
func Assemble(title string, perPage [][]model.HeadingCandidate) model.Outline {
	pages := make([][]model.HeadingCandidate, len(perPage))
	copy(pages, perPage)
	sort.SliceStable(pages, func(i, j int) bool {
		return firstPage(pages[i]) < firstPage(pages[j])
	})

	type key struct {
		text string
		page int
	}
	seen := make(map[key]bool)

	entries := make([]model.HeadingCandidate, 0)
	for _, cands := range pages {
		for _, c := range cands {
			k := key{c.Text, c.Page}
			if seen[k] {
				continue
			}
			seen[k] = true

			if n := len(entries); n > 0 && strings.HasPrefix(strings.TrimSpace(c.Text), "&") {
				prev := &entries[n-1]
				if prev.Page == c.Page && prev.Level == c.Level {
					prev.Text = text.Clean(prev.Text + " " + c.Text)
					prev.BBox = prev.BBox.Union(c.BBox)
					continue
				}
			}
			entries = append(entries, c)
		}
	}

	return model.Outline{Title: text.Clean(title), Entries: entries}
}

// firstPage orders empty slices last.
func firstPage(cands []model.HeadingCandidate) int {
	if len(cands) == 0 {
		return int(^uint(0) >> 1)
	}
	return cands[0].Page
}
