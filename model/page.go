package model

// Page holds everything acquired for a single PDF page.
type Page struct {
	Number int     // 1-indexed page number
	Width  float64 // Page width in points
	Height float64 // Page height in points

	// Spans in top-to-bottom reading order.
	Spans []Span

	// Source is SourceOCR when the page fell back to recognition.
	Source Source

	// Err records a per-page failure that was absorbed. A page with Err set
	// may still carry spans from the path that did succeed.
	Err error
}

// RuneCount returns the total number of characters on the page.
func (p *Page) RuneCount() int {
	n := 0
	for _, s := range p.Spans {
		n += s.RuneCount()
	}
	return n
}

// AllSpans flattens the spans of every page, preserving page order.
func AllSpans(pages []Page) []Span {
	n := 0
	for i := range pages {
		n += len(pages[i].Spans)
	}
	out := make([]Span, 0, n)
	for i := range pages {
		out = append(out, pages[i].Spans...)
	}
	return out
}
