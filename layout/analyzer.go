package layout

import (
	"github.com/tsawler/pdfoutline/model"
)

// Analyzer runs the cross-page analysis of a document: repetition
// statistics, title selection, noise filtering and font profiling. The
// result is read-only and classifies pages independently, so pages can be
// classified in parallel.
type Analyzer struct {
	config Config
	noise  *NoiseFilter
}

// NewAnalyzer creates an analyzer with default configuration
func NewAnalyzer() *Analyzer {
	return NewAnalyzerWithConfig(DefaultConfig())
}

// NewAnalyzerWithConfig creates an analyzer with custom configuration
func NewAnalyzerWithConfig(config Config) *Analyzer {
	return &Analyzer{config: config, noise: NewNoiseFilter(config)}
}

// Config returns the analyzer configuration.
func (a *Analyzer) Config() Config {
	return a.config
}

// Analysis is the document-wide state shared by every page in pass 2.
type Analysis struct {
	// Title is the selected document title.
	Title Title

	// Pages are the acquired pages with noise removed, in page order.
	Pages []model.Page

	// Profile is built from the filtered spans of every page.
	Profile model.FontProfile

	// Repetition is the cross-page furniture statistic.
	Repetition RepetitionStats

	// Poster is set when the single-page poster shortcut produced the
	// outline; classification is skipped.
	Poster *model.Outline

	config Config
}

// Analyze runs the sequential cross-page step. pages must be in page order.
// The title is chosen before noise filtering, against a preliminary
// profile, so the filter can protect it. Once chosen it takes no part in
// level assignment.
func (a *Analyzer) Analyze(meta string, pages []model.Page) *Analysis {
	an := &Analysis{config: a.config}

	if o, ok := Poster(pages, a.config); ok {
		an.Poster = &o
		an.Pages = pages
		return an
	}

	an.Repetition = a.noise.Stats(pages)

	prelim := BuildProfile(model.AllSpans(pages), a.config)
	var page1 []model.Span
	if len(pages) > 0 {
		page1 = pages[0].Spans
	}
	an.Title = SelectTitle(meta, page1, prelim, a.config)

	an.Pages = make([]model.Page, len(pages))
	for i, p := range pages {
		filtered := p
		filtered.Spans = a.noise.Filter(p, an.Title, an.Repetition)
		an.Pages[i] = filtered
	}

	an.Profile = BuildDocumentProfile(model.AllSpans(an.Pages), an.Title, a.config)
	return an
}

// ClassifyPage returns the heading candidates of page index i (0-based).
func (an *Analysis) ClassifyPage(i int) []model.HeadingCandidate {
	if an.Poster != nil || i < 0 || i >= len(an.Pages) {
		return nil
	}
	return ClassifyPage(an.Pages[i].Spans, an.Title, an.Profile, an.config)
}

// Outline assembles per-page candidates, indexed by page, into the final
// outline.
func (an *Analysis) Outline(perPage [][]model.HeadingCandidate) model.Outline {
	if an.Poster != nil {
		return *an.Poster
	}
	return Assemble(an.Title.Text, perPage)
}
