// Package layout infers a document outline from positioned text lines.
//
// The work is split so that only one step needs the whole document:
//
//	analyzer := layout.NewAnalyzer()
//	an := analyzer.Analyze(metaTitle, pages) // cross-page, sequential
//	perPage := make([][]model.HeadingCandidate, len(pages))
//	for i := range pages {
//	    perPage[i] = an.ClassifyPage(i) // independent, may run in parallel
//	}
//	outline := an.Outline(perPage)
//
// # Font Profile
//
// [BuildProfile] clusters font sizes within a relative tolerance and finds
// the body size (the most common cluster). Documents with few distinct
// sizes are "structured" (flyers, resumes): the largest clusters map to
// H1..H3 directly. Other documents map only clusters clearly above body
// text, and numbering such as "2.3" or "Chapter 4" overrides the level.
// [BuildDocumentProfile] leaves the title's lines out of that mapping, so
// the first heading size below the title is H1.
//
// # Noise
//
// [NoiseFilter] drops spans rotated away from the page's dominant
// orientation (watermarks, see [DominantOrientation]) and text that repeats at the same relative
// position on most pages (running headers and footers). The title is never
// dropped.
//
// # Title
//
// [SelectTitle] prefers the metadata title. Otherwise it takes the largest
// heading-sized line on page 1 and joins the lines directly below it that
// share its size.
package layout
