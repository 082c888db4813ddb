package layout

import (
	"fmt"
	"math"
	"sort"

	"github.com/tsawler/pdfoutline/model"
	"github.com/tsawler/pdfoutline/text"
)

// NoiseFilter removes spans that are page furniture rather than content:
// watermarks set at an angle to the page text, and headers or footers that
// repeat verbatim at the same place on most pages.
type NoiseFilter struct {
	config Config
}

// NewNoiseFilter creates a filter with the given configuration
func NewNoiseFilter(config Config) *NoiseFilter {
	return &NoiseFilter{config: config}
}

// RepetitionStats records which (text, position) keys recur across pages.
type RepetitionStats struct {
	furniture map[string]int // key -> number of pages it appears on
	pages     int
	enabled   bool
}

// Repeated reports whether the span is recurring furniture.
func (r RepetitionStats) Repeated(span model.Span, pageHeight, band float64) bool {
	if !r.enabled {
		return false
	}
	_, ok := r.furniture[repetitionKey(span, pageHeight, band)]
	return ok
}

// Keys returns the number of recurring keys.
func (r RepetitionStats) Keys() int {
	return len(r.furniture)
}

// Stats counts, for every normalized text and position band, the number of
// pages it appears on. Keys present on more than RepeatFraction of pages
// are furniture. Short documents are never filtered.
func (f *NoiseFilter) Stats(pages []model.Page) RepetitionStats {
	stats := RepetitionStats{pages: len(pages), furniture: make(map[string]int)}
	if len(pages) < f.config.RepeatMinPages || len(pages) == 0 {
		return stats
	}
	stats.enabled = true

	counts := make(map[string]int)
	for _, p := range pages {
		seen := make(map[string]bool)
		for _, s := range p.Spans {
			k := repetitionKey(s, p.Height, f.config.RepeatBand)
			if !seen[k] {
				seen[k] = true
				counts[k]++
			}
		}
	}

	threshold := f.config.RepeatFraction * float64(len(pages))
	for k, n := range counts {
		if float64(n) > threshold {
			stats.furniture[k] = n
		}
	}
	return stats
}

// Filter returns the page's spans without watermarks and repeated
// furniture. Spans matching the title are always kept.
func (f *NoiseFilter) Filter(page model.Page, title Title, stats RepetitionStats) []model.Span {
	if len(page.Spans) == 0 {
		return nil
	}

	dominant := DominantOrientation(page.Spans)
	out := make([]model.Span, 0, len(page.Spans))
	for _, s := range page.Spans {
		if title.Matches(s) {
			out = append(out, s)
			continue
		}
		if text.AngleDelta(s.Orientation, dominant) > f.config.OrientationTolerance {
			continue
		}
		if stats.Repeated(s, page.Height, f.config.RepeatBand) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// levelBand is how far from level, in degrees, an angle still counts as
// horizontal text.
const levelBand = 10

// DominantOrientation is the page's text orientation. Any near-level text
// makes the page horizontal, so a long diagonal watermark on a sparse page
// cannot outvote it; the heaviest near-level angle wins. Pages with no
// near-level text take the rune-weighted most common angle. Angles are
// rounded to whole degrees and ties go to the angle closest to level.
func DominantOrientation(spans []model.Span) float64 {
	weights := make(map[float64]int)
	for _, s := range spans {
		weights[text.RoundAngle(s.Orientation)] += s.RuneCount()
	}
	if len(weights) == 0 {
		return 0
	}

	angles := make([]float64, 0, len(weights))
	for a := range weights {
		angles = append(angles, a)
	}
	sort.Slice(angles, func(i, j int) bool {
		if weights[angles[i]] != weights[angles[j]] {
			return weights[angles[i]] > weights[angles[j]]
		}
		return math.Abs(angles[i]) < math.Abs(angles[j])
	})
	for _, a := range angles {
		if math.Abs(a) <= levelBand {
			return a
		}
	}
	return angles[0]
}

// repetitionKey combines normalized text, with digit runs folded so page
// numbers match, and the quantized vertical position.
func repetitionKey(s model.Span, pageHeight, band float64) string {
	pos := 0
	if pageHeight > 0 && band > 0 {
		pos = int(math.Floor(s.BBox.Y0 / pageHeight / band))
	}
	return fmt.Sprintf("%s|%d", text.Template(text.Normalize(s.Text)), pos)
}
