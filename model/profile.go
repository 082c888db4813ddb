package model

import "math"

// FontProfile is the whole-document font statistic that drives heading
// classification. It is built once per document and only read afterwards.
type FontProfile struct {
	// BodySize is the most frequent (clustered) font size.
	BodySize float64

	// CandidateSizes are the cluster sizes strictly larger than BodySize,
	// largest first.
	CandidateSizes []float64

	// LevelSizes maps up to three cluster sizes onto H1, H2 and H3.
	LevelSizes map[float64]Level

	// Structured is set for documents with very few distinct sizes
	// (flyers, resumes) where sizes map to levels directly.
	Structured bool

	// Distinct is the number of size clusters in the document.
	Distinct int

	// Clusters lists every cluster representative, largest first.
	Clusters []float64

	// Tolerance is the relative band within which two sizes are the same.
	Tolerance float64
}

// SameSize reports whether a and b fall within the profile's tolerance band.
func (p FontProfile) SameSize(a, b float64) bool {
	return SizesEqual(a, b, p.Tolerance)
}

// Canonical maps a raw font size onto the nearest cluster representative
// within tolerance. Sizes outside every cluster are returned unchanged.
func (p FontProfile) Canonical(size float64) float64 {
	best, bestDiff := size, math.Inf(1)
	for _, c := range p.Clusters {
		if !p.SameSize(size, c) {
			continue
		}
		if d := math.Abs(size - c); d < bestDiff {
			best, bestDiff = c, d
		}
	}
	return best
}

// LevelFor returns the level mapped to the cluster containing size.
func (p FontProfile) LevelFor(size float64) (Level, bool) {
	lvl, ok := p.LevelSizes[p.Canonical(size)]
	return lvl, ok
}

// Ambiguous reports whether size lies within tolerance of more than one
// level size.
func (p FontProfile) Ambiguous(size float64) bool {
	n := 0
	for s := range p.LevelSizes {
		if p.SameSize(size, s) {
			n++
		}
	}
	return n > 1
}

// SizesEqual reports whether two sizes differ by no more than tol relative
// to the larger one.
func SizesEqual(a, b, tol float64) bool {
	hi := math.Max(a, b)
	if hi <= 0 {
		return a == b
	}
	return math.Abs(a-b) <= hi*tol
}
