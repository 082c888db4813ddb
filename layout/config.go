package layout

// Config holds the thresholds used by profiling, classification and noise
// filtering.
type Config struct {
	// SizeTolerance is the relative band within which two font sizes are
	// treated as the same size.
	// Default: 0.05 (5% of the larger size)
	SizeTolerance float64

	// StructuredMaxSizes is the largest number of distinct sizes for which a
	// document is classified with the structured strategy.
	// Default: 4
	StructuredMaxSizes int

	// MinHeadingRatio is the minimum size relative to body text for a span
	// to count as heading-sized.
	// Default: 1.05
	MinHeadingRatio float64

	// StandardMaxWords and StructuredMaxWords bound heading length. A span
	// must have fewer words than the limit of its strategy.
	// Default: 20 and 10
	StandardMaxWords   int
	StructuredMaxWords int

	// OrientationTolerance is how far, in degrees, a span may deviate from
	// the page's dominant orientation before it is treated as a watermark.
	// Default: 8
	OrientationTolerance float64

	// RepeatFraction is the share of pages a span must appear on, at the same
	// relative position, to be treated as header or footer furniture.
	// Default: 0.5 (strictly more than half)
	RepeatFraction float64

	// RepeatBand is the height of a position band as a fraction of the page
	// height.
	// Default: 0.05
	RepeatBand float64

	// RepeatMinPages is the minimum document length for repetition filtering.
	// Default: 3
	RepeatMinPages int

	// PosterMode enables the single-page poster shortcut: a one-page
	// document with little prose yields its largest line as the only H1.
	// Default: false
	PosterMode bool
}

// DefaultConfig returns sensible default configuration
func DefaultConfig() Config {
	return Config{
		SizeTolerance:        0.05,
		StructuredMaxSizes:   4,
		MinHeadingRatio:      1.05,
		StandardMaxWords:     20,
		StructuredMaxWords:   10,
		OrientationTolerance: 8,
		RepeatFraction:       0.5,
		RepeatBand:           0.05,
		RepeatMinPages:       3,
	}
}
