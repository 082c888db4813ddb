package text

import (
	"golang.org/x/text/unicode/bidi"
)

// Direction is the writing direction of a piece of text.
type Direction int

const (
	// LTR (Left-to-Right) for Latin, Cyrillic, CJK, etc.
	LTR Direction = iota
	// RTL (Right-to-Left) for Arabic, Hebrew, etc.
	RTL
	// Neutral for digits, punctuation and spaces.
	Neutral
)

// String returns "LTR", "RTL" or "Neutral".
func (d Direction) String() string {
	switch d {
	case LTR:
		return "LTR"
	case RTL:
		return "RTL"
	case Neutral:
		return "Neutral"
	default:
		return "Unknown"
	}
}

// CharDirection returns the strong direction of r from its Unicode
// bidirectional class.
func CharDirection(r rune) Direction {
	p, _ := bidi.LookupRune(r)
	switch p.Class() {
	case bidi.L:
		return LTR
	case bidi.R, bidi.AL:
		return RTL
	default:
		return Neutral
	}
}

// DetectDirection returns the direction with more strong characters in s.
// Ties go to LTR; text without strong characters is Neutral.
func DetectDirection(s string) Direction {
	var ltr, rtl int
	for _, r := range s {
		switch CharDirection(r) {
		case LTR:
			ltr++
		case RTL:
			rtl++
		}
	}
	switch {
	case ltr == 0 && rtl == 0:
		return Neutral
	case rtl > ltr:
		return RTL
	default:
		return LTR
	}
}
