// Package text provides the string and angle helpers shared by acquisition
// and layout analysis.
//
// # Cleaning and Comparison
//
// [Clean] normalizes whitespace in extracted text. [Normalize] produces a
// comparison key (NFKC, case-folded, collapsed whitespace) so that text
// decoded through different font encodings, or recognized by OCR, compares
// equal. [Template] additionally replaces digit runs with '#', which lets
// running headers such as "Page 3 of 12" match across pages.
//
// # Orientation
//
// Span orientation is an angle in degrees. [NormalizeAngle] folds any angle
// into (-180, 180] and [AngleDelta] returns the smallest difference between
// two angles, which is what watermark detection compares against its
// tolerance.
//
// # Direction
//
// [DetectDirection] classifies text as LTR, RTL or Neutral from Unicode
// bidirectional classes. Line assembly uses it to read right-to-left lines
// from the far end of the baseline.
package text
