package model

import "unicode/utf8"

// Source identifies how a span's text was obtained.
type Source int

const (
	// SourceNative is text decoded from the page content stream.
	SourceNative Source = iota
	// SourceOCR is text recognized from a rendered page image.
	SourceOCR
)

// String returns "native" or "ocr".
func (s Source) String() string {
	if s == SourceOCR {
		return "ocr"
	}
	return "native"
}

// Span is a line of text with its position, size and orientation.
// Spans are never modified after acquisition.
type Span struct {
	// Text is whitespace-normalized line text.
	Text string

	// FontSize is the effective font size in points. Always positive.
	FontSize float64

	// BBox is the line's bounding box in page space.
	BBox BBox

	// Page is the 1-based page number.
	Page int

	// Orientation is the baseline angle in degrees, counter-clockwise,
	// in (-180, 180]. Horizontal text is 0.
	Orientation float64

	// Source records native extraction or OCR.
	Source Source

	// Confidence is the mean OCR word confidence (0-100); 0 for native text.
	Confidence float64
}

// RuneCount returns the number of characters in the span text.
func (s Span) RuneCount() int {
	return utf8.RuneCountInString(s.Text)
}
