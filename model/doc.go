// Package model defines the data structures shared by every stage of the
// outline pipeline.
//
// Acquisition produces [Span] values grouped per [Page]. The layout stage
// reads them, builds a [FontProfile] for the whole document and classifies
// spans into [HeadingCandidate] values, which are assembled into an
// [Outline]. A [Result] wraps either the outline or a document-level error
// and owns the JSON form written for each input file:
//
//	{"title": "...", "outline": [{"level": "H1", "text": "...", "page": 1}]}
//	{"error": "..."}
//
// # Geometry
//
// [BBox] uses a top-left origin with Y growing downwards, so ascending Y0
// is top-to-bottom reading order. Native PDF coordinates are flipped during
// acquisition and OCR pixel boxes are scaled to points.
package model
