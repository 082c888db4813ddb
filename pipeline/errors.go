package pipeline

import "errors"

var (
	// ErrPageCountExceeded is returned for documents longer than MaxPages.
	// No page is extracted.
	ErrPageCountExceeded = errors.New("page count exceeded")

	// ErrExtractionFailure marks a page, or a whole document, from which no
	// text could be obtained.
	ErrExtractionFailure = errors.New("extraction failure")

	// ErrOCRFailure marks a page whose rendering or recognition failed.
	ErrOCRFailure = errors.New("ocr failure")

	// ErrTimeoutExceeded is returned when a document does not finish within
	// the configured timeout. A partial outline is never returned.
	ErrTimeoutExceeded = errors.New("timeout exceeded")

	// ErrMalformedDocument is returned for files that are not readable PDFs.
	ErrMalformedDocument = errors.New("malformed document")
)
