// Package pdfoutline extracts a document outline (title plus H1, H2 and H3
// headings with page numbers) from PDF files.
//
// Basic usage:
//
//	res, err := pdfoutline.Open("report.pdf").Outline(ctx)
//	if err != nil {
//	    // res still holds the error result, ready to be written as JSON
//	}
//	data, _ := json.Marshal(res)
//
// With options:
//
//	res, err := pdfoutline.Open("scan.pdf").
//	    Timeout(20 * time.Second).
//	    Workers(4).
//	    Logger(logger).
//	    Outline(ctx)
//
// Scanned pages are recognized with Tesseract when the module is built with
// the "ocr" tag. Without it, pages keep whatever native text they have.
package pdfoutline

// Open returns an Extractor for the PDF at path. Nothing is read until a
// terminal operation such as Outline is called.
//
// Example:
//
//	res, err := pdfoutline.Open("document.pdf").Outline(ctx)
func Open(path string) *Extractor {
	return &Extractor{
		filename: path,
		options:  defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	n := pdfoutline.Must(pdfoutline.Open("document.pdf").PageCount())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
