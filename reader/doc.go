// Package reader opens PDF files and turns each page into positioned text
// lines.
//
// # Opening PDF Files
//
//	doc, err := reader.Open("document.pdf")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer doc.Close()
//
// # Text Extraction
//
// [Document.TextSpans] interprets the page content streams, keeping the full
// text rendering matrix so every line reports its effective font size and
// baseline orientation. Show operators on a shared baseline are merged into
// one line span; wide gaps along the baseline split columns.
//
// When a content stream cannot be interpreted, the MuPDF layout of the page
// is used instead. That fallback, and [Document.Render], need a build with
// the ocr tag; other builds return [ErrRenderNotEnabled].
//
// # Coordinates
//
// Spans use page space: points, origin at the top-left corner of the
// MediaBox, Y growing downwards.
package reader
