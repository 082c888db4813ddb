package pipeline

import (
	"context"
	"image"

	"github.com/tsawler/pdfoutline/model"
	"github.com/tsawler/pdfoutline/ocr"
)

// Document is an open PDF. Page numbers are 1-based. Implementations must
// be safe for concurrent use; *reader.Document is the production one.
type Document interface {
	NumPage() int
	Title() string
	PageSize(page int) (w, h float64)
	TextSpans(page int) ([]model.Span, error)
	Render(page int, dpi float64) (image.Image, error)
	Close() error
}

// Recognizer turns a page image into words. *ocr.Engine is the production
// implementation.
type Recognizer interface {
	Recognize(ctx context.Context, img image.Image) ([]ocr.Word, error)
}
