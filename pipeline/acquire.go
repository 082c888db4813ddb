package pipeline

import (
	"context"
	"errors"
	"fmt"
	"image"
	"time"

	"go.uber.org/zap"

	"github.com/tsawler/pdfoutline/model"
	"github.com/tsawler/pdfoutline/ocr"
	"github.com/tsawler/pdfoutline/reader"
	"github.com/tsawler/pdfoutline/text"
)

// AcquireConfig controls the native/OCR decision for each page.
type AcquireConfig struct {
	// TextThreshold is the rune count below which a page is sent to OCR.
	// Default: 150
	TextThreshold int

	// OCRDPI is the rendering resolution for OCR.
	// Default: 300
	OCRDPI float64

	// OCRMinConfidence drops recognized words below this confidence (0-100).
	// Default: 50
	OCRMinConfidence float64

	// OCRSizeScale converts glyph box height into a font size comparable to
	// native sizes. Word boxes cover ascenders and descenders, so they run
	// taller than the nominal size.
	// Default: 1.0
	OCRSizeScale float64
}

// DefaultAcquireConfig returns sensible default configuration
func DefaultAcquireConfig() AcquireConfig {
	return AcquireConfig{
		TextThreshold:    150,
		OCRDPI:           300,
		OCRMinConfidence: 50,
		OCRSizeScale:     1.0,
	}
}

// Acquirer produces the spans of a single page: native text when the page
// has enough of it, OCR otherwise.
type Acquirer struct {
	config     AcquireConfig
	recognizer Recognizer
	logger     *zap.Logger
}

// NewAcquirer creates an acquirer. recognizer may be nil, in which case
// pages below the threshold keep whatever native text they have.
func NewAcquirer(config AcquireConfig, recognizer Recognizer, logger *zap.Logger) *Acquirer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Acquirer{config: config, recognizer: recognizer, logger: logger}
}

// Acquire returns the page at pageIndex (0-based). Failures are recorded in
// Page.Err and never abort the document.
func (a *Acquirer) Acquire(ctx context.Context, doc Document, pageIndex int) model.Page {
	num := pageIndex + 1
	page := model.Page{Number: num, Source: model.SourceNative}
	page.Width, page.Height = doc.PageSize(num)
	log := a.logger.With(zap.Int("page", num))

	spans, nativeErr := nativeSpans(doc, num)
	page.Spans = spans
	if nativeErr != nil {
		log.Warn("native extraction failed", zap.Error(nativeErr))
	}
	if page.RuneCount() >= a.config.TextThreshold {
		return page
	}
	if ctx.Err() != nil {
		page.Err = ctx.Err()
		return page
	}

	start := time.Now()
	ocrSpans, ocrErr := a.recognize(ctx, doc, num)
	switch {
	case ocrErr == nil && runeCount(ocrSpans) > page.RuneCount():
		page.Spans = ocrSpans
		page.Source = model.SourceOCR
		log.Debug("page recognized",
			zap.String("source", model.SourceOCR.String()),
			zap.Int("lines", len(ocrSpans)),
			zap.Duration("duration", time.Since(start)))
	case ocrErr != nil && !unavailable(ocrErr):
		log.Warn("ocr failed", zap.Error(ocrErr))
		page.Err = fmt.Errorf("%w: page %d: %v", ErrOCRFailure, num, ocrErr)
	}

	if len(page.Spans) == 0 && nativeErr != nil {
		page.Err = fmt.Errorf("%w: page %d: %v", ErrExtractionFailure, num, nativeErr)
	}
	return page
}

// nativeSpans calls the document and keeps only usable spans. A panic from
// the PDF library is converted to an error.
func nativeSpans(doc Document, num int) (spans []model.Span, err error) {
	defer func() {
		if p := recover(); p != nil {
			spans, err = nil, fmt.Errorf("panic: %v", p)
		}
	}()

	raw, err := doc.TextSpans(num)
	if err != nil {
		return nil, err
	}
	spans = make([]model.Span, 0, len(raw))
	for _, s := range raw {
		s.Text = text.Clean(s.Text)
		if s.Text == "" || s.FontSize <= 0 {
			continue
		}
		spans = append(spans, s)
	}
	return spans, nil
}

func (a *Acquirer) recognize(ctx context.Context, doc Document, num int) (spans []model.Span, err error) {
	if a.recognizer == nil {
		return nil, ocr.ErrOCRNotEnabled
	}
	defer func() {
		if p := recover(); p != nil {
			spans, err = nil, fmt.Errorf("panic: %v", p)
		}
	}()

	img, err := doc.Render(num, a.config.OCRDPI)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	words, err := a.recognizer.Recognize(ctx, img)
	if err != nil {
		return nil, fmt.Errorf("recognize: %w", err)
	}
	return a.linesToSpans(ocr.GroupLines(words, a.config.OCRMinConfidence), num), nil
}

// linesToSpans converts pixel-space lines into point-space spans.
func (a *Acquirer) linesToSpans(lines []ocr.Line, num int) []model.Span {
	toPoints := 72 / a.config.OCRDPI
	spans := make([]model.Span, 0, len(lines))
	for _, l := range lines {
		size := l.Height * toPoints * a.config.OCRSizeScale
		if size <= 0 || l.Text == "" {
			continue
		}
		spans = append(spans, model.Span{
			Text:       l.Text,
			FontSize:   size,
			BBox:       rectToBBox(l.Box).Scale(toPoints),
			Page:       num,
			Source:     model.SourceOCR,
			Confidence: l.Confidence,
		})
	}
	return spans
}

func rectToBBox(r image.Rectangle) model.BBox {
	return model.BBox{
		X0: float64(r.Min.X),
		Y0: float64(r.Min.Y),
		X1: float64(r.Max.X),
		Y1: float64(r.Max.Y),
	}
}

// unavailable reports whether err only says OCR is not built in.
func unavailable(err error) bool {
	return errors.Is(err, ocr.ErrOCRNotEnabled) || errors.Is(err, reader.ErrRenderNotEnabled)
}

func runeCount(spans []model.Span) int {
	n := 0
	for _, s := range spans {
		n += s.RuneCount()
	}
	return n
}
