package pdfoutline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/tsawler/pdfoutline/batch"
	"github.com/tsawler/pdfoutline/config"
	"github.com/tsawler/pdfoutline/layout"
	"github.com/tsawler/pdfoutline/model"
	"github.com/tsawler/pdfoutline/ocr"
	"github.com/tsawler/pdfoutline/pipeline"
	"github.com/tsawler/pdfoutline/reader"
)

// Extractor provides a fluent interface for outlining a PDF. Each
// configuration method returns a new Extractor, so a configured Extractor
// can be shared and reused for many files.
type Extractor struct {
	filename string
	options  Options

	// Accumulated error (fail-fast)
	err error
}

// clone creates a copy of the Extractor.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		filename: e.filename,
		options:  e.options.clone(),
		err:      e.err,
	}
}

// ============================================================================
// Configuration Methods (return new Extractor instance)
// ============================================================================

// File returns an Extractor with the same configuration for another path.
func (e *Extractor) File(path string) *Extractor {
	newExt := e.clone()
	newExt.filename = path
	return newExt
}

// Timeout sets the wall-clock budget for one document. Default 10s.
func (e *Extractor) Timeout(d time.Duration) *Extractor {
	newExt := e.clone()
	if d <= 0 {
		newExt.err = fmt.Errorf("invalid timeout %s: must be positive", d)
		return newExt
	}
	newExt.options.pipeline.Timeout = d
	return newExt
}

// Workers sets how many pages are processed at once. Default is the number
// of CPUs.
func (e *Extractor) Workers(n int) *Extractor {
	newExt := e.clone()
	if n <= 0 {
		newExt.err = fmt.Errorf("invalid worker count %d: must be positive", n)
		return newExt
	}
	newExt.options.pipeline.Workers = n
	return newExt
}

// MaxPages sets the longest document accepted. Default 50.
func (e *Extractor) MaxPages(n int) *Extractor {
	newExt := e.clone()
	if n <= 0 {
		newExt.err = fmt.Errorf("invalid page limit %d: must be positive", n)
		return newExt
	}
	newExt.options.pipeline.MaxPages = n
	return newExt
}

// Layout replaces the heading inference thresholds.
func (e *Extractor) Layout(cfg layout.Config) *Extractor {
	newExt := e.clone()
	newExt.options.layout = cfg
	return newExt
}

// PosterMode enables the single-page poster shortcut.
func (e *Extractor) PosterMode() *Extractor {
	newExt := e.clone()
	newExt.options.layout.PosterMode = true
	return newExt
}

// WithConfig applies a loaded configuration file. Later calls such as
// Timeout still override it.
func (e *Extractor) WithConfig(cfg *config.Config) *Extractor {
	newExt := e.clone()
	newExt.options.pipeline = cfg.PipelineOptions()
	newExt.options.acquire = cfg.AcquireOptions()
	newExt.options.layout = cfg.LayoutOptions()
	newExt.options.ocr = cfg.OCROptions()
	return newExt
}

// DisableOCR keeps native text for every page, however little there is.
func (e *Extractor) DisableOCR() *Extractor {
	newExt := e.clone()
	newExt.options.ocrEnabled = false
	newExt.options.recognizer = nil
	return newExt
}

// Recognizer sets the OCR engine used for pages without enough native text.
// It must be safe for concurrent use. By default an engine is created per
// document when OCR support is built in.
func (e *Extractor) Recognizer(r pipeline.Recognizer) *Extractor {
	newExt := e.clone()
	newExt.options.recognizer = r
	newExt.options.ocrEnabled = r != nil
	return newExt
}

// Logger sets the logger. The default discards everything.
func (e *Extractor) Logger(l *zap.Logger) *Extractor {
	newExt := e.clone()
	if l == nil {
		l = zap.NewNop()
	}
	newExt.options.logger = l
	return newExt
}

// ============================================================================
// Terminal Operations
// ============================================================================

// Outline runs the full pipeline on the file. The Result is always usable:
// on failure it carries the error and marshals to {"error": ...}. The
// returned error is the same as Result.Err.
func (e *Extractor) Outline(ctx context.Context) (model.Result, error) {
	if e.err != nil {
		return model.Failure(e.err), e.err
	}
	if e.filename == "" {
		err := fmt.Errorf("no filename specified")
		return model.Failure(err), err
	}

	log := e.options.logger.With(zap.String("file", e.filename))

	doc, err := reader.Open(e.filename)
	if err != nil {
		err = openError(err)
		return model.Failure(err), err
	}
	log.Debug("document opened",
		zap.Stringer("version", doc.Version()),
		zap.Int("pages", doc.NumPage()))

	acq := pipeline.NewAcquirer(e.options.acquire, e.recognizer(log), log)
	sched := pipeline.NewScheduler(e.options.pipeline, acq, layout.NewAnalyzerWithConfig(e.options.layout), log)

	// The scheduler owns doc from here and closes it.
	res := sched.Run(ctx, doc)
	return res, res.Err
}

// PageCount returns the number of pages without extracting anything.
func (e *Extractor) PageCount() (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	doc, err := reader.Open(e.filename)
	if err != nil {
		return 0, openError(err)
	}
	defer doc.Close()
	return doc.NumPage(), nil
}

// OutlineFunc returns a batch.OutlineFunc with this configuration. The OCR
// engine, when available, is created once and shared by every document.
func (e *Extractor) OutlineFunc() batch.OutlineFunc {
	base := e
	if e.options.ocrEnabled && e.options.recognizer == nil {
		if rec := e.recognizer(e.options.logger); rec != nil {
			base = e.Recognizer(rec)
		} else {
			base = e.DisableOCR()
		}
	}
	return func(ctx context.Context, path string) model.Result {
		res, _ := base.File(path).Outline(ctx)
		return res
	}
}

// recognizer returns the configured engine, creates one, or returns nil
// when OCR is disabled or not built in. A nil interface, never a typed nil
// pointer, is returned on failure.
func (e *Extractor) recognizer(log *zap.Logger) pipeline.Recognizer {
	if !e.options.ocrEnabled {
		return nil
	}
	if e.options.recognizer != nil {
		return e.options.recognizer
	}
	eng, err := ocr.NewEngine(e.options.ocr)
	if err != nil {
		if errors.Is(err, ocr.ErrOCRNotEnabled) {
			log.Debug("ocr not built in")
		} else {
			log.Warn("ocr engine unavailable", zap.Error(err))
		}
		return nil
	}
	return eng
}

// openError maps reader failures onto the pipeline's error kinds.
func openError(err error) error {
	if errors.Is(err, reader.ErrMalformed) {
		return fmt.Errorf("%w: %v", pipeline.ErrMalformedDocument, err)
	}
	return err
}
