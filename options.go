package pdfoutline

import (
	"go.uber.org/zap"

	"github.com/tsawler/pdfoutline/layout"
	"github.com/tsawler/pdfoutline/ocr"
	"github.com/tsawler/pdfoutline/pipeline"
)

// Options holds the configuration of one outline run.
type Options struct {
	pipeline pipeline.Config
	acquire  pipeline.AcquireConfig
	layout   layout.Config
	ocr      ocr.Config

	// OCR
	ocrEnabled bool
	recognizer pipeline.Recognizer // shared, never copied

	logger *zap.Logger
}

// defaultOptions returns the default options.
func defaultOptions() Options {
	return Options{
		pipeline:   pipeline.DefaultConfig(),
		acquire:    pipeline.DefaultAcquireConfig(),
		layout:     layout.DefaultConfig(),
		ocr:        ocr.Config{Language: "eng"},
		ocrEnabled: true,
		logger:     zap.NewNop(),
	}
}

// clone copies the options. Every field is a value or a shared,
// goroutine-safe collaborator.
func (o Options) clone() Options {
	return o
}
