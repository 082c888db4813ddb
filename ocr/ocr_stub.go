//go:build !ocr

// Package ocr provides OCR (Optical Character Recognition) of rendered page
// images for scanned PDFs.
//
// This is the stub implementation used when the "ocr" build tag is not set.
// NewEngine returns ErrOCRNotEnabled.
//
// To enable OCR, rebuild with the "ocr" build tag:
//
//	go build -tags ocr
//
// This requires Tesseract to be installed. On macOS:
//
//	brew install tesseract
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr
package ocr

import (
	"context"
	"image"
)

// Config controls the recognition engine.
type Config struct {
	Language    string
	PageSegMode int
	MaxPixels   int
}

// Engine is a stub engine that returns errors for all operations.
type Engine struct{}

// NewEngine returns an error indicating OCR support is not enabled.
// To enable OCR, rebuild with: go build -tags ocr
func NewEngine(cfg Config) (*Engine, error) {
	return nil, ErrOCRNotEnabled
}

// Recognize returns ErrOCRNotEnabled. It is safe to call on a nil engine.
func (e *Engine) Recognize(ctx context.Context, img image.Image) ([]Word, error) {
	return nil, ErrOCRNotEnabled
}
