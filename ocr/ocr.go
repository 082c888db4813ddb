//go:build ocr

// Package ocr provides OCR (Optical Character Recognition) of rendered page
// images for scanned PDFs.
//
// This package wraps the Tesseract OCR engine via gosseract. It requires
// Tesseract to be installed on the system. On macOS, install via:
//
//	brew install tesseract
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr
package ocr

import (
	"context"
	"fmt"
	"image"

	"github.com/otiai10/gosseract/v2"
)

// Config controls the recognition engine.
type Config struct {
	// Language is a "+" separated list of Tesseract languages. Default "eng".
	Language string

	// PageSegMode is the Tesseract page segmentation mode. Default 3 (auto).
	PageSegMode int

	// MaxPixels caps the prepared image size. 0 disables scaling.
	MaxPixels int
}

// Engine recognizes words in page images. A gosseract client is not safe for
// concurrent use, so every Recognize call gets its own client; Engine itself
// may be shared between goroutines.
type Engine struct {
	cfg Config
}

// NewEngine creates an engine. It verifies that Tesseract can be initialized
// for the configured language.
func NewEngine(cfg Config) (*Engine, error) {
	if cfg.Language == "" {
		cfg.Language = "eng"
	}
	if cfg.PageSegMode <= 0 {
		cfg.PageSegMode = int(gosseract.PSM_AUTO)
	}

	c := gosseract.NewClient()
	defer c.Close()
	if err := c.SetLanguage(cfg.Language); err != nil {
		return nil, fmt.Errorf("failed to set language %q: %w", cfg.Language, err)
	}
	return &Engine{cfg: cfg}, nil
}

// Recognize runs OCR over img and returns every word with its bounding box
// in img's pixel coordinates.
func (e *Engine) Recognize(ctx context.Context, img image.Image) ([]Word, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	prepared, scale := Prepare(img, e.cfg.MaxPixels)
	data, err := EncodePNG(prepared)
	if err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(e.cfg.Language); err != nil {
		return nil, fmt.Errorf("failed to set language: %w", err)
	}
	if err := client.SetPageSegMode(gosseract.PageSegMode(e.cfg.PageSegMode)); err != nil {
		return nil, fmt.Errorf("failed to set page segmentation mode: %w", err)
	}
	if err := client.SetImageFromBytes(data); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	boxes, err := client.GetBoundingBoxesVerbose()
	if err != nil {
		return nil, fmt.Errorf("OCR failed: %w", err)
	}

	origin := img.Bounds().Min
	words := make([]Word, 0, len(boxes))
	for _, b := range boxes {
		words = append(words, Word{
			Text:       b.Word,
			Box:        unscale(b.Box, scale).Add(origin),
			Confidence: b.Confidence,
			Block:      b.BlockNum,
			Paragraph:  b.ParNum,
			Line:       b.LineNum,
		})
	}
	return words, ctx.Err()
}
