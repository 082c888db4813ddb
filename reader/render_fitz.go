//go:build ocr

package reader

import (
	"fmt"
	"image"

	"github.com/gen2brain/go-fitz"
)

// fitzRenderer renders through MuPDF. go-fitz serializes calls on a
// document internally.
type fitzRenderer struct {
	doc *fitz.Document
}

func newRenderer(path string) (renderer, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open document for rendering: %w", err)
	}
	return &fitzRenderer{doc: doc}, nil
}

func (r *fitzRenderer) Image(page int, dpi float64) (image.Image, error) {
	if page < 0 || page >= r.doc.NumPage() {
		return nil, fmt.Errorf("page %d out of range", page+1)
	}
	img, err := r.doc.ImageDPI(page, dpi)
	if err != nil {
		return nil, fmt.Errorf("failed to render page %d: %w", page+1, err)
	}
	return img, nil
}

func (r *fitzRenderer) HTML(page int) (string, error) {
	if page < 0 || page >= r.doc.NumPage() {
		return "", fmt.Errorf("page %d out of range", page+1)
	}
	html, err := r.doc.HTML(page, false)
	if err != nil {
		return "", fmt.Errorf("failed to read layout of page %d: %w", page+1, err)
	}
	return html, nil
}

func (r *fitzRenderer) Close() error {
	return r.doc.Close()
}
