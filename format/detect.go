// Package format identifies PDF inputs by name and by content.
package format

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Format represents an input format.
type Format int

const (
	// Unknown indicates anything that is not a PDF.
	Unknown Format = iota
	// PDF indicates a PDF document.
	PDF
)

// pdfMagic is the header every PDF file starts with.
var pdfMagic = []byte("%PDF-")

// String returns the string representation of the format.
func (f Format) String() string {
	if f == PDF {
		return "PDF"
	}
	return "Unknown"
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	if f == PDF {
		return ".pdf"
	}
	return ""
}

// Detect determines file format from filename extension, ignoring case.
func Detect(filename string) Format {
	if strings.EqualFold(filepath.Ext(filename), ".pdf") {
		return PDF
	}
	return Unknown
}

// DetectFromMagic checks the leading bytes of a file.
func DetectFromMagic(data []byte) Format {
	if bytes.HasPrefix(data, pdfMagic) {
		return PDF
	}
	return Unknown
}

// DetectFromReader reads just enough of r to check the magic bytes.
func DetectFromReader(r io.Reader) (Format, error) {
	magic := make([]byte, len(pdfMagic))
	n, err := io.ReadFull(r, magic)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return Unknown, err
	}
	return DetectFromMagic(magic[:n]), nil
}

// DetectFile opens path and checks its magic bytes.
func DetectFile(path string) (Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return Unknown, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()
	return DetectFromReader(f)
}
