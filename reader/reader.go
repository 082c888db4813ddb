package reader

import (
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"regexp"
	"strings"
	"sync"

	"github.com/ledongthuc/pdf"

	"github.com/tsawler/pdfoutline/model"
	"github.com/tsawler/pdfoutline/text"
)

// Default page size (US Letter) used when a page has no MediaBox.
const (
	defaultPageWidth  = 612.0
	defaultPageHeight = 792.0
)

// ErrMalformed is returned when a file cannot be parsed as a PDF at all.
var ErrMalformed = errors.New("malformed PDF")

// ErrRenderNotEnabled is returned when page rendering is requested from a
// build without the ocr tag.
var ErrRenderNotEnabled = errors.New("page rendering not enabled: build with -tags ocr")

// PDFVersion represents a PDF version
type PDFVersion struct {
	Major int
	Minor int
}

// String returns the version as a string (e.g., "1.7")
func (v PDFVersion) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// Document is an open PDF. Text comes from the content streams; page
// rendering and the layout-aware fallback come from the renderer, which is
// only available in builds with the ocr tag.
//
// Document is safe for concurrent use. The underlying parser shares a file
// handle, so page reads are serialized.
type Document struct {
	path    string
	file    *os.File
	pdf     *pdf.Reader
	version PDFVersion
	title   string

	mu         sync.Mutex
	render     renderer
	renderOnce sync.Once
	renderErr  error
}

// Open opens a PDF file for reading.
func Open(path string) (doc *Document, err error) {
	f, r, err := openPDF(path)
	if err != nil {
		return nil, err
	}

	doc = &Document{path: path, file: f, pdf: r}
	if doc.version, err = parseHeader(f); err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	doc.title = doc.readTitle()
	return doc, nil
}

// openPDF wraps pdf.Open, which panics on some broken trailers.
func openPDF(path string) (f *os.File, r *pdf.Reader, err error) {
	if _, statErr := os.Stat(path); statErr != nil {
		return nil, nil, fmt.Errorf("failed to open file: %w", statErr)
	}
	defer func() {
		if p := recover(); p != nil {
			if f != nil {
				f.Close()
			}
			f, r, err = nil, nil, fmt.Errorf("%w: %v", ErrMalformed, p)
		}
	}()
	f, r, err = pdf.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return f, r, nil
}

// Close releases the file and any renderer.
func (d *Document) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	var err error
	if d.render != nil {
		err = d.render.Close()
		d.render = nil
	}
	if d.file != nil {
		if cerr := d.file.Close(); cerr != nil && err == nil {
			err = cerr
		}
		d.file = nil
	}
	return err
}

// Version returns the PDF version from the file header.
func (d *Document) Version() PDFVersion {
	return d.version
}

// NumPage returns the number of pages.
func (d *Document) NumPage() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.numPageLocked()
}

func (d *Document) numPageLocked() (n int) {
	defer func() {
		if recover() != nil {
			n = 0
		}
	}()
	return d.pdf.NumPage()
}

// Title returns the document info title, or "" when absent.
func (d *Document) Title() string {
	return d.title
}

func (d *Document) readTitle() (title string) {
	defer func() {
		if recover() != nil {
			title = ""
		}
	}()
	return text.Clean(d.pdf.Trailer().Key("Info").Key("Title").Text())
}

// PageSize returns the page width and height in points. page is 1-based.
func (d *Document) PageSize(page int) (w, h float64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	box, _ := d.mediaBoxLocked(page)
	return box.Width(), box.Height()
}

// mediaBoxLocked returns the page's MediaBox in PDF user space, walking up
// the page tree for inherited values.
func (d *Document) mediaBoxLocked(page int) (box model.BBox, ok bool) {
	def := model.BBox{X1: defaultPageWidth, Y1: defaultPageHeight}
	defer func() {
		if recover() != nil {
			box, ok = def, false
		}
	}()
	if page < 1 || page > d.pdf.NumPage() {
		return def, false
	}

	v := d.pdf.Page(page).V
	for i := 0; i < 32 && !v.IsNull(); i++ {
		mb := v.Key("MediaBox")
		if mb.Kind() == pdf.Array && mb.Len() == 4 {
			b := model.NewBBoxFromPoints(
				model.Point{X: mb.Index(0).Float64(), Y: mb.Index(1).Float64()},
				model.Point{X: mb.Index(2).Float64(), Y: mb.Index(3).Float64()},
			)
			if b.IsValid() {
				return b, true
			}
		}
		v = v.Key("Parent")
	}
	return def, false
}

// TextSpans extracts the page's text as line spans in reading order. When
// the content stream cannot be interpreted and a renderer is available, the
// renderer's layout is used instead. page is 1-based.
func (d *Document) TextSpans(page int) ([]model.Span, error) {
	spans, err := d.nativeSpans(page)
	if err == nil {
		return spans, nil
	}

	r, rerr := d.renderer()
	if rerr != nil {
		return nil, err
	}
	html, herr := r.HTML(page - 1)
	if herr != nil {
		return nil, fmt.Errorf("%v; layout fallback: %w", err, herr)
	}
	return parseLayoutHTML(html, page)
}

func (d *Document) nativeSpans(page int) (spans []model.Span, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	defer func() {
		if p := recover(); p != nil {
			spans, err = nil, fmt.Errorf("page %d: content stream: %v", page, p)
		}
	}()

	if d.file == nil {
		return nil, errors.New("document closed")
	}
	if page < 1 || page > d.pdf.NumPage() {
		return nil, fmt.Errorf("page %d out of range", page)
	}

	box, _ := d.mediaBoxLocked(page)
	p := d.pdf.Page(page)
	if p.V.IsNull() {
		return nil, fmt.Errorf("page %d: missing page object", page)
	}

	runs := newContentWalker(p).walkPage()
	spans = assembleLines(runs, page, box.Y1)
	if box.X0 != 0 {
		for i := range spans {
			spans[i].BBox.X0 -= box.X0
			spans[i].BBox.X1 -= box.X0
		}
	}
	return spans, nil
}

// Render rasterizes a page at the given DPI. page is 1-based.
func (d *Document) Render(page int, dpi float64) (image.Image, error) {
	r, err := d.renderer()
	if err != nil {
		return nil, err
	}
	return r.Image(page-1, dpi)
}

func (d *Document) renderer() (renderer, error) {
	d.renderOnce.Do(func() {
		r, err := newRenderer(d.path)
		d.mu.Lock()
		defer d.mu.Unlock()
		if err != nil {
			d.renderErr = err
			return
		}
		if d.file == nil {
			r.Close()
			d.renderErr = errors.New("document closed")
			return
		}
		d.render = r
	})
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.renderErr != nil {
		return nil, d.renderErr
	}
	if d.render == nil {
		return nil, errors.New("document closed")
	}
	return d.render, nil
}

// renderer rasterizes pages and reports their text layout. Implementations
// must be safe for concurrent use. Page indices are 0-based.
type renderer interface {
	Image(page int, dpi float64) (image.Image, error)
	HTML(page int) (string, error)
	Close() error
}

var versionPattern = regexp.MustCompile(`(\d+)\.(\d+)`)

// parseHeader parses the PDF header (%PDF-x.y)
func parseHeader(r io.ReadSeeker) (PDFVersion, error) {
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return PDFVersion{}, fmt.Errorf("failed to seek to start: %w", err)
	}

	header := make([]byte, 8)
	n, err := io.ReadFull(r, header)
	if err != nil && n < 8 {
		return PDFVersion{}, fmt.Errorf("header too short: %d bytes", n)
	}

	headerStr := string(header)
	if !strings.HasPrefix(headerStr, "%PDF-") {
		return PDFVersion{}, fmt.Errorf("invalid PDF header: %q", headerStr)
	}

	matches := versionPattern.FindStringSubmatch(headerStr[5:])
	if len(matches) < 3 {
		return PDFVersion{}, fmt.Errorf("invalid version format: %s", headerStr[5:])
	}

	var major, minor int
	fmt.Sscanf(matches[1], "%d", &major)
	fmt.Sscanf(matches[2], "%d", &minor)

	return PDFVersion{Major: major, Minor: minor}, nil
}
