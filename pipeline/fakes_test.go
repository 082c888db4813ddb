package pipeline

import (
	"context"
	"errors"
	"image"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tsawler/pdfoutline/model"
	"github.com/tsawler/pdfoutline/ocr"
)

type fakePage struct {
	spans     []model.Span
	err       error
	panicMsg  string
	delay     time.Duration
	renderErr error
}

// fakeDoc is an in-memory Document that records how it is used.
type fakeDoc struct {
	title string
	pages []fakePage

	textCalls   atomic.Int32
	renderCalls atomic.Int32
	inflight    atomic.Int32
	maxInflight atomic.Int32

	mu              sync.Mutex
	closed          bool
	inflightAtClose int32
}

func (d *fakeDoc) NumPage() int  { return len(d.pages) }
func (d *fakeDoc) Title() string { return d.title }

func (d *fakeDoc) PageSize(int) (float64, float64) { return 612, 792 }

func (d *fakeDoc) TextSpans(page int) ([]model.Span, error) {
	d.textCalls.Add(1)
	n := d.inflight.Add(1)
	defer d.inflight.Add(-1)
	for {
		m := d.maxInflight.Load()
		if n <= m || d.maxInflight.CompareAndSwap(m, n) {
			break
		}
	}

	p := d.pages[page-1]
	if p.delay > 0 {
		time.Sleep(p.delay)
	}
	if p.panicMsg != "" {
		panic(p.panicMsg)
	}
	return p.spans, p.err
}

func (d *fakeDoc) Render(page int, dpi float64) (image.Image, error) {
	d.renderCalls.Add(1)
	if err := d.pages[page-1].renderErr; err != nil {
		return nil, err
	}
	return image.NewGray(image.Rect(0, 0, 100, 100)), nil
}

func (d *fakeDoc) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	d.inflightAtClose = d.inflight.Load()
	return nil
}

func (d *fakeDoc) isClosed() (bool, int32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.closed, d.inflightAtClose
}

// fakeRecognizer returns fixed words for every image.
type fakeRecognizer struct {
	words []ocr.Word
	err   error
	calls atomic.Int32
}

func (r *fakeRecognizer) Recognize(ctx context.Context, img image.Image) ([]ocr.Word, error) {
	r.calls.Add(1)
	return r.words, r.err
}

var errBroken = errors.New("broken content stream")

func span(text string, size float64, page int, y float64) model.Span {
	return model.Span{
		Text:     text,
		FontSize: size,
		Page:     page,
		BBox:     model.BBox{X0: 72, Y0: y, X1: 72 + float64(len(text))*size*0.5, Y1: y + size},
		Source:   model.SourceNative,
	}
}

// prose returns enough body text to stay above the OCR threshold.
func prose(page int, tag string) []model.Span {
	var spans []model.Span
	for i := 0; i < 8; i++ {
		spans = append(spans, span("Ordinary body text for page "+tag+" line "+string(rune('a'+i))+" goes on for a while.", 12, page, 300+float64(i)*16))
	}
	return spans
}
