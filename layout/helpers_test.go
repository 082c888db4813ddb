package layout

import "github.com/tsawler/pdfoutline/model"

// makeSpan creates a horizontal native span whose top edge is at y.
func makeSpan(t string, size float64, page int, y float64) model.Span {
	return model.Span{
		Text:     t,
		FontSize: size,
		Page:     page,
		BBox: model.BBox{
			X0: 72,
			Y0: y,
			X1: 72 + float64(len(t))*size*0.5,
			Y1: y + size,
		},
		Source: model.SourceNative,
	}
}

// bodyLines returns n 12pt body lines on a page, starting at y.
func bodyLines(n, page int, y float64) []model.Span {
	spans := make([]model.Span, n)
	for i := range spans {
		spans[i] = makeSpan("Body text that reads like an ordinary paragraph of prose.", 12, page, y+float64(i)*16)
	}
	return spans
}

func makePage(num int, spans ...model.Span) model.Page {
	return model.Page{Number: num, Width: 612, Height: 792, Spans: spans, Source: model.SourceNative}
}
