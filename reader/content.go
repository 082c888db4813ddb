package reader

import (
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/tsawler/pdfoutline/model"
)

// maxFormDepth bounds recursion into nested form XObjects.
const maxFormDepth = 4

// run is the text shown by a single show operator, in PDF user space
// (bottom-left origin) after the CTM is applied.
type run struct {
	Text  string
	Start model.Point // baseline origin
	End   model.Point // baseline end after advance
	Size  float64     // effective font size
	Angle float64     // baseline angle, degrees
}

// textState is the graphics state subset that affects text placement.
type textState struct {
	ctm   model.Matrix
	font  pdf.Font
	type0 bool
	size  float64 // Tfs
	tc    float64 // character spacing
	tw    float64 // word spacing
	th    float64 // horizontal scaling, 1 = 100%
	tl    float64 // leading
	rise  float64
}

// contentWalker interprets content streams and collects text runs.
type contentWalker struct {
	page  pdf.Page
	gs    textState
	stack []textState
	tm    model.Matrix
	tlm   model.Matrix
	runs  []run
}

func newContentWalker(page pdf.Page) *contentWalker {
	return &contentWalker{
		page: page,
		gs:   textState{ctm: model.Identity(), th: 1},
		tm:   model.Identity(),
		tlm:  model.Identity(),
	}
}

// walkPage interprets every content stream of the page. The PDF library
// reports malformed input by panicking; callers recover.
func (w *contentWalker) walkPage() []run {
	w.walk(w.page.V.Key("Contents"), w.page.Resources(), 0)
	return w.runs
}

func (w *contentWalker) walk(contents, resources pdf.Value, depth int) {
	if contents.Kind() == pdf.Array {
		for i := 0; i < contents.Len(); i++ {
			w.walk(contents.Index(i), resources, depth)
		}
		return
	}
	if contents.Kind() != pdf.Stream {
		return
	}

	pdf.Interpret(contents, func(stk *pdf.Stack, op string) {
		n := stk.Len()
		args := make([]pdf.Value, n)
		for i := n - 1; i >= 0; i-- {
			args[i] = stk.Pop()
		}
		w.do(op, args, resources, depth)
	})
}

func (w *contentWalker) do(op string, args []pdf.Value, resources pdf.Value, depth int) {
	switch op {
	case "q":
		w.stack = append(w.stack, w.gs)
	case "Q":
		if n := len(w.stack); n > 0 {
			w.gs = w.stack[n-1]
			w.stack = w.stack[:n-1]
		}
	case "cm":
		if m, ok := matrixArgs(args); ok {
			w.gs.ctm = m.Multiply(w.gs.ctm)
		}
	case "BT":
		w.tm = model.Identity()
		w.tlm = model.Identity()
	case "Tf":
		if len(args) == 2 {
			w.setFont(resources, args[0].Name(), args[1].Float64())
		}
	case "Tc":
		if len(args) == 1 {
			w.gs.tc = args[0].Float64()
		}
	case "Tw":
		if len(args) == 1 {
			w.gs.tw = args[0].Float64()
		}
	case "Tz":
		if len(args) == 1 {
			w.gs.th = args[0].Float64() / 100
		}
	case "TL":
		if len(args) == 1 {
			w.gs.tl = args[0].Float64()
		}
	case "Ts":
		if len(args) == 1 {
			w.gs.rise = args[0].Float64()
		}
	case "Td":
		if len(args) == 2 {
			w.moveLine(args[0].Float64(), args[1].Float64())
		}
	case "TD":
		if len(args) == 2 {
			w.gs.tl = -args[1].Float64()
			w.moveLine(args[0].Float64(), args[1].Float64())
		}
	case "Tm":
		if m, ok := matrixArgs(args); ok {
			w.tm = m
			w.tlm = m
		}
	case "T*":
		w.moveLine(0, -w.gs.tl)
	case "Tj":
		if len(args) == 1 {
			w.show(args[0].RawString())
		}
	case "'":
		if len(args) == 1 {
			w.moveLine(0, -w.gs.tl)
			w.show(args[0].RawString())
		}
	case "\"":
		if len(args) == 3 {
			w.gs.tw = args[0].Float64()
			w.gs.tc = args[1].Float64()
			w.moveLine(0, -w.gs.tl)
			w.show(args[2].RawString())
		}
	case "TJ":
		if len(args) == 1 {
			w.showArray(args[0])
		}
	case "Do":
		if len(args) == 1 && depth < maxFormDepth {
			w.doXObject(resources, args[0].Name(), depth)
		}
	}
}

func (w *contentWalker) setFont(resources pdf.Value, name string, size float64) {
	fv := resources.Key("Font").Key(name)
	w.gs.font = pdf.Font{V: fv}
	w.gs.type0 = fv.Key("Subtype").Name() == "Type0"
	w.gs.size = size
}

func (w *contentWalker) moveLine(tx, ty float64) {
	w.tlm = model.Translate(tx, ty).Multiply(w.tlm)
	w.tm = w.tlm
}

// showArray handles TJ: strings are shown, numbers adjust the position in
// thousandths of a text space unit. Pieces of one TJ form one run.
func (w *contentWalker) showArray(arr pdf.Value) {
	if arr.Kind() != pdf.Array {
		return
	}
	var (
		b     strings.Builder
		start model.Point
		size  float64
		angle float64
		have  bool
	)
	for i := 0; i < arr.Len(); i++ {
		v := arr.Index(i)
		if v.Kind() == pdf.String {
			r, ok := w.advance(v.RawString())
			if !ok {
				continue
			}
			if !have {
				start, size, angle, have = r.Start, r.Size, r.Angle, true
			}
			b.WriteString(r.Text)
			continue
		}
		adj := v.Float64()
		if adj < -250 && have {
			// a large negative kern is how many producers encode a space
			b.WriteByte(' ')
		}
		tx := -adj / 1000 * w.gs.size * w.gs.th
		w.tm = model.Translate(tx, 0).Multiply(w.tm)
	}
	if have {
		end := w.renderMatrix().Transform(model.Point{})
		w.emit(run{Text: b.String(), Start: start, End: end, Size: size, Angle: angle})
	}
}

func (w *contentWalker) show(raw string) {
	if r, ok := w.advance(raw); ok {
		w.emit(r)
	}
}

func (w *contentWalker) emit(r run) {
	if strings.TrimSpace(r.Text) == "" || r.Size <= 0 {
		return
	}
	w.runs = append(w.runs, r)
}

// renderMatrix is the text rendering matrix at the current position.
func (w *contentWalker) renderMatrix() model.Matrix {
	g := w.gs
	return model.Matrix{g.size * g.th, 0, 0, g.size, 0, g.rise}.Multiply(w.tm).Multiply(g.ctm)
}

// advance decodes raw, moves the text matrix past it and returns the run it
// covers.
func (w *contentWalker) advance(raw string) (run, bool) {
	if raw == "" {
		return run{}, false
	}
	trm := w.renderMatrix()
	r := run{
		Start: trm.Transform(model.Point{}),
		Size:  trm.YScale(),
		Angle: trm.Angle(),
	}

	f := w.gs.font
	if f.V.IsNull() {
		r.Text = raw
	} else {
		r.Text = f.Encoder().Decode(raw)
	}

	step := 1
	if w.gs.type0 {
		step = 2
	}
	var tx float64
	for i := 0; i < len(raw); i += step {
		code := int(raw[i])
		if step == 2 && i+1 < len(raw) {
			code = code<<8 | int(raw[i+1])
		}
		w0 := 0.0
		if !f.V.IsNull() && !w.gs.type0 {
			w0 = f.Width(code) / 1000
		}
		if w0 <= 0 {
			w0 = 0.5
		}
		adv := w0*w.gs.size + w.gs.tc
		if step == 1 && raw[i] == ' ' {
			adv += w.gs.tw
		}
		tx += adv * w.gs.th
	}
	w.tm = model.Translate(tx, 0).Multiply(w.tm)
	r.End = w.renderMatrix().Transform(model.Point{})
	return r, true
}

// doXObject walks a form XObject with its own resources and matrix.
func (w *contentWalker) doXObject(resources pdf.Value, name string, depth int) {
	xo := resources.Key("XObject").Key(name)
	if xo.Kind() != pdf.Stream || xo.Key("Subtype").Name() != "Form" {
		return
	}

	saved := w.gs
	savedTm, savedTlm := w.tm, w.tlm
	if m, ok := matrixValue(xo.Key("Matrix")); ok {
		w.gs.ctm = m.Multiply(w.gs.ctm)
	}
	res := xo.Key("Resources")
	if res.IsNull() {
		res = resources
	}
	w.walk(xo, res, depth+1)
	w.gs = saved
	w.tm, w.tlm = savedTm, savedTlm
}

func matrixArgs(args []pdf.Value) (model.Matrix, bool) {
	if len(args) != 6 {
		return model.Matrix{}, false
	}
	var m model.Matrix
	for i, a := range args {
		m[i] = a.Float64()
	}
	return m, true
}

func matrixValue(v pdf.Value) (model.Matrix, bool) {
	if v.Kind() != pdf.Array || v.Len() != 6 {
		return model.Matrix{}, false
	}
	var m model.Matrix
	for i := 0; i < 6; i++ {
		m[i] = v.Index(i).Float64()
	}
	return m, true
}
