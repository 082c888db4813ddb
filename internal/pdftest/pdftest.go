// Package pdftest builds small, valid PDF files for tests.
package pdftest

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Text is one line of text. Y is measured from the top of the page to the
// baseline, which matches how readers describe layout.
type Text struct {
	X, Y  float64
	Size  float64
	Angle float64 // degrees, counter-clockwise
	Text  string
}

// Page is a page with the given texts. Zero Width/Height means US Letter.
type Page struct {
	Width, Height float64
	Texts         []Text
}

// Doc describes a whole document.
type Doc struct {
	Title string // Info dictionary title, omitted when empty
	Pages []Page
}

// Build serializes the document as a PDF with a correct cross-reference
// table. All text uses Helvetica with WinAnsiEncoding.
func Build(d Doc) []byte {
	var objs []string

	// 1 catalog, 2 pages, 3 font, then page/content pairs, then info.
	objs = append(objs, "<< /Type /Catalog /Pages 2 0 R >>")
	objs = append(objs, "") // filled below
	objs = append(objs, "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>")

	var kids []string
	for _, p := range d.Pages {
		w, h := p.Width, p.Height
		if w == 0 {
			w = 612
		}
		if h == 0 {
			h = 792
		}
		pageNum := len(objs) + 1
		contentNum := pageNum + 1
		kids = append(kids, fmt.Sprintf("%d 0 R", pageNum))
		objs = append(objs, fmt.Sprintf(
			"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 %s %s] /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>",
			num(w), num(h), contentNum))
		content := contentStream(p.Texts, h)
		objs = append(objs, fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content))
	}
	objs[1] = fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(kids))

	infoNum := 0
	if d.Title != "" {
		objs = append(objs, fmt.Sprintf("<< /Title (%s) >>", escape(d.Title)))
		infoNum = len(objs)
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n")
	offsets := make([]int, len(objs))
	for i, o := range objs {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, o)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objs)+1)
	buf.WriteString("0000000000 65535 f\r\n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n\r\n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R", len(objs)+1)
	if infoNum > 0 {
		fmt.Fprintf(&buf, " /Info %d 0 R", infoNum)
	}
	fmt.Fprintf(&buf, " >>\nstartxref\n%d\n%%%%EOF\n", xref)
	return buf.Bytes()
}

func contentStream(texts []Text, pageHeight float64) string {
	var b strings.Builder
	for _, t := range texts {
		size := t.Size
		if size == 0 {
			size = 12
		}
		y := pageHeight - t.Y
		rad := t.Angle * math.Pi / 180
		c, s := math.Cos(rad), math.Sin(rad)
		fmt.Fprintf(&b, "BT /F1 %s Tf %s %s %s %s %s %s Tm (%s) Tj ET\n",
			num(size), num(c), num(s), num(-s), num(c), num(t.X), num(y), escape(t.Text))
	}
	return b.String()
}

func num(f float64) string {
	if math.Abs(f) < 1e-9 {
		return "0"
	}
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.4f", f), "0"), ".")
}

func escape(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`)
	return r.Replace(s)
}

// WriteFile builds d into dir/name and returns the path.
func WriteFile(t testing.TB, dir, name string, d Doc) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, Build(d), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

// Lines is a shorthand for a page of body text lines at 12pt starting near
// the top margin.
func Lines(lines ...string) Page {
	p := Page{}
	for i, l := range lines {
		p.Texts = append(p.Texts, Text{X: 72, Y: 100 + float64(i)*16, Size: 12, Text: l})
	}
	return p
}
