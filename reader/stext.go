package reader

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/tsawler/pdfoutline/model"
	"github.com/tsawler/pdfoutline/text"
)

var styleDecl = regexp.MustCompile(`([a-z-]+)\s*:\s*([^;]+)`)

// parseLayoutHTML converts MuPDF's positioned HTML for one page into line
// spans. Each <p> is one line; its style carries top and left in points and
// the nested spans carry font-size.
func parseLayoutHTML(doc string, pageNum int) ([]model.Span, error) {
	root, err := html.Parse(strings.NewReader(doc))
	if err != nil {
		return nil, fmt.Errorf("page %d: layout html: %w", pageNum, err)
	}

	var spans []model.Span
	var visit func(n *html.Node)
	visit = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "p" {
			if s, ok := paragraphSpan(n, pageNum); ok {
				spans = append(spans, s)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(root)
	return spans, nil
}

func paragraphSpan(p *html.Node, pageNum int) (model.Span, bool) {
	style := parseStyle(attr(p, "style"))
	top, okTop := points(style["top"])
	left, okLeft := points(style["left"])
	if !okTop || !okLeft {
		return model.Span{}, false
	}

	var b strings.Builder
	sizeRunes := make(map[float64]int)
	var walk func(n *html.Node, size float64)
	walk = func(n *html.Node, size float64) {
		if n.Type == html.ElementNode {
			if fs, ok := points(parseStyle(attr(n, "style"))["font-size"]); ok {
				size = fs
			}
		}
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			if size > 0 {
				sizeRunes[roundSize(size)] += len([]rune(strings.TrimSpace(n.Data)))
			}
			return
		}
		if n.Type == html.ElementNode && n.Data == "br" {
			b.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, size)
		}
	}
	walk(p, 0)

	t := text.Clean(b.String())
	size := dominantSize(sizeRunes)
	if t == "" || size <= 0 {
		return model.Span{}, false
	}

	// MuPDF does not report line widths; estimate at half an em per rune.
	width := float64(len([]rune(t))) * size * 0.5
	return model.Span{
		Text:     t,
		FontSize: size,
		BBox:     model.BBox{X0: left, Y0: top, X1: left + width, Y1: top + size},
		Page:     pageNum,
		Source:   model.SourceNative,
	}, true
}

func parseStyle(s string) map[string]string {
	out := make(map[string]string)
	for _, m := range styleDecl.FindAllStringSubmatch(s, -1) {
		out[m[1]] = strings.TrimSpace(m[2])
	}
	return out
}

// points parses CSS lengths like "12.5pt" or "12.5".
func points(v string) (float64, bool) {
	v = strings.TrimSuffix(strings.TrimSpace(v), "pt")
	if v == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
