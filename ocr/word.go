package ocr

import (
	"image"
	"sort"
	"strings"
)

// Word is a single recognized word with its pixel bounding box.
type Word struct {
	Text       string
	Box        image.Rectangle
	Confidence float64 // 0-100

	// Layout indices assigned by the engine. Words sharing all three belong
	// to the same text line.
	Block, Paragraph, Line int
}

// Line is a group of words the engine placed on the same text line.
type Line struct {
	Text       string
	Box        image.Rectangle
	Height     float64 // mean word box height in pixels
	Confidence float64 // mean word confidence
	Words      int
}

type lineKey struct {
	block, par, line int
}

// GroupLines drops words below minConfidence or with empty text and groups
// the rest into lines by (block, paragraph, line). Lines are returned
// top-to-bottom, words within a line left-to-right.
func GroupLines(words []Word, minConfidence float64) []Line {
	groups := make(map[lineKey][]Word)
	var order []lineKey
	for _, w := range words {
		t := strings.TrimSpace(w.Text)
		if t == "" || w.Confidence < minConfidence {
			continue
		}
		w.Text = t
		k := lineKey{w.Block, w.Paragraph, w.Line}
		if _, ok := groups[k]; !ok {
			order = append(order, k)
		}
		groups[k] = append(groups[k], w)
	}

	lines := make([]Line, 0, len(order))
	for _, k := range order {
		ws := groups[k]
		sort.SliceStable(ws, func(i, j int) bool {
			return ws[i].Box.Min.X < ws[j].Box.Min.X
		})

		var (
			b       strings.Builder
			box     image.Rectangle
			heights float64
			conf    float64
		)
		for i, w := range ws {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(w.Text)
			if i == 0 {
				box = w.Box
			} else {
				box = box.Union(w.Box)
			}
			heights += float64(w.Box.Dy())
			conf += w.Confidence
		}
		n := float64(len(ws))
		lines = append(lines, Line{
			Text:       b.String(),
			Box:        box,
			Height:     heights / n,
			Confidence: conf / n,
			Words:      len(ws),
		})
	}

	sort.SliceStable(lines, func(i, j int) bool {
		return lines[i].Box.Min.Y < lines[j].Box.Min.Y
	})
	return lines
}
