package reader

import (
	"math"
	"sort"
	"strings"

	"github.com/tsawler/pdfoutline/model"
	"github.com/tsawler/pdfoutline/text"
)

// Line assembly thresholds, in multiples of the font size.
const (
	baselineTolerance = 0.5
	wordGapRatio      = 0.2
	columnGapRatio    = 3.0
)

// placed is a run expressed in its own rotated frame: u runs along the
// baseline, v is perpendicular to it.
type placed struct {
	run
	u0, u1 float64
	v      float64
}

// assembleLines merges runs into line spans. Runs are grouped by rounded
// baseline angle, then by baseline offset, then split where the gap along the
// baseline is wide enough to be a column break. pageTop converts PDF user
// space (bottom-left origin) to page space (top-left origin).
func assembleLines(runs []run, pageNum int, pageTop float64) []model.Span {
	if len(runs) == 0 {
		return nil
	}

	byAngle := make(map[float64][]run)
	var angles []float64
	for _, r := range runs {
		a := text.RoundAngle(r.Angle)
		if _, ok := byAngle[a]; !ok {
			angles = append(angles, a)
		}
		byAngle[a] = append(byAngle[a], r)
	}
	sort.Float64s(angles)

	var spans []model.Span
	for _, a := range angles {
		spans = append(spans, assembleAngle(byAngle[a], a, pageNum, pageTop)...)
	}

	sort.SliceStable(spans, func(i, j int) bool {
		if spans[i].BBox.Y0 != spans[j].BBox.Y0 {
			return spans[i].BBox.Y0 < spans[j].BBox.Y0
		}
		return spans[i].BBox.X0 < spans[j].BBox.X0
	})
	return spans
}

func assembleAngle(runs []run, angle float64, pageNum int, pageTop float64) []model.Span {
	rad := angle * math.Pi / 180
	cos, sin := math.Cos(rad), math.Sin(rad)

	items := make([]placed, len(runs))
	for i, r := range runs {
		u0 := r.Start.X*cos + r.Start.Y*sin
		u1 := r.End.X*cos + r.End.Y*sin
		if u1 < u0 {
			u0, u1 = u1, u0
		}
		items[i] = placed{
			run: r,
			u0:  u0,
			u1:  u1,
			v:   -r.Start.X*sin + r.Start.Y*cos,
		}
	}

	// Top of the rotated frame first, then along the baseline.
	sort.SliceStable(items, func(i, j int) bool {
		if math.Abs(items[i].v-items[j].v) > 0.01 {
			return items[i].v > items[j].v
		}
		return items[i].u0 < items[j].u0
	})

	var (
		spans []model.Span
		cur   []placed
	)
	flush := func() {
		if len(cur) > 0 {
			spans = append(spans, buildLine(cur, angle, pageNum, pageTop)...)
			cur = nil
		}
	}
	for _, it := range items {
		if len(cur) > 0 {
			ref := cur[0]
			tol := baselineTolerance * math.Max(ref.Size, it.Size)
			if math.Abs(ref.v-it.v) > tol {
				flush()
			}
		}
		cur = append(cur, it)
	}
	flush()
	return spans
}

// buildLine orders the runs of one baseline and splits them at column gaps.
func buildLine(items []placed, angle float64, pageNum int, pageTop float64) []model.Span {
	sort.SliceStable(items, func(i, j int) bool { return items[i].u0 < items[j].u0 })

	var (
		spans []model.Span
		seg   []placed
	)
	for i, it := range items {
		if i > 0 {
			prev := items[i-1]
			gap := it.u0 - prev.u1
			if gap > columnGapRatio*math.Max(prev.Size, it.Size) {
				if s, ok := lineSpan(seg, angle, pageNum, pageTop); ok {
					spans = append(spans, s)
				}
				seg = nil
			}
		}
		seg = append(seg, it)
	}
	if s, ok := lineSpan(seg, angle, pageNum, pageTop); ok {
		spans = append(spans, s)
	}
	return spans
}

func lineSpan(seg []placed, angle float64, pageNum int, pageTop float64) (model.Span, bool) {
	if len(seg) == 0 {
		return model.Span{}, false
	}

	// Right-to-left lines read from the far end of the baseline.
	order := seg
	if lineDirection(seg) == text.RTL {
		order = make([]placed, len(seg))
		for i, it := range seg {
			order[len(seg)-1-i] = it
		}
	}

	var b strings.Builder
	sizeRunes := make(map[float64]int)
	var box model.BBox
	for i, it := range order {
		if i > 0 {
			prev := order[i-1]
			gap := math.Max(it.u0-prev.u1, prev.u0-it.u1)
			if gap > wordGapRatio*it.Size && !strings.HasSuffix(b.String(), " ") && !strings.HasPrefix(it.Text, " ") {
				b.WriteByte(' ')
			}
		}
		b.WriteString(it.Text)
		sizeRunes[roundSize(it.Size)] += len([]rune(it.Text))
		box = box.Union(runBox(it.run, pageTop))
	}

	s := model.Span{
		Text:        text.Clean(b.String()),
		FontSize:    dominantSize(sizeRunes),
		BBox:        box,
		Page:        pageNum,
		Orientation: angle,
		Source:      model.SourceNative,
	}
	if s.Text == "" {
		return model.Span{}, false
	}
	return s, true
}

func lineDirection(seg []placed) text.Direction {
	var b strings.Builder
	for _, it := range seg {
		b.WriteString(it.Text)
	}
	return text.DetectDirection(b.String())
}

// runBox is the page-space box of a run: its baseline segment extended by
// the font size perpendicular to the baseline.
func runBox(r run, pageTop float64) model.BBox {
	rad := r.Angle * math.Pi / 180
	nx, ny := -math.Sin(rad)*r.Size, math.Cos(rad)*r.Size
	pts := []model.Point{
		r.Start,
		r.End,
		{X: r.Start.X + nx, Y: r.Start.Y + ny},
		{X: r.End.X + nx, Y: r.End.Y + ny},
	}
	box := model.BBox{X0: math.Inf(1), Y0: math.Inf(1), X1: math.Inf(-1), Y1: math.Inf(-1)}
	for _, p := range pts {
		y := pageTop - p.Y
		box.X0 = math.Min(box.X0, p.X)
		box.X1 = math.Max(box.X1, p.X)
		box.Y0 = math.Min(box.Y0, y)
		box.Y1 = math.Max(box.Y1, y)
	}
	return box
}

// dominantSize is the size carrying the most runes. Ties go to the larger
// size so a bold lead-in at heading size is not hidden by trailing text.
func dominantSize(counts map[float64]int) float64 {
	var best float64
	n := -1
	for size, c := range counts {
		if c > n || (c == n && size > best) {
			best, n = size, c
		}
	}
	return best
}

func roundSize(s float64) float64 {
	return math.Round(s*100) / 100
}
