package layout

import (
	"github.com/tsawler/pdfoutline/model"
	"github.com/tsawler/pdfoutline/text"
)

// Poster thresholds: a page with few lines and almost no prose paragraphs.
const (
	posterMaxSpans   = 40
	posterProseWords = 15
	posterProseShare = 0.1
)

// Poster handles single-page graphical documents such as flyers. When
// PosterMode is on and the document is one page with little prose, the
// outline is the single largest line as H1 with an empty title.
func Poster(pages []model.Page, cfg Config) (model.Outline, bool) {
	if !cfg.PosterMode || len(pages) != 1 {
		return model.Outline{}, false
	}
	spans := pages[0].Spans
	if len(spans) == 0 || len(spans) >= posterMaxSpans {
		return model.Outline{}, false
	}

	prose := 0
	for _, s := range spans {
		if text.WordCount(s.Text) > posterProseWords {
			prose++
		}
	}
	if float64(prose)/float64(len(spans)) >= posterProseShare {
		return model.Outline{}, false
	}

	largest := spans[0]
	for _, s := range spans[1:] {
		if s.FontSize > largest.FontSize {
			largest = s
		}
	}
	return model.Outline{
		Entries: []model.HeadingCandidate{{
			Text:  text.Clean(largest.Text),
			Level: model.H1,
			Page:  largest.Page,
			BBox:  largest.BBox,
		}},
	}, true
}
