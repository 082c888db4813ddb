package layout

import (
	"regexp"
	"strings"

	"github.com/tsawler/pdfoutline/model"
	"github.com/tsawler/pdfoutline/text"
)

// numberedDepth matches decimal numbering ("1.", "2.3", "4.1.2 "). The
// number of components sets the level.
var numberedDepth = regexp.MustCompile(`^(\d{1,2}(?:\.\d{1,2})*)\.?\s+\S`)

// topLevelPatterns are numbering forms that always start an H1.
var topLevelPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^(?i)(chapter|section|part|appendix)\s+(\d+|[ivxlcdm]+|[a-z])\b`),
	regexp.MustCompile(`^[IVXLCDM]+\.\s+\S`), // Roman numerals
	regexp.MustCompile(`^[A-Z]\.\s+\S`),      // Letter prefixes
}

var datePattern = regexp.MustCompile(`(?i)^(?:` +
	`(?:january|february|march|april|may|june|july|august|september|october|november|december|jan|feb|mar|apr|jun|jul|aug|sep|sept|oct|nov|dec)\.?\s+\d{1,2},?\s+\d{4}` +
	`|\d{1,2}\s+(?:january|february|march|april|may|june|july|august|september|october|november|december|jan|feb|mar|apr|jun|jul|aug|sep|sept|oct|nov|dec)\.?\s+\d{4}` +
	`)\b`)

// Classify decides whether a span is a heading and at which level. It
// dispatches on the profile shape: documents with few distinct sizes map
// sizes to levels directly; other documents also consult numbering.
func Classify(span model.Span, profile model.FontProfile, cfg Config) (model.HeadingCandidate, bool) {
	t := text.Clean(span.Text)
	if t == "" || text.IsNumeric(t) || datePattern.MatchString(t) {
		return model.HeadingCandidate{}, false
	}

	var (
		lvl model.Level
		ok  bool
	)
	if profile.Structured {
		t, lvl, ok = classifyStructured(t, span.FontSize, profile, cfg)
	} else {
		lvl, ok = classifyStandard(t, span.FontSize, profile, cfg)
	}
	if !ok {
		return model.HeadingCandidate{}, false
	}

	return model.HeadingCandidate{
		Text:  t,
		Level: lvl,
		Page:  span.Page,
		BBox:  span.BBox,
	}, true
}

// classifyStructured maps the span's size cluster straight to a level. A
// long "Label: value" line keeps only its short label.
func classifyStructured(t string, size float64, profile model.FontProfile, cfg Config) (string, model.Level, bool) {
	lvl, ok := profile.LevelFor(size)
	if !ok {
		return "", model.LevelNone, false
	}

	if text.WordCount(t) >= cfg.StructuredMaxWords {
		if label, _, found := strings.Cut(t, ":"); found && text.WordCount(label) < 5 {
			t = strings.TrimSpace(label) + ":"
		}
	}
	if text.WordCount(t) >= cfg.StructuredMaxWords {
		return "", model.LevelNone, false
	}
	return t, lvl, true
}

// classifyStandard accepts heading-sized spans. Numbering decides the level
// when present; otherwise the size cluster does, unless the size sits
// between two level sizes.
func classifyStandard(t string, size float64, profile model.FontProfile, cfg Config) (model.Level, bool) {
	if text.WordCount(t) >= cfg.StandardMaxWords || !IsHeadingSized(size, profile, cfg) {
		return model.LevelNone, false
	}

	if lvl, ok := numberingLevel(t); ok {
		return lvl, true
	}

	if profile.Ambiguous(size) {
		return model.LevelNone, false
	}
	return profile.LevelFor(size)
}

// numberingLevel returns the level implied by a numbering prefix.
func numberingLevel(t string) (model.Level, bool) {
	t = strings.TrimSpace(t)
	if m := numberedDepth.FindStringSubmatch(t); m != nil {
		return model.LevelFromDepth(strings.Count(m[1], ".") + 1), true
	}
	for _, p := range topLevelPatterns {
		if p.MatchString(t) {
			return model.H1, true
		}
	}
	return model.LevelNone, false
}

// ClassifyPage classifies every span of one page in reading order, skipping
// the spans that make up the title.
func ClassifyPage(spans []model.Span, title Title, profile model.FontProfile, cfg Config) []model.HeadingCandidate {
	var out []model.HeadingCandidate
	for _, s := range spans {
		if title.Matches(s) {
			continue
		}
		if c, ok := Classify(s, profile, cfg); ok {
			out = append(out, c)
		}
	}
	return out
}
