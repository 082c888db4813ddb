package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Level is a heading level in the outline.
type Level int

const (
	LevelNone Level = iota
	H1
	H2
	H3
)

// String returns "H1", "H2", "H3" or "" for LevelNone.
func (l Level) String() string {
	switch l {
	case H1:
		return "H1"
	case H2:
		return "H2"
	case H3:
		return "H3"
	default:
		return ""
	}
}

// LevelFromDepth maps a 1-based depth onto H1..H3, clamping deeper values to H3.
func LevelFromDepth(depth int) Level {
	switch {
	case depth <= 1:
		return H1
	case depth == 2:
		return H2
	default:
		return H3
	}
}

// MarshalJSON encodes the level as its string form.
func (l Level) MarshalJSON() ([]byte, error) {
	if l < H1 || l > H3 {
		return nil, fmt.Errorf("invalid heading level %d", int(l))
	}
	return json.Marshal(l.String())
}

// UnmarshalJSON decodes "H1", "H2" or "H3".
func (l *Level) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "H1":
		*l = H1
	case "H2":
		*l = H2
	case "H3":
		*l = H3
	default:
		return fmt.Errorf("invalid heading level %q", s)
	}
	return nil
}

// HeadingCandidate is a span that was classified as a heading.
type HeadingCandidate struct {
	Text  string `json:"text"`
	Level Level  `json:"level"`
	Page  int    `json:"page"`
	BBox  BBox   `json:"-"`
}

// Outline is the final artifact for one document.
type Outline struct {
	Title   string
	Entries []HeadingCandidate
}

// Result is either an outline or a document-level error. Exactly one Result
// is produced, and written, per input file.
type Result struct {
	Outline *Outline
	Err     error
}

// Success wraps an outline.
func Success(o Outline) Result {
	return Result{Outline: &o}
}

// Failure wraps a document-level error.
func Failure(err error) Result {
	return Result{Err: err}
}

// OK reports whether the result holds an outline.
func (r Result) OK() bool {
	return r.Err == nil && r.Outline != nil
}

type outlineEntryJSON struct {
	Level Level  `json:"level"`
	Text  string `json:"text"`
	Page  int    `json:"page"`
}

type outlineJSON struct {
	Title   string             `json:"title"`
	Outline []outlineEntryJSON `json:"outline"`
}

type errorJSON struct {
	Error string `json:"error"`
}

// MarshalJSON emits {"title", "outline"} for a success and {"error"} for a
// failure. An empty outline is written as [] rather than null.
func (r Result) MarshalJSON() ([]byte, error) {
	if !r.OK() {
		msg := "no outline produced"
		if r.Err != nil {
			msg = r.Err.Error()
		}
		return marshalNoEscape(errorJSON{Error: msg})
	}
	out := outlineJSON{
		Title:   r.Outline.Title,
		Outline: make([]outlineEntryJSON, 0, len(r.Outline.Entries)),
	}
	for _, e := range r.Outline.Entries {
		out.Outline = append(out.Outline, outlineEntryJSON{Level: e.Level, Text: e.Text, Page: e.Page})
	}
	return marshalNoEscape(out)
}

// marshalNoEscape keeps '&', '<' and '>' literal; headings such as
// "Terms & Conditions" are common.
func marshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
