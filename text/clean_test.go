package text

import "testing"

func TestClean(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"already clean", "Introduction", "Introduction"},
		{"collapse spaces", "1.2   Scope  of   Work", "1.2 Scope of Work"},
		{"trim", "  \tOverview \n", "Overview"},
		{"newlines inside", "Table of\nContents", "Table of Contents"},
		{"nbsp", "Revision\u00a0History", "Revision History"},
		{"control chars", "Sum\x00mary", "Summary"},
		{"replacement char", "Bad� glyph", "Bad glyph"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clean(tt.in); got != tt.want {
				t.Errorf("Clean(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	if got := Normalize("  The ﬁnal  REPORT "); got != "the final report" {
		t.Errorf("Normalize ligature/case = %q", got)
	}
	if Normalize("Ｆｕｌｌwidth") != "fullwidth" {
		t.Errorf("Normalize should fold fullwidth forms, got %q", Normalize("Ｆｕｌｌwidth"))
	}
}

func TestTemplate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Page 3 of 12", "page # of #"},
		{"Page 10 of 12", "page # of #"},
		{"Confidential", "confidential"},
		{"2024-01-05", "#-#-#"},
	}

	for _, tt := range tests {
		if got := Template(tt.in); got != tt.want {
			t.Errorf("Template(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestWordCount(t *testing.T) {
	if n := WordCount("  one two\tthree\n"); n != 3 {
		t.Errorf("WordCount = %d, want 3", n)
	}
	if n := WordCount(""); n != 0 {
		t.Errorf("WordCount(\"\") = %d, want 0", n)
	}
}

func TestIsNumeric(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"12", true},
		{"- 4 -", true},
		{"(7)", true},
		{"iv", true},
		{"XII", true},
		{"", false},
		{"1. Introduction", false},
		{"Chapter", false},
		{"did", false},
		{"xxiv", true},
		{"CV", false},
		{"Mix", false},
		{"MD", false},
		{"CI", false},
		{"Vi", false},
		{"xl", false},
	}

	for _, tt := range tests {
		if got := IsNumeric(tt.in); got != tt.want {
			t.Errorf("IsNumeric(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
