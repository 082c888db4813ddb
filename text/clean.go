package text

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Clean collapses runs of whitespace into single spaces, drops control
// characters and trims the result.
func Clean(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	space := false
	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			space = b.Len() > 0
		case unicode.IsControl(r) || r == '\uFFFD':
			continue
		default:
			if space {
				b.WriteByte(' ')
				space = false
			}
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Normalize returns a comparison key for s: NFKC-normalized, lower-cased
// and whitespace-cleaned. Ligatures such as "ﬁ" fold to "fi".
func Normalize(s string) string {
	return strings.ToLower(Clean(norm.NFKC.String(s)))
}

// Template is Normalize with every run of digits replaced by '#'.
func Template(s string) string {
	n := Normalize(s)
	var b strings.Builder
	b.Grow(len(n))
	inDigits := false
	for _, r := range n {
		if unicode.IsDigit(r) {
			if !inDigits {
				b.WriteByte('#')
				inDigits = true
			}
			continue
		}
		inDigits = false
		b.WriteRune(r)
	}
	return b.String()
}

// WordCount returns the number of whitespace-separated words.
func WordCount(s string) int {
	return len(strings.Fields(s))
}

// IsNumeric reports whether s consists only of digits, roman numerals and
// page-number punctuation, e.g. "12", "- 4 -", "iv". Roman page numbers are
// short, single-case and built from i, v and x only, so words such as "CV"
// or "Mix" are not numbers.
func IsNumeric(s string) bool {
	s = strings.Trim(strings.TrimSpace(s), "-–—.() ")
	if s == "" {
		return false
	}
	digits := true
	for _, r := range s {
		if !unicode.IsDigit(r) {
			digits = false
			break
		}
	}
	if digits {
		return true
	}
	return isRomanPageNumber(s)
}

var romanPageNumber = regexp.MustCompile(`^x{0,3}(ix|iv|v?i{0,3})$`)

func isRomanPageNumber(s string) bool {
	if len(s) > 5 || (s != strings.ToLower(s) && s != strings.ToUpper(s)) {
		return false
	}
	return romanPageNumber.MatchString(strings.ToLower(s))
}
