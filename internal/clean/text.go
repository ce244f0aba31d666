package clean

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Sentinel is the literal value the source uses for "not recorded".
const Sentinel = "?"

var (
	wsRunRe      = regexp.MustCompile(`\s+`)
	multiDotRe   = regexp.MustCompile(`\.{2,}`)
	dateShapedRe = regexp.MustCompile(`^\d{1,2}-[A-Za-z]{3}$`)
)

// normalizer NFC-composes input and drops invisible format runes that the
// historical source files carry (zero-width joiners, BOMs and the like).
var normalizer = transform.Chain(
	norm.NFC,
	runes.Remove(runes.In(unicode.Cf)),
)

// normalizeUnicode applies the normalizer and converts non-breaking spaces to
// plain spaces so the whitespace regexes see them.
func normalizeUnicode(s string) string {
	out, _, err := transform.String(normalizer, s)
	if err != nil {
		out = s
	}
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return ' '
		}
		return r
	}, out)
}

// CleanText trims surrounding whitespace and maps the unknown sentinel and
// the empty string to nil. This is the base cleanup shared by every text
// column.
func CleanText(s string) *string {
	v := strings.TrimSpace(normalizeUnicode(s))
	if v == "" || v == Sentinel {
		return nil
	}
	return &v
}

// CleanSummary normalizes the freeform narrative column: newlines and tabs
// become single spaces, whitespace runs collapse, and stuttered periods
// collapse to one.
func CleanSummary(s string) *string {
	p := CleanText(s)
	if p == nil {
		return nil
	}
	v := wsRunRe.ReplaceAllString(*p, " ")
	v = multiDotRe.ReplaceAllString(v, ".")
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}

// isDateShaped reports whether s looks like a stray "D-Mon" or "DD-Mon"
// fragment from the date column, misplaced into another field.
func isDateShaped(s string) bool { return dateShapedRe.MatchString(s) }

func strPtr(s string) *string { return &s }

func intPtr(n int) *int { return &n }
