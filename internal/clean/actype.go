package clean

import (
	"regexp"
	"strings"
)

var parentheticalRe = regexp.MustCompile(`\([^)]*\)`)

// ParseACType cleans the aircraft-type column by stripping every
// parenthetical annotation (category labels, fleet counts, alternate
// designators) and collapsing the resulting whitespace. Slash-separated
// multi-aircraft collision entries stay verbatim: the separator carries
// meaning.
func ParseACType(s string) *string {
	p := CleanText(s)
	if p == nil {
		return nil
	}
	v := parentheticalRe.ReplaceAllString(*p, "")
	v = wsRunRe.ReplaceAllString(v, " ")
	v = strings.TrimSpace(v)
	if v == "" || v == Sentinel {
		return nil
	}
	return &v
}
