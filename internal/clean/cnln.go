package clean

import (
	"regexp"
	"strings"
)

var (
	trailingUnknownRe = regexp.MustCompile(`(?i)\s*/\s*unknown\s*$`)
	slashSplitRe      = regexp.MustCompile(`\s+/\s+`)
)

// ParseCnLn cleans the construction/line-number column. Misplaced date
// fragments become nil; parenthetical annotations and trailing "/ unknown"
// artifacts are stripped. Multi-aircraft entries split on " / " are
// normalized per side (hyphens removed, whitespace collapsed), empty or
// unknown sides dropped, and the survivors rejoined with " / ".
func ParseCnLn(s string) *string {
	p := CleanText(s)
	if p == nil {
		return nil
	}
	if isDateShaped(*p) {
		return nil
	}

	v := parentheticalRe.ReplaceAllString(*p, "")
	v = trailingUnknownRe.ReplaceAllString(v, "")

	var sides []string
	for _, side := range slashSplitRe.Split(v, -1) {
		side = strings.ReplaceAll(side, "-", "")
		side = wsRunRe.ReplaceAllString(strings.TrimSpace(side), " ")
		if side == "" || side == Sentinel {
			continue
		}
		sides = append(sides, side)
	}
	if len(sides) == 0 {
		return nil
	}
	return strPtr(strings.Join(sides, " / "))
}
