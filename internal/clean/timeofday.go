package clean

import (
	"fmt"
	"regexp"
	"strconv"
)

var (
	circaRe    = regexp.MustCompile(`(?i)^c\s*`)
	clockRe    = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)
	bareTimeRe = regexp.MustCompile(`^\d{3,4}$`)
)

// ParseTime normalizes a raw time value to 24-hour "HH:MM".
//
// A leading "c" (circa) marker is stripped. Accepted inputs are "H:MM",
// "HH:MM", and bare 3-or-4-digit integers read as HHMM ("730" → "07:30").
// Out-of-range hours or minutes and anything else yield nil.
func ParseTime(s string) *string {
	p := CleanText(s)
	if p == nil {
		return nil
	}
	v := circaRe.ReplaceAllString(*p, "")

	if m := clockRe.FindStringSubmatch(v); m != nil {
		return formatClock(m[1], m[2])
	}
	if bareTimeRe.MatchString(v) {
		if len(v) == 3 {
			v = "0" + v
		}
		return formatClock(v[:2], v[2:])
	}
	return nil
}

func formatClock(hh, mm string) *string {
	h, _ := strconv.Atoi(hh)
	m, _ := strconv.Atoi(mm)
	if h > 23 || m > 59 {
		return nil
	}
	return strPtr(fmt.Sprintf("%02d:%02d", h, m))
}
