package clean

import "strings"

// ParseFlightNo cleans the flight-number column. Unknown markers, values
// starting with "?", misplaced date fragments, and the bare operation label
// "Charter" become nil. Hyphens are removed, artifacts of a removed unknown
// sub-part (stray "/" at either end) are trimmed, and whitespace runs
// collapse.
func ParseFlightNo(s string) *string {
	p := CleanText(s)
	if p == nil {
		return nil
	}
	v := *p

	if strings.HasPrefix(v, Sentinel) || isDateShaped(v) || strings.EqualFold(v, "Charter") {
		return nil
	}

	v = strings.ReplaceAll(v, "-", "")
	v = strings.Trim(v, " ")
	v = strings.TrimPrefix(v, "/")
	v = strings.TrimSuffix(v, "/")
	v = wsRunRe.ReplaceAllString(strings.TrimSpace(v), " ")
	if v == "" {
		return nil
	}
	return &v
}
