package clean

import (
	"regexp"
	"strconv"
)

// countRe extracts the total and the passengers/crew breakdown from the
// composite "<total> ▸ (passengers:<X|?> ▸ crew:<Y|?>)" encoding. The bullet
// separator is not ASCII-stable across the dataset, so anything between the
// three anchors is tolerated.
var countRe = regexp.MustCompile(`(?i)(\d+).*?passengers:\s*(\?|\d+).*?crew:\s*(\?|\d+)`)

// ParseCount decodes the shared aboard/fatalities composite count field into
// (total, passengers, crew). A "?" breakdown member is nil. When the
// composite pattern does not match, the whole value is retried as a bare
// integer total with a nil breakdown; failing that, all three are nil.
//
//	ParseCount("155 ▸ (passengers:150 ▸ crew:5)") → (155, 150, 5)
//	ParseCount("12")                              → (12, nil, nil)
//	ParseCount("?")                               → (nil, nil, nil)
func ParseCount(s string) (total, passengers, crew *int) {
	p := CleanText(s)
	if p == nil {
		return nil, nil, nil
	}
	m := countRe.FindStringSubmatch(*p)
	if m == nil {
		if n, err := strconv.Atoi(*p); err == nil {
			return intPtr(n), nil, nil
		}
		return nil, nil, nil
	}
	t, _ := strconv.Atoi(m[1])
	return intPtr(t), countMember(m[2]), countMember(m[3])
}

func countMember(s string) *int {
	if s == Sentinel {
		return nil
	}
	n, _ := strconv.Atoi(s)
	return intPtr(n)
}

// ParseGround converts the ground-fatalities column to a non-negative
// integer. The sentinel, non-numeric text, and negative values yield nil.
func ParseGround(s string) *int {
	p := CleanText(s)
	if p == nil {
		return nil
	}
	n, err := strconv.Atoi(*p)
	if err != nil || n < 0 {
		return nil
	}
	return intPtr(n)
}

// SafeSum adds integers treating nil as zero.
func SafeSum(vals ...*int) int {
	sum := 0
	for _, v := range vals {
		if v != nil {
			sum += *v
		}
	}
	return sum
}
