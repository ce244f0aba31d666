package clean

import (
	"regexp"
	"strings"
)

var regPrefixSpaceRe = regexp.MustCompile(`^([A-Za-z]+)\s+([A-Za-z0-9].*)$`)

// ParseRegistration normalizes the airframe-registration column. Misplaced
// date fragments become nil. Two-aircraft collision entries ("N123 / N456")
// are split on the slash, each side normalized independently, unknown sides
// dropped, and the survivors rejoined with " / ".
func (r *Ruleset) ParseRegistration(s string) *string {
	p := CleanText(s)
	if p == nil {
		return nil
	}
	if isDateShaped(*p) {
		return nil
	}

	var sides []string
	for _, side := range strings.Split(*p, "/") {
		side = r.normalizeRegistrationSide(side)
		if side != "" {
			sides = append(sides, side)
		}
	}
	if len(sides) == 0 {
		return nil
	}
	return strPtr(strings.Join(sides, " / "))
}

// normalizeRegistrationSide cleans one registration: whitespace around
// hyphens collapses, and a space wrongly used after a standard country
// prefix is repaired ("CCCP 42370" → "CCCP-42370", "N 1234X" → "N1234X").
// The unknown sentinel normalizes to the empty string.
func (r *Ruleset) normalizeRegistrationSide(s string) string {
	v := strings.TrimSpace(s)
	if v == "" || v == Sentinel {
		return ""
	}
	v = dashSpacingCollapse(v)

	if m := regPrefixSpaceRe.FindStringSubmatch(v); m != nil {
		prefix, rest := m[1], m[2]
		switch {
		case len(prefix) > 1 && r.inSet(r.regPrefixes, prefix):
			v = prefix + "-" + rest
		case strings.EqualFold(prefix, "N"):
			// US registrations carry no hyphen; the space is the typo.
			v = prefix + rest
		}
	}
	return v
}

// dashSpacingCollapse removes whitespace on both sides of hyphens.
func dashSpacingCollapse(s string) string {
	return dashSpacingRe.ReplaceAllString(s, "-")
}
