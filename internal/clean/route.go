package clean

import (
	"regexp"
	"strings"
)

var (
	dashSpacingRe = regexp.MustCompile(`\s*-\s*`)
	doubleCommaRe = regexp.MustCompile(`,{2,}`)

	// A lone aircraft-registration-shaped token misplaced into the route
	// column, e.g. "G-ABCD" or "CCCP-42370".
	regShapedRouteRe = regexp.MustCompile(`^[A-Za-z]{1,4}-[A-Za-z0-9]{2,6}$`)
)

// ParseRoute normalizes the origin-destination route column. Dash spacing
// around separators becomes exactly " - ", a trailing period is stripped,
// doubled commas collapse, and a leading operation-type label (Training,
// Sightseeing, ...) is removed. If nothing but the activity label was
// present, meaning no " - " separator survives the strip, the value is not a route
// and becomes nil.
//
//	ParseRoute("Training -Montreal - Ottawa") → "Montreal - Ottawa"
//	ParseRoute("Sightseeing")                 → nil
func (r *Ruleset) ParseRoute(s string) *string {
	p := CleanText(s)
	if p == nil {
		return nil
	}
	v := *p

	if regShapedRouteRe.MatchString(v) {
		return nil
	}

	v = dashSpacingRe.ReplaceAllString(v, " - ")
	v = strings.TrimSuffix(v, ".")
	v = doubleCommaRe.ReplaceAllString(v, ",")
	v = strings.TrimSpace(v)

	for _, prefix := range r.routePrefixes {
		if strings.EqualFold(v, prefix) {
			return nil
		}
		if !hasFoldPrefix(v, prefix) {
			continue
		}
		rest := strings.TrimLeft(v[len(prefix):], " -")
		if !strings.Contains(rest, " - ") {
			return nil
		}
		v = rest
		break
	}

	if v == "" {
		return nil
	}
	return &v
}

// hasFoldPrefix reports whether v starts with prefix (case-insensitive)
// followed by a word boundary (space or dash).
func hasFoldPrefix(v, prefix string) bool {
	if len(v) <= len(prefix) {
		return false
	}
	if !strings.EqualFold(v[:len(prefix)], prefix) {
		return false
	}
	next := v[len(prefix)]
	return next == ' ' || next == '-'
}
