package clean

import "strings"

// Normalized country names produced by ParseLocation.
const (
	countryUS = "United States"
	countryUK = "United Kingdom"
)

// ParseLocation splits a freeform location into a place part and a country
// candidate taken from the final comma-separated token.
//
// US state names and two-letter codes normalize to "United States"; UK
// constituent names normalize to "United Kingdom". A final token naming a
// geographic feature (ocean, gulf, lake, ...) carries no country information,
// so the whole value is treated as unparseable. A single token with no comma
// and no geographic word is a bare country name with no place remainder.
func (r *Ruleset) ParseLocation(s string) (location, country *string) {
	p := CleanText(s)
	if p == nil {
		return nil, nil
	}

	parts := strings.Split(*p, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	last := parts[len(parts)-1]
	if last == "" || r.hasGeoFeature(last) {
		return nil, nil
	}

	c := last
	switch {
	case r.inSet(r.usStates, last):
		c = countryUS
	case r.inSet(r.ukNames, last):
		c = countryUK
	}

	if len(parts) == 1 {
		return nil, strPtr(c)
	}
	place := strings.Join(parts[:len(parts)-1], ", ")
	place = strings.TrimSpace(place)
	if place == "" {
		return nil, strPtr(c)
	}
	return strPtr(place), strPtr(c)
}

func (r *Ruleset) hasGeoFeature(token string) bool {
	for _, w := range strings.Fields(strings.ToLower(token)) {
		if _, ok := r.geoFeatures[strings.Trim(w, ".,")]; ok {
			return true
		}
	}
	return false
}

func (r *Ruleset) inSet(set map[string]struct{}, s string) bool {
	_, ok := set[strings.ToLower(s)]
	return ok
}
