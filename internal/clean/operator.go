package clean

import (
	"regexp"
	"strings"
)

var (
	// Pure numeric/serial codes misplaced into the operator column,
	// e.g. "59-2937" or "63/14".
	serialCodeRe = regexp.MustCompile(`^\d+[-/]\d+$`)

	// A model-like token following a manufacturer name: optional letter
	// block, optional hyphen, then digits ("KC-135E", "737", "DC-3").
	modelTokenRe = regexp.MustCompile(`^[A-Za-z]{0,4}-?\d`)

	// An aircraft designator accidentally concatenated onto the end of an
	// operator name: lowercase letter, then uppercase block, optional
	// hyphen, digits, optional trailing letter.
	trailingDesignatorRe = regexp.MustCompile(`([a-z])[A-Z][A-Za-z]*-?\d+[A-Za-z]?$`)
)

// ParseOperator cleans the airline/operator column. Entries that are really
// misplaced data such as serial codes or a manufacturer-plus-model aircraft
// designator become nil; a designator fragment glued onto a legitimate
// name is stripped.
//
//	ParseOperator("Boeing KC-135E")        → nil
//	ParseOperator("Boeing Air Transport")  → "Boeing Air Transport"
func (r *Ruleset) ParseOperator(s string) *string {
	p := CleanText(s)
	if p == nil {
		return nil
	}
	v := *p

	if serialCodeRe.MatchString(v) {
		return nil
	}
	if r.isAircraftDesignator(v) {
		return nil
	}

	v = trailingDesignatorRe.ReplaceAllString(v, "$1")
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}

// isAircraftDesignator reports whether v is a manufacturer name followed by a
// model-like token. A following word that indicates a company ("Air",
// "Airways", "Transport", ...) marks the value as a legitimate operator name
// instead.
func (r *Ruleset) isAircraftDesignator(v string) bool {
	lower := strings.ToLower(v)
	for _, mfr := range r.manufacturers {
		prefix := strings.ToLower(mfr) + " "
		if !strings.HasPrefix(lower, prefix) {
			continue
		}
		rest := strings.TrimSpace(v[len(prefix):])
		if rest == "" {
			return false
		}
		first := strings.Fields(rest)[0]
		if _, ok := r.companyWords[strings.ToLower(first)]; ok {
			return false
		}
		return modelTokenRe.MatchString(first)
	}
	return false
}
