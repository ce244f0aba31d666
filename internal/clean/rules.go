// Package clean implements the per-column field parsers that turn the raw,
// free-text accident records into the strict typed schema. Every parser is a
// total function: malformed input is a normal case answered with nil, never
// an error.
//
// The parsers split in two groups: format parsers (dates, times, counts,
// plain text) that need no configuration, and rule-driven parsers (location,
// operator, route, registration) whose lookup sets are data, not code. The
// default sets ship embedded in rules.yaml and can be overridden per dataset.
package clean

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed rules.yaml
var defaultRulesYAML []byte

// Rules is the on-disk shape of the parser lookup sets.
type Rules struct {
	USStates              []string `yaml:"us_states"`
	USStateCodes          []string `yaml:"us_state_codes"`
	UKNames               []string `yaml:"uk_names"`
	GeoFeatures           []string `yaml:"geo_features"`
	ManufacturerPrefixes  []string `yaml:"manufacturer_prefixes"`
	CompanyWords          []string `yaml:"company_words"`
	RouteActivityPrefixes []string `yaml:"route_activity_prefixes"`
	RegistrationPrefixes  []string `yaml:"registration_prefixes"`
}

// Ruleset is a compiled Rules value with case-insensitive lookup sets built
// for the parser hot path.
type Ruleset struct {
	usStates      map[string]struct{}
	ukNames       map[string]struct{}
	geoFeatures   map[string]struct{}
	companyWords  map[string]struct{}
	regPrefixes   map[string]struct{}
	manufacturers []string // longest-first, for prefix matching
	routePrefixes []string // longest-first
}

// DefaultRuleset compiles the embedded rules.yaml. The embedded file is part
// of the build, so a decode failure is a programming error.
func DefaultRuleset() *Ruleset {
	rs, err := compile(defaultRulesYAML)
	if err != nil {
		panic(fmt.Sprintf("clean: embedded rules.yaml invalid: %v", err))
	}
	return rs
}

// LoadRuleset reads and compiles a rules file from disk.
func LoadRuleset(path string) (*Ruleset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("clean: read rules: %w", err)
	}
	rs, err := compile(data)
	if err != nil {
		return nil, fmt.Errorf("clean: rules %s: %w", path, err)
	}
	return rs, nil
}

func compile(data []byte) (*Ruleset, error) {
	var r Rules
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}

	rs := &Ruleset{
		usStates:     lowerSet(append(append([]string{}, r.USStates...), r.USStateCodes...)),
		ukNames:      lowerSet(r.UKNames),
		geoFeatures:  lowerSet(r.GeoFeatures),
		companyWords: lowerSet(r.CompanyWords),
		regPrefixes:  lowerSet(r.RegistrationPrefixes),
	}
	rs.manufacturers = longestFirst(r.ManufacturerPrefixes)
	rs.routePrefixes = longestFirst(r.RouteActivityPrefixes)
	return rs, nil
}

func lowerSet(ss []string) map[string]struct{} {
	m := make(map[string]struct{}, len(ss))
	for _, s := range ss {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			m[s] = struct{}{}
		}
	}
	return m
}

// longestFirst orders prefix candidates so "McDonnell Douglas" wins over
// "Douglas" and "Test flight" over "Test".
func longestFirst(ss []string) []string {
	out := make([]string, 0, len(ss))
	for _, s := range ss {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && len(out[j]) > len(out[j-1]); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}
