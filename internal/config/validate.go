// Package config provides the configuration model and helpers for cleaning
// runs.
//
// This file adds a lightweight linter/validator for Pipeline values. It
// performs static checks over a decoded Pipeline and returns a list of issues
// (errors and warnings) that callers can surface in a CLI or tests.
package config

import (
	"fmt"
	"strings"
)

// IssueSeverity represents the severity of a configuration issue.
type IssueSeverity string

const (
	// SeverityError indicates a configuration error that should block execution.
	SeverityError IssueSeverity = "error"
	// SeverityWarning indicates a configuration warning that should be surfaced
	// to users but may not necessarily block execution.
	SeverityWarning IssueSeverity = "warning"
)

// Issue describes a single validation/lint finding for a Pipeline.
//
// Path is a dotted path into the config (e.g. "source.kind",
// "metrics.pushgateway_url"). Message is human-readable.
type Issue struct {
	Severity IssueSeverity
	Path     string
	Message  string
}

// Error implements the error interface so an Issue can be treated as a single
// error in contexts that expect error.
func (i Issue) Error() string {
	return fmt.Sprintf("%s at %s: %s", i.Severity, i.Path, i.Message)
}

// HasErrors reports whether any issue in the list is an error.
func HasErrors(issues []Issue) bool {
	for _, iss := range issues {
		if iss.Severity == SeverityError {
			return true
		}
	}
	return false
}

// ValidatePipeline performs static validation / linting of a Pipeline.
//
// It does not mutate the pipeline. Instead it returns a slice of Issue values.
// Callers may decide whether to treat warnings as fatal or not.
func ValidatePipeline(p Pipeline) []Issue {
	var issues []Issue

	if strings.TrimSpace(p.Job) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "job",
			Message:  "job must not be empty; it is used for metrics labeling and identifying runs",
		})
	}
	issues = append(issues, validateEndpoint("source", p.Source)...)
	issues = append(issues, validateEndpoint("dest", p.Dest)...)
	issues = append(issues, validateMetrics(p.Metrics)...)

	if p.Source.Kind == p.Dest.Kind && p.Source.DSN == p.Dest.DSN && p.Source.Table == p.Dest.Table &&
		p.Source.DSN != "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "dest",
			Message:  "dest must not be the same table as source; the destination is recreated on every run",
		})
	}

	return issues
}

// validateEndpoint validates one database endpoint under the given path
// prefix.
func validateEndpoint(prefix string, e Endpoint) []Issue {
	var issues []Issue

	if strings.TrimSpace(e.Kind) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     prefix + ".kind",
			Message:  prefix + ".kind must not be empty",
		})
		return issues
	}

	// Unknown kinds are warnings so new backends can be registered without a
	// lockstep linter change.
	known := map[string]struct{}{
		"sqlite":   {},
		"postgres": {},
	}
	if _, ok := known[e.Kind]; !ok {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     prefix + ".kind",
			Message:  fmt.Sprintf("unknown storage kind %q; ensure a matching backend is registered", e.Kind),
		})
	}

	if strings.TrimSpace(e.DSN) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     prefix + ".dsn",
			Message:  prefix + ".dsn must not be empty",
		})
	}
	if strings.TrimSpace(e.Table) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     prefix + ".table",
			Message:  prefix + ".table must not be empty",
		})
	}

	return issues
}

// validateMetrics validates the metrics block.
func validateMetrics(m MetricsConfig) []Issue {
	var issues []Issue

	known := map[string]struct{}{
		"":           {},
		"nop":        {},
		"prometheus": {},
		"datadog":    {},
	}
	if _, ok := known[m.Backend]; !ok {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "metrics.backend",
			Message:  fmt.Sprintf("unknown metrics backend %q; ensure a matching backend is registered", m.Backend),
		})
	}
	if m.Backend == "prometheus" && strings.TrimSpace(m.PushgatewayURL) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "metrics.pushgateway_url",
			Message:  "pushgateway_url is required when metrics.backend is \"prometheus\"",
		})
	}

	return issues
}
