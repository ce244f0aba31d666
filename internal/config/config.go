// Package config defines the JSON-serializable configuration model for a
// cleaning run. It is intentionally small, explicit, and dependency-free so
// that pipelines can be loaded from disk and passed through the program
// without additional glue code.
//
// Example (trimmed):
//
//	{
//	  "job":    "crashclean",
//	  "source": { "kind": "sqlite", "dsn": "data/crashes.db", "table": "planecrashes" },
//	  "dest":   { "kind": "sqlite", "dsn": "prod/crashes.db", "table": "planecrashes" },
//	  "reports": { "validation": "prod/validation_report.txt" }
//	}
package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Pipeline is the top-level object decoded from a pipeline file.
type Pipeline struct {
	// Job names this run. It labels metrics and log lines.
	Job string `json:"job"`

	// Source is the database holding the raw scraped table.
	Source Endpoint `json:"source"`

	// Dest is the database the cleaned table is written to.
	Dest Endpoint `json:"dest"`

	// Rules optionally points at a YAML rules file overriding the embedded
	// lookup tables (states, manufacturer prefixes, registration prefixes).
	Rules string `json:"rules"`

	// Reports names the output artifacts. Empty paths skip that artifact.
	Reports Reports `json:"reports"`

	Metrics MetricsConfig `json:"metrics"`
}

// Endpoint identifies one database table.
type Endpoint struct {
	// Kind selects the storage backend. Current values: "sqlite", "postgres".
	Kind string `json:"kind"`

	// DSN is the backend connection string; for sqlite it is a file path.
	DSN string `json:"dsn"`

	// Table is the table name (optionally schema-qualified on postgres).
	Table string `json:"table"`
}

// Reports names the report files produced after loading.
type Reports struct {
	// Validation is the path of the validation report. Default:
	// validation_report.txt next to the destination database.
	Validation string `json:"validation"`

	// Analysis is the path of the profiling/analysis report.
	Analysis string `json:"analysis"`

	// Metadata is the path of the column-metadata CSV.
	Metadata string `json:"metadata"`
}

// MetricsConfig selects the metrics backend for the run.
type MetricsConfig struct {
	// Backend is "nop" (default), "prometheus", or "datadog".
	Backend string `json:"backend"`

	// PushgatewayURL is the Prometheus Pushgateway endpoint, required when
	// Backend is "prometheus".
	PushgatewayURL string `json:"pushgateway_url"`
}

// Load reads and decodes a pipeline file. Unknown fields are rejected so a
// typo in a key fails loudly instead of silently using a default.
func Load(path string) (Pipeline, error) {
	var p Pipeline
	f, err := os.Open(path)
	if err != nil {
		return p, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		return p, fmt.Errorf("config: decode %s: %w", path, err)
	}
	return p, nil
}
