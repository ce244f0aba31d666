package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"crashclean/internal/analytics"
	"crashclean/internal/clean"
	"crashclean/internal/config"
	"crashclean/internal/export"
	"crashclean/internal/metrics"
	"crashclean/internal/schema"
	"crashclean/internal/storage"
	"crashclean/internal/transform"
	"crashclean/internal/validate"
	"crashclean/pkg/records"
)

// run executes one full cleaning pass: extract the raw table, normalize every
// field, load the cleaned table into the destination, then validate, gate on
// duplicates, and emit the report artifacts.
func run(ctx context.Context, p config.Pipeline, verbose bool) error {
	if err := bootstrap(p); err != nil {
		return err
	}

	rules, err := loadRules(p.Rules)
	if err != nil {
		return err
	}

	// Extract.
	var raws []records.Record
	if err := step(p.Job, "extract", func() error {
		var err error
		raws, err = readSource(ctx, p.Source)
		return err
	}); err != nil {
		return err
	}
	metrics.RecordRows(p.Job, "source", int64(len(raws)))
	if verbose {
		log.Printf("extract: %d raw rows from %s", len(raws), p.Source.Table)
	}

	// Transform.
	var (
		cleaned []schema.Cleaned
		summary transform.Summary
	)
	if err := step(p.Job, "transform", func() error {
		cleaned, summary = transform.New(rules).Run(raws)
		return nil
	}); err != nil {
		return err
	}
	metrics.RecordRows(p.Job, "written", int64(summary.WrittenRows))
	metrics.RecordRows(p.Job, "skipped", int64(summary.SkippedRows))

	// Load.
	dest, err := storage.New(ctx, storage.Config{Kind: p.Dest.Kind, DSN: p.Dest.DSN})
	if err != nil {
		return err
	}
	defer dest.Close()

	if err := step(p.Job, "load", func() error {
		return load(ctx, dest, p.Dest.Table, cleaned)
	}); err != nil {
		return err
	}

	printSummary(summary)

	// Validate: read the cleaned table back through the driver so the checks
	// see exactly what a downstream consumer would.
	var report *validate.Report
	var rows []records.Record
	if err := step(p.Job, "validate", func() error {
		cols, err := dest.Columns(ctx, p.Dest.Table)
		if err != nil {
			return err
		}
		rows, err = dest.Query(ctx,
			fmt.Sprintf("SELECT %s FROM %s", strings.Join(schema.Columns, ", "), p.Dest.Table))
		if err != nil {
			return err
		}
		report = validate.Run(validate.Dataset{Columns: cols, Rows: rows})
		return nil
	}); err != nil {
		return err
	}

	metrics.RecordChecks(p.Job, "passed", int64(len(report.Passed)))
	metrics.RecordChecks(p.Job, "warning", int64(len(report.Warnings)))
	metrics.RecordChecks(p.Job, "failed", int64(len(report.Failed)))

	rendered := report.Render()
	fmt.Print(rendered)
	if p.Reports.Validation != "" {
		if err := os.WriteFile(p.Reports.Validation, []byte(rendered), 0o644); err != nil {
			return fmt.Errorf("write validation report: %w", err)
		}
		log.Printf("validation report written to %s", p.Reports.Validation)
	}
	if report.Verdict() != "PASS" {
		return fmt.Errorf("validation failed: %d check(s) failed", len(report.Failed))
	}

	// Acceptance gate: the cleaned table must not contain exact duplicates.
	ok, detail := validate.CheckNoDuplicates(rows, schema.Columns)
	if !ok {
		fmt.Print(detail)
		return fmt.Errorf("duplicate check failed")
	}
	if verbose {
		log.Printf("duplicate check: %s", strings.TrimSpace(detail))
	}

	// Report artifacts.
	if p.Reports.Metadata != "" {
		if err := step(p.Job, "metadata", func() error {
			return export.Metadata(ctx, dest, p.Dest.Table, p.Reports.Metadata)
		}); err != nil {
			return err
		}
		log.Printf("metadata written to %s", p.Reports.Metadata)
	}

	if p.Reports.Analysis != "" {
		if err := step(p.Job, "analyze", func() error {
			f, err := os.Create(p.Reports.Analysis)
			if err != nil {
				return err
			}
			defer f.Close()
			return analytics.New(dest, p.Dest.Table, rules).WriteReport(ctx, f)
		}); err != nil {
			return err
		}
		log.Printf("analysis report written to %s", p.Reports.Analysis)
	}

	return nil
}

// step times fn and records its outcome under the given step name.
func step(job, name string, fn func() error) error {
	start := time.Now()
	err := fn()
	metrics.RecordStep(job, name, err, time.Since(start))
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// bootstrap prepares the filesystem side of a run. A missing sqlite source is
// a hard error; an existing sqlite destination is removed so every run starts
// from an empty table.
func bootstrap(p config.Pipeline) error {
	if p.Source.Kind == "sqlite" {
		if _, err := os.Stat(p.Source.DSN); err != nil {
			return fmt.Errorf("source database %s does not exist: %w", p.Source.DSN, err)
		}
	}
	if p.Dest.Kind == "sqlite" {
		if dir := filepath.Dir(p.Dest.DSN); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create destination directory: %w", err)
			}
		}
		if err := os.Remove(p.Dest.DSN); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove existing destination database: %w", err)
		}
	}
	return nil
}

// loadRules returns the compiled parser rules, preferring an on-disk rules
// file when the config names one.
func loadRules(path string) (*clean.Ruleset, error) {
	if path == "" {
		return clean.DefaultRuleset(), nil
	}
	return clean.LoadRuleset(path)
}

// readSource pulls every raw row from the source table in source column order.
func readSource(ctx context.Context, src config.Endpoint) ([]records.Record, error) {
	repo, err := storage.New(ctx, storage.Config{Kind: src.Kind, DSN: src.DSN})
	if err != nil {
		return nil, err
	}
	defer repo.Close()

	return repo.Query(ctx,
		fmt.Sprintf("SELECT %s FROM %s", strings.Join(schema.RawColumns, ", "), src.Table))
}

// load creates the cleaned table and bulk-inserts every record.
func load(ctx context.Context, dest storage.Repository, table string, cleaned []schema.Cleaned) error {
	if err := dest.Exec(ctx, schema.CreateTableSQL(table)); err != nil {
		return fmt.Errorf("create table: %w", err)
	}

	rows := make([][]any, len(cleaned))
	for i, rec := range cleaned {
		rows[i] = rec.Values()
	}

	n, err := dest.CopyFrom(ctx, table, schema.Columns, rows)
	if err != nil {
		return err
	}
	if n != int64(len(rows)) {
		return fmt.Errorf("copied %d rows, want %d", n, len(rows))
	}
	return nil
}

// printSummary logs the row accounting and the null spot check over the
// columns most likely to regress when a parser changes.
func printSummary(s transform.Summary) {
	log.Printf("transform: %d source rows, %d written, %d skipped",
		s.SourceRows, s.WrittenRows, s.SkippedRows)

	spot := []string{"date", "time", "aboard_total", "fatalities_aboard", "ground"}
	parts := make([]string, 0, len(spot))
	for _, col := range spot {
		parts = append(parts, fmt.Sprintf("%s=%d", col, s.NullCounts[col]))
	}
	log.Printf("null spot check: %s", strings.Join(parts, " "))
}
