// Package export writes the metadata.csv companion file describing the
// cleaned table: one row per column with its declared type, null count,
// distinct count, and human description.
package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"crashclean/internal/schema"
	"crashclean/internal/storage"
)

// Metadata profiles the cleaned table and writes the result as CSV to path.
func Metadata(ctx context.Context, repo storage.Repository, table, path string) error {
	total, err := QueryInt(ctx, repo, fmt.Sprintf("SELECT COUNT(*) AS n FROM %s", table))
	if err != nil {
		return fmt.Errorf("export: count rows: %w", err)
	}

	cols, err := repo.Columns(ctx, table)
	if err != nil {
		return fmt.Errorf("export: table columns: %w", err)
	}

	descriptions := schema.Descriptions()

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"field", "data_type", "total_rows", "num_na", "num_unique", "description"}); err != nil {
		return fmt.Errorf("export: write header: %w", err)
	}

	for _, col := range cols {
		numNull, err := QueryInt(ctx, repo,
			fmt.Sprintf("SELECT COUNT(*) AS n FROM %s WHERE %s IS NULL", table, col.Name))
		if err != nil {
			return fmt.Errorf("export: null count %s: %w", col.Name, err)
		}
		numUnique, err := QueryInt(ctx, repo,
			fmt.Sprintf("SELECT COUNT(DISTINCT %s) AS n FROM %s", col.Name, table))
		if err != nil {
			return fmt.Errorf("export: distinct count %s: %w", col.Name, err)
		}

		rec := []string{
			col.Name,
			col.Type,
			strconv.FormatInt(total, 10),
			strconv.FormatInt(numNull, 10),
			strconv.FormatInt(numUnique, 10),
			descriptions[col.Name],
		}
		if err := w.Write(rec); err != nil {
			return fmt.Errorf("export: write row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("export: flush: %w", err)
	}
	return nil
}

// QueryInt runs a query whose first row carries a single integer column
// aliased "n".
func QueryInt(ctx context.Context, repo storage.Repository, query string, args ...any) (int64, error) {
	recs, err := repo.Query(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	if len(recs) == 0 {
		return 0, fmt.Errorf("query returned no rows")
	}
	n, ok := recs[0].Int("n")
	if !ok {
		return 0, fmt.Errorf("query column n is not an integer")
	}
	return n, nil
}
