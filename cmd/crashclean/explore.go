package main

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"crashclean/internal/config"
	"crashclean/internal/export"
	"crashclean/internal/schema"
	"crashclean/internal/storage"
)

// exploreLimit caps the value-frequency breakdown; beyond this the long tail
// is summarized as a single remainder line.
const exploreLimit = 40

// explore prints a value-frequency breakdown of one raw source column. It is
// a read-only convenience for eyeballing the mess a parser has to handle
// without reaching for a SQL shell.
func explore(ctx context.Context, w io.Writer, p config.Pipeline, column string) error {
	if !slices.Contains(schema.RawColumns, column) {
		return fmt.Errorf("explore: unknown column %q (valid: %s)",
			column, strings.Join(schema.RawColumns, ", "))
	}

	repo, err := storage.New(ctx, storage.Config{Kind: p.Source.Kind, DSN: p.Source.DSN})
	if err != nil {
		return err
	}
	defer repo.Close()

	recs, err := repo.Query(ctx, fmt.Sprintf(`
		SELECT %[1]s AS value, COUNT(*) AS n
		  FROM %[2]s
		 GROUP BY %[1]s
		 ORDER BY n DESC, %[1]s
		 LIMIT %[3]d`, column, p.Source.Table, exploreLimit+1))
	if err != nil {
		return err
	}

	distinct, err := export.QueryInt(ctx, repo,
		fmt.Sprintf("SELECT COUNT(DISTINCT %s) AS n FROM %s", column, p.Source.Table))
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "%s: %d distinct value(s)\n", column, distinct)
	shown := recs
	if len(shown) > exploreLimit {
		shown = shown[:exploreLimit]
	}
	for _, rec := range shown {
		n, _ := rec.Int("n")
		v := rec["value"]
		if v == nil {
			fmt.Fprintf(w, "  %6d  NULL\n", n)
			continue
		}
		fmt.Fprintf(w, "  %6d  %v\n", n, v)
	}
	if len(recs) > exploreLimit {
		fmt.Fprintf(w, "  ... %d more value(s)\n", distinct-int64(exploreLimit))
	}
	return nil
}
