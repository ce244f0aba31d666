package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"crashclean/internal/schema"
	"crashclean/internal/storage"
)

// openTestRepo opens a repository backed by a throwaway on-disk database.
func openTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := Open(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(repo.Close)
	return repo
}

func TestOpen_EmptyDSN(t *testing.T) {
	t.Parallel()

	if _, err := Open(context.Background(), "  "); err == nil {
		t.Fatal("Open(empty DSN) = nil error, want error")
	}
}

func TestRepository_RoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := openTestRepo(t)

	if err := repo.Exec(ctx, schema.CreateTableSQL("planecrashes")); err != nil {
		t.Fatalf("Exec(DDL): %v", err)
	}

	date := "1996-07-17"
	operator := "Trans World Airlines"
	total := 230
	rec := schema.Cleaned{
		Date:            &date,
		Operator:        &operator,
		AboardTotal:     &total,
		FatalitiesTotal: 230,
	}

	n, err := repo.CopyFrom(ctx, "planecrashes", schema.Columns, [][]any{rec.Values()})
	if err != nil {
		t.Fatalf("CopyFrom: %v", err)
	}
	if n != 1 {
		t.Fatalf("CopyFrom inserted %d rows, want 1", n)
	}

	rows, err := repo.Query(ctx, "SELECT date, operator, aboard_total, time FROM planecrashes")
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("Query returned %d rows, want 1", len(rows))
	}
	row := rows[0]
	if got, _ := row.String("date"); got != date {
		t.Fatalf("date = %q, want %q", got, date)
	}
	if got, _ := row.String("operator"); got != operator {
		t.Fatalf("operator = %q, want %q", got, operator)
	}
	if got, ok := row.Int("aboard_total"); !ok || got != 230 {
		t.Fatalf("aboard_total = %v (%v), want 230", got, ok)
	}
	if !row.IsNull("time") {
		t.Fatalf("time = %v, want NULL", row["time"])
	}
}

func TestRepository_CopyFromRowLengthMismatch(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := openTestRepo(t)

	if err := repo.Exec(ctx, "CREATE TABLE t (a TEXT, b TEXT)"); err != nil {
		t.Fatalf("Exec: %v", err)
	}
	if _, err := repo.CopyFrom(ctx, "t", []string{"a", "b"}, [][]any{{"only-one"}}); err == nil {
		t.Fatal("CopyFrom(mismatched row) = nil error, want error")
	}
}

func TestRepository_CopyFromEmpty(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := openTestRepo(t)

	if err := repo.Exec(ctx, "CREATE TABLE t (a TEXT)"); err != nil {
		t.Fatalf("Exec: %v", err)
	}
	n, err := repo.CopyFrom(ctx, "t", []string{"a"}, nil)
	if err != nil {
		t.Fatalf("CopyFrom(no rows): %v", err)
	}
	if n != 0 {
		t.Fatalf("CopyFrom(no rows) = %d, want 0", n)
	}
	if _, err := repo.CopyFrom(ctx, "t", nil, [][]any{{"x"}}); err == nil {
		t.Fatal("CopyFrom(no columns) = nil error, want error")
	}
}

func TestRepository_Columns(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := openTestRepo(t)

	if err := repo.Exec(ctx, schema.CreateTableSQL("planecrashes")); err != nil {
		t.Fatalf("Exec(DDL): %v", err)
	}

	cols, err := repo.Columns(ctx, "planecrashes")
	if err != nil {
		t.Fatalf("Columns: %v", err)
	}
	if len(cols) != len(schema.Columns) {
		t.Fatalf("Columns returned %d entries, want %d", len(cols), len(schema.Columns))
	}
	for i, c := range cols {
		if c.Name != schema.Columns[i] {
			t.Fatalf("cols[%d].Name = %q, want %q", i, c.Name, schema.Columns[i])
		}
		if c.Type != schema.Types[c.Name] {
			t.Fatalf("cols[%d].Type = %q, want %q", i, c.Type, schema.Types[c.Name])
		}
	}
}

func TestFactoryRegistration(t *testing.T) {
	t.Parallel()

	repo, err := storage.New(context.Background(),
		storage.Config{Kind: "sqlite", DSN: filepath.Join(t.TempDir(), "factory.db")})
	if err != nil {
		t.Fatalf("storage.New(sqlite): %v", err)
	}
	defer repo.Close()

	if _, ok := repo.(*Repository); !ok {
		t.Fatalf("storage.New returned %T, want *sqlite.Repository", repo)
	}
}
