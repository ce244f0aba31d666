// Package storage defines the backend-agnostic repository abstraction used
// by the pipeline, plus a registration-based factory so callers never import
// a concrete backend. Backends register themselves at init time; importing
// crashclean/internal/storage/all enables every built-in backend.
package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"crashclean/pkg/records"
)

// Config selects and parameterizes a backend.
type Config struct {
	// Kind names the backend, e.g. "sqlite" or "postgres".
	Kind string
	// DSN is the backend connection string (for SQLite, a file path works).
	DSN string
}

// ColumnInfo describes one column of an existing table: its name and its
// declared type normalized to the schema package's TEXT/INTEGER vocabulary.
type ColumnInfo struct {
	Name string
	Type string
}

// Repository is the minimal surface the pipeline needs from a relational
// store: bulk insert, DDL execution, whole-table reads, and schema
// introspection.
type Repository interface {
	// Exec runs an arbitrary statement, typically DDL.
	Exec(ctx context.Context, sql string) error

	// CopyFrom bulk-inserts rows into table. Every row must have
	// len(columns) values.
	CopyFrom(ctx context.Context, table string, columns []string, rows [][]any) (int64, error)

	// Query runs a read query and returns each row as a Record keyed by
	// result column name. Integer values arrive as int64, text as string,
	// NULL as nil.
	Query(ctx context.Context, sql string, args ...any) ([]records.Record, error)

	// Columns reports the declared schema of table.
	Columns(ctx context.Context, table string) ([]ColumnInfo, error)

	// Close releases the underlying connections.
	Close()
}

// Factory constructs a Repository from a Config.
type Factory func(ctx context.Context, cfg Config) (Repository, error)

var (
	mu        sync.RWMutex
	factories = map[string]Factory{}
)

// Register installs (or replaces) the factory for a backend kind. Called
// from backend packages' init functions.
func Register(kind string, f Factory) {
	mu.Lock()
	defer mu.Unlock()
	factories[kind] = f
}

// New opens a Repository for cfg.Kind. Unknown kinds list the registered
// backends in the error so misconfigurations are self-explanatory.
func New(ctx context.Context, cfg Config) (Repository, error) {
	mu.RLock()
	f, ok := factories[cfg.Kind]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("storage: unknown kind %q (registered: %v)", cfg.Kind, Kinds())
	}
	return f(ctx, cfg)
}

// Kinds returns the registered backend names, sorted.
func Kinds() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, 0, len(factories))
	for k := range factories {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
