package validate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/zeebo/xxh3"

	"crashclean/pkg/records"
)

// DuplicateGroup is a set of rows identical across every column.
type DuplicateGroup struct {
	// Values holds the shared column values in the given column order,
	// rendered as strings ("NULL" for nil).
	Values []string
	Count  int
}

// bucket counts rows sharing one encoded tuple.
type bucket struct {
	key    string
	values []string
	count  int
}

// bucketMap indexes buckets by the xxh3 hash of the encoded tuple. Buckets
// chain per hash and match on the full key, so two distinct rows whose
// tuples happen to hash alike stay in separate groups.
type bucketMap map[uint64][]*bucket

func (m bucketMap) add(h uint64, key string, vals []string) {
	for _, bk := range m[h] {
		if bk.key == key {
			bk.count++
			return
		}
	}
	m[h] = append(m[h], &bucket{key: key, values: vals, count: 1})
}

// encodeRow joins the row's values in column order into a single comparable
// key, plus the rendered values for reporting. The unit separator cannot
// collide with real values, and nil maps to its own marker so NULL and the
// empty string stay distinct.
func encodeRow(row records.Record, columns []string) (string, []string) {
	var b strings.Builder
	vals := make([]string, len(columns))
	for i, col := range columns {
		if i > 0 {
			b.WriteByte('\x1f')
		}
		v, ok := row[col]
		if !ok || v == nil {
			b.WriteByte('\x00')
			vals[i] = "NULL"
			continue
		}
		s := fmt.Sprint(v)
		b.WriteString(s)
		vals[i] = s
	}
	return b.String(), vals
}

// FindDuplicates groups rows by the full tuple of every column's value and
// returns the groups with more than one member, ordered by multiplicity
// (descending), then by first column value for determinism.
func FindDuplicates(rows []records.Record, columns []string) []DuplicateGroup {
	buckets := bucketMap{}
	for _, row := range rows {
		key, vals := encodeRow(row, columns)
		buckets.add(xxh3.HashString(key), key, vals)
	}

	var groups []DuplicateGroup
	for _, chain := range buckets {
		for _, bk := range chain {
			if bk.count > 1 {
				groups = append(groups, DuplicateGroup{Values: bk.values, Count: bk.count})
			}
		}
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Count != groups[j].Count {
			return groups[i].Count > groups[j].Count
		}
		return strings.Join(groups[i].Values, "\x1f") < strings.Join(groups[j].Values, "\x1f")
	})
	return groups
}

// CheckNoDuplicates is the acceptance gate over full-row exact duplicates:
// it returns true when no two rows are identical across every column, plus a
// printable detail section listing each offending group with its column
// values and multiplicity.
func CheckNoDuplicates(rows []records.Record, columns []string) (bool, string) {
	groups := FindDuplicates(rows, columns)
	if len(groups) == 0 {
		return true, "No full-row duplicates found.\n"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Full-row duplicates: %d group(s)\n", len(groups))
	for _, g := range groups {
		fmt.Fprintf(&b, "  x%d:", g.Count)
		for i, col := range columns {
			fmt.Fprintf(&b, " %s=%s", col, g.Values[i])
		}
		b.WriteByte('\n')
	}
	return false, b.String()
}
