package validate

import (
	"strings"
	"testing"

	"crashclean/pkg/records"
)

func TestFindDuplicates(t *testing.T) {
	t.Parallel()

	cols := []string{"date", "operator"}
	rows := []records.Record{
		{"date": "1972-12-29", "operator": "Eastern Air Lines"},
		{"date": "1972-12-29", "operator": "Eastern Air Lines"},
		{"date": "1972-12-29", "operator": "Eastern Air Lines"},
		{"date": "1977-03-27", "operator": "KLM"},
		{"date": "1977-03-27", "operator": "Pan Am"},
		{"date": "1977-03-27", "operator": "Pan Am"},
	}

	groups := FindDuplicates(rows, cols)
	if len(groups) != 2 {
		t.Fatalf("FindDuplicates returned %d groups, want 2: %+v", len(groups), groups)
	}
	// Ordered by multiplicity, highest first.
	if groups[0].Count != 3 || groups[0].Values[1] != "Eastern Air Lines" {
		t.Fatalf("groups[0] = %+v, want x3 Eastern Air Lines", groups[0])
	}
	if groups[1].Count != 2 || groups[1].Values[1] != "Pan Am" {
		t.Fatalf("groups[1] = %+v, want x2 Pan Am", groups[1])
	}
}

// NULL and the literal string "NULL" must bucket separately.
func TestFindDuplicates_NullDistinctFromLiteral(t *testing.T) {
	t.Parallel()

	cols := []string{"operator"}
	rows := []records.Record{
		{"operator": nil},
		{"operator": "NULL"},
	}
	if groups := FindDuplicates(rows, cols); len(groups) != 0 {
		t.Fatalf("FindDuplicates = %+v, want no groups", groups)
	}
}

// Distinct tuples forced under one hash must keep separate counts.
func TestBucketMap_CollidingHashesStaySeparate(t *testing.T) {
	t.Parallel()

	m := bucketMap{}
	const h = uint64(42)
	m.add(h, "1977-03-27\x1fKLM", []string{"1977-03-27", "KLM"})
	m.add(h, "1977-03-27\x1fPan Am", []string{"1977-03-27", "Pan Am"})
	m.add(h, "1977-03-27\x1fKLM", []string{"1977-03-27", "KLM"})

	chain := m[h]
	if len(chain) != 2 {
		t.Fatalf("chain length = %d, want 2 buckets", len(chain))
	}
	if chain[0].count != 2 || chain[0].values[1] != "KLM" {
		t.Fatalf("chain[0] = %+v, want x2 KLM", chain[0])
	}
	if chain[1].count != 1 || chain[1].values[1] != "Pan Am" {
		t.Fatalf("chain[1] = %+v, want x1 Pan Am", chain[1])
	}
}

func TestCheckNoDuplicates(t *testing.T) {
	t.Parallel()

	cols := []string{"date", "operator"}

	t.Run("clean set passes", func(t *testing.T) {
		t.Parallel()
		rows := []records.Record{
			{"date": "1972-12-29", "operator": "Eastern Air Lines"},
			{"date": "1977-03-27", "operator": "KLM"},
		}
		ok, detail := CheckNoDuplicates(rows, cols)
		if !ok {
			t.Fatalf("CheckNoDuplicates = false, want true; detail: %s", detail)
		}
		if !strings.Contains(detail, "No full-row duplicates") {
			t.Fatalf("detail = %q, want success message", detail)
		}
	})

	t.Run("duplicates fail with detail", func(t *testing.T) {
		t.Parallel()
		rows := []records.Record{
			{"date": "1977-03-27", "operator": "KLM"},
			{"date": "1977-03-27", "operator": "KLM"},
		}
		ok, detail := CheckNoDuplicates(rows, cols)
		if ok {
			t.Fatal("CheckNoDuplicates = true, want false")
		}
		if !strings.Contains(detail, "x2") || !strings.Contains(detail, "operator=KLM") {
			t.Fatalf("detail = %q, want group multiplicity and values", detail)
		}
	})
}
