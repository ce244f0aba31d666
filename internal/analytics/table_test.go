package analytics

import (
	"strings"
	"testing"
)

func TestWriteTable(t *testing.T) {
	t.Parallel()

	var b strings.Builder
	writeTable(&b,
		[]string{"operator", "n"},
		[][]string{
			{"KLM", "583"},
			{"Aeroflot", "7156"},
		},
		[]int{10, 5})

	lines := strings.Split(strings.TrimRight(b.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("writeTable produced %d lines, want 4:\n%s", len(lines), b.String())
	}
	if lines[0] != "  operator    n    " {
		t.Fatalf("header line = %q", lines[0])
	}
	if lines[1] != "  ----------  -----" {
		t.Fatalf("divider line = %q", lines[1])
	}
	if lines[2] != "  KLM         583  " {
		t.Fatalf("row line = %q", lines[2])
	}
}

func TestWriteRow_TruncatesWideCells(t *testing.T) {
	t.Parallel()

	var b strings.Builder
	writeRow(&b, []string{"Aerolineas Argentinas", "x"}, []int{10, 3})

	got := strings.TrimRight(b.String(), "\n")
	if got != "  Aerolineas  x  " {
		t.Fatalf("writeRow = %q", got)
	}
}

func TestWriteRow_ShortCellList(t *testing.T) {
	t.Parallel()

	var b strings.Builder
	writeRow(&b, []string{"only"}, []int{6, 4})

	if got := strings.TrimRight(b.String(), "\n"); got != "  only        " {
		t.Fatalf("writeRow = %q", got)
	}
}

func TestCell(t *testing.T) {
	t.Parallel()

	if got := cell(nil); got != "NULL" {
		t.Fatalf("cell(nil) = %q, want NULL", got)
	}
	if got := cell(int64(42)); got != "42" {
		t.Fatalf("cell(42) = %q, want 42", got)
	}
	if got := cell("KLM"); got != "KLM" {
		t.Fatalf("cell(KLM) = %q", got)
	}
}
