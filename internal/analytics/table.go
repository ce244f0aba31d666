package analytics

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// writeTable renders rows as a fixed-width ASCII table. Cells wider than
// their column are truncated; width accounting is rune-width aware so the
// many non-ASCII location and operator names line up.
func writeTable(w io.Writer, headers []string, rows [][]string, widths []int) {
	if len(headers) > 0 {
		writeRow(w, headers, widths)
		divider := make([]string, len(widths))
		for i, cw := range widths {
			divider[i] = strings.Repeat("-", cw)
		}
		writeRow(w, divider, widths)
	}
	for _, row := range rows {
		writeRow(w, row, widths)
	}
}

func writeRow(w io.Writer, cells []string, widths []int) {
	parts := make([]string, len(widths))
	for i, cw := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		cell = runewidth.Truncate(cell, cw, "")
		parts[i] = runewidth.FillRight(cell, cw)
	}
	fmt.Fprintf(w, "  %s\n", strings.Join(parts, "  "))
}

// cell renders a value for table output; nil becomes "NULL".
func cell(v any) string {
	if v == nil {
		return "NULL"
	}
	return fmt.Sprint(v)
}
