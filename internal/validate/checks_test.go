package validate

import (
	"strings"
	"testing"

	"crashclean/internal/schema"
	"crashclean/internal/storage"
	"crashclean/pkg/records"
)

// cleanColumns builds ColumnInfo for the full expected schema.
func cleanColumns() []storage.ColumnInfo {
	cols := make([]storage.ColumnInfo, 0, len(schema.Columns))
	for _, c := range schema.Columns {
		cols = append(cols, storage.ColumnInfo{Name: c, Type: schema.Types[c]})
	}
	return cols
}

// cleanRow returns a fully consistent cleaned row; overrides replace columns
// (a nil override value models SQL NULL).
func cleanRow(overrides map[string]any) records.Record {
	r := records.Record{
		"date":                  "1996-07-17",
		"time":                  "20:31",
		"location":              "East Moriches, New York",
		"operator":              "Trans World Airlines",
		"flight_no":             "800",
		"route":                 "New York City - Paris",
		"ac_type":               "Boeing B-747-131",
		"registration":          "N93119",
		"cn_ln":                 "19778",
		"aboard_total":          int64(230),
		"aboard_passengers":     int64(212),
		"aboard_crew":           int64(18),
		"fatalities_aboard":     int64(230),
		"fatalities_passengers": int64(212),
		"fatalities_crew":       int64(18),
		"ground":                int64(0),
		"fatalities_total":      int64(230),
		"summary":               "The aircraft exploded shortly after takeoff.",
	}
	for k, v := range overrides {
		r[k] = v
	}
	return r
}

// containsMsg reports whether any message in msgs contains substr.
func containsMsg(msgs []string, substr string) bool {
	for _, m := range msgs {
		if strings.Contains(m, substr) {
			return true
		}
	}
	return false
}

func TestRun_CleanDatasetPasses(t *testing.T) {
	t.Parallel()

	ds := Dataset{
		Columns: cleanColumns(),
		Rows:    []records.Record{cleanRow(nil), cleanRow(map[string]any{"date": "2000-01-01"})},
	}
	rep := Run(ds)

	if rep.Verdict() != "PASS" {
		t.Fatalf("Verdict() = %q, want PASS; failed: %v", rep.Verdict(), rep.Failed)
	}
	if len(rep.Warnings) != 0 {
		t.Fatalf("Warnings = %v, want none", rep.Warnings)
	}
	if len(rep.Failed) != 0 {
		t.Fatalf("Failed = %v, want none", rep.Failed)
	}
}

func TestCheckSchema(t *testing.T) {
	t.Parallel()

	t.Run("missing column fails", func(t *testing.T) {
		t.Parallel()
		cols := cleanColumns()
		cols = cols[:len(cols)-1] // drop summary
		rep := &Report{}
		checkSchema(Dataset{Columns: cols}, rep)
		if !containsMsg(rep.Failed, "'summary' is missing") {
			t.Fatalf("Failed = %v, want missing summary", rep.Failed)
		}
	})

	t.Run("wrong type fails", func(t *testing.T) {
		t.Parallel()
		cols := cleanColumns()
		for i := range cols {
			if cols[i].Name == "ground" {
				cols[i].Type = "TEXT"
			}
		}
		rep := &Report{}
		checkSchema(Dataset{Columns: cols}, rep)
		if !containsMsg(rep.Failed, "'ground' declared as TEXT, expected INTEGER") {
			t.Fatalf("Failed = %v, want ground type mismatch", rep.Failed)
		}
	})

	t.Run("extra column warns", func(t *testing.T) {
		t.Parallel()
		cols := append(cleanColumns(), storage.ColumnInfo{Name: "rowid_copy", Type: "INTEGER"})
		rep := &Report{}
		checkSchema(Dataset{Columns: cols}, rep)
		if len(rep.Failed) != 0 {
			t.Fatalf("Failed = %v, want none", rep.Failed)
		}
		if !containsMsg(rep.Warnings, "unexpected column 'rowid_copy'") {
			t.Fatalf("Warnings = %v, want unexpected column", rep.Warnings)
		}
	})

	t.Run("lowercase declared type accepted", func(t *testing.T) {
		t.Parallel()
		cols := cleanColumns()
		for i := range cols {
			cols[i].Type = strings.ToLower(cols[i].Type)
		}
		rep := &Report{}
		checkSchema(Dataset{Columns: cols}, rep)
		if len(rep.Failed) != 0 {
			t.Fatalf("Failed = %v, want none for lowercase types", rep.Failed)
		}
	})
}

func TestCheckValueTypes(t *testing.T) {
	t.Parallel()

	rows := []records.Record{
		cleanRow(nil),
		cleanRow(map[string]any{"ground": "two", "operator": int64(7)}),
		cleanRow(map[string]any{"ground": nil}), // NULL is fine
	}
	rep := &Report{}
	checkValueTypes(Dataset{Rows: rows}, rep)

	if !containsMsg(rep.Failed, "'ground' has 1 non-integer value(s)") {
		t.Fatalf("Failed = %v, want ground type failure", rep.Failed)
	}
	if !containsMsg(rep.Failed, "'operator' has 1 non-text value(s)") {
		t.Fatalf("Failed = %v, want operator type failure", rep.Failed)
	}
}

func TestCheckDateFormat(t *testing.T) {
	t.Parallel()

	t.Run("bad format fails with examples", func(t *testing.T) {
		t.Parallel()
		rows := []records.Record{
			cleanRow(nil),
			cleanRow(map[string]any{"date": "17-Jul-96"}),
		}
		rep := &Report{}
		checkDateFormat(Dataset{Rows: rows}, rep)
		if !containsMsg(rep.Failed, "do not match YYYY-MM-DD") {
			t.Fatalf("Failed = %v, want date format failure", rep.Failed)
		}
		if !containsMsg(rep.Failed, "17-Jul-96") {
			t.Fatalf("Failed = %v, want offending example in message", rep.Failed)
		}
	})

	t.Run("out of range year warns only", func(t *testing.T) {
		t.Parallel()
		rows := []records.Record{
			cleanRow(map[string]any{"date": "1899-12-31"}),
			cleanRow(map[string]any{"date": "2025-01-01"}),
		}
		rep := &Report{}
		checkDateFormat(Dataset{Rows: rows}, rep)
		if len(rep.Failed) != 0 {
			t.Fatalf("Failed = %v, want none (format is valid)", rep.Failed)
		}
		if !containsMsg(rep.Warnings, "outside 1908-2018") {
			t.Fatalf("Warnings = %v, want out-of-range warning", rep.Warnings)
		}
	})

	t.Run("null dates skipped", func(t *testing.T) {
		t.Parallel()
		rows := []records.Record{cleanRow(map[string]any{"date": nil})}
		rep := &Report{}
		checkDateFormat(Dataset{Rows: rows}, rep)
		if len(rep.Failed) != 0 || len(rep.Warnings) != 0 {
			t.Fatalf("Failed=%v Warnings=%v, want clean pass", rep.Failed, rep.Warnings)
		}
	})
}

func TestCheckTimeFormat(t *testing.T) {
	t.Parallel()

	rows := []records.Record{
		cleanRow(nil),
		cleanRow(map[string]any{"time": "9:05"}),
		cleanRow(map[string]any{"time": nil}),
	}
	rep := &Report{}
	checkTimeFormat(Dataset{Rows: rows}, rep)
	if !containsMsg(rep.Failed, "do not match HH:MM") {
		t.Fatalf("Failed = %v, want time format failure", rep.Failed)
	}
}

func TestCheckNonNegative(t *testing.T) {
	t.Parallel()

	rows := []records.Record{
		cleanRow(nil),
		cleanRow(map[string]any{"ground": int64(-5)}),
	}
	rep := &Report{}
	checkNonNegative(Dataset{Rows: rows}, rep)
	if !containsMsg(rep.Failed, "'ground' has 1 negative value(s)") {
		t.Fatalf("Failed = %v, want negative ground failure", rep.Failed)
	}
}

func TestCheckTotals(t *testing.T) {
	t.Parallel()

	t.Run("violations warn", func(t *testing.T) {
		t.Parallel()
		rows := []records.Record{
			cleanRow(map[string]any{"aboard_total": int64(99)}),               // total != pax + crew
			cleanRow(map[string]any{"fatalities_aboard": int64(231)}),         // fatalities > aboard
			cleanRow(map[string]any{"fatalities_total": int64(1)}),            // total != aboard + ground
			cleanRow(map[string]any{"fatalities_passengers": int64(1)}),       // breakdown mismatch
		}
		rep := &Report{}
		checkTotals(Dataset{Rows: rows}, rep)
		if len(rep.Failed) != 0 {
			t.Fatalf("Failed = %v, want none (totals are warnings)", rep.Failed)
		}
		if !containsMsg(rep.Warnings, "aboard_total = aboard_passengers + aboard_crew") {
			t.Fatalf("Warnings = %v, want aboard totals warning", rep.Warnings)
		}
		if !containsMsg(rep.Warnings, "fatalities_aboard <= aboard_total") {
			t.Fatalf("Warnings = %v, want fatalities cap warning", rep.Warnings)
		}
		if !containsMsg(rep.Warnings, "fatalities_total = fatalities_aboard + ground") {
			t.Fatalf("Warnings = %v, want derived total warning", rep.Warnings)
		}
	})

	t.Run("null members make a rule inapplicable", func(t *testing.T) {
		t.Parallel()
		rows := []records.Record{
			cleanRow(map[string]any{"aboard_passengers": nil, "fatalities_passengers": nil}),
		}
		rep := &Report{}
		checkTotals(Dataset{Rows: rows}, rep)
		if len(rep.Warnings) != 0 {
			t.Fatalf("Warnings = %v, want none when breakdown is NULL", rep.Warnings)
		}
	})
}

func TestCheckKeyDuplicates(t *testing.T) {
	t.Parallel()

	t.Run("duplicate key warns", func(t *testing.T) {
		t.Parallel()
		rows := []records.Record{cleanRow(nil), cleanRow(map[string]any{"registration": "N0000"})}
		rep := &Report{}
		checkKeyDuplicates(Dataset{Rows: rows}, rep)
		if !containsMsg(rep.Warnings, "group(s) appear more than once") {
			t.Fatalf("Warnings = %v, want duplicate key warning", rep.Warnings)
		}
	})

	t.Run("null key members are skipped", func(t *testing.T) {
		t.Parallel()
		rows := []records.Record{
			cleanRow(map[string]any{"route": nil}),
			cleanRow(map[string]any{"route": nil}),
		}
		rep := &Report{}
		checkKeyDuplicates(Dataset{Rows: rows}, rep)
		if len(rep.Warnings) != 0 {
			t.Fatalf("Warnings = %v, want none when route is NULL", rep.Warnings)
		}
	})
}
