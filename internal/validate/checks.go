package validate

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"crashclean/internal/clean"
	"crashclean/internal/schema"
	"crashclean/internal/storage"
	"crashclean/pkg/records"
)

// Dataset is the materialized cleaned table handed to the check battery:
// the declared columns plus every row in generic record form.
type Dataset struct {
	Columns []storage.ColumnInfo
	Rows    []records.Record
}

// Expected date range of the dataset. The century-pivot ambiguity makes
// years above the ceiling impossible, but 2008-2018 values standing in for
// 1908-1918 are expected, which is why the range check only warns.
const minYear = 1908

var (
	isoDateRe  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	clockFmtRe = regexp.MustCompile(`^\d{2}:\d{2}$`)
)

// Run executes every check in fixed order. Checks never short-circuit each
// other, so the report is always complete.
func Run(ds Dataset) *Report {
	r := &Report{}
	checkSchema(ds, r)
	checkValueTypes(ds, r)
	checkDateFormat(ds, r)
	checkTimeFormat(ds, r)
	checkNonNegative(ds, r)
	checkTotals(ds, r)
	checkKeyDuplicates(ds, r)
	return r
}

// checkSchema verifies every expected column exists with the expected
// declared type. Extras are warnings, not failures.
func checkSchema(ds Dataset, r *Report) {
	actual := make(map[string]string, len(ds.Columns))
	for _, c := range ds.Columns {
		actual[c.Name] = strings.ToUpper(c.Type)
	}

	for _, col := range schema.Columns {
		want := schema.Types[col]
		got, ok := actual[col]
		switch {
		case !ok:
			r.Fail("Schema: column '%s' is missing", col)
		case got != want:
			r.Fail("Schema: '%s' declared as %s, expected %s", col, got, want)
		default:
			r.OK("Schema: '%s' → %s", col, want)
		}
	}

	var extra []string
	for _, c := range ds.Columns {
		if _, ok := schema.Types[c.Name]; !ok {
			extra = append(extra, c.Name)
		}
	}
	sort.Strings(extra)
	for _, col := range extra {
		r.Warn("Schema: unexpected column '%s' (%s)", col, actual[col])
	}
}

// checkValueTypes verifies that every integer column holds integers or NULL
// and every text column holds strings or NULL, reporting one message per
// column with a violation count.
func checkValueTypes(ds Dataset, r *Report) {
	intErrors := map[string]int{}
	txtErrors := map[string]int{}

	for _, row := range ds.Rows {
		for _, col := range schema.IntegerColumns() {
			if v, ok := row[col]; ok && v != nil {
				if _, isInt := v.(int64); !isInt {
					intErrors[col]++
				}
			}
		}
		for _, col := range schema.TextColumns() {
			if v, ok := row[col]; ok && v != nil {
				if _, isStr := v.(string); !isStr {
					txtErrors[col]++
				}
			}
		}
	}

	for _, col := range schema.IntegerColumns() {
		if n := intErrors[col]; n > 0 {
			r.Fail("Types: '%s' has %d non-integer value(s)", col, n)
		} else {
			r.OK("Types: '%s' all values are INTEGER or NULL", col)
		}
	}
	for _, col := range schema.TextColumns() {
		if n := txtErrors[col]; n > 0 {
			r.Fail("Types: '%s' has %d non-text value(s)", col, n)
		} else {
			r.OK("Types: '%s' all values are TEXT or NULL", col)
		}
	}
}

// checkDateFormat verifies non-NULL dates match YYYY-MM-DD (failure) and
// fall inside the dataset's year range (warning only; see the century note
// above).
func checkDateFormat(ds Dataset, r *Report) {
	var dates []string
	for _, row := range ds.Rows {
		if s, ok := row.String("date"); ok {
			dates = append(dates, s)
		}
	}

	var badFormat []string
	for _, d := range dates {
		if !isoDateRe.MatchString(d) {
			badFormat = append(badFormat, d)
		}
	}
	if len(badFormat) > 0 {
		r.Fail("Date format: %d value(s) do not match YYYY-MM-DD (e.g. %v)",
			len(badFormat), examples(badFormat, 3))
	} else {
		r.OK("Date format: all %d non-NULL dates match YYYY-MM-DD", len(dates))
	}

	outOfRange := map[int]struct{}{}
	nOut := 0
	for _, d := range dates {
		if len(d) < 4 {
			continue
		}
		y, err := strconv.Atoi(d[:4])
		if err != nil {
			continue
		}
		if y < minYear || y > clean.CeilingYear {
			outOfRange[y] = struct{}{}
			nOut++
		}
	}
	if nOut > 0 {
		years := make([]int, 0, len(outOfRange))
		for y := range outOfRange {
			years = append(years, y)
		}
		sort.Ints(years)
		if len(years) > 5 {
			years = years[:5]
		}
		r.Warn("Date range: %d date(s) outside %d-%d (e.g. %v)",
			nOut, minYear, clean.CeilingYear, years)
	} else {
		r.OK("Date range: all years are within %d-%d", minYear, clean.CeilingYear)
	}
}

// checkTimeFormat verifies non-NULL times match HH:MM.
func checkTimeFormat(ds Dataset, r *Report) {
	var times, bad []string
	for _, row := range ds.Rows {
		if s, ok := row.String("time"); ok {
			times = append(times, s)
			if !clockFmtRe.MatchString(s) {
				bad = append(bad, s)
			}
		}
	}
	if len(bad) > 0 {
		r.Fail("Time format: %d value(s) do not match HH:MM (e.g. %v)",
			len(bad), examples(bad, 3))
	} else {
		r.OK("Time format: all %d non-NULL times match HH:MM", len(times))
	}
}

// checkNonNegative verifies every integer column is >= 0 where non-NULL.
func checkNonNegative(ds Dataset, r *Report) {
	for _, col := range schema.IntegerColumns() {
		n := 0
		for _, row := range ds.Rows {
			if v, ok := row.Int(col); ok && v < 0 {
				n++
			}
		}
		if n > 0 {
			r.Fail("Non-negative: '%s' has %d negative value(s)", col, n)
		} else {
			r.OK("Non-negative: '%s' >= 0", col)
		}
	}
}

// totalsRule is one cross-field consistency rule, checked only on rows where
// every referenced column is non-NULL.
type totalsRule struct {
	label    string
	violated func(records.Record) (bool, bool) // (applicable, violated)
}

// checkTotals cross-checks whole/part relationships. The source data
// legitimately contains inconsistent counts, so violations are warnings.
func checkTotals(ds Dataset, r *Report) {
	rules := []totalsRule{
		{
			label: "aboard_total = aboard_passengers + aboard_crew",
			violated: func(row records.Record) (bool, bool) {
				t, ok1 := row.Int("aboard_total")
				p, ok2 := row.Int("aboard_passengers")
				c, ok3 := row.Int("aboard_crew")
				return ok1 && ok2 && ok3, t != p+c
			},
		},
		{
			label: "fatalities_aboard = fatalities_passengers + fatalities_crew",
			violated: func(row records.Record) (bool, bool) {
				t, ok1 := row.Int("fatalities_aboard")
				p, ok2 := row.Int("fatalities_passengers")
				c, ok3 := row.Int("fatalities_crew")
				return ok1 && ok2 && ok3, t != p+c
			},
		},
		{
			label: "fatalities_aboard <= aboard_total",
			violated: func(row records.Record) (bool, bool) {
				f, ok1 := row.Int("fatalities_aboard")
				t, ok2 := row.Int("aboard_total")
				return ok1 && ok2, f > t
			},
		},
		{
			label: "fatalities_total = fatalities_aboard + ground",
			violated: func(row records.Record) (bool, bool) {
				t, ok1 := row.Int("fatalities_total")
				f, ok2 := row.Int("fatalities_aboard")
				g, ok3 := row.Int("ground")
				return ok1 && ok2 && ok3, t != f+g
			},
		},
	}

	for _, rule := range rules {
		n := 0
		for _, row := range ds.Rows {
			if applicable, bad := rule.violated(row); applicable && bad {
				n++
			}
		}
		if n > 0 {
			r.Warn("Totals: '%s' violated by %d row(s)", rule.label, n)
		} else {
			r.OK("Totals: '%s'", rule.label)
		}
	}
}

// checkKeyDuplicates groups rows by (date, operator, route) where all three
// are non-NULL and warns on any group with more than one member.
func checkKeyDuplicates(ds Dataset, r *Report) {
	groups := map[string]int{}
	for _, row := range ds.Rows {
		d, ok1 := row.String("date")
		o, ok2 := row.String("operator")
		rt, ok3 := row.String("route")
		if !ok1 || !ok2 || !ok3 {
			continue
		}
		groups[d+"\x1f"+o+"\x1f"+rt]++
	}
	n := 0
	for _, count := range groups {
		if count > 1 {
			n++
		}
	}
	if n > 0 {
		r.Warn("Duplicates: %d (date, operator, route) group(s) appear more than once", n)
	} else {
		r.OK("Duplicates: no duplicate (date, operator, route) combinations found")
	}
}

func examples(ss []string, n int) []string {
	if len(ss) > n {
		ss = ss[:n]
	}
	return ss
}
