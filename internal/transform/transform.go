// Package transform applies the field parsers to raw records and assembles
// cleaned records. One bad row never aborts the batch: a row whose
// transformation panics is counted as skipped, logged with its original date
// string, and processing continues.
package transform

import (
	"fmt"
	"log"

	"crashclean/internal/clean"
	"crashclean/internal/schema"
	"crashclean/pkg/records"
)

// Summary reports the outcome of one batch run.
type Summary struct {
	SourceRows  int
	WrittenRows int
	SkippedRows int

	// NullCounts holds, per cleaned column, how many written rows carry
	// NULL, feeding the post-run spot check.
	NullCounts map[string]int
}

// Transformer converts raw records into cleaned records using a parser
// ruleset.
type Transformer struct {
	rules *clean.Ruleset
}

// New returns a Transformer backed by the given ruleset; nil selects the
// embedded default rules.
func New(rules *clean.Ruleset) *Transformer {
	if rules == nil {
		rules = clean.DefaultRuleset()
	}
	return &Transformer{rules: rules}
}

// Run transforms the whole batch. Rows that fail with a parser contract
// violation are skipped and logged; every other row produces exactly one
// cleaned record, in input order.
func (t *Transformer) Run(raws []records.Record) ([]schema.Cleaned, Summary) {
	out := make([]schema.Cleaned, 0, len(raws))
	sum := Summary{SourceRows: len(raws)}

	for _, raw := range raws {
		rec, err := t.row(raw)
		if err != nil {
			sum.SkippedRows++
			log.Printf("transform: skipped row (date=%q): %v", rawString(raw, "date"), err)
			continue
		}
		out = append(out, rec)
	}

	sum.WrittenRows = len(out)
	sum.NullCounts = nullCounts(out)
	return out, sum
}

// row transforms a single raw record. The parsers are total functions, so an
// escaping panic is a contract violation; it is recovered here and surfaced
// as the row's error.
func (t *Transformer) row(raw records.Record) (rec schema.Cleaned, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("parser panic: %v", r)
		}
	}()

	aboardTotal, aboardPax, aboardCrew := clean.ParseCount(rawString(raw, "aboard"))
	fatAboard, fatPax, fatCrew := clean.ParseCount(rawString(raw, "fatalities"))
	ground := clean.ParseGround(rawString(raw, "ground"))

	rec = schema.Cleaned{
		Date:                 clean.ParseDate(rawString(raw, "date")),
		Time:                 clean.ParseTime(rawString(raw, "time")),
		Location:             clean.CleanText(rawString(raw, "location")),
		Operator:             t.rules.ParseOperator(rawString(raw, "operator")),
		FlightNo:             clean.ParseFlightNo(rawString(raw, "flight_no")),
		Route:                t.rules.ParseRoute(rawString(raw, "route")),
		ACType:               clean.ParseACType(rawString(raw, "ac_type")),
		Registration:         t.rules.ParseRegistration(rawString(raw, "registration")),
		CnLn:                 clean.ParseCnLn(rawString(raw, "cn_ln")),
		AboardTotal:          aboardTotal,
		AboardPassengers:     aboardPax,
		AboardCrew:           aboardCrew,
		FatalitiesAboard:     fatAboard,
		FatalitiesPassengers: fatPax,
		FatalitiesCrew:       fatCrew,
		Ground:               ground,
		FatalitiesTotal:      clean.SafeSum(fatAboard, ground),
		Summary:              clean.CleanSummary(rawString(raw, "summary")),
	}
	return rec, nil
}

// rawString fetches a source column as a string. NULL and absent columns
// read as the empty string, which every parser already maps to nil.
func rawString(r records.Record, col string) string {
	v, ok := r[col]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case []byte:
		return string(t)
	}
	return fmt.Sprint(v)
}

func nullCounts(rows []schema.Cleaned) map[string]int {
	counts := make(map[string]int, len(schema.Columns))
	for _, c := range schema.Columns {
		counts[c] = 0
	}
	for _, r := range rows {
		vals := r.Values()
		for i, c := range schema.Columns {
			if vals[i] == nil {
				counts[c]++
			}
		}
	}
	return counts
}
