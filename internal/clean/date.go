package clean

import (
	"fmt"
	"time"
)

// sourceDateLayout matches the raw "12-May-08" day-month-abbreviation form.
const sourceDateLayout = "2-Jan-06"

// CeilingYear is the last year present in the dataset. Any parsed year above
// it is shifted back one century: the two-digit form cannot distinguish
// 1908-1918 from 2008-2018, and the source convention keeps the dataset range
// closed at this year.
const CeilingYear = 2018

// ParseDate converts a raw "DD-Mon-YY" value to ISO "YYYY-MM-DD".
//
// time.Parse applies the standard century pivot (00-68 → 20xx, 69-99 → 19xx);
// the ceiling shift then maps years beyond CeilingYear back 100 years. Rows
// genuinely from 1908-1918 still surface as 2008-2018, an irreducible
// ambiguity of the source format that validation reports as a warning, not a
// failure.
//
//	ParseDate("12-May-08") → "2008-05-12"
//	ParseDate("12-May-99") → "1999-05-12"
//	ParseDate("?")         → nil
func ParseDate(s string) *string {
	p := CleanText(s)
	if p == nil {
		return nil
	}
	t, err := time.Parse(sourceDateLayout, *p)
	if err != nil {
		return nil
	}
	year := t.Year()
	if year > CeilingYear {
		year -= 100
	}
	return strPtr(fmt.Sprintf("%04d-%02d-%02d", year, int(t.Month()), t.Day()))
}
