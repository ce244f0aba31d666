// Package schema defines the typed output contract of the cleaning pipeline:
// the cleaned-record struct, the fixed column order of the destination table,
// and the declared SQL type of every column.
package schema

import "fmt"

// Declared SQL types used by the output contract.
const (
	TypeText    = "TEXT"
	TypeInteger = "INTEGER"
)

// Source column names of the raw table, in their original order.
var RawColumns = []string{
	"date", "time", "location", "operator", "flight_no", "route",
	"ac_type", "registration", "cn_ln", "aboard", "fatalities",
	"ground", "summary",
}

// Columns is the fixed column order of the cleaned table.
var Columns = []string{
	"date",
	"time",
	"location",
	"operator",
	"flight_no",
	"route",
	"ac_type",
	"registration",
	"cn_ln",
	"aboard_total",
	"aboard_passengers",
	"aboard_crew",
	"fatalities_aboard",
	"fatalities_passengers",
	"fatalities_crew",
	"ground",
	"fatalities_total",
	"summary",
}

// Types maps every cleaned column to its declared SQL type.
var Types = map[string]string{
	"date":                  TypeText,
	"time":                  TypeText,
	"location":              TypeText,
	"operator":              TypeText,
	"flight_no":             TypeText,
	"route":                 TypeText,
	"ac_type":               TypeText,
	"registration":          TypeText,
	"cn_ln":                 TypeText,
	"aboard_total":          TypeInteger,
	"aboard_passengers":     TypeInteger,
	"aboard_crew":           TypeInteger,
	"fatalities_aboard":     TypeInteger,
	"fatalities_passengers": TypeInteger,
	"fatalities_crew":       TypeInteger,
	"ground":                TypeInteger,
	"fatalities_total":      TypeInteger,
	"summary":               TypeText,
}

// IntegerColumns returns the INTEGER-typed columns in output order.
func IntegerColumns() []string { return columnsOfType(TypeInteger) }

// TextColumns returns the TEXT-typed columns in output order.
func TextColumns() []string { return columnsOfType(TypeText) }

func columnsOfType(t string) []string {
	out := make([]string, 0, len(Columns))
	for _, c := range Columns {
		if Types[c] == t {
			out = append(out, c)
		}
	}
	return out
}

// Cleaned is one fully normalized accident record. Pointer fields are nil
// where the source did not record a value; FatalitiesTotal is derived and
// therefore never null.
type Cleaned struct {
	Date                 *string
	Time                 *string
	Location             *string
	Operator             *string
	FlightNo             *string
	Route                *string
	ACType               *string
	Registration         *string
	CnLn                 *string
	AboardTotal          *int
	AboardPassengers     *int
	AboardCrew           *int
	FatalitiesAboard     *int
	FatalitiesPassengers *int
	FatalitiesCrew       *int
	Ground               *int
	FatalitiesTotal      int
	Summary              *string
}

// Values returns the record's fields as driver arguments in Columns order.
// Nil pointers become SQL NULL.
func (c Cleaned) Values() []any {
	return []any{
		textVal(c.Date),
		textVal(c.Time),
		textVal(c.Location),
		textVal(c.Operator),
		textVal(c.FlightNo),
		textVal(c.Route),
		textVal(c.ACType),
		textVal(c.Registration),
		textVal(c.CnLn),
		intVal(c.AboardTotal),
		intVal(c.AboardPassengers),
		intVal(c.AboardCrew),
		intVal(c.FatalitiesAboard),
		intVal(c.FatalitiesPassengers),
		intVal(c.FatalitiesCrew),
		intVal(c.Ground),
		c.FatalitiesTotal,
		textVal(c.Summary),
	}
}

func textVal(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

func intVal(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}

// CreateTableSQL returns the CREATE TABLE statement for the cleaned table.
// The column list is rendered in Columns order so positional inserts stay
// aligned with Values.
func CreateTableSQL(table string) string {
	stmt := "CREATE TABLE IF NOT EXISTS " + table + " (\n"
	for i, col := range Columns {
		stmt += fmt.Sprintf("  %-22s %s", col, Types[col])
		if i < len(Columns)-1 {
			stmt += ","
		}
		stmt += "\n"
	}
	return stmt + ")"
}

// Descriptions returns the human-readable description of each cleaned column,
// used by the metadata export.
func Descriptions() map[string]string {
	return map[string]string{
		"date":                  "Date of the crash (ISO format YYYY-MM-DD)",
		"time":                  "Time of the crash (HH:MM, 24-hour format)",
		"location":              "Location of the crash",
		"operator":              "Airline or operator",
		"flight_no":             "Flight number assigned by the aircraft operator",
		"route":                 "Complete or partial route flown prior to the accident",
		"ac_type":               "Aircraft type",
		"registration":          "ICAO registration of the aircraft",
		"cn_ln":                 "Construction or serial number / Line or fuselage number",
		"aboard_total":          "Total number of people aboard",
		"aboard_passengers":     "Number of passengers aboard",
		"aboard_crew":           "Number of crew aboard",
		"fatalities_aboard":     "Total number of fatalities aboard",
		"fatalities_passengers": "Number of passenger fatalities",
		"fatalities_crew":       "Number of crew fatalities",
		"ground":                "Number of ground fatalities (people killed on the ground)",
		"fatalities_total":      "Total number of fatalities",
		"summary":               "Brief description of the accident and cause if known",
	}
}
