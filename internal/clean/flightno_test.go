package clean

import "testing"

func TestParseFlightNo(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want any
	}{
		{"plain number", "501", "501"},
		{"hyphen removed", "BA-149", "BA149"},
		{"leading question mark", "? / 1736", nil},
		{"unknown sentinel", "?", nil},
		{"misplaced date fragment", "12-May", nil},
		{"charter label", "Charter", nil},
		{"charter case-insensitive", "CHARTER", nil},
		{"two flights kept", "627/263", "627/263"},
		{"stray leading slash", "/102", "102"},
		{"stray trailing slash", "102/", "102"},
		{"whitespace collapsed", "PA  103", "PA 103"},
		{"empty", "", nil},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := strval(ParseFlightNo(tt.in)); got != tt.want {
				t.Fatalf("ParseFlightNo(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
