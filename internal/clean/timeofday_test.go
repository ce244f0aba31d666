package clean

import "testing"

func TestParseTime(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want any
	}{
		{"clock form", "17:30", "17:30"},
		{"single digit hour", "9:05", "09:05"},
		{"circa marker", "c 1730", "17:30"},
		{"circa no space", "c1730", "17:30"},
		{"bare four digits", "0914", "09:14"},
		{"bare three digits", "730", "07:30"},
		{"midnight", "0:00", "00:00"},
		{"hour out of range", "25:00", nil},
		{"minute out of range", "12:75", nil},
		{"bare out of range", "2575", nil},
		{"unknown sentinel", "?", nil},
		{"empty", "", nil},
		{"freeform text", "afternoon", nil},
		{"already clean is stable", "07:30", "07:30"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := strval(ParseTime(tt.in)); got != tt.want {
				t.Fatalf("ParseTime(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
