package clean

import "testing"

func TestParseACType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want any
	}{
		{"plain type", "Douglas DC-3", "Douglas DC-3"},
		{"parenthetical stripped", "Zeppelin L-1 (airship)", "Zeppelin L-1"},
		{"mid parenthetical stripped", "Boeing B-29 (modified) Superfortress", "Boeing B-29 Superfortress"},
		{"collision pair kept", "Douglas DC-8 / Lockheed 1049", "Douglas DC-8 / Lockheed 1049"},
		{"only parenthetical", "(unknown)", nil},
		{"unknown sentinel", "?", nil},
		{"empty", "", nil},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := strval(ParseACType(tt.in)); got != tt.want {
				t.Fatalf("ParseACType(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
