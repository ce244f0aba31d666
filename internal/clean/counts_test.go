package clean

import "testing"

func TestParseCount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name                         string
		in                           string
		wantTotal, wantPax, wantCrew any
	}{
		{"full breakdown", "155   (passengers:150  crew:5)", 155, 150, 5},
		{"unknown passengers", "13   (passengers:?  crew:13)", 13, nil, 13},
		{"unknown crew", "4   (passengers:4  crew:?)", 4, 4, nil},
		{"both unknown", "28   (passengers:?  crew:?)", 28, nil, nil},
		{"bare integer", "12", 12, nil, nil},
		{"unknown sentinel", "?", nil, nil, nil},
		{"empty", "", nil, nil, nil},
		{"garbage", "many", nil, nil, nil},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			total, pax, crew := ParseCount(tt.in)
			if got := intval(total); got != tt.wantTotal {
				t.Fatalf("ParseCount(%q) total = %v, want %v", tt.in, got, tt.wantTotal)
			}
			if got := intval(pax); got != tt.wantPax {
				t.Fatalf("ParseCount(%q) passengers = %v, want %v", tt.in, got, tt.wantPax)
			}
			if got := intval(crew); got != tt.wantCrew {
				t.Fatalf("ParseCount(%q) crew = %v, want %v", tt.in, got, tt.wantCrew)
			}
		})
	}
}

func TestParseGround(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want any
	}{
		{"zero", "0", 0},
		{"positive", "2750", 2750},
		{"negative rejected", "-1", nil},
		{"unknown sentinel", "?", nil},
		{"empty", "", nil},
		{"non-numeric", "none", nil},
		{"padded", " 3 ", 3},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := intval(ParseGround(tt.in)); got != tt.want {
				t.Fatalf("ParseGround(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestSafeSum(t *testing.T) {
	t.Parallel()

	if got := SafeSum(intPtr(3), nil, intPtr(4)); got != 7 {
		t.Fatalf("SafeSum(3, nil, 4) = %d, want 7", got)
	}
	if got := SafeSum(nil, nil); got != 0 {
		t.Fatalf("SafeSum(nil, nil) = %d, want 0", got)
	}
	if got := SafeSum(); got != 0 {
		t.Fatalf("SafeSum() = %d, want 0", got)
	}
}
