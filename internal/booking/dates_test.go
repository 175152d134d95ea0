package booking

import (
	"testing"
	"time"
)

func d(s string) time.Time {
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		panic(err)
	}
	return t
}

func TestParseRange(t *testing.T) {
	in, out, err := ParseRange("2026-07-01", "2026-07-04")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !in.Equal(d("2026-07-01")) || !out.Equal(d("2026-07-04")) {
		t.Fatalf("got [%v, %v)", in, out)
	}

	if _, _, err := ParseRange("2026-07-04", "2026-07-04"); err != ErrInvalidRange {
		t.Fatalf("same-day range: want ErrInvalidRange, got %v", err)
	}
	if _, _, err := ParseRange("2026-07-04", "2026-07-01"); err != ErrInvalidRange {
		t.Fatalf("reversed range: want ErrInvalidRange, got %v", err)
	}
	if _, _, err := ParseRange("07/01/2026", "2026-07-04"); err == nil {
		t.Fatal("malformed check-in accepted")
	}
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name                 string
		aIn, aOut, bIn, bOut string
		want                 bool
	}{
		{"identical", "2026-07-01", "2026-07-05", "2026-07-01", "2026-07-05", true},
		{"contained", "2026-07-01", "2026-07-10", "2026-07-03", "2026-07-05", true},
		{"partial front", "2026-07-01", "2026-07-05", "2026-07-03", "2026-07-08", true},
		{"partial back", "2026-07-03", "2026-07-08", "2026-07-01", "2026-07-05", true},
		{"single shared night", "2026-07-01", "2026-07-05", "2026-07-04", "2026-07-06", true},
		// Checkout day N, new check-in day N: turnover is allowed.
		{"back to back after", "2026-07-01", "2026-07-05", "2026-07-05", "2026-07-08", false},
		{"back to back before", "2026-07-05", "2026-07-08", "2026-07-01", "2026-07-05", false},
		{"disjoint", "2026-07-01", "2026-07-03", "2026-07-10", "2026-07-12", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Overlaps(d(tc.aIn), d(tc.aOut), d(tc.bIn), d(tc.bOut))
			if got != tc.want {
				t.Fatalf("Overlaps(%s,%s | %s,%s) = %v, want %v",
					tc.aIn, tc.aOut, tc.bIn, tc.bOut, got, tc.want)
			}
			// The predicate is symmetric.
			if rev := Overlaps(d(tc.bIn), d(tc.bOut), d(tc.aIn), d(tc.aOut)); rev != got {
				t.Fatalf("asymmetric result: %v vs %v", got, rev)
			}
		})
	}
}

func TestNights(t *testing.T) {
	cases := []struct {
		in, out string
		want    int
	}{
		{"2026-07-01", "2026-07-02", 1},
		{"2026-07-01", "2026-07-04", 3},
		{"2026-07-01", "2026-08-01", 31},
	}
	for _, tc := range cases {
		if got := Nights(d(tc.in), d(tc.out)); got != tc.want {
			t.Errorf("Nights(%s, %s) = %d, want %d", tc.in, tc.out, got, tc.want)
		}
	}

	// A fractional day rounds up to a full night.
	in := d("2026-07-01")
	out := in.Add(2*24*time.Hour + 12*time.Hour)
	if got := Nights(in, out); got != 3 {
		t.Errorf("fractional stay: got %d nights, want 3", got)
	}
}

func TestTotalCents(t *testing.T) {
	// 3 nights at $100.00/night.
	if got := TotalCents(3, 10000); got != 30000 {
		t.Fatalf("TotalCents(3, 10000) = %d, want 30000", got)
	}
	if got := TotalCents(1, 12345); got != 12345 {
		t.Fatalf("TotalCents(1, 12345) = %d, want 12345", got)
	}
}
