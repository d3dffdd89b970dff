package periode

import (
	"fmt"
	"testing"
	"time"
)

func TestNormalizeCanonicalRoundTrip(t *testing.T) {
	for _, p := range []string{"2024-01", "2024-09", "2024-12", "1999-02"} {
		if got := Normalize(p, time.Time{}); got != p {
			t.Fatalf("Normalize(%q) = %q, want unchanged", p, got)
		}
	}
}

func TestNormalizeMonthWithYear(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Desember 2024", "2024-12"},
		{"desember 2024", "2024-12"},
		{"  Januari 2023  ", "2023-01"},
		{"AGUSTUS 2025", "2025-08"},
		{"Nonexistent 2024", "2024-01"}, // unknown month defaults to 01
	}
	for _, tc := range cases {
		if got := Normalize(tc.in, time.Time{}); got != tc.want {
			t.Fatalf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeBareMonthUsesFallbackYear(t *testing.T) {
	fallback := time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC)
	if got := Normalize("April", fallback); got != "2024-04" {
		t.Fatalf("Normalize(April, 2024-07-15) = %q, want 2024-04", got)
	}
	if got := Normalize(" mei ", fallback); got != "2024-05" {
		t.Fatalf("Normalize(mei) = %q, want 2024-05", got)
	}
}

func TestNormalizeUnparsableFallsBackToTimestamp(t *testing.T) {
	fallback := time.Date(2023, 11, 3, 0, 0, 0, 0, time.UTC)
	if got := Normalize("garbage", fallback); got != "2023-11" {
		t.Fatalf("Normalize(garbage) = %q, want 2023-11", got)
	}
}

func TestNormalizeUnparsableWithoutFallbackUsesNow(t *testing.T) {
	want := fmt.Sprintf("%04d-%02d", time.Now().Year(), int(time.Now().Month()))
	if got := Normalize("Nonexistent", time.Time{}); got != want {
		t.Fatalf("Normalize(Nonexistent) = %q, want %q", got, want)
	}
}

func TestParseAcceptsFullLabels(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"2024-09", "2024-09"},
		{"Desember 2024", "2024-12"},
		{"  sePTemBer 2023 ", "2023-09"},
	}
	for _, tc := range cases {
		got, err := Parse(tc.in)
		if err != nil {
			t.Fatalf("Parse(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("Parse(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestParseRejectsPartialLabels(t *testing.T) {
	for _, in := range []string{"2024-13", "2024-00", "April", "Nonexistent 2024", "garbage", ""} {
		if p, err := Parse(in); err == nil {
			t.Fatalf("Parse(%q) = %q, expected error", in, p)
		}
	}
}

func TestBounds(t *testing.T) {
	start, end, err := Bounds("2024-02")
	if err != nil {
		t.Fatalf("Bounds: %v", err)
	}
	if start.Day() != 1 || start.Month() != time.February {
		t.Fatalf("start = %v", start)
	}
	if end.Day() != 29 { // 2024 is a leap year
		t.Fatalf("end = %v, want Feb 29", end)
	}

	if _, _, err := Bounds("2024-13"); err == nil {
		t.Fatal("Bounds(2024-13) expected error")
	}
	if _, _, err := Bounds("April"); err == nil {
		t.Fatal("Bounds(April) expected error")
	}
}

func TestRange(t *testing.T) {
	months, err := Range("2024-11", "2025-02")
	if err != nil {
		t.Fatalf("Range: %v", err)
	}
	want := []string{"2024-11", "2024-12", "2025-01", "2025-02"}
	if len(months) != len(want) {
		t.Fatalf("Range = %v, want %v", months, want)
	}
	for i := range want {
		if months[i] != want[i] {
			t.Fatalf("Range[%d] = %q, want %q", i, months[i], want[i])
		}
	}

	if _, err := Range("2025-01", "2024-01"); err == nil {
		t.Fatal("reversed range expected error")
	}
}

func TestDisplay(t *testing.T) {
	if got := Display("2024-09"); got != "September 2024" {
		t.Fatalf("Display = %q", got)
	}
	if got := Display("not-a-periode"); got != "not-a-periode" {
		t.Fatalf("Display passthrough = %q", got)
	}
}
