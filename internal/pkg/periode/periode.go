// Package periode canonicalizes the heterogeneous period labels found in
// financial records ("April", "Desember 2024", "2024-12") into YYYY-MM keys.
package periode

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var bulanIndex = map[string]string{
	"januari":   "01",
	"februari":  "02",
	"maret":     "03",
	"april":     "04",
	"mei":       "05",
	"juni":      "06",
	"juli":      "07",
	"agustus":   "08",
	"september": "09",
	"oktober":   "10",
	"november":  "11",
	"desember":  "12",
}

var bulanNama = [12]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

var (
	reBulanTahun = regexp.MustCompile(`^(\p{L}+)\s+(\d{4})$`)
	reCanonical  = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)
)

// Normalize converts a free-form period label into a canonical "YYYY-MM" key.
// The fallback timestamp supplies the year for month-only labels and the whole
// key when the label cannot be parsed at all; a zero fallback means "now".
//
// Unknown month names inside a "<Month> <Year>" label default to month "01".
// That mirrors the historical data handling; callers that would rather reject
// such labels should pre-validate with Valid.
//
// A label that matches no pattern at all resolves to the fallback's own
// year and month rather than January of the current year. Pinning such
// labels to the month the data was recorded in keeps them aggregated with
// their neighbours instead of piling up in one synthetic month.
func Normalize(raw string, fallback time.Time) string {
	label := strings.TrimSpace(raw)

	if p, err := Parse(label); err == nil {
		return p
	}

	if m := reBulanTahun.FindStringSubmatch(label); m != nil {
		// Unknown month name with a year: historical data pinned these
		// to January.
		return m[2] + "-01"
	}

	if idx, ok := bulanIndex[strings.ToLower(label)]; ok {
		// Month-only label: the year has to come from the transaction date.
		return fmt.Sprintf("%04d-%s", fallbackTime(fallback).Year(), idx)
	}

	t := fallbackTime(fallback)
	return fmt.Sprintf("%04d-%02d", t.Year(), int(t.Month()))
}

// Parse converts a period label into a canonical key, accepting the canonical
// form and full "<Month> <Year>" labels. Anything else is rejected. Request
// handlers use this; a label lacking a year can only be resolved by
// Normalize, which has a reference timestamp to borrow the year from.
func Parse(raw string) (string, error) {
	label := strings.TrimSpace(raw)

	if reCanonical.MatchString(label) {
		return label, nil
	}

	if m := reBulanTahun.FindStringSubmatch(label); m != nil {
		if idx, ok := bulanIndex[strings.ToLower(m[1])]; ok {
			return m[2] + "-" + idx, nil
		}
		return "", fmt.Errorf("unknown month in periode %q", label)
	}

	return "", fmt.Errorf("unrecognized periode %q", label)
}

func fallbackTime(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now()
	}
	return t
}

// Valid reports whether p is a canonical "YYYY-MM" key.
func Valid(p string) bool {
	return reCanonical.MatchString(p)
}

// Bounds returns the first and last day of the month identified by a
// canonical "YYYY-MM" key.
func Bounds(p string) (start, end time.Time, err error) {
	if !Valid(p) {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid periode %q", p)
	}

	start, err = time.Parse("2006-01", p)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid periode %q: %w", p, err)
	}

	end = start.AddDate(0, 1, -1)
	return start, end, nil
}

// Range returns every month between start and end inclusive, oldest first.
func Range(start, end string) ([]string, error) {
	from, _, err := Bounds(start)
	if err != nil {
		return nil, err
	}
	to, _, err := Bounds(end)
	if err != nil {
		return nil, err
	}
	if to.Before(from) {
		return nil, fmt.Errorf("periode range %q..%q is reversed", start, end)
	}

	var months []string
	for t := from; !t.After(to); t = t.AddDate(0, 1, 0) {
		months = append(months, t.Format("2006-01"))
	}
	return months, nil
}

// Display renders a canonical key as an Indonesian month label,
// e.g. "2024-09" becomes "September 2024". Invalid keys are returned as-is.
func Display(p string) string {
	t, _, err := Bounds(p)
	if err != nil {
		return p
	}
	return fmt.Sprintf("%s %d", bulanNama[int(t.Month())-1], t.Year())
}

// FromTime returns the canonical key for a timestamp.
func FromTime(t time.Time) string {
	return t.Format("2006-01")
}

// Current returns the canonical key for the current month.
func Current() string {
	return FromTime(time.Now())
}
