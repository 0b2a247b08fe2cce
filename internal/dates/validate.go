package dates

import (
	"strings"
	"time"
)

// sampleDate is used to check that an output layout carries a full calendar date.
var sampleDate = time.Date(2017, time.September, 1, 0, 0, 0, 0, time.UTC)

// Contains reports whether t lies inside the window. The year is checked first,
// then the full timestamp.
func (b Bounds) Contains(t time.Time) bool {
	if t.IsZero() {
		return false
	}
	if t.Year() < b.Min.Year() || t.Year() > b.Max.Year() {
		return false
	}
	return !t.Before(b.Min) && !t.After(b.Max)
}

// ContainsYear reports whether a whole year is plausible.
func (b Bounds) ContainsYear(year int) bool {
	return year >= b.Min.Year() && year <= b.Max.Year()
}

// Valid reports whether Min does not come after Max.
func (b Bounds) Valid() bool {
	return !b.Min.After(b.Max)
}

// ValidateLayout reports whether a Go time layout can represent a full date:
// a sample date formatted with it must parse back to the same calendar day.
func ValidateLayout(layout string) bool {
	if strings.TrimSpace(layout) == "" {
		return false
	}
	formatted := sampleDate.Format(layout)
	if formatted == layout {
		return false
	}
	parsed, err := time.Parse(layout, formatted)
	if err != nil {
		return false
	}
	return sameDay(parsed, sampleDate)
}

// ParseBound parses a bound given as an ISO date or RFC3339 timestamp.
// It returns false when s is not a valid date.
func ParseBound(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"2006-01-02", time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return WallClock(t), true
		}
	}
	return time.Time{}, false
}

// Date builds a calendar date, rejecting values that time.Date would normalize
// (February 30 becomes March 2, which is not what the page said).
func Date(year, month, day int) (time.Time, bool) {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

// Accept validates t against the bounds and the output layout.
func (sc SearchContext) Accept(t time.Time, precision Precision) (Candidate, bool) {
	if !sc.Bounds.Contains(t) {
		return Candidate{}, false
	}
	layout := sc.layout()
	if layout != DefaultLayout {
		parsed, err := time.Parse(layout, t.Format(layout))
		if err != nil || !sameDay(parsed, t) {
			return Candidate{}, false
		}
	}
	return Candidate{Time: t, Precision: precision}, true
}

// AcceptYMD builds and validates a date from its components.
func (sc SearchContext) AcceptYMD(year, month, day int, precision Precision) (Candidate, bool) {
	t, ok := Date(year, month, day)
	if !ok {
		return Candidate{}, false
	}
	return sc.Accept(t, precision)
}

// WallClock keeps the calendar reading of t and drops its zone.
func WallClock(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
