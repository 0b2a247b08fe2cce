package dates

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// monthNames maps English and German month names, full and abbreviated, to
// month numbers.
var monthNames = map[string]int{
	"january": 1, "jan": 1, "januar": 1, "jänner": 1, "jän": 1,
	"february": 2, "feb": 2, "februar": 2, "feber": 2,
	"march": 3, "mar": 3, "märz": 3, "mär": 3, "maerz": 3,
	"april": 4, "apr": 4,
	"may": 5, "mai": 5,
	"june": 6, "jun": 6, "juni": 6,
	"july": 7, "jul": 7, "juli": 7,
	"august": 8, "aug": 8,
	"september": 9, "sep": 9, "sept": 9,
	"october": 10, "oct": 10, "oktober": 10, "okt": 10,
	"november": 11, "nov": 11,
	"december": 12, "dec": 12, "dezember": 12, "dez": 12,
}

// monthAlternation lists the names longest first so that leftmost-first
// matching prefers "september" over "sep".
var monthAlternation = func() string {
	names := make([]string, 0, len(monthNames))
	for name := range monthNames {
		names = append(names, regexp.QuoteMeta(name))
	}
	sort.Slice(names, func(i, j int) bool {
		if len(names[i]) != len(names[j]) {
			return len(names[i]) > len(names[j])
		}
		return names[i] < names[j]
	})
	return strings.Join(names, "|")
}()

var (
	americanCore = `(?:` + monthAlternation + `)\.?\s+[0-3]?[0-9](?:st|nd|rd|th)?\.?,?\s+[12][0-9]{3}`
	britishCore  = `[0-3]?[0-9](?:st|nd|rd|th|\.)?\s+(?:of\s+)?(?:` + monthAlternation + `)\.?,?\s+[12][0-9]{3}`

	// TextDatePattern finds written-out dates in either order. Group 1 holds
	// the whole date, which ParseMonthName can read back.
	TextDatePattern = regexp.MustCompile(`(?i)\b(` + britishCore + `|` + americanCore + `)\b`)

	// "March 5, 2017", "Okt. 5 2017"
	americanTextPattern = regexp.MustCompile(`(?i)(?:^|[^\p{L}])(` + monthAlternation + `)\.?\s+([0-3]?[0-9])(?:st|nd|rd|th)?\.?,?\s+([12][0-9]{3})(?:\D|$)`)
	// "5 March 2017", "5. März 2017", "5th of March, 2017"
	britishTextPattern = regexp.MustCompile(`(?i)(?:^|\D)([0-3]?[0-9])(?:st|nd|rd|th|\.)?\s+(?:of\s+)?(` + monthAlternation + `)\.?,?\s+([12][0-9]{3})(?:\D|$)`)
)

// MonthNumber returns the month number for an English or German month name.
func MonthNumber(name string) (int, bool) {
	m, ok := monthNames[strings.ToLower(strings.TrimSuffix(name, "."))]
	return m, ok
}

// ParseMonthName finds the first "Month D, Year" or "D Month Year" date in s.
func ParseMonthName(s string) (year, month, day int, ok bool) {
	if m := americanTextPattern.FindStringSubmatch(s); m != nil {
		month, ok = MonthNumber(m[1])
		day, _ = strconv.Atoi(m[2])
		year, _ = strconv.Atoi(m[3])
		return year, month, day, ok
	}
	if m := britishTextPattern.FindStringSubmatch(s); m != nil {
		day, _ = strconv.Atoi(m[1])
		month, ok = MonthNumber(m[2])
		year, _ = strconv.Atoi(m[3])
		return year, month, day, ok
	}
	return 0, 0, 0, false
}
