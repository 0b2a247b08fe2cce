package dates

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/mrjoshuak/htmldate/internal/cache"
)

var (
	trailingNonDigits = regexp.MustCompile(`\D+$`)
	separatorPattern  = regexp.MustCompile(`[-/.:,_ ]`)
	// time of day alone, or a year with nothing else numeric around it
	discardPattern = regexp.MustCompile(`^\d{2}:\d{2}(?::\d{2})?(?:\s|$)|^\D*\d{4}\D*$`)

	ymdPattern = regexp.MustCompile(`(?:^|\D)([12][0-9]{3})[-/.]([01]?[0-9])[-/.]([0-3]?[0-9])(?:\D|$)`)
	dmyPattern = regexp.MustCompile(`(?:^|\D)([0-3]?[0-9])[-/.]([01]?[0-9])[-/.]([0-9]{4}|[0-9]{2})(?:\D|$)`)
)

// naiveLayouts are tried on every fragment. They ignore zones for speed.
var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// zonedLayouts are only tried during an extensive search.
var zonedLayouts = []string{
	"2006-01-02T15:04:05.999999999Z07:00",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05.999999999-0700",
	"2006-01-02T15:04:05-0700",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05 -0700",
	"Mon, 02 Jan 2006 15:04:05 -0700",
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"Mon, 02 Jan 2006 15:04:05",
	"Mon, 2 Jan 2006 15:04:05",
	"Monday, 02-Jan-06 15:04:05",
	"Mon Jan _2 15:04:05 2006",
}

// Prepare trims a raw fragment and applies the cheap pre-filters.
// It returns false for fragments that cannot hold a date.
func Prepare(fragment string) (string, bool) {
	s := truncate(strings.TrimSpace(fragment), MaxSegmentLen)
	s = trailingNonDigits.ReplaceAllString(s, "")
	if len([]rune(s)) < MinSegmentLen {
		return "", false
	}
	digits := countDigits(s)
	if digits < MinDigits {
		return "", false
	}
	if digits != len(s) && !separatorPattern.MatchString(s) {
		return "", false
	}
	if discardPattern.MatchString(s) {
		return "", false
	}
	return s, true
}

// TryDate parses a fragment into a validated candidate. The fast path runs
// first; the external parser is used only during an extensive search.
func TryDate(fragment string, sc SearchContext) (Candidate, bool) {
	s, ok := Prepare(fragment)
	if !ok {
		return Candidate{}, false
	}
	for _, t := range fastCandidates(s, sc.Extensive, sc.Memo) {
		if c, ok := sc.Accept(t, PrecisionDay); ok {
			return c, true
		}
	}
	if !sc.Extensive {
		return Candidate{}, false
	}
	t, ok := slowCandidate(s, sc.Memo)
	if !ok {
		return Candidate{}, false
	}
	return sc.Accept(t, PrecisionDay)
}

// fastCandidates returns the result of every fast-path parser in priority
// order. The list depends only on its arguments, so it is memoized.
func fastCandidates(s string, extensive bool, memo *cache.Memo) []time.Time {
	key := cache.Key("fast", strconv.FormatBool(extensive), s)
	if v, ok := memo.Get(key); ok {
		return v.([]time.Time)
	}
	found := fastParse(s, extensive)
	memo.Add(key, found)
	return found
}

func fastParse(s string, extensive bool) []time.Time {
	var found []time.Time
	add := func(t time.Time, ok bool) {
		if ok {
			found = append(found, t)
		}
	}

	// compact YYYYMMDD
	if len(s) >= 8 && countDigits(s[:8]) == 8 {
		year, _ := strconv.Atoi(s[:4])
		month, _ := strconv.Atoi(s[4:6])
		day, _ := strconv.Atoi(s[6:8])
		add(Date(year, month, day))
	}

	add(parseISO(s, extensive))

	if m := ymdPattern.FindStringSubmatch(s); m != nil {
		add(dateFromStrings(m[1], m[2], m[3]))
	}

	if m := dmyPattern.FindStringSubmatch(s); m != nil {
		year := m[3]
		if len(year) == 2 {
			year = ExpandYear(year)
		}
		add(dateFromStrings(year, m[2], m[1]))
	}

	if year, month, day, ok := ParseMonthName(s); ok {
		add(Date(year, month, day))
	}
	return found
}

// parseISO tries structured layouts. Zones are read but only the wall clock
// of the page is kept.
func parseISO(s string, extensive bool) (time.Time, bool) {
	for _, layout := range naiveLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return WallClock(t), true
		}
	}
	if !extensive {
		return time.Time{}, false
	}
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return WallClock(t), true
		}
	}
	return time.Time{}, false
}

// ExpandYear turns a two-digit year into a four-digit one: a leading '9'
// means the 1990s, anything else the 2000s.
func ExpandYear(yy string) string {
	if len(yy) != 2 {
		return yy
	}
	if yy[0] == '9' {
		return "19" + yy
	}
	return "20" + yy
}

func dateFromStrings(year, month, day string) (time.Time, bool) {
	y, err := strconv.Atoi(year)
	if err != nil {
		return time.Time{}, false
	}
	m, err := strconv.Atoi(month)
	if err != nil {
		return time.Time{}, false
	}
	d, err := strconv.Atoi(day)
	if err != nil {
		return time.Time{}, false
	}
	return Date(y, m, d)
}

func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}

// truncate keeps the first n runes of s.
func truncate(s string, n int) string {
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

// IsDigits reports whether s is a non-empty run of ASCII digits.
func IsDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
