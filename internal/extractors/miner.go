package extractors

import (
	"fmt"
	"regexp"
	"strconv"

	"go.uber.org/zap"

	"github.com/mrjoshuak/htmldate/internal/dates"
)

type familyRole int

const (
	// roleDate families return a date
	roleDate familyRole = iota
	// roleFloor families record the copyright year as a lower limit
	roleFloor
)

// family is one regex family of the text miner. Candidates are the first
// group of pattern; year filters them before tallying; normalize rewrites
// them into a canonical form, merging their counts; catch and selYear drive
// the candidate selector; build turns the selected submatches into a date.
type family struct {
	name      string
	role      familyRole
	scrub     *regexp.Regexp
	pattern   *regexp.Regexp
	year      *regexp.Regexp
	twoDigit  bool
	normalize func(string) (string, bool)
	catch     *regexp.Regexp
	selYear   *regexp.Regexp
	build     func([]string) (year, month, day int, ok bool)
	source    dates.Source
	precision dates.Precision
}

// families run in order; the first validated hit wins.
var families = []family{
	{
		name: "copyright floor", role: roleFloor,
		pattern: copyrightPattern, year: yearPattern,
		catch: yearPattern, selYear: yearPattern,
		build: yearOnly(1, 1), source: dates.SourceCopyright, precision: dates.PrecisionYear,
	},
	{
		name: "url path", pattern: threePattern, year: yearPattern,
		catch: threeCatch, selYear: yearPattern,
		build: ymd, source: dates.SourcePattern, precision: dates.PrecisionDay,
	},
	{
		name: "loose ymd", pattern: threeLoosePattern, year: yearPattern,
		catch: threeLooseCatch, selYear: yearPattern,
		build: ymd, source: dates.SourcePattern, precision: dates.PrecisionDay,
	},
	{
		name: "dmy", pattern: selectYMDPattern, year: selectYMDYear,
		normalize: normalizeDMY,
		catch:     ymdPattern, selYear: ymdYear,
		build: ymd, source: dates.SourcePattern, precision: dates.PrecisionDay,
	},
	{
		name: "date strings", pattern: dateStringsPattern, year: yearPattern,
		catch: dateStringsCatch, selYear: yearPattern,
		build: ymd, source: dates.SourcePattern, precision: dates.PrecisionDay,
	},
	{
		name: "short dmy", pattern: slashesPattern, year: slashesYear, twoDigit: true,
		normalize: normalizeShortDMY,
		catch:     ymdPattern, selYear: ymdYear,
		build: ymd, source: dates.SourcePattern, precision: dates.PrecisionDay,
	},
	{
		name: "year month", pattern: yyyymmPattern, year: yearPattern,
		catch: yyyymmCatch, selYear: yearPattern,
		build: ym, source: dates.SourcePattern, precision: dates.PrecisionMonth,
	},
	{
		name: "month year", pattern: mmyyyyPattern, year: mmyyyyYear,
		normalize: normalizeMY,
		catch:     ymdPattern, selYear: ymdYear,
		build: ymd, source: dates.SourcePattern, precision: dates.PrecisionMonth,
	},
	{
		name: "month name", pattern: dates.TextDatePattern, year: textDateYear,
		normalize: normalizeTextDate,
		catch:     ymdPattern, selYear: ymdYear,
		build: ymd, source: dates.SourcePattern, precision: dates.PrecisionDay,
	},
	{
		name: "copyright", pattern: copyrightPattern, year: yearPattern,
		catch: yearPattern, selYear: yearPattern,
		build: yearOnly(1, 1), source: dates.SourceCopyright, precision: dates.PrecisionYear,
	},
	{
		name: "year", scrub: namespaceURL, pattern: simplePattern, year: yearPattern,
		catch: yearPattern, selYear: yearPattern,
		build: yearOnly(7, 1), source: dates.SourceYear, precision: dates.PrecisionYear,
	},
}

// MineText runs the regex families over the markup of a page.
func MineText(markup string, sc dates.SearchContext) (dates.Candidate, bool) {
	floor := 0
	for _, f := range families {
		best := f.run(markup, sc)
		if best == nil {
			continue
		}
		year, month, day, ok := f.build(best)
		if !ok {
			continue
		}
		if f.role == roleFloor {
			if sc.Bounds.ContainsYear(year) {
				floor = year
				sc.Log().Debug("copyright year", zap.Int("year", year))
			}
			continue
		}
		if floor != 0 && year < floor {
			continue
		}
		if c, ok := sc.AcceptYMD(year, month, day, f.precision); ok {
			sc.Log().Debug("text pattern match", zap.String("family", f.name))
			return c.From(f.source), true
		}
	}
	return dates.Candidate{}, false
}

// run tallies the plausible candidates of the family and selects one.
func (f family) run(markup string, sc dates.SearchContext) []string {
	if f.scrub != nil {
		markup = f.scrub.ReplaceAllString(markup, "")
	}
	freq := f.tally(markup, sc)
	if f.normalize != nil {
		normalized := make(Frequencies, len(freq))
		for item, count := range freq {
			if canonical, ok := f.normalize(item); ok {
				normalized[canonical] += count
			}
		}
		freq = normalized
	}
	return SelectCandidate(freq, f.catch, f.selYear, sc)
}

// tally counts the matches of the family whose year is plausible.
func (f family) tally(markup string, sc dates.SearchContext) Frequencies {
	freq := Frequencies{}
	for _, m := range f.pattern.FindAllStringSubmatch(markup, -1) {
		freq[m[1]]++
	}
	for item := range freq {
		ym := f.year.FindStringSubmatch(item)
		if ym == nil {
			delete(freq, item)
			continue
		}
		yearText := ym[1]
		if f.twoDigit {
			yearText = dates.ExpandYear(yearText)
		}
		year, err := strconv.Atoi(yearText)
		if err != nil || !sc.Bounds.ContainsYear(year) {
			delete(freq, item)
		}
	}
	return freq
}

func ymd(m []string) (int, int, int, bool) {
	if len(m) < 4 {
		return 0, 0, 0, false
	}
	return atoi3(m[1], m[2], m[3])
}

func ym(m []string) (int, int, int, bool) {
	if len(m) < 3 {
		return 0, 0, 0, false
	}
	return atoi3(m[1], m[2], "1")
}

func yearOnly(month, day int) func([]string) (int, int, int, bool) {
	return func(m []string) (int, int, int, bool) {
		if len(m) < 2 {
			return 0, 0, 0, false
		}
		year, err := strconv.Atoi(m[1])
		if err != nil {
			return 0, 0, 0, false
		}
		return year, month, day, true
	}
}

func atoi3(a, b, c string) (int, int, int, bool) {
	x, err := strconv.Atoi(a)
	if err != nil {
		return 0, 0, 0, false
	}
	y, err := strconv.Atoi(b)
	if err != nil {
		return 0, 0, 0, false
	}
	z, err := strconv.Atoi(c)
	if err != nil {
		return 0, 0, 0, false
	}
	return x, y, z, true
}

func canonicalDate(year, month, day int) string {
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
}

// normalizeDMY rewrites D-M-YYYY as YYYY-MM-DD.
func normalizeDMY(item string) (string, bool) {
	m := dmyComponents.FindStringSubmatch(item)
	if m == nil {
		return "", false
	}
	day, month, year, ok := atoi3(m[1], m[2], m[3])
	return canonicalDate(year, month, day), ok
}

// normalizeShortDMY rewrites D/M/YY as YYYY-MM-DD.
func normalizeShortDMY(item string) (string, bool) {
	m := slashComponents.FindStringSubmatch(item)
	if m == nil {
		return "", false
	}
	day, month, year, ok := atoi3(m[1], m[2], dates.ExpandYear(m[3]))
	return canonicalDate(year, month, day), ok
}

// normalizeMY rewrites M-YYYY as YYYY-MM-01.
func normalizeMY(item string) (string, bool) {
	m := myComponents.FindStringSubmatch(item)
	if m == nil {
		return "", false
	}
	month, year, _, ok := atoi3(m[1], m[2], "1")
	return canonicalDate(year, month, 1), ok
}

func normalizeTextDate(item string) (string, bool) {
	year, month, day, ok := dates.ParseMonthName(item)
	if !ok {
		return "", false
	}
	return canonicalDate(year, month, day), true
}
