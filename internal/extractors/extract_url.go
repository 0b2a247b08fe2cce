package extractors

import (
	"github.com/mrjoshuak/htmldate/internal/dates"
)

// ExtractURLDate reads a full year-month-day date from a URL path.
func ExtractURLDate(url string, sc dates.SearchContext) (dates.Candidate, bool) {
	if url == "" {
		return dates.Candidate{}, false
	}
	m := completeURL.FindStringSubmatch(url)
	if m == nil {
		return dates.Candidate{}, false
	}
	year, month, day, ok := ymd(m)
	if !ok {
		return dates.Candidate{}, false
	}
	c, ok := sc.AcceptYMD(year, month, day, dates.PrecisionDay)
	return c.From(dates.SourceURL), ok
}

// ExtractPartialURLDate reads a year and month from a URL path. The day
// defaults to the first of the month.
func ExtractPartialURLDate(url string, sc dates.SearchContext) (dates.Candidate, bool) {
	if url == "" {
		return dates.Candidate{}, false
	}
	m := partialURL.FindStringSubmatch(url)
	if m == nil {
		return dates.Candidate{}, false
	}
	year, month, day, ok := ym(m)
	if !ok {
		return dates.Candidate{}, false
	}
	c, ok := sc.AcceptYMD(year, month, day, dates.PrecisionMonth)
	return c.From(dates.SourcePartialURL), ok
}
