package extractors

import (
	"golang.org/x/net/html"

	"github.com/mrjoshuak/htmldate/internal/dates"
	"github.com/mrjoshuak/htmldate/internal/simplifiers"
)

// SearchTimestamp finds the first date directly followed by a time of day.
func SearchTimestamp(markup string, sc dates.SearchContext) (dates.Candidate, bool) {
	m := timestampPattern.FindStringSubmatch(markup)
	if m == nil {
		return dates.Candidate{}, false
	}
	c, ok := dates.TryDate(m[1], sc)
	return c.From(dates.SourceTimestamp), ok
}

// SearchLabelledDates finds dates introduced by a label such as
// "Published on" or "Stand:".
func SearchLabelledDates(markup string, sc dates.SearchContext) (dates.Candidate, bool) {
	if m := labelledEN.FindStringSubmatch(markup); m != nil {
		if year, month, day, ok := labelledComponents(m[1], m[2], m[3]); ok {
			if c, ok := sc.AcceptYMD(year, month, day, dates.PrecisionDay); ok {
				return c.From(dates.SourceIdiosyncrasy), true
			}
		}
	}
	if m := labelledDE.FindStringSubmatch(markup); m != nil {
		if year, month, day, ok := labelledComponents(m[1], m[2], m[3]); ok {
			if c, ok := sc.AcceptYMD(year, month, day, dates.PrecisionDay); ok {
				return c.From(dates.SourceIdiosyncrasy), true
			}
		}
	}
	return dates.Candidate{}, false
}

// labelledComponents orders three captured numbers. A four-digit first part
// is a year; otherwise the day comes first unless the middle part cannot be
// a month.
func labelledComponents(a, b, c string) (year, month, day int, ok bool) {
	if len(a) == 4 {
		return atoi3(a, b, c)
	}
	if len(c) != 2 && len(c) != 4 {
		return 0, 0, 0, false
	}
	first, second, year, ok := atoi3(a, b, dates.ExpandYear(c))
	if !ok {
		return 0, 0, 0, false
	}
	if second > 12 {
		return year, first, second, true
	}
	return year, second, first, true
}

// SearchTextSegments feeds the short text nodes of a page into a reference
// and returns it once validated.
func SearchTextSegments(root *html.Node, sc dates.SearchContext) (dates.Candidate, bool) {
	var reference dates.Reference
	for _, segment := range simplifiers.TextSegments(root, dates.MinSegmentLen, dates.MaxSegmentLen) {
		reference = reference.Compare(segment, sc)
	}
	c, ok := reference.Check(sc)
	return c.From(dates.SourceFreeText), ok
}
