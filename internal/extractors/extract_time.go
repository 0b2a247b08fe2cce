package extractors

import (
	"strconv"
	"strings"

	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"

	"github.com/mrjoshuak/htmldate/internal/dates"
)

var publishedAbbrClasses = setOf("published", "date-published", "time published")

// ExamineAbbrElements looks for dates in abbr elements: Facebook-style
// data-utime epochs and abbr tags marked as published. If no reference
// emerges the abbr contents are examined like any date element.
func ExamineAbbrElements(root *html.Node, sc dates.SearchContext) (dates.Candidate, bool) {
	elements := htmlquery.QuerySelectorAll(root, abbrExpr)
	if len(elements) == 0 || len(elements) >= MaxPossibleCandidates {
		return dates.Candidate{}, false
	}

	var reference dates.Reference
	for _, elem := range elements {
		if utime := htmlquery.SelectAttr(elem, "data-utime"); utime != "" {
			epoch, err := strconv.ParseInt(strings.TrimSpace(utime), 10, 64)
			if err != nil {
				continue
			}
			reference = reference.Update(epoch, sc.Original)
			continue
		}
		if !contains(publishedAbbrClasses, htmlquery.SelectAttr(elem, "class")) {
			continue
		}
		if title := htmlquery.SelectAttr(elem, "title"); title != "" {
			if sc.Original {
				if c, ok := dates.TryDate(title, sc); ok {
					return c.From(dates.SourceAbbr), true
				}
			} else {
				reference = reference.Compare(title, sc)
				if reference.IsSet() {
					break
				}
			}
		}
		if text := htmlquery.InnerText(elem); len(text) > 10 {
			reference = reference.Compare(text, sc)
		}
	}

	if c, ok := reference.Check(sc); ok {
		return c.From(dates.SourceAbbr), true
	}
	if c, ok := examineDateElements(elements, sc); ok {
		return c.From(dates.SourceAbbr), true
	}
	return dates.Candidate{}, false
}

// ExamineTimeElements looks for dates in time elements. A pubdate or
// entry-date time is taken as is when the original date is sought, an
// "updated" time when the latest date is sought; other datetime
// attributes and texts feed a reference.
func ExamineTimeElements(root *html.Node, sc dates.SearchContext) (dates.Candidate, bool) {
	elements := htmlquery.QuerySelectorAll(root, timeExpr)
	if len(elements) == 0 || len(elements) >= MaxPossibleCandidates {
		return dates.Candidate{}, false
	}

	var reference dates.Reference
	for _, elem := range elements {
		datetime := htmlquery.SelectAttr(elem, "datetime")
		if len(datetime) > 6 {
			if isTimeShortcut(elem, sc) {
				if c, ok := dates.TryDate(datetime, sc); ok {
					return c.From(dates.SourceTime), true
				}
				continue
			}
			reference = reference.Compare(datetime, sc)
			if reference.IsSet() {
				break
			}
			continue
		}
		if text := htmlquery.InnerText(elem); len(text) > 6 {
			reference = reference.Compare(text, sc)
		}
	}

	if c, ok := reference.Check(sc); ok {
		return c.From(dates.SourceTime), true
	}
	return dates.Candidate{}, false
}

func isTimeShortcut(elem *html.Node, sc dates.SearchContext) bool {
	if pubdate := htmlquery.SelectAttr(elem, "pubdate"); pubdate == "pubdate" {
		return sc.Original
	}
	class := htmlquery.SelectAttr(elem, "class")
	if sc.Original {
		return strings.HasPrefix(class, "entry-date") || strings.HasPrefix(class, "entry-time")
	}
	return class == "updated"
}
