package extractors

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/mrjoshuak/htmldate/internal/dates"
)

// headerHits collects the meta tag dates by confidence.
type headerHits struct {
	published dates.Candidate
	modified  dates.Candidate
	reserve   dates.Candidate
	hasPub    bool
	hasMod    bool
	hasRes    bool
}

func (h *headerHits) setPublished(c dates.Candidate, ok bool) {
	if ok && !h.hasPub {
		h.published, h.hasPub = c, true
	}
}

func (h *headerHits) setModified(c dates.Candidate, ok bool) {
	if ok && !h.hasMod {
		h.modified, h.hasMod = c, true
	}
}

func (h *headerHits) setReserve(c dates.Candidate, ok bool) {
	if ok && !h.hasRes {
		h.reserve, h.hasRes = c, true
	}
}

// addModified returns the setter for a modification date: a direct hit,
// or a reserve when the original date is sought.
func (h *headerHits) addModified(sc dates.SearchContext) func(dates.Candidate, bool) {
	if sc.Original {
		return h.setReserve
	}
	return h.setModified
}

// ExamineHeader looks for a date in the meta tags of a page.
//
// When the original date is sought the first published date wins and
// modification dates are only kept in reserve. Otherwise the first
// modification date wins, then the first published date. The reserve
// (copyright year, og:url, the opposite intent) is used last.
func ExamineHeader(root *html.Node, sc dates.SearchContext) (dates.Candidate, bool) {
	hits := &headerHits{}
	doc := goquery.NewDocumentFromNode(root)

	doc.Find("meta").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		examineMeta(s, hits, sc)
		if sc.Original {
			return !hits.hasPub
		}
		return !hits.hasMod
	})

	var c dates.Candidate
	switch {
	case sc.Original && hits.hasPub:
		c = hits.published
	case !sc.Original && hits.hasMod:
		c = hits.modified
	case !sc.Original && hits.hasPub:
		c = hits.published
	case hits.hasRes:
		c = hits.reserve
	default:
		return dates.Candidate{}, false
	}
	if c.Source == "" {
		c = c.From(dates.SourceHeader)
	}
	return c, true
}

func examineMeta(s *goquery.Selection, hits *headerHits, sc dates.SearchContext) {
	content := s.AttrOr("content", "")

	if name, ok := metaKey(s, "name", "property"); ok {
		switch {
		case name == "og:url":
			c, ok := ExtractURLDate(content, sc)
			hits.setReserve(c.From(dates.SourceHeader), ok)
		case isPublished(name):
			hits.setPublished(dates.TryDate(content, sc))
		case isModified(name):
			hits.addModified(sc)(dates.TryDate(content, sc))
		}
		return
	}

	if prop, ok := metaKey(s, "itemprop"); ok {
		value := s.AttrOr("datetime", content)
		switch {
		case contains(itempropPublished, prop):
			hits.setPublished(dates.TryDate(value, sc))
		case contains(itempropModified, prop):
			hits.addModified(sc)(dates.TryDate(value, sc))
		case prop == "copyrightyear":
			if year, err := strconv.Atoi(strings.TrimSpace(content)); err == nil {
				hits.setReserve(sc.AcceptYMD(year, 1, 1, dates.PrecisionYear))
			}
		}
		return
	}

	if pubdate, ok := s.Attr("pubdate"); ok && strings.EqualFold(pubdate, "pubdate") {
		hits.setPublished(dates.TryDate(content, sc))
		return
	}

	if equiv, ok := metaKey(s, "http-equiv"); ok {
		switch equiv {
		case "date":
			if sc.Original {
				hits.setPublished(dates.TryDate(content, sc))
			} else {
				hits.setReserve(dates.TryDate(content, sc))
			}
		case "last-modified":
			hits.addModified(sc)(dates.TryDate(content, sc))
		}
	}
}

// metaKey returns the lower-cased value of the first attribute present.
func metaKey(s *goquery.Selection, attrs ...string) (string, bool) {
	for _, attr := range attrs {
		if v, ok := s.Attr(attr); ok && v != "" {
			return strings.ToLower(strings.TrimSpace(v)), true
		}
	}
	return "", false
}

func isPublished(name string) bool {
	return contains(publishedAttributes, name)
}

func isModified(name string) bool {
	return contains(modifiedAttributes, name)
}

func contains(set map[string]struct{}, key string) bool {
	_, ok := set[key]
	return ok
}
