package extractors

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/mrjoshuak/htmldate/internal/dates"
)

// ExtractJSONLD reads datePublished or dateModified from the structured data
// scripts of a page. When the latest date is sought, dateModified is
// preferred and datePublished serves as a fallback.
func ExtractJSONLD(root *html.Node, sc dates.SearchContext) (dates.Candidate, bool) {
	patterns := []*regexp.Regexp{jsonModified, jsonPublished}
	if sc.Original {
		patterns = []*regexp.Regexp{jsonPublished}
	}

	var scripts []string
	goquery.NewDocumentFromNode(root).
		Find(`script[type="application/ld+json"], script[type="application/settings+json"]`).
		Each(func(_ int, s *goquery.Selection) {
			if text := s.Text(); strings.Contains(text, `"date`) {
				scripts = append(scripts, text)
			}
		})

	for _, pattern := range patterns {
		for _, text := range scripts {
			m := pattern.FindStringSubmatch(text)
			if m == nil {
				continue
			}
			if c, ok := dates.TryDate(m[1], sc); ok {
				return c.From(dates.SourceJSONLD), true
			}
		}
	}
	return dates.Candidate{}, false
}
