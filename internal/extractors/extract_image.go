package extractors

import (
	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/mrjoshuak/htmldate/internal/dates"
)

// ExtractImageDate reads a date from the file path of the preview image,
// then from the sources of the images of the page.
func ExtractImageDate(root *html.Node, sc dates.SearchContext) (dates.Candidate, bool) {
	doc := goquery.NewDocumentFromNode(root)

	var urls []string
	if preview, ok := doc.Find(`meta[property="og:image"]`).First().Attr("content"); ok {
		urls = append(urls, preview)
	}
	doc.Find("img[src]").EachWithBreak(func(i int, s *goquery.Selection) bool {
		urls = append(urls, s.AttrOr("src", ""))
		return i < MaxPossibleCandidates
	})

	for _, url := range urls {
		if c, ok := ExtractURLDate(url, sc); ok {
			return c.From(dates.SourceImage), true
		}
	}
	return dates.Candidate{}, false
}
