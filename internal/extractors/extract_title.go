package extractors

import (
	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"

	"github.com/mrjoshuak/htmldate/internal/dates"
)

// ExtractTitleDate reads a date from the title and h1 elements of a page.
func ExtractTitleDate(root *html.Node, sc dates.SearchContext) (dates.Candidate, bool) {
	for _, elem := range htmlquery.QuerySelectorAll(root, titleExpr) {
		if c, ok := dates.TryDate(elementText(elem), sc); ok {
			return c.From(dates.SourceTitle), true
		}
	}
	return dates.Candidate{}, false
}
