// Package extractors implements the date search cascade over a parsed page:
// structured sources first, then the text pattern miner.
package extractors

import (
	"github.com/antchfx/htmlquery"
	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/mrjoshuak/htmldate/internal/dates"
	"github.com/mrjoshuak/htmldate/internal/document"
	"github.com/mrjoshuak/htmldate/internal/simplifiers"
)

// searchTree holds the views of one page shared by the stages.
type searchTree struct {
	root      *html.Node
	url       string
	pruned    *html.Node
	discarded []*html.Node
	markup    string
	flattened bool
}

// Markup renders the pruned tree once, on first use.
func (t *searchTree) Markup() string {
	if !t.flattened {
		t.markup = simplifiers.Markup(t.pruned)
		t.flattened = true
	}
	return t.markup
}

type stage struct {
	name string
	run  func(*searchTree, dates.SearchContext) (dates.Candidate, bool)
}

// stages run in priority order; the first validated date wins.
var stages = []stage{
	{"url", func(t *searchTree, sc dates.SearchContext) (dates.Candidate, bool) {
		return ExtractURLDate(t.url, sc)
	}},
	{"header", func(t *searchTree, sc dates.SearchContext) (dates.Candidate, bool) {
		return ExamineHeader(t.root, sc)
	}},
	{"json-ld", func(t *searchTree, sc dates.SearchContext) (dates.Candidate, bool) {
		return ExtractJSONLD(t.root, sc)
	}},
	{"abbr", func(t *searchTree, sc dates.SearchContext) (dates.Candidate, bool) {
		return ExamineAbbrElements(t.pruned, sc)
	}},
	{"time", func(t *searchTree, sc dates.SearchContext) (dates.Candidate, bool) {
		return ExamineTimeElements(t.pruned, sc)
	}},
	{"elements", func(t *searchTree, sc dates.SearchContext) (dates.Candidate, bool) {
		return ExamineDateElements(t.pruned, dateExpressions, sc)
	}},
	{"discarded", func(t *searchTree, sc dates.SearchContext) (dates.Candidate, bool) {
		return ExamineDiscarded(t.discarded, sc)
	}},
	{"timestamp", func(t *searchTree, sc dates.SearchContext) (dates.Candidate, bool) {
		return SearchTimestamp(t.Markup(), sc)
	}},
	{"labelled", func(t *searchTree, sc dates.SearchContext) (dates.Candidate, bool) {
		return SearchLabelledDates(t.Markup(), sc)
	}},
	{"title", func(t *searchTree, sc dates.SearchContext) (dates.Candidate, bool) {
		return ExtractTitleDate(t.root, sc)
	}},
	{"partial url", func(t *searchTree, sc dates.SearchContext) (dates.Candidate, bool) {
		return ExtractPartialURLDate(t.url, sc)
	}},
	{"image", func(t *searchTree, sc dates.SearchContext) (dates.Candidate, bool) {
		return ExtractImageDate(t.root, sc)
	}},
}

// extensiveStages only run during an extensive search.
var extensiveStages = []stage{
	{"text segments", func(t *searchTree, sc dates.SearchContext) (dates.Candidate, bool) {
		return SearchTextSegments(t.pruned, sc)
	}},
	{"text patterns", func(t *searchTree, sc dates.SearchContext) (dates.Candidate, bool) {
		return MineText(t.Markup(), sc)
	}},
}

// ExtractDate runs the search cascade over a page.
func ExtractDate(doc *document.Document, sc dates.SearchContext) (dates.Candidate, bool) {
	if doc == nil || doc.Root == nil {
		return dates.Candidate{}, false
	}
	t := &searchTree{root: doc.Root, url: doc.URL}
	if t.url == "" {
		t.url = canonicalURL(doc.Root)
	}
	t.pruned, t.discarded = simplifiers.Prune(doc.Root)

	run := stages
	if sc.Extensive {
		run = append(append([]stage{}, stages...), extensiveStages...)
	}
	for _, s := range run {
		if c, ok := s.run(t, sc); ok {
			sc.Log().Debug("date found",
				zap.String("stage", s.name),
				zap.String("source", string(c.Source)),
				zap.Time("date", c.Time))
			return c, true
		}
	}
	sc.Log().Debug("no date found")
	return dates.Candidate{}, false
}

func canonicalURL(root *html.Node) string {
	if link := htmlquery.QuerySelector(root, canonicalExpr); link != nil {
		return htmlquery.SelectAttr(link, "href")
	}
	return ""
}
