package extractors

import (
	"github.com/antchfx/htmlquery"
	"github.com/antchfx/xpath"
	"golang.org/x/net/html"

	"github.com/mrjoshuak/htmldate/internal/dates"
	"github.com/mrjoshuak/htmldate/internal/simplifiers"
)

// ExamineDateElements tries each expression in turn and returns the first
// date found in the text or title of the elements it selects. Expressions
// selecting too many elements are skipped.
func ExamineDateElements(root *html.Node, exprs []*xpath.Expr, sc dates.SearchContext) (dates.Candidate, bool) {
	if root == nil {
		return dates.Candidate{}, false
	}
	for _, expr := range exprs {
		elements := htmlquery.QuerySelectorAll(root, expr)
		if len(elements) > MaxPossibleCandidates {
			sc.Log().Debug("expression too noisy, skipped")
			continue
		}
		if c, ok := examineDateElements(elements, sc); ok {
			return c.From(dates.SourceElement), true
		}
	}
	return dates.Candidate{}, false
}

func examineDateElements(elements []*html.Node, sc dates.SearchContext) (dates.Candidate, bool) {
	for _, elem := range elements {
		text := elementText(elem)
		if len(text) >= dates.MinSegmentLen {
			if c, ok := dates.TryDate(text, sc); ok {
				return c, true
			}
		}
		if title := htmlquery.SelectAttr(elem, "title"); title != "" {
			if c, ok := dates.TryDate(simplifiers.NormalizeText(title), sc); ok {
				return c, true
			}
		}
	}
	return dates.Candidate{}, false
}

// elementText returns the normalized text of an element, cut to the part
// a date can be read from.
func elementText(elem *html.Node) string {
	text := htmlquery.InnerText(elem)
	// long texts are cut before normalization so that huge containers stay cheap
	text = simplifiers.Truncate(text, 4*dates.MaxSegmentLen)
	return simplifiers.Truncate(simplifiers.NormalizeText(text), dates.MaxSegmentLen)
}

// ExamineDiscarded runs the element expressions over the subtrees removed
// during pruning.
func ExamineDiscarded(discarded []*html.Node, sc dates.SearchContext) (dates.Candidate, bool) {
	for _, subtree := range discarded {
		if c, ok := ExamineDateElements(subtree, dateExpressions, sc); ok {
			return c.From(dates.SourceDiscarded), true
		}
	}
	return dates.Candidate{}, false
}
