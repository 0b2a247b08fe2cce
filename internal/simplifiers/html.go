package simplifiers

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/antchfx/htmlquery"
	"github.com/antchfx/xpath"
	"golang.org/x/net/html"
)

// ElementsToDelete returns the elements removed with their contents before
// the tree is searched. None of them carries a visible date.
func ElementsToDelete() []string {
	embedded := []string{"applet", "embed", "frame", "frameset", "iframe", "noframes", "object"}
	media := []string{"audio", "canvas", "picture", "track", "video"}
	markup := []string{"math", "rdf", "svg"}
	forms := []string{"datalist", "label", "map"}

	elements := append(embedded, media...)
	elements = append(elements, markup...)
	elements = append(elements, forms...)
	return elements
}

var (
	// footers are searched last, as they mostly hold copyright or archive dates
	discardFooters = xpath.MustCompile(`.//footer | .//*[(self::div or self::section)][@id="footer" or @class="footer"]`)
	// banners injected by the Wayback Machine
	discardArchives = xpath.MustCompile(`.//div[@id="wm-ipp-base" or @id="wm-ipp"]`)
)

// Prune returns a cleaned deep copy of root. Non-content elements are
// removed; footers and archive banners are detached and returned separately
// so they can be searched after the main tree. root is not modified.
func Prune(root *html.Node) (*html.Node, []*html.Node) {
	if root == nil {
		return nil, nil
	}
	clone := Clone(root)
	removeMetadata(clone)

	doc := goquery.NewDocumentFromNode(clone)
	doc.Find(strings.Join(ElementsToDelete(), ", ")).Remove()

	var discarded []*html.Node
	for _, expr := range []*xpath.Expr{discardArchives, discardFooters} {
		for _, n := range htmlquery.QuerySelectorAll(clone, expr) {
			if !attached(n, clone) {
				continue
			}
			n.Parent.RemoveChild(n)
			discarded = append(discarded, n)
		}
	}
	return clone, discarded
}

// Clone makes a deep copy of n and its descendants. The copy has no parent.
func Clone(n *html.Node) *html.Node {
	c := &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
		Attr:      make([]html.Attribute, len(n.Attr)),
	}
	copy(c.Attr, n.Attr)
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		c.AppendChild(Clone(child))
	}
	return c
}

// TextSegments returns the visible text nodes of root whose trimmed length
// lies strictly between minLen and maxLen, in document order.
func TextSegments(root *html.Node, minLen, maxLen int) []string {
	var segments []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if l := len([]rune(text)); l > minLen && l < maxLen {
				segments = append(segments, text)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	if root != nil {
		walk(root)
	}
	return segments
}

// Markup renders root as HTML with span tags unwrapped, so that dates split
// over several spans read as one string. root is modified.
func Markup(root *html.Node) string {
	if root == nil {
		return ""
	}
	doc := goquery.NewDocumentFromNode(root)
	doc.Find("span").Each(func(_ int, s *goquery.Selection) {
		s.Contents().Unwrap()
	})
	out, err := doc.Html()
	if err != nil {
		return ""
	}
	return out
}

// attached reports whether n still hangs below root. Nested footers are
// detached together with their outermost ancestor.
func attached(n, root *html.Node) bool {
	for p := n.Parent; p != nil; p = p.Parent {
		if p == root {
			return true
		}
	}
	return false
}

// removeMetadata removes comments
func removeMetadata(root *html.Node) {
	var comments []*html.Node
	var findComments func(*html.Node)
	findComments = func(n *html.Node) {
		if n.Type == html.CommentNode {
			comments = append(comments, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			findComments(c)
		}
	}
	findComments(root)

	for _, n := range comments {
		if n.Parent != nil {
			n.Parent.RemoveChild(n)
		}
	}
}
