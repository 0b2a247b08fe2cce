// Package document turns raw markup into the parsed tree the date
// extractors work on, enforcing the input size ceiling first.
package document

import (
	"bytes"
	"io"
	"strings"

	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"
)

const (
	// MaxFileSize is the default input ceiling in bytes.
	MaxFileSize = 20_000_000
	// MinFileSize is the smallest input worth parsing.
	MinFileSize = 10
)

// Document is a parsed page together with its raw markup.
type Document struct {
	Root *html.Node
	Raw  string
	URL  string
}

// Load parses an HTML string. Inputs outside [MinFileSize, maxSize] are
// rejected before any parsing happens; maxSize <= 0 means MaxFileSize.
func Load(raw string, maxSize int) (*Document, error) {
	if err := checkSize(len(raw), maxSize, "Load"); err != nil {
		return nil, err
	}
	root, err := htmlquery.Parse(strings.NewReader(raw))
	if err != nil {
		return nil, WrapError(err, ParseError, "Load", "parsing HTML")
	}
	if !hasElements(root) {
		return nil, WrapError(ErrNoDocument, ParseError, "Load", "")
	}
	return &Document{Root: root, Raw: raw}, nil
}

// LoadReader reads at most maxSize+1 bytes from r and parses them.
func LoadReader(r io.Reader, maxSize int) (*Document, error) {
	if r == nil {
		return nil, WrapError(ErrNoDocument, ValidationError, "LoadReader", "nil reader")
	}
	limit := effectiveLimit(maxSize)
	data, err := io.ReadAll(io.LimitReader(r, int64(limit)+1))
	if err != nil {
		return nil, WrapError(err, ParseError, "LoadReader", "reading input")
	}
	return Load(string(data), limit)
}

// FromNode wraps an already parsed tree. The raw markup needed by the text
// miner is rendered from the tree.
func FromNode(root *html.Node, maxSize int) (*Document, error) {
	if root == nil || !hasElements(root) {
		return nil, WrapError(ErrNoDocument, ValidationError, "FromNode", "")
	}
	var buf bytes.Buffer
	if err := html.Render(&buf, root); err != nil {
		return nil, WrapError(err, ParseError, "FromNode", "rendering tree")
	}
	if err := checkSize(buf.Len(), maxSize, "FromNode"); err != nil {
		return nil, err
	}
	return &Document{Root: root, Raw: buf.String()}, nil
}

func checkSize(n, maxSize int, funcName string) error {
	if n == 0 {
		return WrapError(ErrNoDocument, ValidationError, funcName, "")
	}
	if n < MinFileSize {
		return WrapError(ErrDocumentTooSmall, SizeError, funcName, "")
	}
	if n > effectiveLimit(maxSize) {
		return WrapError(ErrDocumentTooLarge, SizeError, funcName, "")
	}
	return nil
}

func effectiveLimit(maxSize int) int {
	if maxSize <= 0 {
		return MaxFileSize
	}
	return maxSize
}

func hasElements(root *html.Node) bool {
	return htmlquery.FindOne(root, "//*") != nil
}
