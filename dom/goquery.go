package dom

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Parse builds a Document from raw HTML. Returns false if the markup
// cannot be parsed at all.
func Parse(rawHTML string) (Document, bool) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, false
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, false
	}
	return &document{doc: doc}, true
}

type document struct {
	doc *goquery.Document
}

func (d *document) Select(selector string) []Node {
	var nodes []Node
	d.doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		nodes = append(nodes, &node{sel: s})
	})
	return nodes
}

type node struct {
	sel *goquery.Selection
}

func (n *node) Text() string {
	return n.sel.Text()
}

func (n *node) InnerHTML() string {
	markup, err := n.sel.Html()
	if err != nil {
		return ""
	}
	return markup
}

func (n *node) Attr(name string) (string, bool) {
	return n.sel.Attr(name)
}
