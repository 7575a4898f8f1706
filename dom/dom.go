// Package dom wraps HTML parsing and CSS selector matching behind a
// narrow interface so the rest of the pipeline never depends on a
// particular parser implementation.
package dom

// Document is a parsed page that can be queried with CSS selectors.
type Document interface {
	// Select returns all nodes matching the selector, in document order.
	// An invalid selector yields no nodes.
	Select(selector string) []Node
}

// Node is a single element within a Document. It exposes only what the
// extraction pipeline needs; callers must not assume any further
// capability of the underlying parser.
type Node interface {
	// Text returns the concatenated text content of the node and its
	// descendants, undecoded and uncollapsed.
	Text() string

	// InnerHTML returns the raw markup inside the node.
	InnerHTML() string

	// Attr returns the named attribute value and whether it exists.
	Attr(name string) (string, bool)
}
