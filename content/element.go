// Package content turns parsed documents into an ordered sequence of
// typed elements according to per-site extraction rules.
package content

// Style classifies how a text element should be drawn.
type Style int

const (
	StylePlain Style = iota
	StyleHeading
	StyleEmphasis
)

// Kind tags the element variant.
type Kind int

const (
	KindText Kind = iota
	KindButton
	KindSpacer
)

// Element is one unit of extracted content. Elements are produced in
// document order; the order is significant and is never changed after
// extraction. An Element is immutable once created.
type Element struct {
	Kind  Kind
	Style Style
	Text  string // text content, or button label
	URL   string // link target for buttons and linked text
	Size  int    // vertical advance for spacers
}

// Text creates a text element.
func Text(style Style, text string) Element {
	return Element{Kind: KindText, Style: style, Text: text}
}

// LinkedText creates a text element that carries a link target.
func LinkedText(style Style, text, url string) Element {
	return Element{Kind: KindText, Style: style, Text: text, URL: url}
}

// Button creates a button element pointing at a URL.
func Button(label, url string) Element {
	return Element{Kind: KindButton, Text: label, URL: url}
}

// Spacer creates a vertical gap of the given size.
func Spacer(size int) Element {
	return Element{Kind: KindSpacer, Size: size}
}
