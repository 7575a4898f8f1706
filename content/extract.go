package content

import (
	"errors"
	"sort"
	"strings"
	"sync"

	"slimweb/dom"
	"slimweb/rules"
)

var (
	// ErrParseFailed means the document could not be parsed at all.
	ErrParseFailed = errors.New("page could not be parsed")

	// ErrNoContent means all extraction passes produced zero elements.
	ErrNoContent = errors.New("no extractable content")
)

// Handler is the escape hatch for site-specific structural extraction
// beyond simple selector lists. It runs after the declarative passes
// and returns elements to append; it can never reorder or remove
// what the selectors already produced.
type Handler func(doc dom.Document) []Element

var (
	handlersMu sync.RWMutex
	handlers   = map[string]Handler{}
)

// RegisterHandler makes a custom handler available to rules under the
// given name. Registering the same name twice replaces the handler.
func RegisterHandler(name string, h Handler) {
	handlersMu.Lock()
	defer handlersMu.Unlock()
	handlers[name] = h
}

// Handlers returns the registered handler names, sorted.
func Handlers() []string {
	handlersMu.RLock()
	defer handlersMu.RUnlock()
	names := make([]string, 0, len(handlers))
	for name := range handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func lookupHandler(name string) Handler {
	handlersMu.RLock()
	defer handlersMu.RUnlock()
	return handlers[name]
}

// Extract applies a rule's selectors to a parsed document, producing
// typed elements in document order. The output is deterministic: the
// same document and rule always yield the same sequence.
func Extract(doc dom.Document, rule *rules.Rule) ([]Element, error) {
	if doc == nil {
		return nil, ErrParseFailed
	}

	var out []Element

	for _, sel := range rule.TextSelectors {
		style := styleFor(sel.Style)
		for _, node := range doc.Select(sel.Query) {
			text, ok := Normalize(node.Text())
			if !ok {
				continue
			}
			out = append(out, Text(style, text))
		}
	}

	linkAttr := rule.LinkAttr
	if linkAttr == "" {
		linkAttr = "href"
	}
	for _, query := range rule.ButtonSelectors {
		for _, node := range doc.Select(query) {
			label, ok := Normalize(node.Text())
			if !ok {
				continue
			}
			target, exists := node.Attr(linkAttr)
			target = strings.TrimSpace(target)
			if !exists || target == "" {
				continue
			}
			out = append(out, Button(label, target))
		}
	}

	if rule.Handler != "" {
		if h := lookupHandler(rule.Handler); h != nil {
			out = append(out, h(doc)...)
		}
	}

	if len(out) == 0 {
		return nil, ErrNoContent
	}
	return out, nil
}

// ExtractHTML parses raw markup and extracts in one step.
func ExtractHTML(rawHTML string, rule *rules.Rule) ([]Element, error) {
	doc, ok := dom.Parse(rawHTML)
	if !ok {
		return nil, ErrParseFailed
	}
	return Extract(doc, rule)
}

func styleFor(name string) Style {
	switch name {
	case "heading":
		return StyleHeading
	case "emphasis":
		return StyleEmphasis
	default:
		return StylePlain
	}
}
