// Package rules defines per-site extraction rules and selects the
// applicable rule for a URL. Rules are plain configuration data; they
// tell the content extractor which selectors to run, not how.
package rules

import (
	"fmt"
	"strings"

	"github.com/andybalholm/cascadia"
)

// Rule describes how to extract content for sites whose URLs match its
// pattern. Rules are evaluated in slice order and the first match wins,
// so more specific patterns must be listed before general ones that
// would otherwise shadow them.
type Rule struct {
	// Name is a human-readable identifier, used for logging.
	Name string `json:"name" yaml:"name"`

	// URLPattern is matched case-insensitively against the full URL.
	// A bare string matches as a substring; "*" acts as a wildcard.
	URLPattern string `json:"url_pattern" yaml:"url_pattern"`

	// TextSelectors are run in order; each matching node becomes a
	// text element.
	TextSelectors []Selector `json:"text_selectors,omitempty" yaml:"text_selectors,omitempty"`

	// ButtonSelectors are run after the text selectors; each matching
	// node with a label and a link target becomes a button.
	ButtonSelectors []string `json:"button_selectors,omitempty" yaml:"button_selectors,omitempty"`

	// LinkAttr names the attribute holding a button's link target.
	// Empty means "href".
	LinkAttr string `json:"link_attr,omitempty" yaml:"link_attr,omitempty"`

	// Handler optionally names a registered custom extraction handler
	// that runs after the declarative selectors. Referencing handlers
	// by name keeps rule files pure data.
	Handler string `json:"handler,omitempty" yaml:"handler,omitempty"`
}

// Selector pairs a CSS query with an optional display style for the
// text it extracts ("heading", "emphasis", or empty for plain).
type Selector struct {
	Query string `json:"query" yaml:"query"`
	Style string `json:"style,omitempty" yaml:"style,omitempty"`
}

// Match returns the first rule in the set whose pattern matches the
// URL. A miss is a normal outcome, not a failure.
func Match(url string, set []Rule) (*Rule, bool) {
	for i := range set {
		if set[i].MatchURL(url) {
			return &set[i], true
		}
	}
	return nil, false
}

// MatchURL reports whether the rule's pattern matches the URL.
func (r *Rule) MatchURL(url string) bool {
	return matchPattern(r.URLPattern, url)
}

// Validate checks that every selector in the rule compiles. Invalid
// selectors would silently match nothing at extraction time, so rule
// tables are validated up front instead.
func (r *Rule) Validate() error {
	for _, sel := range r.TextSelectors {
		if _, err := cascadia.ParseGroup(sel.Query); err != nil {
			return fmt.Errorf("rule %q: text selector %q: %w", r.Name, sel.Query, err)
		}
	}
	for _, query := range r.ButtonSelectors {
		if _, err := cascadia.ParseGroup(query); err != nil {
			return fmt.Errorf("rule %q: button selector %q: %w", r.Name, query, err)
		}
	}
	return nil
}

// matchPattern does a case-insensitive substring match, with "*"
// matching any run of characters. The match is unanchored at both ends.
func matchPattern(pattern, s string) bool {
	if pattern == "" {
		return false
	}
	pattern = strings.ToLower(pattern)
	s = strings.ToLower(s)

	if !strings.Contains(pattern, "*") {
		return strings.Contains(s, pattern)
	}

	pos := 0
	for _, part := range strings.Split(pattern, "*") {
		if part == "" {
			continue
		}
		i := strings.Index(s[pos:], part)
		if i < 0 {
			return false
		}
		pos += i + len(part)
	}
	return true
}
