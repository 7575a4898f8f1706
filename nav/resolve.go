package nav

import "net/url"

// ResolveLink resolves an href against a base URL. Absolute hrefs pass
// through unchanged; scheme-relative and root-relative hrefs resolve
// against the base's origin; path-relative hrefs resolve against the
// base's directory. Malformed combinations degrade to the raw href
// rather than failing.
func ResolveLink(base, href string) string {
	if href == "" {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	if ref.IsAbs() {
		return href
	}
	b, err := url.Parse(base)
	if err != nil || b.Scheme == "" {
		return href
	}
	return b.ResolveReference(ref).String()
}
