package rules

// Builtin returns the default rule table for sites known to work well
// on a small text display. The final catch-all article rule means a
// URL always has some rule; hosts that want stricter behavior can
// supply their own table without it.
func Builtin() []Rule {
	return []Rule{
		{
			Name:            "hacker-news",
			URLPattern:      "news.ycombinator.com",
			ButtonSelectors: []string{".titleline > a"},
		},
		{
			Name:            "lobsters",
			URLPattern:      "lobste.rs",
			ButtonSelectors: []string{".link > a.u-url"},
		},
		{
			Name:       "npr-text",
			URLPattern: "text.npr.org",
			TextSelectors: []Selector{
				{Query: "h1", Style: "heading"},
				{Query: "p:not(.slug-line)"},
			},
			ButtonSelectors: []string{"ul > li > a"},
		},
		{
			Name:       "cnn-lite",
			URLPattern: "lite.cnn.com",
			TextSelectors: []Selector{
				{Query: "h1", Style: "heading"},
				{Query: ".paragraph--lite"},
			},
			ButtonSelectors: []string{".card--lite a"},
		},
		{
			Name:       "wikipedia",
			URLPattern: "*.wikipedia.org/wiki/*",
			TextSelectors: []Selector{
				{Query: "h1", Style: "heading"},
				{Query: "#mw-content-text > div > p"},
			},
		},
		{
			Name:       "article",
			URLPattern: "*",
			TextSelectors: []Selector{
				{Query: "h1", Style: "heading"},
				{Query: "h2", Style: "heading"},
				{Query: "article p, main p"},
			},
			ButtonSelectors: []string{"article a, main li a"},
		},
	}
}
