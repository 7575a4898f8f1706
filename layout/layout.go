// Package layout converts typed content elements into a positioned,
// word-wrapped page model with interactive regions. Layout is pure and
// re-entrant: it holds no cross-call state, so it can re-run on every
// content change and always produce the same page for the same input.
package layout

import (
	"strings"

	"slimweb/content"
)

// Word is one positioned word on a page, read-only once computed.
type Word struct {
	Text   string
	Style  content.Style
	X, Y   int
	W, H   int
	Target string // link target, empty for plain text
}

// Button is a block-level interactive element.
type Button struct {
	Label  string
	X, Y   int
	W, H   int
	Target string
}

// Region is a rectangle associated with a navigable target.
type Region struct {
	X, Y   int
	W, H   int
	Target string
}

// Page is the fully laid-out representation of a content sequence.
// A new Page replaces the previous one wholesale on every load; there
// is no incremental patching.
type Page struct {
	Words       []Word
	Buttons     []Button
	TotalHeight int

	regions []Region
}

// HitTest returns the target of the interactive region containing the
// point. Regions are checked in placement order, so if rectangles ever
// overlapped the first one placed would win.
func (p *Page) HitTest(x, y int) (string, bool) {
	for _, r := range p.regions {
		if x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H {
			return r.Target, true
		}
	}
	return "", false
}

// Regions returns the interactive regions in placement order.
func (p *Page) Regions() []Region {
	return p.regions
}

// ClampScroll limits a scroll offset to the page's scrollable range.
func ClampScroll(p *Page, offset, viewportHeight int) int {
	max := p.TotalHeight - viewportHeight
	if max < 0 {
		max = 0
	}
	if offset > max {
		offset = max
	}
	if offset < 0 {
		offset = 0
	}
	return offset
}

// Measurer supplies text metrics. The engine never talks to a font or
// a draw surface directly; hosts with real font data plug in here.
type Measurer interface {
	// WordWidth returns the rendered width of a word in pixels.
	WordWidth(text string, style content.Style) int

	// LineHeight returns the height of one text line in pixels.
	LineHeight() int
}

// FixedMeasurer measures with a constant per-rune advance, matching a
// monospaced bitmap font. Headings use a slightly wider advance.
type FixedMeasurer struct {
	Advance int
	Height  int
}

func (m FixedMeasurer) WordWidth(text string, style content.Style) int {
	advance := m.Advance
	if style == content.StyleHeading {
		advance += 2
	}
	count := 0
	for range text {
		count++
	}
	return count * advance
}

func (m FixedMeasurer) LineHeight() int {
	return m.Height
}

// Layout spacing constants, in pixels.
const (
	buttonPadX     = 6
	buttonPadY     = 3
	buttonGap      = 8
	paragraphGap   = 4
	trailingMargin = 12
)

// Engine lays out content elements for a fixed viewport.
type Engine struct {
	measurer Measurer
	width    int
	height   int
}

// NewEngine creates an engine for the given viewport. A nil measurer
// falls back to a 6x16 fixed-advance font.
func NewEngine(m Measurer, viewportWidth, viewportHeight int) *Engine {
	if m == nil {
		m = FixedMeasurer{Advance: 6, Height: 16}
	}
	return &Engine{measurer: m, width: viewportWidth, height: viewportHeight}
}

// ViewportWidth returns the layout width in pixels.
func (e *Engine) ViewportWidth() int { return e.width }

// ViewportHeight returns the viewport height in pixels.
func (e *Engine) ViewportHeight() int { return e.height }

// Layout walks the elements in order and produces a Page. Words wrap
// greedily: a word moves to the next line when it no longer fits, and
// a word wider than the whole viewport is placed alone on its own line
// rather than dropped. A nil or empty element list yields an empty
// page that still fills the viewport.
func (e *Engine) Layout(elements []content.Element) *Page {
	page := &Page{}
	lineH := e.measurer.LineHeight()
	space := e.measurer.WordWidth(" ", content.StylePlain)

	x, y := 0, 0
	breakLine := func() {
		if x > 0 {
			x = 0
			y += lineH
		}
	}

	for _, el := range elements {
		switch el.Kind {
		case content.KindSpacer:
			breakLine()
			y += el.Size

		case content.KindText:
			for _, tok := range tokenize(el.Text, el.Style) {
				w := e.measurer.WordWidth(tok.text, tok.style)
				if x > 0 && x+space+w > e.width {
					x = 0
					y += lineH
				}
				wx := x
				if x > 0 {
					wx = x + space
				}
				word := Word{
					Text:   tok.text,
					Style:  tok.style,
					X:      wx,
					Y:      y,
					W:      w,
					H:      lineH,
					Target: el.URL,
				}
				page.Words = append(page.Words, word)
				if el.URL != "" {
					page.regions = append(page.regions, Region{X: wx, Y: y, W: w, H: lineH, Target: el.URL})
				}
				x = wx + w
			}
			breakLine()
			y += paragraphGap

		case content.KindButton:
			// Buttons never participate in word wrap; they always
			// start their own line.
			breakLine()
			w := e.measurer.WordWidth(el.Text, content.StylePlain) + 2*buttonPadX
			if w > e.width {
				w = e.width
			}
			h := lineH + 2*buttonPadY
			page.Buttons = append(page.Buttons, Button{Label: el.Text, X: 0, Y: y, W: w, H: h, Target: el.URL})
			page.regions = append(page.regions, Region{X: 0, Y: y, W: w, H: h, Target: el.URL})
			y += h + buttonGap
		}
	}

	total := y + trailingMargin
	if total < e.height {
		// Short pages still fill the viewport instead of collapsing.
		total = e.height
	}
	page.TotalHeight = total
	return page
}

type token struct {
	text  string
	style content.Style
}

// tokenize splits text into words and strips the *...* emphasis
// delimiter pair into a per-word style tag.
func tokenize(text string, base content.Style) []token {
	var tokens []token
	emphasis := false

	for _, field := range strings.Fields(text) {
		word := field
		if len(word) > 1 && strings.HasPrefix(word, "*") {
			emphasis = true
			word = word[1:]
		}
		closing := false
		if len(word) > 1 && strings.HasSuffix(word, "*") {
			closing = true
			word = word[:len(word)-1]
		}

		style := base
		if emphasis && base == content.StylePlain {
			style = content.StyleEmphasis
		}
		if closing {
			emphasis = false
		}
		tokens = append(tokens, token{text: word, style: style})
	}

	return tokens
}
