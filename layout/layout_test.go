package layout

import (
	"testing"

	"slimweb/content"
)

// testMeasurer: 10px per rune, 10px line height. Keeps expected
// positions easy to compute by hand.
var testMeasurer = FixedMeasurer{Advance: 10, Height: 10}

func newTestEngine() *Engine {
	return NewEngine(testMeasurer, 100, 240)
}

func TestGreedyWrap(t *testing.T) {
	e := newTestEngine()

	// Five 4-rune words (40px each, 10px gap): two fit per line.
	elements := []content.Element{
		content.Text(content.StylePlain, "aaaa bbbb cccc dddd eeee"),
	}
	page := e.Layout(elements)

	if len(page.Words) != 5 {
		t.Fatalf("expected 5 words, got %d", len(page.Words))
	}

	wantY := []int{0, 0, 10, 10, 20}
	wantX := []int{0, 50, 0, 50, 0}
	for i, word := range page.Words {
		if word.Y != wantY[i] || word.X != wantX[i] {
			t.Errorf("word %d (%q) at (%d,%d), want (%d,%d)",
				i, word.Text, word.X, word.Y, wantX[i], wantY[i])
		}
	}
}

func TestWordNeverSplit(t *testing.T) {
	e := newTestEngine()

	// A 15-rune word is wider than the viewport; it gets its own line.
	page := e.Layout([]content.Element{
		content.Text(content.StylePlain, "short extraordinarily end"),
	})

	if len(page.Words) != 3 {
		t.Fatalf("expected 3 words, got %d", len(page.Words))
	}

	long := page.Words[1]
	if long.W <= 100 {
		t.Fatalf("expected over-wide word, got width %d", long.W)
	}
	if long.X != 0 {
		t.Errorf("over-wide word should start its own line, X = %d", long.X)
	}
	for _, other := range []Word{page.Words[0], page.Words[2]} {
		if other.Y == long.Y {
			t.Errorf("word %q shares a line with the over-wide word", other.Text)
		}
		if other.W > 100 {
			t.Errorf("word %q wider than viewport without being alone", other.Text)
		}
	}
}

func TestEmphasisMarkers(t *testing.T) {
	e := newTestEngine()

	page := e.Layout([]content.Element{
		content.Text(content.StylePlain, "normal *two words* after"),
	})

	if len(page.Words) != 4 {
		t.Fatalf("expected 4 words, got %d", len(page.Words))
	}

	wantStyle := []content.Style{
		content.StylePlain,
		content.StyleEmphasis,
		content.StyleEmphasis,
		content.StylePlain,
	}
	for i, word := range page.Words {
		if word.Style != wantStyle[i] {
			t.Errorf("word %d (%q) style = %v, want %v", i, word.Text, word.Style, wantStyle[i])
		}
	}

	// The delimiter itself is stripped.
	if page.Words[1].Text != "two" || page.Words[2].Text != "words" {
		t.Errorf("markers not stripped: %q, %q", page.Words[1].Text, page.Words[2].Text)
	}
}

func TestButtonBlock(t *testing.T) {
	e := newTestEngine()

	page := e.Layout([]content.Element{
		content.Text(content.StylePlain, "intro"),
		content.Button("Go", "/next"),
		content.Text(content.StylePlain, "after"),
	})

	if len(page.Buttons) != 1 {
		t.Fatalf("expected 1 button, got %d", len(page.Buttons))
	}
	btn := page.Buttons[0]

	if btn.X != 0 {
		t.Errorf("button should start its own line, X = %d", btn.X)
	}
	// Label 2 runes at 10px plus padding either side.
	if btn.W != 20+2*buttonPadX {
		t.Errorf("button width = %d", btn.W)
	}
	if btn.H != 10+2*buttonPadY {
		t.Errorf("button height = %d", btn.H)
	}

	// The following text starts below the button plus its gap.
	after := page.Words[len(page.Words)-1]
	if after.Y < btn.Y+btn.H+buttonGap {
		t.Errorf("text after button at Y=%d overlaps button ending at %d", after.Y, btn.Y+btn.H)
	}
}

func TestButtonWidthCapped(t *testing.T) {
	e := newTestEngine()

	page := e.Layout([]content.Element{
		content.Button("a label much too long for the viewport", "/x"),
	})

	if page.Buttons[0].W != 100 {
		t.Errorf("button width = %d, want capped at 100", page.Buttons[0].W)
	}
}

func TestSpacer(t *testing.T) {
	e := newTestEngine()

	page := e.Layout([]content.Element{
		content.Text(content.StylePlain, "above"),
		content.Spacer(30),
		content.Text(content.StylePlain, "below"),
	})

	above, below := page.Words[0], page.Words[1]
	// Line break + paragraph gap + spacer.
	want := above.Y + 10 + paragraphGap + 30
	if below.Y != want {
		t.Errorf("word below spacer at Y=%d, want %d", below.Y, want)
	}
}

func TestHitTest(t *testing.T) {
	e := newTestEngine()

	page := e.Layout([]content.Element{
		content.LinkedText(content.StylePlain, "click here", "/text-link"),
		content.Button("Go", "/button"),
	})

	// First word of the linked text sits at the origin.
	if target, ok := page.HitTest(5, 5); !ok || target != "/text-link" {
		t.Errorf("HitTest(5,5) = %q, %v", target, ok)
	}

	btn := page.Buttons[0]
	if target, ok := page.HitTest(btn.X+1, btn.Y+1); !ok || target != "/button" {
		t.Errorf("HitTest inside button = %q, %v", target, ok)
	}

	if _, ok := page.HitTest(99, 239); ok {
		t.Error("HitTest in empty space should miss")
	}
}

func TestPlainTextHasNoRegions(t *testing.T) {
	e := newTestEngine()

	page := e.Layout([]content.Element{
		content.Text(content.StylePlain, "nothing to click"),
	})
	if len(page.Regions()) != 0 {
		t.Errorf("expected no regions, got %d", len(page.Regions()))
	}
}

func TestTotalHeightFloorsAtViewport(t *testing.T) {
	e := newTestEngine()

	short := e.Layout([]content.Element{content.Text(content.StylePlain, "tiny")})
	if short.TotalHeight != 240 {
		t.Errorf("short page TotalHeight = %d, want 240", short.TotalHeight)
	}

	empty := e.Layout(nil)
	if empty.TotalHeight != 240 {
		t.Errorf("empty page TotalHeight = %d, want 240", empty.TotalHeight)
	}
	if len(empty.Words) != 0 || len(empty.Buttons) != 0 {
		t.Error("empty page should have no content")
	}
}

func TestLayoutDeterministic(t *testing.T) {
	e := newTestEngine()
	elements := []content.Element{
		content.Text(content.StyleHeading, "Title"),
		content.Text(content.StylePlain, "body text that wraps across lines for sure"),
		content.Button("Next", "/next"),
	}

	a := e.Layout(elements)
	b := e.Layout(elements)

	if len(a.Words) != len(b.Words) || a.TotalHeight != b.TotalHeight {
		t.Fatal("repeated layout differs")
	}
	for i := range a.Words {
		if a.Words[i] != b.Words[i] {
			t.Errorf("word %d differs between runs", i)
		}
	}
}

func TestClampScroll(t *testing.T) {
	page := &Page{TotalHeight: 500}

	cases := []struct {
		offset, viewport, want int
	}{
		{0, 240, 0},
		{-10, 240, 0},
		{100, 240, 100},
		{400, 240, 260},
		{50, 600, 0},
	}
	for _, tc := range cases {
		if got := ClampScroll(page, tc.offset, tc.viewport); got != tc.want {
			t.Errorf("ClampScroll(%d, %d) = %d, want %d", tc.offset, tc.viewport, got, tc.want)
		}
	}
}
