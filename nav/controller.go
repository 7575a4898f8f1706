// Package nav orchestrates navigation: it resolves URLs, keeps the
// history stack, and runs the fetch, extract and layout pipeline for
// each user action. Everything advances from a single Tick per host
// frame; nothing here blocks.
package nav

import (
	"errors"
	"net/url"

	"github.com/rs/zerolog"

	"slimweb/content"
	"slimweb/dom"
	"slimweb/fetch"
	"slimweb/layout"
	"slimweb/rules"
)

// State of the current navigation request.
type State int

const (
	Idle State = iota
	Loading
	Loaded
	Failed
)

var (
	// ErrInvalidURL means the target could not be parsed as an
	// absolute http or https URL.
	ErrInvalidURL = errors.New("invalid address")

	// ErrNoMatchingRule means no rule in the table matched the URL.
	ErrNoMatchingRule = errors.New("no extraction rule matches this site")
)

// Config assembles a Controller. Zero values get working defaults.
type Config struct {
	// Rules is the site rule table, evaluated in order. Nil means
	// rules.Builtin().
	Rules []rules.Rule

	// Transport handles network exchanges. Nil means an HTTP
	// transport built from FetchOptions.
	Transport fetch.Transport

	// FetchOptions configures the default HTTP transport.
	FetchOptions fetch.Options

	// Measurer supplies font metrics for layout; nil uses a fixed-
	// advance fallback.
	Measurer layout.Measurer

	// Viewport dimensions in pixels. Zero means 400x240.
	ViewportWidth  int
	ViewportHeight int

	// Logger for state transitions. Nil logs nothing.
	Logger *zerolog.Logger
}

// Controller owns all navigation state explicitly; there are no
// package-level globals, so hosts can run several instances.
type Controller struct {
	log     zerolog.Logger
	rules   []rules.Rule
	machine *fetch.Machine
	engine  *layout.Engine

	state       State
	currentURL  string
	pendingURL  string
	pendingRule *rules.Rule
	pendingPush bool
	history     []string

	page             *layout.Page
	scroll           int
	cursorX, cursorY int
	status           string
}

// New creates a Controller. The controller starts offline: Navigate
// calls are held until SetOnline reports network readiness.
func New(cfg Config) *Controller {
	log := zerolog.Nop()
	if cfg.Logger != nil {
		log = *cfg.Logger
	}

	ruleSet := cfg.Rules
	if ruleSet == nil {
		ruleSet = rules.Builtin()
	}

	transport := cfg.Transport
	if transport == nil {
		transport = fetch.NewHTTPTransport(cfg.FetchOptions)
	}

	width, height := cfg.ViewportWidth, cfg.ViewportHeight
	if width <= 0 {
		width = 400
	}
	if height <= 0 {
		height = 240
	}

	engine := layout.NewEngine(cfg.Measurer, width, height)
	c := &Controller{
		log:     log,
		rules:   ruleSet,
		machine: fetch.NewMachine(transport, log),
		engine:  engine,
	}
	// The renderer contract is total: there is always a Page, even
	// before the first load and after a failure.
	c.page = engine.Layout(nil)
	return c
}

// SetOnline forwards the one-shot network-readiness signal.
func (c *Controller) SetOnline() {
	c.machine.SetOnline()
	if c.state == Loading {
		c.status = "loading"
	}
}

// Navigate starts loading a URL. A fetch already in flight is
// superseded; its late events become no-ops.
func (c *Controller) Navigate(rawURL string) {
	c.navigate(rawURL, true)
}

// Back pops the most recent history entry and navigates to it without
// pushing a new entry. With empty history it only sets the status.
func (c *Controller) Back() {
	if len(c.history) == 0 {
		c.status = "no previous page"
		return
	}
	last := c.history[len(c.history)-1]
	c.history = c.history[:len(c.history)-1]
	c.navigate(last, false)
}

func (c *Controller) navigate(rawURL string, push bool) {
	if !validURL(rawURL) {
		c.fail(ErrInvalidURL)
		return
	}

	rule, ok := rules.Match(rawURL, c.rules)
	if !ok {
		c.fail(ErrNoMatchingRule)
		return
	}

	c.pendingURL = rawURL
	c.pendingRule = rule
	c.pendingPush = push
	c.state = Loading
	c.status = "loading"

	job := c.machine.Start(rawURL)
	if job.State == fetch.WaitingNetwork {
		c.status = statusText(fetch.ErrNetworkUnavailable)
	}
	c.log.Info().Str("url", rawURL).Str("rule", rule.Name).Msg("navigate")
}

// Tick advances the fetch machine and, when an exchange finishes, runs
// extraction and layout. Hosts call this once per frame.
func (c *Controller) Tick() {
	c.machine.Tick()

	job, ok := c.machine.Consume()
	if !ok {
		return
	}
	if job.URL != c.pendingURL {
		return
	}
	if job.State == fetch.Error {
		c.fail(job.Err)
		return
	}
	c.completeLoad(job)
}

func (c *Controller) completeLoad(job *fetch.Job) {
	doc, ok := dom.Parse(string(job.Body))
	if !ok {
		c.fail(content.ErrParseFailed)
		return
	}

	elements, err := content.Extract(doc, c.pendingRule)
	if err != nil {
		c.fail(err)
		return
	}

	// History grows only when a new forward navigation succeeds, never
	// on back navigation, a retry of the same URL, or a failed load.
	if c.pendingPush && c.currentURL != "" && c.currentURL != c.pendingURL {
		c.history = append(c.history, c.currentURL)
	}

	c.page = c.engine.Layout(elements)
	c.currentURL = c.pendingURL
	c.state = Loaded
	c.scroll = 0
	c.status = c.currentURL
	c.log.Info().Str("url", c.currentURL).Int("elements", len(elements)).Msg("page loaded")
}

// fail replaces the page with an empty one so the renderer always has
// something to draw, and surfaces a short status string.
func (c *Controller) fail(err error) {
	c.state = Failed
	c.status = statusText(err)
	c.page = c.engine.Layout(nil)
	c.scroll = 0
	c.log.Warn().Err(err).Msg("navigation failed")
}

// Activate follows the link under the cursor, if any. Returns the
// resolved target, or false when nothing interactive is there.
func (c *Controller) Activate() (string, bool) {
	target, ok := c.page.HitTest(c.cursorX, c.cursorY+c.scroll)
	if !ok {
		return "", false
	}
	resolved := ResolveLink(c.currentURL, target)
	c.Navigate(resolved)
	return resolved, true
}

// ScrollBy moves the viewport, clamped to the page.
func (c *Controller) ScrollBy(delta int) {
	c.scroll = layout.ClampScroll(c.page, c.scroll+delta, c.engine.ViewportHeight())
}

// SetCursor places the selection cursor in viewport coordinates.
func (c *Controller) SetCursor(x, y int) {
	c.cursorX, c.cursorY = x, y
}

// Cursor returns the selection cursor position.
func (c *Controller) Cursor() (x, y int) {
	return c.cursorX, c.cursorY
}

// Page returns the current page model. Never nil.
func (c *Controller) Page() *layout.Page {
	return c.page
}

// State returns the state of the current navigation request.
func (c *Controller) State() State {
	return c.state
}

// Status returns the short human-readable status line.
func (c *Controller) Status() string {
	return c.status
}

// CurrentURL returns the URL of the last successfully loaded page.
func (c *Controller) CurrentURL() string {
	return c.currentURL
}

// History returns a copy of the back stack, oldest first.
func (c *Controller) History() []string {
	out := make([]string, len(c.history))
	copy(out, c.history)
	return out
}

// ScrollOffset returns the current scroll position.
func (c *Controller) ScrollOffset() int {
	return c.scroll
}

func validURL(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// statusText maps every failure in the error taxonomy to a short
// user-visible message. All of them are recoverable: the only retry
// path is the caller navigating again.
func statusText(err error) string {
	var statusErr *fetch.StatusError
	var transportErr *fetch.TransportError

	switch {
	case errors.Is(err, ErrInvalidURL):
		return "invalid address"
	case errors.Is(err, ErrNoMatchingRule):
		return "no rule for this site"
	case errors.Is(err, fetch.ErrNetworkUnavailable):
		return "network unavailable"
	case errors.Is(err, fetch.ErrConnectionFailed):
		return "could not connect"
	case errors.As(err, &statusErr):
		return statusErr.Error()
	case errors.Is(err, fetch.ErrEmptyResponse):
		return "no data received"
	case errors.Is(err, content.ErrParseFailed):
		return "page could not be parsed"
	case errors.Is(err, content.ErrNoContent):
		return "nothing to show on this page"
	case errors.As(err, &transportErr):
		return transportErr.Error()
	case err == nil:
		return ""
	default:
		return err.Error()
	}
}
