package fetch

import (
	"fmt"
	"io"
	"net/http"
	"time"
)

// Options configures the HTTP transport.
type Options struct {
	UserAgent      string
	TimeoutSeconds int
}

// DefaultOptions returns sensible defaults.
func DefaultOptions() Options {
	return Options{
		UserAgent:      "slimweb/1.0",
		TimeoutSeconds: 30,
	}
}

// HTTPTransport adapts net/http to the event-hook Transport contract.
// Each exchange runs in its own goroutine and streams the body back as
// data events; the connect and read timeouts of the underlying client
// are the only timeout enforcement in the system.
type HTTPTransport struct {
	client *http.Client
	opts   Options
}

// NewHTTPTransport creates a transport with the given options; zero
// values fall back to DefaultOptions.
func NewHTTPTransport(opts Options) *HTTPTransport {
	defaults := DefaultOptions()
	if opts.UserAgent == "" {
		opts.UserAgent = defaults.UserAgent
	}
	if opts.TimeoutSeconds <= 0 {
		opts.TimeoutSeconds = defaults.TimeoutSeconds
	}
	return &HTTPTransport{
		client: &http.Client{
			Timeout: time.Duration(opts.TimeoutSeconds) * time.Second,
		},
		opts: opts,
	}
}

// Fetch starts one GET exchange without blocking the caller.
func (t *HTTPTransport) Fetch(req Request, gen uint64, sink EventSink) {
	go t.run(req, gen, sink)
}

const readChunkSize = 4096

func (t *HTTPTransport) run(req Request, gen uint64, sink EventSink) {
	httpReq, err := http.NewRequest(http.MethodGet, req.URL, nil)
	if err != nil {
		sink.Deliver(Event{Gen: gen, Kind: EventFailed, Err: fmt.Errorf("%w: %v", ErrConnectionFailed, err)})
		return
	}
	httpReq.Header.Set("User-Agent", t.opts.UserAgent)
	for name, value := range req.Headers {
		httpReq.Header.Set(name, value)
	}

	resp, err := t.client.Do(httpReq)
	if err != nil {
		sink.Deliver(Event{Gen: gen, Kind: EventFailed, Err: fmt.Errorf("%w: %v", ErrConnectionFailed, err)})
		return
	}
	defer resp.Body.Close()

	sink.Deliver(Event{Gen: gen, Kind: EventHeaders, Status: resp.StatusCode})

	buf := make([]byte, readChunkSize)
	for {
		n, err := resp.Body.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			sink.Deliver(Event{Gen: gen, Kind: EventData, Data: chunk})
		}
		if err == io.EOF {
			sink.Deliver(Event{Gen: gen, Kind: EventComplete})
			break
		}
		if err != nil {
			sink.Deliver(Event{Gen: gen, Kind: EventFailed, Err: &TransportError{Message: err.Error()}})
			break
		}
	}

	sink.Deliver(Event{Gen: gen, Kind: EventClosed})
}
