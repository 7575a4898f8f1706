// Package fetch drives one asynchronous HTTP exchange at a time as a
// non-blocking state machine. Transport callbacks are absorbed into a
// queue and applied on the next Tick, so all mutation happens on the
// caller's single logical thread.
package fetch

import (
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// State of a fetch job. Done and Error are terminal; the only way out
// of them is starting a brand-new job.
type State int

const (
	Idle State = iota
	WaitingNetwork
	Fetching
	Done
	Error
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case WaitingNetwork:
		return "waiting-network"
	case Fetching:
		return "fetching"
	case Done:
		return "done"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

var (
	// ErrNetworkUnavailable means the network layer has not signalled
	// readiness yet.
	ErrNetworkUnavailable = errors.New("network unavailable")

	// ErrConnectionFailed means the connection could not be created.
	ErrConnectionFailed = errors.New("could not connect")

	// ErrEmptyResponse means the exchange completed without a single
	// body byte. Some devices report success with an empty body, so
	// zero-byte completion is an error, never Done.
	ErrEmptyResponse = errors.New("no data received")
)

// StatusError reports an HTTP-level failure (status 0 or >= 400).
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("server returned status %d", e.Code)
}

// TransportError reports a failure inside the transport after the
// connection was established.
type TransportError struct {
	Message string
}

func (e *TransportError) Error() string {
	return "transport error: " + e.Message
}

// EventKind identifies a transport callback.
type EventKind int

const (
	EventHeaders EventKind = iota
	EventData
	EventComplete
	EventClosed
	EventFailed
)

// Event is one discrete transport message. Gen ties it back to the job
// that caused it; events from a superseded job are dropped unseen.
type Event struct {
	Gen    uint64
	Kind   EventKind
	Status int    // EventHeaders
	Data   []byte // EventData
	Err    error  // EventFailed
}

// EventSink accepts transport events. Deliver must be safe to call
// from other goroutines; the events are applied on the next Tick.
type EventSink interface {
	Deliver(Event)
}

// Request describes one GET exchange.
type Request struct {
	URL     string
	Headers map[string]string
}

// Transport is the external network capability. Fetch must not block:
// it starts the exchange and reports progress through the sink.
type Transport interface {
	Fetch(req Request, gen uint64, sink EventSink)
}

// Job is one in-flight or completed retrieval attempt.
type Job struct {
	URL    string
	Gen    uint64
	State  State
	Status int
	Body   []byte
	Err    error
}

func (j *Job) terminal() bool {
	return j.State == Done || j.State == Error
}

// Machine runs at most one job at a time. Starting a new job silently
// supersedes the previous one; its late callbacks become no-ops.
type Machine struct {
	transport Transport
	log       zerolog.Logger

	mu    sync.Mutex
	queue []Event

	online bool
	gen    uint64
	job    *Job
}

// NewMachine creates a machine over the given transport. The machine
// starts offline; no job leaves WaitingNetwork until SetOnline.
func NewMachine(transport Transport, log zerolog.Logger) *Machine {
	return &Machine{transport: transport, log: log}
}

// Online reports whether the network-readiness signal has fired.
func (m *Machine) Online() bool {
	return m.online
}

// SetOnline records the one-shot network-readiness signal and starts
// any job held in WaitingNetwork.
func (m *Machine) SetOnline() {
	if m.online {
		return
	}
	m.online = true
	m.log.Debug().Msg("network ready")
	if m.job != nil && m.job.State == WaitingNetwork {
		m.begin(m.job)
	}
}

// Start queues a new job for the URL, superseding any current one.
// Exactly one attempt is made per call; retrying is the caller's
// decision.
func (m *Machine) Start(url string) *Job {
	m.gen++
	job := &Job{URL: url, Gen: m.gen, State: Idle}
	m.job = job

	if !m.online {
		job.State = WaitingNetwork
		m.log.Debug().Str("url", url).Msg("fetch held until network is ready")
		return job
	}
	m.begin(job)
	return job
}

func (m *Machine) begin(job *Job) {
	job.State = Fetching
	m.log.Debug().Str("url", job.URL).Uint64("gen", job.Gen).Msg("fetch started")
	m.transport.Fetch(Request{URL: job.URL}, job.Gen, m)
}

// Job returns the current job, which may be nil once consumed.
func (m *Machine) Job() *Job {
	return m.job
}

// Consume returns the current job and forgets it if it has reached a
// terminal state. Callers use this once per completed exchange.
func (m *Machine) Consume() (*Job, bool) {
	if m.job == nil || !m.job.terminal() {
		return nil, false
	}
	job := m.job
	m.job = nil
	return job, true
}

// Deliver queues a transport event for the next Tick.
func (m *Machine) Deliver(ev Event) {
	m.mu.Lock()
	m.queue = append(m.queue, ev)
	m.mu.Unlock()
}

// Tick drains queued events and advances the state machine. It is
// called once per host frame and never blocks.
func (m *Machine) Tick() {
	m.mu.Lock()
	events := m.queue
	m.queue = nil
	m.mu.Unlock()

	for _, ev := range events {
		m.advance(ev)
	}
}

func (m *Machine) advance(ev Event) {
	job := m.job
	if job == nil || ev.Gen != job.Gen || job.terminal() {
		return
	}

	switch ev.Kind {
	case EventHeaders:
		job.Status = ev.Status
		if ev.Status == 0 || ev.Status >= 400 {
			m.fail(job, &StatusError{Code: ev.Status})
		}

	case EventData:
		// Arrival order is stream order; the transport guarantees it.
		job.Body = append(job.Body, ev.Data...)

	case EventComplete:
		if len(job.Body) == 0 {
			m.fail(job, ErrEmptyResponse)
			return
		}
		job.State = Done
		m.log.Debug().Str("url", job.URL).Int("bytes", len(job.Body)).Msg("fetch done")

	case EventClosed:
		// A close with bytes already received counts as completion.
		if len(job.Body) == 0 {
			m.fail(job, fmt.Errorf("%w (connection closed)", ErrEmptyResponse))
			return
		}
		job.State = Done
		m.log.Debug().Str("url", job.URL).Int("bytes", len(job.Body)).Msg("fetch done on close")

	case EventFailed:
		m.fail(job, ev.Err)
	}
}

func (m *Machine) fail(job *Job, err error) {
	job.State = Error
	job.Err = err
	m.log.Warn().Str("url", job.URL).Err(err).Msg("fetch failed")
}
