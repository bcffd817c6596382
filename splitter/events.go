package splitter

import "fmt"

// EventKind discriminates the events a run emits.
type EventKind int

const (
	// EventInfo carries a human-readable status line.
	EventInfo EventKind = iota

	// EventProgress carries a completion fraction in [0.0, 1.0].
	EventProgress

	// EventIndeterminateStart marks the beginning of a phase whose
	// duration is unknown (probing, an in-flight encode).
	EventIndeterminateStart

	// EventIndeterminateStop ends an indeterminate phase.
	EventIndeterminateStop

	// EventCompleted is terminal; Outcome is set.
	EventCompleted

	// EventFailed is terminal; Err is set.
	EventFailed
)

// Event is an immutable progress/status notification.
type Event struct {
	Kind     EventKind
	Message  string
	Fraction float64
	Outcome  *Outcome
	Err      error
}

// Reporter carries events from the worker to whatever consumes them
// (a UI, a log stream, a test harness).
//
// The worker never blocks on a slow consumer: progress-class events are
// dropped when the buffer is full. Terminal events are always sent;
// consumers must drain the stream so those sends can complete.
type Reporter struct {
	ch chan Event
}

// NewReporter creates a Reporter with the given buffer size.
// A non-positive size selects the default of 64.
func NewReporter(buffer int) *Reporter {
	if buffer <= 0 {
		buffer = 64
	}
	return &Reporter{ch: make(chan Event, buffer)}
}

// Events returns the stream consumed by the UI/log side.
// The channel is closed by Close once the run has ended.
func (r *Reporter) Events() <-chan Event {
	return r.ch
}

// Close closes the event stream. Call only after the run has returned.
func (r *Reporter) Close() {
	close(r.ch)
}

// post delivers a droppable event without ever blocking the worker.
func (r *Reporter) post(ev Event) {
	select {
	case r.ch <- ev:
	default:
	}
}

func (r *Reporter) infof(format string, args ...any) {
	r.post(Event{Kind: EventInfo, Message: fmt.Sprintf(format, args...)})
}

func (r *Reporter) progress(fraction float64) {
	r.post(Event{Kind: EventProgress, Fraction: fraction})
}

func (r *Reporter) indeterminateStart() {
	r.post(Event{Kind: EventIndeterminateStart})
}

func (r *Reporter) indeterminateStop() {
	r.post(Event{Kind: EventIndeterminateStop})
}

func (r *Reporter) completed(outcome *Outcome) {
	r.ch <- Event{Kind: EventCompleted, Outcome: outcome}
}

func (r *Reporter) failed(err error) {
	r.ch <- Event{Kind: EventFailed, Err: err, Message: err.Error()}
}
