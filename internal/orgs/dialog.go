package orgs

import "sync"

// Outcome is how a dialog ended.
type Outcome int

const (
	OutcomeOpen Outcome = iota
	OutcomeClosed
	OutcomeDismissed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeClosed:
		return "closed"
	case OutcomeDismissed:
		return "dismissed"
	default:
		return "open"
	}
}

// Dialog is a DialogHost that records the first close or dismissal.
// Later signals are ignored.
type Dialog struct {
	mu      sync.Mutex
	outcome Outcome
	reason  string
	signals int
	done    chan struct{}
}

func NewDialog() *Dialog {
	return &Dialog{done: make(chan struct{})}
}

func (d *Dialog) Close() {
	d.finish(OutcomeClosed, "")
}

func (d *Dialog) Dismiss(reason string) {
	d.finish(OutcomeDismissed, reason)
}

// Outcome returns how the dialog ended and the dismissal reason, if any.
func (d *Dialog) Outcome() (Outcome, string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.outcome, d.reason
}

// Signals counts every Close and Dismiss call, including ignored ones.
func (d *Dialog) Signals() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.signals
}

// Done is closed once the dialog has ended.
func (d *Dialog) Done() <-chan struct{} {
	return d.done
}

func (d *Dialog) finish(outcome Outcome, reason string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.signals++
	if d.outcome != OutcomeOpen {
		return
	}
	d.outcome = outcome
	d.reason = reason
	close(d.done)
}
