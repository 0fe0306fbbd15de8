package orgs

import (
	"context"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/apiman/apiman-ui/internal/browser"
	"github.com/apiman/apiman-ui/internal/session"
)

// DefaultCloseDelay is how long a successful delete stays on screen before
// the dialog closes and the browser is redirected.
const DefaultCloseDelay = 800 * time.Millisecond

// State is the lifecycle position of one delete dialog.
type State int

const (
	StateIdle State = iota
	StateEditing
	StateDeleting
	StateSucceeded
	StateClosed
	StateFailed
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateEditing:
		return "editing"
	case StateDeleting:
		return "deleting"
	case StateSucceeded:
		return "succeeded"
	case StateClosed:
		return "closed"
	case StateFailed:
		return "failed"
	case StateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Terminal reports states after which the dialog accepts no more input.
func (s State) Terminal() bool {
	return s == StateClosed || s == StateCancelled
}

type eventKind int

const (
	eventTyped eventKind = iota
	eventConfirm
	eventDeleted
	eventDeleteFailed
	eventDelayElapsed
	eventDismiss
	eventDiscard
)

type event struct {
	kind eventKind
	text string
	err  error
}

type effectKind int

const (
	effectRemove effectKind = iota
	effectSchedule
	effectClose
	effectDismiss
	effectHandleError
)

type effect struct {
	kind effectKind
	err  error
}

// confirmation is the mutable part of a workflow. It only changes through
// transition.
type confirmation struct {
	state   State
	typed   string
	okay    bool
	lastErr error
}

// transition is the single state-transition function of the delete dialog.
// Rejected events return an error and leave the confirmation unchanged;
// completions arriving for a dialog that is no longer deleting are dropped.
func transition(c confirmation, orgName string, ev event) (confirmation, []effect, error) {
	switch ev.kind {
	case eventTyped:
		switch c.state {
		case StateSucceeded, StateClosed, StateCancelled:
			return c, nil, ErrWorkflowClosed
		case StateIdle, StateFailed:
			c.state = StateEditing
		}
		c.typed = ev.text
		c.okay = OkayToDelete(ev.text, orgName)
		return c, nil, nil

	case eventConfirm:
		switch c.state {
		case StateDeleting:
			return c, nil, ErrDeleteInFlight
		case StateSucceeded, StateClosed, StateCancelled:
			return c, nil, ErrWorkflowClosed
		}
		if !c.okay {
			return c, nil, ErrNotConfirmed
		}
		c.state = StateDeleting
		c.lastErr = nil
		return c, []effect{{kind: effectRemove}}, nil

	case eventDeleted:
		if c.state != StateDeleting {
			return c, nil, nil
		}
		c.okay = false
		c.state = StateSucceeded
		return c, []effect{{kind: effectSchedule}}, nil

	case eventDeleteFailed:
		if c.state != StateDeleting {
			return c, nil, nil
		}
		c.state = StateFailed
		c.lastErr = ev.err
		return c, []effect{{kind: effectHandleError, err: ev.err}}, nil

	case eventDelayElapsed:
		if c.state != StateSucceeded {
			return c, nil, nil
		}
		c.state = StateClosed
		return c, []effect{{kind: effectClose}}, nil

	case eventDismiss:
		switch c.state {
		case StateSucceeded, StateClosed, StateCancelled:
			return c, nil, ErrWorkflowClosed
		}
		c.state = StateCancelled
		return c, []effect{{kind: effectDismiss}}, nil

	case eventDiscard:
		if c.state.Terminal() {
			return c, nil, nil
		}
		c.state = StateCancelled
		return c, nil, nil
	}
	return c, nil, nil
}

// WorkflowConfig wires one delete dialog to its collaborators.
type WorkflowConfig struct {
	Organization Organization
	Session      session.Snapshot
	Resource     Resource
	Host         DialogHost
	Navigator    browser.Navigator
	Errors       ErrorHandler
	Clock        clockwork.Clock
	CloseDelay   time.Duration
}

// DeleteWorkflow is one open delete-confirmation dialog.
type DeleteWorkflow struct {
	org       Organization
	redirect  string
	resource  Resource
	host      DialogHost
	navigator browser.Navigator
	errors    ErrorHandler
	clock     clockwork.Clock
	delay     time.Duration

	mu    sync.Mutex
	conf  confirmation
	timer clockwork.Timer
}

func NewDeleteWorkflow(cfg WorkflowConfig) *DeleteWorkflow {
	clock := cfg.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	delay := cfg.CloseDelay
	if delay <= 0 {
		delay = DefaultCloseDelay
	}
	return &DeleteWorkflow{
		org:       cfg.Organization,
		redirect:  OrganizationsPath(cfg.Session.PluginBasePath, cfg.Session.User.Username),
		resource:  cfg.Resource,
		host:      cfg.Host,
		navigator: cfg.Navigator,
		errors:    cfg.Errors,
		clock:     clock,
		delay:     delay,
		conf:      confirmation{state: StateIdle},
	}
}

// OrganizationsPath is the page listing username's organizations.
func OrganizationsPath(pluginBasePath, username string) string {
	return strings.TrimRight(pluginBasePath, "/") + "/users/" + url.PathEscape(username) + "/orgs"
}

func (w *DeleteWorkflow) Organization() Organization {
	return w.org
}

// RedirectPath is where the browser goes once the dialog closes after a delete.
func (w *DeleteWorkflow) RedirectPath() string {
	return w.redirect
}

func (w *DeleteWorkflow) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.conf.state
}

func (w *DeleteWorkflow) OkayToDelete() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.conf.okay
}

func (w *DeleteWorkflow) TypedName() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.conf.typed
}

// LastError is the failure of the most recent delete attempt, if it failed.
func (w *DeleteWorkflow) LastError() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.conf.lastErr
}

// Typed recomputes the gate for the current contents of the confirmation
// field and returns it. Input is ignored once the dialog is finishing.
func (w *DeleteWorkflow) Typed(text string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	next, _, err := transition(w.conf, w.org.Name, event{kind: eventTyped, text: text})
	if err == nil {
		w.conf = next
	}
	return w.conf.okay
}

// Confirm issues the delete. It blocks until the resource call completes.
// Remote failures are routed to the error handler and never returned; the
// returned errors only report why the request was not issued.
func (w *DeleteWorkflow) Confirm(ctx context.Context) error {
	effects, err := w.apply(event{kind: eventConfirm})
	if err != nil {
		return err
	}
	w.run(context.WithoutCancel(ctx), effects)
	return nil
}

// Dismiss cancels the dialog without touching the organization. A delete
// still in flight completes, and its result is dropped.
func (w *DeleteWorkflow) Dismiss() error {
	effects, err := w.apply(event{kind: eventDismiss})
	if err != nil {
		return err
	}
	w.run(context.Background(), effects)
	return nil
}

// Discard abandons the dialog without signalling the host. Pending timers
// are stopped and late completions become no-ops.
func (w *DeleteWorkflow) Discard() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.conf, _, _ = transition(w.conf, w.org.Name, event{kind: eventDiscard})
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
}

func (w *DeleteWorkflow) apply(ev event) ([]effect, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	next, effects, err := transition(w.conf, w.org.Name, ev)
	if err != nil {
		return nil, err
	}
	w.conf = next
	return effects, nil
}

func (w *DeleteWorkflow) run(ctx context.Context, effects []effect) {
	for _, eff := range effects {
		switch eff.kind {
		case effectRemove:
			var next []effect
			var err error
			if rerr := w.resource.Remove(ctx, w.org.ID); rerr != nil {
				next, err = w.apply(event{kind: eventDeleteFailed, err: rerr})
			} else {
				next, err = w.apply(event{kind: eventDeleted})
			}
			if err == nil {
				w.run(ctx, next)
			}
		case effectSchedule:
			w.schedule()
		case effectClose:
			w.host.Close()
			w.navigator.Navigate(w.redirect)
		case effectDismiss:
			w.host.Dismiss("cancel")
		case effectHandleError:
			w.errors.HandleError(eff.err)
		}
	}
}

func (w *DeleteWorkflow) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.conf.state != StateSucceeded {
		return
	}
	w.timer = w.clock.AfterFunc(w.delay, func() {
		effects, err := w.apply(event{kind: eventDelayElapsed})
		if err == nil {
			w.run(context.Background(), effects)
		}
	})
}
