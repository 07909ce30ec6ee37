package payment

import (
	"context"
	"errors"
	"sync"
	"time"

	"k8s.io/utils/clock"
)

const (
	// DefaultMaxRetries is the number of re-queries after the first one, so a
	// session that never reports paid is queried DefaultMaxRetries+1 times.
	DefaultMaxRetries = 5
	// DefaultPollInterval is the fixed wait between two status queries.
	DefaultPollInterval = 2 * time.Second
)

var (
	ErrMissingSessionID = errors.New("missing checkout session id")
	ErrAlreadyStarted   = errors.New("poller already started")
)

type State string

const (
	StateChecking       State = "checking"
	StateSuccess        State = "success"
	StateTimeout        State = "timeout"
	StateError          State = "error"
	StateInvalidSession State = "invalid_session"
)

func (s State) Terminal() bool {
	switch s {
	case StateSuccess, StateTimeout, StateError, StateInvalidSession:
		return true
	}
	return false
}

type PollConfig struct {
	MaxRetries int
	Interval   time.Duration
}

func DefaultPollConfig() PollConfig {
	return PollConfig{
		MaxRetries: DefaultMaxRetries,
		Interval:   DefaultPollInterval,
	}
}

// StatusChecker queries the backend for the payment status of a session.
type StatusChecker interface {
	PaymentStatus(ctx context.Context, sessionID string) (*StatusResult, error)
}

type Transition struct {
	From State
	To   State
	// Attempt is the retry counter after the transition was applied.
	Attempt int
	Queries int
	Result  *StatusResult
	Err     error
}

type Outcome struct {
	State    State
	Queries  int
	Result   *StatusResult
	Err      error
	Canceled bool
}

type Option func(*Poller)

func WithClock(c clock.Clock) Option {
	return func(p *Poller) {
		p.clock = c
	}
}

// WithObserver registers fn to be called on every state transition. It is
// called from the goroutine executing Run and never after Run has returned.
func WithObserver(fn func(Transition)) Option {
	return func(p *Poller) {
		p.observe = fn
	}
}

// Poller drives the payment confirmation state machine for a single checkout
// session. A Poller runs once; create a new one for every page mount.
type Poller struct {
	checker StatusChecker
	cfg     PollConfig
	clock   clock.Clock
	observe func(Transition)

	mu       sync.Mutex
	started  bool
	state    State
	attempts int
}

func NewPoller(checker StatusChecker, cfg PollConfig, opts ...Option) *Poller {
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}

	p := &Poller{
		checker: checker,
		cfg:     cfg,
		clock:   clock.RealClock{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Poller) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

func (p *Poller) Attempts() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.attempts
}

// Run queries the status of sessionID until it is paid, the retries are
// exhausted or a query fails. Queries are strictly sequential. When ctx is
// cancelled Run returns without applying any further transition, and a
// pending re-query never fires.
func (p *Poller) Run(ctx context.Context, sessionID string) Outcome {
	p.mu.Lock()
	if p.started {
		state := p.state
		p.mu.Unlock()
		return Outcome{State: state, Err: ErrAlreadyStarted}
	}
	p.started = true
	p.mu.Unlock()

	if sessionID == "" {
		p.apply(Transition{To: StateInvalidSession, Err: ErrMissingSessionID})
		return Outcome{State: StateInvalidSession, Err: ErrMissingSessionID}
	}

	p.apply(Transition{To: StateChecking})

	queries := 0
	for {
		if ctx.Err() != nil {
			return p.canceled(queries)
		}

		res, err := p.checker.PaymentStatus(ctx, sessionID)
		queries++

		// The query is not preempted, but its result belongs to a defunct run.
		if ctx.Err() != nil {
			return p.canceled(queries)
		}

		switch {
		case err != nil:
			p.apply(Transition{To: StateError, Queries: queries, Err: err})
			return Outcome{State: StateError, Queries: queries, Err: err}
		case res.Paid():
			p.apply(Transition{To: StateSuccess, Queries: queries, Result: res})
			return Outcome{State: StateSuccess, Queries: queries, Result: res}
		case p.Attempts() >= p.cfg.MaxRetries:
			p.apply(Transition{To: StateTimeout, Queries: queries, Result: res})
			return Outcome{State: StateTimeout, Queries: queries, Result: res}
		}

		p.mu.Lock()
		p.attempts++
		p.mu.Unlock()
		p.apply(Transition{To: StateChecking, Queries: queries, Result: res})

		timer := p.clock.NewTimer(p.cfg.Interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return p.canceled(queries)
		case <-timer.C():
		}
	}
}

func (p *Poller) apply(tr Transition) {
	p.mu.Lock()
	tr.From = p.state
	tr.Attempt = p.attempts
	p.state = tr.To
	p.mu.Unlock()

	if p.observe != nil {
		p.observe(tr)
	}
}

func (p *Poller) canceled(queries int) Outcome {
	return Outcome{
		State:    p.State(),
		Queries:  queries,
		Canceled: true,
	}
}
