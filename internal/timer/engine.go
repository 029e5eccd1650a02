package timer

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/alexanderramin/focusboard/internal/domain"
)

// Notification text shown when a countdown finishes.
const (
	NotifyTitle     = "Pomodoro Timer"
	NotifyFocusDone = "Great job! Take a break."
	NotifyBreakDone = "Break time is over. Ready to focus?"
)

// TickResult reports what a single Tick did.
type TickResult struct {
	Completed bool
	From      domain.Mode
	To        domain.Mode
}

// Engine is the countdown state machine. Every method runs to completion
// under the engine lock, so a ticker goroutine and UI handlers never observe
// a half-applied transition.
type Engine struct {
	mu        sync.Mutex
	settings  domain.TimerSettings
	state     domain.TimerState
	sound     Sound
	notifier  Notifier
	observers []Observer
	dispatch  func(func())
	inflight  sync.WaitGroup
	now       func() time.Time
	logger    *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

func WithSound(s Sound) Option {
	return func(e *Engine) {
		if s != nil {
			e.sound = s
		}
	}
}

func WithNotifier(n Notifier) Option {
	return func(e *Engine) {
		if n != nil {
			e.notifier = n
		}
	}
}

func WithObserver(o Observer) Option {
	return func(e *Engine) {
		if o != nil {
			e.observers = append(e.observers, o)
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithSyncEffects runs sound and notification calls inline instead of on a
// new goroutine. Tests use it to assert on fakes deterministically.
func WithSyncEffects() Option {
	return func(e *Engine) {
		e.dispatch = func(f func()) { f() }
	}
}

// NewEngine builds an engine in the initial state: focus, paused, full
// focus duration. settings are clamped.
func NewEngine(settings domain.TimerSettings, opts ...Option) *Engine {
	settings = settings.Clamp()
	e := &Engine{
		settings: settings,
		state:    domain.NewTimerState(settings),
		sound:    NopSound{},
		notifier: NopNotifier{},
		now:      time.Now,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	e.dispatch = e.goDispatch
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) goDispatch(f func()) {
	e.inflight.Add(1)
	go func() {
		defer e.inflight.Done()
		f()
	}()
}

// Wait blocks until every sound and notification already dispatched has
// returned, or ctx ends. Callers that exit right after a completion use it
// so the process does not outlive its own notification.
func (e *Engine) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		e.inflight.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// AddObserver registers o for completion events.
func (e *Engine) AddObserver(o Observer) {
	if o == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.observers = append(e.observers, o)
}

// Start begins counting down and plays the start cue. Starting a running
// timer does nothing.
func (e *Engine) Start() {
	e.mu.Lock()
	if e.state.IsRunning {
		e.mu.Unlock()
		return
	}
	e.state.IsRunning = true
	e.mu.Unlock()

	e.attempt("sound", func() error { return e.sound.Play(CueStart) })
}

// Pause stops the countdown without touching the remaining time.
func (e *Engine) Pause() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state.IsRunning = false
}

// Toggle starts a paused timer or pauses a running one and reports whether
// the timer is now running.
func (e *Engine) Toggle() bool {
	e.mu.Lock()
	e.state.IsRunning = !e.state.IsRunning
	running := e.state.IsRunning
	e.mu.Unlock()

	if running {
		e.attempt("sound", func() error { return e.sound.Play(CueStart) })
	}
	return running
}

// Tick advances a running timer by one second. When the countdown reaches
// zero the engine stops, transitions to the next mode with a full duration,
// fires the completion cue and notification, and notifies observers.
// Ticking a paused timer is a no-op.
func (e *Engine) Tick() TickResult {
	e.mu.Lock()
	if !e.state.IsRunning {
		e.mu.Unlock()
		return TickResult{}
	}
	if e.state.SecondsRemaining > 0 {
		e.state.SecondsRemaining--
	}
	if e.state.SecondsRemaining > 0 {
		e.mu.Unlock()
		return TickResult{}
	}

	from := e.state.Mode
	completion := Completion{
		From:    from,
		Minutes: e.settings.Minutes(from),
		At:      e.now(),
	}
	e.state.IsRunning = false
	if from == domain.ModeFocus {
		e.state.CompletedFocusSessions++
	}
	to := domain.NextMode(from, e.state.CompletedFocusSessions)
	e.setMode(to)
	completion.To = to
	completion.CompletedFocusSessions = e.state.CompletedFocusSessions
	observers := append([]Observer(nil), e.observers...)
	e.mu.Unlock()

	body := NotifyBreakDone
	if from == domain.ModeFocus {
		body = NotifyFocusDone
	}
	e.attempt("sound", func() error { return e.sound.Play(CueComplete) })
	e.attempt("notification", func() error { return e.notifier.Notify(NotifyTitle, body) })

	e.logger.Info("session complete",
		"from", string(from), "to", string(to),
		"completed_focus_sessions", completion.CompletedFocusSessions)
	for _, o := range observers {
		e.notifyObserver(o, completion)
	}
	return TickResult{Completed: true, From: from, To: to}
}

// SwitchMode jumps to target with its full duration. An in-flight countdown
// is stopped so the old mode's remaining time never carries over.
func (e *Engine) SwitchMode(target domain.Mode) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state.IsRunning = false
	e.setMode(target)
}

// Reset stops the timer and refills the current mode.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state.IsRunning = false
	e.state.SecondsRemaining = e.settings.Seconds(e.state.Mode)
}

// UpdateSettings replaces the durations after clamping and returns the
// applied values. If the current mode's length changed, the countdown is
// refilled to the new length and any elapsed time is discarded.
func (e *Engine) UpdateSettings(s domain.TimerSettings) domain.TimerSettings {
	s = s.Clamp()
	e.mu.Lock()
	defer e.mu.Unlock()
	changed := s.Minutes(e.state.Mode) != e.settings.Minutes(e.state.Mode)
	e.settings = s
	if changed {
		e.state.SecondsRemaining = s.Seconds(e.state.Mode)
	}
	return s
}

// State returns a snapshot of the countdown.
func (e *Engine) State() domain.TimerState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Settings returns the active durations.
func (e *Engine) Settings() domain.TimerSettings {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.settings
}

// Progress is the elapsed fraction of the current mode, in [0, 1].
func (e *Engine) Progress() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	total := e.settings.Seconds(e.state.Mode)
	if total <= 0 {
		return 0
	}
	return 1 - float64(e.state.SecondsRemaining)/float64(total)
}

// setMode must be called with e.mu held.
func (e *Engine) setMode(m domain.Mode) {
	e.state.Mode = m
	e.state.SecondsRemaining = e.settings.Seconds(m)
}

// attempt runs an optional side effect through the dispatcher. Errors and
// panics are logged and dropped.
func (e *Engine) attempt(capability string, fn func() error) {
	e.dispatch(func() {
		defer func() {
			if r := recover(); r != nil {
				e.logger.Warn("capability panicked", "capability", capability, "panic", r)
			}
		}()
		if err := fn(); err != nil {
			e.logger.Debug("capability unavailable", "capability", capability, "error", err)
		}
	})
}

func (e *Engine) notifyObserver(o Observer, c Completion) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Warn("observer panicked", "panic", r)
		}
	}()
	o.OnSessionComplete(c)
}
