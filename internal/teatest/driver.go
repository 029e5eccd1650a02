// Package teatest drives bubbletea models synchronously in tests.
//
// A Driver stands in for tea.Program: it calls Update directly and runs
// every returned Cmd on the spot, feeding the resulting messages back in
// until nothing is left. Cmds that block on a timer (cursor blinks, the
// once-a-second heartbeat) are abandoned after a short timeout, so tests
// that need time to pass deliver the tick message themselves.
package teatest

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	// DefaultCmdTimeout separates message factories and repository calls,
	// which return in microseconds, from timer-backed Cmds.
	DefaultCmdTimeout = 10 * time.Millisecond

	// MaxDrainDepth bounds Cmd chains that keep producing new Cmds.
	MaxDrainDepth = 100
)

// Driver is a synchronous test harness for any tea.Model.
type Driver struct {
	T     *testing.T
	Model tea.Model

	// Quitting is set once tea.Quit has been drained. The real runtime
	// swallows tea.QuitMsg, so the driver records it itself and stops
	// delivering messages.
	Quitting bool

	// Skipped counts Cmds abandoned after the timeout.
	Skipped int

	timeout time.Duration
}

// Option configures a Driver.
type Option func(*Driver)

// WithSize delivers a WindowSizeMsg before anything else.
func WithSize(w, h int) Option {
	return func(d *Driver) {
		d.Model, _ = d.Model.Update(tea.WindowSizeMsg{Width: w, Height: h})
	}
}

// WithCmdTimeout overrides DefaultCmdTimeout.
func WithCmdTimeout(timeout time.Duration) Option {
	return func(d *Driver) {
		if timeout > 0 {
			d.timeout = timeout
		}
	}
}

// New wraps model. Call DrainInit to run the model's Init Cmd.
func New(t *testing.T, model tea.Model, opts ...Option) *Driver {
	t.Helper()
	d := &Driver{T: t, Model: model, timeout: DefaultCmdTimeout}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DrainInit runs Init and everything it leads to.
func (d *Driver) DrainInit() {
	d.T.Helper()
	d.run(d.Model.Init(), 0)
}

// Send delivers msg and drains the result. It does nothing after quit.
func (d *Driver) Send(msg tea.Msg) {
	d.T.Helper()
	if d.Quitting {
		return
	}
	var cmd tea.Cmd
	d.Model, cmd = d.Model.Update(msg)
	d.run(cmd, 0)
}

// SendN delivers msg n times, draining after each.
func (d *Driver) SendN(msg tea.Msg, n int) {
	d.T.Helper()
	for i := 0; i < n && !d.Quitting; i++ {
		d.Send(msg)
	}
}

// SendKey delivers a key event.
func (d *Driver) SendKey(msg tea.KeyMsg) {
	d.T.Helper()
	d.Send(msg)
}

// Press delivers a non-rune key such as tea.KeyEnter.
func (d *Driver) Press(k tea.KeyType) {
	d.T.Helper()
	d.SendKey(tea.KeyMsg{Type: k})
}

// PressKey delivers a single rune.
func (d *Driver) PressKey(r rune) {
	d.T.Helper()
	d.SendKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

// Type delivers s one rune at a time.
func (d *Driver) Type(s string) {
	d.T.Helper()
	for _, r := range s {
		d.PressKey(r)
	}
}

func (d *Driver) PressSpace() {
	d.T.Helper()
	d.SendKey(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
}

func (d *Driver) PressEnter()    { d.T.Helper(); d.Press(tea.KeyEnter) }
func (d *Driver) PressEsc()      { d.T.Helper(); d.Press(tea.KeyEsc) }
func (d *Driver) PressTab()      { d.T.Helper(); d.Press(tea.KeyTab) }
func (d *Driver) PressShiftTab() { d.T.Helper(); d.Press(tea.KeyShiftTab) }
func (d *Driver) PressCtrlC()    { d.T.Helper(); d.Press(tea.KeyCtrlC) }
func (d *Driver) PressUp()       { d.T.Helper(); d.Press(tea.KeyUp) }
func (d *Driver) PressDown()     { d.T.Helper(); d.Press(tea.KeyDown) }

// View renders the model.
func (d *Driver) View() string {
	return d.Model.View()
}

// run executes cmd and feeds its message back through Update, depth first.
func (d *Driver) run(cmd tea.Cmd, depth int) {
	d.T.Helper()
	if cmd == nil {
		return
	}
	if depth >= MaxDrainDepth {
		d.T.Logf("teatest: gave up after %d chained Cmds", MaxDrainDepth)
		return
	}

	msg, ok := d.exec(cmd)
	if !ok {
		d.Skipped++
		return
	}

	switch msg := msg.(type) {
	case nil:
		return
	case tea.BatchMsg:
		for _, sub := range msg {
			d.run(sub, depth+1)
		}
		return
	case tea.QuitMsg:
		d.Quitting = true
		d.Model, _ = d.Model.Update(msg)
		return
	}
	if isBlink(msg) {
		return
	}

	var next tea.Cmd
	d.Model, next = d.Model.Update(msg)
	d.run(next, depth+1)
}

// exec runs cmd on a goroutine; ok is false when it outlives the timeout.
func (d *Driver) exec(cmd tea.Cmd) (msg tea.Msg, ok bool) {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg = <-ch:
		return msg, true
	case <-time.After(d.timeout):
		return nil, false
	}
}

// isBlink matches the unexported blink messages of bubbles/cursor, which
// chain into timer Cmds when delivered.
func isBlink(msg tea.Msg) bool {
	return strings.Contains(strings.ToLower(fmt.Sprintf("%T", msg)), "blink")
}
