package cli

import (
	"testing"
	"time"

	"github.com/alexanderramin/focusboard/internal/teatest"
	"github.com/alexanderramin/focusboard/internal/timer"
)

// TestDriver wraps teatest.Driver with inspection methods for appModel
// internals (active tab, modal stack, completion overlay) that the generic
// driver can't see.
type TestDriver struct {
	*teatest.Driver
}

// NewTestDriver creates a TestDriver from a test App.
// It constructs the appModel, sets terminal size, and drains Init().
// The heartbeat Cmd blocks for a second, so the driver skips it; tests
// advance the clock with Tick.
func NewTestDriver(t *testing.T, app *App) *TestDriver {
	t.Helper()

	m := newAppModel(app)
	d := teatest.New(t, m, teatest.WithSize(120, 40))
	d.DrainInit()

	return &TestDriver{Driver: d}
}

// Tick delivers n heartbeats.
func (d *TestDriver) Tick(n int) {
	d.T.Helper()
	d.SendN(tickMsg{at: time.Now(), gen: d.appModel().tickGen}, n)
}

func (d *TestDriver) appModel() appModel {
	return d.Model.(appModel)
}

// ActiveViewID returns the ViewID of the top modal view or the active tab.
func (d *TestDriver) ActiveViewID() ViewID {
	m := d.appModel()
	return m.activeView().ID()
}

// ActiveTab returns the ViewID of the selected tab, ignoring modals.
func (d *TestDriver) ActiveTab() ViewID {
	m := d.appModel()
	return m.tabs[m.tab].ID()
}

// StackLen returns the number of modal views above the tabs.
func (d *TestDriver) StackLen() int {
	return len(d.appModel().stack)
}

// Completion returns the pending completion overlay, if any.
func (d *TestDriver) Completion() *timer.TickResult {
	return d.appModel().completion
}

// Notice returns the status bar flash message.
func (d *TestDriver) Notice() string {
	return d.appModel().notice
}

// IsQuitting reports whether the model has requested quit.
func (d *TestDriver) IsQuitting() bool {
	return d.Quitting || d.appModel().quitting
}

// boardView returns the live board tab.
func (d *TestDriver) boardView() *boardView {
	for _, v := range d.appModel().tabs {
		if bv, ok := v.(*boardView); ok {
			return bv
		}
	}
	d.T.Fatal("board tab missing")
	return nil
}
