package timer

import (
	"time"

	"github.com/alexanderramin/focusboard/internal/domain"
)

// Completion describes a countdown that reached zero.
type Completion struct {
	From domain.Mode
	To   domain.Mode
	// Minutes is the configured length of the finished session.
	Minutes                int
	CompletedFocusSessions int
	At                     time.Time
}

// Observer is told about every completed session, after the engine has
// already transitioned. Observers must not call back into the engine.
type Observer interface {
	OnSessionComplete(c Completion)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Completion)

func (f ObserverFunc) OnSessionComplete(c Completion) { f(c) }
