package timer

import (
	"fmt"
	"io"

	"github.com/gen2brain/beeep"
)

// Cue selects which sound to play.
type Cue int

const (
	CueStart Cue = iota
	CueComplete
)

func (c Cue) String() string {
	if c == CueComplete {
		return "complete"
	}
	return "start"
}

// Sound plays an audible cue. Implementations may fail; the engine ignores
// the failure.
type Sound interface {
	Play(cue Cue) error
}

// Notifier shows a desktop notification.
type Notifier interface {
	Notify(title, body string) error
}

// NopSound is the default when no audio is configured.
type NopSound struct{}

func (NopSound) Play(Cue) error { return nil }

// NopNotifier is the default when notifications are disabled.
type NopNotifier struct{}

func (NopNotifier) Notify(string, string) error { return nil }

// BellSound rings the terminal bell. Completion rings twice.
type BellSound struct {
	W io.Writer
}

func (b BellSound) Play(cue Cue) error {
	if b.W == nil {
		return fmt.Errorf("bell: no terminal")
	}
	bell := "\a"
	if cue == CueComplete {
		bell = "\a\a"
	}
	_, err := io.WriteString(b.W, bell)
	return err
}

// BeepSound uses the platform speaker through beeep.
type BeepSound struct{}

func (BeepSound) Play(cue Cue) error {
	if cue == CueComplete {
		if err := beeep.Beep(beeep.DefaultFreq*1.5, beeep.DefaultDuration); err != nil {
			return err
		}
	}
	return beeep.Beep(beeep.DefaultFreq, beeep.DefaultDuration)
}

// DesktopNotifier posts an OS-level notification through beeep.
type DesktopNotifier struct {
	AppIcon string
}

func (n DesktopNotifier) Notify(title, body string) error {
	return beeep.Notify(title, body, n.AppIcon)
}

// NewSound maps a configured name to an implementation. Unknown names fall
// back to NopSound.
func NewSound(name string, terminal io.Writer) Sound {
	switch name {
	case "bell":
		return BellSound{W: terminal}
	case "beep":
		return BeepSound{}
	default:
		return NopSound{}
	}
}

// NewNotifier returns a DesktopNotifier when enabled, otherwise NopNotifier.
func NewNotifier(enabled bool) Notifier {
	if enabled {
		return DesktopNotifier{}
	}
	return NopNotifier{}
}
