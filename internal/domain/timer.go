package domain

import "fmt"

// Mode is the timer's current phase.
type Mode string

const (
	ModeFocus      Mode = "pomodoro"
	ModeShortBreak Mode = "shortBreak"
	ModeLongBreak  Mode = "longBreak"
)

// LongBreakInterval is the number of completed focus sessions between long breaks.
const LongBreakInterval = 4

// Modes lists every mode in display order.
var Modes = []Mode{ModeFocus, ModeShortBreak, ModeLongBreak}

// Label returns the human-readable name of the mode.
func (m Mode) Label() string {
	switch m {
	case ModeFocus:
		return "Focus"
	case ModeShortBreak:
		return "Short Break"
	case ModeLongBreak:
		return "Long Break"
	default:
		return string(m)
	}
}

// IsBreak reports whether m is one of the break modes.
func (m Mode) IsBreak() bool {
	return m == ModeShortBreak || m == ModeLongBreak
}

// ParseMode accepts the wire names plus short aliases used on the command line.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "pomodoro", "focus", "work":
		return ModeFocus, nil
	case "shortBreak", "short", "short-break", "short_break":
		return ModeShortBreak, nil
	case "longBreak", "long", "long-break", "long_break":
		return ModeLongBreak, nil
	}
	return "", fmt.Errorf("unknown timer mode %q (want focus, short or long)", s)
}

// Duration bounds in minutes.
const (
	MinDurationMin       = 1
	MaxFocusMin          = 60
	MaxShortBreakMin     = 30
	MaxLongBreakMin      = 60
	DefaultFocusMin      = 25
	DefaultShortBreakMin = 5
	DefaultLongBreakMin  = 15
	secondsPerMinute     = 60
)

// TimerSettings holds the duration of each mode in minutes.
type TimerSettings struct {
	Focus      int `json:"pomodoro"`
	ShortBreak int `json:"shortBreak"`
	LongBreak  int `json:"longBreak"`
}

// DefaultTimerSettings returns the classic 25/5/15 split.
func DefaultTimerSettings() TimerSettings {
	return TimerSettings{
		Focus:      DefaultFocusMin,
		ShortBreak: DefaultShortBreakMin,
		LongBreak:  DefaultLongBreakMin,
	}
}

// Clamp returns a copy with every field forced into its bound.
// Out-of-range input is clamped, never rejected.
func (s TimerSettings) Clamp() TimerSettings {
	return TimerSettings{
		Focus:      clampInt(s.Focus, MinDurationMin, MaxFocusMin),
		ShortBreak: clampInt(s.ShortBreak, MinDurationMin, MaxShortBreakMin),
		LongBreak:  clampInt(s.LongBreak, MinDurationMin, MaxLongBreakMin),
	}
}

// Minutes returns the configured duration of mode in minutes.
func (s TimerSettings) Minutes(mode Mode) int {
	switch mode {
	case ModeShortBreak:
		return s.ShortBreak
	case ModeLongBreak:
		return s.LongBreak
	default:
		return s.Focus
	}
}

// Seconds returns the full countdown length of mode.
func (s TimerSettings) Seconds(mode Mode) int {
	return s.Minutes(mode) * secondsPerMinute
}

// TimerState is the observable state of the countdown.
type TimerState struct {
	Mode                   Mode
	SecondsRemaining       int
	IsRunning              bool
	CompletedFocusSessions int
}

// NewTimerState returns the initial state: focus, paused, full duration.
func NewTimerState(s TimerSettings) TimerState {
	return TimerState{
		Mode:             ModeFocus,
		SecondsRemaining: s.Seconds(ModeFocus),
	}
}

// NextMode picks the mode that follows a completed session of current.
// completedAfter is the focus-session count after the completion was counted.
func NextMode(current Mode, completedAfter int) Mode {
	if current != ModeFocus {
		return ModeFocus
	}
	if completedAfter > 0 && completedAfter%LongBreakInterval == 0 {
		return ModeLongBreak
	}
	return ModeShortBreak
}

// FormatClock renders seconds as MM:SS.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/secondsPerMinute, seconds%secondsPerMinute)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
