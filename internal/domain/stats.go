package domain

// StatsWindowDays is the number of days covered by the weekly snapshot.
const StatsWindowDays = 7

// DailyStat is one day of accumulated activity. FocusTime is in minutes.
type DailyStat struct {
	Date      string `json:"date"`
	Pomodoros int    `json:"pomodoros"`
	Tasks     int    `json:"tasks"`
	FocusTime int    `json:"focusTime"`
}

// WeeklyStat is the rolling total over the last StatsWindowDays.
type WeeklyStat struct {
	Pomodoros int `json:"pomodoros"`
	Tasks     int `json:"tasks"`
	FocusTime int `json:"focusTime"`
}

// Add accumulates a day into the weekly total.
func (w *WeeklyStat) Add(d DailyStat) {
	w.Pomodoros += d.Pomodoros
	w.Tasks += d.Tasks
	w.FocusTime += d.FocusTime
}

// DateLayout is the calendar-day format used for DailyStat.Date.
const DateLayout = "2006-01-02"
