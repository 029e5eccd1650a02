// Package stats derives the display aggregates of the statistics view from
// the persisted daily and weekly documents. It never writes.
package stats

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"

	"github.com/alexanderramin/focusboard/internal/domain"
	"github.com/alexanderramin/focusboard/internal/repository"
)

// Summary is what the statistics view renders.
type Summary struct {
	Daily             []domain.DailyStat
	Weekly            domain.WeeklyStat
	TotalFocusMinutes int
	TotalTasks        int
	TotalPomodoros    int
	// TasksPerDay is the weekly task count averaged over the whole window,
	// not over the days that have entries.
	TasksPerDay float64
}

// Empty reports whether there is nothing to show.
func (s Summary) Empty() bool {
	return len(s.Daily) == 0 && s.Weekly == (domain.WeeklyStat{})
}

type Aggregator struct {
	reader repository.StatsReader
	logger *slog.Logger
}

func NewAggregator(reader repository.StatsReader, logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Aggregator{reader: reader, logger: logger}
}

// Load reads both documents. Missing ones count as no data; unreadable
// ones are logged and also count as no data, so Load always succeeds.
func (a *Aggregator) Load(ctx context.Context) Summary {
	var sum Summary

	daily, err := a.reader.DailyStats(ctx)
	if a.usable(repository.KeyDailyStats, err) {
		sum.Daily = sortedDays(daily)
	}
	if sum.Daily == nil {
		sum.Daily = []domain.DailyStat{}
	}

	weekly, err := a.reader.WeeklyStats(ctx)
	if a.usable(repository.KeyWeeklyStats, err) {
		sum.Weekly = weekly
	}

	sum.TotalFocusMinutes = sum.Weekly.FocusTime
	sum.TotalTasks = sum.Weekly.Tasks
	sum.TotalPomodoros = sum.Weekly.Pomodoros
	sum.TasksPerDay = float64(sum.Weekly.Tasks) / domain.StatsWindowDays
	return sum
}

func (a *Aggregator) usable(key string, err error) bool {
	switch {
	case err == nil:
		return true
	case errors.Is(err, repository.ErrNotFound):
	case errors.Is(err, repository.ErrCorrupt):
		a.logger.Warn("ignoring unreadable stats", "key", key, "error", err)
	default:
		a.logger.Error("reading stats", "key", key, "error", err)
	}
	return false
}

func sortedDays(in []domain.DailyStat) []domain.DailyStat {
	out := append([]domain.DailyStat(nil), in...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// MaxDaily returns the largest per-day pomodoro and task counts in the
// series, for scaling bars.
func (s Summary) MaxDaily() (pomodoros, tasks int) {
	for _, d := range s.Daily {
		pomodoros = max(pomodoros, d.Pomodoros)
		tasks = max(tasks, d.Tasks)
	}
	return pomodoros, tasks
}
