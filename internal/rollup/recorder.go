// Package rollup keeps the dailyStats and weeklyStats documents up to date
// from timer and board events.
package rollup

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/alexanderramin/focusboard/internal/domain"
	"github.com/alexanderramin/focusboard/internal/repository"
	"github.com/alexanderramin/focusboard/internal/timer"
)

// Recorder accumulates per-day counters over the last StatsWindowDays
// days and rewrites the weekly total as their sum on every write.
// Callback errors are logged, never returned to the timer or board.
type Recorder struct {
	mu     sync.Mutex
	repo   repository.StatsRepo
	now    func() time.Time
	loc    *time.Location
	logger *slog.Logger
}

type Option func(*Recorder)

func WithClock(now func() time.Time) Option {
	return func(r *Recorder) {
		if now != nil {
			r.now = now
		}
	}
}

// WithLocation sets the zone that decides where a calendar day starts.
func WithLocation(loc *time.Location) Option {
	return func(r *Recorder) {
		if loc != nil {
			r.loc = loc
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(r *Recorder) {
		if l != nil {
			r.logger = l
		}
	}
}

func NewRecorder(repo repository.StatsRepo, opts ...Option) *Recorder {
	r := &Recorder{
		repo:   repo,
		now:    time.Now,
		loc:    time.Local,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// OnSessionComplete counts a finished focus session. Break completions are
// ignored.
func (r *Recorder) OnSessionComplete(c timer.Completion) {
	if c.From != domain.ModeFocus {
		return
	}
	at := c.At
	if at.IsZero() {
		at = r.now()
	}
	err := r.RecordFocus(context.Background(), at, c.Minutes)
	if err != nil {
		r.logger.Error("recording focus session", "error", err)
	}
}

// OnTaskToggled counts a task the moment it is checked off. Unchecking
// does not subtract.
func (r *Recorder) OnTaskToggled(ctx context.Context, task domain.Task) {
	if !task.Completed {
		return
	}
	if err := r.RecordTask(ctx, r.now()); err != nil {
		r.logger.Error("recording completed task", "task_id", task.ID, "error", err)
	}
}

// RecordFocus adds one pomodoro of minutes to the day containing at.
func (r *Recorder) RecordFocus(ctx context.Context, at time.Time, minutes int) error {
	return r.update(ctx, func(days map[string]*domain.DailyStat) {
		d := dayFor(days, r.dateOf(at))
		d.Pomodoros++
		d.FocusTime += minutes
	})
}

// RecordTask adds one completed task to the day containing at.
func (r *Recorder) RecordTask(ctx context.Context, at time.Time) error {
	return r.update(ctx, func(days map[string]*domain.DailyStat) {
		dayFor(days, r.dateOf(at)).Tasks++
	})
}

// Compact drops days that fell out of the window and rewrites the weekly
// total. It is a no-op when there is nothing stored yet.
func (r *Recorder) Compact(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	daily, err := r.load(ctx)
	if err != nil {
		return err
	}
	if daily == nil {
		return nil
	}
	kept := r.window(daily)
	r.logger.Debug("compacted stats", "kept_days", len(kept), "dropped_days", len(daily)-len(kept))
	return r.save(ctx, kept)
}

func (r *Recorder) update(ctx context.Context, fn func(map[string]*domain.DailyStat)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	daily, err := r.load(ctx)
	if err != nil {
		return err
	}
	days := make(map[string]*domain.DailyStat, len(daily)+1)
	for i := range daily {
		d := daily[i]
		if prev, ok := days[d.Date]; ok {
			prev.Pomodoros += d.Pomodoros
			prev.Tasks += d.Tasks
			prev.FocusTime += d.FocusTime
			continue
		}
		days[d.Date] = &d
	}
	fn(days)

	merged := make([]domain.DailyStat, 0, len(days))
	for _, d := range days {
		merged = append(merged, *d)
	}
	return r.save(ctx, r.window(merged))
}

// load returns the stored series. A corrupt document is discarded with a
// warning so recording can start over.
func (r *Recorder) load(ctx context.Context) ([]domain.DailyStat, error) {
	daily, err := r.repo.DailyStats(ctx)
	switch {
	case err == nil:
		return daily, nil
	case errors.Is(err, repository.ErrNotFound):
		return nil, nil
	case errors.Is(err, repository.ErrCorrupt):
		r.logger.Warn("discarding unreadable daily stats", "error", err)
		return []domain.DailyStat{}, nil
	default:
		return nil, fmt.Errorf("loading daily stats: %w", err)
	}
}

func (r *Recorder) save(ctx context.Context, daily []domain.DailyStat) error {
	var weekly domain.WeeklyStat
	for _, d := range daily {
		weekly.Add(d)
	}
	if err := r.repo.SaveStats(ctx, daily, weekly); err != nil {
		return fmt.Errorf("saving stats: %w", err)
	}
	return nil
}

// window keeps the days from today back to StatsWindowDays-1 days ago,
// oldest first. Dates that do not parse are dropped.
func (r *Recorder) window(daily []domain.DailyStat) []domain.DailyStat {
	today := r.now().In(r.loc)
	oldest := time.Date(today.Year(), today.Month(), today.Day()-(domain.StatsWindowDays-1), 0, 0, 0, 0, r.loc).
		Format(domain.DateLayout)
	newest := today.Format(domain.DateLayout)

	kept := make([]domain.DailyStat, 0, len(daily))
	for _, d := range daily {
		if _, err := time.Parse(domain.DateLayout, d.Date); err != nil {
			continue
		}
		if d.Date < oldest || d.Date > newest {
			continue
		}
		kept = append(kept, d)
	}
	sort.Slice(kept, func(i, j int) bool { return kept[i].Date < kept[j].Date })
	return kept
}

func (r *Recorder) dateOf(t time.Time) string {
	return t.In(r.loc).Format(domain.DateLayout)
}

func dayFor(days map[string]*domain.DailyStat, date string) *domain.DailyStat {
	d, ok := days[date]
	if !ok {
		d = &domain.DailyStat{Date: date}
		days[date] = d
	}
	return d
}
