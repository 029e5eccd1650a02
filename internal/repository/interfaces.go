package repository

import (
	"context"

	"github.com/alexanderramin/focusboard/internal/domain"
)

// Storage keys. The first three match the layout written by the browser
// version of the app so exported data can be imported verbatim.
const (
	KeyTaskColumns   = "taskColumns"
	KeyDailyStats    = "dailyStats"
	KeyWeeklyStats   = "weeklyStats"
	KeyTimerSettings = "timerSettings"
)

// KV is a string-keyed, string-valued store.
type KV interface {
	// Get returns the value for key; ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

type BoardRepo interface {
	Load(ctx context.Context) (*domain.Board, error)
	Save(ctx context.Context, b *domain.Board) error
}

type StatsReader interface {
	DailyStats(ctx context.Context) ([]domain.DailyStat, error)
	WeeklyStats(ctx context.Context) (domain.WeeklyStat, error)
}

type StatsRepo interface {
	StatsReader
	// SaveStats writes both keys together.
	SaveStats(ctx context.Context, daily []domain.DailyStat, weekly domain.WeeklyStat) error
}

type SettingsRepo interface {
	LoadSettings(ctx context.Context) (domain.TimerSettings, error)
	SaveSettings(ctx context.Context, s domain.TimerSettings) error
}
