package repository

import (
	"context"

	"github.com/alexanderramin/focusboard/internal/db"
	"github.com/alexanderramin/focusboard/internal/domain"
)

// KVStatsRepo reads and writes the dailyStats and weeklyStats documents.
type KVStatsRepo struct {
	kv  KV
	uow db.UnitOfWork
}

// NewKVStatsRepo creates a stats repo. When uow is non-nil, SaveStats writes
// both keys in one transaction through a tx-scoped SQLiteKV; otherwise it
// writes them one after the other through kv.
func NewKVStatsRepo(kv KV, uow db.UnitOfWork) *KVStatsRepo {
	return &KVStatsRepo{kv: kv, uow: uow}
}

func (r *KVStatsRepo) DailyStats(ctx context.Context) ([]domain.DailyStat, error) {
	var daily []domain.DailyStat
	if err := getJSON(ctx, r.kv, KeyDailyStats, &daily); err != nil {
		return nil, err
	}
	return daily, nil
}

func (r *KVStatsRepo) WeeklyStats(ctx context.Context) (domain.WeeklyStat, error) {
	var weekly domain.WeeklyStat
	if err := getJSON(ctx, r.kv, KeyWeeklyStats, &weekly); err != nil {
		return domain.WeeklyStat{}, err
	}
	return weekly, nil
}

func (r *KVStatsRepo) SaveStats(ctx context.Context, daily []domain.DailyStat, weekly domain.WeeklyStat) error {
	if daily == nil {
		daily = []domain.DailyStat{}
	}
	if r.uow == nil {
		return saveStats(ctx, r.kv, daily, weekly)
	}
	return r.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return saveStats(ctx, NewSQLiteKV(tx), daily, weekly)
	})
}

func saveStats(ctx context.Context, kv KV, daily []domain.DailyStat, weekly domain.WeeklyStat) error {
	if err := setJSON(ctx, kv, KeyDailyStats, daily); err != nil {
		return err
	}
	return setJSON(ctx, kv, KeyWeeklyStats, weekly)
}
