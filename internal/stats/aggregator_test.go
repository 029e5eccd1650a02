package stats

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/focusboard/internal/domain"
	"github.com/alexanderramin/focusboard/internal/repository"
	"github.com/alexanderramin/focusboard/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingKV records writes so tests can assert the aggregator never writes.
type countingKV struct {
	*repository.MemoryKV
	writes int
}

func (c *countingKV) Set(ctx context.Context, key, value string) error {
	c.writes++
	return c.MemoryKV.Set(ctx, key, value)
}

func (c *countingKV) Delete(ctx context.Context, key string) error {
	c.writes++
	return c.MemoryKV.Delete(ctx, key)
}

type brokenReader struct{}

func (brokenReader) DailyStats(context.Context) ([]domain.DailyStat, error) {
	return nil, errors.New("io error")
}

func (brokenReader) WeeklyStats(context.Context) (domain.WeeklyStat, error) {
	return domain.WeeklyStat{}, errors.New("io error")
}

func TestLoad_EmptyStorage(t *testing.T) {
	kv := &countingKV{MemoryKV: repository.NewMemoryKV()}
	sum := NewAggregator(repository.NewKVStatsRepo(kv, nil), nil).Load(context.Background())

	assert.True(t, sum.Empty())
	assert.NotNil(t, sum.Daily)
	assert.Empty(t, sum.Daily)
	assert.Zero(t, sum.TotalFocusMinutes)
	assert.Zero(t, sum.TotalTasks)
	assert.Zero(t, sum.TotalPomodoros)
	assert.Zero(t, sum.TasksPerDay)
	assert.Zero(t, kv.writes)
}

func TestLoad_DerivesWeeklyTotals(t *testing.T) {
	ctx := context.Background()
	kv := repository.NewMemoryKV()
	repo := repository.NewKVStatsRepo(kv, nil)
	daily := []domain.DailyStat{
		testutil.NewTestDay(0, 4, 3, 100),
		testutil.NewTestDay(2, 2, 1, 50),
		testutil.NewTestDay(1, 0, 3, 0),
	}
	require.NoError(t, repo.SaveStats(ctx, daily, domain.WeeklyStat{Pomodoros: 6, Tasks: 7, FocusTime: 150}))

	sum := NewAggregator(repo, nil).Load(ctx)

	assert.Equal(t, 150, sum.TotalFocusMinutes)
	assert.Equal(t, 7, sum.TotalTasks)
	assert.Equal(t, 6, sum.TotalPomodoros)
	assert.InDelta(t, 1.0, sum.TasksPerDay, 1e-9)
	require.Len(t, sum.Daily, 3)
	assert.Equal(t, testutil.NewTestDay(2, 0, 0, 0).Date, sum.Daily[0].Date, "series is oldest first")
	assert.Equal(t, testutil.NewTestDay(0, 0, 0, 0).Date, sum.Daily[2].Date)

	p, tasks := sum.MaxDaily()
	assert.Equal(t, 4, p)
	assert.Equal(t, 3, tasks)
}

func TestLoad_WeeklyIsConsumedVerbatim(t *testing.T) {
	ctx := context.Background()
	kv := repository.NewMemoryKV()
	// Weekly written by another producer need not equal the daily sum.
	require.NoError(t, kv.Set(ctx, repository.KeyDailyStats, `[{"date":"2025-06-15","pomodoros":1,"tasks":1,"focusTime":25}]`))
	require.NoError(t, kv.Set(ctx, repository.KeyWeeklyStats, `{"pomodoros":10,"tasks":14,"focusTime":250}`))

	sum := NewAggregator(repository.NewKVStatsRepo(kv, nil), nil).Load(ctx)
	assert.Equal(t, 10, sum.TotalPomodoros)
	assert.InDelta(t, 2.0, sum.TasksPerDay, 1e-9)
}

func TestLoad_CorruptDataYieldsZero(t *testing.T) {
	cases := map[string]struct{ daily, weekly string }{
		"both corrupt":   {`not json`, `{"pomodoros":`},
		"wrong shapes":   {`{"date":"x"}`, `[1,2,3]`},
		"only weekly ok": {`[{]`, `{"pomodoros":2,"tasks":7,"focusTime":50}`},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			kv := repository.NewMemoryKV()
			require.NoError(t, kv.Set(ctx, repository.KeyDailyStats, tc.daily))
			require.NoError(t, kv.Set(ctx, repository.KeyWeeklyStats, tc.weekly))

			sum := NewAggregator(repository.NewKVStatsRepo(kv, nil), nil).Load(ctx)
			assert.Empty(t, sum.Daily)
			if name == "only weekly ok" {
				assert.Equal(t, 7, sum.TotalTasks)
				return
			}
			assert.True(t, sum.Empty())
		})
	}
}

func TestLoad_ReaderErrorYieldsZero(t *testing.T) {
	sum := NewAggregator(brokenReader{}, nil).Load(context.Background())
	assert.True(t, sum.Empty())
}
