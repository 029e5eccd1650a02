package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/alexanderramin/focusboard/internal/domain"
	"github.com/alexanderramin/focusboard/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTransfer(t *testing.T) (*Transfer, *SQLiteKV) {
	t.Helper()
	database := testutil.NewTestDB(t)
	kv := NewSQLiteKV(database)
	return NewTransfer(kv, testutil.NewTestUoW(database)), kv
}

func TestTransfer_ExportEmpty(t *testing.T) {
	tr, _ := newTestTransfer(t)
	var buf bytes.Buffer
	require.NoError(t, tr.Export(context.Background(), &buf))
	assert.JSONEq(t, `{}`, buf.String())
}

func TestTransfer_RoundTrip(t *testing.T) {
	ctx := context.Background()
	src, srcKV := newTestTransfer(t)
	require.NoError(t, NewKVBoardRepo(srcKV).Save(ctx, testutil.NewTestBoard(2, 1, 0)))
	require.NoError(t, NewKVSettingsRepo(srcKV).SaveSettings(ctx, domain.TimerSettings{Focus: 50, ShortBreak: 10, LongBreak: 20}))
	require.NoError(t, NewKVStatsRepo(srcKV, nil).SaveStats(ctx,
		[]domain.DailyStat{testutil.NewTestDay(0, 2, 1, 50)},
		domain.WeeklyStat{Pomodoros: 2, Tasks: 1, FocusTime: 50}))

	var buf bytes.Buffer
	require.NoError(t, src.Export(ctx, &buf))

	dst, dstKV := newTestTransfer(t)
	keys, err := dst.Import(ctx, &buf)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{KeyTaskColumns, KeyDailyStats, KeyWeeklyStats, KeyTimerSettings}, keys)

	b, err := NewKVBoardRepo(dstKV).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"todo 1", "todo 2"}, testutil.LaneContents(b, domain.LaneTodo))

	s, err := NewKVSettingsRepo(dstKV).LoadSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, 50, s.Focus)

	weekly, err := NewKVStatsRepo(dstKV, nil).WeeklyStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 50, weekly.FocusTime)
}

func TestTransfer_ImportClampsSettingsAndIgnoresUnknownKeys(t *testing.T) {
	ctx := context.Background()
	tr, kv := newTestTransfer(t)

	keys, err := tr.Import(ctx, strings.NewReader(
		`{"timerSettings": {"pomodoro": 500, "shortBreak": 0, "longBreak": 15}, "theme": "dark"}`))
	require.NoError(t, err)
	assert.Equal(t, []string{KeyTimerSettings}, keys)

	raw, ok, err := kv.Get(ctx, KeyTimerSettings)
	require.NoError(t, err)
	require.True(t, ok)
	var stored domain.TimerSettings
	require.NoError(t, json.Unmarshal([]byte(raw), &stored))
	assert.Equal(t, domain.TimerSettings{Focus: 60, ShortBreak: 1, LongBreak: 15}, stored)
}

func TestTransfer_ImportDropsBlankTasks(t *testing.T) {
	ctx := context.Background()
	tr, kv := newTestTransfer(t)

	_, err := tr.Import(ctx, strings.NewReader(`{"taskColumns": [
		{"id": "todo", "title": "To Do", "tasks": [
			{"id": "a", "content": "plan", "completed": false, "createdAt": 1718445600000},
			{"id": "b", "content": "", "completed": false, "createdAt": 1718445600000}]},
		{"id": "inProgress", "title": "In Progress", "tasks": []},
		{"id": "done", "title": "Done", "tasks": []}]}`))
	require.NoError(t, err)

	b, err := NewKVBoardRepo(kv).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"plan"}, testutil.LaneContents(b, domain.LaneTodo))
}

func TestTransfer_InvalidImportWritesNothing(t *testing.T) {
	ctx := context.Background()
	tr, kv := newTestTransfer(t)

	// Valid settings, but a board with only two lanes.
	_, err := tr.Import(ctx, strings.NewReader(`{
		"timerSettings": {"pomodoro": 30, "shortBreak": 5, "longBreak": 15},
		"taskColumns": [{"id": "todo", "title": "To Do", "tasks": []},
		                {"id": "done", "title": "Done", "tasks": []}]
	}`))
	require.ErrorIs(t, err, ErrCorrupt)

	_, ok, err := kv.Get(ctx, KeyTimerSettings)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTransfer_ImportMalformed(t *testing.T) {
	tr, _ := newTestTransfer(t)
	_, err := tr.Import(context.Background(), strings.NewReader(`not json`))
	assert.ErrorIs(t, err, ErrCorrupt)

	_, err = tr.Import(context.Background(), strings.NewReader(`{"dailyStats": {"date": 1}}`))
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestTransfer_ImportNeedsUnitOfWork(t *testing.T) {
	tr := NewTransfer(NewMemoryKV(), nil)
	_, err := tr.Import(context.Background(), strings.NewReader(`{}`))
	assert.Error(t, err)
}
