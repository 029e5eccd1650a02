package repository

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alexanderramin/focusboard/internal/domain"
	"github.com/alexanderramin/focusboard/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoardRepo_LoadMissing(t *testing.T) {
	repo := NewKVBoardRepo(NewMemoryKV())
	_, err := repo.Load(context.Background())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBoardRepo_RoundTrip(t *testing.T) {
	kvImplementations(t, func(t *testing.T, kv KV) {
		ctx := context.Background()
		repo := NewKVBoardRepo(kv)

		b := testutil.NewTestBoard(3, 1, 2)
		b.Lanes[2].Tasks[0].Completed = true
		require.NoError(t, repo.Save(ctx, b))

		loaded, err := repo.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, b, loaded)
	})
}

func TestBoardRepo_EmptyBoardWritesEmptyArrays(t *testing.T) {
	kv := NewMemoryKV()
	ctx := context.Background()
	require.NoError(t, NewKVBoardRepo(kv).Save(ctx, domain.NewBoard()))

	raw, ok, err := kv.Get(ctx, KeyTaskColumns)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `[
		{"id":"todo","title":"To Do","tasks":[]},
		{"id":"inProgress","title":"In Progress","tasks":[]},
		{"id":"done","title":"Done","tasks":[]}
	]`, raw)
}

func TestBoardRepo_ReadsBrowserExport(t *testing.T) {
	// Shape produced by JSON.stringify in the browser build: Date.now() ids
	// and ISO createdAt with milliseconds.
	raw := `[
		{"id":"todo","title":"To Do","tasks":[
			{"id":"1718445600000","content":"Write report","completed":false,"createdAt":"2024-06-15T10:00:00.000Z"}
		]},
		{"id":"inProgress","title":"In Progress","tasks":[
			{"id":"1718445660000","content":"Review","completed":true,"createdAt":"1718445660000"}
		]},
		{"id":"done","title":"Done","tasks":[
			{"id":"1718445720000","content":"Ship","completed":true,"createdAt":1718445720000}
		]}
	]`
	kv := NewMemoryKV()
	ctx := context.Background()
	require.NoError(t, kv.Set(ctx, KeyTaskColumns, raw))

	b, err := NewKVBoardRepo(kv).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Write report"}, testutil.LaneContents(b, domain.LaneTodo))
	assert.Equal(t, time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC), b.Lanes[0].Tasks[0].CreatedAt)
	assert.Equal(t, time.UnixMilli(1718445660000).UTC(), b.Lanes[1].Tasks[0].CreatedAt)
	assert.Equal(t, time.UnixMilli(1718445720000).UTC(), b.Lanes[2].Tasks[0].CreatedAt)
	assert.True(t, b.Lanes[2].Tasks[0].Completed)
}

func TestBoardRepo_CorruptData(t *testing.T) {
	cases := map[string]string{
		"not json":      `{{{`,
		"wrong type":    `{"id":"todo"}`,
		"two lanes":     `[{"id":"todo","title":"To Do","tasks":[]},{"id":"done","title":"Done","tasks":[]}]`,
		"bad timestamp": `[{"id":"todo","title":"To Do","tasks":[{"id":"a","content":"x","completed":false,"createdAt":"yesterday"}]},{"id":"inProgress","title":"In Progress","tasks":[]},{"id":"done","title":"Done","tasks":[]}]`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			kv := NewMemoryKV()
			ctx := context.Background()
			require.NoError(t, kv.Set(ctx, KeyTaskColumns, raw))

			_, err := NewKVBoardRepo(kv).Load(ctx)
			assert.ErrorIs(t, err, ErrCorrupt)
		})
	}
}

func TestWireTime_MarshalsRFC3339(t *testing.T) {
	at := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	raw, err := json.Marshal(wireTime(at))
	require.NoError(t, err)
	assert.Equal(t, `"2025-01-02T03:04:05Z"`, string(raw))
}
