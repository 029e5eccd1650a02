package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/alexanderramin/focusboard/internal/db"
	"github.com/alexanderramin/focusboard/internal/domain"
)

// Snapshot is the export document: one member per storage key, holding
// the stored JSON untouched. A browser localStorage dump of the same keys
// has the same shape.
type Snapshot struct {
	TaskColumns   json.RawMessage `json:"taskColumns,omitempty"`
	DailyStats    json.RawMessage `json:"dailyStats,omitempty"`
	WeeklyStats   json.RawMessage `json:"weeklyStats,omitempty"`
	TimerSettings json.RawMessage `json:"timerSettings,omitempty"`
}

// Transfer exports and imports every stored document at once.
type Transfer struct {
	kv  KV
	uow db.UnitOfWork
}

// NewTransfer creates a Transfer. Import needs a non-nil uow.
func NewTransfer(kv KV, uow db.UnitOfWork) *Transfer {
	return &Transfer{kv: kv, uow: uow}
}

// Export writes the snapshot as indented JSON. Absent keys are omitted.
func (t *Transfer) Export(ctx context.Context, w io.Writer) error {
	var snap Snapshot
	for _, f := range snap.fields() {
		raw, ok, err := t.kv.Get(ctx, f.key)
		if err != nil {
			return err
		}
		if ok {
			*f.dst = json.RawMessage(raw)
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		return fmt.Errorf("encoding export: %w", err)
	}
	return nil
}

// Import validates every member of the snapshot read from r, then writes
// them in one transaction. Invalid input writes nothing and returns an
// error wrapping ErrCorrupt. Returns the keys written.
func (t *Transfer) Import(ctx context.Context, r io.Reader) ([]string, error) {
	if t.uow == nil {
		return nil, errors.New("import needs a transactional store")
	}
	var snap Snapshot
	// Members other than the four known keys are ignored.
	if err := json.NewDecoder(r).Decode(&snap); err != nil {
		return nil, fmt.Errorf("import: %w: %v", ErrCorrupt, err)
	}

	staged := NewMemoryKV()
	var keys []string
	for _, f := range snap.fields() {
		if len(*f.dst) == 0 {
			continue
		}
		if err := f.check(ctx, staged, *f.dst); err != nil {
			return nil, err
		}
		keys = append(keys, f.key)
	}
	if len(keys) == 0 {
		return nil, nil
	}

	err := t.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		kv := NewSQLiteKV(tx)
		for _, k := range keys {
			v, _, _ := staged.Get(ctx, k)
			if err := kv.Set(ctx, k, v); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("import: %w", err)
	}
	return keys, nil
}

type snapshotField struct {
	key string
	dst *json.RawMessage
	// check decodes raw and stages its normalized encoding in kv.
	check func(ctx context.Context, kv KV, raw json.RawMessage) error
}

func (s *Snapshot) fields() []snapshotField {
	return []snapshotField{
		{KeyTaskColumns, &s.TaskColumns, func(ctx context.Context, kv KV, raw json.RawMessage) error {
			if err := kv.Set(ctx, KeyTaskColumns, string(raw)); err != nil {
				return err
			}
			repo := NewKVBoardRepo(kv)
			b, err := repo.Load(ctx)
			if err != nil {
				return err
			}
			b.DropBlankTasks()
			return repo.Save(ctx, b)
		}},
		{KeyDailyStats, &s.DailyStats, func(ctx context.Context, kv KV, raw json.RawMessage) error {
			var daily []domain.DailyStat
			if err := json.Unmarshal(raw, &daily); err != nil {
				return fmt.Errorf("%s: %w: %v", KeyDailyStats, ErrCorrupt, err)
			}
			if daily == nil {
				daily = []domain.DailyStat{}
			}
			return setJSON(ctx, kv, KeyDailyStats, daily)
		}},
		{KeyWeeklyStats, &s.WeeklyStats, func(ctx context.Context, kv KV, raw json.RawMessage) error {
			var weekly domain.WeeklyStat
			if err := json.Unmarshal(raw, &weekly); err != nil {
				return fmt.Errorf("%s: %w: %v", KeyWeeklyStats, ErrCorrupt, err)
			}
			return setJSON(ctx, kv, KeyWeeklyStats, weekly)
		}},
		{KeyTimerSettings, &s.TimerSettings, func(ctx context.Context, kv KV, raw json.RawMessage) error {
			var ts domain.TimerSettings
			if err := json.Unmarshal(raw, &ts); err != nil {
				return fmt.Errorf("%s: %w: %v", KeyTimerSettings, ErrCorrupt, err)
			}
			return NewKVSettingsRepo(kv).SaveSettings(ctx, ts)
		}},
	}
}
