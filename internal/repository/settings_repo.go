package repository

import (
	"context"

	"github.com/alexanderramin/focusboard/internal/domain"
)

// KVSettingsRepo persists timer durations under timerSettings.
type KVSettingsRepo struct {
	kv KV
}

func NewKVSettingsRepo(kv KV) *KVSettingsRepo {
	return &KVSettingsRepo{kv: kv}
}

// LoadSettings returns the stored durations, clamped into bounds.
func (r *KVSettingsRepo) LoadSettings(ctx context.Context) (domain.TimerSettings, error) {
	var s domain.TimerSettings
	if err := getJSON(ctx, r.kv, KeyTimerSettings, &s); err != nil {
		return domain.TimerSettings{}, err
	}
	return s.Clamp(), nil
}

func (r *KVSettingsRepo) SaveSettings(ctx context.Context, s domain.TimerSettings) error {
	return setJSON(ctx, r.kv, KeyTimerSettings, s.Clamp())
}
