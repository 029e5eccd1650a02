package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/focusboard/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func TestLoad_DefaultsWhenFileMissing(t *testing.T) {
	home := isolateHome(t)

	cfg, err := Load(filepath.Join(home, "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".focusboard", "focusboard.db"), cfg.DBPath)
	assert.Equal(t, domain.DefaultTimerSettings(), cfg.Timer.Settings())
	assert.Equal(t, SoundBell, cfg.Sound)
	assert.True(t, cfg.Notifications)
	assert.True(t, cfg.RecordStats)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.LogFile)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	home := isolateHome(t)
	path := filepath.Join(home, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
db_path: ~/data/board.db
timer:
  focus: 50
  short_break: 10
sound: none
log_file: ~/logs/focusboard.log
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "data", "board.db"), cfg.DBPath)
	assert.Equal(t, domain.TimerSettings{Focus: 50, ShortBreak: 10, LongBreak: 15}, cfg.Timer.Settings())
	assert.Equal(t, SoundNone, cfg.Sound)
	assert.Equal(t, filepath.Join(home, "logs", "focusboard.log"), cfg.LogFile)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	home := isolateHome(t)
	path := filepath.Join(home, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("timer:\n  focus: 50\nnotifications: true\n"), 0o644))
	t.Setenv("FOCUSBOARD_TIMER_FOCUS", "40")
	t.Setenv("FOCUSBOARD_TIMER_LONG_BREAK", "20")
	t.Setenv("FOCUSBOARD_NOTIFICATIONS", "false")
	t.Setenv("FOCUSBOARD_LOG_LEVEL", "debug")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 40, cfg.Timer.Focus)
	assert.Equal(t, 20, cfg.Timer.LongBreak)
	assert.False(t, cfg.Notifications)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_DurationsAreClampedNotRejected(t *testing.T) {
	home := isolateHome(t)
	path := filepath.Join(home, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("timer:\n  focus: 500\n  short_break: 0\n  long_break: -3\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, domain.TimerSettings{Focus: 60, ShortBreak: 1, LongBreak: 1}, cfg.Timer.Settings())
}

func TestLoad_Errors(t *testing.T) {
	cases := map[string]string{
		"malformed yaml": "timer: [focus",
		"unknown sound":  "sound: trumpet",
		"unknown level":  "log_level: loud",
		"empty database": "db_path: \"\"",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			home := isolateHome(t)
			path := filepath.Join(home, "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestWriteDefault(t *testing.T) {
	home := isolateHome(t)
	path := filepath.Join(home, ".focusboard", "config.yaml")

	require.NoError(t, WriteDefault(path, false))
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "# focusboard configuration.")

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(raw, &decoded))
	assert.Equal(t, "bell", decoded["sound"])
	assert.Equal(t, map[string]any{"focus": 25, "short_break": 5, "long_break": 15}, decoded["timer"])

	assert.ErrorIs(t, WriteDefault(path, false), ErrExists)
	assert.NoError(t, WriteDefault(path, true))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]slog.Level{
		"debug": slog.LevelDebug, "": slog.LevelInfo, "INFO": slog.LevelInfo,
		"warning": slog.LevelWarn, "error": slog.LevelError,
	} {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestOpenLogger(t *testing.T) {
	t.Run("discard without file", func(t *testing.T) {
		logger, closer, err := DefaultConfig().OpenLogger()
		require.NoError(t, err)
		logger.Info("dropped")
		assert.NoError(t, closer.Close())
	})
	t.Run("appends to file", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.LogFile = filepath.Join(t.TempDir(), "logs", "app.log")
		cfg.LogLevel = "warn"

		logger, closer, err := cfg.OpenLogger()
		require.NoError(t, err)
		logger.Info("hidden")
		logger.Warn("visible", "k", "v")
		require.NoError(t, closer.Close())

		raw, err := os.ReadFile(cfg.LogFile)
		require.NoError(t, err)
		assert.NotContains(t, string(raw), "hidden")
		assert.Contains(t, string(raw), "msg=visible k=v")
	})
}
