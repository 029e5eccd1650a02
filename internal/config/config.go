// Package config loads focusboard settings from defaults, an optional YAML
// file and FOCUSBOARD_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexanderramin/focusboard/internal/domain"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g.
// FOCUSBOARD_TIMER_FOCUS=50.
const EnvPrefix = "FOCUSBOARD"

// Sound backends.
const (
	SoundNone = "none"
	SoundBell = "bell"
	SoundBeep = "beep"
)

type TimerConfig struct {
	Focus      int `mapstructure:"focus" yaml:"focus"`
	ShortBreak int `mapstructure:"short_break" yaml:"short_break"`
	LongBreak  int `mapstructure:"long_break" yaml:"long_break"`
}

// Settings returns the durations clamped to their bounds.
func (t TimerConfig) Settings() domain.TimerSettings {
	return domain.TimerSettings{Focus: t.Focus, ShortBreak: t.ShortBreak, LongBreak: t.LongBreak}.Clamp()
}

type Config struct {
	DBPath        string      `mapstructure:"db_path" yaml:"db_path"`
	Timer         TimerConfig `mapstructure:"timer" yaml:"timer"`
	Sound         string      `mapstructure:"sound" yaml:"sound"`
	Notifications bool        `mapstructure:"notifications" yaml:"notifications"`
	RecordStats   bool        `mapstructure:"record_stats" yaml:"record_stats"`
	LogLevel      string      `mapstructure:"log_level" yaml:"log_level"`
	LogFile       string      `mapstructure:"log_file" yaml:"log_file"`
}

// Dir returns ~/.focusboard.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".focusboard"), nil
}

// DefaultPath returns ~/.focusboard/config.yaml.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// DefaultConfig returns the built-in configuration. The database lives
// next to the config file; timer durations are the classic 25/5/15.
func DefaultConfig() *Config {
	dbPath := "focusboard.db"
	if dir, err := Dir(); err == nil {
		dbPath = filepath.Join(dir, "focusboard.db")
	}
	s := domain.DefaultTimerSettings()
	return &Config{
		DBPath: dbPath,
		Timer: TimerConfig{
			Focus:      s.Focus,
			ShortBreak: s.ShortBreak,
			LongBreak:  s.LongBreak,
		},
		Sound:         SoundBell,
		Notifications: true,
		RecordStats:   true,
		LogLevel:      "info",
	}
}

// Load merges defaults, the YAML file at path (skipped when it does not
// exist) and the environment. An empty path means DefaultPath.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return DefaultConfig(), nil
		}
		path = p
	}

	v := viper.New()
	setDefaults(v, DefaultConfig())
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("checking %s: %w", path, err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.DBPath = expandHome(cfg.DBPath)
	cfg.LogFile = expandHome(cfg.LogFile)
	return cfg, nil
}

// Validate rejects unknown enum values. Durations are clamped later, never
// rejected.
func (c *Config) Validate() error {
	switch c.Sound {
	case SoundNone, SoundBell, SoundBeep:
	default:
		return fmt.Errorf("sound: unknown backend %q (want none, bell or beep)", c.Sound)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if strings.TrimSpace(c.DBPath) == "" {
		return errors.New("db_path must not be empty")
	}
	return nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("db_path", d.DBPath)
	v.SetDefault("timer.focus", d.Timer.Focus)
	v.SetDefault("timer.short_break", d.Timer.ShortBreak)
	v.SetDefault("timer.long_break", d.Timer.LongBreak)
	v.SetDefault("sound", d.Sound)
	v.SetDefault("notifications", d.Notifications)
	v.SetDefault("record_stats", d.RecordStats)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_file", d.LogFile)
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
