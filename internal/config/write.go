package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const fileHeader = `# focusboard configuration.
# Every key can be overridden with FOCUSBOARD_<KEY>, nested keys joined by
# underscores (FOCUSBOARD_TIMER_SHORT_BREAK=10).
#
# timer.*        minutes; focus and long_break 1-60, short_break 1-30
# sound          none | bell | beep
# log_level      debug | info | warn | error
# log_file       empty discards logs
`

// ErrExists is returned by WriteDefault when the file is already there and
// force is false.
var ErrExists = errors.New("config file already exists")

// WriteDefault writes DefaultConfig to path, creating parent directories.
func WriteDefault(path string, force bool) error {
	return Write(path, DefaultConfig(), force)
}

// Write marshals cfg to YAML at path.
func Write(path string, cfg *Config, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s: %w", path, ErrExists)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("checking %s: %w", path, err)
		}
	}
	body, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, append([]byte(fileHeader), body...), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// YAML renders cfg the way Write stores it, without the header.
func (c *Config) YAML() (string, error) {
	body, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("encoding config: %w", err)
	}
	return string(body), nil
}
