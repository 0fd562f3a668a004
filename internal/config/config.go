// Package config resolves the checklist file path. Resolution happens once,
// before any command executes; commands never re-resolve or cache paths.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	// EnvFile overrides every other source of the checklist file path.
	EnvFile = "CHECKLIST_FILE"

	DefaultConfigFileName = "config.toml"
	DefaultChecklistName  = "checklist"
)

type Config struct {
	// File is the checklist file path. Empty means the default location
	// next to the config file.
	File string `toml:"file"`
}

// Resolve returns the absolute checklist file path, trying in order: the
// explicit override (--file), the CHECKLIST_FILE environment variable, the
// file key in config.toml, and the default location under the user config
// directory. The resolved file is created empty when missing, so every
// command can assume it exists.
func Resolve(override string) (string, error) {
	if override != "" {
		return ensure(override)
	}
	if env := os.Getenv(EnvFile); env != "" {
		return ensure(env)
	}
	dir, err := baseDir()
	if err != nil {
		return "", err
	}
	cfg, err := LoadOrCreate(filepath.Join(dir, DefaultConfigFileName))
	if err != nil {
		return "", err
	}
	if cfg.File != "" {
		return ensure(cfg.File)
	}
	return ensure(filepath.Join(dir, DefaultChecklistName))
}

// ConfigPath returns the config file location without creating anything.
func ConfigPath() (string, error) {
	dir, err := baseDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, DefaultConfigFileName), nil
}

// LoadOrCreate reads the TOML config, writing one with defaults when the
// file does not exist yet.
func LoadOrCreate(path string) (Config, error) {
	cfg := Config{}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func write(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func baseDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate user config dir (set %s to pick a checklist file): %w", EnvFile, err)
	}
	return filepath.Join(base, "checklist"), nil
}

// ensure makes the path absolute and touches the file so later whole-file
// reads never have to special-case a missing checklist.
func ensure(path string) (string, error) {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create checklist dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("touch checklist file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return path, nil
}
