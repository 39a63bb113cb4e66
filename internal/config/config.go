package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the user editable settings stored in ~/.wtman/config.toml.
type Config struct {
	Language string        `toml:"language"`
	Setup    SetupBlock    `toml:"setup"`
	Worktree WorktreeBlock `toml:"worktree"`
}

// SetupBlock governs automatic environment setup after switching worktrees.
type SetupBlock struct {
	Auto *bool `toml:"auto"`
}

// AutoEnabled reports whether auto-setup should run.
func (s SetupBlock) AutoEnabled() bool {
	if s.Auto == nil {
		return true
	}
	return *s.Auto
}

// WorktreeBlock controls where worktrees are materialized.
type WorktreeBlock struct {
	BaseDir string `toml:"base_dir"`
}

// ErrInvalidLanguage indicates an unsupported language override.
var ErrInvalidLanguage = errors.New("config.language must be en or ko")

// Default returns a baseline configuration.
func Default() Config {
	return Config{}
}

// Validate ensures the configuration can guide wtman's behavior.
func (c Config) Validate() error {
	switch strings.ToLower(c.Language) {
	case "", "en", "ko":
		return nil
	default:
		return ErrInvalidLanguage
	}
}

// DefaultPath returns the per-user config location.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".wtman", "config.toml"), nil
}

// Load reads configuration from disk. Missing files return a default config.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, err
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Save writes configuration to disk, creating parent directories as needed.
func Save(path string, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
