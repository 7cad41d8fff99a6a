package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap/zapcore"
)

//go:embed config.toml
var defaultConfig []byte

// Name is the directory used under the user config and cache dirs.
const Name = "hyprkeys"

// Config holds the hyprkeys configuration.
type Config struct {
	KeybindsPath  string `toml:"keybinds_path"`
	DatabasePath  string `toml:"database_path"`
	CommentScript string `toml:"comment_script"`

	Log     Log     `toml:"log"`
	Display Display `toml:"display"`
}

// Log controls the diagnostic logger.
type Log struct {
	Level string `toml:"level"`
}

// Display controls how keys are rendered in text output.
type Display struct {
	Symbols       bool              `toml:"symbols"`
	Substitutions map[string]string `toml:"substitutions"`
}

// DefaultPath returns the default config file path.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, Name, "config.toml")
}

// Default returns the embedded default configuration.
func Default() (*Config, error) {
	var cfg Config
	if err := toml.Unmarshal(defaultConfig, &cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded config: %w", err)
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

// Load reads the config at path over the embedded defaults. A missing file
// is not an error; the defaults are returned unchanged.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := toml.Unmarshal(defaultConfig, &cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded config: %w", err)
	}

	md, err := toml.DecodeFile(path, &cfg)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("parsing config file: %w", err)
	default:
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("config validation: unknown key %q", undecoded[0].String())
		}
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return &cfg, nil
}

// Save writes cfg to path, creating parent dirs as needed.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	encErr := toml.NewEncoder(f).Encode(cfg)
	if closeErr := f.Close(); closeErr != nil && encErr == nil {
		return closeErr
	}
	return encErr
}

// applyDefaults fills values the TOML file may have blanked.
func applyDefaults(cfg *Config) {
	if cfg.KeybindsPath == "" {
		cfg.KeybindsPath = "~/.config/hypr/hyprland.conf"
	}
	if cfg.DatabasePath == "" {
		cfg.DatabasePath = filepath.Join("~/.cache", Name, "keybinds.db")
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "warn"
	}
	if cfg.Display.Substitutions == nil {
		cfg.Display.Substitutions = map[string]string{}
	}
}

func validate(cfg *Config) error {
	if _, err := zapcore.ParseLevel(cfg.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	for k := range cfg.Display.Substitutions {
		if k == "" {
			return errors.New("display.substitutions: empty key name")
		}
	}
	return nil
}

// ExpandPath replaces a leading "~" with the home directory and expands
// $VAR references.
func ExpandPath(p string) string {
	if p == "~" || len(p) > 1 && p[0] == '~' && p[1] == '/' {
		if home, err := os.UserHomeDir(); err == nil {
			p = home + p[1:]
		}
	}
	return os.ExpandEnv(p)
}
