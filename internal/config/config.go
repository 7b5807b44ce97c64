// Package config loads tasklist settings from defaults, TOML files,
// environment variables and flags.
package config

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"
)

// Defaults.
const (
	DefaultBackend   = "file"
	DefaultStorePath = "tasklist.json"
	DefaultTable     = "tasklist_kv"
	DefaultNamespace = "tasklist"
	DefaultTheme     = "classic"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

// Config is the full set of settings.
type Config struct {
	Store       StoreConfig `toml:"store"`
	Log         LogConfig   `toml:"log"`
	Namespace   string      `toml:"namespace"`
	RejectEmpty bool        `toml:"reject_empty"`
	Theme       string      `toml:"theme"`

	// Ephemeral forces the in-memory backend. Flag only.
	Ephemeral bool `toml:"-"`
	// Files lists the config files that were applied, lowest priority first.
	Files []string `toml:"-"`
}

// StoreConfig selects the key-value backend.
type StoreConfig struct {
	Backend string `toml:"backend"`
	Path    string `toml:"path"`
	DSN     string `toml:"dsn"`
	Table   string `toml:"table"`
}

// LogConfig controls the logger.
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
	File   string `toml:"file"`
}

// Load builds the config in priority order:
// 1. Defaults
// 2. User config file (~/.tasklist/config.toml or OS config dir)
// 3. Project config file (tasklist.toml or .tasklist.toml in the working dir)
// 4. Environment variables
// 5. CLI flags
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	cfg := &Config{}
	setDefaults(cfg)

	if p := findUserConfigFile(); p != "" {
		if err := loadConfigFile(cfg, p); err != nil {
			return nil, fmt.Errorf("loading user config file %s: %w", p, err)
		}
	}
	if p := findProjectConfigFile(); p != "" {
		if err := loadConfigFile(cfg, p); err != nil {
			return nil, fmt.Errorf("loading project config file %s: %w", p, err)
		}
	}

	loadFromEnv(cfg)

	if err := parseFlags(cfg, fs, args); err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}

	if err := finalizeConfig(cfg); err != nil {
		return nil, fmt.Errorf("finalizing config: %w", err)
	}
	return cfg, nil
}

func setDefaults(cfg *Config) {
	cfg.Store = StoreConfig{
		Backend: DefaultBackend,
		Path:    DefaultStorePath,
		Table:   DefaultTable,
	}
	cfg.Log = LogConfig{
		Level:  DefaultLogLevel,
		Format: DefaultLogFormat,
	}
	cfg.Namespace = DefaultNamespace
	cfg.Theme = DefaultTheme
}

// loadConfigFile decodes a TOML file over cfg. Keys absent from the file
// leave cfg untouched.
func loadConfigFile(cfg *Config, path string) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	cfg.Files = append(cfg.Files, path)
	return nil
}

func findUserConfigFile() string {
	home, err := os.UserHomeDir()
	if err == nil {
		p := filepath.Join(home, ".tasklist", "config.toml")
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	if dir := osUserConfigDir(); dir != "" {
		p := filepath.Join(dir, "tasklist", "config.toml")
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// osUserConfigDir returns the OS-specific user config directory, or "".
func osUserConfigDir() string {
	switch runtime.GOOS {
	case "windows":
		return os.Getenv("APPDATA")
	case "darwin":
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, "Library", "Application Support")
		}
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return xdg
		}
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, ".config")
		}
	}
	return ""
}

func findProjectConfigFile() string {
	for _, name := range []string{"tasklist.toml", ".tasklist.toml"} {
		if _, err := os.Stat(name); err == nil {
			if abs, err := filepath.Abs(name); err == nil {
				return abs
			}
			return name
		}
	}
	return ""
}

func loadFromEnv(cfg *Config) {
	if v := os.Getenv("TASKLIST_STORE"); v != "" {
		cfg.Store.Backend = v
	}
	if v := os.Getenv("TASKLIST_STORE_PATH"); v != "" {
		cfg.Store.Path = v
	}
	if v := os.Getenv("TASKLIST_DSN"); v != "" {
		cfg.Store.DSN = v
	}
	if v := os.Getenv("TASKLIST_TABLE"); v != "" {
		cfg.Store.Table = v
	}
	if v := os.Getenv("TASKLIST_NAMESPACE"); v != "" {
		cfg.Namespace = v
	}
	if v := os.Getenv("TASKLIST_REJECT_EMPTY"); v != "" {
		cfg.RejectEmpty = boolFromString(v)
	}
	if v := os.Getenv("TASKLIST_THEME"); v != "" {
		cfg.Theme = v
	}
	if v := os.Getenv("TASKLIST_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("TASKLIST_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("TASKLIST_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
}

func boolFromString(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

// parseFlags binds root flags directly onto cfg so unset flags keep the
// value from earlier layers.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string) error {
	if fs == nil {
		fs = flag.NewFlagSet("tasklist", flag.ContinueOnError)
	}
	fs.StringVar(&cfg.Store.Backend, "store", cfg.Store.Backend, "storage backend: file, memory, postgres, mysql")
	fs.StringVar(&cfg.Store.Path, "store-path", cfg.Store.Path, "path of the file backend")
	fs.StringVar(&cfg.Store.DSN, "dsn", cfg.Store.DSN, "connection string for sql backends")
	fs.StringVar(&cfg.Namespace, "namespace", cfg.Namespace, "prefix for stored keys")
	fs.BoolVar(&cfg.RejectEmpty, "reject-empty", cfg.RejectEmpty, "refuse to add blank items")
	fs.StringVar(&cfg.Theme, "theme", cfg.Theme, "color theme: classic, neon, mono")
	fs.StringVar(&cfg.Log.Level, "log-level", cfg.Log.Level, "log level: debug, info, warn, error")
	fs.StringVar(&cfg.Log.File, "log-file", cfg.Log.File, "append logs to this file")
	fs.BoolVar(&cfg.Ephemeral, "ephemeral", cfg.Ephemeral, "keep state in memory only")
	return fs.Parse(args)
}

func finalizeConfig(cfg *Config) error {
	if cfg.Ephemeral {
		cfg.Store.Backend = "memory"
	}
	cfg.Store.Backend = strings.ToLower(strings.TrimSpace(cfg.Store.Backend))
	switch cfg.Store.Backend {
	case "postgresql", "pg":
		cfg.Store.Backend = "postgres"
	}
	switch cfg.Store.Backend {
	case "file", "memory":
	case "postgres", "mysql":
		if cfg.Store.DSN == "" {
			return fmt.Errorf("store backend %s needs a dsn", cfg.Store.Backend)
		}
	default:
		return fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
	cfg.Store.Path = expandPath(cfg.Store.Path)
	cfg.Log.File = expandPath(cfg.Log.File)
	if strings.TrimSpace(cfg.Namespace) == "" {
		cfg.Namespace = DefaultNamespace
	}
	return nil
}

// expandPath expands a leading ~ to the home directory.
func expandPath(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}
