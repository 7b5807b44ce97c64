// Package config tests configuration loading.
package config

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// isolate points HOME and the working directory at fresh temp dirs and
// clears every TASKLIST_ variable.
func isolate(t *testing.T) (home, work string) {
	t.Helper()
	home, work = t.TempDir(), t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("APPDATA", filepath.Join(home, "AppData"))
	for _, kv := range os.Environ() {
		if name, _, ok := strings.Cut(kv, "="); ok && strings.HasPrefix(name, "TASKLIST_") {
			t.Setenv(name, "")
		}
	}
	t.Chdir(work)
	return home, work
}

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func newFlagSet() *flag.FlagSet {
	return flag.NewFlagSet("test", flag.ContinueOnError)
}

func TestDefaults(t *testing.T) {
	isolate(t)
	cfg, err := Load(newFlagSet(), nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Store.Backend != DefaultBackend {
		t.Errorf("Store.Backend: got %q, want %q", cfg.Store.Backend, DefaultBackend)
	}
	if cfg.Store.Path != DefaultStorePath {
		t.Errorf("Store.Path: got %q, want %q", cfg.Store.Path, DefaultStorePath)
	}
	if cfg.Namespace != DefaultNamespace {
		t.Errorf("Namespace: got %q, want %q", cfg.Namespace, DefaultNamespace)
	}
	if cfg.RejectEmpty {
		t.Error("RejectEmpty: got true, want false")
	}
	if len(cfg.Files) != 0 {
		t.Errorf("Files: got %v, want none", cfg.Files)
	}
}

func TestLayering(t *testing.T) {
	home, work := isolate(t)
	writeFile(t, filepath.Join(home, ".tasklist", "config.toml"), `
namespace = "user"
theme = "neon"

[log]
level = "debug"
`)
	writeFile(t, filepath.Join(work, "tasklist.toml"), `
namespace = "project"

[store]
path = "todo-state.json"
`)
	t.Setenv("TASKLIST_THEME", "mono")

	fs := newFlagSet()
	cfg, err := Load(fs, []string{"-namespace", "flag", "ls"})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Namespace != "flag" {
		t.Errorf("Namespace: got %q, want flag", cfg.Namespace)
	}
	if cfg.Theme != "mono" {
		t.Errorf("Theme: got %q, want mono (env)", cfg.Theme)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level: got %q, want debug (user file)", cfg.Log.Level)
	}
	if cfg.Store.Path != "todo-state.json" {
		t.Errorf("Store.Path: got %q, want project file value", cfg.Store.Path)
	}
	if len(cfg.Files) != 2 {
		t.Errorf("Files: got %v, want user and project", cfg.Files)
	}
	if args := fs.Args(); len(args) != 1 || args[0] != "ls" {
		t.Errorf("remaining args: got %v, want [ls]", args)
	}
}

func TestLoadFromEnv(t *testing.T) {
	isolate(t)
	t.Setenv("TASKLIST_STORE", "Postgres")
	t.Setenv("TASKLIST_DSN", "postgres://localhost/todo")
	t.Setenv("TASKLIST_REJECT_EMPTY", "yes")
	t.Setenv("TASKLIST_LOG_FORMAT", "json")

	cfg, err := Load(newFlagSet(), nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Store.Backend != "postgres" {
		t.Errorf("Store.Backend: got %q, want postgres", cfg.Store.Backend)
	}
	if !cfg.RejectEmpty {
		t.Error("RejectEmpty: got false, want true")
	}
	if cfg.Log.Format != "json" {
		t.Errorf("Log.Format: got %q, want json", cfg.Log.Format)
	}
}

func TestPostgresAliases(t *testing.T) {
	for _, name := range []string{"postgresql", "PG"} {
		t.Run(name, func(t *testing.T) {
			isolate(t)
			cfg, err := Load(newFlagSet(), []string{"-store", name, "-dsn", "postgres://localhost/todo"})
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if cfg.Store.Backend != "postgres" {
				t.Errorf("Store.Backend: got %q, want postgres", cfg.Store.Backend)
			}
		})
	}
}

func TestEphemeralForcesMemory(t *testing.T) {
	isolate(t)
	cfg, err := Load(newFlagSet(), []string{"-store", "mysql", "-ephemeral"})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Store.Backend != "memory" {
		t.Errorf("Store.Backend: got %q, want memory", cfg.Store.Backend)
	}
}

func TestInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		file string
		args []string
	}{
		{name: "unknown backend", args: []string{"-store", "redis"}},
		{name: "sql without dsn", args: []string{"-store", "mysql"}},
		{name: "unknown toml key", file: "colour = \"red\"\n"},
		{name: "bad toml", file: "namespace = \n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, work := isolate(t)
			if tt.file != "" {
				writeFile(t, filepath.Join(work, ".tasklist.toml"), tt.file)
			}
			if _, err := Load(newFlagSet(), tt.args); err == nil {
				t.Error("Load() error = nil, want error")
			}
		})
	}
}

func TestExpandPath(t *testing.T) {
	home, _ := isolate(t)
	if got := expandPath("~/x.json"); got != filepath.Join(home, "x.json") {
		t.Errorf("expandPath: got %q", got)
	}
	if got := expandPath("rel/x.json"); got != "rel/x.json" {
		t.Errorf("expandPath: got %q", got)
	}
}
