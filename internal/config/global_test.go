package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matsen/routeviz/internal/anim"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	configDir := filepath.Join(dir, GlobalConfigDir)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(configDir, GlobalConfigFile), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func clearEnv(t *testing.T) {
	t.Setenv(EnvDBPath, "")
	t.Setenv(EnvFPS, "")
	t.Setenv(EnvSeed, "")
}

func TestGlobalConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	path := GlobalConfigPath()
	want := "/custom/config/routeviz/config.yml"
	if path != want {
		t.Errorf("GlobalConfigPath() = %q, want %q", path, want)
	}

	t.Setenv("XDG_CONFIG_HOME", "")
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot get home directory")
	}
	path = GlobalConfigPath()
	want = filepath.Join(home, ".config", "routeviz", "config.yml")
	if path != want {
		t.Errorf("GlobalConfigPath() = %q, want %q", path, want)
	}
}

func TestLoadGlobalConfig_NotFound(t *testing.T) {
	ResetGlobalConfigCache()
	defer ResetGlobalConfigCache()
	clearEnv(t)

	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)
	t.Setenv("XDG_DATA_HOME", filepath.Join(tmpDir, "data"))

	cfg, err := LoadGlobalConfig()
	if err != nil {
		t.Fatalf("LoadGlobalConfig() error = %v", err)
	}

	if cfg.Width != DefaultWidth || cfg.Height != DefaultHeight {
		t.Errorf("size = %vx%v, want defaults", cfg.Width, cfg.Height)
	}
	if cfg.FPS != DefaultFPS {
		t.Errorf("FPS = %v, want %v", cfg.FPS, DefaultFPS)
	}
	wantDB := filepath.Join(tmpDir, "data", "routeviz", "routes.db")
	if cfg.DBPath != wantDB {
		t.Errorf("DBPath = %q, want %q", cfg.DBPath, wantDB)
	}
	if cfg.Icon() != anim.Vehicle {
		t.Errorf("Icon() = %v, want vehicle", cfg.Icon())
	}
}

func TestLoadGlobalConfig_Valid(t *testing.T) {
	ResetGlobalConfigCache()
	defer ResetGlobalConfigCache()
	clearEnv(t)

	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, `
db_path: ~/maps/routes.db
width: 1024
height: 768
fps: 30
seed: 42
default_icon: pedestrian
log_json: true
`)
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	cfg, err := LoadGlobalConfig()
	if err != nil {
		t.Fatalf("LoadGlobalConfig() error = %v", err)
	}

	home, _ := os.UserHomeDir()
	if want := filepath.Join(home, "maps/routes.db"); cfg.DBPath != want {
		t.Errorf("DBPath = %q, want %q", cfg.DBPath, want)
	}
	if cfg.Width != 1024 || cfg.Height != 768 {
		t.Errorf("size = %vx%v, want 1024x768", cfg.Width, cfg.Height)
	}
	if cfg.FPS != 30 || cfg.Seed != 42 || !cfg.LogJSON {
		t.Errorf("got fps=%v seed=%v log_json=%v", cfg.FPS, cfg.Seed, cfg.LogJSON)
	}
	if cfg.Icon() != anim.Pedestrian {
		t.Errorf("Icon() = %v, want pedestrian", cfg.Icon())
	}

	again, _ := LoadGlobalConfig()
	if again != cfg {
		t.Error("second LoadGlobalConfig() did not return the cached config")
	}
}

func TestLoadGlobalConfig_EnvOverrides(t *testing.T) {
	ResetGlobalConfigCache()
	defer ResetGlobalConfigCache()

	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, "fps: 30\nseed: 1\n")
	t.Setenv("XDG_CONFIG_HOME", tmpDir)
	t.Setenv(EnvDBPath, "/tmp/other.db")
	t.Setenv(EnvFPS, "12.5")
	t.Setenv(EnvSeed, "99")

	cfg, err := LoadGlobalConfig()
	if err != nil {
		t.Fatalf("LoadGlobalConfig() error = %v", err)
	}
	if cfg.DBPath != "/tmp/other.db" || cfg.FPS != 12.5 || cfg.Seed != 99 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
}

func TestLoadGlobalConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		env     map[string]string
	}{
		{"invalid yaml", "width: [", nil},
		{"negative width", "width: -5", nil},
		{"negative fps", "fps: -1", nil},
		{"unknown icon", "default_icon: rocket", nil},
		{"bad fps env", "", map[string]string{EnvFPS: "fast"}},
		{"bad seed env", "", map[string]string{EnvSeed: "1.5"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ResetGlobalConfigCache()
			defer ResetGlobalConfigCache()
			clearEnv(t)

			tmpDir := t.TempDir()
			writeConfig(t, tmpDir, tt.content)
			t.Setenv("XDG_CONFIG_HOME", tmpDir)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			if _, err := LoadGlobalConfig(); err == nil {
				t.Error("LoadGlobalConfig() should return an error")
			}
		})
	}
}

func TestSave(t *testing.T) {
	ResetGlobalConfigCache()
	defer ResetGlobalConfigCache()
	clearEnv(t)

	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	cfg := Defaults()
	cfg.DBPath = filepath.Join(tmpDir, "r.db")
	cfg.FPS = 24
	if err := Save(cfg); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := LoadGlobalConfig()
	if err != nil {
		t.Fatalf("LoadGlobalConfig() error = %v", err)
	}
	if got.FPS != 24 || got.DBPath != cfg.DBPath {
		t.Errorf("round trip gave %+v", got)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot get home directory")
	}
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"/abs/path", "/abs/path"},
		{"rel/path", "rel/path"},
		{"~/x", filepath.Join(home, "x")},
	}
	for _, tt := range tests {
		if got := ExpandPath(tt.in); got != tt.want {
			t.Errorf("ExpandPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
