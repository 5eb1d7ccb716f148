package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/glundgren93/ptv-cli/internal/departures"
	"github.com/glundgren93/ptv-cli/internal/model"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"PTV_DEV_ID", "PTV_API_KEY", "PTV_BASE_URL", "PTV_TIMEZONE", "PTV_LISTEN"} {
		t.Setenv(k, "")
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), DefaultFileName)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("expected no error when loading missing config, got: %v", err)
	}

	want := Default()
	if !reflect.DeepEqual(*cfg, want) {
		t.Errorf("loaded config = %+v, want defaults %+v", *cfg, want)
	}
}

func TestLoadYAMLAndEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("PTV_API_KEY", "env-key")

	path := filepath.Join(t.TempDir(), "config.yml")
	data := []byte(`
provider:
  devID: "3001234"
  apiKey: file-key
departures:
  mode: tram
  limit: 3
  clock: 24h
`)
	if err := os.WriteFile(path, data, 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Provider.DevID != "3001234" {
		t.Errorf("devID = %q, want 3001234", cfg.Provider.DevID)
	}
	if cfg.Provider.APIKey != "env-key" {
		t.Errorf("apiKey = %q, want env override env-key", cfg.Provider.APIKey)
	}
	if cfg.Provider.BaseURL != DefaultBaseURL {
		t.Errorf("baseURL = %q, want default %q", cfg.Provider.BaseURL, DefaultBaseURL)
	}
	if cfg.Departures.Limit != 3 {
		t.Errorf("limit = %d, want 3", cfg.Departures.Limit)
	}

	mode, err := cfg.Mode()
	if err != nil || mode != model.Tram {
		t.Errorf("mode = %v (%v), want tram", mode, err)
	}

	clock, err := cfg.Clock()
	if err != nil {
		t.Fatalf("clock: %v", err)
	}
	if clock.Layout != departures.Layout24h {
		t.Errorf("clock layout = %q, want %q", clock.Layout, departures.Layout24h)
	}
	if clock.Location.String() != DefaultTimezone {
		t.Errorf("clock location = %q, want %q", clock.Location, DefaultTimezone)
	}
}

func TestLoadInvalid(t *testing.T) {
	clearEnv(t)

	tests := []struct {
		name string
		yaml string
	}{
		{"bad yaml", "provider: [unterminated"},
		{"bad clock", "departures:\n  clock: 13h\n"},
		{"bad mode", "departures:\n  mode: ferry\n"},
		{"bad timezone", "departures:\n  timezone: Mars/Olympus\n"},
		{"limit too large", "departures:\n  limit: 50\n"},
		{"bad url", "provider:\n  baseURL: not a url\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yml")
			if err := os.WriteFile(path, []byte(tt.yaml), 0600); err != nil {
				t.Fatalf("failed to write config: %v", err)
			}
			if _, err := Load(path); err == nil {
				t.Errorf("expected error for %s", tt.name)
			}
		})
	}
}

func TestSetAndSave(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yml")

	cfg := Default()
	if err := cfg.Set("provider.devID", "42"); err != nil {
		t.Fatalf("set devID: %v", err)
	}
	if err := cfg.Set("departures.limit", "5"); err != nil {
		t.Fatalf("set limit: %v", err)
	}
	if err := cfg.Set("departures.limit", "five"); err == nil {
		t.Error("expected error for non-numeric limit")
	}
	if err := cfg.Set("nope.key", "x"); err == nil {
		t.Error("expected error for unknown key")
	}
	cfg.Departures.Limit = 5

	if err := Save(path, &cfg); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(*loaded, cfg) {
		t.Errorf("loaded config does not match saved config.\nGot: %+v\nExpected: %+v", *loaded, cfg)
	}
}

func TestLoadFileIgnoresEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("PTV_API_KEY", "env-key")

	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte("provider:\n  apiKey: file-key\n"), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Provider.APIKey != "file-key" {
		t.Errorf("apiKey = %q, want the file value", cfg.Provider.APIKey)
	}
	if cfg.Departures.Limit != Default().Departures.Limit {
		t.Errorf("limit = %d, want the default", cfg.Departures.Limit)
	}
}
