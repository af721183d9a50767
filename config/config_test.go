package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "contentgraph.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, "model:\n  path: model.json\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want default", cfg.Server.Host)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 30*time.Second {
		t.Errorf("Server.ReadTimeout = %v", cfg.Server.ReadTimeout)
	}
	if cfg.Database.Path != "contentgraph.db" {
		t.Errorf("Database.Path = %q", cfg.Database.Path)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "json" {
		t.Errorf("Logging = %+v", cfg.Logging)
	}
	if cfg.Metrics.Path != "/metrics" {
		t.Errorf("Metrics.Path = %q", cfg.Metrics.Path)
	}
	if cfg.Model.Owner != "default" {
		t.Errorf("Model.Owner = %q", cfg.Model.Owner)
	}
}

func TestLoadFull(t *testing.T) {
	path := writeConfig(t, `
model:
  path: export/model.json
  use_name_for_id: true
  type_prefix: Cms
  owner: space1
server:
  host: 127.0.0.1
  port: 9090
database:
  path: /var/lib/contentgraph/nodes.db
logging:
  level: debug
  format: console
metrics:
  enabled: true
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if !cfg.Model.UseNameForID || cfg.Model.TypePrefix != "Cms" || cfg.Model.Owner != "space1" {
		t.Errorf("Model = %+v", cfg.Model)
	}
	if cfg.Server.Host != "127.0.0.1" || cfg.Server.Port != 9090 {
		t.Errorf("Server = %+v", cfg.Server)
	}
	if !cfg.Metrics.Enabled {
		t.Error("Metrics.Enabled = false")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("CONTENTGRAPH_MODEL_PATH", "env-model.json")
	t.Setenv("CONTENTGRAPH_SERVER_PORT", "7070")
	t.Setenv("CONTENTGRAPH_LOG_LEVEL", "warn")
	t.Setenv("CONTENTGRAPH_MODEL_USE_NAME_FOR_ID", "true")

	path := writeConfig(t, "model:\n  path: file-model.json\nlogging:\n  level: debug\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Model.Path != "env-model.json" {
		t.Errorf("Model.Path = %q, want env override", cfg.Model.Path)
	}
	if cfg.Server.Port != 7070 {
		t.Errorf("Server.Port = %d, want 7070", cfg.Server.Port)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, want warn", cfg.Logging.Level)
	}
	if !cfg.Model.UseNameForID {
		t.Error("Model.UseNameForID = false, want env override true")
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"missing model path", "server:\n  port: 8080\n", "model.path is required"},
		{"bad log level", "model:\n  path: m.json\nlogging:\n  level: verbose\n", "logging.level"},
		{"bad log format", "model:\n  path: m.json\nlogging:\n  format: xml\n", "logging.format"},
		{"bad port", "model:\n  path: m.json\nserver:\n  port: 99999\n", "server.port"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("Load() expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Load() error = %q, want substring %q", err, tt.want)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("Load() expected error for missing file")
	}
}
