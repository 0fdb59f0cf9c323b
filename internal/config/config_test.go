package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	t.Setenv("PETMATE_API", "http://localhost:8090/")

	yamlContent := `
app:
  name: "petmate-test"
backend:
  base_url: "${PETMATE_API}"
  timeout: 3s
gateway:
  port: 18080
  rate_limit:
    rps: 10
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Backend.BaseURL != "http://localhost:8090" {
		t.Errorf("expected trimmed base url, got %s", cfg.Backend.BaseURL)
	}
	if cfg.Backend.Timeout != 3*time.Second {
		t.Errorf("expected timeout 3s, got %s", cfg.Backend.Timeout)
	}
	if cfg.Gateway.Port != 18080 {
		t.Errorf("expected port 18080, got %d", cfg.Gateway.Port)
	}
	if cfg.Gateway.RateLimit.Burst != 5 {
		t.Errorf("expected default burst 5, got %d", cfg.Gateway.RateLimit.Burst)
	}
	if cfg.App.Timezone != "Asia/Seoul" {
		t.Errorf("expected default timezone, got %s", cfg.App.Timezone)
	}
	if cfg.Session.TTL != 24*time.Hour {
		t.Errorf("expected default session ttl, got %s", cfg.Session.TTL)
	}
	if cfg.Dashboard.SnapshotTTL != time.Minute {
		t.Errorf("expected default snapshot ttl, got %s", cfg.Dashboard.SnapshotTTL)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name: "valid config",
			cfg: Config{
				App:     AppConfig{Timezone: "UTC"},
				Backend: BackendConfig{BaseURL: "https://api.petmate.kr"},
			},
			wantErr: false,
		},
		{
			name:    "missing base url",
			cfg:     Config{App: AppConfig{Timezone: "UTC"}},
			wantErr: true,
		},
		{
			name: "relative base url",
			cfg: Config{
				App:     AppConfig{Timezone: "UTC"},
				Backend: BackendConfig{BaseURL: "/api"},
			},
			wantErr: true,
		},
		{
			name: "bad timezone",
			cfg: Config{
				App:     AppConfig{Timezone: "Mars/Olympus"},
				Backend: BackendConfig{BaseURL: "http://localhost:8090"},
			},
			wantErr: true,
		},
		{
			name: "negative timeout",
			cfg: Config{
				App:     AppConfig{Timezone: "UTC"},
				Backend: BackendConfig{BaseURL: "http://localhost:8090", Timeout: -time.Second},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
