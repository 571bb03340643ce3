package config

import (
	"testing"
)

func TestEnvOverrides(t *testing.T) {
	t.Setenv("CM_PORT", "9000")
	t.Setenv("CM_ENVIRONMENT", "production")
	t.Setenv("CM_MANIFEST_PATH", "/etc/types.yaml")
	t.Setenv("CM_LOG_LEVEL", "debug")
	t.Setenv("CM_LOG_FORMAT", "json")
	t.Setenv("CM_ENABLE_EVENT_LOGGING", "false")
	t.Setenv("CM_ENABLE_METRICS", "true")

	cfg, err := Load(WithEnv("CM_"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "9000" {
		t.Errorf("expected port %q, got %q", "9000", cfg.Port)
	}
	if cfg.Environment != "production" {
		t.Errorf("expected environment %q, got %q", "production", cfg.Environment)
	}
	if cfg.ManifestPath != "/etc/types.yaml" {
		t.Errorf("expected manifest path %q, got %q", "/etc/types.yaml", cfg.ManifestPath)
	}
	if cfg.LogLevel != "debug" || cfg.LogFormat != "json" {
		t.Errorf("unexpected logging config %q/%q", cfg.LogLevel, cfg.LogFormat)
	}
	if cfg.EnableEventLogging {
		t.Error("expected event logging to be disabled")
	}
	if !cfg.EnableMetrics {
		t.Error("expected metrics to be enabled")
	}
}

func TestEnvInvalidBool(t *testing.T) {
	tests := []struct {
		name string
		key  string
	}{
		{"event logging", "ENABLE_EVENT_LOGGING"},
		{"metrics", "ENABLE_METRICS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, "maybe")
			if _, err := Load(WithEnv("")); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestEnvInvalidLogFormat(t *testing.T) {
	t.Setenv("LOG_FORMAT", "xml")
	if _, err := Load(WithEnv("")); err == nil {
		t.Error("expected error, got nil")
	}
}

func TestEnvUnsetKeepsDefaults(t *testing.T) {
	cfg, err := Load(WithEnv("CM_UNSET_PREFIX_"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("expected default port, got %q", cfg.Port)
	}
	if !cfg.EnableEventLogging {
		t.Error("expected event logging default to be true")
	}
}
