package config

import (
	"testing"

	"github.com/blackwell-systems/gradstat/internal/analytics"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv(EnvDataPath, "")
	t.Setenv(EnvSensitivity, "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.DataPath != "" {
		t.Errorf("expected empty data path, got %q", cfg.DataPath)
	}
	if cfg.Sensitivity != analytics.DefaultSensitivity {
		t.Errorf("expected default sensitivity %v, got %v", analytics.DefaultSensitivity, cfg.Sensitivity)
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv(EnvDataPath, "/data/graduates.csv")
	t.Setenv(EnvSensitivity, "3.5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.DataPath != "/data/graduates.csv" {
		t.Errorf("unexpected data path %q", cfg.DataPath)
	}
	if cfg.Sensitivity != 3.5 {
		t.Errorf("expected sensitivity 3.5, got %v", cfg.Sensitivity)
	}
}

func TestLoad_MalformedSensitivity(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"non numeric", "very"},
		{"zero", "0"},
		{"negative", "-2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvSensitivity, tt.value)
			if _, err := Load(); err == nil {
				t.Errorf("expected error for %q", tt.value)
			}
		})
	}
}
