package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.OutputDir != "." {
		t.Errorf("Expected default output dir '.', got %s", cfg.OutputDir)
	}
	if cfg.Downsample != 150 {
		t.Errorf("Expected default downsample 150, got %d", cfg.Downsample)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("Expected default log level info, got %s", cfg.LogLevel)
	}
	if cfg.DrugName != "Medication" || cfg.Unit != "mg/L" {
		t.Errorf("Unexpected label defaults: %s / %s", cfg.DrugName, cfg.Unit)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DRUGLEVEL_OUTPUT_DIR", "/tmp/runs")
	t.Setenv("DRUGLEVEL_DOWNSAMPLE", "50")
	t.Setenv("DRUGLEVEL_LOG_LEVEL", "debug")
	t.Setenv("DRUGLEVEL_DRUG_NAME", "Caffeine")
	t.Setenv("DRUGLEVEL_UNIT", "mg")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.OutputDir != "/tmp/runs" || cfg.Downsample != 50 {
		t.Errorf("Overrides not applied: %+v", cfg)
	}
	if cfg.LogLevel != "debug" || cfg.DrugName != "Caffeine" || cfg.Unit != "mg" {
		t.Errorf("Overrides not applied: %+v", cfg)
	}
}

func TestLoadInvalidDownsample(t *testing.T) {
	t.Setenv("DRUGLEVEL_DOWNSAMPLE", "not-a-number")
	if _, err := Load(); err == nil {
		t.Error("Expected error for non-numeric downsample")
	}

	t.Setenv("DRUGLEVEL_DOWNSAMPLE", "1")
	if _, err := Load(); err == nil {
		t.Error("Expected error for downsample below 2")
	}
}
