package config

import (
	"os"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "8000" {
		t.Errorf("expected default port 8000, got %s", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Errorf("expected default env development, got %s", cfg.Env)
	}
	if cfg.PatientCount != 5000 {
		t.Errorf("expected default patient count 5000, got %d", cfg.PatientCount)
	}
	if cfg.AppointmentCount != 100000 {
		t.Errorf("expected default appointment count 100000, got %d", cfg.AppointmentCount)
	}
	if cfg.ExportFormat != "csv" {
		t.Errorf("expected default export format csv, got %s", cfg.ExportFormat)
	}
	if cfg.OutputDir != "data/raw" {
		t.Errorf("expected default output dir data/raw, got %s", cfg.OutputDir)
	}
	if cfg.DBMaxConns != 20 {
		t.Errorf("expected default max conns 20, got %d", cfg.DBMaxConns)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	os.Setenv("PATIENT_COUNT", "100")
	os.Setenv("RANDOM_SEED", "42")
	os.Setenv("EXPORT_FORMAT", "ndjson")
	defer func() {
		os.Unsetenv("PATIENT_COUNT")
		os.Unsetenv("RANDOM_SEED")
		os.Unsetenv("EXPORT_FORMAT")
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.PatientCount != 100 {
		t.Errorf("expected patient count 100, got %d", cfg.PatientCount)
	}
	if cfg.RandomSeed != 42 {
		t.Errorf("expected random seed 42, got %d", cfg.RandomSeed)
	}
	if cfg.ExportFormat != "ndjson" {
		t.Errorf("expected export format ndjson, got %s", cfg.ExportFormat)
	}
}

func TestLoad_RejectsBadFormat(t *testing.T) {
	os.Setenv("EXPORT_FORMAT", "parquet")
	defer os.Unsetenv("EXPORT_FORMAT")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for unsupported export format")
	}
}

func TestValidate_RejectsNonPositiveCounts(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
	}{
		{"zero patients", Config{PatientCount: 0, ProviderCount: 1, DepartmentCount: 1, AppointmentCount: 1, ExportFormat: "csv", OutputDir: "out"}},
		{"negative providers", Config{PatientCount: 1, ProviderCount: -1, DepartmentCount: 1, AppointmentCount: 1, ExportFormat: "csv", OutputDir: "out"}},
		{"zero appointments", Config{PatientCount: 1, ProviderCount: 1, DepartmentCount: 1, AppointmentCount: 0, ExportFormat: "csv", OutputDir: "out"}},
	}
	for _, tc := range cases {
		if err := tc.cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tc.name)
		}
	}
}

func TestConfig_IsDev(t *testing.T) {
	c := &Config{Env: "development"}
	if !c.IsDev() {
		t.Error("expected IsDev() to return true for development")
	}

	c.Env = "production"
	if c.IsDev() {
		t.Error("expected IsDev() to return false for production")
	}
}
