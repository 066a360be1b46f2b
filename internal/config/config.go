// Package config loads runtime configuration from the environment and an
// optional .env file.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	Port string `mapstructure:"PORT"`
	Env  string `mapstructure:"ENV"`

	DatabaseURL string `mapstructure:"DATABASE_URL"`
	DBMaxConns  int32  `mapstructure:"DB_MAX_CONNS"`
	DBMinConns  int32  `mapstructure:"DB_MIN_CONNS"`

	OutputDir    string `mapstructure:"OUTPUT_DIR"`
	ExportFormat string `mapstructure:"EXPORT_FORMAT"`

	PatientCount     int   `mapstructure:"PATIENT_COUNT"`
	ProviderCount    int   `mapstructure:"PROVIDER_COUNT"`
	DepartmentCount  int   `mapstructure:"DEPARTMENT_COUNT"`
	AppointmentCount int   `mapstructure:"APPOINTMENT_COUNT"`
	RandomSeed       int64 `mapstructure:"RANDOM_SEED"`

	RateLimitRPS   float64 `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst int     `mapstructure:"RATE_LIMIT_BURST"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("DB_MAX_CONNS", 20)
	v.SetDefault("DB_MIN_CONNS", 5)
	v.SetDefault("OUTPUT_DIR", "data/raw")
	v.SetDefault("EXPORT_FORMAT", "csv")
	v.SetDefault("PATIENT_COUNT", 5000)
	v.SetDefault("PROVIDER_COUNT", 100)
	v.SetDefault("DEPARTMENT_COUNT", 40)
	v.SetDefault("APPOINTMENT_COUNT", 100000)
	v.SetDefault("RANDOM_SEED", 0)
	v.SetDefault("RATE_LIMIT_RPS", 50)
	v.SetDefault("RATE_LIMIT_BURST", 100)

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("DATABASE_URL")
	v.BindEnv("DB_MAX_CONNS")
	v.BindEnv("DB_MIN_CONNS")
	v.BindEnv("OUTPUT_DIR")
	v.BindEnv("EXPORT_FORMAT")
	v.BindEnv("PATIENT_COUNT")
	v.BindEnv("PROVIDER_COUNT")
	v.BindEnv("DEPARTMENT_COUNT")
	v.BindEnv("APPOINTMENT_COUNT")
	v.BindEnv("RANDOM_SEED")
	v.BindEnv("RATE_LIMIT_RPS")
	v.BindEnv("RATE_LIMIT_BURST")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// Validate rejects configurations that would fail mid-run. DATABASE_URL is
// not checked here: only the db commands need it, and they check it
// themselves.
func (c *Config) Validate() error {
	if c.PatientCount <= 0 {
		return fmt.Errorf("PATIENT_COUNT must be positive, got %d", c.PatientCount)
	}
	if c.ProviderCount <= 0 {
		return fmt.Errorf("PROVIDER_COUNT must be positive, got %d", c.ProviderCount)
	}
	if c.DepartmentCount <= 0 {
		return fmt.Errorf("DEPARTMENT_COUNT must be positive, got %d", c.DepartmentCount)
	}
	if c.AppointmentCount <= 0 {
		return fmt.Errorf("APPOINTMENT_COUNT must be positive, got %d", c.AppointmentCount)
	}
	if c.ExportFormat != "csv" && c.ExportFormat != "ndjson" {
		return fmt.Errorf("EXPORT_FORMAT must be \"csv\" or \"ndjson\", got %q", c.ExportFormat)
	}
	if c.OutputDir == "" {
		return fmt.Errorf("OUTPUT_DIR must not be empty")
	}
	return nil
}
