package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/noshow/noshow/internal/config"
	"github.com/noshow/noshow/internal/export"
	"github.com/noshow/noshow/internal/platform/db"
	"github.com/noshow/noshow/internal/platform/middleware"
	"github.com/noshow/noshow/internal/server"
	"github.com/noshow/noshow/internal/synth"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "noshow-gen",
		Short: "Synthetic appointment no-show dataset generator",
	}

	rootCmd.AddCommand(generateCmd())
	rootCmd.AddCommand(seedCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(serveCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger() zerolog.Logger {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "" || os.Getenv("ENV") == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}
	return logger
}

func genConfig(cfg *config.Config, cmd *cobra.Command) synth.Config {
	gc := synth.Config{
		PatientCount:     cfg.PatientCount,
		ProviderCount:    cfg.ProviderCount,
		DepartmentCount:  cfg.DepartmentCount,
		AppointmentCount: cfg.AppointmentCount,
		Seed:             cfg.RandomSeed,
	}
	if n, err := cmd.Flags().GetInt("patients"); err == nil && n > 0 {
		gc.PatientCount = n
	}
	if n, err := cmd.Flags().GetInt("providers"); err == nil && n > 0 {
		gc.ProviderCount = n
	}
	if n, err := cmd.Flags().GetInt("departments"); err == nil && n > 0 {
		gc.DepartmentCount = n
	}
	if n, err := cmd.Flags().GetInt("appointments"); err == nil && n > 0 {
		gc.AppointmentCount = n
	}
	if s, err := cmd.Flags().GetInt64("seed"); err == nil && s != 0 {
		gc.Seed = s
	}
	return gc
}

func addGenFlags(cmd *cobra.Command) {
	cmd.Flags().Int("patients", 0, "Number of patients (overrides PATIENT_COUNT)")
	cmd.Flags().Int("providers", 0, "Number of providers (overrides PROVIDER_COUNT)")
	cmd.Flags().Int("departments", 0, "Number of departments (overrides DEPARTMENT_COUNT)")
	cmd.Flags().Int("appointments", 0, "Target number of appointments (overrides APPOINTMENT_COUNT)")
	cmd.Flags().Int64("seed", 0, "Random seed for reproducible output (overrides RANDOM_SEED)")
}

func generateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a synthetic dataset and write it to disk",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			outDir, _ := cmd.Flags().GetString("out")
			if outDir == "" {
				outDir = cfg.OutputDir
			}
			formatName, _ := cmd.Flags().GetString("format")
			if formatName == "" {
				formatName = cfg.ExportFormat
			}
			format, err := export.ParseFormat(formatName)
			if err != nil {
				return err
			}

			gc := genConfig(cfg, cmd)
			gen := synth.NewGenerator(gc)

			logger.Info().
				Int("patients", gc.PatientCount).
				Int("providers", gc.ProviderCount).
				Int("departments", gc.DepartmentCount).
				Int("appointments", gc.AppointmentCount).
				Int64("seed", gc.Seed).
				Msg("generating dataset")

			ds, result, err := gen.Generate()
			if err != nil {
				return fmt.Errorf("generate dataset: %w", err)
			}

			files, err := export.WriteDataset(outDir, ds, format)
			if err != nil {
				return fmt.Errorf("write dataset: %w", err)
			}

			for entity, path := range files {
				logger.Info().Str("entity", entity).Str("file", path).Msg("wrote export")
			}
			logger.Info().
				Int("appointments", result.Appointments).
				Int("past_appointments", result.PastAppointments).
				Float64("no_show_rate", result.NoShowRate).
				Dur("duration", result.Duration).
				Msg("generation complete")
			return nil
		},
	}
	addGenFlags(cmd)
	cmd.Flags().String("out", "", "Output directory (overrides OUTPUT_DIR)")
	cmd.Flags().String("format", "", "Export format: csv or ndjson (overrides EXPORT_FORMAT)")
	return cmd
}

func seedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Generate a synthetic dataset and bulk-load it into PostgreSQL",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.DatabaseURL == "" {
				return fmt.Errorf("DATABASE_URL is required for seeding")
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			gc := genConfig(cfg, cmd)
			gen := synth.NewGenerator(gc)

			logger.Info().Int64("seed", gc.Seed).Msg("generating dataset")
			ds, result, err := gen.Generate()
			if err != nil {
				return fmt.Errorf("generate dataset: %w", err)
			}
			logger.Info().
				Int("appointments", result.Appointments).
				Float64("no_show_rate", result.NoShowRate).
				Msg("dataset generated, loading into database")

			seeder := db.NewDatasetSeeder(pool, logger)
			counts, err := seeder.Seed(ctx, ds)
			if err != nil {
				return fmt.Errorf("seed database: %w", err)
			}

			var total int64
			for _, n := range counts {
				total += n
			}
			logger.Info().Int64("total_rows", total).Msg("seed complete")
			return nil
		},
	}
	addGenFlags(cmd)
	return cmd
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.DatabaseURL == "" {
				return fmt.Errorf("DATABASE_URL is required for migrations")
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			count, err := migrator.Up(ctx)
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			fmt.Printf("Applied %d migration(s) successfully.\n", count)
			return nil
		},
	}
	upCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(upCmd)

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.DatabaseURL == "" {
				return fmt.Errorf("DATABASE_URL is required for migrations")
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			statuses, err := migrator.Status(ctx)
			if err != nil {
				return fmt.Errorf("failed to get migration status: %w", err)
			}

			fmt.Printf("%-10s %-40s %-10s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
			for _, s := range statuses {
				status := "pending"
				appliedAt := ""
				if s.Applied {
					status = "applied"
					if s.AppliedAt != nil {
						appliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
					}
				}
				fmt.Printf("%-10d %-40s %-10s %s\n", s.Version, s.Name, status, appliedAt)
			}
			return nil
		},
	}
	statusCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(statusCmd)

	return cmd
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the dataset API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func runServer() error {
	logger := newLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(middleware.BodyLimit("1M"))
	e.Use(middleware.RequestTimeout(60 * time.Second))

	rateLimitCfg := middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		BurstSize:         cfg.RateLimitBurst,
	}
	if rateLimitCfg.RequestsPerSecond <= 0 {
		rateLimitCfg = middleware.DefaultRateLimitConfig()
	}

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": "0.1.0",
		})
	})

	// Database is optional for the API server; the /seed endpoint works
	// entirely in memory.
	if cfg.DatabaseURL != "" {
		ctx := context.Background()
		pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer pool.Close()
		logger.Info().Msg("connected to database")
		e.GET("/health/db", db.HealthHandler(pool))
	}

	apiV1 := e.Group("/api/v1")
	apiV1.Use(middleware.RateLimit(rateLimitCfg))

	handler := server.NewGenerateHandler()
	handler.RegisterRoutes(apiV1)

	// Graceful shutdown
	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()
	logger.Info().Str("port", cfg.Port).Msg("server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown server: %w", err)
	}
	return nil
}
