package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tovahealth/careshift/cmd/cli/commands"
	"github.com/tovahealth/careshift/internal/config"
	"github.com/tovahealth/careshift/internal/metrics"
	"github.com/tovahealth/careshift/pkg/core/services"
	"github.com/tovahealth/careshift/pkg/kvstore"
	"github.com/tovahealth/careshift/pkg/notify"
	"github.com/tovahealth/careshift/pkg/postgres"
	redisstore "github.com/tovahealth/careshift/pkg/redis"
	"github.com/tovahealth/careshift/pkg/roster"
	"github.com/tovahealth/careshift/pkg/utils/logging"
)

var (
	env        string
	configPath string
	app        *commands.AppContext
	closeStore func()
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "careshift",
		Short: "Careshift CLI - Manage care coverage scheduling",
		Long:  `A CLI tool for managing caregiver availability, care shifts, and coverage analysis.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if closeStore != nil {
				closeStore()
			}
			if app != nil && app.Logger != nil {
				app.Logger.Sync()
			}
		},
	}

	// Add persistent environment flag
	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (defaults to careshift_config.yaml)")
	rootCmd.MarkPersistentFlagRequired("env")

	// Add all commands
	app = &commands.AppContext{}
	rootCmd.AddCommand(commands.SetAvailabilityCmd(app))
	rootCmd.AddCommand(commands.AvailabilityRangeCmd(app))
	rootCmd.AddCommand(commands.WeeklyTemplateCmd(app))
	rootCmd.AddCommand(commands.ReportUnavailabilityCmd(app))
	rootCmd.AddCommand(commands.ResolveUnavailabilityCmd(app))
	rootCmd.AddCommand(commands.AddShiftCmd(app))
	rootCmd.AddCommand(commands.ExpandShiftsCmd(app))
	rootCmd.AddCommand(commands.AssignShiftCmd(app))
	rootCmd.AddCommand(commands.UnassignShiftCmd(app))
	rootCmd.AddCommand(commands.BulkAssignCmd(app))
	rootCmd.AddCommand(commands.CheckAvailabilityCmd(app))
	rootCmd.AddCommand(commands.ListShiftsCmd(app))
	rootCmd.AddCommand(commands.CoverageCmd(app))
	rootCmd.AddCommand(commands.GapsCmd(app))
	rootCmd.AddCommand(commands.ListCaregiversCmd(app))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config, stores, and service dependencies
func initApp() error {
	var err error
	app.Ctx = context.Background()

	// Initialize logger
	app.Logger, err = logging.InitLogger(env, "")
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.Logger.Info("Starting application", zap.String("environment", env))

	// Load configuration
	app.Logger.Info("Loading configuration")
	if configPath != "" {
		app.Cfg, err = config.LoadFromPath(configPath)
	} else {
		app.Cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.Logger.Debug("Configuration loaded successfully",
		zap.String("backend", app.Cfg.Storage.Backend))

	app.Window, err = app.Cfg.Window()
	if err != nil {
		return fmt.Errorf("failed to parse coverage window: %w", err)
	}
	app.Policy, err = app.Cfg.GapPolicy()
	if err != nil {
		return fmt.Errorf("failed to parse gap policy: %w", err)
	}

	// Initialize storage backend
	app.Logger.Info("Initializing storage", zap.String("backend", app.Cfg.Storage.Backend))
	deps := services.Deps{
		Notifier: notify.NewLogNotifier(app.Logger),
		Roster:   roster.NewStaticRoster(app.Cfg.Roster),
		Logger:   app.Logger,
	}

	switch app.Cfg.Storage.Backend {
	case "memory":
		kv := kvstore.NewMemoryKV()
		deps.Availability = kvstore.NewAvailabilityStore(kv)
		deps.Shifts = kvstore.NewShiftStore(kv)

	case "redis":
		kv, err := redisstore.NewKV(app.Ctx, app.Cfg.Storage.RedisAddr, app.Cfg.Storage.RedisPrefix)
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		closeStore = func() { kv.Close() }
		deps.Availability = kvstore.NewAvailabilityStore(kv)
		deps.Shifts = kvstore.NewShiftStore(kv)

	case "postgres":
		pg, err := postgres.NewDB(app.Ctx, app.Cfg.Storage.PostgresURL)
		if err != nil {
			return fmt.Errorf("failed to connect to postgres: %w", err)
		}
		closeStore = pg.Close
		if err := pg.RunMigrations(app.Ctx); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		deps.Availability = pg
		deps.Shifts = pg

	default:
		return fmt.Errorf("unknown storage backend %q", app.Cfg.Storage.Backend)
	}

	app.Deps = deps
	metrics.Register()
	app.Logger.Info("Storage initialized successfully")

	return nil
}
