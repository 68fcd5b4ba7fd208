package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/BTreeMap/DialogPipe/internal/api"
	"github.com/BTreeMap/DialogPipe/internal/dialog"
	"github.com/BTreeMap/DialogPipe/internal/lockfile"
	"github.com/BTreeMap/DialogPipe/internal/reminders"
	"github.com/BTreeMap/DialogPipe/internal/store"
	"github.com/BTreeMap/DialogPipe/internal/util"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Default configuration constants
const (
	// DefaultStateDir is the default directory for DialogPipe state data
	DefaultStateDir = "/var/lib/dialogpipe"
	// DefaultDBFileName is the default SQLite database filename
	DefaultDBFileName = "dialogpipe.db"
)

// Config holds environment configuration
type Config struct {
	DatabaseURL     string `env:"DATABASE_URL"`
	StateDir        string `env:"DIALOGPIPE_STATE_DIR"`
	APIAddr         string `env:"API_ADDR"`
	ReminderBaseURL string `env:"REMINDER_SERVICE_URL"`
	ReminderToken   string `env:"REMINDER_SERVICE_TOKEN"`
}

// Flags holds command line flag values
type Flags struct {
	stateDir     *string
	dbDSN        *string
	apiAddr      *string
	reminderURL  *string
	reminderAuth *string
}

func main() {
	initializeLogger()

	config := loadEnvironmentConfig()
	flags := parseCommandLineFlags(config)

	if err := ensureDirectoriesExist(flags); err != nil {
		slog.Error("Failed to create required directories", "error", err)
		os.Exit(1)
	}

	// The SQLite store assumes a single writer, so take an exclusive lock
	// on the state directory before opening it.
	if store.DetectDSNType(*flags.dbDSN) == "sqlite" {
		lock, err := lockfile.AcquireLock(filepath.Dir(*flags.dbDSN))
		if err != nil {
			slog.Error("Failed to lock state directory", "error", err)
			os.Exit(1)
		}
		defer lock.Release()
	}

	users, err := buildStore(flags)
	if err != nil {
		slog.Error("Failed to initialize user store", "error", err)
		os.Exit(1)
	}
	defer users.Close()

	gateway, err := buildReminderGateway(flags)
	if err != nil {
		slog.Error("Failed to initialize reminder gateway", "error", err)
		os.Exit(1)
	}

	engine := dialog.NewEngine(users, gateway)

	var apiOpts []api.Option
	if *flags.apiAddr != "" {
		apiOpts = append(apiOpts, api.WithAddr(*flags.apiAddr))
	}
	server := api.NewServer(engine, apiOpts...)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	slog.Info("Bootstrapping DialogPipe with configured modules")
	slog.Debug("Final configuration", "state_dir", *flags.stateDir, "dsn_set", *flags.dbDSN != "", "api_addr", *flags.apiAddr)
	if err := server.Run(ctx); err != nil {
		slog.Error("DialogPipe failed to run", "error", err)
		os.Exit(1)
	}
	slog.Info("DialogPipe exited successfully")
}

// initializeLogger sets up structured logging; DIALOGPIPE_DEBUG enables debug level
func initializeLogger() {
	level := slog.LevelInfo
	if util.ParseBoolEnv("DIALOGPIPE_DEBUG", false) {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
}

// loadEnvironmentConfig loads configuration from environment variables and .env file
func loadEnvironmentConfig() Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug("failed to load .env file", "error", err)
	} else {
		slog.Debug("successfully loaded .env file")
	}

	var config Config
	if err := env.Parse(&config); err != nil {
		slog.Warn("failed to parse environment configuration", "error", err)
	}

	if config.StateDir == "" {
		config.StateDir = DefaultStateDir
		slog.Debug("No DIALOGPIPE_STATE_DIR set, using default", "default_state_dir", config.StateDir)
	}

	// If no database URL is provided, default to SQLite in the state directory
	if config.DatabaseURL == "" {
		config.DatabaseURL = filepath.Join(config.StateDir, DefaultDBFileName)
		slog.Debug("No database DSN provided, defaulting to SQLite", "sqlite_path", config.DatabaseURL)
	}

	slog.Debug("environment variables loaded",
		"DATABASE_URL_SET", config.DatabaseURL != "",
		"DIALOGPIPE_STATE_DIR", config.StateDir,
		"API_ADDR", config.APIAddr,
		"REMINDER_SERVICE_URL_SET", config.ReminderBaseURL != "",
		"REMINDER_SERVICE_TOKEN_SET", config.ReminderToken != "")

	return config
}

// parseCommandLineFlags parses command line arguments with environment defaults
func parseCommandLineFlags(config Config) Flags {
	flags := Flags{
		stateDir:     flag.String("state-dir", config.StateDir, "state directory for DialogPipe data (overrides $DIALOGPIPE_STATE_DIR)"),
		dbDSN:        flag.String("db-dsn", config.DatabaseURL, "database DSN for the user store (overrides $DATABASE_URL)"),
		apiAddr:      flag.String("api-addr", config.APIAddr, "API server address (overrides $API_ADDR)"),
		reminderURL:  flag.String("reminder-url", config.ReminderBaseURL, "reminder service base URL (overrides $REMINDER_SERVICE_URL)"),
		reminderAuth: flag.String("reminder-token", config.ReminderToken, "reminder service bearer token (overrides $REMINDER_SERVICE_TOKEN)"),
	}

	flag.Parse()

	slog.Debug("flags parsed",
		"stateDir", *flags.stateDir,
		"dbDSN_set", *flags.dbDSN != "",
		"apiAddr", *flags.apiAddr,
		"reminderURL_set", *flags.reminderURL != "")

	// Update database DSN if not explicitly set but state directory is provided
	if *flags.dbDSN == filepath.Join(config.StateDir, DefaultDBFileName) && *flags.stateDir != config.StateDir {
		*flags.dbDSN = filepath.Join(*flags.stateDir, DefaultDBFileName)
		slog.Debug("Updated dbDSN based on state directory", "new_state_dir", *flags.stateDir)
	}

	return flags
}

// ensureDirectoriesExist creates necessary directories for file-based storage
func ensureDirectoriesExist(flags Flags) error {
	if store.DetectDSNType(*flags.dbDSN) == "sqlite" {
		stateDir := filepath.Dir(*flags.dbDSN)
		slog.Debug("Creating state directory for file-based database", "state_dir", stateDir)
		if err := os.MkdirAll(stateDir, 0755); err != nil {
			slog.Error("Failed to create state directory", "error", err, "state_dir", stateDir)
			return err
		}
	}
	return nil
}

// buildStore selects a store backend based on the configured DSN
func buildStore(flags Flags) (store.UserProfileStore, error) {
	if store.DetectDSNType(*flags.dbDSN) == "postgres" {
		slog.Debug("Detected PostgreSQL DSN, configuring PostgreSQL store", "dsn_set", true)
		return store.NewPostgresStore(store.WithDSN(*flags.dbDSN))
	}
	slog.Debug("Detected SQLite DSN, configuring SQLite store", "db_path", *flags.dbDSN)
	return store.NewSQLiteStore(store.WithDSN(*flags.dbDSN))
}

// buildReminderGateway constructs the reminder service client
func buildReminderGateway(flags Flags) (reminders.Gateway, error) {
	if *flags.reminderURL == "" {
		slog.Warn("No reminder service URL configured, reminder requests will be declined")
		return reminders.NoopGateway{}, nil
	}
	opts := []reminders.Option{reminders.WithBaseURL(*flags.reminderURL)}
	if *flags.reminderAuth != "" {
		opts = append(opts, reminders.WithToken(*flags.reminderAuth))
	}
	return reminders.NewHTTPGateway(opts...)
}
