package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/unimx/universidades/internal/config"
	"github.com/unimx/universidades/internal/database"
	"github.com/unimx/universidades/internal/logging"
	"github.com/unimx/universidades/internal/maintenance"
	"github.com/unimx/universidades/internal/universidad"
	"github.com/unimx/universidades/internal/web"
	"github.com/unimx/universidades/internal/web/middleware"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// CLI flags
var (
	port        int
	bind        string
	allowSubnet string
	dbDriver    string
	dbDSN       string
	envFile     string
	logFile     string
	verbosity   int

	maintenanceSchedule string

	// Timeout flags (advanced)
	httpTimeout     time.Duration
	shutdownTimeout time.Duration
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "universidades",
		Short: "Universidades - University catalog API",
		Long:  `Universidades serves read-only university records (programs, media, location and scholarships) as a JSON API.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup()
		},
		RunE:          runServe,
		SilenceUsage: true,
	}

	// Flags shared by every command
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dbDriver, "driver", "", "Database driver: sqlite, mysql or postgres (or set DB_DRIVER env var)")
	pf.StringVarP(&dbDSN, "dsn", "d", "", "Database DSN or SQLite path (or set DB_DSN env var)")
	pf.StringVar(&envFile, "env-file", ".env", "Environment file loaded before reading settings")
	pf.StringVar(&logFile, "log-file", logging.DefaultLogFilePath, "Rotating log file path (empty for console only)")
	pf.CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v debug, -vv trace)")

	// Server flags
	rootCmd.Flags().IntVarP(&port, "port", "p", 0, "HTTP server port (required, or set PORT env var)")
	rootCmd.Flags().StringVarP(&bind, "bind", "b", "", "IP address to bind to (e.g., 127.0.0.1, 0.0.0.0)")
	rootCmd.Flags().StringVarP(&allowSubnet, "allow-subnet", "a", "", "CIDR subnet allowed to connect (e.g., 192.168.1.0/24)")
	rootCmd.Flags().StringVar(&maintenanceSchedule, "maintenance-schedule", maintenance.DefaultSchedule, "Cron schedule for database maintenance (empty to disable)")

	// Advanced timeout flags
	rootCmd.Flags().DurationVar(&httpTimeout, "http-timeout", 30*time.Second, "Timeout for a single API request")
	rootCmd.Flags().DurationVar(&shutdownTimeout, "shutdown-timeout", 10*time.Second, "Grace period for in-flight requests on shutdown")

	rootCmd.AddCommand(newMigrateCmd(), newSeedCmd(), newOptimizeCmd())

	// Version command
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "universidades %s (commit: %s, built: %s)\n", version, commit, date)
		},
	})

	return rootCmd
}

// setup loads the env file and configures logging
func setup() error {
	loaded, err := config.LoadDotEnv(envFile)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", envFile, err)
	}

	loader := config.NewLoader(config.NewEnvSettings(config.EnvPrefix))
	level := loader.String("log.level", logging.LevelForVerbosity(verbosity))
	if verbosity > 0 {
		level = logging.LevelForVerbosity(verbosity)
	}
	logging.Apply(level, loader, logging.Options{
		FilePath:    logFile,
		ConsoleOnly: logFile == "",
	})

	for _, f := range loaded {
		log.Debug().Str("file", f).Msg("Loaded environment file")
	}
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	// Check for PORT env var if flag not set
	if port == 0 {
		if envPort := os.Getenv("PORT"); envPort != "" {
			if _, err := fmt.Sscanf(envPort, "%d", &port); err != nil {
				return fmt.Errorf("invalid PORT environment variable %q: %w", envPort, err)
			}
		}
	}

	// Validate port
	if port == 0 {
		return fmt.Errorf("--port flag or PORT environment variable is required")
	}

	// Validate bind address if provided
	if bind != "" {
		if ip := net.ParseIP(bind); ip == nil {
			return fmt.Errorf("invalid bind address: %s", bind)
		}
	}

	allowedNet, err := middleware.ParseSubnet(allowSubnet)
	if err != nil {
		return err
	}

	config.SetGlobalTimeouts(&config.TimeoutConfig{
		HTTPRequest: httpTimeout,
		Shutdown:    shutdownTimeout,
	})

	// Warn if binding to all interfaces without an allow list
	if (bind == "" || bind == "0.0.0.0" || bind == "::") && allowSubnet == "" {
		log.Warn().Msg("Server is accessible from all interfaces without subnet restrictions. Consider using --bind or --allow-subnet for security.")
	}

	db, err := openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	log.Info().
		Str("version", version).
		Int("port", port).
		Str("bind", bind).
		Str("allow_subnet", allowSubnet).
		Str("driver", string(db.Dialect().Driver())).
		Str("database", db.Target()).
		Msg("Starting Universidades")

	maint := maintenance.NewManager(db, maintenanceSchedule)
	if err := maint.Start(); err != nil {
		return err
	}
	defer maint.Stop()

	server := web.NewServer(universidad.NewReader(db), db, web.Options{
		Port:       port,
		Bind:       bind,
		AllowedNet: allowedNet,
	})

	// Setup graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.Start(ctx); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	log.Info().Msg("Universidades stopped")
	return nil
}

func openDatabase() (*database.DB, error) {
	opts, err := resolveDatabase(dbDriver, dbDSN)
	if err != nil {
		return nil, err
	}
	db, err := database.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return db, nil
}
