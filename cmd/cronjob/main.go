package main

import (
	"database/sql"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"partsphere-backend/internal/config"
	"partsphere-backend/internal/jobs"
	"partsphere-backend/internal/logger"
	"partsphere-backend/internal/repository/postgres"
	"partsphere-backend/internal/scheduler"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit (e.g., 'expire-stale-orders', 'purge-expired-otps', 'all')")
	flag.Parse()

	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting PartSphere Cronjob Runner...", "log_level", cfg.Log.Level)

	// Initialize Database
	logger.Info("Connecting to database...", "host", cfg.Database.Host, "port", cfg.Database.Port)
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	jobRunner := jobs.NewJobRunner(store, cfg)

	// Run-once mode for manual invocation and debugging
	if *runOnce != "" {
		runJobOnce(jobRunner, *runOnce)
		return
	}

	// Scheduled mode
	sched := scheduler.NewScheduler(jobRunner)
	sched.Start()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	sched.Stop()
}

func runJobOnce(jr *jobs.JobRunner, name string) {
	switch name {
	case "expire-stale-orders":
		jr.ExpireStaleOrders()
	case "purge-expired-otps":
		jr.PurgeExpiredOTPs()
	case "all":
		jr.ExpireStaleOrders()
		jr.PurgeExpiredOTPs()
	default:
		logger.Error("Unknown job", "job", name)
		os.Exit(1)
	}
}
