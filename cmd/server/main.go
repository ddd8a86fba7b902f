package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "partsphere-backend/internal/api/http"
	"partsphere-backend/internal/config"
	"partsphere-backend/internal/domain"
	"partsphere-backend/internal/jobs"
	"partsphere-backend/internal/logger"
	"partsphere-backend/internal/repository"
	"partsphere-backend/internal/repository/postgres"
	"partsphere-backend/internal/scheduler"
	"partsphere-backend/internal/security"
	"partsphere-backend/internal/service"
	"partsphere-backend/internal/storage"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting PartSphere Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
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

	// Ensure the platform account exists before anything references it
	if err := ensurePlatformAccount(store, cfg); err != nil {
		logger.Error("Failed to ensure platform account", "error", err)
		log.Fatalf("Failed to ensure platform account: %v", err)
	}

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)

	// Initialize Storage Service
	var (
		storageService storage.Storage
		localStorage   *storage.LocalStorage
	)
	switch cfg.Storage.Type {
	case "", "local":
		logger.Info("Using local storage", "upload_dir", cfg.Storage.UploadDir)
		localStorage, err = storage.NewLocalStorage(cfg.Storage.BaseURL, cfg.Storage.UploadDir)
		if err != nil {
			logger.Error("Failed to initialize local storage", "error", err)
			log.Fatalf("Failed to initialize local storage: %v", err)
		}
		storageService = localStorage
	case "firebase":
		logger.Info("Using firebase storage", "bucket", cfg.Storage.Bucket)
		storageService, err = storage.NewFirebaseStorage(context.Background(), cfg.Storage.CredentialsFile, cfg.Storage.Bucket)
		if err != nil {
			logger.Error("Failed to initialize firebase storage", "error", err)
			log.Fatalf("Failed to initialize firebase storage: %v", err)
		}
	default:
		logger.Error("Unsupported storage type", "type", cfg.Storage.Type)
		log.Fatalf("Storage type '%s' not supported", cfg.Storage.Type)
	}

	// Initialize Services
	otpTTL := time.Duration(cfg.OTP.TTLMinutes) * time.Minute
	emailSvc := service.NewEmailService(cfg.Email)
	authSvc := service.NewAuthService(store.Users(), tokenManager, cfg.Platform.StartingBalance)
	itemSvc := service.NewItemService(store, storageService)
	orderSvc := service.NewOrderService(store, emailSvc, cfg.Platform.AdminUserID)
	walletSvc := service.NewWalletService(store, otpTTL)
	chatSvc := service.NewChatService(store, cfg.Platform.AdminUserID)
	reviewSvc := service.NewReviewService(store)
	verificationSvc := service.NewVerificationService(store, storageService, otpTTL)
	adminSvc := service.NewAdminService(store, emailSvc, cfg.Platform.AdminUserID)

	// Initialize HTTP Router
	router := httpapi.NewRouter(httpapi.Handlers{
		Auth:         httpapi.NewAuthHandler(authSvc),
		Items:        httpapi.NewItemHandler(itemSvc),
		Orders:       httpapi.NewOrderHandler(orderSvc),
		Wallet:       httpapi.NewWalletHandler(walletSvc),
		Chats:        httpapi.NewChatHandler(chatSvc),
		Reviews:      httpapi.NewReviewHandler(reviewSvc),
		Verification: httpapi.NewVerificationHandler(verificationSvc),
		Admin:        httpapi.NewAdminHandler(adminSvc),
	}, tokenManager, authSvc, localStorage)

	// Initialize Scheduler
	jobRunner := jobs.NewJobRunner(store, cfg)
	sched := scheduler.NewScheduler(jobRunner)
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for termination signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Graceful shutdown failed", "error", err)
	}
	logger.Info("Server stopped")
}

// ensurePlatformAccount creates the reserved admin user that receives
// platform fees and anchors support chats.
func ensurePlatformAccount(store repository.Store, cfg *config.Config) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	password := os.Getenv("PLATFORM_ADMIN_PASSWORD")
	if password == "" {
		password = "change-me-on-first-login"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := &domain.User{
		ID:                 cfg.Platform.AdminUserID,
		Name:               "PartSphere Support",
		Email:              "support@partsphere.example",
		PasswordHash:       string(hash),
		IsVerified:         true,
		VerificationStatus: domain.VerificationStatusApproved,
		IsAdmin:            true,
	}
	if err := store.Users().CreateWithID(ctx, admin); err != nil {
		return err
	}
	logger.Info("Platform account ready", "user_id", cfg.Platform.AdminUserID)
	return nil
}
