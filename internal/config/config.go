package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	JWT       JWTConfig       `yaml:"jwt"`
	Storage   StorageConfig   `yaml:"storage"`
	Email     EmailConfig     `yaml:"email"`
	Log       LogConfig       `yaml:"log"`
	Platform  PlatformConfig  `yaml:"platform"`
	OTP       OTPConfig       `yaml:"otp"`
	Orders    OrdersConfig    `yaml:"orders"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// DatabaseConfig contains PostgreSQL connection settings
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"ssl_mode"`
}

// JWTConfig contains token settings
type JWTConfig struct {
	Secret            string `yaml:"secret"`
	AccessTokenExpiry int    `yaml:"access_token_expiry_minutes"`
}

// StorageConfig contains image storage settings
type StorageConfig struct {
	Type            string `yaml:"type"`       // "local" or "firebase"
	UploadDir       string `yaml:"upload_dir"` // for local storage
	BaseURL         string `yaml:"base_url"`   // server base URL for local file URLs
	CredentialsFile string `yaml:"credentials_file"`
	Bucket          string `yaml:"bucket"`
	MaxFileSizeMB   int64  `yaml:"max_file_size_mb"`
}

// EmailConfig selects and configures the notification email backend.
type EmailConfig struct {
	Provider string         `yaml:"provider"` // "smtp", "sendgrid", or "off"
	From     string         `yaml:"from"`
	FromName string         `yaml:"from_name"`
	SMTP     SMTPConfig     `yaml:"smtp"`
	SendGrid SendGridConfig `yaml:"sendgrid"`
}

type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
}

type SendGridConfig struct {
	APIKey string `yaml:"api_key"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// PlatformConfig contains marketplace-wide settings. The admin user collects
// platform fees and is the support-chat counterparty.
type PlatformConfig struct {
	AdminUserID     int32 `yaml:"admin_user_id"`
	StartingBalance int32 `yaml:"starting_balance"` // minor units granted at registration
}

// OTPConfig contains one-time-code settings
type OTPConfig struct {
	TTLMinutes int `yaml:"ttl_minutes"`
}

// OrdersConfig contains order lifecycle settings
type OrdersConfig struct {
	StaleAfterHours int32 `yaml:"stale_after_hours"` // pre-escrow orders older than this get cancelled
}

// SchedulerConfig contains cron schedule settings
type SchedulerConfig struct {
	ExpireStaleOrders string `yaml:"expire_stale_orders"`
	PurgeExpiredOTPs  string `yaml:"purge_expired_otps"`
}

// Load reads configuration from a YAML file
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.overrideWithEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
	// Database
	if val := os.Getenv("DB_HOST"); val != "" {
		c.Database.Host = val
	}
	if val := os.Getenv("DB_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Database.Port)
	}
	if val := os.Getenv("DB_USER"); val != "" {
		c.Database.User = val
	}
	if val := os.Getenv("DB_PASSWORD"); val != "" {
		c.Database.Password = val
	}
	if val := os.Getenv("DB_NAME"); val != "" {
		c.Database.Database = val
	}
	if val := os.Getenv("DB_SSL_MODE"); val != "" {
		c.Database.SSLMode = val
	}

	// JWT
	if val := os.Getenv("JWT_SECRET"); val != "" {
		c.JWT.Secret = val
	}

	// Server
	if val := os.Getenv("SERVER_HOST"); val != "" {
		c.Server.Host = val
	}
	if val := os.Getenv("SERVER_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Server.Port)
	}

	// Storage
	if val := os.Getenv("STORAGE_TYPE"); val != "" {
		c.Storage.Type = val
	}
	if val := os.Getenv("UPLOAD_DIR"); val != "" {
		c.Storage.UploadDir = val
	}
	if val := os.Getenv("STORAGE_CREDENTIALS_FILE"); val != "" {
		c.Storage.CredentialsFile = val
	}
	if val := os.Getenv("STORAGE_BUCKET"); val != "" {
		c.Storage.Bucket = val
	}

	// Email
	if val := os.Getenv("EMAIL_PROVIDER"); val != "" {
		c.Email.Provider = val
	}
	if val := os.Getenv("SENDGRID_API_KEY"); val != "" {
		c.Email.SendGrid.APIKey = val
	}
	if val := os.Getenv("SMTP_HOST"); val != "" {
		c.Email.SMTP.Host = val
	}
	if val := os.Getenv("SMTP_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Email.SMTP.Port)
	}
	if val := os.Getenv("SMTP_USER"); val != "" {
		c.Email.SMTP.User = val
	}
	if val := os.Getenv("SMTP_PASSWORD"); val != "" {
		c.Email.SMTP.Password = val
	}

	// Log
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	// Server validation
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	// Database validation
	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}
	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}

	// JWT validation
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}
	if len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT secret must be at least 32 characters")
	}

	// Storage validation
	if c.Storage.Type == "" {
		c.Storage.Type = "local"
	}
	if c.Storage.Type == "local" && c.Storage.UploadDir == "" {
		return fmt.Errorf("upload directory is required for local storage")
	}
	if c.Storage.Type == "firebase" && c.Storage.Bucket == "" {
		return fmt.Errorf("storage bucket is required for firebase storage")
	}
	if c.Storage.MaxFileSizeMB == 0 {
		c.Storage.MaxFileSizeMB = 10
	}

	// Email defaults
	if c.Email.Provider == "" {
		c.Email.Provider = "off"
	}

	// Platform defaults
	if c.Platform.AdminUserID == 0 {
		c.Platform.AdminUserID = 9999
	}
	if c.Platform.StartingBalance == 0 {
		c.Platform.StartingBalance = 500000
	}

	// OTP defaults
	if c.OTP.TTLMinutes == 0 {
		c.OTP.TTLMinutes = 5
	}

	// Order lifecycle defaults
	if c.Orders.StaleAfterHours == 0 {
		c.Orders.StaleAfterHours = 168 // 7 days
	}

	// Scheduler defaults
	if c.Scheduler.ExpireStaleOrders == "" {
		c.Scheduler.ExpireStaleOrders = "0 0 2 * * *" // 2 AM UTC
	}
	if c.Scheduler.PurgeExpiredOTPs == "" {
		c.Scheduler.PurgeExpiredOTPs = "0 30 2 * * *" // 2:30 AM UTC
	}

	return nil
}

// GetDatabaseConnectionString returns a PostgreSQL connection string
func (c *Config) GetDatabaseConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Database,
		c.Database.SSLMode,
	)
}

// GetServerAddress returns the HTTP server address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
