package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"sales_insights/internal/repositories/sqlconnect"
	"sales_insights/pkg/utils"
)

type Config struct {
	// HTTP server
	Port     string
	CertFile string
	KeyFile  string

	// Logging
	AppEnv   string
	LogLevel string
	LogDir   string

	DB sqlconnect.Config

	// Seeding
	SeedURL      string
	SeedTimeout  time.Duration
	SeedOnStart  bool
	SeedCron     string
	StoreTimeout time.Duration

	// Admin auth
	JWTSecret         string
	AdminPasswordHash string
	TokenTTL          time.Duration

	// AMQP
	AMQPURL        string
	AMQPExchange   string
	AMQPRoutingKey string

	// Alerts
	SMTP       utils.SMTPConfig
	AlertEmail string
}

func Load() *Config {
	return &Config{
		Port:     getEnv("SERVER_PORT", ":5000"),
		CertFile: getEnv("CERT_FILE", ""),
		KeyFile:  getEnv("KEY_FILE", ""),

		AppEnv:   getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		LogDir:   getEnv("LOG_DIR", "logs"),

		DB: sqlconnect.Config{
			Driver:     getEnv("DB_DRIVER", sqlconnect.DriverMySQL),
			Host:       getEnv("DB_HOST", "localhost"),
			Port:       getEnv("DB_PORT", "3306"),
			User:       getEnv("DB_USER", ""),
			Password:   getEnv("DB_PASSWORD", ""),
			Name:       getEnv("DB_NAME", "transactions"),
			SQLitePath: getEnv("SQLITE_PATH", "./data/transactions.db"),
		},

		SeedURL:      getEnv("SEED_URL", ""),
		SeedTimeout:  getEnvDuration("SEED_TIMEOUT", 30*time.Second),
		SeedOnStart:  getEnvBool("SEED_ON_START", false),
		SeedCron:     getEnv("SEED_CRON", ""),
		StoreTimeout: getEnvDuration("STORE_TIMEOUT", 5*time.Second),

		JWTSecret:         getEnv("JWT_SECRET", ""),
		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		TokenTTL:          getEnvDuration("TOKEN_TTL", time.Hour),

		AMQPURL:        getEnv("AMQP_URL", ""),
		AMQPExchange:   getEnv("AMQP_EXCHANGE", "sales_insights"),
		AMQPRoutingKey: getEnv("AMQP_ROUTING_KEY", "dataset.replaced"),

		SMTP: utils.SMTPConfig{
			From:     getEnv("SMTP_EMAIL", ""),
			Password: getEnv("SMTP_PASS", ""),
			Host:     getEnv("SMTP_HOST", ""),
			Port:     getEnvInt("SMTP_PORT", 587),
		},
		AlertEmail: getEnv("ALERT_EMAIL", ""),
	}
}

// AdminAuthEnabled reports whether /api/initialize requires an admin token.
func (c *Config) AdminAuthEnabled() bool {
	return c.JWTSecret != "" && c.AdminPasswordHash != ""
}

// Validate returns every configuration problem at once.
func (c *Config) Validate() error {
	var errors []string

	port := strings.TrimPrefix(c.Port, ":")
	if p, err := strconv.Atoi(port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if p < 1 || p > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", p))
	}

	if (c.CertFile == "") != (c.KeyFile == "") {
		errors = append(errors, "CERT_FILE and KEY_FILE must be set together")
	}

	switch c.DB.Driver {
	case sqlconnect.DriverMySQL:
		if c.DB.Host == "" || c.DB.Name == "" {
			errors = append(errors, "DB_HOST and DB_NAME are required for the mysql driver")
		}
	case sqlconnect.DriverSQLite:
		if c.DB.SQLitePath == "" {
			errors = append(errors, "SQLITE_PATH is required for the sqlite driver")
		}
	default:
		errors = append(errors, fmt.Sprintf("invalid DB_DRIVER '%s': must be mysql or sqlite", c.DB.Driver))
	}

	if c.SeedURL != "" {
		if u, err := url.Parse(c.SeedURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			errors = append(errors, fmt.Sprintf("invalid SEED_URL '%s': must be an http(s) url", c.SeedURL))
		}
	}
	if c.SeedTimeout <= 0 {
		errors = append(errors, "SEED_TIMEOUT must be positive")
	}
	if c.StoreTimeout <= 0 {
		errors = append(errors, "STORE_TIMEOUT must be positive")
	}
	if c.SeedCron != "" {
		if _, err := cron.ParseStandard(c.SeedCron); err != nil {
			errors = append(errors, fmt.Sprintf("invalid SEED_CRON '%s': %v", c.SeedCron, err))
		}
	}

	if (c.JWTSecret == "") != (c.AdminPasswordHash == "") {
		errors = append(errors, "JWT_SECRET and ADMIN_PASSWORD_HASH must be set together")
	}
	if c.TokenTTL <= 0 {
		errors = append(errors, "TOKEN_TTL must be positive")
	}

	if c.AMQPURL != "" {
		if u, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if u.Scheme != "amqp" && u.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", u.Scheme))
		}
		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP_EXCHANGE cannot be empty when AMQP_URL is provided")
		}
	}

	if c.AlertEmail != "" && !c.SMTP.Enabled() {
		errors = append(errors, "ALERT_EMAIL requires SMTP_EMAIL, SMTP_HOST and SMTP_PORT")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
