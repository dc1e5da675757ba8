package sqlconnect

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"time"

	"github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite"

	"sales_insights/pkg/utils"
)

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

type Config struct {
	Driver     string
	Host       string
	Port       string
	User       string
	Password   string
	Name       string
	SQLitePath string
}

// DSN returns the data source name for the configured driver.
func (c Config) DSN() string {
	if c.Driver == DriverSQLite {
		return c.SQLitePath
	}

	cfg := mysql.NewConfig()
	cfg.User = c.User
	cfg.Passwd = c.Password
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(c.Host, c.Port)
	cfg.DBName = c.Name
	return cfg.FormatDSN()
}

// ConnectDb opens and pings the database, then brings its schema up to date.
func ConnectDb(ctx context.Context, cfg Config) (*sql.DB, error) {
	if cfg.Driver == DriverSQLite {
		if err := os.MkdirAll(filepath.Dir(cfg.SQLitePath), 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	utils.Logger.WithField("driver", cfg.Driver).Info("Connecting to database...")

	db, err := sql.Open(cfg.Driver, cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open DB connection: %w", err)
	}

	if cfg.Driver == DriverSQLite {
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(10)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	if err = db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping DB: %w", err)
	}

	if err := RunMigrations(cfg); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	utils.Logger.WithField("driver", cfg.Driver).Info("Connected to database")
	return db, nil
}
