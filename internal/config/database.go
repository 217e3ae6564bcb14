package config

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Pool settings applied when the config leaves them unset.
const (
	defaultMaxIdleConns    = 10
	defaultMaxOpenConns    = 100
	defaultConnMaxLifetime = "1h"
)

// SetupDatabase opens a GORM connection for the configured driver ("sqlite"
// or "postgres") and applies the pool settings to the underlying sql.DB.
// GORM's own SQL logging follows the application log level: debug logs all
// statements, anything quieter logs only slow queries and errors.
func SetupDatabase(cfg *DatabaseConfig, logger *slog.Logger) (*gorm.DB, error) {
	switch {
	case cfg == nil:
		return nil, errors.New("database config is nil")
	case logger == nil:
		return nil, errors.New("logger is nil")
	}

	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormLogMode(logger)),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	idle, open, lifetime := effectivePool(&cfg.Pool)
	if err := applyPoolSettings(sqlDB, idle, open, lifetime); err != nil {
		sqlDB.Close()
		return nil, err
	}

	logger.Info("database connected",
		slog.String("driver", cfg.Driver),
		slog.Int("max_idle_conns", idle),
		slog.Int("max_open_conns", open),
		slog.String("conn_max_lifetime", lifetime),
	)

	return db, nil
}

func dialectorFor(cfg *DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "sqlite":
		// The database file's directory may not exist yet on first run.
		if dir := filepath.Dir(cfg.SQLite.Path); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create sqlite directory %q: %w", dir, err)
			}
		}
		return sqlite.Open(cfg.SQLite.Path), nil
	case "postgres":
		return postgres.Open(buildPostgresDSN(&cfg.Postgres)), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}
}

func gormLogMode(logger *slog.Logger) gormlogger.LogLevel {
	if logger.Enabled(context.Background(), slog.LevelDebug) {
		return gormlogger.Info
	}
	return gormlogger.Warn
}

// effectivePool resolves the pool settings, substituting defaults for
// unset values. The lifetime comes back as the raw string so its error
// message can quote what the user wrote.
func effectivePool(pool *PoolConfig) (idle, open int, lifetime string) {
	idle, open, lifetime = pool.MaxIdleConns, pool.MaxOpenConns, pool.ConnMaxLifetime
	if idle <= 0 {
		idle = defaultMaxIdleConns
	}
	if open <= 0 {
		open = defaultMaxOpenConns
	}
	if lifetime == "" {
		lifetime = defaultConnMaxLifetime
	}
	return idle, open, lifetime
}

func applyPoolSettings(sqlDB *sql.DB, idle, open int, lifetime string) error {
	d, err := time.ParseDuration(lifetime)
	if err != nil {
		return fmt.Errorf("invalid pool.conn_max_lifetime %q: %w", lifetime, err)
	}
	if d <= 0 {
		return fmt.Errorf("invalid pool.conn_max_lifetime %q: must be greater than 0", lifetime)
	}

	sqlDB.SetMaxIdleConns(idle)
	sqlDB.SetMaxOpenConns(open)
	sqlDB.SetConnMaxLifetime(d)
	return nil
}

func buildPostgresDSN(cfg *PostgresConfig) string {
	if cfg == nil {
		return ""
	}

	u := &url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Path:   cfg.DBName,
	}
	if cfg.User != "" || cfg.Password != "" {
		u.User = url.UserPassword(cfg.User, cfg.Password)
	}

	q := url.Values{}
	if cfg.SSLMode != "" {
		q.Set("sslmode", cfg.SSLMode)
	}
	u.RawQuery = q.Encode()

	return u.String()
}
