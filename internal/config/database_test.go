package config

import (
	"database/sql"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
)

func openPool(t *testing.T, pool PoolConfig) (*sql.DB, error) {
	t.Helper()

	cfg := &DatabaseConfig{
		Driver: "sqlite",
		SQLite: SQLiteConfig{Path: filepath.Join(t.TempDir(), "test.db")},
		Pool:   pool,
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	db, err := SetupDatabase(cfg, log)
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db.DB(): %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })
	return sqlDB, nil
}

func TestSetupDatabase_SQLite(t *testing.T) {
	sqlDB, err := openPool(t, PoolConfig{
		MaxIdleConns:    5,
		MaxOpenConns:    50,
		ConnMaxLifetime: "30m",
	})
	if err != nil {
		t.Fatalf("SetupDatabase: %v", err)
	}

	if err := sqlDB.Ping(); err != nil {
		t.Fatalf("Ping: %v", err)
	}
	if got := sqlDB.Stats().MaxOpenConnections; got != 50 {
		t.Errorf("MaxOpenConnections = %d; want 50", got)
	}
}

func TestSetupDatabase_PoolDefaults(t *testing.T) {
	sqlDB, err := openPool(t, PoolConfig{})
	if err != nil {
		t.Fatalf("SetupDatabase: %v", err)
	}

	if got := sqlDB.Stats().MaxOpenConnections; got != 100 {
		t.Errorf("MaxOpenConnections = %d; want default 100", got)
	}
}

func TestSetupDatabase_UnsupportedDriver(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	_, err := SetupDatabase(&DatabaseConfig{Driver: "mysql"}, log)
	if err == nil {
		t.Fatal("expected error for unsupported driver")
	}
	if got, want := err.Error(), "unsupported database driver: mysql"; got != want {
		t.Errorf("error = %q; want %q", got, want)
	}
}

func TestSetupDatabase_BadConnMaxLifetime(t *testing.T) {
	tests := []struct {
		name     string
		lifetime string
	}{
		{"unparseable", "not-a-duration"},
		{"negative", "-1s"},
		{"zero", "0s"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := openPool(t, PoolConfig{ConnMaxLifetime: tt.lifetime})
			if err == nil {
				t.Fatalf("lifetime %q: expected error", tt.lifetime)
			}
			if !strings.Contains(err.Error(), "pool.conn_max_lifetime") {
				t.Errorf("error = %v; want mention of pool.conn_max_lifetime", err)
			}
		})
	}
}

func TestEffectivePool(t *testing.T) {
	tests := []struct {
		name         string
		pool         PoolConfig
		wantIdle     int
		wantOpen     int
		wantLifetime string
	}{
		{"zero value uses defaults", PoolConfig{}, 10, 100, "1h"},
		{
			"explicit values kept",
			PoolConfig{MaxIdleConns: 5, MaxOpenConns: 50, ConnMaxLifetime: "30m"},
			5, 50, "30m",
		},
		{"negative counts use defaults", PoolConfig{MaxIdleConns: -1, MaxOpenConns: -1}, 10, 100, "1h"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idle, open, lifetime := effectivePool(&tt.pool)
			if idle != tt.wantIdle || open != tt.wantOpen || lifetime != tt.wantLifetime {
				t.Errorf("effectivePool = (%d, %d, %q); want (%d, %d, %q)",
					idle, open, lifetime, tt.wantIdle, tt.wantOpen, tt.wantLifetime)
			}
		})
	}
}
