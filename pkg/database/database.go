package database

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"timetracker/models"
)

// Open connects to the database named by dsn. Postgres is the default; a dsn with a
// "sqlite:" or "file:" prefix, or a ".db" suffix, selects SQLite.
func Open(dsn string) (*gorm.DB, error) {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		return nil, fmt.Errorf("database DSN is empty")
	}
	dbLogger := logger.New(
		log.New(os.Stdout, "", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
	cfg := &gorm.Config{Logger: dbLogger}

	var (
		db  *gorm.DB
		err error
	)
	if path, ok := sqlitePath(dsn); ok {
		db, err = gorm.Open(sqlite.Open(path), cfg)
		if err == nil {
			// one connection keeps in-memory databases shared and avoids SQLITE_BUSY
			if sqlDB, derr := db.DB(); derr == nil {
				sqlDB.SetMaxOpenConns(1)
			}
		}
	} else {
		db, err = gorm.Open(postgres.Open(dsn), cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	return db, nil
}

func sqlitePath(dsn string) (string, bool) {
	switch {
	case strings.HasPrefix(dsn, "sqlite:"):
		return strings.TrimPrefix(strings.TrimPrefix(dsn, "sqlite:"), "//"), true
	case strings.HasPrefix(dsn, "file:"), dsn == ":memory:", strings.HasSuffix(dsn, ".db"):
		return dsn, true
	}
	return "", false
}

// Migrate creates or updates the time_entries table.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.TimeEntry{}); err != nil {
		return fmt.Errorf("migrate time_entries: %w", err)
	}
	return nil
}

// Close releases the connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
