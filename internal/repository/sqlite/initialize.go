package sqlite

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mredig/fingerstring-mcp/internal/domain"
	"github.com/pkg/errors"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Store is the SQLite-backed list controller. It owns the database handle.
type Store struct {
	*listRepo
	db *gorm.DB
}

// Initialize opens (creating if needed) the database file at dbPath and
// returns a migrated store.
func Initialize(dbPath string, pageSize int) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, errors.Wrapf(err, "failed to create database directory for %s", dbPath)
	}
	return Open(FileDSN(dbPath), pageSize)
}

// FileDSN builds the driver DSN for a database file.
func FileDSN(path string) string {
	if strings.Contains(path, "?") {
		return path
	}
	return path + "?_busy_timeout=5000&_journal_mode=WAL"
}

// Open connects to dsn and runs migrations.
func Open(dsn string, pageSize int) (*Store, error) {
	// stdout carries the MCP protocol, so gorm must never log there.
	gormLogger := logger.New(log.New(os.Stderr, "\r\n", log.LstdFlags), logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
	})

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: gormLogger})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Run migrations
	if err := db.AutoMigrate(&domain.List{}, &domain.Task{}); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Store{
		listRepo: newListRepo(db, pageSize),
		db:       db,
	}, nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return errors.Wrap(err, "failed to get database handle")
	}
	return sqlDB.Close()
}
