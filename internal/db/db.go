package db

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/botgpt/botgpt-backend/internal/platform/logger"
	"github.com/botgpt/botgpt-backend/internal/types"
	"github.com/botgpt/botgpt-backend/internal/utils"
)

// Service owns the gorm handle. Postgres is the production driver; sqlite is
// kept for local development and tests (DATABASE_DRIVER=sqlite).
type Service struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewService(log *logger.Logger) (*Service, error) {
	serviceLog := log.With("service", "DatabaseService")

	driver := strings.ToLower(utils.GetEnv("DATABASE_DRIVER", "postgres", log))

	var (
		db  *gorm.DB
		err error
	)
	switch driver {
	case "sqlite":
		db, err = openSQLite(log)
	default:
		db, err = openPostgres(log)
	}
	if err != nil {
		return nil, err
	}
	return &Service{db: db, log: serviceLog}, nil
}

func openPostgres(log *logger.Logger) (*gorm.DB, error) {
	host := utils.GetEnv("POSTGRES_HOST", "localhost", log)
	port := utils.GetEnv("POSTGRES_PORT", "5432", log)
	user := utils.GetEnv("POSTGRES_USER", "postgres", log)
	password := utils.GetEnv("POSTGRES_PASSWORD", "", log)
	name := utils.GetEnv("POSTGRES_NAME", "botgpt", log)

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, password, host, port, name)

	log.Info("Connecting to Postgres...")
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Error("Failed to connect to Postgres", "error", err)
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
		log.Error("Failed to enable uuid-ossp extension", "error", err)
		return nil, fmt.Errorf("failed to enable uuid-ossp extension: %w", err)
	}
	return db, nil
}

func openSQLite(log *logger.Logger) (*gorm.DB, error) {
	path := utils.GetEnv("DATABASE_PATH", "./data/botgpt.db", log)
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create sqlite directory: %w", err)
		}
	}

	log.Info("Opening sqlite database...", "path", path)
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		log.Error("Failed to open sqlite database", "error", err)
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	return db, nil
}

func (s *Service) AutoMigrateAll() error {
	s.log.Info("Auto migrating tables...")
	err := s.db.AutoMigrate(
		&types.User{},
		&types.Document{},
		&types.DocumentChunk{},
		&types.Conversation{},
		&types.Message{},
	)
	if err != nil {
		s.log.Error("Auto migration failed", "error", err)
		return err
	}
	return nil
}

func (s *Service) DB() *gorm.DB {
	return s.db
}
