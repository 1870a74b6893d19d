package database

import (
	"fmt"
	"os"
	"path/filepath"

	"oncotrack/internal/domain/entity"

	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// NewSQLiteConnection opens (creating if needed) a file database and brings
// its schema up to date with AutoMigrate. Used for local runs and tests.
func NewSQLiteConnection(path string, gormLogLevel string) (*gorm.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	dsn := fmt.Sprintf("%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", path)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         newGormLogger(gormLogLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := db.AutoMigrate(entity.AllEntities()...); err != nil {
		return nil, fmt.Errorf("auto migrate sqlite: %w", err)
	}

	logrus.Infof("Successfully opened SQLite database at %s", path)

	return db, nil
}
