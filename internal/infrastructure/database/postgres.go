package database

import (
	"fmt"
	"net"
	"net/url"
	"time"

	"oncotrack/config"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// PostgresDSN builds the postgres:// URL used by gorm. The session zone is
// the configured location's IANA name, or UTC for the process-local zone.
func PostgresDSN(cfg config.DBConfig, location *time.Location) string {
	timezone := location.String()
	if location == time.Local || timezone == "Local" {
		timezone = "UTC"
	}

	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(cfg.User, cfg.Password),
		Host:   net.JoinHostPort(cfg.Host, cfg.Port),
		Path:   "/" + cfg.Name,
		RawQuery: url.Values{
			"sslmode":  []string{cfg.SSLMode},
			"TimeZone": []string{timezone},
		}.Encode(),
	}
	return u.String()
}

func NewPostgresConnection(cfg config.DBConfig, location *time.Location, gormLogLevel string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(PostgresDSN(cfg, location)), &gorm.Config{
		Logger:         newGormLogger(gormLogLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	// Set connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	logrus.Info("Successfully connected to PostgreSQL database")

	return db, nil
}
