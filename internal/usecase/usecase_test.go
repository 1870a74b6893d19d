package usecase

import (
	"io"
	"path/filepath"
	"testing"
	"time"

	"oncotrack/internal/domain/entity"
	"oncotrack/internal/infrastructure/database"
	"oncotrack/internal/repository"
	"oncotrack/internal/service"
	"oncotrack/pkg/timeutil"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type testEnv struct {
	db    *gorm.DB
	log   *logrus.Logger
	audit service.AuditService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := database.NewSQLiteConnection(filepath.Join(t.TempDir(), "oncotrack.db"), "silent")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })

	log := logrus.New()
	log.SetOutput(io.Discard)

	return &testEnv{
		db:    db,
		log:   log,
		audit: service.NewAuditService(log, repository.NewAuditLogRepository()),
	}
}

func (e *testEnv) days(t *testing.T, at time.Time) *timeutil.DayResolver {
	t.Helper()
	return timeutil.NewDayResolver(timeutil.FixedClock{At: at}, at.Location())
}

func (e *testEnv) auditActions(t *testing.T, userID uint) []string {
	t.Helper()
	logs, err := repository.NewAuditLogRepository().FindByUserID(e.db, userID)
	if err != nil {
		t.Fatalf("find audit logs: %v", err)
	}
	actions := make([]string, len(logs))
	for i, log := range logs {
		actions[i] = log.Action
	}
	return actions
}

func (e *testEnv) createUser(t *testing.T, username string) *entity.User {
	t.Helper()
	user := &entity.User{
		Name:          "User " + username,
		Email:         username + "@example.com",
		Birthday:      time.Date(1980, 5, 1, 0, 0, 0, 0, time.UTC),
		DiagnosisDate: time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC),
		Username:      username,
		Password:      "hash",
	}
	if err := repository.NewUserRepository().Create(e.db, user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func mustLoad(t *testing.T, name string) *time.Location {
	t.Helper()
	location, err := time.LoadLocation(name)
	if err != nil {
		t.Fatalf("load location %s: %v", name, err)
	}
	return location
}
