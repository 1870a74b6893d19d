package repository

import (
	"oncotrack/internal/domain/entity"
	"oncotrack/pkg/timeutil"

	"gorm.io/gorm"
)

type SymptomOptionRepository interface {
	CreateIfAbsent(db *gorm.DB, option *entity.SymptomOption) (bool, error)
	FindByIDForUser(db *gorm.DB, id, userID uint) (*entity.SymptomOption, error)
	FindByNameKey(db *gorm.DB, userID uint, nameKey string) (*entity.SymptomOption, error)
	FindByUserID(db *gorm.DB, userID uint) ([]entity.SymptomOption, error)
}

type SymptomRepository interface {
	Create(db *gorm.DB, symptom *entity.Symptom) error
	FindByIDForUser(db *gorm.DB, id, userID uint) (*entity.Symptom, error)
	// FindByUserID returns newest first; a non-nil window restricts created_at to it.
	FindByUserID(db *gorm.DB, userID uint, window *timeutil.Window) ([]entity.Symptom, error)
	DeleteByIDForUser(db *gorm.DB, id, userID uint) (int64, error)
}
