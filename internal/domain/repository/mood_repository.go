package repository

import (
	"time"

	"oncotrack/internal/domain/entity"

	"gorm.io/gorm"
)

type MoodRepository interface {
	Upsert(db *gorm.DB, mood *entity.Mood) error
	FindByUserAndDay(db *gorm.DB, userID uint, day string) (*entity.Mood, error)
	FindFirstInRange(db *gorm.DB, userID uint, start, end time.Time) (*entity.Mood, error)
	FindByUserID(db *gorm.DB, userID uint) ([]entity.Mood, error)
	UpdateLabel(db *gorm.DB, mood *entity.Mood, label string) error
}
