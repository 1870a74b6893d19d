package repository

import (
	"errors"
	"time"

	"oncotrack/internal/domain/entity"
	domainRepo "oncotrack/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type moodRepository struct{}

func NewMoodRepository() domainRepo.MoodRepository {
	return &moodRepository{}
}

// Upsert inserts the mood or, when the user already has one for mood.Day,
// replaces its label. The conflict target is idx_moods_user_day.
func (r *moodRepository) Upsert(db *gorm.DB, mood *entity.Mood) error {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "day"}},
		DoUpdates: clause.AssignmentColumns([]string{"label", "updated_at"}),
	}).Create(mood).Error
}

func (r *moodRepository) FindByUserAndDay(db *gorm.DB, userID uint, day string) (*entity.Mood, error) {
	var mood entity.Mood
	err := db.Where("user_id = ? AND day = ?", userID, day).First(&mood).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &mood, nil
}

func (r *moodRepository) FindFirstInRange(db *gorm.DB, userID uint, start, end time.Time) (*entity.Mood, error) {
	var mood entity.Mood
	err := db.
		Where("user_id = ? AND date >= ? AND date < ?", userID, start, end).
		Order("date ASC").
		First(&mood).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &mood, nil
}

func (r *moodRepository) FindByUserID(db *gorm.DB, userID uint) ([]entity.Mood, error) {
	var moods []entity.Mood
	err := db.Where("user_id = ?", userID).Order("date DESC").Find(&moods).Error
	if err != nil {
		return nil, err
	}
	return moods, nil
}

func (r *moodRepository) UpdateLabel(db *gorm.DB, mood *entity.Mood, label string) error {
	return db.Model(mood).Update("label", label).Error
}
