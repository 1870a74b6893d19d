package repository

import (
	"errors"

	"oncotrack/internal/domain/entity"
	domainRepo "oncotrack/internal/domain/repository"
	"oncotrack/pkg/timeutil"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type symptomOptionRepository struct{}

func NewSymptomOptionRepository() domainRepo.SymptomOptionRepository {
	return &symptomOptionRepository{}
}

// CreateIfAbsent reports false when the user already has an option with the same name key.
func (r *symptomOptionRepository) CreateIfAbsent(db *gorm.DB, option *entity.SymptomOption) (bool, error) {
	result := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "name_key"}},
		DoNothing: true,
	}).Create(option)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *symptomOptionRepository) FindByIDForUser(db *gorm.DB, id, userID uint) (*entity.SymptomOption, error) {
	var option entity.SymptomOption
	err := db.Where("id = ? AND user_id = ?", id, userID).First(&option).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &option, nil
}

func (r *symptomOptionRepository) FindByNameKey(db *gorm.DB, userID uint, nameKey string) (*entity.SymptomOption, error) {
	var option entity.SymptomOption
	err := db.Where("user_id = ? AND name_key = ?", userID, nameKey).First(&option).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &option, nil
}

func (r *symptomOptionRepository) FindByUserID(db *gorm.DB, userID uint) ([]entity.SymptomOption, error) {
	var options []entity.SymptomOption
	err := db.Where("user_id = ?", userID).Order("name ASC").Find(&options).Error
	if err != nil {
		return nil, err
	}
	return options, nil
}

type symptomRepository struct{}

func NewSymptomRepository() domainRepo.SymptomRepository {
	return &symptomRepository{}
}

func (r *symptomRepository) Create(db *gorm.DB, symptom *entity.Symptom) error {
	return db.Omit("SymptomOption").Create(symptom).Error
}

func (r *symptomRepository) FindByIDForUser(db *gorm.DB, id, userID uint) (*entity.Symptom, error) {
	var symptom entity.Symptom
	err := db.Preload("SymptomOption").Where("id = ? AND user_id = ?", id, userID).First(&symptom).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &symptom, nil
}

func (r *symptomRepository) FindByUserID(db *gorm.DB, userID uint, window *timeutil.Window) ([]entity.Symptom, error) {
	var symptoms []entity.Symptom
	query := db.Preload("SymptomOption").Where("user_id = ?", userID)
	if window != nil {
		query = query.Where("created_at >= ? AND created_at < ?", window.Start, window.End)
	}

	err := query.Order("created_at DESC").Order("id DESC").Find(&symptoms).Error
	if err != nil {
		return nil, err
	}
	return symptoms, nil
}

func (r *symptomRepository) DeleteByIDForUser(db *gorm.DB, id, userID uint) (int64, error) {
	result := db.Where("id = ? AND user_id = ?", id, userID).Delete(&entity.Symptom{})
	return result.RowsAffected, result.Error
}
