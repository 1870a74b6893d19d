package repository

import (
	"oncotrack/internal/domain/entity"
	domainRepo "oncotrack/internal/domain/repository"

	"gorm.io/gorm"
)

type medicationRepository struct{}

func NewMedicationRepository() domainRepo.MedicationRepository {
	return &medicationRepository{}
}

func (r *medicationRepository) Create(db *gorm.DB, medication *entity.Medication) error {
	return db.Create(medication).Error
}

func (r *medicationRepository) FindByUserID(db *gorm.DB, userID uint) ([]entity.Medication, error) {
	var medications []entity.Medication
	err := db.Where("user_id = ?", userID).Order("start_date DESC").Order("id DESC").Find(&medications).Error
	if err != nil {
		return nil, err
	}
	return medications, nil
}

func (r *medicationRepository) DeleteByIDForUser(db *gorm.DB, id, userID uint) (int64, error) {
	result := db.Where("id = ? AND user_id = ?", id, userID).Delete(&entity.Medication{})
	return result.RowsAffected, result.Error
}
