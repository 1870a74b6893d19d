package repository

import (
	"oncotrack/internal/domain/entity"

	"gorm.io/gorm"
)

type MedicationRepository interface {
	Create(db *gorm.DB, medication *entity.Medication) error
	FindByUserID(db *gorm.DB, userID uint) ([]entity.Medication, error)
	DeleteByIDForUser(db *gorm.DB, id, userID uint) (int64, error)
}
