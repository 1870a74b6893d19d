package repository

import (
	"oncotrack/internal/domain/entity"

	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(db *gorm.DB, appointment *entity.Appointment) error
	FindByIDForUser(db *gorm.DB, id, userID uint) (*entity.Appointment, error)
	FindByUserID(db *gorm.DB, userID uint) ([]entity.Appointment, error)
	Update(db *gorm.DB, appointment *entity.Appointment) (int64, error)
	DeleteByIDForUser(db *gorm.DB, id, userID uint) (int64, error)
}
