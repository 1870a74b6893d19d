package repository

import (
	"errors"

	"oncotrack/internal/domain/entity"
	domainRepo "oncotrack/internal/domain/repository"

	"gorm.io/gorm"
)

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) Create(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Create(appointment).Error
}

func (r *appointmentRepository) FindByIDForUser(db *gorm.DB, id, userID uint) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Where("id = ? AND user_id = ?", id, userID).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindByUserID(db *gorm.DB, userID uint) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Where("user_id = ?", userID).Order("date DESC").Order("id DESC").Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

// Update writes the mutable columns of the row identified by (ID, UserID).
func (r *appointmentRepository) Update(db *gorm.DB, appointment *entity.Appointment) (int64, error) {
	result := db.Model(&entity.Appointment{}).
		Where("id = ? AND user_id = ?", appointment.ID, appointment.UserID).
		Updates(map[string]interface{}{
			"type":     appointment.Type,
			"date":     appointment.Date,
			"title":    appointment.Title,
			"location": appointment.Location,
			"note":     appointment.Note,
			"doctor":   appointment.Doctor,
		})
	return result.RowsAffected, result.Error
}

func (r *appointmentRepository) DeleteByIDForUser(db *gorm.DB, id, userID uint) (int64, error) {
	result := db.Where("id = ? AND user_id = ?", id, userID).Delete(&entity.Appointment{})
	return result.RowsAffected, result.Error
}
