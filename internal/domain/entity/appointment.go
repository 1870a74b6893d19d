package entity

import "time"

// AppointmentType represents the kind of appointment
type AppointmentType string

const (
	AppointmentTypeConsultation AppointmentType = "CONSULTATION"
	AppointmentTypeExam         AppointmentType = "EXAM"
	AppointmentTypeTreatment    AppointmentType = "TREATMENT"
)

// IsValid checks the value against the known appointment types
func (t AppointmentType) IsValid() bool {
	switch t {
	case AppointmentTypeConsultation, AppointmentTypeExam, AppointmentTypeTreatment:
		return true
	}
	return false
}

// Appointment is a scheduled consultation, exam or treatment session
type Appointment struct {
	ID        uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint            `gorm:"not null;index:idx_appointments_user_date,priority:1" json:"userId"`
	Type      AppointmentType `gorm:"type:varchar(20);not null" json:"type"`
	Date      time.Time       `gorm:"not null;index:idx_appointments_user_date,priority:2" json:"date"`
	Title     string          `gorm:"type:varchar(255);not null" json:"title"`
	Location  string          `gorm:"type:varchar(255)" json:"location"`
	Note      string          `gorm:"type:text" json:"note,omitempty"`
	Doctor    string          `gorm:"type:varchar(255)" json:"doctor,omitempty"`
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Appointment) TableName() string {
	return "appointments"
}
