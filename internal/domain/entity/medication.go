package entity

import "time"

type Medication struct {
	ID        uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint       `gorm:"not null;index" json:"userId"`
	Name      string     `gorm:"type:varchar(255);not null" json:"name"`
	Dosage    string     `gorm:"type:varchar(100);not null" json:"dosage"`
	Frequency string     `gorm:"type:varchar(100);not null" json:"frequency"`
	StartDate time.Time  `gorm:"not null" json:"startDate"`
	EndDate   *time.Time `json:"endDate"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"createdAt"`
}

func (Medication) TableName() string {
	return "medications"
}
