package entity

import "time"

// User is a patient account. Password holds a bcrypt hash.
type User struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string    `gorm:"type:varchar(255);not null" json:"name"`
	Email         string    `gorm:"type:varchar(255);not null" json:"email"`
	Birthday      time.Time `gorm:"type:date;not null" json:"birthday"`
	Phone         string    `gorm:"type:varchar(30)" json:"phone"`
	Disease       string    `gorm:"type:varchar(255)" json:"disease"`
	DiagnosisDate time.Time `gorm:"type:date;not null" json:"diagnosisDate"`
	Username      string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"username"`
	Password      string    `gorm:"type:text;not null" json:"-"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}
