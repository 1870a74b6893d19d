package entity

import "time"

const (
	MinSymptomSeverity = 1
	MaxSymptomSeverity = 10
)

// SymptomOption is an entry of a user's symptom catalog. NameKey is the
// trimmed lower-case name and is unique per user.
type SymptomOption struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_symptom_options_user_name,priority:1" json:"userId"`
	Name      string    `gorm:"type:varchar(80);not null" json:"name"`
	NameKey   string    `gorm:"type:varchar(80);not null;uniqueIndex:idx_symptom_options_user_name,priority:2" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (SymptomOption) TableName() string {
	return "symptom_options"
}

// Symptom is one logged occurrence of a symptom option.
type Symptom struct {
	ID              uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID          uint      `gorm:"not null;index:idx_symptoms_user_created,priority:1" json:"userId"`
	SymptomOptionID uint      `gorm:"not null;index" json:"symptomOptionId"`
	Severity        int       `gorm:"not null" json:"severity"`
	Note            string    `gorm:"type:text" json:"note,omitempty"`
	CreatedAt       time.Time `gorm:"not null;index:idx_symptoms_user_created,priority:2" json:"createdAt"`

	// Relationships
	SymptomOption SymptomOption `gorm:"foreignKey:SymptomOptionID;constraint:OnDelete:CASCADE" json:"symptomOption"`
}

func (Symptom) TableName() string {
	return "symptoms"
}
