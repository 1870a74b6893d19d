package entity

import "time"

// Mood is a user's mood for one calendar day. Day holds the YYYY-MM-DD key of
// Date in the configured zone; (UserID, Day) is unique.
type Mood struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_moods_user_day,priority:1" json:"userId"`
	Label     string    `gorm:"type:varchar(50);not null" json:"label"`
	Date      time.Time `gorm:"not null;index" json:"date"`
	Day       string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_moods_user_day,priority:2" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Mood) TableName() string {
	return "moods"
}
