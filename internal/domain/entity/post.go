package entity

import "time"

// Post is a message shared on the community board
type Post struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	UserID    uint      `gorm:"not null;index"`
	Title     string    `gorm:"type:varchar(255);not null"`
	Content   string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime;index"`

	// Relationships
	User User `gorm:"foreignKey:UserID"`
}

func (Post) TableName() string {
	return "posts"
}
