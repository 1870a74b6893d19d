package dto

import "time"

type RecordMoodRequest struct {
	UserID *uint  `json:"userId,omitempty"`
	Label  string `json:"label" validate:"required,max=50"`
}

type UpdateMoodRequest struct {
	Label string `json:"label" validate:"required,max=50"`
}

type MoodResponse struct {
	ID     uint      `json:"id"`
	UserID uint      `json:"userId"`
	Label  string    `json:"label"`
	Date   time.Time `json:"date"`
	Day    string    `json:"day"`
}
