package dto

import "time"

type CreateSymptomOptionRequest struct {
	UserID *uint  `json:"userId,omitempty"`
	Name   string `json:"name" validate:"required,max=80"`
}

type CreateSymptomRequest struct {
	UserID          *uint  `json:"userId,omitempty"`
	SymptomOptionID uint   `json:"symptomOptionId" validate:"required"`
	Severity        int    `json:"severity" validate:"gte=1,lte=10"`
	Note            string `json:"note" validate:"omitempty,max=1000"`
}

type SymptomOptionResponse struct {
	ID     uint   `json:"id"`
	UserID uint   `json:"userId"`
	Name   string `json:"name"`
}

type SymptomResponse struct {
	ID              uint                  `json:"id"`
	UserID          uint                  `json:"userId"`
	SymptomOptionID uint                  `json:"symptomOptionId"`
	Severity        int                   `json:"severity"`
	Note            string                `json:"note,omitempty"`
	CreatedAt       time.Time             `json:"createdAt"`
	SymptomOption   SymptomOptionResponse `json:"symptomOption"`
}
