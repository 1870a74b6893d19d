package dto

import "time"

type CreateMedicationRequest struct {
	UserID    *uint   `json:"userId,omitempty"`
	Name      string  `json:"name" validate:"required,max=255"`
	Dosage    string  `json:"dosage" validate:"required,max=100"`
	Frequency string  `json:"frequency" validate:"required,max=100"`
	StartDate string  `json:"startDate" validate:"required"`
	EndDate   *string `json:"endDate,omitempty"`
}

type MedicationResponse struct {
	ID        uint       `json:"id"`
	UserID    uint       `json:"userId"`
	Name      string     `json:"name"`
	Dosage    string     `json:"dosage"`
	Frequency string     `json:"frequency"`
	StartDate time.Time  `json:"startDate"`
	EndDate   *time.Time `json:"endDate"`
}
