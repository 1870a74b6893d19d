package dto

import "time"

type CreateAppointmentRequest struct {
	UserID   *uint  `json:"userId,omitempty"`
	Type     string `json:"type" validate:"required,oneof=CONSULTATION EXAM TREATMENT"`
	Date     string `json:"date" validate:"required"`
	Title    string `json:"title" validate:"required,max=255"`
	Location string `json:"location" validate:"omitempty,max=255"`
	Note     string `json:"note" validate:"omitempty,max=2000"`
	Doctor   string `json:"doctor" validate:"omitempty,max=255"`
}

// UpdateAppointmentRequest carries only the fields to change; nil means keep.
type UpdateAppointmentRequest struct {
	UserID   *uint   `json:"userId,omitempty"`
	Type     *string `json:"type" validate:"omitempty,oneof=CONSULTATION EXAM TREATMENT"`
	Date     *string `json:"date" validate:"omitempty"`
	Title    *string `json:"title" validate:"omitempty,min=1,max=255"`
	Location *string `json:"location" validate:"omitempty,max=255"`
	Note     *string `json:"note" validate:"omitempty,max=2000"`
	Doctor   *string `json:"doctor" validate:"omitempty,max=255"`
}

type AppointmentResponse struct {
	ID       uint      `json:"id"`
	UserID   uint      `json:"userId"`
	Type     string    `json:"type"`
	Date     time.Time `json:"date"`
	Title    string    `json:"title"`
	Location string    `json:"location"`
	Note     string    `json:"note,omitempty"`
	Doctor   string    `json:"doctor,omitempty"`
}
