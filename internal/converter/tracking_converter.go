package converter

import (
	"oncotrack/internal/delivery/dto"
	"oncotrack/internal/domain/entity"
)

func MoodToResponse(mood *entity.Mood) *dto.MoodResponse {
	if mood == nil {
		return nil
	}
	return &dto.MoodResponse{
		ID:     mood.ID,
		UserID: mood.UserID,
		Label:  mood.Label,
		Date:   mood.Date,
		Day:    mood.Day,
	}
}

func MoodsToResponses(moods []entity.Mood) []dto.MoodResponse {
	responses := make([]dto.MoodResponse, len(moods))
	for i := range moods {
		responses[i] = *MoodToResponse(&moods[i])
	}
	return responses
}

func SymptomOptionToResponse(option *entity.SymptomOption) *dto.SymptomOptionResponse {
	if option == nil {
		return nil
	}
	return &dto.SymptomOptionResponse{
		ID:     option.ID,
		UserID: option.UserID,
		Name:   option.Name,
	}
}

func SymptomOptionsToResponses(options []entity.SymptomOption) []dto.SymptomOptionResponse {
	responses := make([]dto.SymptomOptionResponse, len(options))
	for i := range options {
		responses[i] = *SymptomOptionToResponse(&options[i])
	}
	return responses
}

// SymptomToResponse expects SymptomOption to be preloaded.
func SymptomToResponse(symptom *entity.Symptom) *dto.SymptomResponse {
	if symptom == nil {
		return nil
	}
	return &dto.SymptomResponse{
		ID:              symptom.ID,
		UserID:          symptom.UserID,
		SymptomOptionID: symptom.SymptomOptionID,
		Severity:        symptom.Severity,
		Note:            symptom.Note,
		CreatedAt:       symptom.CreatedAt,
		SymptomOption:   *SymptomOptionToResponse(&symptom.SymptomOption),
	}
}

func SymptomsToResponses(symptoms []entity.Symptom) []dto.SymptomResponse {
	responses := make([]dto.SymptomResponse, len(symptoms))
	for i := range symptoms {
		responses[i] = *SymptomToResponse(&symptoms[i])
	}
	return responses
}

func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}
	return &dto.AppointmentResponse{
		ID:       appointment.ID,
		UserID:   appointment.UserID,
		Type:     string(appointment.Type),
		Date:     appointment.Date,
		Title:    appointment.Title,
		Location: appointment.Location,
		Note:     appointment.Note,
		Doctor:   appointment.Doctor,
	}
}

func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i := range appointments {
		responses[i] = *AppointmentToResponse(&appointments[i])
	}
	return responses
}

func MedicationToResponse(medication *entity.Medication) *dto.MedicationResponse {
	if medication == nil {
		return nil
	}
	return &dto.MedicationResponse{
		ID:        medication.ID,
		UserID:    medication.UserID,
		Name:      medication.Name,
		Dosage:    medication.Dosage,
		Frequency: medication.Frequency,
		StartDate: medication.StartDate,
		EndDate:   medication.EndDate,
	}
}

func MedicationsToResponses(medications []entity.Medication) []dto.MedicationResponse {
	responses := make([]dto.MedicationResponse, len(medications))
	for i := range medications {
		responses[i] = *MedicationToResponse(&medications[i])
	}
	return responses
}

// PostToResponse expects User to be preloaded.
func PostToResponse(post *entity.Post) *dto.PostResponse {
	if post == nil {
		return nil
	}
	return &dto.PostResponse{
		ID:        post.ID,
		Title:     post.Title,
		Content:   post.Content,
		CreatedAt: post.CreatedAt,
		Author: dto.AuthorResponse{
			ID:   post.User.ID,
			Name: post.User.Name,
		},
	}
}

func PostsToResponses(posts []entity.Post) []dto.PostResponse {
	responses := make([]dto.PostResponse, len(posts))
	for i := range posts {
		responses[i] = *PostToResponse(&posts[i])
	}
	return responses
}
