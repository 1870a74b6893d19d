package handler

import (
	"errors"
	"net/http"

	"oncotrack/internal/delivery/dto"
	"oncotrack/internal/usecase"
	"oncotrack/pkg/response"
	"oncotrack/pkg/validator"
)

type MedicationHandler struct {
	medicationUsecase usecase.MedicationUsecase
	validator         *validator.CustomValidator
}

func NewMedicationHandler(medicationUsecase usecase.MedicationUsecase, validator *validator.CustomValidator) *MedicationHandler {
	return &MedicationHandler{
		medicationUsecase: medicationUsecase,
		validator:         validator,
	}
}

func (h *MedicationHandler) CreateMedication(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateMedicationRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}
	userID, ok := sessionUser(w, r, req.UserID)
	if !ok {
		return
	}

	medication, err := h.medicationUsecase.CreateMedication(r.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidTimestamp),
			errors.Is(err, usecase.ErrInvalidDateRange),
			errors.Is(err, usecase.ErrInvalidMedication):
			response.BadRequest(w, err.Error())
		default:
			response.InternalServerError(w, "Failed to create medication")
		}
		return
	}

	response.JSON(w, http.StatusCreated, medication)
}

func (h *MedicationHandler) ListMedications(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userId")
	if !ok {
		return
	}

	medications, err := h.medicationUsecase.ListMedicationsByUser(r.Context(), userID)
	if err != nil {
		response.InternalServerError(w, "Failed to get medications")
		return
	}

	response.JSON(w, http.StatusOK, medications)
}

func (h *MedicationHandler) DeleteMedication(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	userID, ok := sessionUser(w, r, nil)
	if !ok {
		return
	}

	if err := h.medicationUsecase.DeleteMedication(r.Context(), id, userID); err != nil {
		if errors.Is(err, usecase.ErrMedicationNotFound) {
			response.NotFound(w, "Medication not found")
			return
		}
		response.InternalServerError(w, "Failed to delete medication")
		return
	}

	response.Message(w, http.StatusOK, "Medication deleted")
}
