package handler

import (
	"errors"
	"net/http"

	"oncotrack/internal/delivery/dto"
	"oncotrack/internal/usecase"
	"oncotrack/pkg/response"
	"oncotrack/pkg/validator"
)

type SymptomHandler struct {
	symptomUsecase usecase.SymptomUsecase
	validator      *validator.CustomValidator
}

func NewSymptomHandler(symptomUsecase usecase.SymptomUsecase, validator *validator.CustomValidator) *SymptomHandler {
	return &SymptomHandler{
		symptomUsecase: symptomUsecase,
		validator:      validator,
	}
}

func (h *SymptomHandler) CreateSymptomOption(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateSymptomOptionRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}
	userID, ok := sessionUser(w, r, req.UserID)
	if !ok {
		return
	}

	option, created, err := h.symptomUsecase.CreateSymptomOption(r.Context(), userID, &req)
	if err != nil {
		h.writeError(w, err, "Failed to create symptom option")
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	response.JSON(w, status, option)
}

func (h *SymptomHandler) ListSymptomOptions(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userId")
	if !ok {
		return
	}

	options, err := h.symptomUsecase.ListSymptomOptions(r.Context(), userID)
	if err != nil {
		response.InternalServerError(w, "Failed to get symptom options")
		return
	}

	response.JSON(w, http.StatusOK, options)
}

func (h *SymptomHandler) CreateSymptom(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateSymptomRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}
	userID, ok := sessionUser(w, r, req.UserID)
	if !ok {
		return
	}

	symptom, err := h.symptomUsecase.CreateSymptom(r.Context(), userID, &req)
	if err != nil {
		h.writeError(w, err, "Failed to create symptom")
		return
	}

	response.JSON(w, http.StatusCreated, symptom)
}

func (h *SymptomHandler) ListSymptoms(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userId")
	if !ok {
		return
	}

	symptoms, err := h.symptomUsecase.ListSymptoms(r.Context(), userID)
	if err != nil {
		response.InternalServerError(w, "Failed to get symptoms")
		return
	}

	response.JSON(w, http.StatusOK, symptoms)
}

func (h *SymptomHandler) ListTodaySymptoms(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userId")
	if !ok {
		return
	}

	symptoms, err := h.symptomUsecase.ListTodaySymptoms(r.Context(), userID)
	if err != nil {
		response.InternalServerError(w, "Failed to get today's symptoms")
		return
	}

	response.JSON(w, http.StatusOK, symptoms)
}

func (h *SymptomHandler) DeleteSymptom(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	userID, ok := sessionUser(w, r, nil)
	if !ok {
		return
	}

	if err := h.symptomUsecase.DeleteSymptom(r.Context(), userID, id); err != nil {
		h.writeError(w, err, "Failed to delete symptom")
		return
	}

	response.Message(w, http.StatusOK, "Symptom deleted")
}

func (h *SymptomHandler) writeError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, usecase.ErrSymptomNotFound):
		response.NotFound(w, "Symptom not found")
	case errors.Is(err, usecase.ErrSymptomOptionNotFound):
		response.NotFound(w, "Symptom option not found")
	case errors.Is(err, usecase.ErrInvalidOptionName), errors.Is(err, usecase.ErrInvalidSeverity):
		response.BadRequest(w, err.Error())
	default:
		response.InternalServerError(w, fallback)
	}
}
