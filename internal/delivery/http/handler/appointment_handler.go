package handler

import (
	"errors"
	"net/http"

	"oncotrack/internal/delivery/dto"
	"oncotrack/internal/usecase"
	"oncotrack/pkg/response"
	"oncotrack/pkg/validator"
)

type AppointmentHandler struct {
	appointmentUsecase usecase.AppointmentUsecase
	validator          *validator.CustomValidator
}

func NewAppointmentHandler(appointmentUsecase usecase.AppointmentUsecase, validator *validator.CustomValidator) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentUsecase: appointmentUsecase,
		validator:          validator,
	}
}

func (h *AppointmentHandler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAppointmentRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}
	userID, ok := sessionUser(w, r, req.UserID)
	if !ok {
		return
	}

	appointment, err := h.appointmentUsecase.CreateAppointment(r.Context(), userID, &req)
	if err != nil {
		h.writeError(w, err, "Failed to create appointment")
		return
	}

	response.JSON(w, http.StatusCreated, appointment)
}

func (h *AppointmentHandler) ListAppointments(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userId")
	if !ok {
		return
	}

	appointments, err := h.appointmentUsecase.ListAppointmentsByUser(r.Context(), userID)
	if err != nil {
		response.InternalServerError(w, "Failed to get appointments")
		return
	}

	response.JSON(w, http.StatusOK, appointments)
}

func (h *AppointmentHandler) UpdateAppointment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req dto.UpdateAppointmentRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}
	userID, ok := sessionUser(w, r, req.UserID)
	if !ok {
		return
	}

	appointment, err := h.appointmentUsecase.UpdateAppointment(r.Context(), id, userID, &req)
	if err != nil {
		h.writeError(w, err, "Failed to update appointment")
		return
	}

	response.JSON(w, http.StatusOK, appointment)
}

func (h *AppointmentHandler) DeleteAppointment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req struct {
		UserID *uint `json:"userId,omitempty"`
	}
	if !decodeOptional(w, r, &req) {
		return
	}
	userID, ok := sessionUser(w, r, req.UserID)
	if !ok {
		return
	}

	if err := h.appointmentUsecase.DeleteAppointment(r.Context(), id, userID); err != nil {
		h.writeError(w, err, "Failed to delete appointment")
		return
	}

	response.Message(w, http.StatusOK, "Appointment deleted")
}

func (h *AppointmentHandler) writeError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, usecase.ErrAppointmentNotFound):
		response.NotFound(w, "Appointment not found")
	case errors.Is(err, usecase.ErrInvalidAppointmentType),
		errors.Is(err, usecase.ErrInvalidTimestamp),
		errors.Is(err, usecase.ErrInvalidTitle):
		response.BadRequest(w, err.Error())
	default:
		response.InternalServerError(w, fallback)
	}
}
