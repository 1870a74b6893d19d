package handler

import (
	"errors"
	"net/http"

	"oncotrack/internal/delivery/dto"
	"oncotrack/internal/usecase"
	"oncotrack/pkg/response"
	"oncotrack/pkg/validator"
)

type MoodHandler struct {
	moodUsecase usecase.MoodUsecase
	validator   *validator.CustomValidator
}

func NewMoodHandler(moodUsecase usecase.MoodUsecase, validator *validator.CustomValidator) *MoodHandler {
	return &MoodHandler{
		moodUsecase: moodUsecase,
		validator:   validator,
	}
}

// RecordMood answers 201 when today's mood was created and 200 when it replaced an existing one.
func (h *MoodHandler) RecordMood(w http.ResponseWriter, r *http.Request) {
	var req dto.RecordMoodRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}
	userID, ok := sessionUser(w, r, req.UserID)
	if !ok {
		return
	}

	mood, created, err := h.moodUsecase.RecordMood(r.Context(), userID, &req)
	if err != nil {
		h.writeError(w, err, "Failed to record mood")
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	response.JSON(w, status, mood)
}

func (h *MoodHandler) ListMoods(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userId")
	if !ok {
		return
	}

	moods, err := h.moodUsecase.ListMoods(r.Context(), userID)
	if err != nil {
		response.InternalServerError(w, "Failed to get moods")
		return
	}

	response.JSON(w, http.StatusOK, moods)
}

func (h *MoodHandler) GetTodayMood(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userId")
	if !ok {
		return
	}

	mood, err := h.moodUsecase.GetTodayMood(r.Context(), userID)
	if err != nil {
		h.writeError(w, err, "Failed to get today's mood")
		return
	}

	response.JSON(w, http.StatusOK, mood)
}

func (h *MoodHandler) UpdateTodayMood(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userId")
	if !ok {
		return
	}

	var req dto.UpdateMoodRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	mood, err := h.moodUsecase.UpdateTodayMood(r.Context(), userID, &req)
	if err != nil {
		h.writeError(w, err, "Failed to update mood")
		return
	}

	response.JSON(w, http.StatusOK, mood)
}

func (h *MoodHandler) writeError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, usecase.ErrMoodNotFound):
		response.NotFound(w, "No mood recorded today")
	case errors.Is(err, usecase.ErrInvalidLabel):
		response.BadRequest(w, err.Error())
	default:
		response.InternalServerError(w, fallback)
	}
}
