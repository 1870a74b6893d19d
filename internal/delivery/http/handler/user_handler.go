package handler

import (
	"errors"
	"net/http"

	"oncotrack/internal/usecase"
	"oncotrack/pkg/response"
)

type UserHandler struct {
	userUsecase     usecase.UserUsecase
	auditLogUsecase usecase.AuditLogUsecase
}

func NewUserHandler(userUsecase usecase.UserUsecase, auditLogUsecase usecase.AuditLogUsecase) *UserHandler {
	return &UserHandler{
		userUsecase:     userUsecase,
		auditLogUsecase: auditLogUsecase,
	}
}

func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userUsecase.ListUsers(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get users")
		return
	}

	response.JSON(w, http.StatusOK, users)
}

// GetUser returns the profile of the path user; the owner check runs in middleware.
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	user, err := h.userUsecase.GetUserByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, usecase.ErrUserNotFound) {
			response.NotFound(w, "User not found")
			return
		}
		response.InternalServerError(w, "Failed to get user")
		return
	}

	response.JSON(w, http.StatusOK, user)
}

func (h *UserHandler) ListAuditLogs(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	logs, err := h.auditLogUsecase.ListUserAuditLogs(r.Context(), id)
	if err != nil {
		response.InternalServerError(w, "Failed to get audit logs")
		return
	}

	response.JSON(w, http.StatusOK, logs)
}
