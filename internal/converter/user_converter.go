package converter

import (
	"oncotrack/internal/delivery/dto"
	"oncotrack/internal/domain/entity"
	"oncotrack/pkg/timeutil"
)

// UserToResponse converts a User entity to UserResponse DTO. The password hash never leaves here.
func UserToResponse(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}

	return &dto.UserResponse{
		ID:            user.ID,
		Name:          user.Name,
		Email:         user.Email,
		Birthday:      user.Birthday.Format(timeutil.DayKeyLayout),
		Phone:         user.Phone,
		Disease:       user.Disease,
		DiagnosisDate: user.DiagnosisDate.Format(timeutil.DayKeyLayout),
		Username:      user.Username,
		CreatedAt:     user.CreatedAt,
	}
}

func UsersToResponses(users []entity.User) []dto.UserResponse {
	responses := make([]dto.UserResponse, len(users))
	for i := range users {
		responses[i] = *UserToResponse(&users[i])
	}
	return responses
}
