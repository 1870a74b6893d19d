package dto

import "time"

// Request DTOs

type RegisterRequest struct {
	Name          string `json:"name" validate:"required,max=255"`
	Email         string `json:"email" validate:"required,email,max=255"`
	Birthday      string `json:"birthday" validate:"required"` // Format: YYYY-MM-DD
	Phone         string `json:"phone" validate:"omitempty,max=30"`
	Disease       string `json:"disease" validate:"omitempty,max=255"`
	DiagnosisDate string `json:"diagnosisDate" validate:"required"` // Format: YYYY-MM-DD
	Username      string `json:"username" validate:"required,min=3,max=100"`
	Password      string `json:"password" validate:"required,min=6,max=72"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// Response DTOs

type TokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int64  `json:"expiresIn"`
}

type LoginResponse struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	TokenResponse
}

type UserResponse struct {
	ID            uint      `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Birthday      string    `json:"birthday"`
	Phone         string    `json:"phone"`
	Disease       string    `json:"disease"`
	DiagnosisDate string    `json:"diagnosisDate"`
	Username      string    `json:"username"`
	CreatedAt     time.Time `json:"createdAt"`
}
