package dto

import (
	"time"

	"oncotrack/internal/domain/entity"
)

// Response DTOs

type AuditLogResponse struct {
	ID        uint        `json:"id"`
	Action    string      `json:"action"`
	Metadata  entity.JSON `json:"metadata"`
	CreatedAt time.Time   `json:"createdAt"`
}

type AuditLogListResponse struct {
	Logs  []AuditLogResponse `json:"logs"`
	Total int                `json:"total"`
}
