package dto

import "time"

// AuditLogResponse entrada de la bitácora.
type AuditLogResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	ActionType  string    `json:"action_type"`
	ObjectType  string    `json:"object_type"`
	ObjectID    string    `json:"object_id"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
}

// AuditLogListResponse listado paginado de la bitácora.
type AuditLogListResponse struct {
	Items []AuditLogResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
