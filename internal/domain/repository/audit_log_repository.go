package repository

import "github.com/jhoicas/activos-api/internal/domain/entity"

// AuditLogFilter filtros opcionales para listar la bitácora (vacío = todos).
type AuditLogFilter struct {
	UserID     string
	ActionType string
	ObjectType string
}

// AuditLogRepository define el puerto de la bitácora. Solo inserta y lista.
type AuditLogRepository interface {
	Create(log *entity.AuditLog) error
	List(filter AuditLogFilter, limit, offset int) ([]*entity.AuditLog, error)
}
