package repository

import "github.com/jhoicas/activos-api/internal/domain/entity"

// RequestRepository define el puerto de persistencia para Request (DIP).
type RequestRepository interface {
	Create(req *entity.Request) error
	GetByID(id string) (*entity.Request, error)
	// GetForUpdate bloquea la fila de la solicitud; serializa aprobaciones y
	// rechazos concurrentes sobre la misma solicitud.
	GetForUpdate(id string) (*entity.Request, error)
	Update(req *entity.Request) error
	ListByEmployee(employeeID string, limit, offset int) ([]*entity.Request, error)
	ListByStatus(status string, limit, offset int) ([]*entity.Request, error)
	// ListPendingByUnit lista solicitudes PENDING_DIRECTOR de empleados de la unidad.
	ListPendingByUnit(unitID string, limit, offset int) ([]*entity.Request, error)
}
