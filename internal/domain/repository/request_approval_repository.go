package repository

import "github.com/jhoicas/activos-api/internal/domain/entity"

// RequestApprovalRepository define el puerto del historial de decisiones.
// Solo inserta y lista: el historial nunca se modifica.
type RequestApprovalRepository interface {
	Create(approval *entity.RequestApproval) error
	ListByRequest(requestID string) ([]*entity.RequestApproval, error)
}
