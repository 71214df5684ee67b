package workflow

import (
	"context"

	"github.com/jhoicas/activos-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que la mutación de la solicitud, la
// entrada del historial, la asignación del item y los registros del dispatcher
// se confirmen o reviertan como una sola unidad.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		requests repository.RequestRepository,
		approvals repository.RequestApprovalRepository,
		items repository.ItemRepository,
		notifs repository.NotificationRepository,
		audits repository.AuditLogRepository,
	) error) error
}
