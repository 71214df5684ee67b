package lending

import (
	"context"

	"github.com/jhoicas/activos-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con los
// repositorios de préstamos atados a esa tx. La transición Available→Assigned
// del item ocurre bajo bloqueo de fila dentro del callback: es el único punto
// donde importa de verdad la seguridad ante carreras de préstamo.
type TxRunner interface {
	RunLending(ctx context.Context, fn func(
		loans repository.LoanRepository,
		items repository.ItemRepository,
		notifs repository.NotificationRepository,
		audits repository.AuditLogRepository,
	) error) error
}
