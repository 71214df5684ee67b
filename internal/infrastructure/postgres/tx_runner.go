package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/activos-api/internal/application/lending"
	"github.com/jhoicas/activos-api/internal/application/workflow"
	"github.com/jhoicas/activos-api/internal/domain/repository"
)

// Ensure TxRunner implements workflow.TxRunner and lending.TxRunner.
var _ workflow.TxRunner = (*TxRunner)(nil)
var _ lending.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción para el flujo de aprobación, ejecuta fn con repos
// atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	requests repository.RequestRepository,
	approvals repository.RequestApprovalRepository,
	items repository.ItemRepository,
	notifs repository.NotificationRepository,
	audits repository.AuditLogRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	requests := NewRequestRepository(tx)
	approvals := NewRequestApprovalRepository(tx)
	items := NewItemRepository(tx)
	notifs := NewNotificationRepository(tx)
	audits := NewAuditLogRepository(tx)

	if err := fn(requests, approvals, items, notifs, audits); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunLending inicia una transacción para préstamos y devoluciones.
func (r *TxRunner) RunLending(ctx context.Context, fn func(
	loans repository.LoanRepository,
	items repository.ItemRepository,
	notifs repository.NotificationRepository,
	audits repository.AuditLogRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	loans := NewLoanRepository(tx)
	items := NewItemRepository(tx)
	notifs := NewNotificationRepository(tx)
	audits := NewAuditLogRepository(tx)

	if err := fn(loans, items, notifs, audits); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
