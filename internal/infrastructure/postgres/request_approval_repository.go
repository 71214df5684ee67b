package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/activos-api/internal/domain/entity"
	"github.com/jhoicas/activos-api/internal/domain/repository"
)

var _ repository.RequestApprovalRepository = (*RequestApprovalRepo)(nil)

// RequestApprovalRepo historial de decisiones sobre PostgreSQL. Solo inserta y lista.
type RequestApprovalRepo struct {
	q Querier
}

// NewRequestApprovalRepository construye el adaptador del historial de decisiones.
func NewRequestApprovalRepository(q Querier) *RequestApprovalRepo {
	return &RequestApprovalRepo{q: q}
}

// Create persiste una decisión. El historial nunca se modifica.
func (r *RequestApprovalRepo) Create(approval *entity.RequestApproval) error {
	query := `
		INSERT INTO request_approvals (id, request_id, approver_id, role, status, comments, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		approval.ID, approval.RequestID, approval.ApproverID, approval.Role,
		approval.Status, approval.Comments, approval.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("insert request approval: %w", err)
	}
	return nil
}

// ListByRequest lista las decisiones de una solicitud en orden cronológico.
func (r *RequestApprovalRepo) ListByRequest(requestID string) ([]*entity.RequestApproval, error) {
	query := `
		SELECT id, request_id, approver_id, role, status, comments, timestamp
		FROM request_approvals WHERE request_id = $1 ORDER BY timestamp ASC`
	rows, err := r.q.Query(context.Background(), query, requestID)
	if err != nil {
		return nil, fmt.Errorf("list request approvals: %w", err)
	}
	defer rows.Close()
	var list []*entity.RequestApproval
	for rows.Next() {
		var a entity.RequestApproval
		if err := rows.Scan(&a.ID, &a.RequestID, &a.ApproverID, &a.Role,
			&a.Status, &a.Comments, &a.Timestamp); err != nil {
			return nil, fmt.Errorf("scan request approval: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}
