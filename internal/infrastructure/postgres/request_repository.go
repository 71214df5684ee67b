package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/activos-api/internal/domain/entity"
	"github.com/jhoicas/activos-api/internal/domain/repository"
)

var _ repository.RequestRepository = (*RequestRepo)(nil)

const requestColumns = `id, employee_id, product_id, reason, request_date, status, final_approval_date, remarks, created_at, updated_at`

// RequestRepo implementación del puerto RequestRepository sobre PostgreSQL (usable con pool o tx).
type RequestRepo struct {
	q Querier
}

// NewRequestRepository construye el adaptador de persistencia para solicitudes. Pasar pool o tx (Querier).
func NewRequestRepository(q Querier) *RequestRepo {
	return &RequestRepo{q: q}
}

// Create persiste una nueva solicitud.
func (r *RequestRepo) Create(req *entity.Request) error {
	query := `
		INSERT INTO requests (id, employee_id, product_id, reason, request_date, status, final_approval_date, remarks, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		req.ID, req.EmployeeID, req.ProductID, req.Reason, req.RequestDate,
		req.Status, req.FinalApprovalDate, req.Remarks, req.CreatedAt, req.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert request: %w", err)
	}
	return nil
}

// GetByID obtiene una solicitud por ID.
func (r *RequestRepo) GetByID(id string) (*entity.Request, error) {
	return r.getOne(`WHERE id = $1`, id)
}

// GetForUpdate obtiene la solicitud bloqueando la fila; serializa decisiones concurrentes.
func (r *RequestRepo) GetForUpdate(id string) (*entity.Request, error) {
	return r.getOne(`WHERE id = $1 FOR UPDATE`, id)
}

func (r *RequestRepo) getOne(where string, arg any) (*entity.Request, error) {
	query := `SELECT ` + requestColumns + ` FROM requests ` + where
	var req entity.Request
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&req.ID, &req.EmployeeID, &req.ProductID, &req.Reason, &req.RequestDate,
		&req.Status, &req.FinalApprovalDate, &req.Remarks, &req.CreatedAt, &req.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get request: %w", err)
	}
	return &req, nil
}

// Update actualiza una solicitud (estado, fecha de aprobación final, remarks).
func (r *RequestRepo) Update(req *entity.Request) error {
	query := `
		UPDATE requests SET status = $2, final_approval_date = $3, remarks = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		req.ID, req.Status, req.FinalApprovalDate, req.Remarks, req.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update request: %w", err)
	}
	return nil
}

// ListByEmployee lista solicitudes del empleado con paginación.
func (r *RequestRepo) ListByEmployee(employeeID string, limit, offset int) ([]*entity.Request, error) {
	query := `SELECT ` + requestColumns + ` FROM requests WHERE employee_id = $1 ORDER BY request_date DESC LIMIT $2 OFFSET $3`
	return r.list(query, employeeID, limit, offset)
}

// ListByStatus lista solicitudes por estado con paginación.
func (r *RequestRepo) ListByStatus(status string, limit, offset int) ([]*entity.Request, error) {
	query := `SELECT ` + requestColumns + ` FROM requests WHERE status = $1 ORDER BY request_date ASC LIMIT $2 OFFSET $3`
	return r.list(query, status, limit, offset)
}

// ListPendingByUnit lista solicitudes PENDING_DIRECTOR de empleados de la unidad.
func (r *RequestRepo) ListPendingByUnit(unitID string, limit, offset int) ([]*entity.Request, error) {
	query := `
		SELECT r.id, r.employee_id, r.product_id, r.reason, r.request_date, r.status, r.final_approval_date, r.remarks, r.created_at, r.updated_at
		FROM requests r
		JOIN users u ON u.id = r.employee_id
		WHERE u.business_unit_id = $1 AND r.status = 'PENDING_DIRECTOR'
		ORDER BY r.request_date ASC LIMIT $2 OFFSET $3`
	return r.list(query, unitID, limit, offset)
}

func (r *RequestRepo) list(query string, args ...any) ([]*entity.Request, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}
	defer rows.Close()
	var list []*entity.Request
	for rows.Next() {
		var req entity.Request
		if err := rows.Scan(&req.ID, &req.EmployeeID, &req.ProductID, &req.Reason,
			&req.RequestDate, &req.Status, &req.FinalApprovalDate, &req.Remarks,
			&req.CreatedAt, &req.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan request: %w", err)
		}
		list = append(list, &req)
	}
	return list, rows.Err()
}
