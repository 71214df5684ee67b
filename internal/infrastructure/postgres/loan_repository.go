package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/activos-api/internal/domain/entity"
	"github.com/jhoicas/activos-api/internal/domain/repository"
)

var _ repository.LoanRepository = (*LoanRepo)(nil)

const loanColumns = `id, item_id, employee_id, borrow_date, expected_return_date, actual_return_date, status, condition_on_borrow, COALESCE(condition_on_return, ''), remarks, created_at, updated_at`

// LoanRepo implementación del puerto LoanRepository sobre PostgreSQL (usable con pool o tx).
type LoanRepo struct {
	q Querier
}

// NewLoanRepository construye el adaptador de persistencia para préstamos. Pasar pool o tx (Querier).
func NewLoanRepository(q Querier) *LoanRepo {
	return &LoanRepo{q: q}
}

// Create persiste un nuevo préstamo.
func (r *LoanRepo) Create(loan *entity.Loan) error {
	query := `
		INSERT INTO loans (id, item_id, employee_id, borrow_date, expected_return_date, actual_return_date, status, condition_on_borrow, condition_on_return, remarks, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULLIF($9, ''), $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		loan.ID, loan.ItemID, loan.EmployeeID, loan.BorrowDate, loan.ExpectedReturnDate,
		loan.ActualReturnDate, loan.Status, loan.ConditionOnBorrow, loan.ConditionOnReturn,
		loan.Remarks, loan.CreatedAt, loan.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert loan: %w", err)
	}
	return nil
}

// GetByID obtiene un préstamo por ID.
func (r *LoanRepo) GetByID(id string) (*entity.Loan, error) {
	return r.getOne(`WHERE id = $1`, id)
}

// GetForUpdate obtiene el préstamo bloqueando la fila; serializa devoluciones concurrentes.
func (r *LoanRepo) GetForUpdate(id string) (*entity.Loan, error) {
	return r.getOne(`WHERE id = $1 FOR UPDATE`, id)
}

func (r *LoanRepo) getOne(where string, arg any) (*entity.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans ` + where
	var l entity.Loan
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&l.ID, &l.ItemID, &l.EmployeeID, &l.BorrowDate, &l.ExpectedReturnDate,
		&l.ActualReturnDate, &l.Status, &l.ConditionOnBorrow, &l.ConditionOnReturn,
		&l.Remarks, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get loan: %w", err)
	}
	return &l, nil
}

// Update actualiza un préstamo (cierre, condición de devolución, remarks).
func (r *LoanRepo) Update(loan *entity.Loan) error {
	query := `
		UPDATE loans SET actual_return_date = $2, status = $3, condition_on_return = NULLIF($4, ''), remarks = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		loan.ID, loan.ActualReturnDate, loan.Status, loan.ConditionOnReturn,
		loan.Remarks, loan.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update loan: %w", err)
	}
	return nil
}

// ListByEmployee lista préstamos del empleado con paginación.
func (r *LoanRepo) ListByEmployee(employeeID string, limit, offset int) ([]*entity.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE employee_id = $1 ORDER BY borrow_date DESC LIMIT $2 OFFSET $3`
	return r.list(query, employeeID, limit, offset)
}

// List lista préstamos con paginación.
func (r *LoanRepo) List(limit, offset int) ([]*entity.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans ORDER BY borrow_date DESC LIMIT $1 OFFSET $2`
	return r.list(query, limit, offset)
}

// ListOverdue lista préstamos abiertos con fecha esperada vencida. Es un
// reporte derivado: no cambia el estado de ningún préstamo.
func (r *LoanRepo) ListOverdue(limit, offset int) ([]*entity.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE status = 'Borrowed' AND expected_return_date < now() ORDER BY expected_return_date ASC LIMIT $1 OFFSET $2`
	return r.list(query, limit, offset)
}

func (r *LoanRepo) list(query string, args ...any) ([]*entity.Loan, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list loans: %w", err)
	}
	defer rows.Close()
	var list []*entity.Loan
	for rows.Next() {
		var l entity.Loan
		if err := rows.Scan(&l.ID, &l.ItemID, &l.EmployeeID, &l.BorrowDate,
			&l.ExpectedReturnDate, &l.ActualReturnDate, &l.Status, &l.ConditionOnBorrow,
			&l.ConditionOnReturn, &l.Remarks, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan loan: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}
