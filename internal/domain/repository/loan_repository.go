package repository

import "github.com/jhoicas/activos-api/internal/domain/entity"

// LoanRepository define el puerto de persistencia para Loan (DIP).
type LoanRepository interface {
	Create(loan *entity.Loan) error
	GetByID(id string) (*entity.Loan, error)
	// GetForUpdate bloquea la fila del préstamo; serializa devoluciones concurrentes.
	GetForUpdate(id string) (*entity.Loan, error)
	Update(loan *entity.Loan) error
	ListByEmployee(employeeID string, limit, offset int) ([]*entity.Loan, error)
	List(limit, offset int) ([]*entity.Loan, error)
	// ListOverdue lista préstamos abiertos con fecha esperada vencida (reporte
	// derivado; no transiciona estados).
	ListOverdue(limit, offset int) ([]*entity.Loan, error)
}
