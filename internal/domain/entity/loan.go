package entity

import "time"

// Estados válidos para Loan. Overdue es derivado (fecha esperada vencida con
// el préstamo aún abierto); ningún caso de uso lo escribe automáticamente.
const (
	LoanBorrowed = "Borrowed"
	LoanReturned = "Returned"
	LoanOverdue  = "Overdue"
)

// Loan representa un préstamo directo de un Item a un empleado, independiente
// del flujo de aprobación. A lo más un préstamo abierto por item: lo garantiza
// la transición Available→Assigned bajo bloqueo de fila.
type Loan struct {
	ID                 string
	ItemID             string
	EmployeeID         string
	BorrowDate         time.Time
	ExpectedReturnDate time.Time
	ActualReturnDate   *time.Time // nil mientras esté abierto
	Status             string     // Borrowed, Returned, Overdue
	ConditionOnBorrow  string
	ConditionOnReturn  string // vacío hasta la devolución
	Remarks            string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
