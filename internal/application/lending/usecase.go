// Package lending implementa el ciclo de préstamo y devolución de items ya
// existentes, independiente del flujo de aprobación pero compartiendo el
// estado del item a través del ledger.
package lending

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/activos-api/internal/application/dispatcher"
	"github.com/jhoicas/activos-api/internal/application/ledger"
	"github.com/jhoicas/activos-api/internal/domain"
	"github.com/jhoicas/activos-api/internal/domain/entity"
	"github.com/jhoicas/activos-api/internal/domain/repository"
)

// LoanUseCase gestiona préstamos directos (p. ej. equipo compartido que no
// pasa por aprobación). A lo más un préstamo abierto por item: la transición
// del item bajo FOR UPDATE hace que de dos préstamos concurrentes solo uno
// observe Available.
type LoanUseCase struct {
	txRunner   TxRunner
	userRepo   repository.UserRepository
	loanRepo   repository.LoanRepository
	dispatcher *dispatcher.Dispatcher
}

// NewLoanUseCase construye el caso de uso.
func NewLoanUseCase(
	txRunner TxRunner,
	userRepo repository.UserRepository,
	loanRepo repository.LoanRepository,
	disp *dispatcher.Dispatcher,
) *LoanUseCase {
	return &LoanUseCase{txRunner: txRunner, userRepo: userRepo, loanRepo: loanRepo, dispatcher: disp}
}

// Borrow presta el item al empleado. Precondición bajo bloqueo: el item está
// Available; si no, ErrItemUnavailable. Crea el préstamo en Borrowed, asigna
// el item vía ledger y registra la bitácora, todo en una transacción.
func (uc *LoanUseCase) Borrow(ctx context.Context, employeeID, itemID string, expectedReturnDate time.Time, conditionOnBorrow, remarks string) (*entity.Loan, error) {
	employee, err := uc.userRepo.GetByID(employeeID)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, domain.ErrUserNotFound
	}
	if employee.Role != entity.RoleEmployee {
		return nil, domain.ErrForbidden
	}
	if expectedReturnDate.IsZero() || !validCondition(conditionOnBorrow) {
		return nil, domain.ErrInvalidInput
	}

	var loan *entity.Loan
	err = uc.txRunner.RunLending(ctx, func(
		loans repository.LoanRepository,
		items repository.ItemRepository,
		_ repository.NotificationRepository,
		audits repository.AuditLogRepository,
	) error {
		item, err := items.GetForUpdate(itemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		if item.Status != entity.ItemAvailable {
			return domain.ErrItemUnavailable
		}
		if err := ledger.New(items).Assign(item, employee.ID); err != nil {
			return err
		}

		now := time.Now()
		loan = &entity.Loan{
			ID:                 uuid.New().String(),
			ItemID:             item.ID,
			EmployeeID:         employee.ID,
			BorrowDate:         now,
			ExpectedReturnDate: expectedReturnDate,
			Status:             entity.LoanBorrowed,
			ConditionOnBorrow:  conditionOnBorrow,
			Remarks:            remarks,
			CreatedAt:          now,
			UpdatedAt:          now,
		}
		if err := loans.Create(loan); err != nil {
			return err
		}
		return uc.dispatcher.Audit(audits, employee.ID, entity.ActionBorrow, "Loan", loan.ID,
			fmt.Sprintf("%s tomó en préstamo el item %s", employee.Name, item.SerialNumber))
	})
	if err != nil {
		return nil, err
	}
	return loan, nil
}

// Return cierra el préstamo. Solo el empleado que lo tomó puede devolverlo
// (ErrForbidden) y solo si sigue Borrowed (ErrInvalidState). Libera el item
// vía ledger y registra la bitácora en la misma transacción.
func (uc *LoanUseCase) Return(ctx context.Context, loanID, actorID, conditionOnReturn, remarks string) (*entity.Loan, error) {
	if !validCondition(conditionOnReturn) {
		return nil, domain.ErrInvalidInput
	}

	var result *entity.Loan
	err := uc.txRunner.RunLending(ctx, func(
		loans repository.LoanRepository,
		items repository.ItemRepository,
		_ repository.NotificationRepository,
		audits repository.AuditLogRepository,
	) error {
		loan, err := loans.GetForUpdate(loanID)
		if err != nil {
			return err
		}
		if loan == nil {
			return domain.ErrNotFound
		}
		if loan.Status != entity.LoanBorrowed {
			return domain.ErrInvalidState
		}
		if loan.EmployeeID != actorID {
			return domain.ErrForbidden
		}

		item, err := items.GetForUpdate(loan.ItemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		if err := ledger.New(items).Release(item); err != nil {
			return err
		}

		now := time.Now()
		today := now.Truncate(24 * time.Hour)
		loan.ActualReturnDate = &today
		loan.ConditionOnReturn = conditionOnReturn
		if remarks != "" {
			loan.Remarks = remarks
		}
		loan.Status = entity.LoanReturned
		loan.UpdatedAt = now
		if err := loans.Update(loan); err != nil {
			return err
		}
		if err := uc.dispatcher.Audit(audits, actorID, entity.ActionReturn, "Loan", loan.ID,
			fmt.Sprintf("devolución del item %s", item.SerialNumber)); err != nil {
			return err
		}
		result = loan
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// GetByID obtiene un préstamo (lectura).
func (uc *LoanUseCase) GetByID(id string) (*entity.Loan, error) {
	return uc.loanRepo.GetByID(id)
}

// ListForActor lista préstamos: el empleado los suyos, los demás roles todos.
func (uc *LoanUseCase) ListForActor(actorID string, limit, offset int) ([]*entity.Loan, error) {
	actor, err := uc.userRepo.GetByID(actorID)
	if err != nil {
		return nil, err
	}
	if actor == nil {
		return nil, domain.ErrUserNotFound
	}
	if actor.Role == entity.RoleEmployee {
		return uc.loanRepo.ListByEmployee(actor.ID, limit, offset)
	}
	return uc.loanRepo.List(limit, offset)
}

// ListOverdue reporta préstamos vencidos (fecha esperada pasada y aún
// Borrowed). Overdue es un estado derivado: aquí no se transiciona nada; eso
// queda para un trabajo programado externo.
func (uc *LoanUseCase) ListOverdue(limit, offset int) ([]*entity.Loan, error) {
	return uc.loanRepo.ListOverdue(limit, offset)
}

func validCondition(c string) bool {
	switch c {
	case entity.ConditionNew, entity.ConditionUsed, entity.ConditionRefurbished, entity.ConditionDamaged:
		return true
	}
	return false
}
