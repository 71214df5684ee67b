// Package workflow implementa el motor de aprobación de solicitudes: una
// máquina de estados secuencial (director primero, oficial de inventario
// después) cuya aprobación final asigna un item físico al empleado.
package workflow

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

// ApprovalUseCase conduce una Request por su máquina de estados validando rol
// del actor y estado actual, con bloqueo de fila (SELECT FOR UPDATE) para que
// ante llamadas concurrentes solo la primera transición observe la
// precondición; la perdedora recibe ErrInvalidState.
type ApprovalUseCase struct {
	txRunner    TxRunner
	userRepo    repository.UserRepository
	productRepo repository.ProductRepository
	unitRepo    repository.BusinessUnitRepository
	requestRepo repository.RequestRepository
	approvals   repository.RequestApprovalRepository
	dispatcher  *dispatcher.Dispatcher
}

// NewApprovalUseCase construye el caso de uso.
func NewApprovalUseCase(
	txRunner TxRunner,
	userRepo repository.UserRepository,
	productRepo repository.ProductRepository,
	unitRepo repository.BusinessUnitRepository,
	requestRepo repository.RequestRepository,
	approvals repository.RequestApprovalRepository,
	disp *dispatcher.Dispatcher,
) *ApprovalUseCase {
	return &ApprovalUseCase{
		txRunner:    txRunner,
		userRepo:    userRepo,
		productRepo: productRepo,
		unitRepo:    unitRepo,
		requestRepo: requestRepo,
		approvals:   approvals,
		dispatcher:  disp,
	}
}

// Submit crea una solicitud en PENDING_DIRECTOR. Valida que el actor sea
// EMPLOYEE y que el producto esté activo (si no, ErrInvalidInput). En la misma
// transacción registra la auditoría y notifica al director de la unidad del
// empleado; si la unidad no tiene director, el dispatcher lo registra como
// warning y la operación igual prospera.
func (uc *ApprovalUseCase) Submit(ctx context.Context, employeeID, productID, reason string) (*entity.Request, error) {
	employee, err := uc.userRepo.GetByID(employeeID)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, domain.ErrUserNotFound
	}
	if employee.Role != entity.RoleEmployee {
		return nil, domain.ErrInvalidInput
	}
	if reason == "" {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if !product.IsActive {
		return nil, domain.ErrInvalidInput
	}

	// Resolver el director de la unidad del empleado; puede no existir.
	directorID := ""
	if employee.BusinessUnitID != "" {
		unit, err := uc.unitRepo.GetByID(employee.BusinessUnitID)
		if err != nil {
			return nil, err
		}
		if unit != nil {
			directorID = unit.DirectorID
		}
	}

	now := time.Now()
	req := &entity.Request{
		ID:          uuid.New().String(),
		EmployeeID:  employee.ID,
		ProductID:   product.ID,
		Reason:      reason,
		RequestDate: now,
		Status:      entity.RequestPendingDirector,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = uc.txRunner.Run(ctx, func(
		requests repository.RequestRepository,
		_ repository.RequestApprovalRepository,
		_ repository.ItemRepository,
		notifs repository.NotificationRepository,
		audits repository.AuditLogRepository,
	) error {
		if err := requests.Create(req); err != nil {
			return err
		}
		if err := uc.dispatcher.Audit(audits, employee.ID, entity.ActionCreate, "Request", req.ID,
			fmt.Sprintf("%s solicitó el producto %s", employee.Name, product.Name)); err != nil {
			return err
		}
		return uc.dispatcher.Notify(notifs, directorID,
			fmt.Sprintf("Nueva solicitud de %s por %s", employee.Name, product.Name))
	})
	if err != nil {
		return nil, err
	}
	return req, nil
}

// Approve avanza la solicitud una etapa. DIRECTOR sobre PENDING_DIRECTOR pasa
// a PENDING_OFFICER sin tocar items; INVENTORY_OFFICER sobre PENDING_OFFICER
// busca un item Available (si no hay, ErrOutOfStock y la solicitud queda
// intacta), lo asigna al empleado y cierra en APPROVED. Cada aprobación
// agrega una entrada al historial, una a la bitácora y notifica al siguiente
// responsable, todo en la misma transacción.
func (uc *ApprovalUseCase) Approve(ctx context.Context, requestID, actorID string) (*entity.Request, error) {
	actor, err := uc.approver(actorID)
	if err != nil {
		return nil, err
	}

	// Destinatario de la etapa de director: cualquier oficial de inventario.
	officerID := ""
	if actor.Role == entity.RoleDirector {
		officer, err := uc.userRepo.FirstByRole(entity.RoleInventoryOfficer)
		if err != nil {
			return nil, err
		}
		if officer != nil {
			officerID = officer.ID
		}
	}

	var result *entity.Request
	err = uc.txRunner.Run(ctx, func(
		requests repository.RequestRepository,
		approvals repository.RequestApprovalRepository,
		items repository.ItemRepository,
		notifs repository.NotificationRepository,
		audits repository.AuditLogRepository,
	) error {
		req, err := lockRequest(requests, requestID)
		if err != nil {
			return err
		}

		now := time.Now()
		var recipientID, message string
		switch actor.Role {
		case entity.RoleDirector:
			if req.Status != entity.RequestPendingDirector {
				return domain.ErrInvalidState
			}
			req.Status = entity.RequestPendingOfficer
			recipientID = officerID
			message = fmt.Sprintf("Solicitud %s aprobada por dirección; pendiente de inventario", req.ID)
		case entity.RoleInventoryOfficer:
			if req.Status != entity.RequestPendingOfficer {
				return domain.ErrInvalidState
			}
			lg := ledger.New(items)
			item, err := lg.FindAvailableItem(req.ProductID)
			if err != nil {
				return err
			}
			if item == nil {
				// Recuperable: se informa al operador y la solicitud no cambia.
				return domain.ErrOutOfStock
			}
			if err := lg.Assign(item, req.EmployeeID); err != nil {
				return err
			}
			req.Status = entity.RequestApproved
			req.FinalApprovalDate = &now
			recipientID = req.EmployeeID
			message = fmt.Sprintf("Tu solicitud %s fue aprobada; se te asignó el item %s", req.ID, item.SerialNumber)
		}

		req.UpdatedAt = now
		if err := requests.Update(req); err != nil {
			return err
		}
		if err := approvals.Create(&entity.RequestApproval{
			ID:         uuid.New().String(),
			RequestID:  req.ID,
			ApproverID: actor.ID,
			Role:       actor.Role,
			Status:     entity.ApprovalApproved,
			Timestamp:  now,
		}); err != nil {
			return err
		}
		if err := uc.dispatcher.Audit(audits, actor.ID, entity.ActionApprove, "Request", req.ID,
			fmt.Sprintf("%s aprobó la solicitud %s", actor.Name, req.ID)); err != nil {
			return err
		}
		if err := uc.dispatcher.Notify(notifs, recipientID, message); err != nil {
			return err
		}
		result = req
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Reject rechaza la solicitud en la etapa del actor: DIRECTOR lleva a
// REJECTED_DIRECTOR, INVENTORY_OFFICER a REJECTED_OFFICER (ambos terminales).
// Registra historial y bitácora, y notifica al empleado.
func (uc *ApprovalUseCase) Reject(ctx context.Context, requestID, actorID string) (*entity.Request, error) {
	actor, err := uc.approver(actorID)
	if err != nil {
		return nil, err
	}

	var result *entity.Request
	err = uc.txRunner.Run(ctx, func(
		requests repository.RequestRepository,
		approvals repository.RequestApprovalRepository,
		_ repository.ItemRepository,
		notifs repository.NotificationRepository,
		audits repository.AuditLogRepository,
	) error {
		req, err := lockRequest(requests, requestID)
		if err != nil {
			return err
		}

		switch actor.Role {
		case entity.RoleDirector:
			if req.Status != entity.RequestPendingDirector {
				return domain.ErrInvalidState
			}
			req.Status = entity.RequestRejectedDirector
		case entity.RoleInventoryOfficer:
			if req.Status != entity.RequestPendingOfficer {
				return domain.ErrInvalidState
			}
			req.Status = entity.RequestRejectedOfficer
		}

		now := time.Now()
		req.UpdatedAt = now
		if err := requests.Update(req); err != nil {
			return err
		}
		if err := approvals.Create(&entity.RequestApproval{
			ID:         uuid.New().String(),
			RequestID:  req.ID,
			ApproverID: actor.ID,
			Role:       actor.Role,
			Status:     entity.ApprovalRejected,
			Timestamp:  now,
		}); err != nil {
			return err
		}
		if err := uc.dispatcher.Audit(audits, actor.ID, entity.ActionReject, "Request", req.ID,
			fmt.Sprintf("%s rechazó la solicitud %s", actor.Name, req.ID)); err != nil {
			return err
		}
		if err := uc.dispatcher.Notify(notifs, req.EmployeeID,
			fmt.Sprintf("Tu solicitud %s fue rechazada", req.ID)); err != nil {
			return err
		}
		result = req
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// GetByID obtiene una solicitud (lectura, sin bloqueo).
func (uc *ApprovalUseCase) GetByID(id string) (*entity.Request, error) {
	return uc.requestRepo.GetByID(id)
}

// History devuelve el historial de decisiones de una solicitud.
func (uc *ApprovalUseCase) History(requestID string) ([]*entity.RequestApproval, error) {
	return uc.approvals.ListByRequest(requestID)
}

// ListForActor lista solicitudes según el rol: el empleado ve las suyas, el
// director las pendientes de su unidad, el oficial las PENDING_OFFICER y el
// admin todo el tablero de pendientes de oficial.
func (uc *ApprovalUseCase) ListForActor(actorID string, limit, offset int) ([]*entity.Request, error) {
	actor, err := uc.actor(actorID)
	if err != nil {
		return nil, err
	}
	switch actor.Role {
	case entity.RoleEmployee:
		return uc.requestRepo.ListByEmployee(actor.ID, limit, offset)
	case entity.RoleDirector:
		if actor.BusinessUnitID == "" {
			return nil, nil
		}
		return uc.requestRepo.ListPendingByUnit(actor.BusinessUnitID, limit, offset)
	default:
		return uc.requestRepo.ListByStatus(entity.RequestPendingOfficer, limit, offset)
	}
}

// actor carga el usuario que ejecuta la acción.
func (uc *ApprovalUseCase) actor(actorID string) (*entity.User, error) {
	actor, err := uc.userRepo.GetByID(actorID)
	if err != nil {
		return nil, err
	}
	if actor == nil {
		return nil, domain.ErrUserNotFound
	}
	return actor, nil
}

// approver carga el actor y exige rol aprobador. Solo DIRECTOR e
// INVENTORY_OFFICER deciden; el chequeo de etapa contra el estado se hace
// bajo bloqueo dentro de la transacción.
func (uc *ApprovalUseCase) approver(actorID string) (*entity.User, error) {
	actor, err := uc.actor(actorID)
	if err != nil {
		return nil, err
	}
	if actor.Role != entity.RoleDirector && actor.Role != entity.RoleInventoryOfficer {
		return nil, domain.ErrForbidden
	}
	return actor, nil
}

func lockRequest(requests repository.RequestRepository, id string) (*entity.Request, error) {
	req, err := requests.GetForUpdate(id)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, domain.ErrNotFound
	}
	return req, nil
}
