package workflow

import (
	"context"

	"github.com/jhoicas/activos-api/internal/domain"
	"github.com/jhoicas/activos-api/internal/domain/entity"
	"github.com/jhoicas/activos-api/internal/domain/repository"
)

// ActaData datos para la representación gráfica del acta de entrega.
type ActaData struct {
	Request   *entity.Request
	Employee  *entity.User
	Product   *entity.Product
	Item      *entity.Item
	Approvals []*entity.RequestApproval
}

// ActaGenerator genera el PDF del acta de entrega de una solicitud aprobada.
type ActaGenerator interface {
	GenerateActa(ctx context.Context, data ActaData) ([]byte, error)
}

// ActaUseCase arma y genera el acta de entrega: el comprobante firmable de que
// el item asignado por la aprobación final fue entregado al empleado.
type ActaUseCase struct {
	requestRepo repository.RequestRepository
	userRepo    repository.UserRepository
	productRepo repository.ProductRepository
	itemRepo    repository.ItemRepository
	approvals   repository.RequestApprovalRepository
	generator   ActaGenerator
}

// NewActaUseCase construye el caso de uso.
func NewActaUseCase(
	requestRepo repository.RequestRepository,
	userRepo repository.UserRepository,
	productRepo repository.ProductRepository,
	itemRepo repository.ItemRepository,
	approvals repository.RequestApprovalRepository,
	generator ActaGenerator,
) *ActaUseCase {
	return &ActaUseCase{
		requestRepo: requestRepo,
		userRepo:    userRepo,
		productRepo: productRepo,
		itemRepo:    itemRepo,
		approvals:   approvals,
		generator:   generator,
	}
}

// Generate produce el PDF del acta. Solo para solicitudes APPROVED; el
// empleado dueño siempre puede pedirla, los demás roles solo si no son
// EMPLOYEE.
func (uc *ActaUseCase) Generate(ctx context.Context, requestID, actorID string) ([]byte, error) {
	actor, err := uc.userRepo.GetByID(actorID)
	if err != nil {
		return nil, err
	}
	if actor == nil {
		return nil, domain.ErrUserNotFound
	}

	req, err := uc.requestRepo.GetByID(requestID)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, domain.ErrNotFound
	}
	if actor.Role == entity.RoleEmployee && req.EmployeeID != actor.ID {
		return nil, domain.ErrForbidden
	}
	if req.Status != entity.RequestApproved {
		return nil, domain.ErrInvalidState
	}

	employee, err := uc.userRepo.GetByID(req.EmployeeID)
	if err != nil {
		return nil, err
	}
	product, err := uc.productRepo.GetByID(req.ProductID)
	if err != nil {
		return nil, err
	}
	item, err := uc.itemRepo.FindAssignedTo(req.ProductID, req.EmployeeID)
	if err != nil {
		return nil, err
	}
	history, err := uc.approvals.ListByRequest(req.ID)
	if err != nil {
		return nil, err
	}

	return uc.generator.GenerateActa(ctx, ActaData{
		Request:   req,
		Employee:  employee,
		Product:   product,
		Item:      item,
		Approvals: history,
	})
}
