package usecase

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/activos-api/internal/application/dispatcher"
	"github.com/jhoicas/activos-api/internal/application/dto"
	"github.com/jhoicas/activos-api/internal/domain"
	"github.com/jhoicas/activos-api/internal/domain/entity"
	"github.com/jhoicas/activos-api/internal/domain/repository"
)

// UnitUseCase casos de uso para unidades de negocio, incluida la asignación
// de director con su promoción de rol.
type UnitUseCase struct {
	repo       repository.BusinessUnitRepository
	userRepo   repository.UserRepository
	auditRepo  repository.AuditLogRepository
	dispatcher *dispatcher.Dispatcher
}

// NewUnitUseCase construye el caso de uso.
func NewUnitUseCase(repo repository.BusinessUnitRepository, userRepo repository.UserRepository, auditRepo repository.AuditLogRepository, disp *dispatcher.Dispatcher) *UnitUseCase {
	return &UnitUseCase{repo: repo, userRepo: userRepo, auditRepo: auditRepo, dispatcher: disp}
}

// Create crea una unidad de negocio sin director.
func (uc *UnitUseCase) Create(actorID string, in dto.CreateUnitRequest) (*dto.UnitResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	unit := &entity.BusinessUnit{
		ID:        uuid.New().String(),
		Name:      in.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(unit); err != nil {
		return nil, err
	}
	if err := uc.dispatcher.Audit(uc.auditRepo, actorID, entity.ActionCreate, "BusinessUnit", unit.ID,
		fmt.Sprintf("unidad de negocio %s creada", unit.Name)); err != nil {
		return nil, err
	}
	return toUnitResponse(unit), nil
}

// AssignDirector designa al director de la unidad. Si el usuario no tiene rol
// DIRECTOR se le promueve, manteniendo el invariante director ⇒ rol DIRECTOR.
// Deja dos entradas de bitácora, como todo cambio de designación.
func (uc *UnitUseCase) AssignDirector(actorID, unitID string, in dto.AssignDirectorRequest) (*dto.UnitResponse, error) {
	unit, err := uc.repo.GetByID(unitID)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, domain.ErrNotFound
	}
	director, err := uc.userRepo.GetByID(in.DirectorID)
	if err != nil {
		return nil, err
	}
	if director == nil {
		return nil, domain.ErrUserNotFound
	}

	if director.Role != entity.RoleDirector {
		if err := uc.userRepo.UpdateRole(director.ID, entity.RoleDirector); err != nil {
			return nil, err
		}
		director.Role = entity.RoleDirector
	}
	// El director pertenece a la unidad que dirige.
	if director.BusinessUnitID != unit.ID {
		director.BusinessUnitID = unit.ID
		director.UpdatedAt = time.Now()
		if err := uc.userRepo.Update(director); err != nil {
			return nil, err
		}
	}

	unit.DirectorID = director.ID
	unit.UpdatedAt = time.Now()
	if err := uc.repo.Update(unit); err != nil {
		return nil, err
	}

	if err := uc.dispatcher.Audit(uc.auditRepo, actorID, entity.ActionAssign, "BusinessUnit", unit.ID,
		fmt.Sprintf("%s designado director de %s", director.Name, unit.Name)); err != nil {
		return nil, err
	}
	if err := uc.dispatcher.Audit(uc.auditRepo, actorID, entity.ActionUpdate, "User", director.ID,
		fmt.Sprintf("%s promovido a DIRECTOR", director.Name)); err != nil {
		return nil, err
	}
	return toUnitResponse(unit), nil
}

// GetByID obtiene una unidad.
func (uc *UnitUseCase) GetByID(id string) (*dto.UnitResponse, error) {
	unit, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, nil
	}
	return toUnitResponse(unit), nil
}

// List lista unidades.
func (uc *UnitUseCase) List(limit, offset int) (*dto.UnitListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UnitResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *toUnitResponse(u))
	}
	return &dto.UnitListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func toUnitResponse(u *entity.BusinessUnit) *dto.UnitResponse {
	if u == nil {
		return nil
	}
	return &dto.UnitResponse{
		ID:         u.ID,
		Name:       u.Name,
		DirectorID: u.DirectorID,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}
