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

// ItemUseCase casos de uso CRUD para unidades físicas. La asignación a
// usuarios no pasa por aquí: la manejan el flujo de aprobación y los préstamos.
type ItemUseCase struct {
	repo        repository.ItemRepository
	productRepo repository.ProductRepository
	auditRepo   repository.AuditLogRepository
	dispatcher  *dispatcher.Dispatcher
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(repo repository.ItemRepository, productRepo repository.ProductRepository, auditRepo repository.AuditLogRepository, disp *dispatcher.Dispatcher) *ItemUseCase {
	return &ItemUseCase{repo: repo, productRepo: productRepo, auditRepo: auditRepo, dispatcher: disp}
}

// Create da de alta un item en estado Available.
func (uc *ItemUseCase) Create(actorID string, in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	if in.ProductID == "" || in.SerialNumber == "" || in.BusinessUnitID == "" {
		return nil, domain.ErrInvalidInput
	}
	if !validCondition(in.Condition) {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	item := &entity.Item{
		ID:                 uuid.New().String(),
		ProductID:          in.ProductID,
		SerialNumber:       in.SerialNumber,
		PurchaseDate:       in.PurchaseDate,
		Condition:          in.Condition,
		Status:             entity.ItemAvailable,
		Location:           in.Location,
		WarrantyExpiryDate: in.WarrantyExpiryDate,
		BusinessUnitID:     in.BusinessUnitID,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := uc.repo.Create(item); err != nil {
		return nil, err
	}
	if err := uc.dispatcher.Audit(uc.auditRepo, actorID, entity.ActionCreate, "Item", item.ID,
		fmt.Sprintf("item %s agregado (%s)", item.SerialNumber, product.Name)); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// GetByID obtiene un item.
func (uc *ItemUseCase) GetByID(id string) (*dto.ItemResponse, error) {
	item, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}
	return toItemResponse(item), nil
}

// Update actualiza condición, ubicación, garantía o estado administrativo.
// No admite Assigned: esa transición pertenece al ledger.
func (uc *ItemUseCase) Update(actorID, id string, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	item, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}
	if in.Status != nil {
		switch *in.Status {
		case entity.ItemAvailable, entity.ItemInRepair, entity.ItemRetired:
		default:
			return nil, domain.ErrInvalidInput
		}
		if item.Status == entity.ItemAssigned {
			return nil, domain.ErrInvalidState
		}
		item.Status = *in.Status
	}
	if in.Condition != nil {
		if !validCondition(*in.Condition) {
			return nil, domain.ErrInvalidInput
		}
		item.Condition = *in.Condition
	}
	if in.Location != nil {
		item.Location = *in.Location
	}
	if in.WarrantyExpiryDate != nil {
		item.WarrantyExpiryDate = in.WarrantyExpiryDate
	}
	item.UpdatedAt = time.Now()
	if err := uc.repo.Update(item); err != nil {
		return nil, err
	}
	if err := uc.dispatcher.Audit(uc.auditRepo, actorID, entity.ActionUpdate, "Item", item.ID,
		fmt.Sprintf("item %s actualizado", item.SerialNumber)); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// List lista items, opcionalmente filtrando por producto.
func (uc *ItemUseCase) List(productID string, limit, offset int) (*dto.ItemListResponse, error) {
	var (
		list []*entity.Item
		err  error
	)
	if productID != "" {
		list, err = uc.repo.ListByProduct(productID, limit, offset)
	} else {
		list, err = uc.repo.List(limit, offset)
	}
	if err != nil {
		return nil, err
	}
	items := make([]dto.ItemResponse, 0, len(list))
	for _, it := range list {
		items = append(items, *toItemResponse(it))
	}
	return &dto.ItemListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina un item no asignado. Si el actor llega vacío, el dispatcher
// audita con el primer ADMIN como respaldo.
func (uc *ItemUseCase) Delete(actorID, id string) error {
	item, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}
	if item.Status == entity.ItemAssigned {
		return domain.ErrInvalidState
	}
	if err := uc.repo.Delete(id); err != nil {
		return err
	}
	return uc.dispatcher.Audit(uc.auditRepo, actorID, entity.ActionDelete, "Item", id,
		fmt.Sprintf("item %s eliminado", item.SerialNumber))
}

func validCondition(c string) bool {
	switch c {
	case entity.ConditionNew, entity.ConditionUsed, entity.ConditionRefurbished, entity.ConditionDamaged:
		return true
	}
	return false
}

func toItemResponse(it *entity.Item) *dto.ItemResponse {
	if it == nil {
		return nil
	}
	return &dto.ItemResponse{
		ID:                 it.ID,
		ProductID:          it.ProductID,
		SerialNumber:       it.SerialNumber,
		PurchaseDate:       it.PurchaseDate,
		Condition:          it.Condition,
		Status:             it.Status,
		Location:           it.Location,
		WarrantyExpiryDate: it.WarrantyExpiryDate,
		AssignedToID:       it.AssignedToID,
		BusinessUnitID:     it.BusinessUnitID,
		CreatedAt:          it.CreatedAt,
		UpdatedAt:          it.UpdatedAt,
	}
}
