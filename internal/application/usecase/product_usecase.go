package usecase

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/activos-api/internal/application/dispatcher"
	"github.com/jhoicas/activos-api/internal/application/dto"
	"github.com/jhoicas/activos-api/internal/application/ledger"
	"github.com/jhoicas/activos-api/internal/domain"
	"github.com/jhoicas/activos-api/internal/domain/entity"
	"github.com/jhoicas/activos-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para el catálogo. El stock no se escribe
// nunca: cada respuesta lo deriva del ledger contando items Available.
type ProductUseCase struct {
	repo       repository.ProductRepository
	ledger     *ledger.Ledger
	auditRepo  repository.AuditLogRepository
	dispatcher *dispatcher.Dispatcher
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, lg *ledger.Ledger, auditRepo repository.AuditLogRepository, disp *dispatcher.Dispatcher) *ProductUseCase {
	return &ProductUseCase{repo: repo, ledger: lg, auditRepo: auditRepo, dispatcher: disp}
}

// Create crea un producto activo y deja constancia en la bitácora.
func (uc *ProductUseCase) Create(actorID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Name == "" || in.UnitOfMeasure == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.PricePerUnit.IsNegative() || in.ReorderLevel < 0 {
		return nil, domain.ErrInvalidInput
	}
	existing, _ := uc.repo.GetByName(in.Name)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	product := &entity.Product{
		ID:            uuid.New().String(),
		Name:          in.Name,
		Category:      in.Category,
		UnitOfMeasure: in.UnitOfMeasure,
		PricePerUnit:  in.PricePerUnit,
		ReorderLevel:  in.ReorderLevel,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	if err := uc.dispatcher.Audit(uc.auditRepo, actorID, entity.ActionCreate, "Product", product.ID,
		fmt.Sprintf("producto %s agregado al catálogo", product.Name)); err != nil {
		return nil, err
	}
	return uc.toResponse(product)
}

// GetByID obtiene un producto con su stock derivado.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return uc.toResponse(product)
}

// Stock devuelve solo la cantidad derivada en stock.
func (uc *ProductUseCase) Stock(id string) (*dto.StockResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	qty, err := uc.ledger.QuantityInStock(product.ID)
	if err != nil {
		return nil, err
	}
	return &dto.StockResponse{ProductID: product.ID, QuantityInStock: qty}, nil
}

// Update actualiza un producto (parcial).
func (uc *ProductUseCase) Update(actorID, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Category != nil {
		product.Category = *in.Category
	}
	if in.UnitOfMeasure != nil {
		product.UnitOfMeasure = *in.UnitOfMeasure
	}
	if in.PricePerUnit != nil {
		if in.PricePerUnit.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.PricePerUnit = *in.PricePerUnit
	}
	if in.ReorderLevel != nil {
		if *in.ReorderLevel < 0 {
			return nil, domain.ErrInvalidInput
		}
		product.ReorderLevel = *in.ReorderLevel
	}
	if in.IsActive != nil {
		product.IsActive = *in.IsActive
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	if err := uc.dispatcher.Audit(uc.auditRepo, actorID, entity.ActionUpdate, "Product", product.ID,
		fmt.Sprintf("producto %s actualizado", product.Name)); err != nil {
		return nil, err
	}
	return uc.toResponse(product)
}

// List lista productos con stock derivado por producto.
func (uc *ProductUseCase) List(limit, offset int) (*dto.ProductListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		resp, err := uc.toResponse(p)
		if err != nil {
			return nil, err
		}
		items = append(items, *resp)
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina un producto (cascada sobre sus items).
func (uc *ProductUseCase) Delete(actorID, id string) error {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	if err := uc.repo.Delete(id); err != nil {
		return err
	}
	return uc.dispatcher.Audit(uc.auditRepo, actorID, entity.ActionDelete, "Product", id,
		fmt.Sprintf("producto %s eliminado", product.Name))
}

func (uc *ProductUseCase) toResponse(p *entity.Product) (*dto.ProductResponse, error) {
	qty, err := uc.ledger.QuantityInStock(p.ID)
	if err != nil {
		return nil, err
	}
	return &dto.ProductResponse{
		ID:              p.ID,
		Name:            p.Name,
		Category:        p.Category,
		UnitOfMeasure:   p.UnitOfMeasure,
		PricePerUnit:    p.PricePerUnit,
		ReorderLevel:    p.ReorderLevel,
		IsActive:        p.IsActive,
		QuantityInStock: qty,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}, nil
}
