package repository

import "github.com/jhoicas/activos-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
// El stock no se lee aquí: se deriva con ItemRepository.CountAvailable.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByName(name string) (*entity.Product, error)
	Update(product *entity.Product) error
	List(limit, offset int) ([]*entity.Product, error)
	Delete(id string) error
}
