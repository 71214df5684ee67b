package repository

import "github.com/jhoicas/activos-api/internal/domain/entity"

// ItemRepository define el puerto de persistencia para Item (DIP).
type ItemRepository interface {
	Create(item *entity.Item) error
	GetByID(id string) (*entity.Item, error)
	// GetForUpdate obtiene el item bloqueando la fila (SELECT FOR UPDATE).
	// Solo tiene sentido sobre un repositorio atado a una transacción.
	GetForUpdate(id string) (*entity.Item, error)
	// FindAvailableByProduct devuelve el primer item Available del producto,
	// bloqueando la fila; nil sin error significa "sin stock" (resultado normal).
	FindAvailableByProduct(productID string) (*entity.Item, error)
	// CountAvailable deriva el stock del producto: COUNT de items Available.
	CountAvailable(productID string) (int, error)
	// FindAssignedTo devuelve el item del producto asignado al empleado
	// (nil si no hay ninguno).
	FindAssignedTo(productID, employeeID string) (*entity.Item, error)
	Update(item *entity.Item) error
	ListByProduct(productID string, limit, offset int) ([]*entity.Item, error)
	List(limit, offset int) ([]*entity.Item, error)
	Delete(id string) error
}
