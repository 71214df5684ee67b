package ledger

import (
	"fmt"

	"github.com/jhoicas/activos-api/internal/domain"
	"github.com/jhoicas/activos-api/internal/domain/entity"
	"github.com/jhoicas/activos-api/internal/domain/repository"
)

// Ledger mantiene la verdad sobre qué items están libres para asignar o
// prestar. Se construye sobre un ItemRepository; dentro de una transacción se
// construye con el repositorio atado a esa tx para que las mutaciones
// participen del Commit/Rollback del llamador.
type Ledger struct {
	items repository.ItemRepository
}

// New construye el ledger sobre el repositorio dado (pool o tx).
func New(items repository.ItemRepository) *Ledger {
	return &Ledger{items: items}
}

// FindAvailableItem devuelve el primer item Available del producto, con la
// fila bloqueada. nil sin error significa "sin stock": es un resultado normal,
// no un fallo.
func (l *Ledger) FindAvailableItem(productID string) (*entity.Item, error) {
	return l.items.FindAvailableByProduct(productID)
}

// Assign marca el item como Assigned al usuario. Precondición: Available.
// No emite notificaciones; eso es responsabilidad del llamador.
func (l *Ledger) Assign(item *entity.Item, userID string) error {
	if item.Status != entity.ItemAvailable {
		return fmt.Errorf("assign item %s: %w", item.ID, domain.ErrItemUnavailable)
	}
	item.Status = entity.ItemAssigned
	item.AssignedToID = userID
	return l.items.Update(item)
}

// Release devuelve el item a Available y limpia la asignación.
// Precondición: Assigned.
func (l *Ledger) Release(item *entity.Item) error {
	if item.Status != entity.ItemAssigned {
		return fmt.Errorf("release item %s: %w", item.ID, domain.ErrInvalidState)
	}
	item.Status = entity.ItemAvailable
	item.AssignedToID = ""
	return l.items.Update(item)
}

// QuantityInStock deriva el stock del producto contando items Available.
// Siempre se calcula, nunca se cachea: así queda trivialmente consistente con
// las propias mutaciones del ledger.
func (l *Ledger) QuantityInStock(productID string) (int, error) {
	return l.items.CountAvailable(productID)
}
