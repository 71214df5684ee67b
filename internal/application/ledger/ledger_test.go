package ledger_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/activos-api/internal/application/ledger"
	"github.com/jhoicas/activos-api/internal/domain"
	"github.com/jhoicas/activos-api/internal/domain/entity"
)

// memItemRepo repositorio en memoria mínimo para el ledger.
type memItemRepo struct {
	mu    sync.Mutex
	items []*entity.Item
}

func (r *memItemRepo) Create(it *entity.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *it
	r.items = append(r.items, &c)
	return nil
}

func (r *memItemRepo) GetByID(id string) (*entity.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, it := range r.items {
		if it.ID == id {
			c := *it
			return &c, nil
		}
	}
	return nil, nil
}

func (r *memItemRepo) GetForUpdate(id string) (*entity.Item, error) { return r.GetByID(id) }

func (r *memItemRepo) FindAvailableByProduct(productID string) (*entity.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, it := range r.items {
		if it.ProductID == productID && it.Status == entity.ItemAvailable {
			c := *it
			return &c, nil
		}
	}
	return nil, nil
}

func (r *memItemRepo) CountAvailable(productID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, it := range r.items {
		if it.ProductID == productID && it.Status == entity.ItemAvailable {
			count++
		}
	}
	return count, nil
}

func (r *memItemRepo) FindAssignedTo(productID, employeeID string) (*entity.Item, error) {
	return nil, nil
}

func (r *memItemRepo) Update(it *entity.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.items {
		if existing.ID == it.ID {
			c := *it
			r.items[i] = &c
		}
	}
	return nil
}

func (r *memItemRepo) ListByProduct(productID string, limit, offset int) ([]*entity.Item, error) {
	return nil, nil
}
func (r *memItemRepo) List(limit, offset int) ([]*entity.Item, error) { return nil, nil }
func (r *memItemRepo) Delete(id string) error                         { return nil }

func seed(r *memItemRepo, id, productID, status string) *entity.Item {
	it := &entity.Item{ID: id, ProductID: productID, SerialNumber: "SN-" + id, Status: status}
	_ = r.Create(it)
	return it
}

func TestAssign_RequiereDisponible(t *testing.T) {
	repo := &memItemRepo{}
	lg := ledger.New(repo)

	seed(repo, "item-1", "prod-1", entity.ItemAvailable)
	item, err := repo.GetByID("item-1")
	require.NoError(t, err)

	require.NoError(t, lg.Assign(item, "emp-1"))
	got, err := repo.GetByID("item-1")
	require.NoError(t, err)
	assert.Equal(t, entity.ItemAssigned, got.Status)
	assert.Equal(t, "emp-1", got.AssignedToID)

	// Reasignar un item ya asignado viola la precondición.
	err = lg.Assign(got, "emp-2")
	assert.ErrorIs(t, err, domain.ErrItemUnavailable)
}

func TestRelease_RequiereAsignado(t *testing.T) {
	repo := &memItemRepo{}
	lg := ledger.New(repo)

	seed(repo, "item-1", "prod-1", entity.ItemAvailable)
	item, _ := repo.GetByID("item-1")

	// Liberar algo que nunca se asignó es un error de estado.
	err := lg.Release(item)
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	require.NoError(t, lg.Assign(item, "emp-1"))
	require.NoError(t, lg.Release(item))

	got, err := repo.GetByID("item-1")
	require.NoError(t, err)
	assert.Equal(t, entity.ItemAvailable, got.Status)
	assert.Empty(t, got.AssignedToID)
}

func TestQuantityInStock_DerivadoDeItemsDisponibles(t *testing.T) {
	repo := &memItemRepo{}
	lg := ledger.New(repo)

	seed(repo, "item-1", "prod-1", entity.ItemAvailable)
	seed(repo, "item-2", "prod-1", entity.ItemAvailable)
	seed(repo, "item-3", "prod-1", entity.ItemInRepair)
	seed(repo, "item-4", "prod-2", entity.ItemAvailable)

	n, err := lg.QuantityInStock("prod-1")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	// El stock sigue a las mutaciones del propio ledger.
	item, err := lg.FindAvailableItem("prod-1")
	require.NoError(t, err)
	require.NotNil(t, item)
	require.NoError(t, lg.Assign(item, "emp-1"))

	n, err = lg.QuantityInStock("prod-1")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	// Producto sin items: cero, sin error.
	n, err = lg.QuantityInStock("prod-x")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestFindAvailableItem_SinStockDevuelveNil(t *testing.T) {
	repo := &memItemRepo{}
	lg := ledger.New(repo)
	seed(repo, "item-1", "prod-1", entity.ItemRetired)

	item, err := lg.FindAvailableItem("prod-1")
	require.NoError(t, err)
	assert.Nil(t, item, "sin stock es un resultado normal, no un error")
}
