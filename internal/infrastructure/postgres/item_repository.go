package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/activos-api/internal/domain"
	"github.com/jhoicas/activos-api/internal/domain/entity"
	"github.com/jhoicas/activos-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

const itemColumns = `id, product_id, serial_number, purchase_date, condition, status, location, warranty_expiry_date, COALESCE(assigned_to_id, ''), business_unit_id, created_at, updated_at`

// ItemRepo implementación del puerto ItemRepository sobre PostgreSQL (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador de persistencia para items. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

// Create persiste un nuevo item. Número de serie único.
func (r *ItemRepo) Create(item *entity.Item) error {
	query := `
		INSERT INTO items (id, product_id, serial_number, purchase_date, condition, status, location, warranty_expiry_date, assigned_to_id, business_unit_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULLIF($9, ''), $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.ProductID, item.SerialNumber, item.PurchaseDate,
		item.Condition, item.Status, item.Location, item.WarrantyExpiryDate,
		item.AssignedToID, item.BusinessUnitID, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// GetByID obtiene un item por ID.
func (r *ItemRepo) GetByID(id string) (*entity.Item, error) {
	return r.getOne(`WHERE id = $1`, id)
}

// GetForUpdate obtiene el item bloqueando la fila hasta el fin de la transacción.
func (r *ItemRepo) GetForUpdate(id string) (*entity.Item, error) {
	return r.getOne(`WHERE id = $1 FOR UPDATE`, id)
}

// FindAvailableByProduct devuelve el primer item Available del producto,
// bloqueando la fila. nil sin error significa que no hay stock.
func (r *ItemRepo) FindAvailableByProduct(productID string) (*entity.Item, error) {
	return r.getOne(`WHERE product_id = $1 AND status = 'Available' ORDER BY created_at ASC LIMIT 1 FOR UPDATE`, productID)
}

// FindAssignedTo devuelve el item del producto asignado al empleado, o nil.
func (r *ItemRepo) FindAssignedTo(productID, employeeID string) (*entity.Item, error) {
	return r.getOne(`WHERE product_id = $1 AND assigned_to_id = $2 ORDER BY updated_at DESC LIMIT 1`, productID, employeeID)
}

func (r *ItemRepo) getOne(where string, args ...any) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items ` + where
	var it entity.Item
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&it.ID, &it.ProductID, &it.SerialNumber, &it.PurchaseDate, &it.Condition,
		&it.Status, &it.Location, &it.WarrantyExpiryDate, &it.AssignedToID,
		&it.BusinessUnitID, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return &it, nil
}

// CountAvailable deriva el stock del producto contando items Available.
func (r *ItemRepo) CountAvailable(productID string) (int, error) {
	var count int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM items WHERE product_id = $1 AND status = 'Available'`,
		productID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count available items: %w", err)
	}
	return count, nil
}

// Update actualiza un item existente, incluida su asignación.
func (r *ItemRepo) Update(item *entity.Item) error {
	query := `
		UPDATE items SET condition = $2, status = $3, location = $4, warranty_expiry_date = $5, assigned_to_id = NULLIF($6, ''), updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.Condition, item.Status, item.Location,
		item.WarrantyExpiryDate, item.AssignedToID, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	return nil
}

// ListByProduct lista items de un producto con paginación.
func (r *ItemRepo) ListByProduct(productID string, limit, offset int) ([]*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE product_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.list(query, productID, limit, offset)
}

// List lista items con paginación.
func (r *ItemRepo) List(limit, offset int) ([]*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	return r.list(query, limit, offset)
}

func (r *ItemRepo) list(query string, args ...any) ([]*entity.Item, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()
	var list []*entity.Item
	for rows.Next() {
		var it entity.Item
		if err := rows.Scan(&it.ID, &it.ProductID, &it.SerialNumber, &it.PurchaseDate,
			&it.Condition, &it.Status, &it.Location, &it.WarrantyExpiryDate,
			&it.AssignedToID, &it.BusinessUnitID, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// Delete elimina un item por ID.
func (r *ItemRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}
