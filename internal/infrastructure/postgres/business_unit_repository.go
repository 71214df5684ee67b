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

var _ repository.BusinessUnitRepository = (*BusinessUnitRepo)(nil)

// BusinessUnitRepo implementación del puerto BusinessUnitRepository sobre PostgreSQL.
type BusinessUnitRepo struct {
	q Querier
}

// NewBusinessUnitRepository construye el adaptador de persistencia para unidades de negocio.
func NewBusinessUnitRepository(q Querier) *BusinessUnitRepo {
	return &BusinessUnitRepo{q: q}
}

// Create persiste una nueva unidad de negocio. Nombre único.
func (r *BusinessUnitRepo) Create(unit *entity.BusinessUnit) error {
	query := `
		INSERT INTO business_units (id, name, director_id, created_at, updated_at)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		unit.ID, unit.Name, unit.DirectorID, unit.CreatedAt, unit.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert business unit: %w", err)
	}
	return nil
}

// GetByID obtiene una unidad por ID.
func (r *BusinessUnitRepo) GetByID(id string) (*entity.BusinessUnit, error) {
	query := `
		SELECT id, name, COALESCE(director_id, ''), created_at, updated_at
		FROM business_units WHERE id = $1`
	var u entity.BusinessUnit
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&u.ID, &u.Name, &u.DirectorID, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get business unit: %w", err)
	}
	return &u, nil
}

// Update actualiza una unidad existente (nombre y director).
func (r *BusinessUnitRepo) Update(unit *entity.BusinessUnit) error {
	query := `
		UPDATE business_units SET name = $2, director_id = NULLIF($3, ''), updated_at = $4
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		unit.ID, unit.Name, unit.DirectorID, unit.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update business unit: %w", err)
	}
	return nil
}

// List lista unidades con paginación.
func (r *BusinessUnitRepo) List(limit, offset int) ([]*entity.BusinessUnit, error) {
	query := `
		SELECT id, name, COALESCE(director_id, ''), created_at, updated_at
		FROM business_units ORDER BY name ASC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list business units: %w", err)
	}
	defer rows.Close()
	var list []*entity.BusinessUnit
	for rows.Next() {
		var u entity.BusinessUnit
		if err := rows.Scan(&u.ID, &u.Name, &u.DirectorID, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan business unit: %w", err)
		}
		list = append(list, &u)
	}
	return list, rows.Err()
}
