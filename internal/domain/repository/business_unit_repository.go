package repository

import "github.com/jhoicas/activos-api/internal/domain/entity"

// BusinessUnitRepository define el puerto de persistencia para BusinessUnit (DIP).
type BusinessUnitRepository interface {
	Create(unit *entity.BusinessUnit) error
	GetByID(id string) (*entity.BusinessUnit, error)
	Update(unit *entity.BusinessUnit) error
	List(limit, offset int) ([]*entity.BusinessUnit, error)
}
