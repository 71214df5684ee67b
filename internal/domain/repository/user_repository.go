package repository

import "github.com/jhoicas/activos-api/internal/domain/entity"

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	// FirstByRole devuelve un usuario arbitrario con el rol dado (nil si no hay).
	// Usado para el pool de oficiales de inventario y el admin de respaldo en auditoría.
	FirstByRole(role string) (*entity.User, error)
	Update(user *entity.User) error
	UpdateRole(userID, role string) error
	List(limit, offset int) ([]*entity.User, error)
	Delete(id string) error
}
