package entity

import "time"

// Roles válidos para User. Coinciden con el CHECK de la tabla users.
const (
	RoleAdmin            = "ADMIN"
	RoleEmployee         = "EMPLOYEE"
	RoleDirector         = "DIRECTOR"
	RoleInventoryOfficer = "INVENTORY_OFFICER"
)

// User representa un usuario del sistema. Puede pertenecer a una unidad de negocio.
type User struct {
	ID             string
	Email          string
	PasswordHash   string // bcrypt hash, nunca plano en dominio después de persistir
	Name           string
	Role           string // ADMIN, EMPLOYEE, DIRECTOR, INVENTORY_OFFICER
	BusinessUnitID string // vacío si no pertenece a ninguna unidad
	Status         string // active, inactive
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
