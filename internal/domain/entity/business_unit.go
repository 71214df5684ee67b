package entity

import "time"

// BusinessUnit representa una unidad de negocio con a lo más un director.
// Invariante: el usuario asignado como director tiene rol DIRECTOR
// (la promoción la aplica el caso de uso de asignación).
type BusinessUnit struct {
	ID         string
	Name       string
	DirectorID string // vacío si aún no hay director configurado
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
