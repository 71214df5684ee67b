package dto

import "time"

// CreateUnitRequest alta de unidad de negocio.
type CreateUnitRequest struct {
	Name string `json:"name"`
}

// AssignDirectorRequest asignación de director a la unidad.
type AssignDirectorRequest struct {
	DirectorID string `json:"director_id"`
}

// UnitResponse unidad de negocio.
type UnitResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	DirectorID string    `json:"director_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// UnitListResponse listado paginado de unidades.
type UnitListResponse struct {
	Items []UnitResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
