package dto

import "time"

// CreateItemRequest alta de una unidad física.
type CreateItemRequest struct {
	ProductID          string     `json:"product_id"`
	SerialNumber       string     `json:"serial_number"`
	PurchaseDate       time.Time  `json:"purchase_date"`
	Condition          string     `json:"condition"`
	Location           string     `json:"location"`
	WarrantyExpiryDate *time.Time `json:"warranty_expiry_date"`
	BusinessUnitID     string     `json:"business_unit_id"`
}

// UpdateItemRequest actualización parcial de un item. El estado Assigned y la
// asignación no se tocan por aquí: los manejan el flujo de aprobación y los
// préstamos.
type UpdateItemRequest struct {
	Condition          *string    `json:"condition"`
	Status             *string    `json:"status"` // solo Available, In Repair o Retired
	Location           *string    `json:"location"`
	WarrantyExpiryDate *time.Time `json:"warranty_expiry_date"`
}

// ItemResponse unidad física con su asignación actual.
type ItemResponse struct {
	ID                 string     `json:"id"`
	ProductID          string     `json:"product_id"`
	SerialNumber       string     `json:"serial_number"`
	PurchaseDate       time.Time  `json:"purchase_date"`
	Condition          string     `json:"condition"`
	Status             string     `json:"status"`
	Location           string     `json:"location"`
	WarrantyExpiryDate *time.Time `json:"warranty_expiry_date,omitempty"`
	AssignedToID       string     `json:"assigned_to_id,omitempty"`
	BusinessUnitID     string     `json:"business_unit_id"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// ItemListResponse listado paginado de items.
type ItemListResponse struct {
	Items []ItemResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
