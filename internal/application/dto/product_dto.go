package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest alta de producto en el catálogo.
type CreateProductRequest struct {
	Name          string          `json:"name"`
	Category      string          `json:"category"`
	UnitOfMeasure string          `json:"unit_of_measure"`
	PricePerUnit  decimal.Decimal `json:"price_per_unit"`
	ReorderLevel  int             `json:"reorder_level"`
}

// UpdateProductRequest actualización parcial de producto.
type UpdateProductRequest struct {
	Name          *string          `json:"name"`
	Category      *string          `json:"category"`
	UnitOfMeasure *string          `json:"unit_of_measure"`
	PricePerUnit  *decimal.Decimal `json:"price_per_unit"`
	ReorderLevel  *int             `json:"reorder_level"`
	IsActive      *bool            `json:"is_active"`
}

// ProductResponse producto con stock derivado (COUNT de items Available).
type ProductResponse struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Category        string          `json:"category"`
	UnitOfMeasure   string          `json:"unit_of_measure"`
	PricePerUnit    decimal.Decimal `json:"price_per_unit"`
	ReorderLevel    int             `json:"reorder_level"`
	IsActive        bool            `json:"is_active"`
	QuantityInStock int             `json:"quantity_in_stock"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ProductListResponse listado paginado de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// StockResponse stock derivado de un producto.
type StockResponse struct {
	ProductID       string `json:"product_id"`
	QuantityInStock int    `json:"quantity_in_stock"`
}
