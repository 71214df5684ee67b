package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa una entrada del catálogo. La existencia física se maneja
// por Item; QuantityInStock se deriva contando items Available y nunca se
// almacena (una sola fuente de verdad).
type Product struct {
	ID            string
	Name          string
	Category      string
	UnitOfMeasure string
	PricePerUnit  decimal.Decimal
	ReorderLevel  int
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
