package entity

import "time"

// Estados válidos para Item (CHECK de la tabla items).
const (
	ItemAvailable = "Available"
	ItemAssigned  = "Assigned"
	ItemInRepair  = "In Repair"
	ItemRetired   = "Retired"
)

// Condiciones físicas válidas para Item y para préstamos.
const (
	ConditionNew         = "New"
	ConditionUsed        = "Used"
	ConditionRefurbished = "Refurbished"
	ConditionDamaged     = "Damaged"
)

// Item representa una unidad física de un Product, con número de serie único.
// Invariante: AssignedToID no vacío si y solo si Status == Assigned; lo
// garantizan las operaciones del ledger, no el almacén.
type Item struct {
	ID                 string
	ProductID          string
	SerialNumber       string
	PurchaseDate       time.Time
	Condition          string // New, Used, Refurbished, Damaged
	Status             string // Available, Assigned, In Repair, Retired
	Location           string
	WarrantyExpiryDate *time.Time // nil = sin garantía registrada
	AssignedToID       string     // empleado asignado; vacío si no está asignado
	BusinessUnitID     string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
