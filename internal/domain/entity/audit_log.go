package entity

import "time"

// Tipos de acción registrados en la bitácora.
const (
	ActionCreate  = "Create"
	ActionUpdate  = "Update"
	ActionDelete  = "Delete"
	ActionApprove = "Approve"
	ActionReject  = "Reject"
	ActionAssign  = "Assign"
	ActionBorrow  = "Borrow"
	ActionReturn  = "Return"
)

// AuditLog es una entrada inmutable de la bitácora: quién hizo qué, sobre qué
// objeto y cuándo. Es la única fuente histórica de verdad del sistema.
type AuditLog struct {
	ID          string
	UserID      string
	ActionType  string
	ObjectType  string // Request, Item, Product, User, BusinessUnit, Loan...
	ObjectID    string
	Description string
	Timestamp   time.Time
}
