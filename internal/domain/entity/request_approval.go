package entity

import "time"

// Resultados posibles de una decisión sobre una solicitud.
const (
	ApprovalApproved = "APPROVED"
	ApprovalRejected = "REJECTED"
)

// RequestApproval es una entrada del historial de decisiones de una solicitud:
// quién decidió, con qué rol y con qué resultado. Solo se inserta, nunca se
// modifica.
type RequestApproval struct {
	ID         string
	RequestID  string
	ApproverID string
	Role       string // rol del aprobador al momento de decidir
	Status     string // APPROVED o REJECTED
	Comments   string
	Timestamp  time.Time
}
