package entity

import "time"

// Estados del flujo de aprobación de una solicitud. El grafo es fijo:
//
//	PENDING_DIRECTOR --aprueba director--> PENDING_OFFICER
//	PENDING_DIRECTOR --rechaza director--> REJECTED_DIRECTOR  (terminal)
//	PENDING_OFFICER  --aprueba oficial---> APPROVED           (terminal)
//	PENDING_OFFICER  --rechaza oficial---> REJECTED_OFFICER   (terminal)
const (
	RequestPendingDirector  = "PENDING_DIRECTOR"
	RequestRejectedDirector = "REJECTED_DIRECTOR"
	RequestPendingOfficer   = "PENDING_OFFICER"
	RequestRejectedOfficer  = "REJECTED_OFFICER"
	RequestApproved         = "APPROVED"
)

// Request representa la solicitud de un empleado por un producto.
// Inmutable una vez alcanza un estado terminal.
type Request struct {
	ID                string
	EmployeeID        string
	ProductID         string
	Reason            string
	RequestDate       time.Time
	Status            string
	FinalApprovalDate *time.Time // solo se fija al llegar a APPROVED
	Remarks           string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// IsTerminal indica si la solicitud ya no admite transiciones.
func (r *Request) IsTerminal() bool {
	switch r.Status {
	case RequestApproved, RequestRejectedDirector, RequestRejectedOfficer:
		return true
	}
	return false
}
