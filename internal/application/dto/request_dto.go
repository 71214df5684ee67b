package dto

import "time"

// SubmitRequestRequest alta de solicitud de producto por un empleado.
type SubmitRequestRequest struct {
	ProductID string `json:"product_id"`
	Reason    string `json:"reason"`
}

// RequestResponse solicitud con su estado en el flujo de aprobación.
type RequestResponse struct {
	ID                string     `json:"id"`
	EmployeeID        string     `json:"employee_id"`
	ProductID         string     `json:"product_id"`
	Reason            string     `json:"reason"`
	RequestDate       time.Time  `json:"request_date"`
	Status            string     `json:"status"`
	FinalApprovalDate *time.Time `json:"final_approval_date,omitempty"`
	Remarks           string     `json:"remarks,omitempty"`
}

// RequestListResponse listado paginado de solicitudes.
type RequestListResponse struct {
	Items []RequestResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// ApprovalResponse una decisión del historial de la solicitud.
type ApprovalResponse struct {
	ID         string    `json:"id"`
	RequestID  string    `json:"request_id"`
	ApproverID string    `json:"approver_id"`
	Role       string    `json:"role"`
	Status     string    `json:"status"`
	Comments   string    `json:"comments,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}
