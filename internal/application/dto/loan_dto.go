package dto

import "time"

// BorrowRequest alta de un préstamo directo.
type BorrowRequest struct {
	ItemID             string    `json:"item_id"`
	ExpectedReturnDate time.Time `json:"expected_return_date"`
	ConditionOnBorrow  string    `json:"condition_on_borrow"`
	Remarks            string    `json:"remarks"`
}

// ReturnRequest devolución de un préstamo.
type ReturnRequest struct {
	ConditionOnReturn string `json:"condition_on_return"`
	Remarks           string `json:"remarks"`
}

// LoanResponse préstamo con su estado actual.
type LoanResponse struct {
	ID                 string     `json:"id"`
	ItemID             string     `json:"item_id"`
	EmployeeID         string     `json:"employee_id"`
	BorrowDate         time.Time  `json:"borrow_date"`
	ExpectedReturnDate time.Time  `json:"expected_return_date"`
	ActualReturnDate   *time.Time `json:"actual_return_date,omitempty"`
	Status             string     `json:"status"`
	ConditionOnBorrow  string     `json:"condition_on_borrow"`
	ConditionOnReturn  string     `json:"condition_on_return,omitempty"`
	Remarks            string     `json:"remarks,omitempty"`
}

// LoanListResponse listado paginado de préstamos.
type LoanListResponse struct {
	Items []LoanResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
