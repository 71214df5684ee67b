package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/activos-api/internal/application/dto"
	"github.com/jhoicas/activos-api/internal/application/lending"
	"github.com/jhoicas/activos-api/internal/domain/entity"
)

// LoanHandler maneja las peticiones HTTP de préstamos directos.
type LoanHandler struct {
	uc *lending.LoanUseCase
}

// NewLoanHandler construye el handler.
func NewLoanHandler(uc *lending.LoanUseCase) *LoanHandler {
	return &LoanHandler{uc: uc}
}

// Borrow godoc
// @Summary      Tomar un item en préstamo
// @Tags         loans
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BorrowRequest  true  "Item y condiciones"
// @Success      201   {object}  dto.LoanResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/loans [post]
func (h *LoanHandler) Borrow(c *fiber.Ctx) error {
	var in dto.BorrowRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	loan, err := h.uc.Borrow(c.Context(), GetUserID(c), in.ItemID, in.ExpectedReturnDate, in.ConditionOnBorrow, in.Remarks)
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toLoanResponse(loan))
}

// Return godoc
// @Summary      Devolver un préstamo
// @Tags         loans
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del préstamo"
// @Param        body  body  dto.ReturnRequest  true  "Condición de devolución"
// @Success      200   {object}  dto.LoanResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/loans/{id}/return [post]
func (h *LoanHandler) Return(c *fiber.Ctx) error {
	var in dto.ReturnRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	loan, err := h.uc.Return(c.Context(), c.Params("id"), GetUserID(c), in.ConditionOnReturn, in.Remarks)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(toLoanResponse(loan))
}

// GetByID godoc
// @Summary      Obtener préstamo por ID
// @Tags         loans
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del préstamo"
// @Success      200  {object}  dto.LoanResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/loans/{id} [get]
func (h *LoanHandler) GetByID(c *fiber.Ctx) error {
	loan, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	if loan == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "préstamo no encontrado"})
	}
	return c.JSON(toLoanResponse(loan))
}

// List godoc
// @Summary      Listar préstamos según el rol del actor
// @Tags         loans
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.LoanListResponse
// @Router       /api/loans [get]
func (h *LoanHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	list, err := h.uc.ListForActor(GetUserID(c), limit, offset)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(toLoanList(list, limit, offset))
}

// Overdue godoc
// @Summary      Reporte de préstamos vencidos
// @Tags         loans
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.LoanListResponse
// @Router       /api/loans/overdue [get]
func (h *LoanHandler) Overdue(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	list, err := h.uc.ListOverdue(limit, offset)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(toLoanList(list, limit, offset))
}

func toLoanList(list []*entity.Loan, limit, offset int) dto.LoanListResponse {
	items := make([]dto.LoanResponse, 0, len(list))
	for _, l := range list {
		items = append(items, toLoanResponse(l))
	}
	return dto.LoanListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}
}

func toLoanResponse(l *entity.Loan) dto.LoanResponse {
	return dto.LoanResponse{
		ID:                 l.ID,
		ItemID:             l.ItemID,
		EmployeeID:         l.EmployeeID,
		BorrowDate:         l.BorrowDate,
		ExpectedReturnDate: l.ExpectedReturnDate,
		ActualReturnDate:   l.ActualReturnDate,
		Status:             l.Status,
		ConditionOnBorrow:  l.ConditionOnBorrow,
		ConditionOnReturn:  l.ConditionOnReturn,
		Remarks:            l.Remarks,
	}
}
