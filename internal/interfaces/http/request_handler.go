package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/activos-api/internal/application/dto"
	"github.com/jhoicas/activos-api/internal/application/workflow"
	"github.com/jhoicas/activos-api/internal/domain/entity"
)

// RequestHandler maneja las peticiones HTTP del flujo de aprobación.
type RequestHandler struct {
	uc   *workflow.ApprovalUseCase
	acta *workflow.ActaUseCase
}

// NewRequestHandler construye el handler.
func NewRequestHandler(uc *workflow.ApprovalUseCase, acta *workflow.ActaUseCase) *RequestHandler {
	return &RequestHandler{uc: uc, acta: acta}
}

// Submit godoc
// @Summary      Crear solicitud de producto
// @Tags         requests
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SubmitRequestRequest  true  "Producto y motivo"
// @Success      201   {object}  dto.RequestResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/requests [post]
func (h *RequestHandler) Submit(c *fiber.Ctx) error {
	var in dto.SubmitRequestRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	req, err := h.uc.Submit(c.Context(), GetUserID(c), in.ProductID, in.Reason)
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toRequestResponse(req))
}

// Approve godoc
// @Summary      Aprobar solicitud en la etapa del actor
// @Tags         requests
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la solicitud"
// @Success      200  {object}  dto.RequestResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/requests/{id}/approve [post]
func (h *RequestHandler) Approve(c *fiber.Ctx) error {
	req, err := h.uc.Approve(c.Context(), c.Params("id"), GetUserID(c))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(toRequestResponse(req))
}

// Reject godoc
// @Summary      Rechazar solicitud en la etapa del actor
// @Tags         requests
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la solicitud"
// @Success      200  {object}  dto.RequestResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/requests/{id}/reject [post]
func (h *RequestHandler) Reject(c *fiber.Ctx) error {
	req, err := h.uc.Reject(c.Context(), c.Params("id"), GetUserID(c))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(toRequestResponse(req))
}

// GetByID godoc
// @Summary      Obtener solicitud por ID
// @Tags         requests
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la solicitud"
// @Success      200  {object}  dto.RequestResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/requests/{id} [get]
func (h *RequestHandler) GetByID(c *fiber.Ctx) error {
	req, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	if req == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "solicitud no encontrada"})
	}
	return c.JSON(toRequestResponse(req))
}

// History godoc
// @Summary      Historial de decisiones de la solicitud
// @Tags         requests
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la solicitud"
// @Success      200  {array}  dto.ApprovalResponse
// @Router       /api/requests/{id}/history [get]
func (h *RequestHandler) History(c *fiber.Ctx) error {
	history, err := h.uc.History(c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	out := make([]dto.ApprovalResponse, 0, len(history))
	for _, a := range history {
		out = append(out, dto.ApprovalResponse{
			ID:         a.ID,
			RequestID:  a.RequestID,
			ApproverID: a.ApproverID,
			Role:       a.Role,
			Status:     a.Status,
			Comments:   a.Comments,
			Timestamp:  a.Timestamp,
		})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar solicitudes según el rol del actor
// @Tags         requests
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.RequestListResponse
// @Router       /api/requests [get]
func (h *RequestHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	list, err := h.uc.ListForActor(GetUserID(c), limit, offset)
	if err != nil {
		return domainError(c, err)
	}
	items := make([]dto.RequestResponse, 0, len(list))
	for _, req := range list {
		items = append(items, toRequestResponse(req))
	}
	return c.JSON(dto.RequestListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	})
}

// Acta godoc
// @Summary      Acta de entrega en PDF de una solicitud aprobada
// @Tags         requests
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la solicitud"
// @Success      200  {file}    file
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/requests/{id}/acta [get]
func (h *RequestHandler) Acta(c *fiber.Ctx) error {
	pdfBytes, err := h.acta.Generate(c.Context(), c.Params("id"), GetUserID(c))
	if err != nil {
		return domainError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="acta-entrega.pdf"`)
	return c.Send(pdfBytes)
}

func toRequestResponse(req *entity.Request) dto.RequestResponse {
	return dto.RequestResponse{
		ID:                req.ID,
		EmployeeID:        req.EmployeeID,
		ProductID:         req.ProductID,
		Reason:            req.Reason,
		RequestDate:       req.RequestDate,
		Status:            req.Status,
		FinalApprovalDate: req.FinalApprovalDate,
		Remarks:           req.Remarks,
	}
}
