package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/activos-api/internal/application/usecase"
	"github.com/jhoicas/activos-api/internal/domain/repository"
)

// AuditHandler expone la bitácora de solo lectura.
type AuditHandler struct {
	uc *usecase.AuditUseCase
}

// NewAuditHandler construye el handler.
func NewAuditHandler(uc *usecase.AuditUseCase) *AuditHandler {
	return &AuditHandler{uc: uc}
}

// List godoc
// @Summary      Listar bitácora (propia; completa y filtrable para ADMIN)
// @Tags         audit
// @Security     Bearer
// @Produce      json
// @Param        user_id      query  string  false  "Filtrar por usuario (solo ADMIN)"
// @Param        action_type  query  string  false  "Filtrar por acción (solo ADMIN)"
// @Param        object_type  query  string  false  "Filtrar por tipo de objeto (solo ADMIN)"
// @Param        limit        query  int     false  "Límite"   default(20)
// @Param        offset       query  int     false  "Offset"   default(0)
// @Success      200  {object}  dto.AuditLogListResponse
// @Router       /api/audit-logs [get]
func (h *AuditHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	filter := repository.AuditLogFilter{
		UserID:     c.Query("user_id"),
		ActionType: c.Query("action_type"),
		ObjectType: c.Query("object_type"),
	}
	out, err := h.uc.ListForActor(GetUserID(c), GetRole(c), filter, limit, offset)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}
