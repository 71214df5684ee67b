package usecase

import (
	"github.com/jhoicas/activos-api/internal/application/dto"
	"github.com/jhoicas/activos-api/internal/domain/entity"
	"github.com/jhoicas/activos-api/internal/domain/repository"
)

// AuditUseCase lectura de la bitácora. Cada usuario ve sus propias entradas;
// un ADMIN puede listar todo con filtros por acción y tipo de objeto.
type AuditUseCase struct {
	repo repository.AuditLogRepository
}

// NewAuditUseCase construye el caso de uso.
func NewAuditUseCase(repo repository.AuditLogRepository) *AuditUseCase {
	return &AuditUseCase{repo: repo}
}

// ListForActor lista la bitácora según el rol del actor.
func (uc *AuditUseCase) ListForActor(actorID, actorRole string, filter repository.AuditLogFilter, limit, offset int) (*dto.AuditLogListResponse, error) {
	if actorRole != entity.RoleAdmin {
		// No admin: solo sus propias entradas, sin filtros ajenos.
		filter = repository.AuditLogFilter{UserID: actorID}
	}
	list, err := uc.repo.List(filter, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.AuditLogResponse, 0, len(list))
	for _, l := range list {
		items = append(items, dto.AuditLogResponse{
			ID:          l.ID,
			UserID:      l.UserID,
			ActionType:  l.ActionType,
			ObjectType:  l.ObjectType,
			ObjectID:    l.ObjectID,
			Description: l.Description,
			Timestamp:   l.Timestamp,
		})
	}
	return &dto.AuditLogListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}
