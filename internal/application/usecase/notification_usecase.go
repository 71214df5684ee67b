package usecase

import (
	"github.com/jhoicas/activos-api/internal/application/dto"
	"github.com/jhoicas/activos-api/internal/domain"
	"github.com/jhoicas/activos-api/internal/domain/entity"
	"github.com/jhoicas/activos-api/internal/domain/repository"
)

// NotificationUseCase lectura y marcado de notificaciones del usuario.
type NotificationUseCase struct {
	repo repository.NotificationRepository
}

// NewNotificationUseCase construye el caso de uso.
func NewNotificationUseCase(repo repository.NotificationRepository) *NotificationUseCase {
	return &NotificationUseCase{repo: repo}
}

// List lista las notificaciones del destinatario.
func (uc *NotificationUseCase) List(recipientID string, limit, offset int) (*dto.NotificationListResponse, error) {
	list, err := uc.repo.ListByRecipient(recipientID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.NotificationResponse, 0, len(list))
	for _, n := range list {
		items = append(items, toNotificationResponse(n))
	}
	return &dto.NotificationListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// MarkRead marca una notificación como leída. Solo el destinatario puede
// hacerlo; para cualquier otro usuario la notificación "no existe".
func (uc *NotificationUseCase) MarkRead(id, recipientID string) error {
	ok, err := uc.repo.MarkRead(id, recipientID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

func toNotificationResponse(n *entity.Notification) dto.NotificationResponse {
	return dto.NotificationResponse{
		ID:        n.ID,
		Message:   n.Message,
		IsRead:    n.IsRead,
		Timestamp: n.Timestamp,
	}
}
