package repository

import "github.com/jhoicas/activos-api/internal/domain/entity"

// NotificationRepository define el puerto de persistencia para Notification (DIP).
type NotificationRepository interface {
	Create(n *entity.Notification) error
	ListByRecipient(recipientID string, limit, offset int) ([]*entity.Notification, error)
	// MarkRead marca como leída una notificación del destinatario indicado.
	// Devuelve false si no existe o pertenece a otro usuario.
	MarkRead(id, recipientID string) (bool, error)
}
