package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/activos-api/internal/domain/entity"
	"github.com/jhoicas/activos-api/internal/domain/repository"
)

var _ repository.NotificationRepository = (*NotificationRepo)(nil)

// NotificationRepo avisos en la aplicación sobre PostgreSQL.
type NotificationRepo struct {
	q Querier
}

// NewNotificationRepository construye el adaptador de persistencia para notificaciones.
func NewNotificationRepository(q Querier) *NotificationRepo {
	return &NotificationRepo{q: q}
}

// Create persiste una notificación.
func (r *NotificationRepo) Create(n *entity.Notification) error {
	query := `
		INSERT INTO notifications (id, recipient_id, message, is_read, timestamp)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		n.ID, n.RecipientID, n.Message, n.IsRead, n.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

// ListByRecipient lista notificaciones del destinatario, las no leídas primero.
func (r *NotificationRepo) ListByRecipient(recipientID string, limit, offset int) ([]*entity.Notification, error) {
	query := `
		SELECT id, recipient_id, message, is_read, timestamp
		FROM notifications WHERE recipient_id = $1
		ORDER BY is_read ASC, timestamp DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, recipientID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()
	var list []*entity.Notification
	for rows.Next() {
		var n entity.Notification
		if err := rows.Scan(&n.ID, &n.RecipientID, &n.Message, &n.IsRead, &n.Timestamp); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		list = append(list, &n)
	}
	return list, rows.Err()
}

// MarkRead marca como leída una notificación del destinatario. false si no
// existe o pertenece a otro usuario; el filtro por recipient_id es la
// autorización.
func (r *NotificationRepo) MarkRead(id, recipientID string) (bool, error) {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE notifications SET is_read = true WHERE id = $1 AND recipient_id = $2`,
		id, recipientID,
	)
	if err != nil {
		return false, fmt.Errorf("mark notification read: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}
