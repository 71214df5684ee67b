// Package dispatcher traduce los resultados del flujo de aprobación y de los
// préstamos en registros consultables: notificaciones en la aplicación y
// bitácora de auditoría. Reemplaza los hooks implícitos del sistema anterior
// por llamadas explícitas dentro de cada operación: los efectos secundarios
// son parte declarada del contrato de la operación y se insertan en la misma
// transacción que la mutación que los origina.
package dispatcher

import (
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/activos-api/internal/domain/entity"
	"github.com/jhoicas/activos-api/internal/domain/repository"
	"github.com/jhoicas/activos-api/pkg/logger"
)

// Dispatcher emite Notification y AuditLog. Los repositorios se reciben por
// llamada para poder pasar los atados a la transacción en curso.
type Dispatcher struct {
	users repository.UserRepository
	log   *logger.Logger
}

// New construye el dispatcher. users se usa para el admin de respaldo en auditoría.
func New(users repository.UserRepository, log *logger.Logger) *Dispatcher {
	return &Dispatcher{users: users, log: log}
}

// Notify inserta una notificación para el destinatario. Un destinatario vacío
// (por ejemplo, unidad sin director configurado) se registra como warning y se
// omite: nunca hace fallar la operación que lo originó.
func (d *Dispatcher) Notify(notifs repository.NotificationRepository, recipientID, message string) error {
	if recipientID == "" {
		d.log.Warn().Str("message", message).Msg("notificación sin destinatario, se omite")
		return nil
	}
	return notifs.Create(&entity.Notification{
		ID:          uuid.New().String(),
		RecipientID: recipientID,
		Message:     message,
		IsRead:      false,
		Timestamp:   time.Now(),
	})
}

// Audit inserta una entrada de bitácora. Si no hay actor natural (p. ej.
// eliminación de un item sin asignar), se usa el primer ADMIN como respaldo.
func (d *Dispatcher) Audit(audits repository.AuditLogRepository, actorID, actionType, objectType, objectID, description string) error {
	if actorID == "" {
		admin, err := d.users.FirstByRole(entity.RoleAdmin)
		if err == nil && admin != nil {
			actorID = admin.ID
		} else {
			d.log.Warn().Str("action", actionType).Str("object_type", objectType).
				Msg("auditoría sin actor y sin admin de respaldo")
		}
	}
	return audits.Create(&entity.AuditLog{
		ID:          uuid.New().String(),
		UserID:      actorID,
		ActionType:  actionType,
		ObjectType:  objectType,
		ObjectID:    objectID,
		Description: description,
		Timestamp:   time.Now(),
	})
}
