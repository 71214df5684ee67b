package entity

import "time"

// Notification es un aviso en la aplicación para un usuario. La crea solo el
// dispatcher; el destinatario únicamente puede marcarla como leída.
type Notification struct {
	ID          string
	RecipientID string
	Message     string
	IsRead      bool
	Timestamp   time.Time
}
