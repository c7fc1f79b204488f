package notifications

import "time"

// Kind clasifica la notificación para que la UI pueda iconografiarla.
// @Enum breeding_alert, health_alert, grant_invite, system
type Kind string

const (
	KindBreedingAlert Kind = "breeding_alert"
	KindHealthAlert   Kind = "health_alert"
	KindGrantInvite   Kind = "grant_invite"
	KindSystem        Kind = "system"
)

// Notification es un aviso dirigido a un usuario. Solo bandeja interna:
// la entrega por correo/push queda fuera de este servicio.
type Notification struct {
	ID     string
	UserID string

	Kind  Kind
	Title string
	Body  string

	Read      bool
	CreatedAt time.Time
	ReadAt    *time.Time
}
