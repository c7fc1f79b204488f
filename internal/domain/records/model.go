package records

import "time"

type Actor struct {
	Type ActorType
	ID   string
}

// AnimalRecord es una entrada del historial de manejo/sanidad de un
// animal. No se borra: se anula (void) y queda para auditoría.
type AnimalRecord struct {
	ID       string
	AnimalID string

	Type RecordType

	OccurredAt time.Time
	RecordedAt time.Time

	Title string
	Notes string

	// Peso en kg para WEIGHT_RECORDED; 0 en los demás tipos.
	WeightKg float64

	Actor  Actor
	Source Source
	Status RecordStatus
}
