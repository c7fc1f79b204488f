package lots

import "time"

// Lot representa un lote/potrero de la finca. El área es un número ya
// calculado (hectáreas); el parseo de geometría catastral queda fuera
// de este servicio.
type Lot struct {
	ID          string
	OwnerUserID string

	Name         string
	AreaHectares float64
	Capacity     int // cabezas máximas recomendadas; 0 = sin límite definido

	Notes string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Occupancy resume la carga de un lote.
type Occupancy struct {
	LotID     string
	HeadCount int
	Capacity  int
	// Full es true cuando hay capacidad definida y está alcanzada.
	Full bool
}
