package grants

import "time"

// Scope delimita qué puede hacer un delegado sobre el hato del dueño.
type Scope string

const (
	ScopeAnimalsRead     Scope = "animals:read"
	ScopeAnimalsEdit     Scope = "animals:edit"
	ScopeRecordsRead     Scope = "records:read"
	ScopeRecordsCreate   Scope = "records:create"
	ScopeRecordsVoid     Scope = "records:void"
	ScopeBreedingAnalyze Scope = "breeding:analyze"
)

type Status string

const (
	StatusInvited Status = "invited"
	StatusActive  Status = "active"
	StatusRevoked Status = "revoked"
)

// Grant es una delegación a nivel de hato: el dueño comparte todo su
// ganado con un delegado bajo un conjunto de scopes. No se delega por
// animal individual; eso resultó impracticable con hatos grandes.
type Grant struct {
	ID string

	OwnerUserID   string // quien comparte su hato
	GranteeUserID string // delegado (mayordomo, veterinario, técnico)

	Scopes []Scope
	Status Status

	CreatedAt time.Time
	UpdatedAt time.Time
	RevokedAt *time.Time
}
