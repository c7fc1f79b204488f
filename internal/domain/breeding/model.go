package breeding

import (
	"errors"

	"livestock-management/internal/domain/species"
)

var (
	// Precondiciones duras: un par inválido aborta su análisis,
	// nunca se coacciona a un score engañoso.
	ErrSpeciesMismatch = errors.New("animals must be the same species")
	ErrInvalidGender   = errors.New("animal gender is not classified")
	ErrGenderMismatch  = errors.New("pair must be male x female")
	ErrSameAnimal      = errors.New("cannot analyze an animal against itself")
)

// RiskLevel es la banda de riesgo de consanguinidad.
// @Enum low, moderate, high
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskModerate RiskLevel = "moderate"
	RiskHigh     RiskLevel = "high"
)

// RelationshipType clasifica el parentesco directo detectado.
// @Enum none, parent-child, siblings, grandparent-grandchild
type RelationshipType string

const (
	RelationNone         RelationshipType = "none"
	RelationParentChild  RelationshipType = "parent-child"
	RelationSiblings     RelationshipType = "siblings"
	RelationGrandparent  RelationshipType = "grandparent-grandchild"
)

// Relationship es el resultado del guard de parentesco.
// ShouldBlock es un veto duro: bloquea la pareja sin importar el score.
type Relationship struct {
	Type        RelationshipType `json:"type"`
	ShouldBlock bool             `json:"should_block"`
	Details     string           `json:"details"`
}

// ScoreBreakdown expone los componentes ponderados del score final,
// para debug y para validar que suman el total (tolerancia de redondeo).
type ScoreBreakdown struct {
	Diversity    float64 `json:"diversity"`
	Inbreeding   float64 `json:"inbreeding_safety"`
	Breed        float64 `json:"breed_preservation"`
	Completeness float64 `json:"pedigree_completeness"`
}

// Total suma los componentes sin redondear.
func (b ScoreBreakdown) Total() float64 {
	return b.Diversity + b.Inbreeding + b.Breed + b.Completeness
}

// PairAnalysis es el resultado efímero de analizar una pareja.
// No se persiste: se recalcula on demand y recalcular con los mismos
// snapshots es idempotente.
type PairAnalysis struct {
	MaleID     string          `json:"male_id"`
	MaleName   string          `json:"male_name"`
	FemaleID   string          `json:"female_id"`
	FemaleName string          `json:"female_name"`
	Species    species.Species `json:"species"`

	CompatibilityScore    int            `json:"compatibility_score"`
	Breakdown             ScoreBreakdown `json:"breakdown"`
	InbreedingCoefficient float64        `json:"inbreeding_coefficient"`
	RiskLevel             RiskLevel      `json:"risk_level"`
	CommonAncestors       []string       `json:"common_ancestors"`
	GeneticDiversityScore int            `json:"genetic_diversity_score"`
	Recommendations       []string       `json:"recommendations"`

	// RelationshipWarning va seteado (y Blocked en true) cuando el guard
	// detecta parentesco directo. Un caller de UI nunca debe mostrar el
	// score de un par bloqueado sin esta advertencia al lado.
	RelationshipWarning *Relationship `json:"relationship_warning,omitempty"`
	Blocked             bool          `json:"blocked"`
}
