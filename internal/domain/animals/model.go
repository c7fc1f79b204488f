package animals

import (
	"strings"
	"time"

	"livestock-management/internal/domain/species"
)

// Gender normalizado. La data de origen puede traer sinónimos
// localizados ("macho"/"hembra"); se normalizan en el borde con
// NormalizeGender, nunca dentro del motor de breeding.
// @Enum male, female
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// NormalizeGender mapea sinónimos a male/female.
// Devuelve false si el valor no es clasificable.
func NormalizeGender(raw string) (Gender, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "male", "macho", "m":
		return GenderMale, true
	case "female", "hembra", "h", "f":
		return GenderFemale, true
	default:
		return "", false
	}
}

// HealthStatus es una enumeración cerrada; se valida al entrar data,
// no en el motor de análisis.
// @Enum healthy, sick, pregnant, treatment, quarantine
type HealthStatus string

const (
	HealthHealthy    HealthStatus = "healthy"
	HealthSick       HealthStatus = "sick"
	HealthPregnant   HealthStatus = "pregnant"
	HealthTreatment  HealthStatus = "treatment"
	HealthQuarantine HealthStatus = "quarantine"
)

// ParseHealthStatus valida contra la enumeración cerrada.
// Vacío se interpreta como healthy.
func ParseHealthStatus(raw string) (HealthStatus, bool) {
	s := HealthStatus(strings.ToLower(strings.TrimSpace(raw)))
	switch s {
	case "":
		return HealthHealthy, true
	case HealthHealthy, HealthSick, HealthPregnant, HealthTreatment, HealthQuarantine:
		return s, true
	default:
		return "", false
	}
}

// Ancestry son los 14 slots de ancestros conocidos (hasta bisabuelos).
// Cada slot es un ID canónico de animal o vacío. La resolución de
// referencias sueltas (nombre/chapeta) ocurre al registrar la data,
// no aquí.
type Ancestry struct {
	FatherID string
	MotherID string

	PaternalGrandfatherID string
	PaternalGrandmotherID string
	MaternalGrandfatherID string
	MaternalGrandmotherID string

	// Bisabuelos en orden fijo: los 4 de la línea paterna
	// (padre del abuelo paterno, madre del abuelo paterno,
	// padre de la abuela paterna, madre de la abuela paterna)
	// y luego los 4 equivalentes de la línea materna.
	GreatGrandparents [8]string
}

// Slots devuelve los 14 slots en el orden fijo del modelo:
// padre, madre, 4 abuelos, 8 bisabuelos. Incluye vacíos.
func (a Ancestry) Slots() []string {
	out := make([]string, 0, 14)
	out = append(out,
		a.FatherID,
		a.MotherID,
		a.PaternalGrandfatherID,
		a.PaternalGrandmotherID,
		a.MaternalGrandfatherID,
		a.MaternalGrandmotherID,
	)
	out = append(out, a.GreatGrandparents[:]...)
	return out
}

// Grandparents devuelve los 4 slots de abuelos (puede haber vacíos).
func (a Ancestry) Grandparents() []string {
	return []string{
		a.PaternalGrandfatherID,
		a.PaternalGrandmotherID,
		a.MaternalGrandfatherID,
		a.MaternalGrandmotherID,
	}
}

// FilledCount cuenta slots no vacíos.
func (a Ancestry) FilledCount() int {
	n := 0
	for _, s := range a.Slots() {
		if strings.TrimSpace(s) != "" {
			n++
		}
	}
	return n
}

// Contains responde si un ID aparece en algún slot (trim, case-insensitive).
func (a Ancestry) Contains(id string) bool {
	id = strings.TrimSpace(id)
	if id == "" {
		return false
	}
	for _, s := range a.Slots() {
		if strings.EqualFold(strings.TrimSpace(s), id) {
			return true
		}
	}
	return false
}

// Animal representa una cabeza de ganado registrada en el sistema.
type Animal struct {
	ID          string
	OwnerUserID string

	Name    string
	Tag     string // chapeta / número de identificación en finca
	Species species.Species
	Gender  Gender
	Breed   string

	HealthStatus HealthStatus
	BirthDate    *time.Time
	LotID        string // lote/potrero asignado, vacío si ninguno

	Ancestry Ancestry

	Notes string

	CreatedAt time.Time
	UpdatedAt time.Time
}
