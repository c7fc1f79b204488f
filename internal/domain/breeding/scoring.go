package breeding

import (
	"math"
	"strings"

	"livestock-management/internal/domain/animals"
	"livestock-management/internal/domain/species"
)

// Constantes del modelo de scoring. Son heurísticas de la app original
// sin cita a literatura genética; quedan nombradas para que una revisión
// de experto de dominio pueda ajustarlas en un solo lugar (ver DESIGN.md).
const (
	// sharedAncestorWeight es la unidad fraccional de parentesco
	// "un abuelo compartido". No es el coeficiente de Wright real:
	// es una aproximación plana por ancestro compartido.
	sharedAncestorWeight = 0.0625

	// maxInbreedingCoefficient es el máximo con sentido biológico
	// (gemelos idénticos). El cap evita valores absurdos cuando el
	// pedigrí es poco profundo y los tokens se repiten mucho.
	maxInbreedingCoefficient = 0.5

	// inbreedingPenaltyFactor convierte el coeficiente en castigo
	// sobre la escala 0-100 del componente de seguridad.
	inbreedingPenaltyFactor = 800

	diversityBothUnknown   = 85
	diversityOneUnknown    = 75
	commonAncestorPenalty  = 15
	diversityFloor         = 20

	weightDiversity    = 0.4
	weightInbreeding   = 0.3
	weightBreed        = 0.2
	weightCompleteness = 0.1

	breedScoreBothSpecial = 90
	breedScoreSameBreed   = 70
	breedScoreOneSpecial  = 60
	breedScoreDefault     = 50

	// fullPedigreeSlots: con 8 slots llenos por animal el componente
	// de completitud da puntaje máximo.
	fullPedigreeSlots = 8
)

// CalculateInbreedingCoefficient estima el coeficiente de consanguinidad
// a partir de los ancestros compartidos: peso fijo por ancestro, con tope.
// Aproximación heurística, NO el cálculo de Wright por caminos; cambiarla
// de fórmula es un cambio de contrato, no un fix.
func CalculateInbreedingCoefficient(common []string) float64 {
	coef := sharedAncestorWeight * float64(len(common))
	if coef > maxInbreedingCoefficient {
		coef = maxInbreedingCoefficient
	}
	return coef
}

// CalculateGeneticDiversity estima (0-100) qué tan distintos se esperan
// los acervos genéticos de la pareja.
//
// Política (valores de contrato, cubiertos por golden tests):
//   - ambos linajes vacíos => 85 (ausencia de evidencia ≠ riesgo conocido)
//   - exactamente uno vacío => 75
//   - resto: unicos/total escalado a 0-100, menos 15 por ancestro común,
//     con piso en 20 y clamp a [0,100].
func CalculateGeneticDiversity(a, b, common []string) int {
	if len(a) == 0 && len(b) == 0 {
		return diversityBothUnknown
	}
	if len(a) == 0 || len(b) == 0 {
		return diversityOneUnknown
	}

	unique := make(map[string]struct{}, len(a)+len(b))
	for _, t := range a {
		unique[t] = struct{}{}
	}
	for _, t := range b {
		unique[t] = struct{}{}
	}

	total := len(a) + len(b)
	score := float64(len(unique)) / float64(total) * 100
	score -= float64(commonAncestorPenalty * len(common))

	if score < diversityFloor {
		score = diversityFloor
	}
	return clampScore(int(math.Round(score)))
}

// CalculateCompatibilityScore combina los componentes ponderados en un
// score 0-100, devolviendo también el desglose (los componentes deben
// sumar el total dentro de la tolerancia de redondeo).
func CalculateCompatibilityScore(
	male, female animals.Animal,
	coef float64,
	diversity int,
	maleLineage, femaleLineage []string,
	catalog *species.Config,
) (int, ScoreBreakdown) {
	bd := ScoreBreakdown{
		Diversity:    float64(diversity) * weightDiversity,
		Inbreeding:   math.Max(0, 100-coef*inbreedingPenaltyFactor) * weightInbreeding,
		Breed:        float64(breedScore(male, female, catalog)) * weightBreed,
		Completeness: pedigreeCompleteness(male, female) * weightCompleteness,
	}

	return clampScore(int(math.Round(bd.Total()))), bd
}

// breedScore: bono de conservación de razas. Dos ejemplares de la misma
// raza especial puntúan más alto; la meseta es el default 50.
func breedScore(male, female animals.Animal, catalog *species.Config) int {
	mSpecial := catalog.IsSpecialBreed(male.Species, male.Breed)
	fSpecial := catalog.IsSpecialBreed(female.Species, female.Breed)
	sameBreed := male.Breed != "" && female.Breed != "" && strings.EqualFold(male.Breed, female.Breed)

	switch {
	case mSpecial && fSpecial && sameBreed:
		return breedScoreBothSpecial
	case sameBreed:
		return breedScoreSameBreed
	case mSpecial || fSpecial:
		return breedScoreOneSpecial
	default:
		return breedScoreDefault
	}
}

// pedigreeCompleteness: promedio de slots llenos de los dos animales,
// escalado para que fullPedigreeSlots por animal dé 100.
func pedigreeCompleteness(male, female animals.Animal) float64 {
	avg := float64(male.Ancestry.FilledCount()+female.Ancestry.FilledCount()) / 2
	score := avg / fullPedigreeSlots * 100
	if score > 100 {
		score = 100
	}
	return score
}

// ClassifyRisk mapea el coeficiente a una banda con los umbrales de la
// especie. Los umbrales son configuración (internal/domain/species),
// nunca hardcodeados acá.
func ClassifyRisk(coef float64, sp species.Species, catalog *species.Config) RiskLevel {
	p, _ := catalog.Lookup(sp)
	switch {
	case coef <= p.Thresholds.LowMax:
		return RiskLow
	case coef <= p.Thresholds.ModerateMax:
		return RiskModerate
	default:
		return RiskHigh
	}
}

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
