package breeding

import (
	"context"
	"sort"
	"strings"
	"time"

	"livestock-management/internal/domain/animals"
	"livestock-management/internal/domain/species"
	"livestock-management/internal/platform/logger"
)

// Analyzer es el motor de compatibilidad reproductiva. Es un pipeline
// puro: no retiene estado entre llamadas, no hace I/O propio (el
// resolver es el único colaborador externo) y analizar dos snapshots
// iguales siempre da el mismo resultado.
type Analyzer struct {
	catalog  *species.Config
	resolver Resolver
	log      logger.Logger
	now      func() time.Time
}

func NewAnalyzer(catalog *species.Config, resolver Resolver, log logger.Logger) *Analyzer {
	return &Analyzer{
		catalog:  catalog,
		resolver: resolver,
		log:      log,
		now:      time.Now,
	}
}

// AnalyzePair ejecuta el pipeline completo sobre una pareja macho x hembra.
//
// Orden del pipeline: guard de parentesco (veto duro) → extracción de
// linajes → ancestros comunes → coeficiente de consanguinidad +
// diversidad → score de compatibilidad → banda de riesgo →
// recomendaciones.
//
// Precondiciones duras (error, nunca score engañoso): misma especie,
// géneros clasificados y en el orden macho/hembra, animales distintos.
func (z *Analyzer) AnalyzePair(ctx context.Context, male, female animals.Animal) (PairAnalysis, error) {
	if strings.EqualFold(male.ID, female.ID) {
		return PairAnalysis{}, ErrSameAnimal
	}
	if male.Gender == "" || female.Gender == "" {
		return PairAnalysis{}, ErrInvalidGender
	}
	if male.Gender != animals.GenderMale || female.Gender != animals.GenderFemale {
		return PairAnalysis{}, ErrGenderMismatch
	}
	if male.Species == "" || !strings.EqualFold(string(male.Species), string(female.Species)) {
		return PairAnalysis{}, ErrSpeciesMismatch
	}

	rel := DetectFamilyRelationship(ctx, z.resolver, male, female)

	maleLineage := ExtractLineage(male)
	femaleLineage := ExtractLineage(female)
	common := FindCommonAncestors(maleLineage, femaleLineage)

	coef := CalculateInbreedingCoefficient(common)
	diversity := CalculateGeneticDiversity(maleLineage, femaleLineage, common)

	score, breakdown := CalculateCompatibilityScore(male, female, coef, diversity, maleLineage, femaleLineage, z.catalog)
	risk := ClassifyRisk(coef, male.Species, z.catalog)

	recs := GenerateRecommendations(male, female, risk, diversity, common, score, z.catalog, z.now())

	result := PairAnalysis{
		MaleID:                male.ID,
		MaleName:              male.Name,
		FemaleID:              female.ID,
		FemaleName:            female.Name,
		Species:               male.Species,
		CompatibilityScore:    score,
		Breakdown:             breakdown,
		InbreedingCoefficient: coef,
		RiskLevel:             risk,
		CommonAncestors:       common,
		GeneticDiversityScore: diversity,
		Recommendations:       recs,
	}

	if rel.ShouldBlock {
		r := rel
		result.RelationshipWarning = &r
		result.Blocked = true
		// El veto encabeza las recomendaciones: el score nunca lo tapa.
		result.Recommendations = append(
			[]string{"CRUCE BLOQUEADO: " + rel.Details + "."},
			result.Recommendations...,
		)
	}

	return result, nil
}

// SuggestPairs analiza todas las combinaciones macho x hembra del hato
// (filtrado opcional por especie) y devuelve la lista ordenada por
// score descendente; empates por (nombre del macho, nombre de la
// hembra) ascendente — ese es el orden estable documentado.
//
// Un par que falla su precondición se loguea y se omite sin abortar el
// batch. Los pares bloqueados por parentesco sí se incluyen (marcados),
// para que la UI los muestre distinto de los de score bajo.
func (z *Analyzer) SuggestPairs(ctx context.Context, herd []animals.Animal, sp species.Species) []PairAnalysis {
	var males, females []animals.Animal
	for _, a := range herd {
		if sp != "" && !strings.EqualFold(string(a.Species), string(sp)) {
			continue
		}
		switch a.Gender {
		case animals.GenderMale:
			males = append(males, a)
		case animals.GenderFemale:
			females = append(females, a)
		}
	}

	out := make([]PairAnalysis, 0, len(males)*len(females))
	for _, m := range males {
		for _, f := range females {
			res, err := z.AnalyzePair(ctx, m, f)
			if err != nil {
				if z.log != nil {
					z.log.Warn("pair analysis skipped", map[string]any{
						"male":   m.ID,
						"female": f.ID,
						"error":  err.Error(),
					})
				}
				continue
			}
			out = append(out, res)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CompatibilityScore != out[j].CompatibilityScore {
			return out[i].CompatibilityScore > out[j].CompatibilityScore
		}
		if out[i].MaleName != out[j].MaleName {
			return out[i].MaleName < out[j].MaleName
		}
		return out[i].FemaleName < out[j].FemaleName
	})

	return out
}
