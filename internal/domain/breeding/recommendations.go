package breeding

import (
	"fmt"
	"strings"
	"time"

	"livestock-management/internal/domain/animals"
	"livestock-management/internal/domain/species"
)

// Bandas de contrato para las recomendaciones (valores testeables).
const (
	compatBandExcellent = 80
	compatBandGood      = 60
	compatBandModerate  = 40

	diversityBandHigh = 75
	diversityBandLow  = 50

	// Se revelan máximo dos ancestros comunes para no saturar la salida.
	maxDisclosedAncestors = 2
)

// GenerateRecommendations produce la lista ordenada de avisos para la
// pareja. El orden y el contenido son deterministas (mismo input, misma
// salida) para que la UI y los tests puedan fijarlos:
// salud → banda de score → riesgo → conservación de raza → diversidad →
// ventana/gestación de la especie → ancestros comunes.
func GenerateRecommendations(
	male, female animals.Animal,
	risk RiskLevel,
	diversity int,
	common []string,
	compatScore int,
	catalog *species.Config,
	now time.Time,
) []string {
	out := make([]string, 0, 8)

	// (a) salud
	out = append(out, healthWarnings(male, "el macho")...)
	out = append(out, healthWarnings(female, "la hembra")...)

	// (b) banda de compatibilidad
	switch {
	case compatScore >= compatBandExcellent:
		out = append(out, "Pareja excelente: cruce recomendado.")
	case compatScore >= compatBandGood:
		out = append(out, "Pareja buena: cruce viable.")
	case compatScore >= compatBandModerate:
		out = append(out, "Compatibilidad moderada: proceder con precaución.")
	default:
		out = append(out, "Cruce no recomendado por baja compatibilidad.")
	}

	// (c) riesgo de consanguinidad
	switch risk {
	case RiskHigh:
		out = append(out, "Riesgo alto de consanguinidad: evitar este cruce.")
	case RiskModerate:
		out = append(out, "Riesgo moderado de consanguinidad: consultar con un técnico antes de cruzar.")
	}

	// (d) conservación de razas especiales
	mSpecial := catalog.IsSpecialBreed(male.Species, male.Breed)
	fSpecial := catalog.IsSpecialBreed(female.Species, female.Breed)
	if mSpecial && fSpecial && strings.EqualFold(male.Breed, female.Breed) {
		out = append(out, fmt.Sprintf("Cruce valioso para conservación de la raza %s.", strings.ToLower(male.Breed)))
	} else if mSpecial || fSpecial {
		out = append(out, "Uno de los ejemplares es de raza especial: considerar un cruce de conservación con pareja de la misma raza.")
	}

	// (e) diversidad genética
	if diversity >= diversityBandHigh {
		out = append(out, "Buena diversidad genética esperada en la descendencia.")
	} else if diversity < diversityBandLow {
		out = append(out, "Diversidad genética baja: considerar ejemplares de otras líneas.")
	}

	// (f) ventana reproductiva y gestación de la especie
	p, known := catalog.Lookup(male.Species)
	if known {
		if catalog.IsBreedingMonth(male.Species, int(now.Month())) {
			out = append(out, "Mes actual dentro de la ventana óptima de monta para la especie.")
		} else if len(p.BreedingMonths) > 0 {
			out = append(out, fmt.Sprintf("Mes actual fuera de la ventana óptima de monta (meses recomendados: %s).", monthList(p.BreedingMonths)))
		}
		if p.GestationDays > 0 {
			out = append(out, fmt.Sprintf("Gestación estimada de la especie: %d días.", p.GestationDays))
		}
	}

	// (g) ancestros comunes (solo los dos primeros)
	if len(common) > 0 {
		disclosed := common
		if len(disclosed) > maxDisclosedAncestors {
			disclosed = disclosed[:maxDisclosedAncestors]
		}
		out = append(out, fmt.Sprintf("Ancestros comunes detectados: %s.", strings.Join(disclosed, ", ")))
	}

	return out
}

func healthWarnings(a animals.Animal, label string) []string {
	switch a.HealthStatus {
	case animals.HealthPregnant:
		return []string{fmt.Sprintf("Atención: %s (%s) está en gestación; no programar monta.", label, a.Name)}
	case animals.HealthSick:
		return []string{fmt.Sprintf("Atención: %s (%s) está enfermo; posponer el cruce hasta su recuperación.", label, a.Name)}
	case animals.HealthTreatment:
		return []string{fmt.Sprintf("Atención: %s (%s) está en tratamiento; verificar con el veterinario antes de cruzar.", label, a.Name)}
	case animals.HealthQuarantine:
		return []string{fmt.Sprintf("Atención: %s (%s) está en cuarentena; no cruzar hasta el alta.", label, a.Name)}
	default:
		return nil
	}
}

func monthList(months []int) string {
	names := []string{"", "enero", "febrero", "marzo", "abril", "mayo", "junio",
		"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre"}
	parts := make([]string, 0, len(months))
	for _, m := range months {
		if m >= 1 && m <= 12 {
			parts = append(parts, names[m])
		}
	}
	return strings.Join(parts, ", ")
}
