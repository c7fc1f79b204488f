package species

// Defaults devuelve el catálogo compilado.
// Los valores de gestación/meses son los de la app original;
// los umbrales de riesgo son heurísticos pendientes de revisión
// por un experto de dominio (ver DESIGN.md).
func Defaults() *Config {
	return &Config{
		profiles: map[Species]Profile{
			SpeciesBovino: {
				GestationDays:  283,
				BreedingMonths: []int{3, 4, 5, 6, 7},
				Thresholds:     RiskThresholds{LowMax: 0.0625, ModerateMax: 0.125},
				SpecialBreeds:  []string{"criollo", "romosinuano", "blanco orejinegro"},
			},
			SpeciesEquino: {
				GestationDays:  340,
				BreedingMonths: []int{2, 3, 4, 5, 6},
				Thresholds:     RiskThresholds{LowMax: 0.0625, ModerateMax: 0.125},
				SpecialBreeds:  []string{"criollo colombiano", "paso fino"},
			},
			SpeciesOvino: {
				GestationDays:  150,
				BreedingMonths: []int{9, 10, 11},
				Thresholds:     RiskThresholds{LowMax: 0.0625, ModerateMax: 0.1875},
				SpecialBreeds:  []string{"criollo de pelo"},
			},
			SpeciesCaprino: {
				GestationDays:  150,
				BreedingMonths: []int{9, 10, 11},
				Thresholds:     RiskThresholds{LowMax: 0.0625, ModerateMax: 0.1875},
				SpecialBreeds:  []string{"criollo santandereano"},
			},
			SpeciesPorcino: {
				GestationDays:  114,
				BreedingMonths: nil, // reproducción todo el año
				Thresholds:     RiskThresholds{LowMax: 0.0625, ModerateMax: 0.125},
				SpecialBreeds:  []string{"zungo", "casco de mula"},
			},
		},
		// Perfil conservador para especies fuera de catálogo:
		// banda moderada estrecha para forzar revisión manual.
		fallback: Profile{
			GestationDays:  0,
			BreedingMonths: nil,
			Thresholds:     RiskThresholds{LowMax: 0.03125, ModerateMax: 0.0625},
		},
	}
}
