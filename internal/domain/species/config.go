package species

import "strings"

// Species define las especies soportadas.
// @Enum bovino, equino, ovino, caprino, porcino
type Species string

const (
	SpeciesBovino  Species = "bovino"
	SpeciesEquino  Species = "equino"
	SpeciesOvino   Species = "ovino"
	SpeciesCaprino Species = "caprino"
	SpeciesPorcino Species = "porcino"
)

// RiskThresholds delimita las bandas de riesgo de consanguinidad.
// Un coeficiente <= LowMax es riesgo bajo, <= ModerateMax moderado,
// por encima de ModerateMax es alto.
type RiskThresholds struct {
	LowMax      float64 `yaml:"low_max"`
	ModerateMax float64 `yaml:"moderate_max"`
}

// Profile agrupa la configuración reproductiva de una especie.
// Es data de configuración, no lógica: el motor de breeding la recibe
// inyectada y nunca hardcodea umbrales universales.
type Profile struct {
	GestationDays  int            `yaml:"gestation_days"`
	BreedingMonths []int          `yaml:"breeding_months"` // 1..12
	Thresholds     RiskThresholds `yaml:"thresholds"`
	SpecialBreeds  []string       `yaml:"special_breeds"`
}

// Config es el catálogo de perfiles por especie.
type Config struct {
	profiles map[Species]Profile
	fallback Profile
}

// Lookup devuelve el perfil de una especie. Especies desconocidas
// caen al perfil conservador por defecto (segundo retorno false).
func (c *Config) Lookup(sp Species) (Profile, bool) {
	p, ok := c.profiles[normalize(sp)]
	if !ok {
		return c.fallback, false
	}
	return p, true
}

// IsSpecialBreed responde si la raza está marcada como especial/rara
// para la especie. Comparación case-insensitive sobre el tag.
func (c *Config) IsSpecialBreed(sp Species, breed string) bool {
	breed = strings.TrimSpace(breed)
	if breed == "" {
		return false
	}
	p, _ := c.Lookup(sp)
	for _, b := range p.SpecialBreeds {
		if strings.EqualFold(b, breed) {
			return true
		}
	}
	return false
}

// IsBreedingMonth responde si el mes (1..12) está dentro de la ventana
// óptima de monta para la especie. Sin ventana configurada => siempre true.
func (c *Config) IsBreedingMonth(sp Species, month int) bool {
	p, _ := c.Lookup(sp)
	if len(p.BreedingMonths) == 0 {
		return true
	}
	for _, m := range p.BreedingMonths {
		if m == month {
			return true
		}
	}
	return false
}

// Known responde si la especie está en el catálogo.
func (c *Config) Known(sp Species) bool {
	_, ok := c.profiles[normalize(sp)]
	return ok
}

func normalize(sp Species) Species {
	return Species(strings.ToLower(strings.TrimSpace(string(sp))))
}
