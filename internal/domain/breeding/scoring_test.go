package breeding

import (
	"math"
	"testing"

	"livestock-management/internal/domain/animals"
	"livestock-management/internal/domain/species"
)

func TestCalculateInbreedingCoefficient(t *testing.T) {
	cases := []struct {
		name   string
		common int
		want   float64
	}{
		{"sin ancestros comunes", 0, 0},
		{"uno compartido", 1, 0.0625},
		{"dos compartidos", 2, 0.125},
		{"cap en 0.5", 20, 0.5},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			common := make([]string, tc.common)
			for i := range common {
				common[i] = string(rune('A' + i))
			}
			got := CalculateInbreedingCoefficient(common)
			if got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestInbreeding_MonotonicNonDecreasing(t *testing.T) {
	prev := -1.0
	common := []string{}
	for i := 0; i < 12; i++ {
		got := CalculateInbreedingCoefficient(common)
		if got < prev {
			t.Fatalf("coefficient decreased at %d common ancestors: %v < %v", i, got, prev)
		}
		if got < 0 || got > 0.5 {
			t.Fatalf("coefficient out of [0,0.5]: %v", got)
		}
		prev = got
		common = append(common, string(rune('A'+i)))
	}
}

func TestCalculateGeneticDiversity_FixedValues(t *testing.T) {
	// Ambos linajes vacíos: ausencia de evidencia no penaliza.
	if got := CalculateGeneticDiversity(nil, nil, nil); got != 85 {
		t.Fatalf("expected 85 for both empty, got %d", got)
	}
	// Exactamente uno vacío.
	if got := CalculateGeneticDiversity([]string{"A"}, nil, nil); got != 75 {
		t.Fatalf("expected 75 for one empty, got %d", got)
	}
	if got := CalculateGeneticDiversity(nil, []string{"A"}, nil); got != 75 {
		t.Fatalf("expected 75 for one empty, got %d", got)
	}
}

func TestCalculateGeneticDiversity_RatioMinusPenalty(t *testing.T) {
	// Golden del modelo elegido: 8 y 8 tokens, 2 compartidos.
	// unicos=14, total=16 => 87.5; menos 15*2 => 57.5; round => 58.
	a := []string{"T1", "T2", "T3", "T4", "T5", "T6", "S1", "S2"}
	b := []string{"U1", "U2", "U3", "U4", "U5", "U6", "S1", "S2"}
	common := FindCommonAncestors(a, b)

	if len(common) != 2 {
		t.Fatalf("fixture broken: expected 2 common, got %v", common)
	}
	if got := CalculateGeneticDiversity(a, b, common); got != 58 {
		t.Fatalf("expected 58, got %d", got)
	}
}

func TestCalculateGeneticDiversity_FloorAndBounds(t *testing.T) {
	// Mucho solapamiento: el piso de 20 evita score negativo.
	a := []string{"A", "B", "C", "D", "E", "F", "G", "H"}
	got := CalculateGeneticDiversity(a, a, a)
	if got != 20 {
		t.Fatalf("expected floor 20, got %d", got)
	}

	// Sin solapamiento: ratio 1 => 100.
	b := []string{"X", "Y", "Z"}
	c := []string{"Q", "R", "S"}
	if got := CalculateGeneticDiversity(b, c, nil); got != 100 {
		t.Fatalf("expected 100 for disjoint lineages, got %d", got)
	}
}

func TestCalculateCompatibilityScore_BreakdownSumsToTotal(t *testing.T) {
	catalog := species.Defaults()
	male := bovino("m1", "Toro", animals.GenderMale)
	female := bovino("f1", "Vaca", animals.GenderFemale)

	lin := []string{"A", "B", "C"}
	score, bd := CalculateCompatibilityScore(male, female, 0.0625, 70, lin, lin, catalog)

	if score < 0 || score > 100 {
		t.Fatalf("score out of range: %d", score)
	}
	if math.Abs(bd.Total()-float64(score)) > 0.5 {
		t.Fatalf("breakdown %+v does not sum to score %d", bd, score)
	}
}

func TestCalculateCompatibilityScore_NonIncreasingInCoefficient(t *testing.T) {
	catalog := species.Defaults()
	male := bovino("m1", "Toro", animals.GenderMale)
	female := bovino("f1", "Vaca", animals.GenderFemale)

	prev := 101
	for _, coef := range []float64{0, 0.0625, 0.125, 0.25, 0.5} {
		score, _ := CalculateCompatibilityScore(male, female, coef, 70, nil, nil, catalog)
		if score > prev {
			t.Fatalf("score increased with coefficient %v: %d > %d", coef, score, prev)
		}
		prev = score
	}
}

func TestBreedScore_Tiers(t *testing.T) {
	catalog := species.Defaults()

	m := bovino("m1", "Toro", animals.GenderMale)
	f := bovino("f1", "Vaca", animals.GenderFemale)

	// Ambos de la misma raza especial.
	m.Breed, f.Breed = "criollo", "Criollo"
	if got := breedScore(m, f, catalog); got != breedScoreBothSpecial {
		t.Fatalf("expected %d for both special, got %d", breedScoreBothSpecial, got)
	}

	// Misma raza ordinaria.
	m.Breed, f.Breed = "holstein", "holstein"
	if got := breedScore(m, f, catalog); got != breedScoreSameBreed {
		t.Fatalf("expected %d for same breed, got %d", breedScoreSameBreed, got)
	}

	// Solo uno especial.
	m.Breed, f.Breed = "criollo", "holstein"
	if got := breedScore(m, f, catalog); got != breedScoreOneSpecial {
		t.Fatalf("expected %d for one special, got %d", breedScoreOneSpecial, got)
	}

	// Resto.
	m.Breed, f.Breed = "holstein", "normando"
	if got := breedScore(m, f, catalog); got != breedScoreDefault {
		t.Fatalf("expected %d default, got %d", breedScoreDefault, got)
	}
}

func TestPedigreeCompleteness_FullAtEightSlots(t *testing.T) {
	m := bovino("m1", "Toro", animals.GenderMale)
	f := bovino("f1", "Vaca", animals.GenderFemale)
	m.Ancestry = eightSlotAncestry("T")
	f.Ancestry = eightSlotAncestry("U")

	if got := pedigreeCompleteness(m, f); got != 100 {
		t.Fatalf("expected 100 with 8 slots each, got %v", got)
	}

	// Sin pedigrí: 0.
	if got := pedigreeCompleteness(bovino("a", "A", animals.GenderMale), bovino("b", "B", animals.GenderFemale)); got != 0 {
		t.Fatalf("expected 0 without pedigree, got %v", got)
	}
}

func TestClassifyRisk_SpeciesThresholds(t *testing.T) {
	catalog := species.Defaults()

	// bovino: lowMax 0.0625, moderateMax 0.125
	if got := ClassifyRisk(0, species.SpeciesBovino, catalog); got != RiskLow {
		t.Fatalf("expected low, got %s", got)
	}
	if got := ClassifyRisk(0.0625, species.SpeciesBovino, catalog); got != RiskLow {
		t.Fatalf("expected low at lowMax boundary, got %s", got)
	}
	if got := ClassifyRisk(0.125, species.SpeciesBovino, catalog); got != RiskModerate {
		t.Fatalf("expected moderate at moderateMax boundary, got %s", got)
	}
	if got := ClassifyRisk(0.1875, species.SpeciesBovino, catalog); got != RiskHigh {
		t.Fatalf("expected high, got %s", got)
	}

	// Especie desconocida usa el fallback conservador (moderateMax 0.0625).
	if got := ClassifyRisk(0.125, "camelido", catalog); got != RiskHigh {
		t.Fatalf("expected high with fallback thresholds, got %s", got)
	}
}

// -------------------------
// fixtures
// -------------------------

func bovino(id, name string, g animals.Gender) animals.Animal {
	return animals.Animal{
		ID:           id,
		OwnerUserID:  "owner-1",
		Name:         name,
		Species:      species.SpeciesBovino,
		Gender:       g,
		HealthStatus: animals.HealthHealthy,
	}
}

func eightSlotAncestry(prefix string) animals.Ancestry {
	return animals.Ancestry{
		FatherID:              prefix + "1",
		MotherID:              prefix + "2",
		PaternalGrandfatherID: prefix + "3",
		PaternalGrandmotherID: prefix + "4",
		MaternalGrandfatherID: prefix + "5",
		MaternalGrandmotherID: prefix + "6",
		GreatGrandparents:     [8]string{prefix + "7", prefix + "8"},
	}
}
