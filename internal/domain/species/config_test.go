package species

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults_KnownSpecies(t *testing.T) {
	cfg := Defaults()

	p, ok := cfg.Lookup(SpeciesBovino)
	if !ok {
		t.Fatalf("expected bovino in catalog")
	}
	if p.GestationDays != 283 {
		t.Fatalf("expected 283 gestation days for bovino, got %d", p.GestationDays)
	}
	if p.Thresholds.LowMax <= 0 || p.Thresholds.ModerateMax <= p.Thresholds.LowMax {
		t.Fatalf("invalid thresholds: %+v", p.Thresholds)
	}
}

func TestLookup_UnknownSpecies_FallsBack(t *testing.T) {
	cfg := Defaults()

	p, ok := cfg.Lookup("camelido")
	if ok {
		t.Fatalf("expected fallback for unknown species")
	}
	// Fallback conservador: banda moderada más estrecha que el default bovino.
	bov, _ := cfg.Lookup(SpeciesBovino)
	if p.Thresholds.ModerateMax >= bov.Thresholds.ModerateMax {
		t.Fatalf("fallback thresholds should be stricter, got %+v", p.Thresholds)
	}
}

func TestLookup_NormalizesCaseAndSpaces(t *testing.T) {
	cfg := Defaults()
	if _, ok := cfg.Lookup("  BOVINO "); !ok {
		t.Fatalf("expected lookup to normalize species tag")
	}
}

func TestIsSpecialBreed(t *testing.T) {
	cfg := Defaults()

	if !cfg.IsSpecialBreed(SpeciesBovino, "Criollo") {
		t.Fatalf("expected criollo to be special for bovino")
	}
	if cfg.IsSpecialBreed(SpeciesBovino, "holstein") {
		t.Fatalf("holstein should not be special")
	}
	if cfg.IsSpecialBreed(SpeciesBovino, "") {
		t.Fatalf("empty breed should not be special")
	}
}

func TestIsBreedingMonth(t *testing.T) {
	cfg := Defaults()

	if !cfg.IsBreedingMonth(SpeciesBovino, 4) {
		t.Fatalf("april should be breeding month for bovino")
	}
	if cfg.IsBreedingMonth(SpeciesBovino, 12) {
		t.Fatalf("december should not be breeding month for bovino")
	}
	// porcino no tiene ventana => siempre true
	if !cfg.IsBreedingMonth(SpeciesPorcino, 12) {
		t.Fatalf("porcino breeds year-round")
	}
}

func TestLoad_YAMLOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "species.yaml")

	content := []byte(`
species:
  bovino:
    gestation_days: 285
    breeding_months: [1, 2]
    thresholds:
      low_max: 0.05
      moderate_max: 0.1
    special_breeds: ["hartón del valle"]
`)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	p, ok := cfg.Lookup(SpeciesBovino)
	if !ok {
		t.Fatalf("expected bovino after override")
	}
	if p.GestationDays != 285 {
		t.Fatalf("expected override gestation 285, got %d", p.GestationDays)
	}
	if !cfg.IsSpecialBreed(SpeciesBovino, "Hartón del Valle") {
		t.Fatalf("expected overridden special breed")
	}

	// Las especies no mencionadas en el yaml conservan el default.
	if _, ok := cfg.Lookup(SpeciesEquino); !ok {
		t.Fatalf("equino default should survive override")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/species.yaml"); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
