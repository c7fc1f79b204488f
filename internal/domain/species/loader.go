package species

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// fileConfig es el shape del yaml de override.
// Solo las especies presentes en el archivo reemplazan al default;
// el resto del catálogo compilado se mantiene.
type fileConfig struct {
	Species map[string]Profile `yaml:"species"`
}

// Load arma el catálogo: defaults compilados + overrides del archivo yaml
// si path no está vacío.
func Load(path string) (*Config, error) {
	cfg := Defaults()
	if path == "" {
		return cfg, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("species config: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(b, &fc); err != nil {
		return nil, fmt.Errorf("species config: parse %s: %w", path, err)
	}

	for name, p := range fc.Species {
		sp := normalize(Species(name))
		if sp == "" {
			continue
		}
		cfg.profiles[sp] = p
	}

	return cfg, nil
}

// LoadFromEnv lee SPECIES_CONFIG; sin la variable usa los defaults.
func LoadFromEnv() (*Config, error) {
	return Load(os.Getenv("SPECIES_CONFIG"))
}
