package breeding

import (
	"strings"

	"livestock-management/internal/domain/animals"
)

// ExtractLineage aplana los 14 slots de ancestros de un animal en una
// lista de tokens normalizados (mayúsculas, sin espacios sobrantes),
// en el orden fijo de slots, sin repetidos y omitiendo vacíos.
// Nunca falla: un slot en blanco simplemente no aparece.
func ExtractLineage(a animals.Animal) []string {
	slots := a.Ancestry.Slots()

	out := make([]string, 0, len(slots))
	seen := make(map[string]struct{}, len(slots))

	for _, s := range slots {
		tok := strings.ToUpper(strings.TrimSpace(s))
		if tok == "" {
			continue
		}
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		out = append(out, tok)
	}
	return out
}

// FindCommonAncestors intersecta dos linajes. El orden del resultado
// sigue al primer argumento; el contenido es simétrico.
func FindCommonAncestors(a, b []string) []string {
	inB := make(map[string]struct{}, len(b))
	for _, tok := range b {
		inB[tok] = struct{}{}
	}

	out := make([]string, 0)
	seen := make(map[string]struct{})
	for _, tok := range a {
		if _, ok := inB[tok]; !ok {
			continue
		}
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		out = append(out, tok)
	}
	return out
}
