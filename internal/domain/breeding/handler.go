package breeding

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"livestock-management/internal/domain/animals"
	"livestock-management/internal/domain/grants"
	"livestock-management/internal/domain/species"
	"livestock-management/internal/middleware"
	"livestock-management/internal/ports/capabilities"

	"github.com/go-chi/chi/v5"
)

// CapabilitySuggestions es la feature de plan que habilita el batch de
// sugerencias (el análisis de un par siempre está disponible).
const CapabilitySuggestions = "breeding.suggestions"

func RegisterRoutes(r chi.Router, az *Analyzer, animalsSvc *animals.Service, grantsSvc *grants.Service, caps capabilities.Resolver) {
	r.Route("/breeding", func(br chi.Router) {
		br.Post("/analyze", analyzePairHandler(az, animalsSvc, grantsSvc))
		br.Get("/suggestions", suggestPairsHandler(az, animalsSvc, grantsSvc, caps))
	})
}

// analyzePairRequest identifica la pareja a analizar. Los campos aceptan
// ID canónico, nombre o chapeta (se resuelven contra el hato del dueño).
type analyzePairRequest struct {
	MaleID   string `json:"male_id"`
	FemaleID string `json:"female_id"`
}

// analyzePairHandler godoc
// @Summary Analizar compatibilidad reproductiva de una pareja
// @Description Ejecuta el análisis completo macho x hembra: parentesco directo (veto duro), ancestros comunes, coeficiente de consanguinidad, diversidad genética, score de compatibilidad, banda de riesgo y recomendaciones. El dueño del hato siempre puede analizar; un delegado necesita un grant activo con scope `breeding:analyze`. Los animales deben ser de la misma especie y la pareja macho x hembra.
// @Tags breeding
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body analyzePairRequest true "Identificadores de la pareja (ID, nombre o chapeta)"
// @Success 200 {object} PairAnalysis
// @Failure 400 {string} string "precondición violada (especie/género/mismo animal)"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "animal not found"
// @Router /breeding/analyze [post]
func analyzePairHandler(az *Analyzer, animalsSvc *animals.Service, grantsSvc *grants.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req analyzePairRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		male, err := lookupAnimal(r, animalsSvc, claims.UserID, req.MaleID)
		if err != nil {
			http.Error(w, "male animal not found", http.StatusNotFound)
			return
		}
		female, err := lookupAnimal(r, animalsSvc, claims.UserID, req.FemaleID)
		if err != nil {
			http.Error(w, "female animal not found", http.StatusNotFound)
			return
		}

		// Permisos por animal: owner bypass o breeding:analyze.
		for _, a := range []animals.Animal{male, female} {
			if !grantsSvc.Allowed(r.Context(), a.OwnerUserID, claims.UserID, grants.ScopeBreedingAnalyze) {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
		}

		result, err := az.AnalyzePair(r.Context(), male, female)
		if err != nil {
			switch {
			case errors.Is(err, ErrSpeciesMismatch),
				errors.Is(err, ErrInvalidGender),
				errors.Is(err, ErrGenderMismatch),
				errors.Is(err, ErrSameAnimal):
				http.Error(w, err.Error(), http.StatusBadRequest)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, result)
	}
}

// suggestPairsHandler godoc
// @Summary Sugerir parejas de cruce para el hato
// @Description Analiza todas las combinaciones macho x hembra del hato y devuelve la lista ordenada por score descendente (empates por nombre). Los pares bloqueados por parentesco se incluyen marcados. Requiere la capability de plan `breeding.suggestions`. Por defecto opera sobre el hato propio; con `owner_id` un delegado con scope `breeding:analyze` puede operar sobre un hato compartido.
// @Tags breeding
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param species query string false "Filtrar por especie (ej: bovino)"
// @Param owner_id query string false "Dueño del hato (por defecto el usuario autenticado)"
// @Success 200 {array} PairAnalysis
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden / feature not available"
// @Failure 500 {string} string "internal error"
// @Failure 503 {string} string "capabilities unavailable"
// @Router /breeding/suggestions [get]
func suggestPairsHandler(az *Analyzer, animalsSvc *animals.Service, grantsSvc *grants.Service, caps capabilities.Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		ownerID := strings.TrimSpace(r.URL.Query().Get("owner_id"))
		if ownerID == "" {
			ownerID = claims.UserID
		}
		if !grantsSvc.Allowed(r.Context(), ownerID, claims.UserID, grants.ScopeBreedingAnalyze) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		if caps != nil {
			has, err := caps.Has(r.Context(), claims.UserID, CapabilitySuggestions)
			if err != nil {
				http.Error(w, "capabilities unavailable", http.StatusServiceUnavailable)
				return
			}
			if !has {
				http.Error(w, "feature not available", http.StatusForbidden)
				return
			}
		}

		sp := species.Species(strings.ToLower(strings.TrimSpace(r.URL.Query().Get("species"))))

		herd, err := animalsSvc.ListByOwner(r.Context(), ownerID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, az.SuggestPairs(r.Context(), herd, sp))
	}
}

// lookupAnimal acepta ID canónico o referencia suelta (nombre/chapeta)
// resuelta contra el hato del usuario autenticado.
func lookupAnimal(r *http.Request, animalsSvc *animals.Service, userID, ref string) (animals.Animal, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return animals.Animal{}, animals.ErrInvalidInput
	}

	if a, err := animalsSvc.GetByID(r.Context(), ref); err == nil {
		return a, nil
	}

	id, err := animalsSvc.ResolveRef(r.Context(), userID, ref)
	if err != nil || id == "" {
		return animals.Animal{}, animals.ErrNotFound
	}
	return animalsSvc.GetByID(r.Context(), id)
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
