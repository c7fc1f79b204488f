package animals

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"livestock-management/internal/domain/grants"
	"livestock-management/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, grantsSvc *grants.Service) {
	// Animales (owner)
	r.Route("/animals", func(ar chi.Router) {
		ar.Post("/", createAnimalHandler(svc))
		ar.Get("/", listAnimalsHandler(svc))

		// Perfil del animal (owner o delegado con animals:read)
		ar.Get("/{animalID}", getAnimalHandler(svc, grantsSvc))

		// Actualizar animal (owner o delegado con animals:edit)
		ar.Patch("/{animalID}", updateAnimalHandler(svc, grantsSvc))
	})

	// Hatos compartidos conmigo (delegado)
	r.Get("/me/herds", listMySharedHerdsHandler(svc, grantsSvc))
}

type ancestryPayload struct {
	FatherID string `json:"father_id"`
	MotherID string `json:"mother_id"`

	PaternalGrandfatherID string `json:"paternal_grandfather_id"`
	PaternalGrandmotherID string `json:"paternal_grandmother_id"`
	MaternalGrandfatherID string `json:"maternal_grandfather_id"`
	MaternalGrandmotherID string `json:"maternal_grandmother_id"`

	// Bisabuelos en orden fijo (línea paterna primero). Máximo 8.
	GreatGrandparents []string `json:"great_grandparents"`
}

func (p ancestryPayload) toAncestry() Ancestry {
	a := Ancestry{
		FatherID:              p.FatherID,
		MotherID:              p.MotherID,
		PaternalGrandfatherID: p.PaternalGrandfatherID,
		PaternalGrandmotherID: p.PaternalGrandmotherID,
		MaternalGrandfatherID: p.MaternalGrandfatherID,
		MaternalGrandmotherID: p.MaternalGrandmotherID,
	}
	for i, g := range p.GreatGrandparents {
		if i >= len(a.GreatGrandparents) {
			break
		}
		a.GreatGrandparents[i] = g
	}
	return a
}

func toAncestryPayload(a Ancestry) ancestryPayload {
	return ancestryPayload{
		FatherID:              a.FatherID,
		MotherID:              a.MotherID,
		PaternalGrandfatherID: a.PaternalGrandfatherID,
		PaternalGrandmotherID: a.PaternalGrandmotherID,
		MaternalGrandfatherID: a.MaternalGrandfatherID,
		MaternalGrandmotherID: a.MaternalGrandmotherID,
		GreatGrandparents:     append([]string(nil), a.GreatGrandparents[:]...),
	}
}

type createAnimalRequest struct {
	Name         string           `json:"name"`
	Tag          string           `json:"tag"`
	Species      string           `json:"species"`
	Gender       string           `json:"gender"` // acepta sinónimos: macho/hembra/m/h/f
	Breed        string           `json:"breed"`
	HealthStatus string           `json:"health_status"`
	BirthDate    string           `json:"birth_date"` // YYYY-MM-DD opcional
	Ancestry     *ancestryPayload `json:"ancestry"`
	Notes        string           `json:"notes"`
}

type animalResponse struct {
	ID           string          `json:"id"`
	OwnerUserID  string          `json:"owner_user_id"`
	Name         string          `json:"name"`
	Tag          string          `json:"tag"`
	Species      string          `json:"species"`
	Gender       string          `json:"gender"`
	Breed        string          `json:"breed"`
	HealthStatus string          `json:"health_status"`
	BirthDate    *time.Time      `json:"birth_date,omitempty"`
	LotID        string          `json:"lot_id,omitempty"`
	Ancestry     ancestryPayload `json:"ancestry"`
	Notes        string          `json:"notes"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

type updateAnimalRequest struct {
	// Punteros para PATCH real: nil = no tocar.
	Name         *string          `json:"name"`
	Tag          *string          `json:"tag"`
	Breed        *string          `json:"breed"`
	Gender       *string          `json:"gender"`
	HealthStatus *string          `json:"health_status"`
	Notes        *string          `json:"notes"`
	Ancestry     *ancestryPayload `json:"ancestry"`
}

type sharedHerdResponse struct {
	OwnerUserID string             `json:"owner_user_id"`
	Grant       sharedGrantSummary `json:"grant"`
	Scopes      []grants.Scope     `json:"scopes"` // redundante pero útil para UI
	Animals     []animalResponse   `json:"animals"`
}

type sharedGrantSummary struct {
	ID     string        `json:"id"`
	Status grants.Status `json:"status"`
}

func createAnimalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createAnimalRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var bd *time.Time
		if strings.TrimSpace(req.BirthDate) != "" {
			t, err := time.Parse("2006-01-02", req.BirthDate)
			if err != nil {
				http.Error(w, "birth_date must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			bd = &t
		}

		var anc Ancestry
		if req.Ancestry != nil {
			anc = req.Ancestry.toAncestry()
		}

		a, err := svc.Create(r.Context(), claims.UserID, CreateInput{
			Name:         req.Name,
			Tag:          req.Tag,
			Species:      req.Species,
			Gender:       req.Gender,
			Breed:        req.Breed,
			HealthStatus: req.HealthStatus,
			BirthDate:    bd,
			Ancestry:     anc,
			Notes:        req.Notes,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusCreated, toAnimalResponse(a))
	}
}

func listAnimalsHandler(svc *Service) http.HandlerFunc {
	// Owner-only (el hato propio; los compartidos van por /me/herds)
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListByOwner(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]animalResponse, 0, len(items))
		for _, a := range items {
			out = append(out, toAnimalResponse(a))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

func getAnimalHandler(svc *Service, grantsSvc *grants.Service) http.HandlerFunc {
	// Owner bypass, delegado requiere animals:read
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		animalID := chi.URLParam(r, "animalID")
		a, err := svc.GetByID(r.Context(), animalID)
		if err != nil {
			http.Error(w, "animal not found", http.StatusNotFound)
			return
		}

		if !grantsSvc.Allowed(r.Context(), a.OwnerUserID, claims.UserID, grants.ScopeAnimalsRead) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		writeJSON(w, http.StatusOK, toAnimalResponse(a))
	}
}

// updateAnimalHandler aplica permisos:
// - owner bypass
// - delegado requiere grant activo + scope animals:edit
func updateAnimalHandler(svc *Service, grantsSvc *grants.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		animalID := chi.URLParam(r, "animalID")
		current, err := svc.GetByID(r.Context(), animalID)
		if err != nil {
			http.Error(w, "animal not found", http.StatusNotFound)
			return
		}

		if !grantsSvc.Allowed(r.Context(), current.OwnerUserID, claims.UserID, grants.ScopeAnimalsEdit) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()

		var req updateAnimalRequest
		if err := dec.Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		in := UpdateInput{
			Name:         req.Name,
			Tag:          req.Tag,
			Breed:        req.Breed,
			Gender:       req.Gender,
			HealthStatus: req.HealthStatus,
			Notes:        req.Notes,
		}
		if req.Ancestry != nil {
			anc := req.Ancestry.toAncestry()
			in.Ancestry = &anc
		}

		updated, err := svc.UpdateProfile(r.Context(), animalID, in)
		if err != nil {
			switch {
			case errors.Is(err, ErrNotFound):
				http.Error(w, "animal not found", http.StatusNotFound)
			case errors.Is(err, ErrInvalidInput),
				errors.Is(err, ErrInvalidGender),
				errors.Is(err, ErrInvalidStatus),
				errors.Is(err, ErrSelfAncestor):
				http.Error(w, err.Error(), http.StatusBadRequest)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, toAnimalResponse(updated))
	}
}

func listMySharedHerdsHandler(svc *Service, grantsSvc *grants.Service) http.HandlerFunc {
	// Devuelve hatos compartidos conmigo (grants active con animals:read)
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		gs, err := grantsSvc.ListByGrantee(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		seen := map[string]struct{}{}
		out := make([]sharedHerdResponse, 0)

		for _, g := range gs {
			if g.Status != grants.StatusActive {
				continue
			}
			// Para listar el hato exigimos animals:read.
			if !grants.HasScope(g, grants.ScopeAnimalsRead) {
				continue
			}
			if _, ok := seen[g.OwnerUserID]; ok {
				continue
			}
			seen[g.OwnerUserID] = struct{}{}

			herd, err := svc.ListByOwner(r.Context(), g.OwnerUserID)
			if err != nil {
				// tolera grants huérfanos en MVP in-memory
				continue
			}

			animals := make([]animalResponse, 0, len(herd))
			for _, a := range herd {
				animals = append(animals, toAnimalResponse(a))
			}

			out = append(out, sharedHerdResponse{
				OwnerUserID: g.OwnerUserID,
				Grant: sharedGrantSummary{
					ID:     g.ID,
					Status: g.Status,
				},
				Scopes:  g.Scopes,
				Animals: animals,
			})
		}

		writeJSON(w, http.StatusOK, out)
	}
}

func toAnimalResponse(a Animal) animalResponse {
	return animalResponse{
		ID:           a.ID,
		OwnerUserID:  a.OwnerUserID,
		Name:         a.Name,
		Tag:          a.Tag,
		Species:      string(a.Species),
		Gender:       string(a.Gender),
		Breed:        a.Breed,
		HealthStatus: string(a.HealthStatus),
		BirthDate:    a.BirthDate,
		LotID:        a.LotID,
		Ancestry:     toAncestryPayload(a.Ancestry),
		Notes:        a.Notes,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
