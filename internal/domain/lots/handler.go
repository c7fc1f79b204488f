package lots

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"livestock-management/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	// Lotes (solo owner; no se delegan por grants)
	r.Route("/lots", func(lr chi.Router) {
		lr.Post("/", createLotHandler(svc))
		lr.Get("/", listLotsHandler(svc))

		lr.Route("/{lotID}", func(one chi.Router) {
			one.Get("/", getLotHandler(svc))
			one.Patch("/", updateLotHandler(svc))

			// Mover animales entre lotes
			one.Post("/animals/{animalID}", assignAnimalHandler(svc))
			one.Delete("/animals/{animalID}", unassignAnimalHandler(svc))
		})
	})
}

type createLotRequest struct {
	Name         string  `json:"name"`
	AreaHectares float64 `json:"area_hectares"`
	Capacity     int     `json:"capacity"`
	Notes        string  `json:"notes"`
}

type updateLotRequest struct {
	// Punteros para PATCH real: nil = no tocar.
	Name         *string  `json:"name"`
	AreaHectares *float64 `json:"area_hectares"`
	Capacity     *int     `json:"capacity"`
	Notes        *string  `json:"notes"`
}

type lotResponse struct {
	ID           string    `json:"id"`
	OwnerUserID  string    `json:"owner_user_id"`
	Name         string    `json:"name"`
	AreaHectares float64   `json:"area_hectares"`
	Capacity     int       `json:"capacity"`
	Notes        string    `json:"notes"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Ocupación calculada on demand (solo en GET por ID).
	Occupancy *occupancyResponse `json:"occupancy,omitempty"`
}

type occupancyResponse struct {
	HeadCount int  `json:"head_count"`
	Capacity  int  `json:"capacity"`
	Full      bool `json:"full"`
}

func createLotHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createLotRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		l, err := svc.Create(r.Context(), claims.UserID, CreateInput{
			Name:         req.Name,
			AreaHectares: req.AreaHectares,
			Capacity:     req.Capacity,
			Notes:        req.Notes,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusCreated, toLotResponse(l, nil))
	}
}

func listLotsHandler(svc *Service) http.HandlerFunc {
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

		out := make([]lotResponse, 0, len(items))
		for _, l := range items {
			out = append(out, toLotResponse(l, nil))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getLotHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		lotID := chi.URLParam(r, "lotID")
		l, err := svc.GetByID(r.Context(), lotID)
		if err != nil || l.OwnerUserID != claims.UserID {
			http.Error(w, "lot not found", http.StatusNotFound)
			return
		}

		occ, err := svc.OccupancyOf(r.Context(), l)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, toLotResponse(l, &occ))
	}
}

func updateLotHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		lotID := chi.URLParam(r, "lotID")
		current, err := svc.GetByID(r.Context(), lotID)
		if err != nil || current.OwnerUserID != claims.UserID {
			http.Error(w, "lot not found", http.StatusNotFound)
			return
		}

		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()

		var req updateLotRequest
		if err := dec.Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		updated, err := svc.Update(r.Context(), lotID, UpdateInput{
			Name:         req.Name,
			AreaHectares: req.AreaHectares,
			Capacity:     req.Capacity,
			Notes:        req.Notes,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrNotFound):
				http.Error(w, "lot not found", http.StatusNotFound)
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, err.Error(), http.StatusBadRequest)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, toLotResponse(updated, nil))
	}
}

func assignAnimalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		lotID := chi.URLParam(r, "lotID")
		animalID := chi.URLParam(r, "animalID")

		l, err := svc.GetByID(r.Context(), lotID)
		if err != nil || l.OwnerUserID != claims.UserID {
			http.Error(w, "lot not found", http.StatusNotFound)
			return
		}

		a, err := svc.Assign(r.Context(), lotID, animalID)
		if err != nil {
			switch {
			case errors.Is(err, ErrNotFound):
				http.Error(w, "animal not found", http.StatusNotFound)
			case errors.Is(err, ErrLotFull):
				http.Error(w, err.Error(), http.StatusConflict)
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, err.Error(), http.StatusBadRequest)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{
			"animal_id": a.ID,
			"lot_id":    a.LotID,
		})
	}
}

func unassignAnimalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		lotID := chi.URLParam(r, "lotID")
		animalID := chi.URLParam(r, "animalID")

		l, err := svc.GetByID(r.Context(), lotID)
		if err != nil || l.OwnerUserID != claims.UserID {
			http.Error(w, "lot not found", http.StatusNotFound)
			return
		}

		a, err := svc.Unassign(r.Context(), lotID, animalID)
		if err != nil {
			switch {
			case errors.Is(err, ErrNotFound):
				http.Error(w, "animal not found", http.StatusNotFound)
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, err.Error(), http.StatusBadRequest)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{
			"animal_id": a.ID,
			"lot_id":    a.LotID,
		})
	}
}

func toLotResponse(l Lot, occ *Occupancy) lotResponse {
	out := lotResponse{
		ID:           l.ID,
		OwnerUserID:  l.OwnerUserID,
		Name:         l.Name,
		AreaHectares: l.AreaHectares,
		Capacity:     l.Capacity,
		Notes:        l.Notes,
		CreatedAt:    l.CreatedAt,
		UpdatedAt:    l.UpdatedAt,
	}
	if occ != nil {
		out.Occupancy = &occupancyResponse{
			HeadCount: occ.HeadCount,
			Capacity:  occ.Capacity,
			Full:      occ.Full,
		}
	}
	return out
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
