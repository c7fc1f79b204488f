package records

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"livestock-management/internal/domain/animals"
	"livestock-management/internal/domain/grants"
	"livestock-management/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, animalsSvc *animals.Service, grantsSvc *grants.Service) {
	r.Route("/animals/{animalID}/records", func(rr chi.Router) {
		rr.Post("/", createRecordHandler(svc, animalsSvc, grantsSvc))
		rr.Get("/", listRecordsHandler(svc, animalsSvc, grantsSvc))

		// Anular (void) un registro (owner o delegado con records:void)
		rr.Post("/{recordID}/void", voidRecordHandler(svc, animalsSvc, grantsSvc))
	})
}

// createRecordRequest es el cuerpo para registrar una entrada del historial.
type createRecordRequest struct {
	Type       RecordType `json:"type" enums:"VACCINE,DEWORMING,TREATMENT,WEIGHT_RECORDED,BIRTH,BREEDING_SERVICE,STATUS_CHANGE,NOTE"`
	OccurredAt string     `json:"occurred_at"` // RFC3339
	Title      string     `json:"title"`
	Notes      string     `json:"notes"`
	WeightKg   float64    `json:"weight_kg"` // solo para WEIGHT_RECORDED
	Source     Source     `json:"source"`    // opcional
}

// recordResponse representa una entrada del historial devuelta por la API.
type recordResponse struct {
	ID         string       `json:"id"`
	AnimalID   string       `json:"animal_id"`
	Type       RecordType   `json:"type"`
	OccurredAt time.Time    `json:"occurred_at"`
	RecordedAt time.Time    `json:"recorded_at"`
	Title      string       `json:"title"`
	Notes      string       `json:"notes"`
	WeightKg   float64      `json:"weight_kg,omitempty"`
	ActorType  ActorType    `json:"actor_type"`
	ActorID    string       `json:"actor_id"`
	Source     Source       `json:"source"`
	Status     RecordStatus `json:"status"`
}

// createRecordHandler godoc
// @Summary Crear registro de manejo/sanidad
// @Description Crea una entrada en el historial del animal indicado. El dueño del hato siempre puede crear registros. Un delegado necesita un grant activo con scope `records:create`. Autenticación: `X-Debug-User-ID` (dev) o `Authorization: Bearer <token>` (prod).
// @Tags records
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param animalID path string true "ID del animal"
// @Param payload body createRecordRequest true "Datos del registro; occurred_at en formato RFC3339"
// @Success 201 {object} recordResponse
// @Failure 400 {string} string "invalid json / occurred_at inválido / reglas de negocio"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "animal not found"
// @Router /animals/{animalID}/records [post]
func createRecordHandler(svc *Service, animalsSvc *animals.Service, grantsSvc *grants.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		animalID := chi.URLParam(r, "animalID")
		a, err := animalsSvc.GetByID(r.Context(), animalID)
		if err != nil {
			http.Error(w, "animal not found", http.StatusNotFound)
			return
		}

		actorType := ActorTypeOwnerUser
		if a.OwnerUserID != claims.UserID {
			if !grantsSvc.Allowed(r.Context(), a.OwnerUserID, claims.UserID, grants.ScopeRecordsCreate) {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
			actorType = ActorTypeDelegateUser
		}

		var req createRecordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		t, err := time.Parse(time.RFC3339, req.OccurredAt)
		if err != nil {
			http.Error(w, "occurred_at must be RFC3339", http.StatusBadRequest)
			return
		}

		rec, err := svc.Create(r.Context(), animalID, Actor{
			Type: actorType,
			ID:   claims.UserID,
		}, CreateInput{
			Type:       req.Type,
			OccurredAt: t,
			Title:      req.Title,
			Notes:      req.Notes,
			WeightKg:   req.WeightKg,
			Source:     req.Source,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusCreated, toRecordResponse(rec))
	}
}

// listRecordsHandler godoc
// @Summary Listar historial de un animal
// @Description Lista las entradas de manejo/sanidad de un animal. El dueño siempre puede verlas. Un delegado necesita un grant activo con scope `records:read`. Permite filtrar por tipos y rango de fechas.
// @Tags records
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param animalID path string true "ID del animal"
// @Param limit query int false "Máximo de registros a devolver (1-200). Por defecto 50"
// @Param types query string false "Lista CSV de tipos a incluir (ej: VACCINE,WEIGHT_RECORDED)"
// @Param from query string false "Fecha/hora mínima occurred_at (RFC3339)"
// @Param to query string false "Fecha/hora máxima occurred_at (RFC3339)"
// @Success 200 {array} recordResponse
// @Failure 400 {string} string "Parámetros de filtro inválidos"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "animal not found"
// @Failure 500 {string} string "internal error"
// @Router /animals/{animalID}/records [get]
func listRecordsHandler(svc *Service, animalsSvc *animals.Service, grantsSvc *grants.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		animalID := chi.URLParam(r, "animalID")
		a, err := animalsSvc.GetByID(r.Context(), animalID)
		if err != nil {
			http.Error(w, "animal not found", http.StatusNotFound)
			return
		}

		if !grantsSvc.Allowed(r.Context(), a.OwnerUserID, claims.UserID, grants.ScopeRecordsRead) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		filter, err := parseListFilter(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		items, err := svc.ListByAnimal(r.Context(), animalID, filter)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]recordResponse, 0, len(items))
		for _, rec := range items {
			out = append(out, toRecordResponse(rec))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

// voidRecordHandler godoc
// @Summary Anular (void) un registro
// @Description Anula una entrada existente del historial del animal. El dueño siempre puede anular. Un delegado necesita un grant activo con scope `records:void`.
// @Tags records
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param animalID path string true "ID del animal"
// @Param recordID path string true "ID del registro"
// @Success 200 {object} recordResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "record not found"
// @Failure 500 {string} string "internal error"
// @Router /animals/{animalID}/records/{recordID}/void [post]
func voidRecordHandler(svc *Service, animalsSvc *animals.Service, grantsSvc *grants.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		animalID := chi.URLParam(r, "animalID")
		recordID := chi.URLParam(r, "recordID")

		a, err := animalsSvc.GetByID(r.Context(), animalID)
		if err != nil {
			http.Error(w, "animal not found", http.StatusNotFound)
			return
		}

		// Permisos primero, para no filtrar si existe el registro.
		if !grantsSvc.Allowed(r.Context(), a.OwnerUserID, claims.UserID, grants.ScopeRecordsVoid) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		// El registro existe y pertenece al animal
		rec, err := svc.GetByID(r.Context(), recordID)
		if err != nil || strings.TrimSpace(rec.ID) == "" || rec.AnimalID != animalID {
			http.Error(w, "record not found", http.StatusNotFound)
			return
		}

		updated, err := svc.Void(r.Context(), recordID)
		if err != nil {
			if strings.Contains(strings.ToLower(err.Error()), "not found") {
				http.Error(w, "record not found", http.StatusNotFound)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, toRecordResponse(updated))
	}
}

func parseListFilter(r *http.Request) (ListFilter, error) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}

	filter := ListFilter{Limit: limit}

	// types=VACCINE,WEIGHT_RECORDED
	if v := strings.TrimSpace(r.URL.Query().Get("types")); v != "" {
		parts := strings.Split(v, ",")
		out := make([]RecordType, 0, len(parts))
		for _, p := range parts {
			t := RecordType(strings.TrimSpace(p))
			if t == "" {
				continue
			}
			out = append(out, t)
		}
		if len(out) > 0 {
			filter.Types = out
		}
	}

	// from/to RFC3339
	if v := strings.TrimSpace(r.URL.Query().Get("from")); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return ListFilter{}, errors.New("from must be RFC3339")
		}
		filter.From = &t
	}
	if v := strings.TrimSpace(r.URL.Query().Get("to")); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return ListFilter{}, errors.New("to must be RFC3339")
		}
		filter.To = &t
	}

	return filter, nil
}

func toRecordResponse(rec AnimalRecord) recordResponse {
	return recordResponse{
		ID:         rec.ID,
		AnimalID:   rec.AnimalID,
		Type:       rec.Type,
		OccurredAt: rec.OccurredAt,
		RecordedAt: rec.RecordedAt,
		Title:      rec.Title,
		Notes:      rec.Notes,
		WeightKg:   rec.WeightKg,
		ActorType:  rec.Actor.Type,
		ActorID:    rec.Actor.ID,
		Source:     rec.Source,
		Status:     rec.Status,
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
