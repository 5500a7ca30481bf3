package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"aromateca/internal/catalog"
	applog "aromateca/internal/log"
	"aromateca/internal/store"
	"aromateca/models"
)

type oilListResponse struct {
	Items   []models.Oil                    `json:"items"`
	Total   int                             `json:"total"`
	Facets  map[string][]catalog.FacetCount `json:"facets"`
	Summary string                          `json:"summary"`
}

// ListOils applies the filter state from the query string and returns the
// matching oils with facet counts and the human-readable filter summary.
func ListOils(w http.ResponseWriter, r *http.Request) {
	if !storeAvailable(w, r) {
		return
	}

	oils, err := catalogStore.Oils(r.Context())
	if err != nil {
		applog.Error(r.Context(), "failed to load oils", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "unable to load oils")
		return
	}

	filters := catalog.OilFiltersFromValues(r.URL.Query())
	result := catalog.ApplyOilFilters(oils, filters)
	writeJSON(w, http.StatusOK, oilListResponse{
		Items:   result.Rows,
		Total:   len(result.Rows),
		Facets:  catalog.OilFacets(oils, filters),
		Summary: filters.Summary(),
	})
}

// GetOil returns one oil by id.
func GetOil(w http.ResponseWriter, r *http.Request) {
	if !storeAvailable(w, r) {
		return
	}

	oil, err := catalogStore.Oil(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		writeJSONError(w, http.StatusNotFound, "óleo não encontrado")
		return
	}
	if err != nil {
		applog.Error(r.Context(), "failed to load oil", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "unable to load oil")
		return
	}
	writeJSON(w, http.StatusOK, oil)
}

// CreateOil stores a new oil. A missing id is generated.
func CreateOil(w http.ResponseWriter, r *http.Request) {
	if !storeAvailable(w, r) {
		return
	}

	var oil models.Oil
	if err := json.NewDecoder(r.Body).Decode(&oil); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if strings.TrimSpace(oil.ID) == "" {
		oil.ID = uuid.NewString()
	}
	if strings.TrimSpace(oil.NamePT) == "" {
		writeJSONError(w, http.StatusBadRequest, "campo \"nome_pt\" é obrigatório")
		return
	}
	if _, err := catalogStore.Oil(r.Context(), oil.ID); err == nil {
		writeJSONError(w, http.StatusConflict, "já existe um óleo com este id")
		return
	}

	if err := catalogStore.UpsertOil(r.Context(), oil); err != nil {
		applog.Error(r.Context(), "failed to create oil", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "unable to create oil")
		return
	}
	writeJSON(w, http.StatusCreated, oil)
}

// UpdateOil replaces an existing oil wholesale.
func UpdateOil(w http.ResponseWriter, r *http.Request) {
	if !storeAvailable(w, r) {
		return
	}

	id := chi.URLParam(r, "id")
	if _, err := catalogStore.Oil(r.Context(), id); errors.Is(err, store.ErrNotFound) {
		writeJSONError(w, http.StatusNotFound, "óleo não encontrado")
		return
	} else if err != nil {
		applog.Error(r.Context(), "failed to load oil", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "unable to load oil")
		return
	}

	var oil models.Oil
	if err := json.NewDecoder(r.Body).Decode(&oil); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	oil.ID = id
	if strings.TrimSpace(oil.NamePT) == "" {
		writeJSONError(w, http.StatusBadRequest, "campo \"nome_pt\" é obrigatório")
		return
	}

	if err := catalogStore.UpsertOil(r.Context(), oil); err != nil {
		applog.Error(r.Context(), "failed to update oil", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "unable to update oil")
		return
	}
	writeJSON(w, http.StatusOK, oil)
}

// DeleteOil removes one oil.
func DeleteOil(w http.ResponseWriter, r *http.Request) {
	if !storeAvailable(w, r) {
		return
	}

	err := catalogStore.DeleteOil(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		writeJSONError(w, http.StatusNotFound, "óleo não encontrado")
		return
	}
	if err != nil {
		applog.Error(r.Context(), "failed to delete oil", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "unable to delete oil")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
