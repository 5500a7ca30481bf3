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

type recipeListResponse struct {
	Items   []models.Recipe                 `json:"items"`
	Total   int                             `json:"total"`
	Facets  map[string][]catalog.FacetCount `json:"facets"`
	Summary string                          `json:"summary"`
}

// ListRecipes applies the filter state from the query string and returns
// the matching recipes with facet counts and the filter summary.
func ListRecipes(w http.ResponseWriter, r *http.Request) {
	if !storeAvailable(w, r) {
		return
	}

	recipes, err := catalogStore.Recipes(r.Context())
	if err != nil {
		applog.Error(r.Context(), "failed to load recipes", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "unable to load recipes")
		return
	}

	filters := catalog.RecipeFiltersFromValues(r.URL.Query())
	result := catalog.ApplyRecipeFilters(recipes, filters)
	writeJSON(w, http.StatusOK, recipeListResponse{
		Items:   result.Rows,
		Total:   len(result.Rows),
		Facets:  catalog.RecipeFacets(recipes, filters),
		Summary: filters.Summary(),
	})
}

// GetRecipe returns one recipe by id.
func GetRecipe(w http.ResponseWriter, r *http.Request) {
	if !storeAvailable(w, r) {
		return
	}

	recipe, err := catalogStore.Recipe(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		writeJSONError(w, http.StatusNotFound, "receita não encontrada")
		return
	}
	if err != nil {
		applog.Error(r.Context(), "failed to load recipe", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "unable to load recipe")
		return
	}
	writeJSON(w, http.StatusOK, recipe)
}

// CreateRecipe stores a new recipe. A missing id is generated.
func CreateRecipe(w http.ResponseWriter, r *http.Request) {
	if !storeAvailable(w, r) {
		return
	}

	var recipe models.Recipe
	if err := json.NewDecoder(r.Body).Decode(&recipe); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if strings.TrimSpace(recipe.ID.String()) == "" {
		recipe.ID = models.RecipeID(uuid.NewString())
	}
	if strings.TrimSpace(recipe.Name) == "" {
		writeJSONError(w, http.StatusBadRequest, "campo \"name\" é obrigatório")
		return
	}
	if _, err := catalogStore.Recipe(r.Context(), recipe.ID.String()); err == nil {
		writeJSONError(w, http.StatusConflict, "já existe uma receita com este id")
		return
	}

	if err := catalogStore.UpsertRecipe(r.Context(), recipe); err != nil {
		applog.Error(r.Context(), "failed to create recipe", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "unable to create recipe")
		return
	}
	writeJSON(w, http.StatusCreated, recipe)
}

// UpdateRecipe replaces an existing recipe wholesale.
func UpdateRecipe(w http.ResponseWriter, r *http.Request) {
	if !storeAvailable(w, r) {
		return
	}

	id := chi.URLParam(r, "id")
	if _, err := catalogStore.Recipe(r.Context(), id); errors.Is(err, store.ErrNotFound) {
		writeJSONError(w, http.StatusNotFound, "receita não encontrada")
		return
	} else if err != nil {
		applog.Error(r.Context(), "failed to load recipe", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "unable to load recipe")
		return
	}

	var recipe models.Recipe
	if err := json.NewDecoder(r.Body).Decode(&recipe); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	recipe.ID = models.RecipeID(id)
	if strings.TrimSpace(recipe.Name) == "" {
		writeJSONError(w, http.StatusBadRequest, "campo \"name\" é obrigatório")
		return
	}

	if err := catalogStore.UpsertRecipe(r.Context(), recipe); err != nil {
		applog.Error(r.Context(), "failed to update recipe", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "unable to update recipe")
		return
	}
	writeJSON(w, http.StatusOK, recipe)
}

// DeleteRecipe removes one recipe.
func DeleteRecipe(w http.ResponseWriter, r *http.Request) {
	if !storeAvailable(w, r) {
		return
	}

	err := catalogStore.DeleteRecipe(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		writeJSONError(w, http.StatusNotFound, "receita não encontrada")
		return
	}
	if err != nil {
		applog.Error(r.Context(), "failed to delete recipe", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "unable to delete recipe")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
