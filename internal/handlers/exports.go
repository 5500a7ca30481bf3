package handlers

import (
	"net/http"

	"aromateca/internal/catalog"
	"aromateca/internal/export"
	applog "aromateca/internal/log"
)

// ExportOils streams the filtered oil catalog. The format query parameter
// selects json (default), csv or txt; all other filter parameters behave
// exactly as in ListOils.
func ExportOils(w http.ResponseWriter, r *http.Request) {
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
	rows := catalog.ApplyOilFilters(oils, filters).Rows
	summary := filters.Summary()

	switch r.URL.Query().Get("format") {
	case "", "json":
		writeJSON(w, http.StatusOK, rows)
	case "csv":
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="oleos.csv"`)
		if err := export.OilsCSV(w, rows, summary); err != nil {
			applog.Error(r.Context(), "failed to write oils csv", "error", err)
		}
	case "txt":
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="oleos.txt"`)
		if err := export.OilsTXT(w, rows, summary); err != nil {
			applog.Error(r.Context(), "failed to write oils txt", "error", err)
		}
	default:
		writeJSONError(w, http.StatusBadRequest, "formato deve ser \"json\", \"csv\" ou \"txt\"")
	}
}

// ExportRecipes streams the filtered recipe catalog.
func ExportRecipes(w http.ResponseWriter, r *http.Request) {
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
	rows := catalog.ApplyRecipeFilters(recipes, filters).Rows
	summary := filters.Summary()

	switch r.URL.Query().Get("format") {
	case "", "json":
		writeJSON(w, http.StatusOK, rows)
	case "csv":
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="receitas.csv"`)
		if err := export.RecipesCSV(w, rows, summary); err != nil {
			applog.Error(r.Context(), "failed to write recipes csv", "error", err)
		}
	case "txt":
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="receitas.txt"`)
		if err := export.RecipesTXT(w, rows, summary); err != nil {
			applog.Error(r.Context(), "failed to write recipes txt", "error", err)
		}
	default:
		writeJSONError(w, http.StatusBadRequest, "formato deve ser \"json\", \"csv\" ou \"txt\"")
	}
}
