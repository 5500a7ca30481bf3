package handlers

import (
	"errors"
	"io"
	"net/http"

	"aromateca/internal/catalog"
	"aromateca/internal/importer"
	applog "aromateca/internal/log"
)

// Import documents either merge into the current catalog or replace it.
const (
	importModeMerge   = "merge"
	importModeReplace = "replace"
)

type importReport struct {
	Mode     string                `json:"mode"`
	Imported int                   `json:"imported"`
	Added    int                   `json:"added"`
	Updated  int                   `json:"updated"`
	Kept     int                   `json:"kept"`
	Errors   []importer.EntryError `json:"errors,omitempty"`
}

func importMode(r *http.Request) (string, bool) {
	mode := r.URL.Query().Get("mode")
	if mode == "" {
		mode = importModeMerge
	}
	return mode, mode == importModeMerge || mode == importModeReplace
}

// ImportOils ingests an oil catalog document. Entries with problems are
// reported by index and skipped; a document with duplicate ids is rejected
// outright.
func ImportOils(w http.ResponseWriter, r *http.Request) {
	if !storeAvailable(w, r) {
		return
	}
	mode, ok := importMode(r)
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "modo de importação deve ser \"merge\" ou \"replace\"")
		return
	}

	raw, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "unable to read request body")
		return
	}

	incoming, entryErrs, err := importer.Oils(raw)
	if errors.Is(err, importer.ErrDuplicateID) {
		writeJSONError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	report := importReport{Mode: mode, Imported: len(incoming), Errors: entryErrs}
	switch mode {
	case importModeReplace:
		if err := catalogStore.ReplaceOils(r.Context(), incoming); err != nil {
			applog.Error(r.Context(), "failed to replace oils", "error", err)
			writeJSONError(w, http.StatusInternalServerError, "unable to store oils")
			return
		}
		report.Added = len(incoming)
	case importModeMerge:
		base, err := catalogStore.Oils(r.Context())
		if err != nil {
			applog.Error(r.Context(), "failed to load oils", "error", err)
			writeJSONError(w, http.StatusInternalServerError, "unable to load oils")
			return
		}
		merged := catalog.MergeOils(base, incoming)
		if err := catalogStore.ReplaceOils(r.Context(), merged.Merged); err != nil {
			applog.Error(r.Context(), "failed to store merged oils", "error", err)
			writeJSONError(w, http.StatusInternalServerError, "unable to store oils")
			return
		}
		report.Added = merged.Added
		report.Updated = merged.Updated
		report.Kept = merged.Kept
	}
	writeJSON(w, http.StatusOK, report)
}

// ImportRecipes ingests a recipe catalog document.
func ImportRecipes(w http.ResponseWriter, r *http.Request) {
	if !storeAvailable(w, r) {
		return
	}
	mode, ok := importMode(r)
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "modo de importação deve ser \"merge\" ou \"replace\"")
		return
	}

	raw, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "unable to read request body")
		return
	}

	incoming, entryErrs, err := importer.Recipes(raw)
	if errors.Is(err, importer.ErrDuplicateID) {
		writeJSONError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	report := importReport{Mode: mode, Imported: len(incoming), Errors: entryErrs}
	switch mode {
	case importModeReplace:
		if err := catalogStore.ReplaceRecipes(r.Context(), incoming); err != nil {
			applog.Error(r.Context(), "failed to replace recipes", "error", err)
			writeJSONError(w, http.StatusInternalServerError, "unable to store recipes")
			return
		}
		report.Added = len(incoming)
	case importModeMerge:
		base, err := catalogStore.Recipes(r.Context())
		if err != nil {
			applog.Error(r.Context(), "failed to load recipes", "error", err)
			writeJSONError(w, http.StatusInternalServerError, "unable to load recipes")
			return
		}
		merged := catalog.MergeRecipes(base, incoming)
		if err := catalogStore.ReplaceRecipes(r.Context(), merged.Merged); err != nil {
			applog.Error(r.Context(), "failed to store merged recipes", "error", err)
			writeJSONError(w, http.StatusInternalServerError, "unable to store recipes")
			return
		}
		report.Added = merged.Added
		report.Updated = merged.Updated
		report.Kept = merged.Kept
	}
	writeJSON(w, http.StatusOK, report)
}
