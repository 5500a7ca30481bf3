package handlers

import (
	"net/http"
	"time"

	applog "aromateca/internal/log"
)

type healthResponse struct {
	Status  string    `json:"status"`
	Time    time.Time `json:"time"`
	Oils    int64     `json:"oils"`
	Recipes int64     `json:"recipes"`
}

// Health is a readiness handler suitable for infrastructure probes. It
// reports the catalog sizes so a probe can also detect an unseeded store.
func Health(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "ok", Time: time.Now().UTC()}
	if catalogStore != nil {
		oils, recipes, err := catalogStore.Counts(r.Context())
		if err != nil {
			applog.Error(r.Context(), "health check count failed", "error", err)
			writeJSONError(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
		resp.Oils = oils
		resp.Recipes = recipes
	}
	writeJSON(w, http.StatusOK, resp)
}
