// Package handlers implements the HTTP API. Handlers share their
// dependencies through Configure, mirroring how the router wires them.
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/alexedwards/scs/v2"

	"aromateca/internal/config"
	applog "aromateca/internal/log"
	"aromateca/internal/store"
)

const sessionAdminKey = "auth:admin"

var (
	sessionManager *scs.SessionManager
	catalogStore   *store.Store
	authConfig     config.AuthConfig
	devMode        bool
)

// Configure installs the shared dependencies used by the HTTP handlers.
// With an empty admin password hash the API runs in dev mode and write
// endpoints accept unauthenticated requests.
func Configure(sm *scs.SessionManager, st *store.Store, auth config.AuthConfig) {
	sessionManager = sm
	catalogStore = st
	authConfig = auth
	devMode = strings.TrimSpace(auth.AdminPasswordHash) == ""
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		applog.Error(context.Background(), "failed to encode json response", "error", err)
	}
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func storeAvailable(w http.ResponseWriter, r *http.Request) bool {
	if catalogStore == nil {
		applog.Debug(r.Context(), "request without configured store", "path", r.URL.Path)
		writeJSONError(w, http.StatusServiceUnavailable, "service unavailable")
		return false
	}
	return true
}
