package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	applog "aromateca/internal/log"
)

type loginRequest struct {
	Password string `json:"password"`
}

// Login verifies the admin password and marks the session as admin. In dev
// mode (no configured hash) login always succeeds so local tooling keeps a
// single code path.
func Login(w http.ResponseWriter, r *http.Request) {
	if sessionManager == nil {
		writeJSONError(w, http.StatusServiceUnavailable, "authentication not available")
		return
	}

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if !devMode {
		hash := strings.TrimSpace(authConfig.AdminPasswordHash)
		if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)); err != nil {
			applog.Debug(r.Context(), "admin login rejected")
			writeJSONError(w, http.StatusUnauthorized, "senha inválida")
			return
		}
	}

	if err := sessionManager.RenewToken(r.Context()); err != nil {
		applog.Error(r.Context(), "failed to renew session token", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "unable to establish session")
		return
	}
	sessionManager.Put(r.Context(), sessionAdminKey, true)
	writeJSON(w, http.StatusOK, map[string]bool{"admin": true})
}

// Logout destroys the current session.
func Logout(w http.ResponseWriter, r *http.Request) {
	if sessionManager != nil {
		if err := sessionManager.Destroy(r.Context()); err != nil {
			applog.Error(r.Context(), "failed to destroy session", "error", err)
		}
	}
	writeJSON(w, http.StatusOK, map[string]bool{"admin": false})
}

func isAdmin(r *http.Request) bool {
	if devMode {
		return true
	}
	if sessionManager == nil {
		return false
	}
	return sessionManager.GetBool(r.Context(), sessionAdminKey)
}

// RequireAdmin guards write endpoints behind an admin session.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !isAdmin(r) {
			writeJSONError(w, http.StatusUnauthorized, "acesso restrito ao administrador")
			return
		}
		next.ServeHTTP(w, r)
	})
}
