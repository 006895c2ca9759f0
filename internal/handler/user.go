package handler

import (
	"net/http"

	"logitrack/internal/mw"
)

// MeHandler returns the caller's user row. The identity middleware has
// already upserted it by the time this runs.
func MeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := mw.UserFrom(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		writeJSON(w, http.StatusOK, user)
	}
}
