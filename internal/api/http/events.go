package http

import (
	"net/http"

	"github.com/evalvotech/exam-generator/internal/audit"
)

// ListEventsHandler exposes the audit trail. Admin only.
func ListEventsHandler(repo *audit.EventRepo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		events, err := repo.Recent(r.Context(), parseIntDefault(r.URL.Query().Get("limit"), 100))
		if err != nil {
			writeError(w, http.StatusServiceUnavailable, "repository_unavailable", "storage unavailable")
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"events": events, "count": len(events)})
	}
}
