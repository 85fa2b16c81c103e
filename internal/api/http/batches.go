package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	authmw "github.com/evalvotech/exam-generator/internal/auth/middleware"
	"github.com/evalvotech/exam-generator/internal/question"
)

func ListBatchesHandler(store question.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := store.ListBatches(r.Context(), question.BatchListOpts{
			OrganizationID: authmw.OrgFromContext(r.Context()),
			Limit:          parseIntDefault(r.URL.Query().Get("limit"), 50),
			Offset:         parseIntDefault(r.URL.Query().Get("offset"), 0),
		})
		if err != nil {
			writeError(w, http.StatusServiceUnavailable, "repository_unavailable", "storage unavailable")
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"batches": list, "count": len(list)})
	}
}

func GetBatchHandler(store question.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "batchID")
		b, err := store.GetBatch(r.Context(), id)
		if err != nil {
			if errors.Is(err, question.ErrBatchNotFound) {
				writeError(w, http.StatusNotFound, "not_found", "batch not found")
				return
			}
			writeError(w, http.StatusServiceUnavailable, "repository_unavailable", "storage unavailable")
			return
		}
		// batches are org-scoped; hide other orgs' batches
		if org := authmw.OrgFromContext(r.Context()); org != "" && b.OrganizationID != org {
			writeError(w, http.StatusNotFound, "not_found", "batch not found")
			return
		}
		writeJSON(w, http.StatusOK, b)
	}
}
