package http

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	authmw "github.com/evalvotech/exam-generator/internal/auth/middleware"
	"github.com/evalvotech/exam-generator/internal/question"
	"github.com/evalvotech/exam-generator/internal/storage"
)

// MountPapers serves archived paper bodies from the blob store.
// GET /papers/<batchID>.txt returns the artifact for that batch. The owning
// batch is looked up first so callers only ever see their own org's papers;
// anything else reads as not found, like GetBatchHandler.
func MountPapers(r chi.Router, bs storage.BlobStore, store question.Store) {
	r.Get("/*", func(w http.ResponseWriter, req *http.Request) {
		key := chi.URLParam(req, "*")
		key = strings.TrimPrefix(key, "/")
		if key == "" || strings.Contains(key, "..") {
			writeError(w, http.StatusBadRequest, "bad_request", "bad key")
			return
		}

		batchID := strings.TrimSuffix(key, ".txt")
		b, err := store.GetBatch(req.Context(), batchID)
		if err != nil {
			if errors.Is(err, question.ErrBatchNotFound) {
				writeError(w, http.StatusNotFound, "not_found", "paper not found")
				return
			}
			writeError(w, http.StatusServiceUnavailable, "repository_unavailable", "storage unavailable")
			return
		}
		if org := authmw.OrgFromContext(req.Context()); org != "" && b.OrganizationID != org {
			writeError(w, http.StatusNotFound, "not_found", "paper not found")
			return
		}

		rc, err := bs.Get("papers/" + key)
		if err != nil {
			writeError(w, http.StatusNotFound, "not_found", "paper not found")
			return
		}
		defer rc.Close()
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = io.Copy(w, rc)
	})
}
