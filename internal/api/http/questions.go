package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	authmw "github.com/evalvotech/exam-generator/internal/auth/middleware"
	"github.com/evalvotech/exam-generator/internal/question"
)

// ImportQuestionsHandler bulk-upserts pool questions for the caller's org.
// Body: {"questions": [...]}.
func ImportQuestionsHandler(store question.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Questions []question.Question `json:"questions"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", "bad json")
			return
		}
		if len(req.Questions) == 0 {
			writeError(w, http.StatusBadRequest, "bad_request", "questions required")
			return
		}
		org := authmw.OrgFromContext(r.Context())
		for i := range req.Questions {
			q := &req.Questions[i]
			if q.OrganizationID == "" {
				q.OrganizationID = org
			}
			if err := validateQuestion(*q); err != nil {
				writeError(w, http.StatusBadRequest, "bad_request", fmt.Sprintf("question %d: %v", i, err))
				return
			}
		}
		if err := store.PutQuestions(r.Context(), req.Questions); err != nil {
			writeError(w, http.StatusServiceUnavailable, "repository_unavailable", "storage unavailable")
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"status": "ok", "imported": len(req.Questions)})
	}
}

func validateQuestion(q question.Question) error {
	switch {
	case strings.TrimSpace(q.ID) == "":
		return fmt.Errorf("id required")
	case !q.Type.Valid():
		return fmt.Errorf("unknown type %q", q.Type)
	case strings.TrimSpace(q.Text) == "":
		return fmt.Errorf("text required")
	case q.Marks <= 0:
		return fmt.Errorf("marks must be positive")
	case q.OrganizationID == "":
		return fmt.Errorf("organization_id required")
	}
	return nil
}

// ListQuestionsHandler returns the caller's pool, optionally narrowed by
// subject/chapter/difficulty/bloom query params.
func ListQuestionsHandler(store question.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		qs, err := store.FetchQuestions(r.Context(), question.FetchOpts{
			OrganizationID: authmw.OrgFromContext(r.Context()),
			Subject:        q.Get("subject"),
			Chapter:        q.Get("chapter"),
			Difficulty:     q.Get("difficulty"),
			BloomLevel:     q.Get("bloom"),
		})
		if err != nil {
			writeError(w, http.StatusServiceUnavailable, "repository_unavailable", "storage unavailable")
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"questions": qs, "count": len(qs)})
	}
}
