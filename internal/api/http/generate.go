package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	authmw "github.com/evalvotech/exam-generator/internal/auth/middleware"
	"github.com/evalvotech/exam-generator/internal/generator"
	"github.com/evalvotech/exam-generator/internal/rbac"
)

// GenerateExamHandler drives the whole pipeline for POST /exams/generate.
// The organization defaults to the caller's JWT claim; only admins may pass
// an explicit organization_id to generate for another org.
func GenerateExamHandler(gen *generator.Generator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Prompt         string `json:"prompt"`
			OrganizationID string `json:"organization_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", "bad json")
			return
		}
		if strings.TrimSpace(req.Prompt) == "" {
			writeError(w, http.StatusBadRequest, "bad_request", "prompt required")
			return
		}
		claimOrg := authmw.OrgFromContext(r.Context())
		org := claimOrg
		if req.OrganizationID != "" && req.OrganizationID != claimOrg {
			if rbac.RoleFromContext(r.Context()) != "admin" {
				writeError(w, http.StatusForbidden, "forbidden", "organization_id override requires admin")
				return
			}
			org = req.OrganizationID
		}
		if org == "" {
			writeError(w, http.StatusBadRequest, "bad_request", "organization_id required")
			return
		}

		res, err := gen.Generate(r.Context(), req.Prompt, org)
		if err != nil {
			writeGenerateError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}

// writeGenerateError maps the generator's error kinds onto statuses. User
// errors carry their detail through; infrastructure errors stay generic so
// driver internals never leak to clients.
func writeGenerateError(w http.ResponseWriter, err error) {
	var ge *generator.Error
	if !errors.As(err, &ge) {
		writeError(w, http.StatusInternalServerError, "internal", "generation failed")
		return
	}
	switch ge.Kind {
	case generator.KindParse:
		writeError(w, http.StatusBadRequest, string(ge.Kind), ge.Detail)
	case generator.KindNoQuestions:
		writeError(w, http.StatusUnprocessableEntity, string(ge.Kind), ge.Detail)
	case generator.KindRepository, generator.KindPersistence:
		writeError(w, http.StatusServiceUnavailable, string(ge.Kind), "storage unavailable")
	case generator.KindFormat:
		writeError(w, http.StatusInternalServerError, string(ge.Kind), "paper rendering failed")
	default:
		writeError(w, http.StatusInternalServerError, "internal", "generation failed")
	}
}
