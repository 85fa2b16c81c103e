package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	httpapi "github.com/evalvotech/exam-generator/internal/api/http"
	authmw "github.com/evalvotech/exam-generator/internal/auth/middleware"
	"github.com/evalvotech/exam-generator/internal/generator"
	"github.com/evalvotech/exam-generator/internal/paper"
	"github.com/evalvotech/exam-generator/internal/question"
	"github.com/evalvotech/exam-generator/internal/rbac"
)

func seededGenerator(t *testing.T) (*generator.Generator, *question.MemStore) {
	t.Helper()
	store := question.NewMemStore()
	qs := make([]question.Question, 0, 5)
	for _, id := range []string{"q1", "q2", "q3", "q4", "q5"} {
		qs = append(qs, question.Question{
			ID: id, Type: question.TypeMCQ, Text: "pick one", Marks: 2,
			Subject: "Networks", OrganizationID: "org-1",
		})
	}
	if err := store.PutQuestions(context.Background(), qs); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return generator.New(store, store, paper.NewRenderer()), store
}

func postGenerate(h http.HandlerFunc, org, body string) *httptest.ResponseRecorder {
	return postGenerateAs(h, org, "teacher", body)
}

func postGenerateAs(h http.HandlerFunc, org, role, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/exams/generate", strings.NewReader(body))
	ctx := req.Context()
	if org != "" {
		ctx = authmw.WithOrg(ctx, org)
	}
	if role != "" {
		ctx = rbac.WithRole(ctx, role)
	}
	rec := httptest.NewRecorder()
	h(rec, req.WithContext(ctx))
	return rec
}

func TestGenerateExamHandler_OK(t *testing.T) {
	gen, store := seededGenerator(t)
	h := httpapi.GenerateExamHandler(gen)

	rec := postGenerate(h, "org-1", `{"prompt":"3 mcqs with subject networks"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var res generator.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(res.Report.Selected) != 3 || len(res.Report.Excluded) != 2 {
		t.Fatalf("report = %+v", res.Report)
	}
	if res.Batch.ID == "" || res.Batch.OrganizationID != "org-1" {
		t.Fatalf("batch = %+v", res.Batch)
	}
	if !strings.Contains(res.Paper.Text, "Multiple Choice Questions") {
		t.Fatalf("paper text = %q", res.Paper.Text)
	}

	// the batch must be readable back
	if _, err := store.GetBatch(context.Background(), res.Batch.ID); err != nil {
		t.Fatalf("get batch: %v", err)
	}
}

func TestGenerateExamHandler_BadRequests(t *testing.T) {
	gen, _ := seededGenerator(t)
	h := httpapi.GenerateExamHandler(gen)

	cases := []struct {
		name string
		org  string
		body string
	}{
		{"bad json", "org-1", `{`},
		{"empty prompt", "org-1", `{"prompt":"  "}`},
		{"no org anywhere", "", `{"prompt":"3 mcqs"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := postGenerate(h, tc.org, tc.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestGenerateExamHandler_ParseError(t *testing.T) {
	gen, _ := seededGenerator(t)
	h := httpapi.GenerateExamHandler(gen)

	rec := postGenerate(h, "org-1", `{"prompt":"hello there"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["kind"] != "parse_error" {
		t.Fatalf("kind = %q, body = %v", body["kind"], body)
	}
}

func TestGenerateExamHandler_NoQuestions(t *testing.T) {
	gen, _ := seededGenerator(t)
	h := httpapi.GenerateExamHandler(gen)

	// pool has no descriptive questions
	rec := postGenerate(h, "org-1", `{"prompt":"2 descriptive questions"}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["kind"] != "no_questions_available" {
		t.Fatalf("kind = %q", body["kind"])
	}
	if !strings.Contains(body["detail"], "descriptive") {
		t.Fatalf("detail = %q, want unmet quota mention", body["detail"])
	}
}

func TestGenerateExamHandler_OrgOverrideNeedsAdmin(t *testing.T) {
	gen, store := seededGenerator(t)
	h := httpapi.GenerateExamHandler(gen)

	// a teacher pointing the body at another org's pool must not see it
	rec := postGenerateAs(h, "org-2", "teacher", `{"prompt":"3 mcqs","organization_id":"org-1"}`)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if strings.Contains(rec.Body.String(), "pick one") {
		t.Fatalf("other org's question text leaked: %s", rec.Body.String())
	}
	batches, err := store.ListBatches(context.Background(), question.BatchListOpts{OrganizationID: "org-1"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(batches) != 0 {
		t.Fatalf("batch persisted under org-1 despite rejection: %+v", batches)
	}

	// same body as the caller's own org is not an override
	rec = postGenerateAs(h, "org-1", "teacher", `{"prompt":"3 mcqs","organization_id":"org-1"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
}

func TestGenerateExamHandler_AdminOrgOverride(t *testing.T) {
	gen, _ := seededGenerator(t)
	h := httpapi.GenerateExamHandler(gen)

	rec := postGenerateAs(h, "org-2", "admin", `{"prompt":"3 mcqs","organization_id":"org-1"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var res generator.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.Batch.OrganizationID != "org-1" {
		t.Fatalf("batch org = %q, want org-1", res.Batch.OrganizationID)
	}
}
