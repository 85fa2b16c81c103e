package rbac_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/evalvotech/exam-generator/internal/rbac"
)

func TestChecker_Has(t *testing.T) {
	c := rbac.NewChecker(nil)
	cases := []struct {
		role, perm string
		want       bool
	}{
		{"teacher", "exam:generate", true},
		{"teacher", "question:import", true},
		{"teacher", "user:delete", false},
		{"admin", "anything:at:all", true},
		{"ghost", "exam:generate", false},
	}
	for _, tc := range cases {
		if got := c.Has(tc.role, tc.perm); got != tc.want {
			t.Errorf("Has(%q, %q) = %v, want %v", tc.role, tc.perm, got, tc.want)
		}
	}
}

func TestChecker_PrefixPattern(t *testing.T) {
	c := rbac.NewChecker(map[string][]string{"auditor": {"batch:*"}})
	if !c.Has("auditor", "batch:view") {
		t.Fatal("batch:* should grant batch:view")
	}
	if c.Has("auditor", "exam:generate") {
		t.Fatal("batch:* should not grant exam:generate")
	}
}

func TestRequire(t *testing.T) {
	mw := rbac.Require("exam:generate")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodPost, "/exams/generate", nil)
	req = req.WithContext(rbac.WithRole(req.Context(), "teacher"))
	rec := httptest.NewRecorder()
	mw.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("teacher: status = %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/exams/generate", nil)
	rec = httptest.NewRecorder()
	mw.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("no role: status = %d", rec.Code)
	}
}
