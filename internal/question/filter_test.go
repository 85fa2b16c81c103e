package question_test

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/evalvotech/exam-generator/internal/question"
)

func mcqPool(n int, marks float64) []question.Question {
	out := make([]question.Question, n)
	for i := range out {
		out[i] = question.Question{
			ID:    fmt.Sprintf("q%d", i+1),
			Type:  question.TypeMCQ,
			Text:  fmt.Sprintf("question %d", i+1),
			Marks: marks,
		}
	}
	return out
}

func TestFilter_MarksBudgetClosesBucket(t *testing.T) {
	pool := mcqPool(5, 4)
	c := question.Constraint{
		Counts:        []question.TypeCount{{Type: question.TypeMCQ, Count: 3}},
		MaxTotalMarks: 10,
	}
	rep := question.Filter(pool, c)

	if len(rep.Selected) != 2 {
		t.Fatalf("selected = %d, want 2", len(rep.Selected))
	}
	if rep.Selected[0].ID != "q1" || rep.Selected[1].ID != "q2" {
		t.Fatalf("selected ids = %v", []string{rep.Selected[0].ID, rep.Selected[1].ID})
	}
	if rep.TotalMarks != 8 {
		t.Fatalf("total marks = %v, want 8", rep.TotalMarks)
	}
	if len(rep.Excluded) != 3 {
		t.Fatalf("excluded = %d, want 3", len(rep.Excluded))
	}
	wantReasons := map[string]question.ExclusionReason{
		"q3": question.ReasonMarksExceeded,
		"q4": question.ReasonQuotaFilled,
		"q5": question.ReasonQuotaFilled,
	}
	for _, ex := range rep.Excluded {
		if ex.Reason != wantReasons[ex.Question.ID] {
			t.Fatalf("%s excluded with %s, want %s", ex.Question.ID, ex.Reason, wantReasons[ex.Question.ID])
		}
	}
	if len(rep.Shortfalls) != 1 || rep.Shortfalls[0].Selected != 2 || rep.Shortfalls[0].Requested != 3 {
		t.Fatalf("shortfalls = %+v", rep.Shortfalls)
	}
}

func TestFilter_EmptyPool(t *testing.T) {
	c := question.Constraint{Counts: []question.TypeCount{{Type: question.TypeMCQ, Count: 3}}}
	rep := question.Filter(nil, c)
	if len(rep.Selected) != 0 || len(rep.Excluded) != 0 {
		t.Fatalf("selected=%d excluded=%d, want 0/0", len(rep.Selected), len(rep.Excluded))
	}
}

func TestFilter_AbsentTypeAllMismatch(t *testing.T) {
	pool := mcqPool(4, 2)
	c := question.Constraint{Counts: []question.TypeCount{{Type: question.TypeDescriptive, Count: 2}}}
	rep := question.Filter(pool, c)
	if len(rep.Selected) != 0 {
		t.Fatalf("selected = %d, want 0", len(rep.Selected))
	}
	if len(rep.Excluded) != len(pool) {
		t.Fatalf("excluded = %d, want %d", len(rep.Excluded), len(pool))
	}
	for _, ex := range rep.Excluded {
		if ex.Reason != question.ReasonTypeMismatch {
			t.Fatalf("%s excluded with %s, want type_mismatch", ex.Question.ID, ex.Reason)
		}
	}
	if len(rep.Shortfalls) != 1 || rep.Shortfalls[0].Type != question.TypeDescriptive {
		t.Fatalf("shortfalls = %+v", rep.Shortfalls)
	}
}

func TestFilter_EveryCandidateClassifiedOnce(t *testing.T) {
	pool := []question.Question{
		{ID: "a1", Type: question.TypeMCQ, Marks: 2},
		{ID: "a2", Type: question.TypeTrueFalse, Marks: 1},
		{ID: "a3", Type: question.TypeMCQ, Marks: 2},
		{ID: "a4", Type: question.TypeDescriptive, Marks: 5},
		{ID: "a5", Type: question.TypeMCQ, Marks: 2},
		{ID: "a6", Type: question.TypeTrueFalse, Marks: 1},
	}
	c := question.Constraint{
		Counts: []question.TypeCount{
			{Type: question.TypeMCQ, Count: 2},
			{Type: question.TypeTrueFalse, Count: 5},
		},
	}
	rep := question.Filter(pool, c)
	if got := len(rep.Selected) + len(rep.Excluded); got != len(pool) {
		t.Fatalf("selected+excluded = %d, want %d", got, len(pool))
	}
	seen := map[string]int{}
	for _, q := range rep.Selected {
		seen[q.ID]++
	}
	for _, ex := range rep.Excluded {
		seen[ex.Question.ID]++
	}
	for id, n := range seen {
		if n != 1 {
			t.Fatalf("%s classified %d times", id, n)
		}
	}
	// a4 is the only unrequested type
	for _, ex := range rep.Excluded {
		if ex.Question.ID == "a4" && ex.Reason != question.ReasonTypeMismatch {
			t.Fatalf("a4 excluded with %s", ex.Reason)
		}
	}
}

func TestFilter_NoBudgetAlwaysFits(t *testing.T) {
	pool := mcqPool(3, 100)
	c := question.Constraint{Counts: []question.TypeCount{{Type: question.TypeMCQ, Count: 3}}}
	rep := question.Filter(pool, c)
	if len(rep.Selected) != 3 {
		t.Fatalf("selected = %d, want 3", len(rep.Selected))
	}
	if rep.TotalMarks != 300 {
		t.Fatalf("total = %v", rep.TotalMarks)
	}
}

func TestFilter_ZeroCountTypeSkipped(t *testing.T) {
	pool := []question.Question{
		{ID: "m1", Type: question.TypeMCQ, Marks: 2},
		{ID: "t1", Type: question.TypeTrueFalse, Marks: 1},
	}
	c := question.Constraint{
		Counts: []question.TypeCount{
			{Type: question.TypeMCQ, Count: 0},
			{Type: question.TypeTrueFalse, Count: 1},
		},
	}
	rep := question.Filter(pool, c)
	if len(rep.Selected) != 1 || rep.Selected[0].ID != "t1" {
		t.Fatalf("selected = %+v", rep.Selected)
	}
	if len(rep.Excluded) != 1 || rep.Excluded[0].Question.ID != "m1" || rep.Excluded[0].Reason != question.ReasonTypeMismatch {
		t.Fatalf("excluded = %+v", rep.Excluded)
	}
}

func TestFilter_SelectionFollowsConstraintOrder(t *testing.T) {
	pool := []question.Question{
		{ID: "t1", Type: question.TypeTrueFalse, Marks: 1},
		{ID: "m1", Type: question.TypeMCQ, Marks: 2},
	}
	c := question.Constraint{
		Counts: []question.TypeCount{
			{Type: question.TypeMCQ, Count: 1},
			{Type: question.TypeTrueFalse, Count: 1},
		},
	}
	rep := question.Filter(pool, c)
	if rep.Selected[0].ID != "m1" || rep.Selected[1].ID != "t1" {
		t.Fatalf("selection order = %v", []string{rep.Selected[0].ID, rep.Selected[1].ID})
	}
}

func TestFilter_Idempotent(t *testing.T) {
	pool := mcqPool(5, 4)
	pool = append(pool, question.Question{ID: "d1", Type: question.TypeDescriptive, Marks: 5})
	c := question.Constraint{
		Counts:        []question.TypeCount{{Type: question.TypeMCQ, Count: 3}},
		MaxTotalMarks: 10,
	}
	first := question.Filter(pool, c)
	second := question.Filter(pool, c)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("filter not deterministic:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}
