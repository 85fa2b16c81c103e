package generator

import (
	"fmt"
	"strings"

	"github.com/evalvotech/exam-generator/internal/question"
)

// Kind classifies a generation failure so the HTTP layer can pick a status
// without string-matching. Collaborator errors stay wrapped underneath and
// are never downgraded.
type Kind string

const (
	KindParse       Kind = "parse_error"
	KindNoQuestions Kind = "no_questions_available"
	KindRepository  Kind = "repository_unavailable"
	KindFormat      Kind = "formatting_error"
	KindPersistence Kind = "persistence_error"
)

type Error struct {
	Kind   Kind
	Detail string
	// Shortfalls is set for KindNoQuestions so callers can tell the user
	// which type quotas went unmet.
	Shortfalls []question.Shortfall
	Err        error
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
	}
	return string(e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

func shortfallDetail(sfs []question.Shortfall) string {
	if len(sfs) == 0 {
		return "no questions matched the requested types"
	}
	parts := make([]string, 0, len(sfs))
	for _, sf := range sfs {
		parts = append(parts, fmt.Sprintf("%s: %d/%d selected", sf.Type, sf.Selected, sf.Requested))
	}
	return "unmet quotas: " + strings.Join(parts, ", ")
}
