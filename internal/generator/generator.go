// Package generator sequences one exam-generation request: parse the prompt,
// fetch the candidate pool, filter, render, persist the batch. Each request
// is a single synchronous pipeline with no shared state between requests.
package generator

import (
	"context"
	"io"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/evalvotech/exam-generator/internal/paper"
	"github.com/evalvotech/exam-generator/internal/prompt"
	"github.com/evalvotech/exam-generator/internal/question"
)

type Repository interface {
	FetchQuestions(ctx context.Context, opts question.FetchOpts) ([]question.Question, error)
}

type BatchStore interface {
	SaveBatch(ctx context.Context, b question.ExamBatch) error
}

type Renderer interface {
	Render(title string, selected []question.Question) (paper.RenderedPaper, error)
}

// Archive persists the rendered paper body (blob storage). Optional.
type Archive interface {
	Put(key string, r io.Reader) (string, error)
}

// AuditLog records generation outcomes. Optional; append failures are logged
// and do not fail the request.
type AuditLog interface {
	Append(ctx context.Context, typ, key string, data interface{}) error
}

type Generator struct {
	repo     Repository
	batches  BatchStore
	renderer Renderer

	// optional collaborators
	Archive Archive
	Audit   AuditLog

	now   func() time.Time
	newID func() string
}

func New(repo Repository, batches BatchStore, renderer Renderer) *Generator {
	return &Generator{
		repo:     repo,
		batches:  batches,
		renderer: renderer,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Result is what one successful generation hands back to the caller.
type Result struct {
	Report question.FilteringReport `json:"report"`
	Paper  paper.RenderedPaper      `json:"paper"`
	Batch  question.ExamBatch       `json:"batch"`
}

// Generate runs the full pipeline. The batch record is written only after
// rendering succeeds; a cancelled context aborts at the fetch and nothing is
// persisted.
func (g *Generator) Generate(ctx context.Context, rawPrompt, orgID string) (*Result, error) {
	c, err := prompt.Parse(rawPrompt)
	if err != nil {
		return nil, &Error{Kind: KindParse, Detail: err.Error(), Err: err}
	}
	c.OrganizationID = orgID

	pool, err := g.repo.FetchQuestions(ctx, question.FetchOpts{
		OrganizationID: orgID,
		Subject:        c.Subject,
		Chapter:        c.Chapter,
		Difficulty:     c.Difficulty,
		BloomLevel:     c.BloomLevel,
	})
	if err != nil {
		return nil, &Error{Kind: KindRepository, Detail: "question store unavailable", Err: err}
	}

	rep := question.Filter(pool, c)
	if len(rep.Selected) == 0 {
		return nil, &Error{
			Kind:       KindNoQuestions,
			Detail:     shortfallDetail(rep.Shortfalls),
			Shortfalls: rep.Shortfalls,
		}
	}

	p, err := g.renderer.Render(paperTitle(c), rep.Selected)
	if err != nil {
		return nil, &Error{Kind: KindFormat, Detail: "paper rendering failed", Err: err}
	}

	b := question.ExamBatch{
		ID:             g.newID(),
		OrganizationID: orgID,
		Name:           c.BatchName,
		Subject:        c.Subject,
		QuestionIDs:    questionIDs(rep.Selected),
		TotalMarks:     rep.TotalMarks,
		CreatedAt:      g.now().Unix(),
	}
	if g.Archive != nil {
		key := "papers/" + b.ID + ".txt"
		if _, err := g.Archive.Put(key, strings.NewReader(p.Text)); err != nil {
			return nil, &Error{Kind: KindPersistence, Detail: "paper archive failed", Err: err}
		}
		b.PaperKey = key
	}
	if err := g.batches.SaveBatch(ctx, b); err != nil {
		return nil, &Error{Kind: KindPersistence, Detail: "batch save failed", Err: err}
	}

	if g.Audit != nil {
		if err := g.Audit.Append(ctx, "BatchCreated", b.ID, map[string]interface{}{
			"organization_id": b.OrganizationID,
			"selected":        len(rep.Selected),
			"excluded":        len(rep.Excluded),
			"total_marks":     rep.TotalMarks,
		}); err != nil {
			log.Printf("audit append failed for batch %s: %v", b.ID, err)
		}
	}

	return &Result{Report: rep, Paper: p, Batch: b}, nil
}

func paperTitle(c question.Constraint) string {
	switch {
	case c.BatchName != "" && c.Subject != "":
		return c.BatchName + " - " + c.Subject
	case c.BatchName != "":
		return c.BatchName
	case c.Subject != "":
		return c.Subject + " Exam Paper"
	default:
		return "Exam Paper"
	}
}

func questionIDs(qs []question.Question) []string {
	ids := make([]string, len(qs))
	for i, q := range qs {
		ids[i] = q.ID
	}
	return ids
}
