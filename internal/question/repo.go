package question

import (
	"context"
	"errors"
)

// ErrStoreUnavailable wraps transport/storage failures so callers can map
// them to a 503 without inspecting driver errors.
var ErrStoreUnavailable = errors.New("question store unavailable")

var ErrBatchNotFound = errors.New("batch not found")

// FetchOpts is the coarse scope a pool fetch runs under. Subject and Chapter
// are case-insensitive substring matches; the rest are exact.
type FetchOpts struct {
	OrganizationID string
	Subject        string
	Chapter        string
	Difficulty     string
	BloomLevel     string
}

type BatchListOpts struct {
	OrganizationID string
	Limit          int
	Offset         int
}

type Store interface {
	PutQuestions(ctx context.Context, qs []Question) error
	// FetchQuestions returns the candidate pool in stable (created_at, id)
	// order so a re-run over the same data selects the same questions.
	FetchQuestions(ctx context.Context, opts FetchOpts) ([]Question, error)

	SaveBatch(ctx context.Context, b ExamBatch) error
	GetBatch(ctx context.Context, id string) (ExamBatch, error)
	ListBatches(ctx context.Context, opts BatchListOpts) ([]ExamBatch, error)
}
