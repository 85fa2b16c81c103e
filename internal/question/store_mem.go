package question

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// MemStore keeps the pool in insertion order so FetchQuestions stays stable.
// Used by tests and by the gateway's seed/dev path.
type MemStore struct {
	mu        sync.RWMutex
	questions []Question
	batches   map[string]ExamBatch
}

func NewMemStore() *MemStore {
	return &MemStore{batches: map[string]ExamBatch{}}
}

func (m *MemStore) PutQuestions(ctx context.Context, qs []Question) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, q := range qs {
		replaced := false
		for i := range m.questions {
			if m.questions[i].ID == q.ID {
				m.questions[i] = q
				replaced = true
				break
			}
		}
		if !replaced {
			m.questions = append(m.questions, q)
		}
	}
	return nil
}

func (m *MemStore) FetchQuestions(ctx context.Context, opts FetchOpts) ([]Question, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []Question
	for _, q := range m.questions {
		if q.OrganizationID != opts.OrganizationID {
			continue
		}
		if !containsFold(q.Subject, opts.Subject) || !containsFold(q.Chapter, opts.Chapter) {
			continue
		}
		if !equalFold(q.Difficulty, opts.Difficulty) || !equalFold(q.BloomLevel, opts.BloomLevel) {
			continue
		}
		out = append(out, q)
	}
	return out, nil
}

func (m *MemStore) SaveBatch(ctx context.Context, b ExamBatch) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.batches[b.ID] = b
	return nil
}

func (m *MemStore) GetBatch(ctx context.Context, id string) (ExamBatch, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.batches[id]
	if !ok {
		return ExamBatch{}, ErrBatchNotFound
	}
	return b, nil
}

func (m *MemStore) ListBatches(ctx context.Context, opts BatchListOpts) ([]ExamBatch, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []ExamBatch
	for _, b := range m.batches {
		if b.OrganizationID == opts.OrganizationID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt != out[j].CreatedAt {
			return out[i].CreatedAt > out[j].CreatedAt
		}
		return out[i].ID < out[j].ID
	})
	if opts.Offset > 0 {
		if opts.Offset >= len(out) {
			return nil, nil
		}
		out = out[opts.Offset:]
	}
	if opts.Limit > 0 && opts.Limit < len(out) {
		out = out[:opts.Limit]
	}
	return out, nil
}

// filter value semantics match the SQL store: empty means "any", subject and
// chapter are substring matches, the rest compare whole values.
func containsFold(have, want string) bool {
	if want == "" {
		return true
	}
	return strings.Contains(strings.ToLower(have), strings.ToLower(want))
}

func equalFold(have, want string) bool {
	return want == "" || strings.EqualFold(have, want)
}
