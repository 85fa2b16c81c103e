package question

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

type SQLStore struct {
	db     *sql.DB
	driver string // "sqlite" or "postgres"
}

func NewSQLStore(db *sql.DB, driver string) *SQLStore {
	return &SQLStore{db: db, driver: driver}
}

func (s *SQLStore) PutQuestions(ctx context.Context, qs []Question) error {
	for _, q := range qs {
		cj, err := json.Marshal(q.Choices)
		if err != nil {
			return err
		}
		created := q.CreatedAt
		if created == 0 {
			created = time.Now().Unix()
		}
		_, err = s.db.ExecContext(ctx, `INSERT INTO questions
			(id,organization_id,type,text,choices_json,marks,subject,chapter,difficulty,bloom_level,created_at)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
			ON CONFLICT (id) DO UPDATE SET
			  type=EXCLUDED.type, text=EXCLUDED.text, choices_json=EXCLUDED.choices_json,
			  marks=EXCLUDED.marks, subject=EXCLUDED.subject, chapter=EXCLUDED.chapter,
			  difficulty=EXCLUDED.difficulty, bloom_level=EXCLUDED.bloom_level`,
			q.ID, q.OrganizationID, string(q.Type), q.Text, string(cj),
			q.Marks, q.Subject, q.Chapter, q.Difficulty, q.BloomLevel, created)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
	}
	return nil
}

func (s *SQLStore) FetchQuestions(ctx context.Context, opts FetchOpts) ([]Question, error) {
	where := []string{"organization_id = $1"}
	args := []interface{}{opts.OrganizationID}

	// LOWER + LIKE works on both drivers. Subject and chapter are partial
	// matches so "big data" finds "Big Data Systems".
	addLike := func(col, val string) {
		if val == "" {
			return
		}
		args = append(args, "%"+strings.ToLower(val)+"%")
		where = append(where, fmt.Sprintf("LOWER(%s) LIKE $%d", col, len(args)))
	}
	addEq := func(col, val string) {
		if val == "" {
			return
		}
		args = append(args, strings.ToLower(val))
		where = append(where, fmt.Sprintf("LOWER(%s) = $%d", col, len(args)))
	}
	addLike("subject", opts.Subject)
	addLike("chapter", opts.Chapter)
	addEq("difficulty", opts.Difficulty)
	addEq("bloom_level", opts.BloomLevel)

	q := `SELECT id,organization_id,type,text,choices_json,marks,subject,chapter,difficulty,bloom_level,created_at
		FROM questions WHERE ` + strings.Join(where, " AND ") + ` ORDER BY created_at, id`

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	defer rows.Close()

	var out []Question
	for rows.Next() {
		var qu Question
		var typ, cjson string
		if err := rows.Scan(&qu.ID, &qu.OrganizationID, &typ, &qu.Text, &cjson,
			&qu.Marks, &qu.Subject, &qu.Chapter, &qu.Difficulty, &qu.BloomLevel, &qu.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
		qu.Type = Type(typ)
		if cjson != "" {
			if err := json.Unmarshal([]byte(cjson), &qu.Choices); err != nil {
				qu.Choices = nil
			}
		}
		out = append(out, qu)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return out, nil
}

func (s *SQLStore) SaveBatch(ctx context.Context, b ExamBatch) error {
	idj, err := json.Marshal(b.QuestionIDs)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO exam_batches
		(id,organization_id,name,subject,question_ids_json,total_marks,paper_key,created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		b.ID, b.OrganizationID, b.Name, b.Subject, string(idj), b.TotalMarks, b.PaperKey, b.CreatedAt)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

func (s *SQLStore) GetBatch(ctx context.Context, id string) (ExamBatch, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id,organization_id,name,subject,question_ids_json,total_marks,paper_key,created_at
		FROM exam_batches WHERE id=$1`, id)
	b, err := scanBatch(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ExamBatch{}, ErrBatchNotFound
		}
		return ExamBatch{}, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return b, nil
}

func (s *SQLStore) ListBatches(ctx context.Context, opts BatchListOpts) ([]ExamBatch, error) {
	limit := opts.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `SELECT id,organization_id,name,subject,question_ids_json,total_marks,paper_key,created_at
		FROM exam_batches WHERE organization_id=$1 ORDER BY created_at DESC, id LIMIT $2 OFFSET $3`,
		opts.OrganizationID, limit, opts.Offset)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	defer rows.Close()

	var out []ExamBatch
	for rows.Next() {
		b, err := scanBatch(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBatch(r rowScanner) (ExamBatch, error) {
	var b ExamBatch
	var idj string
	if err := r.Scan(&b.ID, &b.OrganizationID, &b.Name, &b.Subject, &idj, &b.TotalMarks, &b.PaperKey, &b.CreatedAt); err != nil {
		return ExamBatch{}, err
	}
	if err := json.Unmarshal([]byte(idj), &b.QuestionIDs); err != nil {
		b.QuestionIDs = nil
	}
	return b, nil
}
