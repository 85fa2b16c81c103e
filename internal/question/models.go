package question

// Type enumerates the question categories the parser and the filter understand.
type Type string

const (
	TypeMCQ           Type = "mcq"
	TypeMSQ           Type = "msq"
	TypeTrueFalse     Type = "tf"
	TypeFill          Type = "fill"
	TypeDescriptive   Type = "descriptive"
	TypeNumerical     Type = "numerical"
	TypeMatch         Type = "match"
	TypeComprehension Type = "comprehension"
)

func (t Type) Valid() bool {
	switch t {
	case TypeMCQ, TypeMSQ, TypeTrueFalse, TypeFill, TypeDescriptive, TypeNumerical, TypeMatch, TypeComprehension:
		return true
	}
	return false
}

type Choice struct {
	ID    string `json:"id,omitempty"`
	Label string `json:"label,omitempty"`
}

// Question is immutable once fetched: the filter reads a pool, it never
// mutates it.
type Question struct {
	ID             string   `json:"id"`
	Type           Type     `json:"type"`
	Text           string   `json:"text"`
	Choices        []Choice `json:"choices,omitempty"`
	Marks          float64  `json:"marks"`
	Subject        string   `json:"subject,omitempty"`
	Chapter        string   `json:"chapter,omitempty"`
	Difficulty     string   `json:"difficulty,omitempty"`
	BloomLevel     string   `json:"bloom_level,omitempty"`
	OrganizationID string   `json:"organization_id,omitempty"`
	CreatedAt      int64    `json:"created_at,omitempty"`
}

// TypeCount pairs a question type with how many of it the caller wants.
type TypeCount struct {
	Type  Type `json:"type"`
	Count int  `json:"count"`
}

// Constraint is the structured selection criteria recovered from a prompt.
// Counts is an ordered slice rather than a map: its order is the selection
// priority order, so two runs over the same pool pick the same questions.
type Constraint struct {
	Counts         []TypeCount `json:"counts"`
	MaxTotalMarks  float64     `json:"max_total_marks,omitempty"` // 0 = unbounded
	Subject        string      `json:"subject,omitempty"`
	Chapter        string      `json:"chapter,omitempty"`
	Difficulty     string      `json:"difficulty,omitempty"`
	BloomLevel     string      `json:"bloom_level,omitempty"`
	BatchName      string      `json:"batch_name,omitempty"`
	OrganizationID string      `json:"organization_id,omitempty"`
}

// TotalRequested sums the per-type counts.
func (c Constraint) TotalRequested() int {
	n := 0
	for _, tc := range c.Counts {
		if tc.Count > 0 {
			n += tc.Count
		}
	}
	return n
}

// CountFor returns the requested count for a type, 0 when absent.
func (c Constraint) CountFor(t Type) int {
	for _, tc := range c.Counts {
		if tc.Type == t {
			return tc.Count
		}
	}
	return 0
}

type ExclusionReason string

const (
	ReasonTypeMismatch  ExclusionReason = "type_mismatch"
	ReasonMarksExceeded ExclusionReason = "marks_exceeded"
	ReasonQuotaFilled   ExclusionReason = "quota_filled"
)

type Exclusion struct {
	Question Question        `json:"question"`
	Reason   ExclusionReason `json:"reason"`
}

// Shortfall records a type whose quota could not be met from the pool.
type Shortfall struct {
	Type      Type `json:"type"`
	Requested int  `json:"requested"`
	Selected  int  `json:"selected"`
}

// FilteringReport is the full, explainable outcome of one selection run.
// Every pool question appears exactly once, either in Selected or in Excluded.
// Immutable after Filter returns it.
type FilteringReport struct {
	Requested  Constraint  `json:"requested"`
	Selected   []Question  `json:"selected"`
	Excluded   []Exclusion `json:"excluded"`
	TotalMarks float64     `json:"total_marks"`
	Shortfalls []Shortfall `json:"shortfalls,omitempty"`
}

// ExamBatch is the persisted record of one completed generation. It holds
// question ids, not questions: the pool stays owned by the store.
type ExamBatch struct {
	ID             string   `json:"id"`
	OrganizationID string   `json:"organization_id"`
	Name           string   `json:"name,omitempty"`
	Subject        string   `json:"subject,omitempty"`
	QuestionIDs    []string `json:"question_ids"`
	TotalMarks     float64  `json:"total_marks"`
	PaperKey       string   `json:"paper_key,omitempty"`
	CreatedAt      int64    `json:"created_at"`
}
