// Package paper renders a selected question sequence into a printable exam
// paper: one section per question type, in selection order.
package paper

import (
	"errors"
	"fmt"
	"strings"

	"github.com/evalvotech/exam-generator/internal/question"
)

// ErrNothingToRender is returned when the renderer is handed an empty
// selection. The generator treats it as a formatting failure.
var ErrNothingToRender = errors.New("paper: nothing to render")

type RenderedQuestion struct {
	Number  int      `json:"number"`
	ID      string   `json:"id"`
	Text    string   `json:"text"`
	Marks   float64  `json:"marks"`
	Choices []string `json:"choices,omitempty"`
}

type Section struct {
	Title     string             `json:"title"`
	Type      question.Type      `json:"type"`
	Questions []RenderedQuestion `json:"questions"`
	Marks     float64            `json:"marks"`
}

// RenderedPaper is the opaque-to-the-pipeline document artifact: structured
// sections plus a plain-text body suitable for printing or archiving.
type RenderedPaper struct {
	Title      string    `json:"title"`
	Sections   []Section `json:"sections"`
	TotalMarks float64   `json:"total_marks"`
	Text       string    `json:"text"`
}

var sectionTitles = map[question.Type]string{
	question.TypeMCQ:           "Multiple Choice Questions",
	question.TypeMSQ:           "Multiple Select Questions",
	question.TypeTrueFalse:     "True / False",
	question.TypeFill:          "Fill in the Blanks",
	question.TypeDescriptive:   "Descriptive Questions",
	question.TypeNumerical:     "Numerical Questions",
	question.TypeMatch:         "Match the Following",
	question.TypeComprehension: "Comprehension",
}

type Renderer struct{}

func NewRenderer() *Renderer { return &Renderer{} }

// Render groups questions into sections by type, keeping the selection order
// both across and within sections, and numbers questions continuously.
func (r *Renderer) Render(title string, selected []question.Question) (RenderedPaper, error) {
	if len(selected) == 0 {
		return RenderedPaper{}, ErrNothingToRender
	}
	if title == "" {
		title = "Exam Paper"
	}

	p := RenderedPaper{Title: title}
	idx := map[question.Type]int{}
	num := 0
	for _, q := range selected {
		si, ok := idx[q.Type]
		if !ok {
			st := sectionTitles[q.Type]
			if st == "" {
				st = strings.ToUpper(string(q.Type))
			}
			p.Sections = append(p.Sections, Section{Title: st, Type: q.Type})
			si = len(p.Sections) - 1
			idx[q.Type] = si
		}
		num++
		rq := RenderedQuestion{Number: num, ID: q.ID, Text: q.Text, Marks: q.Marks}
		for _, ch := range q.Choices {
			rq.Choices = append(rq.Choices, ch.Label)
		}
		p.Sections[si].Questions = append(p.Sections[si].Questions, rq)
		p.Sections[si].Marks += q.Marks
		p.TotalMarks += q.Marks
	}

	p.Text = renderText(p)
	return p, nil
}

func renderText(p RenderedPaper) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", p.Title)
	fmt.Fprintf(&b, "Total Marks: %s\n", trimMarks(p.TotalMarks))
	b.WriteString(strings.Repeat("=", 60) + "\n")
	for si, s := range p.Sections {
		fmt.Fprintf(&b, "\nSection %s: %s (%s marks)\n\n", sectionLabel(si), s.Title, trimMarks(s.Marks))
		for _, q := range s.Questions {
			fmt.Fprintf(&b, "%d. %s  [%s marks]\n", q.Number, q.Text, trimMarks(q.Marks))
			for ci, ch := range q.Choices {
				fmt.Fprintf(&b, "   %c) %s\n", 'A'+ci, ch)
			}
		}
	}
	return b.String()
}

func sectionLabel(i int) string { return string(rune('A' + i)) }

func trimMarks(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
