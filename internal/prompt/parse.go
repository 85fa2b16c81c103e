// Package prompt turns a free-form exam request into a structured
// question.Constraint. Parsing is a tokenizer pass followed by a small rule
// table; there is no language model involved.
package prompt

import (
	"strings"

	"github.com/evalvotech/exam-generator/internal/question"
)

// ParseError means the prompt carried no recognizable "<count> <type>" pair.
// It is a caller problem, not an infrastructure one.
type ParseError struct {
	Prompt string
}

func (e *ParseError) Error() string {
	return "prompt: no question counts recognized"
}

// Parse extracts selection constraints from a prompt. Matching is
// case-insensitive; unrecognized text is ignored as long as at least one
// count is recovered. Duplicate type mentions accumulate; for scalar fields
// the last match wins. Organization scope is never read from the prompt.
func Parse(raw string) (question.Constraint, error) {
	toks := Tokenize(raw)
	var c question.Constraint

	i := 0
	for i < len(toks) {
		t := toks[i]
		switch {
		case t.Kind == TokenNumber:
			if qt, consumed, ok := matchType(toks, i+1); ok {
				addCount(&c, qt, t.Num)
				i += 1 + consumed
				i = skipWord(toks, i, "questions", "question")
				continue
			}
			// "10 marks maximum" / "15 marks total"
			if isWord(toks, i+1, "marks", "mark") && isWord(toks, i+2, "maximum", "max", "total") {
				c.MaxTotalMarks = float64(t.Num)
				i += 3
				continue
			}
			i++

		case t.Kind == TokenWord && (t.Norm == "maximum" || t.Norm == "max" || t.Norm == "total"):
			if v, next, ok := qualifiedMarks(toks, i); ok {
				c.MaxTotalMarks = v
				i = next
				continue
			}
			i++

		case t.Kind == TokenWord && (t.Norm == "marks" || t.Norm == "mark"):
			// "marks: 30" / "marks = 30"
			if isPunct(toks, i+1, ":", "=") && isNumber(toks, i+2) {
				c.MaxTotalMarks = float64(toks[i+2].Num)
				i += 3
				continue
			}
			i++

		case t.Kind == TokenWord && t.Norm == "subject":
			if v, next := labeledValue(toks, i+1); v != "" {
				c.Subject = v
				i = next
				continue
			}
			i++

		case t.Kind == TokenWord && t.Norm == "chapter":
			if v, next := labeledValue(toks, i+1); v != "" {
				c.Chapter = v
				i = next
				continue
			}
			i++

		case t.Kind == TokenWord && t.Norm == "difficulty":
			if v, next := labeledValue(toks, i+1); v != "" {
				c.Difficulty = normalize(v, difficultyAliases)
				i = next
				continue
			}
			i++

		case t.Kind == TokenWord && t.Norm == "bloom":
			j := skipWord(toks, i+1, "level")
			if v, next := labeledValue(toks, j); v != "" {
				c.BloomLevel = normalize(v, bloomAliases)
				i = next
				continue
			}
			i++

		case t.Kind == TokenWord && t.Norm == "batch":
			j := skipWord(toks, i+1, "name")
			if v, next := labeledValue(toks, j); v != "" {
				c.BatchName = v
				i = next
				continue
			}
			i++

		default:
			i++
		}
	}

	if c.TotalRequested() == 0 {
		return question.Constraint{}, &ParseError{Prompt: raw}
	}
	return c, nil
}

func addCount(c *question.Constraint, t question.Type, n int) {
	if n <= 0 {
		return
	}
	for i := range c.Counts {
		if c.Counts[i].Type == t {
			c.Counts[i].Count += n
			return
		}
	}
	c.Counts = append(c.Counts, question.TypeCount{Type: t, Count: n})
}

// qualifiedMarks matches "maximum 10 marks", "max marks: 20",
// "total marks = 25" and the like, starting at the qualifier word.
func qualifiedMarks(toks []Token, i int) (float64, int, bool) {
	j := i + 1
	j = skipWord(toks, j, "total")
	j = skipWord(toks, j, "marks", "mark")
	if isPunct(toks, j, ":", "=") {
		j++
	}
	if !isNumber(toks, j) {
		return 0, 0, false
	}
	v := float64(toks[j].Num)
	j++
	j = skipWord(toks, j, "marks", "mark")
	return v, j, true
}

// labeledValue captures words after a label up to the next clause boundary
// (punctuation, a number, or a keyword), preserving the original casing.
func labeledValue(toks []Token, i int) (string, int) {
	if isPunct(toks, i, ":", "=") {
		i++
	}
	var words []string
	for i < len(toks) && toks[i].Kind == TokenWord && !boundaryWords[toks[i].Norm] {
		words = append(words, toks[i].Text)
		i++
	}
	return strings.Join(words, " "), i
}

func normalize(v string, aliases map[string]string) string {
	key := strings.ToLower(v)
	if canon, ok := aliases[key]; ok {
		return canon
	}
	return key
}

func isWord(toks []Token, i int, norms ...string) bool {
	if i >= len(toks) || toks[i].Kind != TokenWord {
		return false
	}
	for _, n := range norms {
		if toks[i].Norm == n {
			return true
		}
	}
	return false
}

func isPunct(toks []Token, i int, norms ...string) bool {
	if i >= len(toks) || toks[i].Kind != TokenPunct {
		return false
	}
	for _, n := range norms {
		if toks[i].Norm == n {
			return true
		}
	}
	return false
}

func isNumber(toks []Token, i int) bool {
	return i < len(toks) && toks[i].Kind == TokenNumber
}

func skipWord(toks []Token, i int, norms ...string) int {
	if isWord(toks, i, norms...) {
		return i + 1
	}
	return i
}
