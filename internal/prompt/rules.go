package prompt

import "github.com/evalvotech/exam-generator/internal/question"

// typeAliases maps token phrases to canonical question types. Ordered longest
// phrase first so "fill in the blanks" wins over a bare "fill". Plural and
// singular spellings are listed separately; hyphen/slash variants collapse to
// the same tokens in the tokenizer.
var typeAliases = []struct {
	words []string
	t     question.Type
}{
	{[]string{"fill", "in", "the", "blanks"}, question.TypeFill},
	{[]string{"fill", "in", "the", "blank"}, question.TypeFill},
	{[]string{"match", "the", "following"}, question.TypeMatch},
	{[]string{"true", "or", "false"}, question.TypeTrueFalse},
	{[]string{"multiple", "choice"}, question.TypeMCQ},
	{[]string{"multiple", "select"}, question.TypeMSQ},
	{[]string{"true", "false"}, question.TypeTrueFalse},
	{[]string{"fill", "ups"}, question.TypeFill},
	{[]string{"fill", "up"}, question.TypeFill},
	{[]string{"fillups"}, question.TypeFill},
	{[]string{"fillup"}, question.TypeFill},
	{[]string{"mcqs"}, question.TypeMCQ},
	{[]string{"mcq"}, question.TypeMCQ},
	{[]string{"msqs"}, question.TypeMSQ},
	{[]string{"msq"}, question.TypeMSQ},
	{[]string{"tf"}, question.TypeTrueFalse},
	{[]string{"descriptive"}, question.TypeDescriptive},
	{[]string{"essay"}, question.TypeDescriptive},
	{[]string{"numerical"}, question.TypeNumerical},
	{[]string{"numeric"}, question.TypeNumerical},
	{[]string{"matching"}, question.TypeMatch},
	{[]string{"match"}, question.TypeMatch},
	{[]string{"comprehension"}, question.TypeComprehension},
}

// matchType tries to match a type phrase starting at toks[i]. Returns the
// canonical type and how many tokens the phrase consumed.
func matchType(toks []Token, i int) (question.Type, int, bool) {
	for _, a := range typeAliases {
		if i+len(a.words) > len(toks) {
			continue
		}
		ok := true
		for j, w := range a.words {
			if toks[i+j].Kind != TokenWord || toks[i+j].Norm != w {
				ok = false
				break
			}
		}
		if ok {
			return a.t, len(a.words), true
		}
	}
	return "", 0, false
}

var difficultyAliases = map[string]string{
	"easy": "easy", "simple": "easy", "basic": "easy", "beginner": "easy", "elementary": "easy",
	"medium": "medium", "intermediate": "medium", "moderate": "medium", "average": "medium", "normal": "medium",
	"hard": "hard", "difficult": "hard", "complex": "hard", "advanced": "hard", "challenging": "hard", "tough": "hard",
}

var bloomAliases = map[string]string{
	"remember": "remember", "recall": "remember", "memorize": "remember", "recognize": "remember", "identify": "remember",
	"understand": "understand", "comprehend": "understand", "explain": "understand", "describe": "understand", "interpret": "understand",
	"apply": "apply", "use": "apply", "implement": "apply", "solve": "apply", "demonstrate": "apply",
	"analyze": "analyze", "analyse": "analyze", "examine": "analyze", "compare": "analyze", "contrast": "analyze",
	"evaluate": "evaluate", "assess": "evaluate", "judge": "evaluate", "critique": "evaluate", "justify": "evaluate",
	"create": "create", "design": "create", "develop": "create", "compose": "create", "construct": "create",
}

// boundaryWords end a free-text value capture (subject, chapter, batch name).
var boundaryWords = map[string]bool{
	"with": true, "and": true,
	"maximum": true, "max": true, "total": true, "marks": true, "mark": true,
	"subject": true, "chapter": true, "difficulty": true, "bloom": true, "batch": true,
	"question": true, "questions": true, "exam": true, "paper": true,
}
