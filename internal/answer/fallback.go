package answer

import "strings"

// DefaultAnswer is returned when no fallback rule matches.
const DefaultAnswer = "Unknown"

// rule matches when the question contains every term in all and, if anyOf
// is non-empty, at least one term in anyOf.
type rule struct {
	all    []string
	anyOf  []string
	answer string
}

// Evaluated in order; the first match wins.
var fallbackRules = []rule{
	{all: []string{"maharashtra", "capital"}, answer: "Mumbai"},
	{all: []string{"india", "capital"}, answer: "Delhi"},
	{all: []string{"france", "capital"}, answer: "Paris"},
	{all: []string{"japan", "capital"}, answer: "Tokyo"},
	{anyOf: []string{"2+2", "2 + 2"}, answer: "4"},
	{all: []string{"sky"}, anyOf: []string{"color", "colour"}, answer: "Blue"},
	{all: []string{"grass"}, anyOf: []string{"color", "colour"}, answer: "Green"},
}

func (r rule) matches(q string) bool {
	for _, term := range r.all {
		if !strings.Contains(q, term) {
			return false
		}
	}
	if len(r.anyOf) == 0 {
		return true
	}
	for _, term := range r.anyOf {
		if strings.Contains(q, term) {
			return true
		}
	}
	return false
}

// Fallback answers question from the built-in keyword table.
// Matching is case-insensitive substring search.
func Fallback(question string) string {
	q := strings.ToLower(question)
	for _, r := range fallbackRules {
		if r.matches(q) {
			return r.answer
		}
	}
	return DefaultAnswer
}
