// internal/moderation/engine.go
// Banned-term text classification

package moderation

import "strings"

// Decision is the allow/deny outcome with the lexicon terms that matched.
type Decision struct {
	Allowed bool     `json:"allowed"`
	Labels  []string `json:"labels"`
}

// Engine classifies free text against a banned-term lexicon.
// Matching is naive case-insensitive substring search: a term embedded in an
// unrelated word still matches, and creative spelling slips through. That
// trade-off is accepted for this engine's scope.
type Engine struct {
	terms   []string
	lowered []string
}

// NewEngine builds an engine over the given lexicon. The lexicon is
// configuration; swapping the word list never requires touching this code.
func NewEngine(terms []string) *Engine {
	lowered := make([]string, len(terms))
	for i, term := range terms {
		lowered[i] = strings.ToLower(term)
	}
	return &Engine{terms: terms, lowered: lowered}
}

// Check classifies the text. It is pure: no I/O, no external calls.
func (e *Engine) Check(text string) Decision {
	loweredText := strings.ToLower(text)
	labels := []string{}
	for i, term := range e.lowered {
		if strings.Contains(loweredText, term) {
			labels = append(labels, e.terms[i])
		}
	}
	return Decision{Allowed: len(labels) == 0, Labels: labels}
}
