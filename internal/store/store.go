package store

import "healthprofile/internal/model"

// GenderQuestionID is the question whose answer drives visibility filtering
const GenderQuestionID = "gender"

// GenderAll means no gender declared yet: nothing is filtered
const GenderAll = "all"

// Store collects raw answers for one respondent. Presence of a key means
// the respondent actively set the answer via an input event; a question
// with no key is unanswered, which is distinct from an explicit zero score.
// The store is never persisted and dies with its session.
//
// Callers serialize access themselves; within a session every mutation
// comes from a single input handler at a time.
type Store struct {
	answers map[string]model.Value
}

// New creates an empty answer store
func New() *Store {
	return &Store{answers: make(map[string]model.Value)}
}

// Set records a raw answer for a question
func (s *Store) Set(questionID string, v model.Value) {
	s.answers[questionID] = v
}

// Get returns the raw answer and whether the question was answered at all
func (s *Store) Get(questionID string) (model.Value, bool) {
	v, ok := s.answers[questionID]
	return v, ok
}

// Len is the number of answered questions
func (s *Store) Len() int {
	return len(s.answers)
}

// Snapshot copies the current answers, e.g. for logging or export
func (s *Store) Snapshot() map[string]model.Value {
	out := make(map[string]model.Value, len(s.answers))
	for k, v := range s.answers {
		out[k] = v
	}
	return out
}

// Gender is the declared gender, read from the stored gender answer so it
// survives navigating away from the question that set it. Before any
// declaration it is GenderAll and nothing is filtered.
func (s *Store) Gender() string {
	if v, ok := s.answers[GenderQuestionID]; ok {
		if g := v.Text(); g != "" {
			return g
		}
	}
	return GenderAll
}

// Visible is the single gender predicate shared by rendering, validation
// and scoring. A gender-specific question stays visible until a different
// gender is declared.
func (s *Store) Visible(q *model.Question) bool {
	if q.GenderSpecific == "" {
		return true
	}
	gender := s.Gender()
	return gender == GenderAll || gender == q.GenderSpecific
}

// NumericTotal sums the answers stored as numbers. String answers (radio
// values, free text) do not contribute even when they look numeric.
func (s *Store) NumericTotal() float64 {
	var total float64
	for _, v := range s.answers {
		if v.Kind == model.ValueNumber {
			total += v.Num
		}
	}
	return total
}
