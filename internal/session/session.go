package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"healthprofile/internal/flow"
	"healthprofile/internal/model"
	"healthprofile/internal/scoring"
	"healthprofile/internal/store"
)

// Session owns one respondent's engine instance: their answer store and
// navigation flow. All state is process memory; nothing survives the
// session. The mutex serializes the presentation layer's input events,
// which arrive one at a time per client but on concurrent connections.
type Session struct {
	ID string

	mu       sync.Mutex
	store    *store.Store
	flow     *flow.Flow
	lastSeen time.Time
}

// New creates a session with an empty answer store positioned at the first
// section.
func New(survey *model.Survey) *Session {
	st := store.New()
	return &Session{
		ID:       uuid.NewString(),
		store:    st,
		flow:     flow.New(survey, st),
		lastSeen: time.Now(),
	}
}

// SetAnswer records a raw answer event
func (s *Session) SetAnswer(questionID string, v model.Value) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.store.Set(questionID, v)
}

// View renders the current flow position
func (s *Session) View() flow.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	return s.flow.View()
}

// Advance attempts a forward transition
func (s *Session) Advance() flow.AdvanceResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	return s.flow.Advance()
}

// Retreat moves one step back
func (s *Session) Retreat() flow.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	return s.flow.Retreat()
}

// BackToSurvey leaves the summary view
func (s *Session) BackToSurvey() flow.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	return s.flow.BackToSurvey()
}

// Summarize computes the scoring summary from the current answers
func (s *Session) Summarize(sum *scoring.Summarizer) scoring.Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	return sum.Summarize(s.store)
}

// Answered is the number of recorded answers
func (s *Session) Answered() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Len()
}

// LastSeen is the time of the session's most recent event
func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

func (s *Session) touch() {
	s.lastSeen = time.Now()
}
