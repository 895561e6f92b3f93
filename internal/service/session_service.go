package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"healthprofile/internal/flow"
	"healthprofile/internal/model"
	"healthprofile/internal/schema"
	"healthprofile/internal/scoring"
	"healthprofile/internal/session"
)

// ErrSessionNotFound marks lookups of unknown or expired sessions
var ErrSessionNotFound = errors.New("session not found")

// SessionService hosts one engine instance per presentation client and
// translates raw input events and navigation intents into flow/scoring
// calls.
type SessionService struct {
	survey     *model.Survey
	index      *schema.Index
	summarizer *scoring.Summarizer
	sessions   *session.Registry
	logger     *zap.Logger
}

// NewSessionService creates a new session service
func NewSessionService(survey *model.Survey, index *schema.Index, sessions *session.Registry, logger *zap.Logger) *SessionService {
	return &SessionService{
		survey:     survey,
		index:      index,
		summarizer: scoring.NewSummarizer(survey, index),
		sessions:   sessions,
		logger:     logger,
	}
}

// Create starts a fresh session at the first section
func (s *SessionService) Create(ctx context.Context) (*session.Session, flow.View) {
	sess := session.New(s.survey)
	s.sessions.Add(sess)
	s.logger.Info("session created", zap.String("sessionId", sess.ID))
	return sess, sess.View()
}

// View returns the current flow position of a session
func (s *SessionService) View(ctx context.Context, id string) (flow.View, error) {
	sess := s.sessions.Get(id)
	if sess == nil {
		return flow.View{}, ErrSessionNotFound
	}
	return sess.View(), nil
}

// SetAnswer records a raw answer event. A checkbox state on a binary
// matrix question is normalized to its scale score here, the way the
// input's change handler would; everything else is stored as delivered.
// Unknown question ids are stored leniently; validation and scoring only
// ever consult questions the schema defines. The gender answer needs no
// special handling: visibility is recomputed from the store on every read.
func (s *SessionService) SetAnswer(ctx context.Context, id, questionID string, v model.Value) (flow.View, error) {
	sess := s.sessions.Get(id)
	if sess == nil {
		return flow.View{}, ErrSessionNotFound
	}
	if v.Kind == model.ValueBool {
		if entry, ok := s.index.Lookup(questionID); ok && entry.Section.Type == model.SectionMatrixBinary {
			score := 0.0
			if v.Bool {
				score = entry.Section.BinaryScale.PositiveScore()
			}
			v = model.NumberValue(score)
		}
	}
	if _, known := s.index.Lookup(questionID); !known {
		s.logger.Debug("answer for question outside the schema", zap.String("questionId", questionID))
	}
	sess.SetAnswer(questionID, v)
	return sess.View(), nil
}

// Advance attempts a forward transition
func (s *SessionService) Advance(ctx context.Context, id string) (flow.AdvanceResult, error) {
	sess := s.sessions.Get(id)
	if sess == nil {
		return flow.AdvanceResult{}, ErrSessionNotFound
	}
	res := sess.Advance()
	if !res.OK {
		s.logger.Debug("advance rejected",
			zap.String("sessionId", id),
			zap.Int("invalid", len(res.Invalid)))
	}
	return res, nil
}

// Retreat moves a session one step back
func (s *SessionService) Retreat(ctx context.Context, id string) (flow.View, error) {
	sess := s.sessions.Get(id)
	if sess == nil {
		return flow.View{}, ErrSessionNotFound
	}
	return sess.Retreat(), nil
}

// BackToSurvey re-enters the survey from the summary
func (s *SessionService) BackToSurvey(ctx context.Context, id string) (flow.View, error) {
	sess := s.sessions.Get(id)
	if sess == nil {
		return flow.View{}, ErrSessionNotFound
	}
	return sess.BackToSurvey(), nil
}

// Summary computes the scoring summary for a session. Safe to call at any
// time and as often as needed; the result is derived purely from the
// current answers.
func (s *SessionService) Summary(ctx context.Context, id string) (scoring.Summary, error) {
	sess := s.sessions.Get(id)
	if sess == nil {
		return scoring.Summary{}, ErrSessionNotFound
	}
	return sess.Summarize(s.summarizer), nil
}
