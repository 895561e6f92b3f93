package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"healthprofile/internal/model"
	"healthprofile/internal/service"
)

// SessionHandler exposes the engine to the presentation layer: raw answer
// events in, flow views and summaries out.
type SessionHandler struct {
	sessionSvc *service.SessionService
	logger     *zap.Logger
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessionSvc *service.SessionService, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{
		sessionSvc: sessionSvc,
		logger:     logger,
	}
}

// SetAnswerRequest is a raw answer-set event
type SetAnswerRequest struct {
	QuestionID string      `json:"questionId"`
	Value      model.Value `json:"value"`
}

// Create handles POST /v1/sessions
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	sess, view := h.sessionSvc.Create(r.Context())
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"sessionId": sess.ID,
		"view":      view,
	})
}

// Get handles GET /v1/sessions/{sessionId}
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["sessionId"]

	view, err := h.sessionSvc.View(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// SetAnswer handles POST /v1/sessions/{sessionId}/answers
func (h *SessionHandler) SetAnswer(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["sessionId"]

	var req SetAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.QuestionID == "" {
		writeError(w, http.StatusBadRequest, "questionId is required")
		return
	}

	view, err := h.sessionSvc.SetAnswer(r.Context(), id, req.QuestionID, req.Value)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// Advance handles POST /v1/sessions/{sessionId}/advance. A validation
// failure is a 422 carrying the invalid questions in document order; the
// first entry is the focus target.
func (h *SessionHandler) Advance(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["sessionId"]

	res, err := h.sessionSvc.Advance(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	if !res.OK {
		writeJSON(w, http.StatusUnprocessableEntity, res)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// Retreat handles POST /v1/sessions/{sessionId}/retreat
func (h *SessionHandler) Retreat(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["sessionId"]

	view, err := h.sessionSvc.Retreat(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// BackToSurvey handles POST /v1/sessions/{sessionId}/back
func (h *SessionHandler) BackToSurvey(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["sessionId"]

	view, err := h.sessionSvc.BackToSurvey(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// Summary handles GET /v1/sessions/{sessionId}/summary
func (h *SessionHandler) Summary(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["sessionId"]

	summary, err := h.sessionSvc.Summary(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (h *SessionHandler) writeServiceError(w http.ResponseWriter, err error) {
	if errors.Is(err, service.ErrSessionNotFound) {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}
	h.logger.Error("session handler error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, err.Error())
}
