package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"signquiz-backend/internal/middleware"
	"signquiz-backend/internal/models"
	"signquiz-backend/internal/quiz"
	"signquiz-backend/internal/services"
)

type QuizHandler struct {
	quiz *services.QuizService
}

func NewQuizHandler(quizService *services.QuizService) *QuizHandler {
	return &QuizHandler{quiz: quizService}
}

// sessionView is what a learner sees of a session. The correct answer only
// appears in Feedback, once the current question has been submitted.
type sessionView struct {
	ID           uuid.UUID              `json:"id"`
	CategoryID   string                 `json:"category_id"`
	State        quiz.State             `json:"state"`
	CurrentIndex int                    `json:"current_index"`
	Total        int                    `json:"total"`
	Progress     int                    `json:"progress"`
	Score        int                    `json:"score"`
	Selected     *string                `json:"selected_answer"`
	Question     *models.PublicQuestion `json:"question"`
	Feedback     *quiz.Feedback         `json:"feedback,omitempty"`
	Recorded     bool                   `json:"recorded"`
	StartedAt    time.Time              `json:"started_at"`
}

func newSessionView(s *quiz.Session) sessionView {
	v := sessionView{
		ID:           s.ID,
		CategoryID:   s.CategoryID,
		State:        s.State,
		CurrentIndex: s.CurrentIndex,
		Total:        len(s.Questions),
		Progress:     s.Progress(),
		Score:        s.Score(),
		Selected:     s.Selected,
		Recorded:     s.Recorded,
		StartedAt:    s.StartedAt,
	}
	if q, ok := s.CurrentQuestion(); ok {
		pub := q.Public()
		v.Question = &pub
	}
	if fb, ok := s.LastFeedback(); ok {
		v.Feedback = &fb
	}
	return v
}

type startRequest struct {
	CategoryID string `json:"category_id"`
}

type startResponse struct {
	Session  sessionView `json:"session"`
	Fallback bool        `json:"fallback"`
	Notice   string      `json:"notice,omitempty"`
}

type selectRequest struct {
	Answer string `json:"answer"`
}

type submitResponse struct {
	Session  sessionView   `json:"session"`
	Feedback quiz.Feedback `json:"feedback"`
}

type recordResponse struct {
	JobID  uuid.UUID            `json:"job_id"`
	Events []models.AnswerEvent `json:"events"`
}

func (h *QuizHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req startRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	userID := middleware.GetUserID(r.Context())
	sess, usedFallback, err := h.quiz.Start(r.Context(), userID, req.CategoryID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	resp := startResponse{Session: newSessionView(sess), Fallback: usedFallback}
	if usedFallback {
		resp.Notice = fallbackNotice
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (h *QuizHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionIDParam(w, r)
	if !ok {
		return
	}

	sess, err := h.quiz.Get(r.Context(), middleware.GetUserID(r.Context()), id)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newSessionView(sess))
}

func (h *QuizHandler) Select(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionIDParam(w, r)
	if !ok {
		return
	}

	var req selectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	sess, err := h.quiz.Select(r.Context(), middleware.GetUserID(r.Context()), id, req.Answer)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newSessionView(sess))
}

func (h *QuizHandler) Submit(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionIDParam(w, r)
	if !ok {
		return
	}

	sess, feedback, err := h.quiz.Submit(r.Context(), middleware.GetUserID(r.Context()), id)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, submitResponse{Session: newSessionView(sess), Feedback: feedback})
}

func (h *QuizHandler) Advance(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionIDParam(w, r)
	if !ok {
		return
	}

	sess, err := h.quiz.Advance(r.Context(), middleware.GetUserID(r.Context()), id)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newSessionView(sess))
}

func (h *QuizHandler) Summary(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionIDParam(w, r)
	if !ok {
		return
	}

	summary, err := h.quiz.Summary(r.Context(), middleware.GetUserID(r.Context()), id)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// Record queues the session's answers for the progress log. Recording is
// asynchronous; the result arrives over the WebSocket.
func (h *QuizHandler) Record(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionIDParam(w, r)
	if !ok {
		return
	}

	jobID, events, err := h.quiz.RecordCompletion(r.Context(), middleware.GetUserID(r.Context()), id)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusAccepted, recordResponse{JobID: jobID, Events: events})
}

func (h *QuizHandler) Discard(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionIDParam(w, r)
	if !ok {
		return
	}

	if err := h.quiz.Discard(r.Context(), middleware.GetUserID(r.Context()), id); err != nil {
		handleServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
