package handler

import (
	"encoding/json"
	"io"
	"math"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"quizarena/internal/service"
	"quizarena/internal/transport/rest/middleware"
)

// QuizHandler handles quiz session endpoints
type QuizHandler struct {
	quizSvc *service.QuizService
}

// NewQuizHandler creates a new quiz handler
func NewQuizHandler(quizSvc *service.QuizService) *QuizHandler {
	return &QuizHandler{quizSvc: quizSvc}
}

// Start handles POST /api/quiz/start. Amount and duration are accepted
// loosely: missing, non-numeric or out-of-range values fall back to the
// engine defaults instead of failing the request.
func (h *QuizHandler) Start(w http.ResponseWriter, r *http.Request) {
	var body map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil && err != io.EOF {
		body = nil
	}

	result, err := h.quizSvc.StartSession(
		r.Context(),
		middleware.GetUserID(r.Context()),
		middleware.GetEmail(r.Context()),
		intField(body, "amount"),
		intField(body, "duration"),
	)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// AnswerRequest is the request body for recording an answer
type AnswerRequest struct {
	SessionID  string `json:"sessionId"`
	QuestionID int    `json:"questionId"`
	Answer     string `json:"answer"`
}

// Answer handles POST /api/quiz/answer
func (h *QuizHandler) Answer(w http.ResponseWriter, r *http.Request) {
	var req AnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.SessionID == "" || req.QuestionID == 0 {
		writeError(w, http.StatusBadRequest, "session ID and question ID are required")
		return
	}

	userID := middleware.GetUserID(r.Context())
	if err := h.quizSvc.RecordAnswer(r.Context(), req.SessionID, userID, req.QuestionID, req.Answer); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "message": "answer saved"})
}

// VisitRequest is the request body for marking a question visited
type VisitRequest struct {
	SessionID  string `json:"sessionId"`
	QuestionID int    `json:"questionId"`
}

// Visit handles POST /api/quiz/visit
func (h *QuizHandler) Visit(w http.ResponseWriter, r *http.Request) {
	var req VisitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.SessionID == "" || req.QuestionID == 0 {
		writeError(w, http.StatusBadRequest, "session ID and question ID are required")
		return
	}

	userID := middleware.GetUserID(r.Context())
	if err := h.quizSvc.RecordVisit(r.Context(), req.SessionID, userID, req.QuestionID); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Status handles GET /api/quiz/status/{sessionId}
func (h *QuizHandler) Status(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]
	userID := middleware.GetUserID(r.Context())

	status, err := h.quizSvc.Status(r.Context(), sessionID, userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, status)
}

// Resume handles GET /api/quiz/session/{sessionId}
func (h *QuizHandler) Resume(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]
	userID := middleware.GetUserID(r.Context())

	result, err := h.quizSvc.Resume(r.Context(), sessionID, userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// SubmitRequest is the request body for submitting a quiz
type SubmitRequest struct {
	SessionID string `json:"sessionId"`
}

// Submit handles POST /api/quiz/submit
func (h *QuizHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.SessionID == "" {
		writeError(w, http.StatusBadRequest, "session ID is required")
		return
	}

	userID := middleware.GetUserID(r.Context())
	result, err := h.quizSvc.Submit(r.Context(), req.SessionID, userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// History handles GET /api/quiz/history
func (h *QuizHandler) History(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	entries, err := h.quizSvc.History(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"quizzes": entries})
}

// Results handles GET /api/quiz/results/{sessionId}
func (h *QuizHandler) Results(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]
	userID := middleware.GetUserID(r.Context())

	results, err := h.quizSvc.Results(r.Context(), sessionID, userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, results)
}

// intField pulls an integer out of a loosely-typed JSON body. Fractional
// numbers and unparseable strings yield zero, which the engine clamps to
// its default.
func intField(body map[string]interface{}, key string) int {
	v, ok := body[key]
	if !ok {
		return 0
	}
	switch n := v.(type) {
	case float64:
		if n != math.Trunc(n) {
			return 0
		}
		return int(n)
	case string:
		i, err := strconv.Atoi(n)
		if err != nil {
			return 0
		}
		return i
	}
	return 0
}
