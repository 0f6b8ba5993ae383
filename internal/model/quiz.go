package model

import (
	"strconv"
	"time"
)

// QuizSession is one user's attempt at a generated quiz. Questions are
// fixed at creation; Answers and VisitedQuestions grow while the session
// is open and freeze once Submitted flips to true.
type QuizSession struct {
	ID               string            `json:"-" bson:"_id,omitempty"`
	SessionID        string            `json:"sessionId" bson:"sessionId"`
	UserID           string            `json:"userId" bson:"userId"`
	Email            string            `json:"email,omitempty" bson:"email,omitempty"`
	Questions        []Question        `json:"questions" bson:"questions"`
	Answers          map[string]string `json:"answers" bson:"answers"`
	VisitedQuestions []int             `json:"visitedQuestions" bson:"visitedQuestions"`
	StartTime        time.Time         `json:"startTime" bson:"startTime"`
	EndTime          *time.Time        `json:"endTime,omitempty" bson:"endTime,omitempty"`
	Submitted        bool              `json:"submitted" bson:"submitted"`
	Score            int               `json:"score" bson:"score"`
	TimeTaken        int               `json:"timeTaken" bson:"timeTaken"`
}

// AnswerFor returns the recorded answer for a question id, or nil when the
// question was never answered. A stored empty string is still an answer.
func (s *QuizSession) AnswerFor(questionID int) *string {
	answer, ok := s.Answers[strconv.Itoa(questionID)]
	if !ok {
		return nil
	}
	return &answer
}

// HasVisited reports whether a question id is already in the visited set.
func (s *QuizSession) HasVisited(questionID int) bool {
	for _, id := range s.VisitedQuestions {
		if id == questionID {
			return true
		}
	}
	return false
}

// StartResult is returned when a session is created or resumed.
type StartResult struct {
	SessionID string             `json:"sessionId"`
	Questions []RedactedQuestion `json:"questions"`
	Duration  int                `json:"duration"` // seconds
}

// SessionStatus is the read-only progress projection of an open session.
type SessionStatus struct {
	AnsweredQuestions []int `json:"answeredQuestions"`
	VisitedQuestions  []int `json:"visitedQuestions"`
	TotalQuestions    int   `json:"totalQuestions"`
	Submitted         bool  `json:"submitted"`
}

// QuestionResult is the per-question outcome revealed after submission.
// UserAnswer is nil for questions that were never answered.
type QuestionResult struct {
	QuestionID    int      `json:"questionId"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	UserAnswer    *string  `json:"userAnswer"`
	CorrectAnswer string   `json:"correctAnswer"`
	IsCorrect     bool     `json:"isCorrect"`
	Category      string   `json:"category"`
	Difficulty    string   `json:"difficulty"`
}

// SubmitResult is returned by the submit operation.
type SubmitResult struct {
	Score          int              `json:"score"`
	TotalQuestions int              `json:"totalQuestions"`
	Results        []QuestionResult `json:"results"`
	TimeTaken      int              `json:"timeTaken"`
}

// SessionResults is the full detail view of a submitted session.
type SessionResults struct {
	Username       string           `json:"username"`
	Email          string           `json:"email"`
	Score          int              `json:"score"`
	TotalQuestions int              `json:"totalQuestions"`
	Results        []QuestionResult `json:"results"`
	StartTime      time.Time        `json:"startTime"`
	EndTime        *time.Time       `json:"endTime"`
	TimeTaken      int              `json:"timeTaken"`
}

// HistoryEntry is the summary of a submitted session shown in history.
type HistoryEntry struct {
	SessionID      string     `json:"sessionId"`
	Email          string     `json:"email"`
	Score          int        `json:"score"`
	TotalQuestions int        `json:"totalQuestions"`
	Date           *time.Time `json:"date"`
	TimeTaken      int        `json:"timeTaken"`
}
